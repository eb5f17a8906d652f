package address

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchTown(t *testing.T) {
	table := []struct {
		input    string
		expected string
		exact    bool
		ok       bool
	}{
		{input: "Middletown", expected: "Middletown", exact: true, ok: true},
		{input: "  new   haven ", expected: "New Haven", exact: true, ok: true},
		{input: "middeltown", expected: "Middletown", ok: true},
		{input: "Hartfrod", expected: "Hartford", ok: true},
		{input: "", ok: false},
		{input: "zzzzqqq", ok: false},
	}

	for _, row := range table {
		match, ok := MatchTown(row.input)
		require.Equal(t, row.ok, ok, row.input)
		if !row.ok {
			continue
		}
		require.Equal(t, row.expected, match.Town, row.input)
		require.Equal(t, row.exact, match.Exact, row.input)
	}
}

func TestIsTown(t *testing.T) {
	require.Len(t, Towns, 169)
	require.True(t, IsTown("windsor locks"))
	require.False(t, IsTown("Springfield"))
}
