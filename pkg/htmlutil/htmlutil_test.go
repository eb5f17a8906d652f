package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "  Hartford  ", expected: "Hartford"},
		{input: "123 Main\n\t St", expected: "123 Main St"},
		{input: "\x00HFD-CV-24-6012345-S\x07", expected: "HFD-CV-24-6012345-S"},
		{input: "", expected: ""},
	}

	for _, row := range table {
		require.Equal(t, row.expected, NormalizeText(row.input))
	}
}

func TestText(t *testing.T) {
	doc, err := ParseDocument(`<div><span id="a"> Bank  <b>of</b>
		America </span><span id="b">x</span></div>`)
	require.NoError(t, err)

	require.Equal(t, "Bank of America", Text(doc.Find("#a")))
	require.Equal(t, "", Text(doc.Find("#missing")))
}
