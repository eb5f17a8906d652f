package address

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	table := []struct {
		name     string
		fallback string
		input    string
		expected Address
		reason   Reason
	}{
		{
			name:     "simple",
			input:    "123 Main St, Hartford, CT 06103",
			expected: Address{Street: "123 Main St", City: "Hartford", State: "CT", Zip: "06103"},
		},
		{
			name:     "extra whitespace",
			input:    "  123   Main St ,\n Hartford ,  CT   06103 ",
			expected: Address{Street: "123 Main St", City: "Hartford", State: "CT", Zip: "06103"},
		},
		{
			name:     "zip plus four",
			input:    "123 Main St, Hartford, CT 06103-1234",
			expected: Address{Street: "123 Main St", City: "Hartford", State: "CT", Zip: "06103"},
		},
		{
			name:     "leading hash",
			input:    "#12 Elm St, Middletown, CT 06457",
			expected: Address{Street: "12 Elm St", City: "Middletown", State: "CT", Zip: "06457"},
		},
		{
			name:     "unit segment",
			fallback: "Portland",
			input:    "12 Elm St, Unit 4, Middletown, CT 06457",
			expected: Address{Street: "12 Elm St", City: "Middletown", State: "CT", Zip: "06457"},
		},
		{
			name:     "ambiguous interior uses fallback",
			fallback: "Middletown",
			input:    "12 Elm St, Bldg A, Sunset Ridge, CT 06457",
			expected: Address{Street: "12 Elm St", City: "Middletown", State: "CT", Zip: "06457"},
		},
		{
			name:     "ambiguous interior without fallback",
			input:    "12 Elm St, Bldg A, Sunset Ridge, CT 06457",
			expected: Address{Street: "12 Elm St", City: "Bldg A, Sunset Ridge", State: "CT", Zip: "06457"},
		},
		{
			name:     "alias",
			input:    "12 Elm St a/k/a 14 Elm St, Hartford, CT 06103",
			expected: Address{Street: "12 Elm St", City: "Hartford", State: "CT", Zip: "06103", Alias: "14 Elm St"},
		},
		{
			name:     "empty city uses fallback",
			fallback: "Hartford",
			input:    "123 Main St, , CT 06103",
			expected: Address{Street: "123 Main St", City: "Hartford", State: "CT", Zip: "06103"},
		},
		{
			name:     "unit word inside a city name",
			input:    "12 Elm St, Unit 4, Community Village, CT 06457",
			expected: Address{Street: "12 Elm St", City: "Community Village", State: "CT", Zip: "06457"},
		},
		{
			name:     "placeholder token outside the street",
			input:    "12 Elm St, See Clerk Pond, CT 06457",
			expected: Address{Street: "12 Elm St", City: "See Clerk Pond", State: "CT", Zip: "06457"},
		},
		{name: "placeholder", input: "See Clerk's Note, , ", reason: PLACEHOLDER_ADDRESS},
		{name: "placeholder any case", input: "SEE CLERK'S NOTE", reason: PLACEHOLDER_ADDRESS},
		{name: "too few segments", input: "123 Main St Hartford CT 06103", reason: UNPARSEABLE_FORMAT},
		{name: "two segments", input: "123 Main St, Hartford CT 06103", reason: UNPARSEABLE_FORMAT},
		{name: "empty city no fallback", input: "123 Main St, , CT 06103", reason: UNPARSEABLE_FORMAT},
		{name: "empty street", input: "#, Hartford, CT 06103", reason: UNPARSEABLE_FORMAT},
		{name: "state spelled out", input: "123 Main St, Hartford, Connecticut 06103", reason: STATE_ZIP_MISMATCH},
		{name: "lowercase state", input: "123 Main St, Hartford, ct 06103", reason: STATE_ZIP_MISMATCH},
		{name: "short zip", input: "123 Main St, Hartford, CT 0610", reason: STATE_ZIP_MISMATCH},
		{name: "sentinel zip", input: "123 Main St, Hartford, CT 00000", reason: SENTINEL_ZIP},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			parser := NewParser(test.fallback)
			result, err := parser.Parse(test.input)
			if test.reason == "" {
				require.NoError(t, err)
				require.Equal(t, test.expected, result)
				return
			}

			var failure *ParseFailure
			require.True(t, errors.As(err, &failure), "expected a ParseFailure, got %v", err)
			require.Equal(t, test.reason, failure.Reason)
			require.Equal(t, Address{}, result)
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	parser := NewParser("")

	for i := 0; i < 500; i++ {
		expected := Address{
			Street: fmt.Sprintf("%d %s St", rng.IntN(9999)+1, Towns[rng.IntN(len(Towns))]),
			City:   Towns[rng.IntN(len(Towns))],
			State:  string([]byte{byte('A' + rng.IntN(26)), byte('A' + rng.IntN(26))}),
			Zip:    fmt.Sprintf("%05d", rng.IntN(99999)+1),
		}

		result, err := parser.Parse(expected.String())
		require.NoError(t, err, expected.String())
		require.Equal(t, expected, result)

		sentinel := expected
		sentinel.Zip = "00000"
		_, err = parser.Parse(sentinel.String())
		var failure *ParseFailure
		require.ErrorAs(t, err, &failure)
		require.Equal(t, SENTINEL_ZIP, failure.Reason)
	}
}

func TestMissingFields(t *testing.T) {
	require.Empty(t, Address{Street: "a", City: "b", State: "CT", Zip: "06103"}.MissingFields())
	require.Equal(t, []string{"city", "zip"}, Address{Street: "a", State: "CT"}.MissingFields())
}

func TestValidate(t *testing.T) {
	table := []struct {
		name   string
		input  Address
		reason Reason
	}{
		{name: "valid", input: Address{Street: "12 Elm St", City: "Middletown", State: "CT", Zip: "06457"}},
		{name: "missing city", input: Address{Street: "12 Elm St", State: "CT", Zip: "06457"}, reason: MISSING_FIELD},
		{name: "lowercase state", input: Address{Street: "12 Elm St", City: "Middletown", State: "ct", Zip: "06457"}, reason: INVALID_STATE},
		{name: "spelled out state", input: Address{Street: "12 Elm St", City: "Middletown", State: "Conn", Zip: "06457"}, reason: INVALID_STATE},
		{name: "stripped leading zero", input: Address{Street: "12 Elm St", City: "Middletown", State: "CT", Zip: "6457"}, reason: INVALID_ZIP},
		{name: "zip plus four", input: Address{Street: "12 Elm St", City: "Middletown", State: "CT", Zip: "06457-1234"}, reason: INVALID_ZIP},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			err := test.input.Validate()
			if test.reason == "" {
				require.NoError(t, err)
				return
			}
			var failure *ParseFailure
			require.ErrorAs(t, err, &failure)
			require.Equal(t, test.reason, failure.Reason)
		})
	}
}
