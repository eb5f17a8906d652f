package batchdata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhoneNumberScore(t *testing.T) {
	table := []struct {
		name     string
		input    string
		expected PhoneNumber
	}{
		{
			name:     "number",
			input:    `{"number":"8605551234","type":"Mobile","score":95,"reachable":true}`,
			expected: PhoneNumber{Number: "8605551234", Type: "Mobile", Score: 95, Reachable: true},
		},
		{
			name:     "numeric string",
			input:    `{"number":"8605551234","score":"92.5","reachable":true}`,
			expected: PhoneNumber{Number: "8605551234", Score: 92.5, Reachable: true},
		},
		{
			name:     "garbage string",
			input:    `{"number":"8605551234","score":"high","reachable":true}`,
			expected: PhoneNumber{Number: "8605551234", Reachable: true},
		},
		{
			name:     "null",
			input:    `{"number":"8605551234","score":null}`,
			expected: PhoneNumber{Number: "8605551234"},
		},
		{
			name:     "missing",
			input:    `{"number":"8605551234"}`,
			expected: PhoneNumber{Number: "8605551234"},
		},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			var phone PhoneNumber
			require.NoError(t, json.Unmarshal([]byte(test.input), &phone))
			require.Equal(t, test.expected, phone)
		})
	}
}

func TestResponseWithStringScore(t *testing.T) {
	body := `{"results":{"persons":[{"phoneNumbers":[{"number":"1","score":"99","reachable":true},{"number":"2","score":91,"reachable":true}]}]}}`
	var res Response
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	require.Len(t, res.Results.Persons, 1)
	phones := res.Results.Persons[0].PhoneNumbers
	require.Equal(t, 99.0, phones[0].Score)
	require.Equal(t, 91.0, phones[1].Score)
}
