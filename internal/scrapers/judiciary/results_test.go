package judiciary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractResults(t *testing.T) {
	markup := resultsPage(
		resultRow("Middletown", "12 Elm St, Middletown, CT 06457", "US Bank v. Smith, John", "MMX-CV24-6012345-S"),
		resultRow("Middletown", " 4   Oak&nbsp;Ave ", "Wells Fargo", "MMX-CV24-6012346-S"),
		"<tr><td>Middletown</td><td>short row</td></tr>",
		resultRow("Middletown", "no docket", "Bank v. Nobody", ""),
		`<tr><td colspan="5"><table><tr><td>1</td><td>2</td><td>3</td><td>4</td><td>5</td></tr></table></td></tr>`,
	)

	cases := ExtractResults(markup, DefaultSearchLayout)
	require.Equal(t, []Case{
		{
			Name:       "US Bank v. Smith, John",
			Docket:     "MMX-CV24-6012345-S",
			RawAddress: "12 Elm St, Middletown, CT 06457",
			Town:       "Middletown",
			Defendant:  "Smith, John",
		},
		{
			Name:       "Wells Fargo",
			Docket:     "MMX-CV24-6012346-S",
			RawAddress: "4 Oak Ave",
			Town:       "Middletown",
			Defendant:  "Wells Fargo",
		},
	}, cases)
	require.Equal(
		t,
		"https://civilinquiry.jud.ct.gov/CaseDetail/PublicCaseDetail.aspx?DocketNo=MMXCV246012345S",
		cases[0].DocketUrl(),
	)
}

func TestExtractResultsEmpty(t *testing.T) {
	table := []struct {
		name   string
		markup string
	}{
		{name: "header only", markup: resultsPage()},
		{name: "no table", markup: "<html><body><p>No records found</p></body></html>"},
		{name: "empty", markup: ""},
	}
	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			require.Empty(t, ExtractResults(test.markup, DefaultSearchLayout))
		})
	}
}

func TestDefendantOf(t *testing.T) {
	table := []struct {
		name     string
		expected string
	}{
		{name: "A v. B", expected: "B"},
		{name: "A v. B v. C", expected: "C"},
		{name: "No Separator", expected: "No Separator"},
		{name: "A vs. B", expected: "A vs. B"},
	}
	for _, test := range table {
		require.Equal(t, test.expected, defendantOf(test.name), test.name)
	}
}
