package judiciary

import (
	"casetrace-backend/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// ExtractResults reads the cases out of the markup of a search results page.
//
// A page without the results table yields no cases, a page that failed to
// render and a town without cases cannot be told apart here. The header row,
// rows with less than layout.MinCells cells and rows without a docket are
// skipped.
func ExtractResults(markup string, layout SearchLayout) []Case {
	doc, err := htmlutil.ParseDocument(markup)
	if err != nil {
		return nil
	}
	table := doc.Find("table#" + layout.ResultsTableId).First()
	if table.Length() == 0 {
		return nil
	}

	var cases []Case
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		// rows of tables nested inside the results (ex. the pager) are not cases
		if !row.Closest("table").IsSelection(table) {
			return
		}
		cells := row.ChildrenFiltered("td")
		if cells.Length() < layout.MinCells {
			return
		}
		cell := func(idx int) string {
			return htmlutil.Text(cells.Eq(idx))
		}

		docket := cell(layout.DocketColumn)
		if docket == "" {
			return
		}
		name := cell(layout.NameColumn)
		cases = append(cases, Case{
			Name:       name,
			Docket:     docket,
			RawAddress: cell(layout.AddressColumn),
			Town:       cell(layout.TownColumn),
			Defendant:  defendantOf(name),
		})
	})
	return cases
}
