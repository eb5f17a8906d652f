package judiciary

import (
	"casetrace-backend/internal/address"
	"strings"
)

// Case is a single foreclosure case found by a town search, it is identified
// by Docket.
type Case struct {
	Name       string
	Docket     string
	RawAddress string
	Town       string

	// Defendant is derived from Name until the detail page is fetched.
	Defendant           string
	PropertyAddressText string
	// PropertyAddress is nil until the detail page was fetched and its
	// address text could be parsed.
	PropertyAddress *address.Address
}

// DocketUrl is the public detail page of the case.
func (c Case) DocketUrl() string {
	return DetailUrl(DefaultDetailLayout.BaseUrl, c.Docket)
}

// DetailUrl removes the hyphens from a docket number and appends it to base.
func DetailUrl(base, docket string) string {
	return base + strings.ReplaceAll(docket, "-", "")
}

// defendantOf returns the text after the last " v. " in a case name, or the
// whole name if there is none.
func defendantOf(caseName string) string {
	idx := strings.LastIndex(caseName, " v. ")
	if idx < 0 {
		return caseName
	}
	return strings.TrimSpace(caseName[idx+len(" v. "):])
}

// Detail is what the detail page of a case contributes, either field can be
// empty if the page did not contain it.
type Detail struct {
	Defendant       string
	PropertyAddress string
}

type State string

const (
	STATE_INIT             State = "INIT"
	STATE_SEARCH_SUBMITTED State = "SEARCH_SUBMITTED"
	STATE_RESULTS_PARSED   State = "RESULTS_PARSED"
	STATE_DETAIL_FETCH     State = "DETAIL_FETCH"
	STATE_DONE             State = "DONE"
)

// CaseFailure is a problem with a single case that did not stop the run.
type CaseFailure struct {
	Docket string
	Err    error
}

// Run is the outcome of scraping a single town.
type Run struct {
	Town     string
	Cases    []Case
	Failures []CaseFailure
	// State is the last state the run reached.
	State State
}
