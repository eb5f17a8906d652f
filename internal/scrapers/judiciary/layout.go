package judiciary

// SearchLayout describes the property address search page. The column indices
// are tied to the page, a change in their order is a change of the site.
type SearchLayout struct {
	Url            string
	TownInputId    string
	SubmitId       string
	ResultsTableId string

	TownColumn    int
	AddressColumn int
	NameColumn    int
	DocketColumn  int
	// MinCells is the least amount of cells a row needs to be considered a case.
	MinCells int
}

// DetailLayout describes the case detail page.
type DetailLayout struct {
	BaseUrl     string
	ContentId   string
	DefendantId string
	AddressId   string
}

var DefaultSearchLayout = SearchLayout{
	Url:            "https://civilinquiry.jud.ct.gov/PropertyAddressSearch.aspx",
	TownInputId:    "ctl00_ContentPlaceHolder1_txtCityTown",
	SubmitId:       "ctl00_ContentPlaceHolder1_btnSubmit",
	ResultsTableId: "ctl00_ContentPlaceHolder1_gvPropertyResults",

	TownColumn:    0,
	AddressColumn: 1,
	NameColumn:    3,
	DocketColumn:  4,
	MinCells:      5,
}

var DefaultDetailLayout = DetailLayout{
	BaseUrl:     "https://civilinquiry.jud.ct.gov/CaseDetail/PublicCaseDetail.aspx?DocketNo=",
	ContentId:   "ctl00_tblContent",
	DefendantId: "ctl00_ContentPlaceHolder1_CaseDetailParties1_gvParties_ctl05_lblPtyPartyName",
	AddressId:   "ctl00_ContentPlaceHolder1_CaseDetailBasicInfo1_lblPropertyAddress",
}
