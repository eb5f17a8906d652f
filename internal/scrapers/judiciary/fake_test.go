package judiciary

import (
	"context"
	"fmt"
	"sync"
)

type fakePage struct {
	markup string
	err    error
}

type fakeSession struct {
	mutex    sync.Mutex
	pages    map[string]fakePage
	requests []RenderRequest
	closed   int
	panicOn  string
}

func (s *fakeSession) Render(ctx context.Context, req RenderRequest) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.requests = append(s.requests, req)
	if s.panicOn != "" && req.Url == s.panicOn {
		panic("render exploded")
	}
	page, ok := s.pages[req.Url]
	if !ok {
		return "", fmt.Errorf("no page for %s", req.Url)
	}
	return page.markup, page.err
}

func (s *fakeSession) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closed++
	return nil
}

type fakeRenderer struct {
	session *fakeSession
	err     error
}

func (r fakeRenderer) Acquire(ctx context.Context) (Session, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.session, nil
}

func resultsPage(rows ...string) string {
	markup := `<html><body><table id="ctl00_ContentPlaceHolder1_gvPropertyResults">
<tr><th>Town</th><th>Address</th><th>Type</th><th>Case Name</th><th>Docket No</th></tr>`
	for _, row := range rows {
		markup += row
	}
	return markup + `</table></body></html>`
}

func resultRow(town, address, name, docket string) string {
	return fmt.Sprintf(
		"<tr><td>%s</td><td>%s</td><td>Foreclosure</td><td>%s</td><td>%s</td></tr>",
		town, address, name, docket,
	)
}

func detailPage(defendant, address string) string {
	markup := `<html><body><table id="ctl00_tblContent"><tr><td>`
	if defendant != "" {
		markup += fmt.Sprintf(`<span id="ctl00_ContentPlaceHolder1_CaseDetailParties1_gvParties_ctl05_lblPtyPartyName">%s</span>`, defendant)
	}
	if address != "" {
		markup += fmt.Sprintf(`<span id="ctl00_ContentPlaceHolder1_CaseDetailBasicInfo1_lblPropertyAddress">%s</span>`, address)
	}
	return markup + `</td></tr></table></body></html>`
}
