package judiciary

import (
	"casetrace-backend/internal/components/assert"
	"casetrace-backend/internal/components/telemetry"
	"casetrace-backend/pkg/htmlutil"
	"context"
	"errors"
	"fmt"
	"time"
)

const report_detail_fetch = "detail.fetch"

// ExtractDetail reads the defendant and property address off the markup of
// a detail page, missing elements leave their field empty.
func ExtractDetail(markup string, layout DetailLayout) (Detail, error) {
	doc, err := htmlutil.ParseDocument(markup)
	if err != nil {
		return Detail{}, err
	}
	return Detail{
		Defendant:       htmlutil.Text(doc.Find("#" + layout.DefendantId).First()),
		PropertyAddress: htmlutil.Text(doc.Find("#" + layout.AddressId).First()),
	}, nil
}

type DetailExtractor struct {
	layout  DetailLayout
	timeout time.Duration
	tel     telemetry.API
}

func NewDetailExtractor(layout DetailLayout, timeout time.Duration, tel telemetry.API) DetailExtractor {
	assert.NotNil(tel)
	assert.Positive(int64(timeout), "detail wait timeout")
	return DetailExtractor{layout: layout, timeout: timeout, tel: tel}
}

// Fetch loads the detail page of a docket in session, failures are always a
// *DetailFetchFailure.
func (e DetailExtractor) Fetch(ctx context.Context, session Session, docket string) (Detail, error) {
	url := DetailUrl(e.layout.BaseUrl, docket)
	markup, err := session.Render(ctx, RenderRequest{
		Url:       url,
		WaitForId: e.layout.ContentId,
		Timeout:   e.timeout,
	})
	if err != nil {
		reason := FAILURE_RENDER
		if errors.Is(err, ErrWaitTimeout) {
			reason = FAILURE_TIMEOUT
		}
		e.tel.ReportWarning(report_detail_fetch, err, docket, reason)
		return Detail{}, &DetailFetchFailure{Docket: docket, Reason: reason, Err: err}
	}

	detail, err := ExtractDetail(markup, e.layout)
	if err != nil {
		e.tel.ReportBroken(report_detail_fetch, fmt.Errorf("parse markup: %w", err), docket)
		return Detail{}, &DetailFetchFailure{Docket: docket, Reason: FAILURE_RENDER, Err: err}
	}
	if detail.Defendant == "" || detail.PropertyAddress == "" {
		e.tel.ReportDebug("partial detail", docket, detail.Defendant, detail.PropertyAddress)
	}
	return detail, nil
}
