package judiciary

import (
	"casetrace-backend/internal/address"
	"casetrace-backend/internal/components/assert"
	"casetrace-backend/internal/components/telemetry"
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_scraper_run     = "scraper.run"
	report_scraper_session = "scraper.session"
	report_scraper_address = "scraper.parse-address"
)

var tracer = otel.Tracer("casetrace-backend/internal/scrapers/judiciary")

type Options struct {
	Search SearchLayout
	Detail DetailLayout
	// WaitTimeout bounds how long a page waits for its results table or
	// content container.
	WaitTimeout time.Duration
	// Parser parses the property addresses on detail pages, an empty
	// FallbackTown falls back to the searched town.
	Parser address.Parser
}

func DefaultOptions() Options {
	return Options{
		Search:      DefaultSearchLayout,
		Detail:      DefaultDetailLayout,
		WaitTimeout: 10 * time.Second,
		Parser:      address.NewParser(""),
	}
}

// Scraper finds the foreclosure cases of a town and fills them in from their
// detail pages.
type Scraper struct {
	renderer Renderer
	options  Options
	details  DetailExtractor
	tel      telemetry.API
}

func NewScraper(renderer Renderer, options Options, tel telemetry.API) Scraper {
	assert.NotNil(renderer)
	assert.NotNil(tel)
	assert.NotEmptyStr(options.Search.Url, "search url")

	tel = telemetry.NewScopedAPI("judiciary", tel)
	return Scraper{
		renderer: renderer,
		options:  options,
		details:  NewDetailExtractor(options.Detail, options.WaitTimeout, tel),
		tel:      tel,
	}
}

// Run scrapes every case of a town.
//
// A run that finds no cases returns an empty Run and a nil error. A failure
// that ends the run is a *RunError, failures of single cases are kept in
// Run.Failures instead.
func (s Scraper) Run(ctx context.Context, town string) (run Run, err error) {
	ctx, span := tracer.Start(ctx, "judiciary.Run")
	span.SetAttributes(attribute.String("town", town))
	defer func() {
		span.SetAttributes(
			attribute.Int("cases", len(run.Cases)),
			attribute.Int("failures", len(run.Failures)),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	run = Run{Town: town, State: STATE_INIT}

	session, err := s.renderer.Acquire(ctx)
	if err != nil {
		s.tel.ReportBroken(report_scraper_run, fmt.Errorf("acquire session: %w", err), town)
		return run, &RunError{State: STATE_INIT, Err: err}
	}
	defer func() {
		closeErr := session.Close()
		if closeErr != nil {
			s.tel.ReportWarning(report_scraper_session, fmt.Errorf("close: %w", closeErr))
		}
	}()

	run.State = STATE_SEARCH_SUBMITTED
	markup, err := session.Render(ctx, RenderRequest{
		Url: s.options.Search.Url,
		Inputs: []FormInput{
			{Id: s.options.Search.TownInputId, Value: town},
		},
		SubmitId:     s.options.Search.SubmitId,
		WaitForId:    s.options.Search.ResultsTableId,
		WaitOptional: true,
		Timeout:      s.options.WaitTimeout,
	})
	if errors.Is(err, ErrElementMissing) {
		err = fmt.Errorf("%w: %w", ErrSearchControlsMissing, err)
	}
	if err != nil {
		s.tel.ReportBroken(report_scraper_run, fmt.Errorf("submit search: %w", err), town)
		return run, &RunError{State: STATE_SEARCH_SUBMITTED, Err: err}
	}

	run.State = STATE_RESULTS_PARSED
	cases := ExtractResults(markup, s.options.Search)
	s.tel.ReportCount(report_scraper_run, int64(len(cases)))
	if len(cases) == 0 {
		s.tel.ReportDebug("no cases found", town)
		run.State = STATE_DONE
		return run, nil
	}

	parser := s.options.Parser
	if parser.FallbackTown == "" {
		parser.FallbackTown = town
	}

	run.State = STATE_DETAIL_FETCH
	run.Cases = cases
	for i := range run.Cases {
		if ctx.Err() != nil {
			return run, &RunError{State: STATE_DETAIL_FETCH, Err: ctx.Err()}
		}
		failure := s.fillDetail(ctx, session, parser, &run.Cases[i])
		if failure != nil {
			run.Failures = append(run.Failures, *failure)
		}
		s.tel.ReportDebug("fetched case", i+1, len(run.Cases), run.Cases[i].Docket)
	}

	run.State = STATE_DONE
	return run, nil
}

func (s Scraper) fillDetail(ctx context.Context, session Session, parser address.Parser, c *Case) *CaseFailure {
	detail, err := s.details.Fetch(ctx, session, c.Docket)
	if err != nil {
		return &CaseFailure{Docket: c.Docket, Err: err}
	}
	if detail.Defendant != "" {
		c.Defendant = detail.Defendant
	}
	c.PropertyAddressText = detail.PropertyAddress

	text := c.PropertyAddressText
	if text == "" {
		text = c.RawAddress
	}
	parsed, err := parser.Parse(text)
	if err != nil {
		s.tel.ReportWarning(report_scraper_address, err, c.Docket)
		return &CaseFailure{Docket: c.Docket, Err: err}
	}
	c.PropertyAddress = &parsed
	return nil
}
