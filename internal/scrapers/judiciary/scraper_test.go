package judiciary

import (
	"casetrace-backend/internal/address"
	"casetrace-backend/internal/components/telemetry"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestScraper(renderer Renderer, tel telemetry.API) Scraper {
	return NewScraper(renderer, DefaultOptions(), tel)
}

func TestScraperRun(t *testing.T) {
	session := &fakeSession{pages: map[string]fakePage{
		DefaultSearchLayout.Url: {markup: resultsPage(
			resultRow("Middletown", "12 Elm St", "US Bank v. Smith", "MMX-CV24-1"),
			resultRow("Middletown", "4 Oak Ave", "Chase v. Doe", "MMX-CV24-2"),
			resultRow("Middletown", "See Clerk's Note", "Citi v. Roe", "MMX-CV24-3"),
			resultRow("Middletown", "9 Pine Rd", "Ally v. Poe", "MMX-CV24-4"),
		)},
		DetailUrl(DefaultDetailLayout.BaseUrl, "MMX-CV24-1"): {
			markup: detailPage("SMITH, JOHN", "12 Elm St, Middletown, CT 06457"),
		},
		DetailUrl(DefaultDetailLayout.BaseUrl, "MMX-CV24-2"): {
			err: fmt.Errorf("wait for content: %w", ErrWaitTimeout),
		},
		DetailUrl(DefaultDetailLayout.BaseUrl, "MMX-CV24-3"): {
			markup: detailPage("ROE, RICHARD", "See Clerk's Note, , "),
		},
		DetailUrl(DefaultDetailLayout.BaseUrl, "MMX-CV24-4"): {
			markup: detailPage("", "9 Pine Rd, , CT 06457"),
		},
	}}

	tel := &telemetry.Recorder{}
	run, err := newTestScraper(fakeRenderer{session: session}, tel).Run(context.Background(), "Middletown")
	require.NoError(t, err)
	require.Equal(t, STATE_DONE, run.State)
	require.Equal(t, 1, session.closed)
	require.Len(t, run.Cases, 4)

	first := run.Cases[0]
	require.Equal(t, "SMITH, JOHN", first.Defendant)
	require.Equal(t, &address.Address{Street: "12 Elm St", City: "Middletown", State: "CT", Zip: "06457"}, first.PropertyAddress)

	// the failed case keeps what the results page gave it
	second := run.Cases[1]
	require.Equal(t, "Doe", second.Defendant)
	require.Nil(t, second.PropertyAddress)

	require.Nil(t, run.Cases[2].PropertyAddress)

	// an empty city falls back to the searched town, a missing defendant
	// keeps the one derived from the case name
	fourth := run.Cases[3]
	require.Equal(t, "Poe", fourth.Defendant)
	require.Equal(t, "Middletown", fourth.PropertyAddress.City)

	require.Len(t, run.Failures, 2)
	require.Equal(t, "MMX-CV24-2", run.Failures[0].Docket)
	var fetchFailure *DetailFetchFailure
	require.ErrorAs(t, run.Failures[0].Err, &fetchFailure)
	require.Equal(t, FAILURE_TIMEOUT, fetchFailure.Reason)

	require.Equal(t, "MMX-CV24-3", run.Failures[1].Docket)
	var parseFailure *address.ParseFailure
	require.ErrorAs(t, run.Failures[1].Err, &parseFailure)
	require.Equal(t, address.PLACEHOLDER_ADDRESS, parseFailure.Reason)

	// search first, then every detail page in result order
	require.Len(t, session.requests, 5)
	search := session.requests[0]
	require.Equal(t, []FormInput{{Id: DefaultSearchLayout.TownInputId, Value: "Middletown"}}, search.Inputs)
	require.Equal(t, DefaultSearchLayout.SubmitId, search.SubmitId)
	require.True(t, search.WaitOptional)
	for i, req := range session.requests[1:] {
		require.Equal(t, run.Cases[i].DocketUrl(), req.Url)
		require.Equal(t, DefaultDetailLayout.ContentId, req.WaitForId)
		require.False(t, req.WaitOptional)
	}
}

func TestScraperRunNoResults(t *testing.T) {
	session := &fakeSession{pages: map[string]fakePage{
		DefaultSearchLayout.Url: {markup: resultsPage()},
	}}
	run, err := newTestScraper(fakeRenderer{session: session}, &telemetry.Recorder{}).
		Run(context.Background(), "Union")
	require.NoError(t, err)
	require.Empty(t, run.Cases)
	require.Equal(t, STATE_DONE, run.State)
	require.Equal(t, 1, session.closed)
	require.Len(t, session.requests, 1)
}

func TestScraperRunFailures(t *testing.T) {
	t.Run("acquire", func(t *testing.T) {
		tel := &telemetry.Recorder{}
		run, err := newTestScraper(fakeRenderer{err: errors.New("no chrome")}, tel).
			Run(context.Background(), "Union")

		var runErr *RunError
		require.ErrorAs(t, err, &runErr)
		require.Equal(t, STATE_INIT, runErr.State)
		require.Empty(t, run.Cases)
		require.Len(t, tel.Reports(telemetry.KindBroken), 1)
	})

	t.Run("missing controls", func(t *testing.T) {
		session := &fakeSession{pages: map[string]fakePage{
			DefaultSearchLayout.Url: {err: fmt.Errorf("input: %w", ErrElementMissing)},
		}}
		run, err := newTestScraper(fakeRenderer{session: session}, &telemetry.Recorder{}).
			Run(context.Background(), "Union")

		var runErr *RunError
		require.ErrorAs(t, err, &runErr)
		require.Equal(t, STATE_SEARCH_SUBMITTED, runErr.State)
		require.ErrorIs(t, err, ErrSearchControlsMissing)
		require.Empty(t, run.Cases)
		require.Equal(t, 1, session.closed)
	})

	t.Run("panic releases session", func(t *testing.T) {
		session := &fakeSession{
			pages: map[string]fakePage{
				DefaultSearchLayout.Url: {markup: resultsPage(
					resultRow("Union", "1 Main St", "A v. B", "TTD-CV24-1"),
				)},
			},
			panicOn: DetailUrl(DefaultDetailLayout.BaseUrl, "TTD-CV24-1"),
		}
		scraper := newTestScraper(fakeRenderer{session: session}, &telemetry.Recorder{})
		require.Panics(t, func() {
			_, _ = scraper.Run(context.Background(), "Union")
		})
		require.Equal(t, 1, session.closed)
	})

	t.Run("cancelled", func(t *testing.T) {
		session := &fakeSession{pages: map[string]fakePage{
			DefaultSearchLayout.Url: {markup: resultsPage(
				resultRow("Union", "1 Main St", "A v. B", "TTD-CV24-1"),
			)},
		}}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		run, err := newTestScraper(fakeRenderer{session: session}, &telemetry.Recorder{}).Run(ctx, "Union")
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, STATE_DETAIL_FETCH, run.State)
		require.Len(t, run.Cases, 1)
		require.Equal(t, 1, session.closed)
	})
}

func TestDetailExtractorFetch(t *testing.T) {
	docket := "HHD-CV23-6000001-S"
	session := &fakeSession{pages: map[string]fakePage{
		DetailUrl(DefaultDetailLayout.BaseUrl, docket):   {markup: detailPage("DOE, JANE", "")},
		DetailUrl(DefaultDetailLayout.BaseUrl, "broken"): {err: errors.New("tab crashed")},
	}}
	extractor := NewDetailExtractor(DefaultDetailLayout, DefaultOptions().WaitTimeout, &telemetry.Recorder{})

	detail, err := extractor.Fetch(context.Background(), session, docket)
	require.NoError(t, err)
	require.Equal(t, Detail{Defendant: "DOE, JANE"}, detail)

	_, err = extractor.Fetch(context.Background(), session, "broken")
	var failure *DetailFetchFailure
	require.ErrorAs(t, err, &failure)
	require.Equal(t, FAILURE_RENDER, failure.Reason)
	require.Equal(t, "broken", failure.Docket)
}
