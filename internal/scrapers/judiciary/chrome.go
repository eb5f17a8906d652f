package judiciary

import (
	"casetrace-backend/internal/components/assert"
	"casetrace-backend/internal/components/telemetry"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	report_chrome_acquire = "chrome.acquire"
	report_chrome_render  = "chrome.render"
)

type ChromeOptions struct {
	Headless bool
	// NavigateTimeout bounds every page load, it defaults to 30 seconds.
	NavigateTimeout time.Duration
	// ControlTimeout bounds looking up an input or button, it defaults to 5 seconds.
	ControlTimeout time.Duration
}

// ChromeRenderer renders pages with a local chrome instance through the
// devtools protocol, each session is its own browser process.
type ChromeRenderer struct {
	options ChromeOptions
	tel     telemetry.API
}

func NewChromeRenderer(options ChromeOptions, tel telemetry.API) ChromeRenderer {
	assert.NotNil(tel)
	if options.NavigateTimeout <= 0 {
		options.NavigateTimeout = 30 * time.Second
	}
	if options.ControlTimeout <= 0 {
		options.ControlTimeout = 5 * time.Second
	}
	return ChromeRenderer{
		options: options,
		tel:     telemetry.NewScopedAPI("judiciary", tel),
	}
}

func (r ChromeRenderer) Acquire(ctx context.Context) (Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", r.options.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// the first run starts the browser, it is done here so a missing or
	// broken chrome fails the acquisition instead of the first render.
	err := chromedp.Run(browserCtx)
	if err != nil {
		browserCancel()
		allocCancel()
		r.tel.ReportBroken(report_chrome_acquire, err)
		return nil, fmt.Errorf("start browser: %w", err)
	}

	return &chromeSession{
		options:     r.options,
		browser:     browserCtx,
		cancelAlloc: allocCancel,
		tel:         r.tel,
	}, nil
}

type chromeSession struct {
	options     ChromeOptions
	browser     context.Context
	cancelAlloc context.CancelFunc
	tel         telemetry.API
}

var errDeadline = errors.New("deadline")

// run runs actions against the browser bounded by timeout, it returns
// errDeadline if the timeout was hit and ctx.Err() if ctx was done first.
func (s *chromeSession) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if timeout <= 0 {
		timeout = s.options.NavigateTimeout
	}
	taskCtx, cancel := context.WithTimeout(s.browser, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(taskCtx, actions...)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil && errors.Is(taskCtx.Err(), context.DeadlineExceeded) {
		return errDeadline
	}
	return err
}

func (s *chromeSession) Render(ctx context.Context, req RenderRequest) (string, error) {
	err := s.run(ctx, s.options.NavigateTimeout, chromedp.Navigate(req.Url))
	if errors.Is(err, errDeadline) {
		return "", fmt.Errorf("navigate %s: %w", req.Url, ErrWaitTimeout)
	}
	if err != nil {
		s.tel.ReportWarning(report_chrome_render, fmt.Errorf("navigate: %w", err), req.Url)
		return "", fmt.Errorf("navigate %s: %w", req.Url, err)
	}

	for _, input := range req.Inputs {
		err = s.run(
			ctx, s.options.ControlTimeout,
			chromedp.WaitVisible(input.Id, chromedp.ByID),
			chromedp.SendKeys(input.Id, input.Value, chromedp.ByID),
		)
		if errors.Is(err, errDeadline) {
			return "", fmt.Errorf("input %s: %w", input.Id, ErrElementMissing)
		}
		if err != nil {
			return "", fmt.Errorf("input %s: %w", input.Id, err)
		}
	}

	if req.SubmitId != "" {
		err = s.run(
			ctx, s.options.ControlTimeout,
			chromedp.WaitVisible(req.SubmitId, chromedp.ByID),
			chromedp.Click(req.SubmitId, chromedp.ByID),
		)
		if errors.Is(err, errDeadline) {
			return "", fmt.Errorf("submit %s: %w", req.SubmitId, ErrElementMissing)
		}
		if err != nil {
			return "", fmt.Errorf("submit %s: %w", req.SubmitId, err)
		}
	}

	if req.WaitForId != "" {
		err = s.run(ctx, req.Timeout, chromedp.WaitReady(req.WaitForId, chromedp.ByID))
		switch {
		case errors.Is(err, errDeadline) && req.WaitOptional:
			s.tel.ReportDebug("wait skipped", req.Url, req.WaitForId)
		case errors.Is(err, errDeadline):
			return "", fmt.Errorf("wait for %s: %w", req.WaitForId, ErrWaitTimeout)
		case err != nil:
			return "", fmt.Errorf("wait for %s: %w", req.WaitForId, err)
		}
	}

	var markup string
	err = s.run(ctx, s.options.NavigateTimeout, chromedp.OuterHTML("html", &markup, chromedp.ByQuery))
	if errors.Is(err, errDeadline) {
		return "", fmt.Errorf("read markup: %w", ErrWaitTimeout)
	}
	if err != nil {
		return "", fmt.Errorf("read markup: %w", err)
	}
	return markup, nil
}

// Close closes the browser and waits for it to exit.
func (s *chromeSession) Close() error {
	defer s.cancelAlloc()
	return chromedp.Cancel(s.browser)
}
