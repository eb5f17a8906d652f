package batchdata

import (
	"casetrace-backend/internal/address"
	"casetrace-backend/internal/components/assert"
	"casetrace-backend/internal/components/chrono"
	"casetrace-backend/internal/components/telemetry"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

const (
	report_client_lookup = "client.lookup"
	report_client_decode = "client.decode"
)

const skipTracePath = "/property/skip-trace"

var tracer = otel.Tracer("casetrace-backend/internal/batchdata")

type Environment string

const (
	ENV_SANDBOX    Environment = "sandbox"
	ENV_PRODUCTION Environment = "production"
)

var baseUrls = map[Environment]string{
	ENV_SANDBOX:    "https://stoplight.io/mocks/batchdata/batchdata/20349728",
	ENV_PRODUCTION: "https://api.batchdata.com/api/v1",
}

// BaseUrl returns the api root of an environment.
func BaseUrl(env Environment) (string, bool) {
	url, ok := baseUrls[env]
	return url, ok
}

type Options struct {
	Environment Environment
	// BaseUrl overrides the url of Environment when set.
	BaseUrl string
	ApiKey  string

	// Timeout bounds a single attempt, it defaults to 30 seconds.
	Timeout time.Duration
	// MaxRetries is the amount of attempts made after the first one fails.
	MaxRetries int
	// BaseDelay is the wait before the first retry, it doubles for each
	// retry after. It defaults to 1 second.
	BaseDelay time.Duration
	// RequestsPerSecond paces requests made by the client, 0 disables pacing.
	RequestsPerSecond float64

	// DumpOutput optionally receives a dump of every request and response.
	DumpOutput telemetry.MessageOutput
}

// Client looks up owner contact information for property addresses through
// the BatchData skip trace api.
type Client struct {
	http    *resty.Client
	options Options
	sleep   chrono.SleepAPI
	tel     telemetry.API
}

func NewClient(options Options, sleep chrono.SleepAPI, tel telemetry.API) (Client, error) {
	assert.NotNil(sleep)
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("batchdata", tel)

	baseUrl := options.BaseUrl
	if baseUrl == "" {
		url, ok := BaseUrl(options.Environment)
		if !ok {
			return Client{}, fmt.Errorf("unknown environment '%s'", options.Environment)
		}
		baseUrl = url
	}
	if options.ApiKey == "" {
		return Client{}, fmt.Errorf("no api key given for environment '%s'", options.Environment)
	}
	if options.Timeout <= 0 {
		options.Timeout = 30 * time.Second
	}
	if options.BaseDelay <= 0 {
		options.BaseDelay = time.Second
	}
	if options.MaxRetries < 0 {
		options.MaxRetries = 0
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(baseUrl)
	httpClient.SetAuthToken(options.ApiKey)
	httpClient.SetHeader("content-type", "application/json")
	httpClient.SetHeader("accept", "application/json")
	httpClient.SetTimeout(options.Timeout)

	if options.RequestsPerSecond > 0 {
		// burst of 1 keeps requests evenly spaced
		rateLimiter := rate.NewLimiter(rate.Limit(options.RequestsPerSecond), 1)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel, options.DumpOutput)

	return Client{
		http:    httpClient,
		options: options,
		sleep:   sleep,
		tel:     tel,
	}, nil
}

func validate(addresses []address.Address) error {
	if len(addresses) == 0 {
		return &ValidationError{Index: -1}
	}
	for i, addr := range addresses {
		missing := addr.MissingFields()
		if len(missing) > 0 {
			return &ValidationError{Index: i, Missing: missing}
		}
	}
	return nil
}

// Lookup sends a single skip trace request for every given address.
//
// Transport errors, timeouts and non-2xx responses are retried up to
// MaxRetries times, waiting BaseDelay * 2^n between attempts. When the
// retries run out a *LookupExhaustedError is returned, invalid input is a
// *ValidationError and is never sent.
func (c Client) Lookup(ctx context.Context, addresses []address.Address) (res Response, err error) {
	err = validate(addresses)
	if err != nil {
		return Response{}, err
	}

	ctx, span := tracer.Start(ctx, "batchdata.Lookup")
	span.SetAttributes(attribute.Int("addresses", len(addresses)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	body := skipTraceRequest{Requests: make([]requestItem, len(addresses))}
	for i, addr := range addresses {
		body.Requests[i] = requestItem{PropertyAddress: requestAddress{
			Street: addr.Street,
			City:   addr.City,
			State:  addr.State,
			Zip:    addr.Zip,
		}}
	}

	attempts := 0
	var lastErr error
	for attempt := 0; attempt <= c.options.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.options.BaseDelay << (attempt - 1)
			c.tel.ReportDebug("retrying lookup", attempt, delay.String())
			err = c.sleep.Sleep(ctx, delay)
			if err != nil {
				return Response{}, fmt.Errorf("lookup: %w", err)
			}
		}

		attempts++
		out, retryable, postErr := c.post(ctx, body)
		if postErr == nil {
			span.SetAttributes(attribute.Int("attempts", attempts))
			return out, nil
		}
		if !retryable {
			return Response{}, postErr
		}
		lastErr = postErr
		c.tel.ReportWarning(report_client_lookup, postErr, attempts)
	}

	return Response{}, &LookupExhaustedError{Attempts: attempts, Err: lastErr}
}

// post makes a single attempt, retryable is false for failures that would
// fail the same way again.
func (c Client) post(ctx context.Context, body skipTraceRequest) (Response, bool, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(skipTracePath)
	if ctx.Err() != nil {
		return Response{}, false, fmt.Errorf("lookup: %w", ctx.Err())
	}
	if err != nil {
		return Response{}, true, fmt.Errorf("post: %w", err)
	}
	if res.IsError() || res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return Response{}, true, &StatusError{
			StatusCode: res.StatusCode(),
			Status:     res.Status(),
			Body:       res.String(),
		}
	}

	var out Response
	err = json.Unmarshal(res.Body(), &out)
	if err != nil {
		c.tel.ReportBroken(report_client_decode, err, res.String())
		return Response{}, false, fmt.Errorf("decode response: %w", err)
	}
	return out, true, nil
}
