package skiptrace

import (
	"casetrace-backend/internal/address"
	"casetrace-backend/internal/batchdata"
	"casetrace-backend/internal/components/assert"
	"casetrace-backend/internal/components/telemetry"
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const (
	report_pipeline_run     = "pipeline.run"
	report_pipeline_address = "pipeline.address"
	report_pipeline_metrics = "pipeline.metrics"
)

var meter = otel.Meter("casetrace-backend/internal/skiptrace")

// Lookup is what the pipeline needs from a contact lookup client.
//
// note: fault injection point
type Lookup interface {
	Lookup(ctx context.Context, addresses []address.Address) (batchdata.Response, error)
}

// Pipeline looks up and normalizes addresses one at a time.
type Pipeline struct {
	lookup    Lookup
	processor Processor
	tel       telemetry.API

	recordCounter  metric.Int64Counter
	failureCounter metric.Int64Counter
}

func NewPipeline(lookup Lookup, processor Processor, tel telemetry.API) Pipeline {
	assert.NotNil(lookup)
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("skiptrace", tel)

	var recordCounter metric.Int64Counter = noop.Int64Counter{}
	counter, err := meter.Int64Counter("skiptrace.records", metric.WithDescription("addresses that produced a record"))
	if err != nil {
		tel.ReportWarning(report_pipeline_metrics, err)
	} else {
		recordCounter = counter
	}
	var failureCounter metric.Int64Counter = noop.Int64Counter{}
	counter, err = meter.Int64Counter("skiptrace.failures", metric.WithDescription("addresses that did not produce a record"))
	if err != nil {
		tel.ReportWarning(report_pipeline_metrics, err)
	} else {
		failureCounter = counter
	}

	return Pipeline{
		lookup:         lookup,
		processor:      processor,
		tel:            tel,
		recordCounter:  recordCounter,
		failureCounter: failureCounter,
	}
}

func classify(err error) FailureKind {
	var exhausted *batchdata.LookupExhaustedError
	var validation *batchdata.ValidationError
	switch {
	case errors.Is(err, ErrNoMatch):
		return KIND_NO_MATCH
	case errors.As(err, &exhausted):
		return KIND_LOOKUP_EXHAUSTED
	case errors.As(err, &validation):
		return KIND_VALIDATION
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KIND_CANCELLED
	default:
		return KIND_UNEXPECTED
	}
}

// traceOne looks up a single address, panics are turned into errors.
func (p Pipeline) traceOne(ctx context.Context, addr address.Address) (record Record, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("panic: %v", recovered)
		}
	}()

	res, err := p.lookup.Lookup(ctx, []address.Address{addr})
	if err != nil {
		return nil, err
	}
	return p.processor.Process(res)
}

// Run traces every address in order. It never fails, every address ends up
// either as a record or as a failure.
func (p Pipeline) Run(ctx context.Context, addresses []address.Address) BatchResult {
	var result BatchResult
	for i, addr := range addresses {
		p.tel.ReportDebug("processing", i+1, len(addresses), addr.String())

		record, err := p.traceOne(ctx, addr)
		if err != nil {
			kind := classify(err)
			result.Failures = append(result.Failures, Failure{Address: addr, Kind: kind, Err: err})
			p.failureCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(kind))))
			if kind == KIND_UNEXPECTED {
				p.tel.ReportBroken(report_pipeline_address, err, addr.String())
			} else {
				p.tel.ReportWarning(report_pipeline_address, err, addr.String(), kind)
			}
			continue
		}

		result.Records = append(result.Records, Entry{Address: addr, Record: record})
		p.recordCounter.Add(ctx, 1)
	}

	result.Columns = presentColumns(result.Records)
	p.tel.ReportCount(report_pipeline_run, int64(len(result.Records)))
	return result
}

// presentColumns returns the canonical columns that at least one record has.
func presentColumns(entries []Entry) []string {
	var columns []string
	for _, col := range CanonicalColumns {
		for _, entry := range entries {
			if _, ok := entry.Record[col]; ok {
				columns = append(columns, col)
				break
			}
		}
	}
	return columns
}
