package commands

import (
	"casetrace-backend/internal/address"
	"casetrace-backend/internal/batchdata"
	"casetrace-backend/internal/components/chrono"
	"casetrace-backend/internal/components/db"
	"casetrace-backend/internal/components/telemetry"
	"casetrace-backend/internal/export"
	"casetrace-backend/internal/scrapers/judiciary"
	"casetrace-backend/internal/skiptrace"
	"casetrace-backend/internal/store"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

var errEmptyResult = errors.New("no records were produced")

func newTel() telemetry.API {
	return telemetry.SlogAPI{}
}

func openStore(ctx context.Context) (store.Store, *sql.DB, error) {
	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return store.Store{}, nil, fmt.Errorf("open database: %w", err)
	}
	return store.NewStore(database, chrono.NewStandardImpl(), newTel()), database, nil
}

// resolveTown maps user input onto one of the towns the court accepts.
func resolveTown(input string) (string, error) {
	match, ok := address.MatchTown(input)
	if !ok {
		return "", fmt.Errorf("'%s' is not a connecticut town, see `casetrace towns`", input)
	}
	if !match.Exact {
		slog.Warn("town corrected", "input", input, "town", match.Town, "similarity", match.Similarity)
	}
	return match.Town, nil
}

func scrapeTown(ctx context.Context, town string) (judiciary.Run, error) {
	tel := newTel()
	renderer := judiciary.NewChromeRenderer(judiciary.ChromeOptions{
		Headless: *cfg.Scraper.Headless,
	}, tel)

	options := judiciary.DefaultOptions()
	options.WaitTimeout = time.Duration(cfg.Scraper.WaitTimeoutSeconds) * time.Second
	options.Parser = address.NewParser("", cfg.Scraper.PlaceholderTokens...)

	run, err := judiciary.NewScraper(renderer, options, tel).Run(ctx, town)
	if err != nil {
		if errors.Is(err, judiciary.ErrSearchControlsMissing) {
			return run, fmt.Errorf("the search page layout has changed: %w", err)
		}
		return run, err
	}

	for _, failure := range run.Failures {
		slog.Warn("case skipped", "docket", failure.Docket, "err", failure.Err.Error())
	}
	if len(run.Cases) == 0 {
		slog.Info("search finished without matches", "town", town)
	} else {
		slog.Info("scraped town", "town", town, "cases", len(run.Cases), "failures", len(run.Failures))
	}
	return run, nil
}

func newPipeline(apiKeyFlag string) (skiptrace.Pipeline, error) {
	tel := newTel()
	options := cfg.Batchdata.Options(apiKeyFlag)
	if *dumpHttp != "" {
		output, err := telemetry.NewDirOutput(*dumpHttp)
		if err != nil {
			return skiptrace.Pipeline{}, fmt.Errorf("create dump dir: %w", err)
		}
		options.DumpOutput = output
	}

	client, err := batchdata.NewClient(options, chrono.NewStandardImpl(), tel)
	if err != nil {
		return skiptrace.Pipeline{}, fmt.Errorf("%w (set it in the config, with --api-key or with %s)", err, apiKeyEnv)
	}
	processor := skiptrace.NewProcessor(cfg.Skiptrace.MinPhoneScore)
	return skiptrace.NewPipeline(client, processor, tel), nil
}

func logFailures(result skiptrace.BatchResult) {
	for _, failure := range result.Failures {
		slog.Warn(
			"address skipped",
			"address", failure.Address.String(),
			"kind", failure.Kind,
			"err", failure.Err.Error(),
		)
	}
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = write(f)
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeResults writes the output file and prints the summary, it fails when
// the batch produced nothing.
func writeResults(output string, format export.Format, prettyPhones bool, result skiptrace.BatchResult) error {
	export.PrintSummary(os.Stdout, export.Summarize(result))
	if len(result.Records) == 0 {
		return errEmptyResult
	}

	output = format.OutputPath(output)
	err := writeFile(output, func(w io.Writer) error {
		return export.WriteRecords(w, format, result, export.Options{PrettyPhones: prettyPhones})
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	slog.Info("wrote results", "path", output, "records", len(result.Records))
	return nil
}

func printCases(cases []judiciary.Case) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Docket", "Defendant", "Property Address"})
	for _, c := range cases {
		addr := c.PropertyAddressText
		if c.PropertyAddress != nil {
			addr = c.PropertyAddress.String()
		}
		t.AppendRow(table.Row{c.Docket, c.Defendant, addr})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
