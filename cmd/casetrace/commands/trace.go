package commands

import (
	"casetrace-backend/internal/address"
	"casetrace-backend/internal/export"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

type traceFlags struct {
	output       *string
	format       *string
	apiKey       *string
	prettyPhones *bool
}

func addTraceFlags(cmd *cobra.Command, defaultOutput string) traceFlags {
	return traceFlags{
		output:       cmd.Flags().String("output", defaultOutput, "The file to write the results to."),
		format:       cmd.Flags().String("format", "csv", "The output format, csv or excel."),
		apiKey:       cmd.Flags().String("api-key", "", "The BatchData api key, overrides the config and "+apiKeyEnv+"."),
		prettyPhones: cmd.Flags().Bool("pretty-phones", false, "Write phones as (xxx) xxx-xxxx."),
	}
}

var (
	traceInput *string
	traceOpts  traceFlags
)

func init() {
	traceInput = traceCmd.Flags().String("input", "addresses.csv", "A csv with street, city, state and zip columns.")
	traceOpts = addTraceFlags(traceCmd, "results.csv")
	rootCmd.AddCommand(traceCmd)
}

var traceCmd = &cobra.Command{
	Use:   "trace [--input <addresses.csv>] [--output <results.csv>] [--format csv|excel]",
	Short: "Skip traces every address of a csv.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		format, err := export.ParseFormat(*traceOpts.format)
		if err != nil {
			return err
		}
		f, err := os.Open(*traceInput)
		if err != nil {
			return err
		}
		addresses, skipped, err := export.ReadAddresses(f)
		f.Close()
		if err != nil {
			return err
		}
		logSkippedRows(skipped)
		fmt.Printf("Loaded %d addresses from %s.\n", len(addresses), *traceInput)
		if len(addresses) == 0 {
			return errEmptyResult
		}

		pipeline, err := newPipeline(*traceOpts.apiKey)
		if err != nil {
			return err
		}
		result := pipeline.Run(ctx, addresses)
		logFailures(result)

		store, database, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		err = store.SaveBatch(ctx, cfg.Batchdata.Environment, result, nil)
		if err != nil {
			return fmt.Errorf("save results: %w", err)
		}

		return writeResults(*traceOpts.output, format, *traceOpts.prettyPhones, result)
	},
}

func logSkippedRows(skipped []export.SkippedRow) {
	counts := map[address.Reason]int{}
	for _, row := range skipped {
		var failure *address.ParseFailure
		if errors.As(row.Err, &failure) {
			slog.Info("skipped row", "row", row.Row, "reason", failure.Reason, "address", failure.Input)
			counts[failure.Reason]++
			continue
		}
		slog.Info("skipped row", "row", row.Row, "err", row.Err.Error())
	}
	for reason, count := range counts {
		fmt.Printf("Skipped %d rows: %s\n", count, reason)
	}
}
