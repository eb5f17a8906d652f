package commands

import (
	"casetrace-backend/internal/address"
	"casetrace-backend/internal/export"
	"casetrace-backend/internal/scrapers/judiciary"
	"casetrace-backend/internal/store"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	runTown *string
	runOpts traceFlags
)

func init() {
	runTown = runCmd.Flags().String("town", "", "The town to search cases for.")
	runOpts = addTraceFlags(runCmd, "results.csv")
	runCmd.MarkFlagRequired("town")
	rootCmd.AddCommand(runCmd)
}

// uniqueAddresses returns the parsed property addresses of the cases in
// order, each address once.
func uniqueAddresses(cases []judiciary.Case) []address.Address {
	seen := map[string]bool{}
	var out []address.Address
	for _, c := range cases {
		if c.PropertyAddress == nil {
			continue
		}
		key := c.PropertyAddress.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, *c.PropertyAddress)
	}
	return out
}

var runCmd = &cobra.Command{
	Use:   "run --town <town> [--output <results.csv>] [--format csv|excel]",
	Short: "Scrapes a town and skip traces the property addresses of its cases.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		format, err := export.ParseFormat(*runOpts.format)
		if err != nil {
			return err
		}
		town, err := resolveTown(*runTown)
		if err != nil {
			return err
		}
		// fail on a missing key before spending time on the scrape
		pipeline, err := newPipeline(*runOpts.apiKey)
		if err != nil {
			return err
		}

		run, err := scrapeTown(ctx, town)
		if err != nil {
			return err
		}
		if len(run.Cases) == 0 {
			fmt.Printf("No cases found for %s.\n", town)
			return nil
		}

		s, database, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		err = s.SaveCases(ctx, run.Cases)
		if err != nil {
			return fmt.Errorf("save cases: %w", err)
		}

		addresses := uniqueAddresses(run.Cases)
		fmt.Printf("Found %d cases for %s, tracing %d addresses.\n", len(run.Cases), town, len(addresses))
		if len(addresses) == 0 {
			return errEmptyResult
		}

		result := pipeline.Run(ctx, addresses)
		logFailures(result)

		err = s.SaveBatch(ctx, cfg.Batchdata.Environment, result, store.NewDocketIndex(run.Cases))
		if err != nil {
			return fmt.Errorf("save results: %w", err)
		}
		return writeResults(*runOpts.output, format, *runOpts.prettyPhones, result)
	},
}
