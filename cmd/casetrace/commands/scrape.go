package commands

import (
	"casetrace-backend/internal/export"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	scrapeTownFlag *string
	scrapeOut      *string
)

func init() {
	scrapeTownFlag = scrapeCmd.Flags().String("town", "", "The town to search cases for.")
	scrapeOut = scrapeCmd.Flags().String("out", "", "Optionally write the cases to this csv.")
	scrapeCmd.MarkFlagRequired("town")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape --town <town> [--out <cases.csv>]",
	Short: "Scrapes the foreclosure cases of a town and stores them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		town, err := resolveTown(*scrapeTownFlag)
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

		store, database, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		err = store.SaveCases(ctx, run.Cases)
		if err != nil {
			return fmt.Errorf("save cases: %w", err)
		}

		if *scrapeOut != "" {
			err = writeFile(*scrapeOut, func(w io.Writer) error {
				return export.WriteCases(w, run.Cases)
			})
			if err != nil {
				return fmt.Errorf("write %s: %w", *scrapeOut, err)
			}
		}

		printCases(run.Cases)
		fmt.Printf("Found %d cases for %s, %d could not be completed.\n", len(run.Cases), town, len(run.Failures))
		return nil
	},
}
