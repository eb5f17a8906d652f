package commands

import (
	"casetrace-backend/internal/address"
	"casetrace-backend/internal/export"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	addressesInput  *string
	addressesOutput *string
)

func init() {
	addressesInput = addressesCmd.Flags().String("input", "cases.csv", "A case csv with a \"Property Address\" column.")
	addressesOutput = addressesCmd.Flags().String("output", "addresses.csv", "The address csv to write.")
	rootCmd.AddCommand(addressesCmd)
}

const skipEmpty = "EMPTY"

var addressesCmd = &cobra.Command{
	Use:   "addresses [--input <cases.csv>] [--output <addresses.csv>]",
	Short: "Parses the property addresses of a case csv into an address csv.",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(*addressesInput)
		if err != nil {
			return err
		}
		cases, err := export.ReadCases(f)
		f.Close()
		if err != nil {
			return err
		}

		parser := address.NewParser(cfg.Scraper.FallbackTown, cfg.Scraper.PlaceholderTokens...)
		var addresses []address.Address
		skipped := map[string]int{}
		for i, c := range cases {
			// the header is row 1
			row := i + 2
			if c.PropertyAddressText == "" {
				slog.Info("skipped row", "row", row, "reason", skipEmpty)
				skipped[skipEmpty]++
				continue
			}
			parsed, err := parser.Parse(c.PropertyAddressText)
			var failure *address.ParseFailure
			if errors.As(err, &failure) {
				slog.Info("skipped row", "row", row, "reason", failure.Reason, "text", failure.Input)
				skipped[string(failure.Reason)]++
				continue
			}
			if err != nil {
				return err
			}
			slog.Debug("parsed row", "row", row, "address", parsed.String())
			addresses = append(addresses, parsed)
		}

		for reason, count := range skipped {
			fmt.Printf("Skipped %d rows: %s\n", count, reason)
		}
		if len(addresses) == 0 {
			fmt.Println("No valid addresses found.")
			return nil
		}

		err = writeFile(*addressesOutput, func(w io.Writer) error {
			return export.WriteAddresses(w, addresses)
		})
		if err != nil {
			return fmt.Errorf("write %s: %w", *addressesOutput, err)
		}
		fmt.Printf("Extracted %d valid addresses to %s.\n", len(addresses), *addressesOutput)
		return nil
	},
}
