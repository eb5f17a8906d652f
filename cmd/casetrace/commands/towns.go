package commands

import (
	"casetrace-backend/internal/address"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var townsStored *bool

func init() {
	townsStored = townsCmd.Flags().Bool("stored", false, "List the towns that have stored cases instead.")
	rootCmd.AddCommand(townsCmd)
}

var townsCmd = &cobra.Command{
	Use:   "towns [name]",
	Short: "Lists the towns that can be searched, or finds the town closest to a name.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			match, ok := address.MatchTown(args[0])
			if !ok {
				return fmt.Errorf("no town is close to '%s'", args[0])
			}
			fmt.Printf("%s (similarity %.2f)\n", match.Town, match.Similarity)
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)

		if *townsStored {
			store, database, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()
			counts, err := store.TownCounts(cmd.Context())
			if err != nil {
				return err
			}
			t.AppendHeader(table.Row{"Town", "Cases"})
			for _, count := range counts {
				t.AppendRow(table.Row{count.Town, count.Cases})
			}
		} else {
			t.AppendHeader(table.Row{"Town"})
			for _, town := range address.Towns {
				t.AppendRow(table.Row{town})
			}
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}
