package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearTown *string

func init() {
	clearTown = clearCmd.Flags().String("town", "", "The town to delete stored cases of.")
	clearCmd.MarkFlagRequired("town")
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear --town <town>",
	Short: "Deletes the stored cases of a town.",
	RunE: func(cmd *cobra.Command, args []string) error {
		town, err := resolveTown(*clearTown)
		if err != nil {
			return err
		}
		store, database, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer database.Close()

		deleted, err := store.ClearTown(cmd.Context(), town)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d cases of %s.\n", deleted, town)
		return nil
	},
}
