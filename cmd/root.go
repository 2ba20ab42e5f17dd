package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dine-sync",
	Short: "Import curated restaurant spreadsheets into Supabase",
	Long: `dine-sync reads a curated .xlsx of restaurant listings, normalizes the
rows (price level, vibe tags, notes), and upserts them into the Supabase
restaurants table under an owning profile.`,
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
