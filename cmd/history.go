package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"mspro-labs/dine-sync/internal/config"
	"mspro-labs/dine-sync/internal/db"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent import runs from the local journal",
	Run: func(cmd *cobra.Command, args []string) {
		runHistory()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum entries to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory() {
	appCfg, err := config.GetAppConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	journal, err := db.Connect(appCfg.JournalPath)
	if err != nil {
		log.Fatalf("Journal error: %v", err)
	}
	defer journal.Close()

	runs, err := db.ListRuns(journal, historyLimit)
	if err != nil {
		log.Fatalf("Failed to list runs: %v", err)
	}

	fmt.Println("📜 Import History")
	fmt.Println("------------------------------------")
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	for _, r := range runs {
		mode := "live"
		if r.DryRun {
			mode = "dry-run"
		}
		fmt.Printf("[%s] %s %s: parsed=%d sent=%d profile=%s status=%s\n",
			r.StartedAt.Format("2006-01-02 15:04"), mode, r.XlsxPath,
			r.RowsParsed, r.RowsSent, r.ProfileID, r.Status)
		if r.Outcome != "ok" {
			fmt.Printf("    failed: %s\n", r.Outcome)
		}
	}
}
