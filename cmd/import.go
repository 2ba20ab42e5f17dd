package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"mspro-labs/dine-sync/internal/config"
	"mspro-labs/dine-sync/internal/db"
	"mspro-labs/dine-sync/internal/models"
	"mspro-labs/dine-sync/internal/supabase"
	"mspro-labs/dine-sync/internal/workbook"
)

var (
	importXlsx      string
	importProfileID string
	importStatus    string
	importChunkSize int
	importDryRun    bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Parse a restaurant workbook and upsert it into Supabase",
	Long: `Reads the .xlsx file, normalizes each listing, and merges the rows into
the restaurants table (on_conflict=profile_id,name). Use --dry-run to inspect
the payload without credentials or network access.`,
	Run: func(cmd *cobra.Command, args []string) {
		runImport()
	},
}

func init() {
	importCmd.Flags().StringVar(&importXlsx, "xlsx", "", "path to the source .xlsx file (required)")
	importCmd.Flags().StringVar(&importProfileID, "profile-id", "0001", "owning profile: UUID or numeric shorthand")
	importCmd.Flags().StringVar(&importStatus, "status", "active", "listing status: active or backlog")
	importCmd.Flags().IntVar(&importChunkSize, "chunk-size", 50, "rows per upsert request")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "parse and report without touching Supabase")
	importCmd.MarkFlagRequired("xlsx")
	rootCmd.AddCommand(importCmd)
}

// dryRunReport is what --dry-run prints: enough to eyeball the payload.
type dryRunReport struct {
	ProfileID string             `json:"profile_id"`
	Status    string             `json:"status"`
	Rows      int                `json:"rows"`
	Sample    []models.UpsertRow `json:"sample"`
}

func runImport() {
	// 1. Config
	appCfg, err := config.GetAppConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	sheetCfg, err := config.LoadSheetConfig(appCfg.SheetPath)
	if err != nil {
		log.Fatalf("Failed to load sheet config: %v", err)
	}

	// 2. Validate flags
	if importStatus != "active" && importStatus != "backlog" {
		log.Fatalf("Invalid --status %q (want active or backlog)", importStatus)
	}
	if importChunkSize < 1 {
		log.Fatalf("--chunk-size must be at least 1")
	}
	profileID, err := models.NormalizeProfileID(importProfileID)
	if err != nil {
		log.Fatalf("Invalid --profile-id: %v", err)
	}

	run := db.ImportRun{
		XlsxPath:  importXlsx,
		ProfileID: profileID,
		Status:    importStatus,
		DryRun:    importDryRun,
		StartedAt: time.Now(),
	}

	// 3. Parse workbook
	restaurants, err := workbook.Parse(importXlsx, sheetCfg)
	if err != nil {
		failImport(appCfg, run, err)
	}
	if len(restaurants) == 0 {
		failImport(appCfg, run, errors.New("no rows parsed from workbook"))
	}
	run.RowsParsed = len(restaurants)

	// 4. Build payload
	payload := make([]models.UpsertRow, 0, len(restaurants))
	for _, r := range restaurants {
		payload = append(payload, r.UpsertRow(profileID, importStatus))
	}

	// 5. Dry run: report and stop
	if importDryRun {
		sample := payload
		if len(sample) > 5 {
			sample = sample[:5]
		}
		report, err := json.MarshalIndent(dryRunReport{
			ProfileID: profileID,
			Status:    importStatus,
			Rows:      len(payload),
			Sample:    sample,
		}, "", "  ")
		if err != nil {
			failImport(appCfg, run, err)
		}
		fmt.Println(string(report))
		finishRun(appCfg, run, nil)
		return
	}

	// 6. Connect and check the foreign key
	if err := appCfg.RequireCredentials(); err != nil {
		failImport(appCfg, run, err)
	}
	client := supabase.NewClient(appCfg.SupabaseURL, appCfg.ServiceKey)

	exists, err := client.ProfileExists(profileID)
	if err != nil {
		failImport(appCfg, run, err)
	}
	if !exists {
		failImport(appCfg, run, fmt.Errorf(
			"profile %s not found in public.profiles; create that profile first, or use an existing profile id",
			profileID))
	}

	// 7. Upsert in chunks to keep payloads reasonable
	total := len(payload)
	for i := 0; i < total; i += importChunkSize {
		end := min(i+importChunkSize, total)
		if err := client.UpsertRestaurants(payload[i:end]); err != nil {
			failImport(appCfg, run, fmt.Errorf("import failed at chunk %d: %w", i/importChunkSize+1, err))
		}
		run.RowsSent = end
		log.Printf("Upserted %d/%d", end, total)
	}

	finishRun(appCfg, run, nil)
	log.Printf("✅ Done. Imported %d restaurants to profile_id=%s with status=%s.", total, profileID, importStatus)
}

// failImport journals the failure and terminates.
func failImport(appCfg config.AppConfig, run db.ImportRun, err error) {
	finishRun(appCfg, run, err)
	log.Fatalf("Import failed: %v", err)
}

// finishRun appends the outcome to the local journal. Journal problems are
// logged but never fail an otherwise successful import.
func finishRun(appCfg config.AppConfig, run db.ImportRun, runErr error) {
	run.Outcome = "ok"
	if runErr != nil {
		run.Outcome = runErr.Error()
	}

	journal, err := db.Connect(appCfg.JournalPath)
	if err != nil {
		log.Printf("⚠️ Journal unavailable: %v", err)
		return
	}
	defer journal.Close()

	if err := db.RecordRun(journal, run); err != nil {
		log.Printf("⚠️ Failed to record run: %v", err)
	}
}
