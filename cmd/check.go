package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"mspro-labs/dine-sync/internal/config"
	"mspro-labs/dine-sync/internal/models"
	"mspro-labs/dine-sync/internal/supabase"
)

var checkProfileID string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify Supabase credentials and the target profile",
	Long: `Confirms that SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY reach the project
and that the given profile exists in public.profiles. Run this before a first
import to catch setup problems early.`,
	Run: func(cmd *cobra.Command, args []string) {
		runCheck()
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkProfileID, "profile-id", "0001", "owning profile: UUID or numeric shorthand")
	rootCmd.AddCommand(checkCmd)
}

func runCheck() {
	// 1. Config & credentials
	appCfg, err := config.GetAppConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if err := appCfg.RequireCredentials(); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	profileID, err := models.NormalizeProfileID(checkProfileID)
	if err != nil {
		log.Fatalf("Invalid --profile-id: %v", err)
	}

	// 2. Round-trip through PostgREST
	client := supabase.NewClient(appCfg.SupabaseURL, appCfg.ServiceKey)
	exists, err := client.ProfileExists(profileID)
	if err != nil {
		log.Fatalf("Supabase rejected the request: %v", err)
	}
	if !exists {
		log.Fatalf("Profile %s not found in public.profiles. Create that profile first, or use an existing id.", profileID)
	}

	fmt.Printf("✅ Credentials OK. Profile %s exists.\n", profileID)
}
