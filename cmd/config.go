package cmd

import (
	"fmt"
	"os"

	"github.com/harou24/heye/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		settings := config.Resolve(config.Load(), config.Overrides{})

		status := "persisted"
		if _, err := os.Stat(config.File()); err != nil {
			status = "not created yet"
		}

		fmt.Printf("Config file: %s (%s)\n", config.File(), status)
		fmt.Printf("  base-url:  %s\n", settings.BaseURL)
		fmt.Printf("  api-token: %s\n", maskAPIKey(settings.APIToken))
		fmt.Printf("  model:     %s\n", settings.Model)
		fmt.Printf("  query:     %s\n", settings.Query)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) < 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
