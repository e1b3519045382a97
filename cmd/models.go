package cmd

import (
	"fmt"

	"github.com/harou24/heye/internal/vision"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List supported vision language models",
	Run: func(cmd *cobra.Command, args []string) {
		printModelTable(vision.SupportedModels)
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func printModelTable(models []vision.Model) {
	fmt.Println("Supported models:")
	fmt.Println("┌──────────────────────┬──────────────────────────────────────┐")
	fmt.Println("│ Model ID             │ Description                          │")
	fmt.Println("├──────────────────────┼──────────────────────────────────────┤")
	for _, m := range models {
		fmt.Printf("│ %-20s │ %-36s │\n", truncate(m.ID, 20), truncate(m.Description, 36))
	}
	fmt.Println("└──────────────────────┴──────────────────────────────────────┘")
}

func truncate(s string, length int) string {
	if len(s) > length {
		return s[:length-3] + "..."
	}
	return s
}
