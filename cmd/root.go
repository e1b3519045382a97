/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/harou24/heye/internal/config"
	"github.com/harou24/heye/internal/image"
	"github.com/harou24/heye/internal/vision"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	imagePath string
	modelName string
	baseURL   string
	apiToken  string
	queryFile string
)

var rootCmd = &cobra.Command{
	Use:   "heye [flags] [query...]",
	Short: "Analyze images with vision language models",
	Long: `Heye sends an image and a question to a vision language model and
streams the answer to standard output. Settings only need to be given
once: model, base URL, API token and query are remembered in ~/.heye
for subsequent runs.

Examples:
  $ heye -p photo.jpg "What scene is depicted in the image?"
  $ heye -p receipt.png -m qwen-vl-ocr-latest "Extract all text"
  $ heye -p diagram.webp`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		query := strings.Join(args, " ")
		if queryFile != "" {
			data, err := os.ReadFile(queryFile)
			if err != nil {
				return fmt.Errorf("read query file: %w", err)
			}
			query = strings.TrimSpace(string(data))
		}

		// Reject a bad model or image before the config is touched, so
		// a failed run leaves the persisted settings exactly as they
		// were.
		if modelName != "" {
			if err := vision.ValidateModel(modelName); err != nil {
				return err
			}
		}
		if err := image.Validate(imagePath); err != nil {
			return err
		}

		overrides := config.Overrides{
			BaseURL:  baseURL,
			APIToken: apiToken,
			Model:    modelName,
			Query:    query,
		}

		stored := config.Load()
		if err := config.Apply(stored, overrides); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save config to %s: %v\n", config.File(), err)
		}
		settings := config.Resolve(stored, overrides)

		dataURI, err := image.DataURI(imagePath)
		if err != nil {
			return err
		}

		client, err := vision.NewClient(vision.Config{
			APIToken: settings.APIToken,
			BaseURL:  settings.BaseURL,
			Model:    settings.Model,
		})
		if err != nil {
			return err
		}

		if err := client.Describe(cmd.Context(), dataURI, settings.Query, os.Stdout); err != nil {
			return err
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&imagePath, "path", "p", "", "Path to the image file")
	rootCmd.Flags().StringVarP(&modelName, "model", "m", "", "Model name (remembered for subsequent runs)")
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "API base URL (remembered for subsequent runs)")
	rootCmd.Flags().StringVar(&apiToken, "api-token", "", "API token for authentication (remembered for subsequent runs)")
	rootCmd.Flags().StringVar(&queryFile, "query-file", "", "Read the query text from a file")
	rootCmd.MarkFlagRequired("path")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
