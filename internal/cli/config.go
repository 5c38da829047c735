package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rishabhhandoo/Ragify/internal/config"
	"github.com/rishabhhandoo/Ragify/internal/ui"
)

var configShowPath bool

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or manage configuration",
	Long: `Display current configuration settings and config file locations.

Examples:
  # Show current configuration
  ragify config

  # Show config file paths
  ragify config --path`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShowPath, "path", false, "show config file paths")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	if configShowPath {
		fmt.Println(ui.SectionTitle.Render("Configuration Paths"))
		fmt.Println()
		fmt.Printf("Global config: %s\n", config.GlobalConfigPath())
		fmt.Printf("Local config:  .ragifyrc.yaml (searched from cwd upward)\n")
		fmt.Printf("Active config: %s\n", config.ConfigFilePath())
		fmt.Printf("Data dir:      %s\n", cfg.Storage.DataDir)
		return nil
	}

	fmt.Println(ui.SectionTitle.Render("Current Configuration"))
	fmt.Println()

	fmt.Println(ui.Bold.Render("Embeddings:"))
	fmt.Printf("  Provider: %s\n", cfg.Embeddings.Provider)
	fmt.Printf("  Ollama URL: %s\n", cfg.Embeddings.Ollama.URL)
	fmt.Printf("  Ollama Model: %s\n", cfg.Embeddings.Ollama.Model)
	fmt.Printf("  OpenAI Model: %s\n", cfg.Embeddings.OpenAI.Model)
	if cfg.Embeddings.OpenAI.BaseURL != "" {
		fmt.Printf("  OpenAI Base URL: %s\n", cfg.Embeddings.OpenAI.BaseURL)
	}
	fmt.Println()

	fmt.Println(ui.Bold.Render("Chat:"))
	fmt.Printf("  Ollama URL: %s\n", cfg.Chat.URL)
	fmt.Printf("  Model: %s\n", cfg.Chat.Model)
	fmt.Printf("  Top K: %d\n", cfg.Chat.TopK)
	fmt.Printf("  Max History: %d\n", cfg.Chat.MaxHistory)
	fmt.Println()

	fmt.Println(ui.Bold.Render("Ingestion:"))
	fmt.Printf("  Chunk Size: %d\n", cfg.Ingest.ChunkSize)
	fmt.Printf("  Chunk Overlap: %d\n", cfg.Ingest.ChunkOverlap)
	fmt.Printf("  Max File Size: %d bytes\n", cfg.Ingest.MaxFileSize)
	fmt.Println()

	fmt.Println(ui.Bold.Render("Storage:"))
	fmt.Printf("  Index: %s\n", cfg.Storage.IndexFile)
	fmt.Printf("  Chunks: %s\n", cfg.Storage.ChunksFile)
	fmt.Printf("  Chat History: %s\n", cfg.Storage.HistoryFile)
	fmt.Println()

	fmt.Println(ui.Bold.Render("Ignore Patterns:"))
	fmt.Printf("  %d patterns configured\n", len(cfg.Ignore))

	return nil
}
