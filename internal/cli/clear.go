package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rishabhhandoo/Ragify/internal/config"
	"github.com/rishabhhandoo/Ragify/internal/ui"
)

var (
	clearForce   bool
	clearHistory bool
)

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all ingested documents",
	Long: `Remove every document, chunk, and embedding from the store, along
with the persisted index files.

Examples:
  # Clear after confirmation
  ragify clear

  # Clear without asking
  ragify clear -f

  # Also delete the chat history
  ragify clear --history`,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip confirmation")
	clearCmd.Flags().BoolVar(&clearHistory, "history", false, "also delete the chat history")
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	st, err := openStore(context.Background(), cfg)
	if err != nil {
		return err
	}

	stats := st.Stats()
	if stats.DocumentCount == 0 && !clearHistory {
		fmt.Println("Store is already empty.")
		return nil
	}

	if !clearForce {
		fmt.Printf("Delete %d document(s) and %d chunk(s)? [y/N] ",
			stats.DocumentCount, stats.ChunkCount)
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return scanner.Err()
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := st.Clear(); err != nil {
		return err
	}

	if clearHistory {
		if err := os.Remove(cfg.Storage.HistoryFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing chat history: %w", err)
		}
	}

	fmt.Println(ui.Success.Render("Store cleared."))
	return nil
}
