package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rishabhhandoo/Ragify/internal/config"
	"github.com/rishabhhandoo/Ragify/internal/store"
	"github.com/rishabhhandoo/Ragify/internal/ui"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	Long: `Display information about the document store:
- Number of ingested documents and chunks
- File types present
- Chunking parameters
- Embedding backend status

Example:
  ragify stats`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	st, err := openStore(context.Background(), cfg)
	if err != nil {
		return err
	}

	stats := st.Stats()

	fmt.Println(ui.Header.Render("Store Status"))
	fmt.Println()

	fmt.Printf("%s %d\n", ui.Dim.Render("Documents:"), stats.DocumentCount)
	fmt.Printf("%s %d\n", ui.Dim.Render("Chunks:"), stats.ChunkCount)
	fmt.Printf("%s %d\n", ui.Dim.Render("Embeddings:"), stats.EmbeddingCount)
	if len(stats.FileTypes) > 0 {
		fmt.Printf("%s %s\n", ui.Dim.Render("File types:"), strings.Join(stats.FileTypes, ", "))
	}
	fmt.Println()

	fmt.Printf("%s %d characters, %d overlap\n",
		ui.Dim.Render("Chunking:"), stats.ChunkSize, stats.ChunkOverlap)
	fmt.Printf("%s %s\n", ui.Dim.Render("Index file:"), st.IndexFile())
	fmt.Printf("%s %s\n", ui.Dim.Render("Chunks file:"), st.ChunksFile())
	fmt.Println()

	status := st.Status()
	if status.State == store.StateReady {
		fmt.Printf("%s %s\n", ui.Dim.Render("Embedding backend:"), ui.Success.Render("ready"))
	} else {
		fmt.Printf("%s %s\n", ui.Dim.Render("Embedding backend:"),
			ui.Warning.Render("degraded: "+status.Reason))
	}

	if stats.DocumentCount == 0 {
		fmt.Println()
		fmt.Println("Run 'ragify ingest <path>' to add documents.")
	}

	return nil
}
