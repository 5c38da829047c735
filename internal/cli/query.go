package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rishabhhandoo/Ragify/internal/config"
	"github.com/rishabhhandoo/Ragify/internal/ui"
)

var queryTopK int

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Find the chunks most relevant to a question",
	Long: `Search the ingested documents by semantic similarity.

The query is embedded with the same model as the documents and compared
against every stored chunk; the closest matches are printed with their
source and similarity score.

Examples:
  # Basic query
  ragify query "how do refunds work"

  # More results
  ragify query "maintenance schedule" -k 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 5, "maximum number of results")
}

func runQuery(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	ctx := context.Background()
	st, err := openStore(ctx, config.Get())
	if err != nil {
		return err
	}

	if !st.Status().Ready() {
		fmt.Println(ui.Warning.Render("Store is degraded: " + st.Status().Reason))
		fmt.Println(ui.Dim.Render("Queries return no results without an embedding backend."))
		return nil
	}

	matches, err := st.Query(ctx, query, queryTopK)
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Println("No matching documents found.")
		fmt.Println()
		fmt.Println("Run 'ragify ingest <path>' to add some.")
		return nil
	}

	fmt.Println(ui.Header.Render(fmt.Sprintf("Top %d match(es)", len(matches))))
	fmt.Println()

	for i, m := range matches {
		fmt.Printf("%s %s %s\n",
			ui.ResultHeader.Render(fmt.Sprintf("[%d]", i+1)),
			ui.FilePath.Render(m.Chunk.Source),
			ui.FormatScore(m.Similarity),
		)
		fmt.Println(ui.ResultContent.Render(m.Chunk.Text))
		fmt.Println()
	}

	return nil
}
