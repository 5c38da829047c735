package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/rishabhhandoo/Ragify/internal/config"
	"github.com/rishabhhandoo/Ragify/internal/extract"
	"github.com/rishabhhandoo/Ragify/internal/ingest"
	"github.com/rishabhhandoo/Ragify/internal/ui"
)

var (
	ingestRecursive bool
	ingestIgnore    []string
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <path>",
	Short: "Ingest documents into the local store",
	Long: `Ingest a document or a directory of documents.

Each document is extracted to plain text, split into overlapping chunks,
and embedded. Documents already in the store are skipped, so re-running
ingest on the same directory is cheap.

Supported formats: txt, md, json, pdf (via pdftotext), docx.

Examples:
  # Ingest a directory
  ragify ingest ./docs

  # Ingest recursively
  ragify ingest ./docs -r

  # Ingest a single file
  ragify ingest ./docs/handbook.pdf

  # Skip drafts
  ragify ingest ./docs -i "drafts/" -i "*.tmp"`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestRecursive, "recursive", "r", false, "descend into subdirectories")
	ingestCmd.Flags().StringSliceVarP(&ingestIgnore, "ignore", "i", nil, "additional patterns to ignore")
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg := config.Get()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted")
		cancel()
	}()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if !st.Status().Ready() {
		log.Warn("Store is degraded; documents will be stored without embeddings",
			"reason", st.Status().Reason)
	}

	ing := ingest.New(st, extract.NewRegistry())

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %s", path)
	}

	if !info.IsDir() {
		added, err := ing.IngestFile(ctx, path)
		if err != nil {
			return err
		}
		if added {
			fmt.Println(ui.Success.Render("Ingested 1 document."))
		} else {
			fmt.Println(ui.Dim.Render("Document already in store."))
		}
		return nil
	}

	var bar *progressbar.ProgressBar
	added, err := ing.IngestDirectory(ctx, path, ingest.Options{
		Recursive:      ingestRecursive,
		IgnorePatterns: append(cfg.Ignore, ingestIgnore...),
		MaxFileSize:    int64(cfg.Ingest.MaxFileSize),
		OnProgress: func(p ingest.Progress) {
			if bar == nil {
				bar = progressbar.Default(int64(p.TotalFiles), "ingesting")
			}
			_ = bar.Add(1)
		},
	})
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	stats := st.Stats()
	fmt.Println()
	fmt.Println(ui.Success.Render(fmt.Sprintf("Ingested %d new document(s).", added)))
	fmt.Printf("Store now holds %d document(s) across %d chunk(s).\n",
		stats.DocumentCount, stats.ChunkCount)
	return nil
}
