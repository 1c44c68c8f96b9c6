package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"cvrag/config"
	"cvrag/internal/adapter/chunker"
	"cvrag/internal/usecase"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Index all new CV files in the data directory",
	Long: `Index CV files (PDF, DOCX, TXT) from the data directory into the vector
store. Files whose name is already indexed are skipped; to re-index an
edited CV, delete its candidate first.

Examples:
  cvrag ingest              # Index the configured data directory
  cvrag ingest ./cvs        # Index a specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	dir := cfg.DataDir
	if len(args) > 0 {
		dir = args[0]
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	ctx := cmd.Context()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	embedder, err := newEmbedder()
	if err != nil {
		return err
	}

	chk, err := chunker.NewOverlapChunker(cfg.Chunk.Size, cfg.Chunk.Overlap)
	if err != nil {
		return err
	}

	ingestor := usecase.NewIngestor(st, embedder, chk, config.ScrollLimit)

	fmt.Printf("Scanning %s...\n", dir)

	var bar *progressbar.ProgressBar
	progress := func(processed, total int, filename string) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("Indexing"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Describe(fmt.Sprintf("Indexing %s", filename))
		bar.Set(processed)
	}

	result, err := ingestor.Ingest(ctx, dir, progress)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	if result.FilesFound == 0 {
		fmt.Printf("No CV files found in %s. Add PDFs, DOCXs or TXTs and run again.\n", dir)
		return nil
	}

	fmt.Printf("\nIngestion complete:\n")
	fmt.Printf("  Files found:   %d\n", result.FilesFound)
	fmt.Printf("  Files indexed: %d\n", result.FilesIndexed)
	fmt.Printf("  Files skipped: %d (already indexed)\n", result.FilesSkipped)
	fmt.Printf("  Chunks added:  %d\n", result.ChunksAdded)

	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Printf("  %s\n", w)
		}
	}

	total, err := st.Count(ctx)
	if err == nil {
		fmt.Printf("\nTotal vectors in store: %d\n", total)
	}
	return nil
}
