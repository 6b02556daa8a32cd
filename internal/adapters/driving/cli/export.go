package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	extractfile "github.com/frederico-kluser/docchat/internal/adapters/driven/extract/file"
)

var exportSourceFile string

var exportCmd = &cobra.Command{
	Use:   "export [index.json]",
	Short: "Ingest a document and export its index",
	Long: `Ingests an extraction file and writes the resulting index as a
versioned JSON envelope. The envelope carries the index contents, the
document stats, the configuration, and a bounded slice of the embedding
cache, and can be loaded later with ask --index or import.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportSourceFile, "file", "f", "", "extraction file to ingest (required)")
	_ = exportCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	extractor, err := extractfile.Open(exportSourceFile)
	if err != nil {
		return err
	}
	documentID := extractor.DocumentID()
	if documentID == "" {
		documentID = uuid.NewString()
	}

	stats, err := pipeline.IngestDocument(context.Background(), documentID, extractor.Pages(), renderProgress)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	blob, err := pipeline.Export()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if err := os.WriteFile(args[0], blob, 0o644); err != nil {
		return fmt.Errorf("write index file: %w", err)
	}

	cmd.Printf("Exported %s: %d pages, %d chunks to %s\n",
		stats.DocumentID, stats.PageCount, stats.ChunkCount, args[0])
	return nil
}
