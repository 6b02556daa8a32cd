package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	extractfile "github.com/frederico-kluser/docchat/internal/adapters/driven/extract/file"
)

var ingestOutput string

var ingestCmd = &cobra.Command{
	Use:   "ingest [extraction.json]",
	Short: "Index a document from an extraction file",
	Long: `Reads an extraction file (positioned page fragments produced by the
PDF extraction step), reconstructs and chunks the page text, embeds the
chunks, and builds the in-memory index.

The process is ephemeral: use --output to persist the index for later
ask sessions.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestOutput, "output", "o", "", "write the exported index to this file")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	extractor, err := extractfile.Open(args[0])
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

	cmd.Printf("Indexed %s: %d pages, %d chunks, ~%d tokens\n",
		stats.DocumentID, stats.PageCount, stats.ChunkCount, stats.TotalTokens)

	if ingestOutput == "" {
		return nil
	}
	blob, err := pipeline.Export()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if err := os.WriteFile(ingestOutput, blob, 0o644); err != nil {
		return fmt.Errorf("write index file: %w", err)
	}
	cmd.Printf("Index written to %s\n", ingestOutput)
	return nil
}
