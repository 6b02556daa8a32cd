package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	memoryindex "github.com/frederico-kluser/docchat/internal/adapters/driven/index/memory"
	"github.com/frederico-kluser/docchat/internal/core/services"
)

var importCmd = &cobra.Command{
	Use:   "import [index.json]",
	Short: "Validate an exported index",
	Long: `Loads an exported index into a fresh in-memory index, running the
full version and dimension validation, and reports what it contains.
No API credential is needed.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	blob, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read index file: %w", err)
	}

	index, err := memoryindex.New(cfg.EmbeddingDimensions)
	if err != nil {
		return err
	}
	meta, err := services.NewExporter(index, nil, nil, cfg).Import(blob)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Valid index: %s, %d pages, %d chunks, %d entries restored\n",
		meta.DocumentStats.DocumentID, meta.DocumentStats.PageCount,
		meta.DocumentStats.ChunkCount, index.Len())
	return nil
}
