package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frederico-kluser/docchat/internal/core/domain"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats [index.json]",
	Short: "Show metadata of an exported index",
	Long:  `Reads an exported index file and prints its metadata without touching the API.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output metadata as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	blob, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read index file: %w", err)
	}

	var export domain.IndexExport
	if err := json.Unmarshal(blob, &export); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	if export.Version != domain.ExportVersion {
		return fmt.Errorf("%w: version %q, expected %q",
			domain.ErrInvalidFormat, export.Version, domain.ExportVersion)
	}

	if statsJSON {
		data, err := json.MarshalIndent(export.Metadata, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	meta := export.Metadata
	cmd.Printf("Export:    %s (version %s)\n", export.ExportID, export.Version)
	cmd.Printf("Created:   %s\n", meta.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	cmd.Printf("Model:     %s (%d dimensions)\n", meta.EmbeddingModel, meta.Dimensions)
	cmd.Printf("Document:  %s\n", meta.DocumentStats.DocumentID)
	cmd.Printf("Pages:     %d\n", meta.DocumentStats.PageCount)
	cmd.Printf("Chunks:    %d\n", meta.DocumentStats.ChunkCount)
	cmd.Printf("Tokens:    ~%d\n", meta.DocumentStats.TotalTokens)
	cmd.Printf("Cache:     %d embedded vectors included\n", len(export.EmbeddingCache))
	return nil
}
