package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frederico-kluser/docchat/internal/core/domain"
)

func writeExportFile(t *testing.T, export domain.IndexExport) string {
	t.Helper()
	blob, err := json.Marshal(export)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, blob, 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestStatsCmd_ShowsMetadata(t *testing.T) {
	path := writeExportFile(t, domain.IndexExport{
		ExportID: "abc-123",
		Version:  domain.ExportVersion,
		Metadata: domain.ExportMetadata{
			EmbeddingModel: "text-embedding-3-large",
			Dimensions:     3072,
			CreatedAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			DocumentStats: domain.DocumentStats{
				DocumentID: "contrato", PageCount: 12, ChunkCount: 48, TotalTokens: 9000,
			},
		},
		SerializedIndex: json.RawMessage(`{"dimensions":3072,"entries":[]}`),
	})

	out, err := runCommand(t, "stats", path)
	require.NoError(t, err)
	assert.Contains(t, out, "abc-123")
	assert.Contains(t, out, "text-embedding-3-large (3072 dimensions)")
	assert.Contains(t, out, "Pages:     12")
	assert.Contains(t, out, "Chunks:    48")
}

func TestStatsCmd_JSONOutput(t *testing.T) {
	path := writeExportFile(t, domain.IndexExport{
		ExportID:        "abc-123",
		Version:         domain.ExportVersion,
		Metadata:        domain.ExportMetadata{EmbeddingModel: "text-embedding-3-large", Dimensions: 3072},
		SerializedIndex: json.RawMessage(`{}`),
	})

	out, err := runCommand(t, "stats", path, "--json")
	require.NoError(t, err)

	var meta domain.ExportMetadata
	require.NoError(t, json.Unmarshal([]byte(out), &meta))
	assert.Equal(t, 3072, meta.Dimensions)

	statsJSON = false
}

func TestStatsCmd_RejectsWrongVersion(t *testing.T) {
	path := writeExportFile(t, domain.IndexExport{
		ExportID: "abc-123",
		Version:  "1.0",
	})

	_, err := runCommand(t, "stats", path)
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
}

func TestImportCmd_ValidatesEnvelope(t *testing.T) {
	originalConfigDir := configDir
	configDir = t.TempDir()
	defer func() { configDir = originalConfigDir }()

	path := writeExportFile(t, domain.IndexExport{
		ExportID: "abc-123",
		Version:  domain.ExportVersion,
		Metadata: domain.ExportMetadata{
			EmbeddingModel: "text-embedding-3-large",
			Dimensions:     3072,
			DocumentStats:  domain.DocumentStats{DocumentID: "contrato", PageCount: 2, ChunkCount: 0},
		},
		SerializedIndex: json.RawMessage(`{"dimensions":3072,"entries":[]}`),
	})

	out, err := runCommand(t, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Valid index: contrato")
	assert.Contains(t, out, "0 entries restored")
}

func TestImportCmd_RejectsDimensionMismatch(t *testing.T) {
	originalConfigDir := configDir
	configDir = t.TempDir()
	defer func() { configDir = originalConfigDir }()

	path := writeExportFile(t, domain.IndexExport{
		ExportID:        "abc-123",
		Version:         domain.ExportVersion,
		Metadata:        domain.ExportMetadata{Dimensions: 1536},
		SerializedIndex: json.RawMessage(`{"dimensions":1536,"entries":[]}`),
	})

	_, err := runCommand(t, "import", path)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestAskCmd_RequiresExactlyOneSource(t *testing.T) {
	_, err := runCommand(t, "ask", "pergunta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of --index or --file")
}
