// Package cli implements the docchat command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	configfile "github.com/frederico-kluser/docchat/internal/adapters/driven/config/file"
	openaiembed "github.com/frederico-kluser/docchat/internal/adapters/driven/embedding/openai"
	memoryindex "github.com/frederico-kluser/docchat/internal/adapters/driven/index/memory"
	openaichat "github.com/frederico-kluser/docchat/internal/adapters/driven/llm/openai"
	"github.com/frederico-kluser/docchat/internal/adapters/driven/search/bleve"
	"github.com/frederico-kluser/docchat/internal/adapters/driven/storage/memory"
	"github.com/frederico-kluser/docchat/internal/core/domain"
	"github.com/frederico-kluser/docchat/internal/core/ports/driven"
	"github.com/frederico-kluser/docchat/internal/core/services"
	"github.com/frederico-kluser/docchat/internal/logger"
)

var (
	version   = "dev"
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Ask questions about a PDF document",
	Long: `docchat ingests pre-extracted document pages, indexes them for
semantic search, and answers questions grounded on the document content.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	// A .env next to the binary is a convenience for OPENAI_API_KEY;
	// missing files are fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.docchat)")
}

// Execute runs the root command.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

func loadConfig() (domain.Config, error) {
	store, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return domain.Config{}, fmt.Errorf("open config store: %w", err)
	}
	return store.Load()
}

// buildPipeline wires the OpenAI clients, the in-memory indexes, and the
// caches into a session pipeline.
func buildPipeline(cfg domain.Config) (*services.Pipeline, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if err := domain.ValidateCredential(apiKey); err != nil {
		return nil, fmt.Errorf("%w: set OPENAI_API_KEY in the environment or a .env file", err)
	}

	embedClient, err := openaiembed.NewClient(openaiembed.Config{
		APIKey:     apiKey,
		Model:      cfg.EmbeddingModel,
		Dimensions: cfg.EmbeddingDimensions,
	})
	if err != nil {
		return nil, err
	}
	chatClient, err := openaichat.NewClient(openaichat.Config{
		APIKey: apiKey,
		Model:  cfg.ChatModel,
	})
	if err != nil {
		return nil, err
	}
	index, err := memoryindex.New(cfg.EmbeddingDimensions)
	if err != nil {
		return nil, err
	}

	var keyword driven.KeywordIndex
	if kw, err := bleve.New(); err != nil {
		logger.Warn("Keyword index unavailable, degraded search disabled: %v", err)
	} else {
		keyword = kw
	}

	return services.NewPipeline(cfg, services.Deps{
		EmbeddingClient: embedClient,
		ChatClient:      chatClient,
		VectorIndex:     index,
		KeywordIndex:    keyword,
		EmbeddingCache:  memory.NewEmbeddingCache(cfg.EmbeddingCacheSize),
		ResponseCache:   memory.NewResponseCache(cfg.ResponseCacheSize, cfg.ResponseCacheTTL),
	})
}

// renderProgress writes ingestion progress to stderr, one line per phase
// update, so stdout stays clean for answers and exports.
func renderProgress(p domain.Progress) {
	fmt.Fprintf(os.Stderr, "\r[%s] %d/%d (%.0f%%)", p.Phase, p.Current, p.Total, p.Percentage)
	if p.Current == p.Total {
		fmt.Fprintln(os.Stderr)
	}
}
