package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	extractfile "github.com/frederico-kluser/docchat/internal/adapters/driven/extract/file"
	"github.com/frederico-kluser/docchat/internal/core/domain"
	"github.com/frederico-kluser/docchat/internal/core/ports/driving"
)

var (
	askIndexFile   string
	askSourceFile  string
	askLimit       int
	askNoRerank    bool
	askNoStream    bool
	askWideContext bool
	askSources     bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about a document",
	Long: `Answers a question grounded on a document. The document comes either
from a previously exported index (--index) or from an extraction file
(--file), which is ingested first.

The answer streams to stdout as it is generated; use --no-stream for a
single blocking response with token accounting.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askIndexFile, "index", "i", "", "exported index file to load")
	askCmd.Flags().StringVarP(&askSourceFile, "file", "f", "", "extraction file to ingest before asking")
	askCmd.Flags().IntVarP(&askLimit, "limit", "n", 0, "maximum number of passages to retrieve")
	askCmd.Flags().BoolVar(&askNoRerank, "no-rerank", false, "skip LLM reranking of retrieved passages")
	askCmd.Flags().BoolVar(&askNoStream, "no-stream", false, "wait for the complete answer instead of streaming")
	askCmd.Flags().BoolVar(&askWideContext, "wide-context", false, "extend retrieved passages with adjacent chunks")
	askCmd.Flags().BoolVar(&askSources, "sources", false, "print the cited passages after the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if (askIndexFile == "") == (askSourceFile == "") {
		return errors.New("provide exactly one of --index or --file")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	if askIndexFile != "" {
		blob, err := os.ReadFile(askIndexFile)
		if err != nil {
			return fmt.Errorf("read index file: %w", err)
		}
		if _, err := pipeline.Import(blob); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
	} else {
		extractor, err := extractfile.Open(askSourceFile)
		if err != nil {
			return err
		}
		documentID := extractor.DocumentID()
		if documentID == "" {
			documentID = uuid.NewString()
		}
		if _, err := pipeline.IngestDocument(context.Background(), documentID, extractor.Pages(), renderProgress); err != nil {
			return fmt.Errorf("ingest failed: %w", err)
		}
	}

	opts := driving.AnswerOptions{
		Retrieve: domain.RetrieveOptions{
			Limit:          askLimit,
			UseReranking:   !askNoRerank,
			IncludeContext: askWideContext,
		},
	}

	var answer domain.Answer
	if askNoStream {
		answer, err = pipeline.Answer(context.Background(), args[0], opts)
		if err != nil {
			return err
		}
		cmd.Println(answer.Content)
	} else {
		answer, err = pipeline.AnswerStream(context.Background(), args[0], opts, func(delta string) error {
			cmd.Print(delta)
			return nil
		})
		if err != nil {
			return err
		}
		cmd.Println()
	}

	if answer.Cached {
		fmt.Fprintln(os.Stderr, "(served from response cache)")
	}
	if answer.PromptTokens > 0 {
		fmt.Fprintf(os.Stderr, "(%d prompt + %d completion tokens)\n",
			answer.PromptTokens, answer.CompletionTokens)
	}

	if askSources && len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, src := range answer.Sources {
			cmd.Printf("  [%d] page %d (%.2f) %s\n", i+1, src.PageNumber, src.Score, src.Excerpt)
		}
	}
	return nil
}
