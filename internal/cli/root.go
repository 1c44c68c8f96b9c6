package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cvrag/config"
	"cvrag/internal/adapter/embedding"
	"cvrag/internal/adapter/llm"
	"cvrag/internal/adapter/store"
	"cvrag/internal/port"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cvrag",
	Short: "CV assistant - index CVs and answer recruiter questions over them",
	Long: `cvrag indexes CV files (PDF, DOCX, TXT) into a vector store and answers
natural-language questions about the candidates, grounded in the indexed
excerpts.

Example usage:
  cvrag ingest                    # Index all new CVs in the data directory
  cvrag list                      # List indexed candidates
  cvrag ask "Who knows Python?"   # Single question
  cvrag chat                      # Interactive chat`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env carries API keys; absence is fine.
		_ = godotenv.Load()

		var err error
		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(".")
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return cfg.Validate()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./cvrag.yaml)")
}

// openStore connects to the configured vector store: remote Qdrant when a
// URL is set, otherwise the local on-disk store.
func openStore(ctx context.Context) (port.VectorStore, error) {
	if cfg.Store.QdrantURL != "" {
		apiKey := os.Getenv(cfg.Store.QdrantAPIKeyEnv)
		st, err := store.NewQdrantStore(ctx, cfg.Store.QdrantURL, apiKey, config.CollectionName, cfg.Embedding.Dimension)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Qdrant: %w", err)
		}
		fmt.Printf("Connected to Qdrant: %s\n", cfg.Store.QdrantURL)
		return st, nil
	}

	st, err := store.NewBoltStore(cfg.Store.Path, cfg.Embedding.Dimension)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	fmt.Printf("Using local vector store at: %s\n", cfg.Store.Path)
	return st, nil
}

func newEmbedder() (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "ollama":
		return embedding.NewOllamaEmbedder(cfg.Embedding.Model, cfg.Embedding.BaseURL, cfg.Embedding.Dimension), nil
	case "openai", "":
		return embedding.NewOpenAIEmbedder(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model, cfg.Embedding.Dimension)
	}
	return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Embedding.Provider)
}

func newLLM() (port.LLM, error) {
	switch cfg.LLM.Provider {
	case "gemini", "":
		return llm.NewGeminiClient(cfg.LLM.APIKeyEnv, cfg.LLM.Model)
	case "openai":
		return llm.NewOpenAIClient(cfg.LLM.APIKeyEnv, cfg.LLM.Model)
	case "ollama":
		return llm.NewOllamaClient(cfg.LLM.Model, cfg.LLM.BaseURL), nil
	}
	return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLM.Provider)
}
