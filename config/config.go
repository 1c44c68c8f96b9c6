package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CollectionName is the single vector-store collection holding all CV chunks.
const CollectionName = "hr_cvs"

// ScrollLimit bounds inventory listings. Large enough to cover the expected
// corpus in one call.
const ScrollLimit = 10000

// Config holds all configuration for the CV assistant.
type Config struct {
	DataDir   string          `yaml:"data_dir"`
	Store     StoreConfig     `yaml:"store"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Chunk     ChunkConfig     `yaml:"chunk"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
}

// StoreConfig selects the vector store backend. When QdrantURL is set the
// remote Qdrant instance is used; otherwise records live in a local
// on-disk store at Path.
type StoreConfig struct {
	QdrantURL       string `yaml:"qdrant_url"`
	QdrantAPIKeyEnv string `yaml:"qdrant_api_key_env"`
	Path            string `yaml:"path"`
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama"
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
}

// LLMConfig holds generation provider configuration.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "gemini", "openai", "ollama"
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
}

// ChunkConfig holds chunking parameters in characters.
type ChunkConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// RetrieveConfig holds retrieval parameters.
type RetrieveConfig struct {
	TopK           int     `yaml:"top_k"`
	ScoreThreshold float32 `yaml:"score_threshold"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Store: StoreConfig{
			QdrantAPIKeyEnv: "QDRANT_API_KEY",
			Path:            "./cvrag.db",
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 1536,
			BatchSize: 100,
		},
		LLM: LLMConfig{
			Provider:  "gemini",
			Model:     "gemini-2.5-flash",
			APIKeyEnv: "GEMINI_API_KEY",
		},
		Chunk: ChunkConfig{
			Size:    500,
			Overlap: 100,
		},
		Retrieve: RetrieveConfig{
			TopK:           5,
			ScoreThreshold: 0.3,
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// LoadFromDir loads configuration from a directory (looks for cvrag.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "cvrag.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	return DefaultConfig(), nil
}

// Validate checks invariants that would otherwise surface as subtle runtime
// failures. Violations are fatal configuration errors.
func (c *Config) Validate() error {
	if c.Chunk.Overlap < 0 {
		return fmt.Errorf("chunk overlap must be >= 0, got %d", c.Chunk.Overlap)
	}
	if c.Chunk.Size <= c.Chunk.Overlap {
		return fmt.Errorf("chunk size (%d) must be greater than overlap (%d)", c.Chunk.Size, c.Chunk.Overlap)
	}
	if c.Retrieve.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.Retrieve.TopK)
	}
	if c.Retrieve.ScoreThreshold < -1 || c.Retrieve.ScoreThreshold > 1 {
		return fmt.Errorf("score_threshold must be in [-1,1], got %f", c.Retrieve.ScoreThreshold)
	}
	if c.Embedding.Dimension <= 0 {
		return fmt.Errorf("embedding dimension must be positive, got %d", c.Embedding.Dimension)
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
