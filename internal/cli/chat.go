package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cvrag/internal/adapter/cache"
	"cvrag/internal/domain"
	"cvrag/internal/port"
	"cvrag/internal/usecase"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question/answer loop over the indexed CVs",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

// buildPipeline wires store, embedder and language model into the answer
// pipeline. Configuration errors (missing keys, unreachable store) surface
// here, before any question is asked.
func buildPipeline(ctx context.Context) (*usecase.Pipeline, port.VectorStore, error) {
	st, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	embedder, err := newEmbedder()
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	// Repeated questions within a session reuse their embedding.
	cached := cache.NewCachedEmbedder(embedder, cache.NewEmbedCache(256, 15*time.Minute))

	model, err := newLLM()
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	retriever := usecase.NewRetriever(st, cached, cfg.Retrieve.TopK, cfg.Retrieve.ScoreThreshold)
	generator := usecase.NewGenerator(model)
	return usecase.NewPipeline(retriever, generator), st, nil
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	pipeline, st, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	count, err := st.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count indexed chunks: %w", err)
	}
	if count == 0 {
		fmt.Println("No CVs indexed. Run 'cvrag ingest' first.")
		return nil
	}

	fmt.Printf("\nCV Assistant | %s | %d chunks indexed\n", cfg.LLM.Model, count)
	fmt.Println("Type 'quit' to exit")
	fmt.Println(strings.Repeat("-", 60))

	var history []domain.Turn
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return scanner.Err()
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		switch strings.ToLower(question) {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return nil
		}

		answer, err := pipeline.Answer(ctx, question, history)
		if err != nil {
			// One failed request degrades that request only; history and
			// indexed data stay intact.
			fmt.Printf("Error: %v\n", err)
			continue
		}

		fmt.Printf("\nAssistant:\n%s\n", answer.Text)
		printSources(answer.Hits)

		history = append(history,
			domain.Turn{Role: domain.RoleUser, Content: question},
			domain.Turn{Role: domain.RoleAssistant, Content: answer.Text},
		)
	}
}
