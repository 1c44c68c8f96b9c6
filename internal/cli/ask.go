package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask one question and exit",
	Long: `Answer a single question from the indexed CVs and print the answer with
its source chunks.

Examples:
  cvrag ask "Who knows Python?"
  cvrag ask who has the most ML experience`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	question := strings.Join(args, " ")

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

	answer, err := pipeline.Answer(ctx, question, nil)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", answer.Text)
	printSources(answer.Hits)
	return nil
}
