package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"cvrag/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed candidates with their chunk counts",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	payloads, err := st.Scroll(ctx, config.ScrollLimit)
	if err != nil {
		return fmt.Errorf("failed to list candidates: %w", err)
	}

	if len(payloads) == 0 {
		fmt.Println("No candidates indexed yet.")
		return nil
	}

	counts := make(map[string]int)
	for _, p := range payloads {
		counts[p.Candidate]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("%d candidates:\n", len(names))
	for _, name := range names {
		fmt.Printf("  %s  (%d chunks)\n", name, counts[name])
	}
	return nil
}
