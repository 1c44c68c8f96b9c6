package cli

import (
	"fmt"
	"strings"

	"cvrag/internal/domain"
)

const wrapWidth = 68

// printSources prints a formatted box for each source chunk backing an
// answer, ranked by relevance.
func printSources(hits []domain.Hit) {
	if len(hits) == 0 {
		return
	}

	fmt.Printf("\n%s\n", strings.Repeat("-", 62))
	fmt.Printf("SOURCE CHUNKS (%d retrieved, ranked by relevance)\n\n", len(hits))

	for i, hit := range hits {
		fmt.Printf("  [%d] candidate: %s  chunk: %d  score: %.3f\n", i+1, hit.Candidate, hit.ChunkIndex, hit.Score)
		for _, line := range strings.Split(hit.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			for _, wrapped := range wrap(line, wrapWidth) {
				fmt.Printf("  | %s\n", wrapped)
			}
		}
		fmt.Printf("  %s\n\n", strings.Repeat("-", 60))
	}
}

// wrap splits a line into rune-bounded pieces of at most width characters.
func wrap(line string, width int) []string {
	runes := []rune(line)
	var out []string
	for len(runes) > width {
		out = append(out, string(runes[:width]))
		runes = runes[width:]
	}
	return append(out, string(runes))
}
