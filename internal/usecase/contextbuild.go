package usecase

import (
	"fmt"
	"strings"

	"cvrag/internal/domain"
)

const candidateHeader = "=================================================="

// BuildContext groups hits by candidate into labeled sections, preserving
// the order candidates first appear in the input. Pure function.
func BuildContext(hits []domain.Hit) string {
	var order []string
	grouped := make(map[string][]domain.Hit)
	for _, h := range hits {
		if _, seen := grouped[h.Candidate]; !seen {
			order = append(order, h.Candidate)
		}
		grouped[h.Candidate] = append(grouped[h.Candidate], h)
	}

	var parts []string
	for _, candidate := range order {
		parts = append(parts, fmt.Sprintf("%s\nCANDIDATE: %s\n%s", candidateHeader, candidate, candidateHeader))
		for _, h := range grouped[candidate] {
			parts = append(parts, h.Text, "")
		}
	}
	return strings.Join(parts, "\n")
}
