package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/lookalike/internal/models"
)

// WriteSummary prints a human-readable view of result to w.
func WriteSummary(w io.Writer, result *models.Result) {
	fmt.Fprintf(w, "\nLookalikes for %d of %d customers (%d categories)\n\n",
		len(result.Entries), result.Customers, len(result.Categories))
	for _, e := range result.Entries {
		parts := make([]string, len(e.Lookalikes))
		for i, l := range e.Lookalikes {
			parts[i] = fmt.Sprintf("%s (%.4f)", l.CustomerID, l.Score)
		}
		fmt.Fprintf(w, "%s -> %s\n", e.CustomerID, strings.Join(parts, ", "))
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped (no transactions): %s\n", strings.Join(result.Skipped, ", "))
	}
	fmt.Fprintf(w, "\nMean similarity score: %.4f\n", result.MeanScore)
}
