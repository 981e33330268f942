package exporter

import (
	"fmt"
	"strings"
)

// formatIndex formats a partisan index for CSV output with 4 decimal
// places, enough to order districts without spurious precision.
func formatIndex(f float64) string {
	return fmt.Sprintf("%.4f", f)
}

// formatInt formats an int64 vote count for CSV output.
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}

// joinCounties renders a district's county list the way the original
// reports did, " - " separated.
func joinCounties(counties []string) string {
	return strings.Join(counties, " - ")
}
