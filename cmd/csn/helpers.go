package main

import (
	"fmt"
	"math"
	"os"

	"github.com/mattn/go-isatty"
)

// formatMetric renders a float for table output; missing values show as "-".
func formatMetric(value float64) string {
	if math.IsNaN(value) {
		return "-"
	}
	return fmt.Sprintf("%.3f", value)
}

// decisionGlyph marks inclusion state in interactive terminals. Plain
// yes/no is used when output is redirected.
func decisionGlyph(included bool) string {
	if !stdoutIsTerminal() {
		return yesNo(included)
	}
	if included {
		return "✓"
	}
	return "✗"
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
