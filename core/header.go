package core

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/huangsam/scholarlens/schema"
)

// logRunHeader prints a concise, 2-line header describing the run.
func logRunHeader(w io.Writer, cfg *contract.Config) {
	input := cfg.Input
	if !cfg.Source.IsDatabase() {
		input = filepath.Base(input)
	} else {
		input = cfg.Table
	}

	// Line 1: where records come from
	_, _ = fmt.Fprintf(w, "🔎 Source: %s (%s)\n", input, cfg.Source)

	// Line 2: the anchor and any filters
	line := fmt.Sprintf("📅 Anchor: %s", cfg.Now.Format(contract.DateTimeFormat))
	if !cfg.Filter.IsEmpty() {
		line += fmt.Sprintf(" | Filters: %s", schema.FormatFilters(cfg.Filter.AsMap()))
	}
	_, _ = fmt.Fprintln(w, line)
}
