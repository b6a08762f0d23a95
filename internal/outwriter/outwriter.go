// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"time"

	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/huangsam/scholarlens/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSnapshot prints a snapshot using the configured output format and destination.
func (ow *OutWriter) WriteSnapshot(snap schema.AnalyticsSnapshot, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSnapshotResults(w, snap, cfg, duration)
	}, "Wrote snapshot")
}

// WriteSegments prints segment results using the configured output format and destination.
func (ow *OutWriter) WriteSegments(result schema.SegmentResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSegmentResults(w, result, cfg, duration)
	}, "Wrote segments")
}
