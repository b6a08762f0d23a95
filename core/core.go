// Package core has the run logic that loads records and turns them into snapshots and segments.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/scholarlens/core/agg"
	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/huangsam/scholarlens/internal/outwriter"
	"github.com/huangsam/scholarlens/internal/source"
	"github.com/huangsam/scholarlens/schema"
)

// ExecutorFunc defines the function signature for executing different run modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error

// ExecuteSnapshot builds one snapshot over the configured records and prints it.
// It serves as the main entry point for the 'snapshot' command.
func ExecuteSnapshot(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	src, err := source.New(cfg)
	if err != nil {
		return err
	}
	snap, err := GetSnapshotResults(ctx, cfg, src, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteSnapshot(snap, cfg, duration)
}

// ExecuteSegments builds one snapshot per segment key and prints them.
// It serves as the main entry point for the 'segments' command.
func ExecuteSegments(ctx context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	start := time.Now()
	src, err := source.New(cfg)
	if err != nil {
		return err
	}
	result, err := GetSegmentResults(ctx, cfg, src)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteSegments(result, cfg, duration)
}

// GetSnapshotResults loads and filters records, builds the snapshot, and
// records it in the history store when one is configured. History failures
// are reported but never fail the snapshot.
func GetSnapshotResults(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.HistoryManager) (schema.AnalyticsSnapshot, error) {
	records, err := loadRecords(ctx, cfg, src)
	if err != nil {
		return schema.AnalyticsSnapshot{}, err
	}

	snap := agg.BuildSnapshot(records, cfg.Now, agg.WithDegreeFallback(cfg.DegreeFallback))

	if mgr != nil {
		if store := mgr.GetHistoryStore(); store != nil {
			if _, err := store.RecordSnapshot(cfg.RunMetadata(time.Now()), snap); err != nil {
				contract.LogWarn("Snapshot history recording failed", err)
			}
		}
	}
	return snap, nil
}

// GetSegmentResults loads and filters records and builds one snapshot per segment key.
func GetSegmentResults(ctx context.Context, cfg *contract.Config, src contract.RecordSource) (schema.SegmentResult, error) {
	if cfg.SegmentBy == "" {
		return schema.SegmentResult{}, errors.New("--by is required for segments")
	}
	records, err := loadRecords(ctx, cfg, src)
	if err != nil {
		return schema.SegmentResult{}, err
	}
	return BuildSegments(ctx, records, cfg.Now, cfg.SegmentBy, cfg.Workers, cfg.DegreeFallback)
}

// loadRecords prints the run header, loads records from src and applies the configured filter.
func loadRecords(ctx context.Context, cfg *contract.Config, src contract.RecordSource) ([]schema.ProjectRecord, error) {
	if !shouldSuppressHeader(ctx) {
		logRunHeader(os.Stderr, cfg)
	}
	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records from %s source: %w", cfg.Source, err)
	}
	return source.Filter(records, cfg.Filter), nil
}
