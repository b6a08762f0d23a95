package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/scholarlens/core"
	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/huangsam/scholarlens/internal/source"
	"github.com/huangsam/scholarlens/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

// requestConfig copies the base config and applies the filter, anchor and
// fallback arguments of the request.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("department", ""); d != "" {
		cfg.Filter.Department = d
	}
	if s := request.GetString("supervisor", ""); s != "" {
		cfg.Filter.Supervisor = s
	}
	if s := request.GetString("status", ""); s != "" {
		cfg.Filter.Status = s
	}

	now, err := contract.ParseAnchorTime(request.GetString("now", ""), time.Now())
	if err != nil {
		return nil, err
	}
	cfg.Now = now

	if f := request.GetString("degree_fallback", ""); f != "" {
		fallback := schema.DegreeFallback(strings.ToLower(f))
		if _, ok := schema.ValidDegreeFallbacks[fallback]; !ok {
			return nil, fmt.Errorf("invalid degree fallback '%s'. must be bsc, unknown", f)
		}
		cfg.DegreeFallback = fallback
	}
	return cfg, nil
}

func (h *toolHandler) handleGetSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid snapshot parameters: %v", err)), nil
	}

	src, err := source.New(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid record source: %v", err)), nil
	}

	snap, err := core.GetSnapshotResults(core.WithSuppressHeader(ctx), cfg, src, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("snapshot failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(snap, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSegments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid segment parameters: %v", err)), nil
	}

	by := schema.SegmentKey(strings.ToLower(request.GetString("by", "")))
	if by == "" {
		return mcp.NewToolResultError("invalid segment parameters: --by is required"), nil
	}
	if _, ok := schema.ValidSegmentKeys[by]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid segment parameters: invalid segment key '%s'. must be department, degree, supervisor", by)), nil
	}
	cfg.SegmentBy = by

	src, err := source.New(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid record source: %v", err)), nil
	}

	result, err := core.GetSegmentResults(core.WithSuppressHeader(ctx), cfg, src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("segments failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
