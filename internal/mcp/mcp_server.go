// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the scholarlens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Scholarlens Analytics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	filterOptions := []mcp.ToolOption{
		mcp.WithString("department", mcp.Description("Only include projects of this department (exact match).")),
		mcp.WithString("supervisor", mcp.Description("Only include projects of this supervisor (exact match).")),
		mcp.WithString("status", mcp.Description("Only include projects with this status (exact match).")),
		mcp.WithString("now", mcp.Description("Anchor time for the six month trend: RFC3339 or 'N units ago'. Defaults to the current time.")),
		mcp.WithString("degree_fallback", mcp.Description("Bucket for unrecognized degree labels. Defaults to 'bsc'."), mcp.Enum("bsc", "unknown")),
	}

	// --- 1. Tool: get_snapshot ---
	snapshotOptions := append([]mcp.ToolOption{
		mcp.WithDescription("Compute the analytics snapshot of academic projects: degree distribution, six month trend, department ranking, growth rate and top topic."),
	}, filterOptions...)
	s.AddTool(mcp.NewTool("get_snapshot", snapshotOptions...), h.handleGetSnapshot)

	// --- 2. Tool: get_segments ---
	segmentOptions := append([]mcp.ToolOption{
		mcp.WithDescription("Compute one analytics snapshot per department, degree level or supervisor."),
		mcp.WithString("by", mcp.Description("Segment dimension."), mcp.Required(), mcp.Enum("department", "degree", "supervisor")),
	}, filterOptions...)
	s.AddTool(mcp.NewTool("get_segments", segmentOptions...), h.handleGetSegments)

	return s
}

// StartMCPServer starts the scholarlens MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
