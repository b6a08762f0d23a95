package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/huangsam/scholarlens/internal/history"
	mcp_internal "github.com/huangsam/scholarlens/internal/mcp"
	"github.com/huangsam/scholarlens/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectsCSV = `id,title,degree,department,created_at,status,supervisor
1,Neural Rendering,MSc,Computer Science,2024-06-03T09:00:00Z,verified,Ada Lovelace
2,Quantum Sensors,PhD Thesis,Physics,2024-05-03T09:00:00Z,pending,Alan Turing
3,Neural Search,BSc,Computer Science,2024-05-20T09:00:00Z,verified,Ada Lovelace
`

const anchor = "2024-06-15T10:30:00Z"

func newTestServer(t *testing.T) *server.MCPServer {
	t.Helper()
	input := filepath.Join(t.TempDir(), "projects.csv")
	require.NoError(t, os.WriteFile(input, []byte(projectsCSV), 0o644))

	baseCfg := &contract.Config{
		Source:         schema.CSVSource,
		Input:          input,
		DegreeFallback: schema.FallbackBSc,
		Workers:        2,
		HistoryBackend: schema.NoneBackend,
	}
	mgr := &history.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(nil)
	return mcp_internal.NewMCPServer(baseCfg, mgr)
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "tool %s should be registered", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServer_ToolsRegistered(t *testing.T) {
	s := newTestServer(t)
	assert.NotNil(t, s.GetTool("get_snapshot"))
	assert.NotNil(t, s.GetTool("get_segments"))
	assert.Nil(t, s.GetTool("get_files"))
}

func TestGetSnapshot(t *testing.T) {
	s := newTestServer(t)

	t.Run("all records", func(t *testing.T) {
		res := callTool(t, s, "get_snapshot", map[string]any{"now": anchor})
		require.False(t, res.IsError, resultText(t, res))

		var snap schema.AnalyticsSnapshot
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &snap))
		assert.Equal(t, 3, snap.TotalCount)
		assert.Equal(t, "neural", snap.TopTopic)
		assert.Equal(t, "Computer Science", snap.TopDepartment)
		assert.Equal(t, -50, snap.GrowthRatePercent)
		assert.Len(t, snap.MonthlyTrend, schema.TrendMonths)
	})

	t.Run("department filter", func(t *testing.T) {
		res := callTool(t, s, "get_snapshot", map[string]any{
			"now":        anchor,
			"department": "Computer Science",
		})
		require.False(t, res.IsError, resultText(t, res))

		var snap schema.AnalyticsSnapshot
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &snap))
		assert.Equal(t, 2, snap.TotalCount)
		assert.Equal(t, 0, snap.GrowthRatePercent)
		assert.Equal(t, map[schema.DegreeBucket]int{schema.MSc: 1, schema.BSc: 1}, snap.DegreeDistribution)
	})

	t.Run("unknown fallback", func(t *testing.T) {
		res := callTool(t, s, "get_snapshot", map[string]any{
			"now":             anchor,
			"degree_fallback": "unknown",
		})
		require.False(t, res.IsError, resultText(t, res))
	})

	t.Run("invalid now", func(t *testing.T) {
		res := callTool(t, s, "get_snapshot", map[string]any{"now": "next tuesday"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid snapshot parameters")
	})

	t.Run("invalid fallback", func(t *testing.T) {
		res := callTool(t, s, "get_snapshot", map[string]any{"degree_fallback": "diploma"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid degree fallback")
	})
}

func TestGetSegments(t *testing.T) {
	s := newTestServer(t)

	t.Run("by supervisor", func(t *testing.T) {
		res := callTool(t, s, "get_segments", map[string]any{"by": "supervisor", "now": anchor})
		require.False(t, res.IsError, resultText(t, res))

		var result schema.SegmentResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
		assert.Equal(t, schema.SegmentSupervisor, result.By)
		require.Len(t, result.Segments, 2)
		assert.Equal(t, "Ada Lovelace", result.Segments[0].Key)
		assert.Equal(t, 2, result.Segments[0].Snapshot.TotalCount)
		assert.Equal(t, "Alan Turing", result.Segments[1].Key)
	})

	t.Run("by degree with status filter", func(t *testing.T) {
		res := callTool(t, s, "get_segments", map[string]any{
			"by":     "DEGREE",
			"now":    anchor,
			"status": "verified",
		})
		require.False(t, res.IsError, resultText(t, res))

		var result schema.SegmentResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
		require.Len(t, result.Segments, 2)
		assert.Equal(t, "MSc", result.Segments[0].Key)
		assert.Equal(t, "BSc", result.Segments[1].Key)
	})

	t.Run("missing by", func(t *testing.T) {
		res := callTool(t, s, "get_segments", map[string]any{"now": anchor})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "--by is required")
	})

	t.Run("invalid by", func(t *testing.T) {
		res := callTool(t, s, "get_segments", map[string]any{"by": "title"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid segment key")
	})
}

func TestGetSnapshot_MissingInput(t *testing.T) {
	baseCfg := &contract.Config{
		Source:         schema.CSVSource,
		Input:          filepath.Join(t.TempDir(), "missing.csv"),
		DegreeFallback: schema.FallbackBSc,
		Workers:        1,
	}
	mgr := &history.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(nil)
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	res := callTool(t, s, "get_snapshot", map[string]any{"now": anchor})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "snapshot failed")
}
