package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/huangsam/scholarlens/schema"
)

// jsonRecord is the on-disk shape of a record in a JSON array.
type jsonRecord struct {
	ID          json.RawMessage `json:"id"`
	Title       string          `json:"title"`
	Degree      string          `json:"degree"`
	DegreeLabel string          `json:"degree_label"`
	Department  string          `json:"department"`
	CreatedAt   json.RawMessage `json:"created_at"`
	Status      string          `json:"status"`
	Supervisor  string          `json:"supervisor"`
}

// JSONSource reads records from a file holding a JSON array of objects.
type JSONSource struct {
	Path string
}

var _ contract.RecordSource = &JSONSource{} // Compile-time check

// Load implements the RecordSource interface.
func (s *JSONSource) Load(ctx context.Context) ([]schema.ProjectRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON file %s: %w", s.Path, err)
	}
	defer func() { _ = f.Close() }()
	return ReadJSON(ctx, f)
}

// ReadJSON parses records from a JSON array.
func ReadJSON(ctx context.Context, r io.Reader) ([]schema.ProjectRecord, error) {
	var raw []jsonRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return []schema.ProjectRecord{}, nil
		}
		return nil, fmt.Errorf("failed to decode JSON records: %w", err)
	}

	records := make([]schema.ProjectRecord, 0, len(raw))
	for _, jr := range raw {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		degree := jr.Degree
		if degree == "" {
			degree = jr.DegreeLabel
		}
		records = append(records, fields{
			id:         scalarString(jr.ID),
			title:      jr.Title,
			degree:     degree,
			department: jr.Department,
			createdAt:  scalarString(jr.CreatedAt),
			status:     jr.Status,
			supervisor: jr.Supervisor,
		}.toRecord())
	}
	return records, nil
}

// scalarString renders a JSON string or number as plain text.
func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
