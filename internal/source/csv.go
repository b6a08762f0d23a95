package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/huangsam/scholarlens/schema"
)

// columnAliases maps accepted header names to canonical columns.
var columnAliases = map[string]string{
	"id":           "id",
	"title":        "title",
	"degree":       "degree",
	"degree_label": "degree",
	"department":   "department",
	"created_at":   "created_at",
	"createdat":    "created_at",
	"status":       "status",
	"supervisor":   "supervisor",
}

// CSVSource reads records from a CSV file with a header row.
type CSVSource struct {
	Path string
}

var _ contract.RecordSource = &CSVSource{} // Compile-time check

// Load implements the RecordSource interface.
func (s *CSVSource) Load(ctx context.Context) ([]schema.ProjectRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file %s: %w", s.Path, err)
	}
	defer func() { _ = f.Close() }()
	return ReadCSV(ctx, f)
}

// ReadCSV parses records from CSV data. Unknown columns are ignored.
func ReadCSV(ctx context.Context, r io.Reader) ([]schema.ProjectRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []schema.ProjectRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if canonical, ok := columnAliases[key]; ok {
			if _, seen := index[canonical]; !seen {
				index[canonical] = i
			}
		}
	}

	records := []schema.ProjectRecord{}
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		get := func(column string) string {
			i, ok := index[column]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		records = append(records, fields{
			id:         get("id"),
			title:      get("title"),
			degree:     get("degree"),
			department: get("department"),
			createdAt:  get("created_at"),
			status:     get("status"),
			supervisor: get("supervisor"),
		}.toRecord())
	}
	return records, nil
}
