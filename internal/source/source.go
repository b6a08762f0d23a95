// Package source loads project records from files and databases.
package source

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/huangsam/scholarlens/schema"
)

// New returns the record source selected by the configuration.
func New(cfg *contract.Config) (contract.RecordSource, error) {
	switch cfg.Source {
	case schema.CSVSource:
		return &CSVSource{Path: cfg.Input}, nil
	case schema.JSONSource:
		return &JSONSource{Path: cfg.Input}, nil
	case schema.SQLiteSource, schema.MySQLSource, schema.PostgreSQLSource:
		src, err := NewSQLSource(cfg.Source.Backend(), cfg.Input, cfg.Table)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unsupported source: %s", cfg.Source)
	}
}

// Filter returns the records that match the filter, preserving order.
// The input slice is never modified.
func Filter(records []schema.ProjectRecord, filter contract.RecordFilter) []schema.ProjectRecord {
	if filter.IsEmpty() {
		return records
	}
	matched := make([]schema.ProjectRecord, 0, len(records))
	for _, r := range records {
		if filter.Matches(r) {
			matched = append(matched, r)
		}
	}
	return matched
}

// fields holds the raw string values of one record before conversion.
type fields struct {
	id, title, degree, department, createdAt, status, supervisor string
}

// toRecord converts raw fields into a record. Unparseable timestamps
// become the zero time and are treated as epoch downstream.
func (f fields) toRecord() schema.ProjectRecord {
	id := strings.TrimSpace(f.id)
	if id == "" {
		id = uuid.NewString()
	}
	createdAt, _ := contract.ParseTimestamp(f.createdAt)
	return schema.ProjectRecord{
		ID:          id,
		Title:       f.title,
		DegreeLabel: f.degree,
		Department:  f.department,
		CreatedAt:   createdAt,
		Status:      f.status,
		Supervisor:  f.supervisor,
	}
}
