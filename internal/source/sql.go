package source

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/huangsam/scholarlens/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLSource reads records from a table in a SQL database.
type SQLSource struct {
	backend schema.DatabaseBackend
	connStr string
	table   string
}

var _ contract.RecordSource = &SQLSource{} // Compile-time check

// NewSQLSource creates a SQL record source. The connection is opened on each Load.
func NewSQLSource(backend schema.DatabaseBackend, connStr, table string) (*SQLSource, error) {
	if contract.DriverName(backend) == "" {
		return nil, fmt.Errorf("unsupported source backend: %s", backend)
	}
	if err := contract.ValidateTableName(table); err != nil {
		return nil, err
	}
	return &SQLSource{backend: backend, connStr: connStr, table: table}, nil
}

// Load implements the RecordSource interface.
// Rows are ordered by created_at then id so ties break deterministically.
func (s *SQLSource) Load(ctx context.Context) ([]schema.ProjectRecord, error) {
	db, err := sqlx.Open(contract.DriverName(s.backend), s.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", s.backend, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", s.backend, err)
	}
	return queryRecords(ctx, db, s.backend, s.table)
}

// projectRow is one row of the projects table.
type projectRow struct {
	ID         sql.NullString `db:"id"`
	Title      sql.NullString `db:"title"`
	Degree     sql.NullString `db:"degree_label"`
	Department sql.NullString `db:"department"`
	CreatedAt  any            `db:"created_at"`
	Status     sql.NullString `db:"status"`
	Supervisor sql.NullString `db:"supervisor"`
}

// queryRecords selects every project row from the table.
func queryRecords(ctx context.Context, db *sqlx.DB, backend schema.DatabaseBackend, table string) ([]schema.ProjectRecord, error) {
	query := fmt.Sprintf(`SELECT id, title, degree_label, department, created_at, status, supervisor
		FROM %s ORDER BY created_at, id`, contract.QuoteTableName(table, backend))

	var rows []projectRow
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}

	records := make([]schema.ProjectRecord, 0, len(rows))
	for _, row := range rows {
		record := fields{
			id:         row.ID.String,
			title:      row.Title.String,
			degree:     row.Degree.String,
			department: row.Department.String,
			status:     row.Status.String,
			supervisor: row.Supervisor.String,
		}.toRecord()
		record.CreatedAt = columnTime(row.CreatedAt)
		records = append(records, record)
	}
	return records, nil
}

// columnTime converts a created_at column value into a time.
// Drivers return native times, text, raw bytes or integers depending on the column type.
func columnTime(v any) time.Time {
	switch value := v.(type) {
	case time.Time:
		return value
	case string:
		t, _ := contract.ParseTimestamp(value)
		return t
	case []byte:
		t, _ := contract.ParseTimestamp(string(value))
		return t
	case int64:
		t, _ := contract.ParseTimestamp(strconv.FormatInt(value, 10))
		return t
	default:
		return time.Time{}
	}
}
