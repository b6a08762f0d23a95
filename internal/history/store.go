package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/scholarlens/internal/contract"
	"github.com/huangsam/scholarlens/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for snapshot history.
const (
	snapshotRunsTable = "scholarlens_snapshot_runs"
	trendPointsTable  = "scholarlens_trend_points"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDatabase(backend, connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// openDatabase opens a connection pool for the backend without verifying it.
func openDatabase(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		db, err := sql.Open(contract.DriverName(backend), dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		return db, nil

	case schema.MySQLBackend:
		db, err := sql.Open(contract.DriverName(backend), connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}
		return db, nil

	case schema.PostgreSQLBackend:
		db, err := sql.Open(contract.DriverName(backend), connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=...", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

// createHistoryTables creates the history tables when they are missing.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{snapshotRunsTable, getCreateSnapshotRunsQuery(backend)},
		{trendPointsTable, getCreateTrendPointsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateSnapshotRunsQuery returns the CREATE TABLE query for scholarlens_snapshot_runs.
func getCreateSnapshotRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := contract.QuoteTableName(snapshotRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				generated_at DATETIME(6) NOT NULL,
				anchor_time DATETIME(6) NOT NULL,
				source VARCHAR(32) NOT NULL,
				filters TEXT,
				degree_fallback VARCHAR(32) NOT NULL,
				total_count INT NOT NULL,
				growth_rate INT NOT NULL,
				top_topic VARCHAR(255) NOT NULL,
				top_department VARCHAR(255) NOT NULL,
				degree_distribution TEXT,
				department_ranking TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				generated_at TIMESTAMPTZ NOT NULL,
				anchor_time TIMESTAMPTZ NOT NULL,
				source TEXT NOT NULL,
				filters TEXT,
				degree_fallback TEXT NOT NULL,
				total_count INT NOT NULL,
				growth_rate INT NOT NULL,
				top_topic TEXT NOT NULL,
				top_department TEXT NOT NULL,
				degree_distribution TEXT,
				department_ranking TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				generated_at TEXT NOT NULL,
				anchor_time TEXT NOT NULL,
				source TEXT NOT NULL,
				filters TEXT,
				degree_fallback TEXT NOT NULL,
				total_count INTEGER NOT NULL,
				growth_rate INTEGER NOT NULL,
				top_topic TEXT NOT NULL,
				top_department TEXT NOT NULL,
				degree_distribution TEXT,
				department_ranking TEXT
			);
		`, quotedTableName)
	}
}

// getCreateTrendPointsQuery returns the CREATE TABLE query for scholarlens_trend_points.
func getCreateTrendPointsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := contract.QuoteTableName(trendPointsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				position INT NOT NULL,
				label VARCHAR(16) NOT NULL,
				month_start DATETIME(6) NOT NULL,
				month_end DATETIME(6) NOT NULL,
				project_count INT NOT NULL,
				PRIMARY KEY (run_id, position)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				position INT NOT NULL,
				label TEXT NOT NULL,
				month_start TIMESTAMPTZ NOT NULL,
				month_end TIMESTAMPTZ NOT NULL,
				project_count INT NOT NULL,
				PRIMARY KEY (run_id, position)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				position INTEGER NOT NULL,
				label TEXT NOT NULL,
				month_start TEXT NOT NULL,
				month_end TEXT NOT NULL,
				project_count INTEGER NOT NULL,
				PRIMARY KEY (run_id, position)
			);
		`, quotedTableName)
	}
}

// RecordSnapshot stores the snapshot and its trend points in one transaction
// and returns the new run ID.
func (hs *HistoryStoreImpl) RecordSnapshot(meta schema.RunMetadata, snap schema.AnalyticsSnapshot) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	filtersJSON, err := json.Marshal(meta.Filters)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal filters: %w", err)
	}
	distributionJSON, err := json.Marshal(snap.DegreeDistribution)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal degree distribution: %w", err)
	}
	rankingJSON, err := json.Marshal(snap.DepartmentRanking)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal department ranking: %w", err)
	}

	tx, err := hs.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	runsTable := contract.QuoteTableName(snapshotRunsTable, hs.backend)
	columns := `generated_at, anchor_time, source, filters, degree_fallback, total_count,
		growth_rate, top_topic, top_department, degree_distribution, department_ranking`
	args := []any{
		formatTime(meta.GeneratedAt, hs.backend), formatTime(snap.GeneratedFor, hs.backend),
		string(meta.Source), string(filtersJSON), string(meta.DegreeFallback), snap.TotalCount,
		snap.GrowthRatePercent, snap.TopTopic, snap.TopDepartment, string(distributionJSON), string(rankingJSON),
	}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING run_id`, runsTable, columns, placeholders(hs.backend, len(args)))
		if err := tx.QueryRow(query, args...).Scan(&runID); err != nil {
			return 0, fmt.Errorf("failed to insert snapshot run: %w", err)
		}
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, runsTable, columns, placeholders(hs.backend, len(args)))
		result, err := tx.Exec(query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert snapshot run: %w", err)
		}
		if runID, err = result.LastInsertId(); err != nil {
			return 0, fmt.Errorf("failed to read snapshot run id: %w", err)
		}
	}

	pointsQuery := fmt.Sprintf(`INSERT INTO %s (run_id, position, label, month_start, month_end, project_count) VALUES (%s)`,
		contract.QuoteTableName(trendPointsTable, hs.backend), placeholders(hs.backend, 6))
	for i, bucket := range snap.MonthlyTrend {
		if _, err := tx.Exec(pointsQuery, runID, i, bucket.Label,
			formatTime(bucket.Start, hs.backend), formatTime(bucket.End, hs.backend), bucket.Count); err != nil {
			return 0, fmt.Errorf("failed to insert trend point %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit snapshot run: %w", err)
	}
	return runID, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	runsTable := contract.QuoteTableName(snapshotRunsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var lastRunTime any
		lastRunQuery := fmt.Sprintf("SELECT run_id, generated_at FROM %s ORDER BY run_id DESC LIMIT 1", runsTable)
		if err := hs.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &lastRunTime); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		t, err := scanTime(lastRunTime)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunTime = t

		var oldestRunTime any
		oldestRunQuery := fmt.Sprintf("SELECT generated_at FROM %s ORDER BY run_id ASC LIMIT 1", runsTable)
		if err := hs.db.QueryRow(oldestRunQuery).Scan(&oldestRunTime); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		if t, err = scanTime(oldestRunTime); err != nil {
			return status, fmt.Errorf("failed to parse oldest run time: %w", err)
		}
		status.OldestRunTime = t
	}

	for _, table := range []string{snapshotRunsTable, trendPointsTable} {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", contract.QuoteTableName(table, hs.backend))
		var count int64
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all snapshot runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.SnapshotRunRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, generated_at, anchor_time, source, filters, degree_fallback,
		total_count, growth_rate, top_topic, top_department, degree_distribution, department_ranking
		FROM %s ORDER BY run_id`, contract.QuoteTableName(snapshotRunsTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SnapshotRunRecord
	for rows.Next() {
		var record schema.SnapshotRunRecord
		var generatedAt, anchorTime any
		if err := rows.Scan(&record.RunID, &generatedAt, &anchorTime, &record.Source, &record.Filters,
			&record.DegreeFallback, &record.TotalCount, &record.GrowthRatePercent, &record.TopTopic,
			&record.TopDepartment, &record.DegreeDistribution, &record.DepartmentRanking); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot run: %w", err)
		}
		if record.GeneratedAt, err = scanTime(generatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse generated_at: %w", err)
		}
		if record.AnchorTime, err = scanTime(anchorTime); err != nil {
			return nil, fmt.Errorf("failed to parse anchor_time: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot runs: %w", err)
	}
	return results, nil
}

// GetAllTrendPoints retrieves all trend points from the store.
func (hs *HistoryStoreImpl) GetAllTrendPoints() ([]schema.TrendPointRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, position, label, month_start, month_end, project_count
		FROM %s ORDER BY run_id, position`, contract.QuoteTableName(trendPointsTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query trend points: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.TrendPointRecord
	for rows.Next() {
		var record schema.TrendPointRecord
		var monthStart, monthEnd any
		if err := rows.Scan(&record.RunID, &record.Position, &record.Label, &monthStart, &monthEnd, &record.Count); err != nil {
			return nil, fmt.Errorf("failed to scan trend point: %w", err)
		}
		if record.MonthStart, err = scanTime(monthStart); err != nil {
			return nil, fmt.Errorf("failed to parse month_start: %w", err)
		}
		if record.MonthEnd, err = scanTime(monthEnd); err != nil {
			return nil, fmt.Errorf("failed to parse month_end: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trend points: %w", err)
	}
	return results, nil
}

// placeholders returns n bind parameters in the backend's syntax.
func placeholders(backend schema.DatabaseBackend, n int) string {
	var b []byte
	for i := 1; i <= n; i++ {
		if i > 1 {
			b = append(b, ", "...)
		}
		if backend == schema.PostgreSQLBackend {
			b = fmt.Appendf(b, "$%d", i)
		} else {
			b = append(b, '?')
		}
	}
	return string(b)
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t.UTC()
	}
}

// scanTime converts a scanned time column into a time.Time.
// SQLite stores text and MySQL returns raw bytes unless parseTime is set.
func scanTime(v any) (time.Time, error) {
	switch value := v.(type) {
	case time.Time:
		return value, nil
	case string:
		return contract.ParseTimestamp(value)
	case []byte:
		return contract.ParseTimestamp(string(value))
	default:
		return time.Time{}, fmt.Errorf("unexpected time value of type %T", v)
	}
}
