//go:build database

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/scholarlens/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// seedRows mirrors the CSV fixture with typed timestamps.
var seedRows = []struct {
	id, title, degree, department string
	createdAt                     time.Time
	status, supervisor            string
}{
	{"p1", "Neural Rendering Pipelines", "MSc Dissertation", "Computer Science", time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC), "verified", "Ada Lovelace"},
	{"p2", "Quantum Sensor Arrays", "PhD Thesis", "Physics", time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC), "pending", "Alan Turing"},
	{"p3", "Neural Search Engines", "BSc", "Computer Science", time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC), "verified", "Ada Lovelace"},
	{"p4", "Soil Moisture Models", "Diploma", "", time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC), "verified", ""},
}

// seedProjects creates and fills the projects table.
func seedProjects(t *testing.T, driver, connStr, createQuery, insertQuery string) {
	t.Helper()
	db, err := sql.Open(driver, connStr)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.Eventually(t, func() bool { return db.Ping() == nil }, 30*time.Second, time.Second)

	_, err = db.Exec(createQuery)
	require.NoError(t, err)
	for _, r := range seedRows {
		_, err = db.Exec(insertQuery, r.id, r.title, r.degree, r.department, r.createdAt, r.status, r.supervisor)
		require.NoError(t, err)
	}
}

// verifyDatabaseRun runs snapshot, segments and history commands against one backend.
func verifyDatabaseRun(t *testing.T, source, connStr string) {
	t.Helper()
	dir := t.TempDir()
	env := []string{
		"SCHOLARLENS_SOURCE=" + source,
		"SCHOLARLENS_INPUT=" + connStr,
		"SCHOLARLENS_HISTORY_BACKEND=" + source,
		"SCHOLARLENS_HISTORY_DB_CONNECT=" + connStr,
	}

	_, err := runScholarlens(t, dir, env, "history", "clear")
	require.NoError(t, err)

	_, err = runScholarlens(t, dir, env, "history", "migrate")
	require.NoError(t, err)

	out, err := runScholarlens(t, dir, env, "snapshot", "--now", fixtureAnchor, "--output", "json")
	require.NoError(t, err)

	var snap schema.AnalyticsSnapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, 4, snap.TotalCount)
	assert.Equal(t, -50, snap.GrowthRatePercent)
	assert.Equal(t, "neural", snap.TopTopic)
	assert.Equal(t, "Computer Science", snap.TopDepartment)

	out, err = runScholarlens(t, dir, env, "segments", "--now", fixtureAnchor, "--by", "supervisor", "--output", "json")
	require.NoError(t, err)
	var result schema.SegmentResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Segments, 3)

	out, err = runScholarlens(t, dir, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Connected: true")
	assert.Contains(t, out, "Total Runs: 1")
}

// TestScholarlensWithMySQL tests the CLI with MySQL as record source and history backend.
func TestScholarlensWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "scholarlens",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/scholarlens?parseTime=true", host, port.Port())

	seedProjects(t, "mysql", connStr,
		`CREATE TABLE projects (
			id VARCHAR(64) PRIMARY KEY,
			title TEXT,
			degree_label VARCHAR(255),
			department VARCHAR(255),
			created_at DATETIME,
			status VARCHAR(64),
			supervisor VARCHAR(255)
		)`,
		`INSERT INTO projects VALUES (?, ?, ?, ?, ?, ?, ?)`)

	verifyDatabaseRun(t, string(schema.MySQLSource), connStr)
}

// TestScholarlensWithPostgres tests the CLI with PostgreSQL as record source and history backend.
func TestScholarlensWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	seedProjects(t, "pgx", connStr,
		`CREATE TABLE projects (
			id TEXT PRIMARY KEY,
			title TEXT,
			degree_label TEXT,
			department TEXT,
			created_at TIMESTAMPTZ,
			status TEXT,
			supervisor TEXT
		)`,
		`INSERT INTO projects VALUES ($1, $2, $3, $4, $5, $6, $7)`)

	verifyDatabaseRun(t, string(schema.PostgreSQLSource), connStr)
}
