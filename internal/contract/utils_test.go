package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/scholarlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()
	assert.Contains(t, path, ".scholarlens_history.db")

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestValidateTableName(t *testing.T) {
	for _, name := range []string{"projects", "_staging", "Projects2024"} {
		assert.NoError(t, ValidateTableName(name), name)
	}
	for _, name := range []string{"", "2projects", "projects; DROP TABLE x", "my-table", "a.b", strings.Repeat("a", 65)} {
		assert.Error(t, ValidateTableName(name), name)
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`projects`", QuoteTableName("projects", schema.MySQLBackend))
	assert.Equal(t, `"projects"`, QuoteTableName("projects", schema.PostgreSQLBackend))
	assert.Equal(t, `"projects"`, QuoteTableName("projects", schema.SQLiteBackend))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1", " true "} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, got, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, got, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestDriverName(t *testing.T) {
	assert.Equal(t, "sqlite", DriverName(schema.SQLiteBackend))
	assert.Equal(t, "mysql", DriverName(schema.MySQLBackend))
	assert.Equal(t, "pgx", DriverName(schema.PostgreSQLBackend))
	assert.Empty(t, DriverName(schema.NoneBackend))
}
