package contract

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/scholarlens/schema"
)

// Default values for configuration.
const (
	DefaultTable  = "projects"
	MaxWidth      = 1000
	DefaultOutput = schema.TextOut
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// RecordFilter narrows the loaded records before aggregation.
// Empty fields match everything; non-empty fields match exactly.
type RecordFilter struct {
	Department string
	Supervisor string
	Status     string
}

// IsEmpty reports whether the filter matches every record.
func (f RecordFilter) IsEmpty() bool {
	return f.Department == "" && f.Supervisor == "" && f.Status == ""
}

// Matches reports whether a record passes the filter.
func (f RecordFilter) Matches(r schema.ProjectRecord) bool {
	if f.Department != "" && r.Department != f.Department {
		return false
	}
	if f.Supervisor != "" && r.Supervisor != f.Supervisor {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	return true
}

// AsMap returns the non-empty filter fields keyed by flag name.
func (f RecordFilter) AsMap() map[string]string {
	m := make(map[string]string)
	if f.Department != "" {
		m["department"] = f.Department
	}
	if f.Supervisor != "" {
		m["supervisor"] = f.Supervisor
	}
	if f.Status != "" {
		m["status"] = f.Status
	}
	return m
}

// Config holds the runtime configuration for a snapshot run.
// This struct remains the "final, validated" config.
type Config struct {
	Source schema.SourceKind
	Input  string // File path or connection string
	Table  string
	Filter RecordFilter

	Now            time.Time
	DegreeFallback schema.DegreeFallback
	SegmentBy      schema.SegmentKey
	Workers        int

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Source           string `mapstructure:"source"`
	Input            string `mapstructure:"input"`
	Table            string `mapstructure:"table"`
	Department       string `mapstructure:"department"`
	Supervisor       string `mapstructure:"supervisor"`
	Status           string `mapstructure:"status"`
	Now              string `mapstructure:"now"`
	DegreeFallback   string `mapstructure:"degree-fallback"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Color            string `mapstructure:"color"`
	Width            int    `mapstructure:"width"`
	Workers          int    `mapstructure:"workers"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from segmentsCmd.Flags() ---
	By string `mapstructure:"by"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// RunMetadata describes this configuration for the history store.
func (c *Config) RunMetadata(generatedAt time.Time) schema.RunMetadata {
	return schema.RunMetadata{
		GeneratedAt:    generatedAt,
		Source:         c.Source,
		Filters:        c.Filter.AsMap(),
		DegreeFallback: c.DegreeFallback,
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateSourceConfig(cfg, input); err != nil {
		return err
	}
	if err := validateHistoryConfig(cfg, input); err != nil {
		return err
	}
	if err := processAnchorTime(cfg, input); err != nil {
		return err
	}
	return processSegmentKey(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates fields that need no external context.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Filter = RecordFilter{
		Department: input.Department,
		Supervisor: input.Supervisor,
		Status:     input.Status,
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Width < 0 || input.Width > MaxWidth {
		return fmt.Errorf("width must be between 0 and %d (received %d)", MaxWidth, input.Width)
	}
	cfg.Width = input.Width

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, yaml", input.Output)
	}

	cfg.DegreeFallback = schema.DegreeFallback(strings.ToLower(input.DegreeFallback))
	if cfg.DegreeFallback == "" {
		cfg.DegreeFallback = schema.FallbackBSc
	}
	if _, ok := schema.ValidDegreeFallbacks[cfg.DegreeFallback]; !ok {
		return fmt.Errorf("invalid degree fallback '%s'. must be bsc, unknown", input.DegreeFallback)
	}

	return nil
}

// validateSourceConfig validates where records are loaded from.
func validateSourceConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.Source = schema.SourceKind(strings.ToLower(input.Source))
	if _, ok := schema.ValidSourceKinds[cfg.Source]; !ok {
		return fmt.Errorf("invalid source '%s'. must be csv, json, sqlite, mysql, postgresql", input.Source)
	}

	cfg.Input = strings.TrimSpace(input.Input)
	if cfg.Input == "" {
		return fmt.Errorf("--input is required for %s source", cfg.Source)
	}

	if !cfg.Source.IsDatabase() {
		return nil
	}

	cfg.Table = input.Table
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}
	if err := ValidateTableName(cfg.Table); err != nil {
		return err
	}
	return ValidateDatabaseConnectionString(cfg.Source.Backend(), cfg.Input)
}

// validateHistoryConfig validates the snapshot history backend.
func validateHistoryConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// A sqlite source and sqlite history must not share a file
	if cfg.Source == schema.SQLiteSource && cfg.HistoryBackend == schema.SQLiteBackend {
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		if historyPath == cfg.Input {
			return fmt.Errorf("source and history must use different SQLite database files. Both resolve to %q", historyPath)
		}
	}
	return nil
}

// processAnchorTime resolves the clock used to anchor the trend window.
func processAnchorTime(cfg *Config, input *ConfigRawInput) error {
	now, err := ParseAnchorTime(input.Now, time.Now())
	if err != nil {
		return err
	}
	cfg.Now = now
	return nil
}

// processSegmentKey validates the optional segment dimension.
func processSegmentKey(cfg *Config, input *ConfigRawInput) error {
	if input.By == "" {
		cfg.SegmentBy = ""
		return nil
	}
	cfg.SegmentBy = schema.SegmentKey(strings.ToLower(input.By))
	if _, ok := schema.ValidSegmentKeys[cfg.SegmentBy]; !ok {
		return fmt.Errorf("invalid segment key '%s'. must be department, degree, supervisor", input.By)
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
