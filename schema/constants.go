package schema

// Custom string types for type safety.
type (
	// DegreeBucket is a canonical academic level.
	DegreeBucket string

	// DegreeFallback decides where unrecognized degree labels land.
	DegreeFallback string

	// OutputMode represents the format of the output.
	OutputMode string

	// SourceKind represents where project records are loaded from.
	SourceKind string

	// SegmentKey represents the dimension used to split records into segments.
	SegmentKey string

	// DatabaseBackend represents the database backend for snapshot history.
	DatabaseBackend string
)

// Canonical degree buckets.
const (
	BSc     DegreeBucket = "BSc"
	MSc     DegreeBucket = "MSc"
	PhD     DegreeBucket = "PhD"
	Unknown DegreeBucket = "Unknown" // only produced under FallbackUnknown
)

// Degree fallback strategies.
const (
	FallbackBSc     DegreeFallback = "bsc" // default
	FallbackUnknown DegreeFallback = "unknown"
)

// Sentinels used in snapshots.
const (
	// None marks the absence of a top topic or top department.
	None = "none"

	// Unassigned groups records that carry no department.
	Unassigned = "Unassigned"

	// TrendMonths is the fixed length of the monthly trend.
	TrendMonths = 6

	// RankingLimit is the number of departments kept in a ranking.
	RankingLimit = 5

	// MinTopicLength is the minimum rune count for a title token to qualify as a topic.
	MinTopicLength = 5
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
	YAMLOut OutputMode = "yaml"
)

// All record sources supported.
const (
	CSVSource        SourceKind = "csv" // default
	JSONSource       SourceKind = "json"
	SQLiteSource     SourceKind = "sqlite"
	MySQLSource      SourceKind = "mysql"
	PostgreSQLSource SourceKind = "postgresql"
)

// All segment keys supported.
const (
	SegmentDepartment SegmentKey = "department"
	SegmentDegree     SegmentKey = "degree"
	SegmentSupervisor SegmentKey = "supervisor"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// DegreeOrder is the display order of degree buckets.
var DegreeOrder = []DegreeBucket{BSc, MSc, PhD, Unknown}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
	YAMLOut: {},
}

// ValidSourceKinds lists all valid record sources.
var ValidSourceKinds = map[SourceKind]struct{}{
	CSVSource:        {},
	JSONSource:       {},
	SQLiteSource:     {},
	MySQLSource:      {},
	PostgreSQLSource: {},
}

// ValidSegmentKeys lists all valid segment keys.
var ValidSegmentKeys = map[SegmentKey]struct{}{
	SegmentDepartment: {},
	SegmentDegree:     {},
	SegmentSupervisor: {},
}

// ValidDegreeFallbacks lists all valid degree fallback strategies.
var ValidDegreeFallbacks = map[DegreeFallback]struct{}{
	FallbackBSc:     {},
	FallbackUnknown: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// IsDatabase reports whether the source kind is backed by a SQL database.
func (k SourceKind) IsDatabase() bool {
	return k == SQLiteSource || k == MySQLSource || k == PostgreSQLSource
}

// Backend maps a database source kind to its history backend counterpart.
func (k SourceKind) Backend() DatabaseBackend {
	switch k {
	case SQLiteSource:
		return SQLiteBackend
	case MySQLSource:
		return MySQLBackend
	case PostgreSQLSource:
		return PostgreSQLBackend
	default:
		return NoneBackend
	}
}
