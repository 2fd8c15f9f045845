package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultStreamPath is the default path scanned for event streams
	DefaultStreamPath = "."
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "run-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultProcessors is the default number of replay workers
	DefaultProcessors = 4
	// DefaultHistoryTable is the MySQL table run history is written to
	DefaultHistoryTable = "run_history"
)

// DefaultPathsToIgnore are the default directories to skip when
// scanning for event stream files.
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"storage",
	"dist",
	"build",
	"coverage",
}
