package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	StreamPath  string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Replay settings
	Processors int

	// Paths to ignore when scanning for event streams
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Processors  int
	StreamPath  string
	NameFilter  string
	Specs       bool
	FailFast    bool
	SaveHistory bool
	View        bool
	NoColor     bool
	HistoryN    int
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		StreamPath:     DefaultStreamPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Processors:     DefaultProcessors,
		Flags:          Flags{Processors: DefaultProcessors},
	}
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	if flags.Processors > 0 {
		cfg.Processors = flags.Processors
	}

	return cfg
}

// GetStreamPath returns the event stream root, using the flag if provided
func (c *Config) GetStreamPath() string {
	if c.Flags.StreamPath != "" {
		if filepath.IsAbs(c.Flags.StreamPath) {
			return c.Flags.StreamPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.StreamPath)
	}

	return filepath.Join(c.ProjectPath, c.StreamPath)
}

// GetOutputPath returns the full path to the output JSON file (under the
// project so run and faills use the same file). Resolves to an absolute
// path so both commands read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetEnvPath returns the .env file consulted for history DB settings
func (c *Config) GetEnvPath() string {
	return filepath.Join(c.ProjectPath, ".env")
}

// GetHistoryTable returns the run history table name
func (c *Config) GetHistoryTable() string {
	table := os.Getenv("SRA_HISTORY_TABLE")
	if table == "" {
		table = DefaultHistoryTable
	}
	return table
}

// GetHistoryDSN builds the MySQL DSN for run history from the
// environment (after .env loading), with local defaults.
func (c *Config) GetHistoryDSN() string {
	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "127.0.0.1"
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "3306"
	}
	user := os.Getenv("DB_USERNAME")
	if user == "" {
		user = "root"
	}
	password := os.Getenv("DB_PASSWORD")
	database := os.Getenv("DB_DATABASE")
	if database == "" {
		database = "sra"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, password, host, port, database)
}
