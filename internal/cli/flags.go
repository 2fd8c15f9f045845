package cli

import "sra/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:  f.Processors,
		StreamPath:  f.StreamPath,
		NameFilter:  f.NameFilter,
		Specs:       f.Specs,
		FailFast:    f.FailFast,
		SaveHistory: f.SaveHistory,
		View:        f.View,
		NoColor:     f.NoColor,
		HistoryN:    f.HistoryN,
	}
}
