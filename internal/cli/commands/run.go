package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sra/internal/config"
	"sra/internal/discovery"
	"sra/internal/history"
	"sra/internal/replay"
	"sra/internal/storage"
	"sra/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	pool      *replay.Pool
	storage   storage.Storage
	formatter *ui.Formatter
	history   *history.Store
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	pool *replay.Pool,
	st storage.Storage,
	formatter *ui.Formatter,
	historyStore *history.Store,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		pool:      pool,
		storage:   st,
		formatter: formatter,
		history:   historyStore,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// Discover event streams
	streamPath := rc.config.GetStreamPath()
	streams, err := rc.scanner.Scan(streamPath)
	if err != nil {
		return err
	}

	streams = rc.filter.FilterByName(streams, rc.config.Flags.NameFilter)

	if len(streams) == 0 {
		color.Yellow("No event streams to replay")
		return nil
	}

	// Create and set progress bar
	progressBar := ui.NewProgressBar(len(streams))
	rc.pool.SetProgress(progressBar)

	// Replay streams
	summaries, duration, replayErr := rc.pool.ExecuteWithOptions(streams, rc.config.Flags.FailFast)
	if replayErr != nil {
		// Broken streams shouldn't discard the runs that did replay
		color.Red("Some streams failed to replay: %v", replayErr)
	}

	// Save results
	archive, err := rc.storage.Save(summaries, duration, rc.config.Processors)
	if err != nil {
		return fmt.Errorf("failed to save run results: %w", err)
	}

	// Record history if flag is set
	if rc.config.Flags.SaveHistory {
		if err := rc.history.Save(archive); err != nil {
			return fmt.Errorf("failed to save run history: %w", err)
		}
	}

	// Print stats
	if err := rc.formatter.PrintMetaStats(); err != nil {
		return err
	}

	if rc.config.Flags.View && archive.Meta.FailingSpecs > 0 {
		return rc.viewer.View(archive)
	}

	return nil
}
