package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sra/internal/config"
	"sra/internal/history"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config *config.Config
	store  *history.Store
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, store *history.Store) *HistoryCommand {
	return &HistoryCommand{
		config: cfg,
		store:  store,
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	entries, err := hc.store.Recent(hc.config.Flags.HistoryN)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		color.Yellow("No run history recorded")
		return nil
	}

	color.Cyan("%-4s %-22s %8s %8s %8s %8s %8s %10s", "ID", "Timestamp", "Streams", "Specs", "Failed", "Passed", "Pending", "Duration")
	for _, e := range entries {
		line := fmt.Sprintf("%-4d %-22s %8d %8d %8d %8d %8d %9.2fs",
			e.ID, e.Timestamp, e.TotalStreams, e.TotalSpecs,
			e.FailingSpecs, e.PassingSpecs, e.PendingSpecs, e.DurationSeconds,
		)
		if e.FailingSpecs > 0 {
			color.Red("%s", line)
		} else {
			color.Green("%s", line)
		}
	}

	return nil
}
