package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sra/internal/config"
	"sra/internal/discovery"
	"sra/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	streamPath := lc.config.GetStreamPath()
	streams, err := lc.scanner.Scan(streamPath)
	if err != nil {
		return err
	}

	streams = lc.filter.FilterByName(streams, lc.config.Flags.NameFilter)

	if len(streams) == 0 {
		color.Yellow("No event streams found")
		return nil
	}

	return lc.formatter.PrintStreamList(streams, lc.config.Flags.Specs)
}
