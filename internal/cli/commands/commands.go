package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sra/internal/aggregate"
	"sra/internal/cli"
	"sra/internal/config"
	"sra/internal/discovery"
	"sra/internal/history"
	"sra/internal/replay"
	"sra/internal/report"
	"sra/internal/storage"
	"sra/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Faills  *FaillsCommand
	History *HistoryCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	jsonStorage := storage.NewJSONStorage(cfg)
	messageFormatter := report.NewFormatter(cfg)
	template := report.NewTemplate()
	factory := func(testFilePath string) *aggregate.Aggregator {
		return aggregate.New(testFilePath, messageFormatter, template)
	}
	pool := replay.NewPool(cfg, factory)
	statsFormatter := ui.NewFormatter(cfg)
	viewer := ui.NewFailureViewer(cfg, jsonStorage)
	historyStore := history.NewStore(cfg)

	return &Commands{
		Run:     NewRunCommand(cfg, scanner, filter, pool, jsonStorage, statsFormatter, historyStore, viewer),
		List:    NewListCommand(cfg, scanner, filter, statsFormatter),
		Faills:  NewFaillsCommand(cfg, jsonStorage, viewer),
		History: NewHistoryCommand(cfg, historyStore),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func() {
		cfg.Flags = flags.ToConfigFlags()
		if flags.Processors > 0 {
			cfg.Processors = flags.Processors
		}
		if flags.NoColor {
			color.NoColor = true
		}
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Replay event streams and aggregate results",
		Long:  "Discover recorded lifecycle event streams, replay them through the aggregator in parallel and archive the run summaries",
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			applyFlags()
			return nil
		},
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 4, "Number of replay workers to use")
	runCmd.Flags().StringVarP(&flags.StreamPath, "stream-path", "s", "", "Path to the folder where stream discovery should start")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter streams by name pattern (supports wildcards, e.g. '*checkout*' or '*cart.events.jsonl')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop dispatching streams after the first failing one")
	runCmd.Flags().BoolVar(&flags.SaveHistory, "history", false, "Record the run in the MySQL history table")
	runCmd.Flags().BoolVar(&flags.View, "view", false, "Open the faills viewer when the run finishes with failures")
	runCmd.Flags().BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered event streams",
		Long:  "Scan and list recorded event streams without replaying them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			applyFlags()
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter streams by name pattern (supports wildcards)")
	listCmd.Flags().StringVarP(&flags.StreamPath, "stream-path", "s", "", "Path to the folder where stream discovery should start")
	listCmd.Flags().BoolVarP(&flags.Specs, "specs", "c", false, "List spec names instead of stream files only")
	rootCmd.AddCommand(listCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:   "faills",
		Short: "View spec failures interactively",
		Long:  "Display spec failures from the last archived run in an interactive viewer",
		RunE:  c.Faills.Execute,
	}
	rootCmd.AddCommand(faillsCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs from the history table",
		Long:  "List recent archived runs recorded in the MySQL history table",
		RunE:  c.History.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			applyFlags()
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&flags.HistoryN, "limit", "n", 10, "Number of history rows to show")
	rootCmd.AddCommand(historyCmd)
}
