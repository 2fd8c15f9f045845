package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"sra/internal/config"
	"sra/internal/domain"
	"sra/internal/replay"
)

// Formatter formats and displays terminal output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintMetaStats reads and displays meta statistics from the JSON
// archive file
func (f *Formatter) PrintMetaStats() error {
	// Clear terminal screen
	fmt.Print("\033[2J\033[H")

	outputPath := f.config.GetOutputPath()

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}

	var archive domain.RunArchive
	if err := json.Unmarshal(data, &archive); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	meta := archive.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                     Replay Run Statistics                     ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	fmt.Printf("│ %-31s │ ", "Event Streams")
	color.White("%-27d │\n", meta.TotalStreams)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Total Specs")
	color.White("%-27d │\n", meta.TotalSpecs)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Passing Specs")
	color.Green("%-27d │\n", meta.PassingSpecs)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Failing Specs")
	color.Red("%-27d │\n", meta.FailingSpecs)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Pending Specs")
	color.Yellow("%-27d │\n", meta.PendingSpecs)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Todo Specs")
	color.Yellow("%-27d │\n", meta.TodoSpecs)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Duration")
	durationStr := fmt.Sprintf("%.2fs", meta.DurationSeconds)
	color.White("%-27s │\n", durationStr)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Workers")
	color.White("%-27d │\n", meta.Workers)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Timestamp")
	color.White("%-27s │\n", meta.Timestamp)

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if meta.FailingSpecs == 0 {
		color.Green("✓ All specs passed!")
	} else {
		color.Red("✗ %d failing spec(s) across %d stream(s)", meta.FailingSpecs, countFailingStreams(archive.Runs))
		fmt.Println()
		f.printFailedSpecsTree(archive.Runs)
	}

	return nil
}

func countFailingStreams(runs []*domain.RunSummary) int {
	count := 0
	for _, run := range runs {
		if run.NumFailingTests > 0 {
			count++
		}
	}
	return count
}

// TreeNode represents a node in the stream file tree structure
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failed   []string
	IsFile   bool
}

// printFailedSpecsTree prints failing specs grouped under their stream
// file paths
func (f *Formatter) printFailedSpecsTree(runs []*domain.RunSummary) {
	root := &TreeNode{
		Name:     "",
		Children: make(map[string]*TreeNode),
	}

	for _, run := range runs {
		var failed []string
		for _, result := range run.TestResults {
			if result.Status == domain.StatusFailed {
				failed = append(failed, result.FullName)
			}
		}
		if len(failed) == 0 {
			continue
		}

		parts := strings.Split(strings.TrimPrefix(filepath.ToSlash(run.TestFilePath), "./"), "/")
		current := root
		for i, part := range parts {
			if part == "" {
				continue
			}
			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
			}
			current = current.Children[part]
			if i == len(parts)-1 {
				current.Failed = failed
			}
		}
	}

	f.printTreeNode(root, "", true)
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string, isRoot bool) {
	var keys []string
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		isLastChild := i == len(keys)-1

		var connector string
		if isRoot {
			connector = ""
		} else if isLastChild {
			connector = prefix + "   |_"
		} else {
			connector = prefix + "  |_"
		}

		if child.IsFile {
			color.Yellow("%s%s", connector, child.Name)
		} else {
			color.Cyan("%s%s", connector, child.Name)
		}

		if child.IsFile {
			for _, name := range child.Failed {
				color.Red("%s   |_%s", strings.ReplaceAll(prefix, "|", " "), name)
			}
		}

		var newPrefix string
		if isRoot {
			newPrefix = "  "
		} else if isLastChild {
			newPrefix = strings.ReplaceAll(prefix, "|", " ") + "  "
		} else {
			newPrefix = prefix + "  |"
		}
		f.printTreeNode(child, newPrefix, false)
	}
}

// PrintStreamList prints discovered stream files, optionally with their
// spec names.
func (f *Formatter) PrintStreamList(streams []string, showSpecs bool) error {
	color.Green("Found %d event stream(s):\n", len(streams))

	for i, stream := range streams {
		relPath, err := filepath.Rel(f.config.ProjectPath, stream)
		if err != nil {
			relPath = stream
		}

		isLast := i == len(streams)-1
		connector := "├── "
		if isLast {
			connector = "└── "
		}

		if !showSpecs {
			color.Cyan("%s%s", connector, relPath)
			continue
		}

		events, err := replay.ReadFile(stream)
		if err != nil {
			color.Cyan("%s%s", connector, relPath)
			color.Red("    (failed to read stream: %v)", err)
			continue
		}
		color.Cyan("%s%s (%d specs)", connector, relPath, replay.CountSpecs(events))
		names := replay.SpecNames(events)
		for j, name := range names {
			var prefix string
			if isLast {
				if j == len(names)-1 {
					prefix = "    └── "
				} else {
					prefix = "    ├── "
				}
			} else {
				if j == len(names)-1 {
					prefix = "│   └── "
				} else {
					prefix = "│   ├── "
				}
			}
			fmt.Printf("%s%s\n", prefix, color.YellowString(name))
		}
		if len(names) == 0 {
			if isLast {
				fmt.Printf("    └── %s\n", color.RedString("(no specs found)"))
			} else {
				fmt.Printf("│   └── %s\n", color.RedString("(no specs found)"))
			}
		}
	}

	return nil
}
