// Package report renders aggregated results for the host framework:
// the combined failure message and the baseline summary template.
package report

import (
	"strings"

	"github.com/fatih/color"

	"sra/internal/config"
	"sra/internal/domain"
)

// Formatter builds the combined human-readable failure message over an
// accumulated result list. Colorization policy lives here, not in the
// aggregator.
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// FormatRun returns one combined failure message for the run, or the
// empty string when no spec failed.
func (f *Formatter) FormatRun(results []domain.AssertionResult, testFilePath string) string {
	var sections []string
	for _, r := range results {
		if r.Status != domain.StatusFailed {
			continue
		}
		sections = append(sections, f.formatResult(r))
	}
	if len(sections) == 0 {
		return ""
	}

	header := f.paint(color.New(color.FgRed, color.Bold), "FAIL") + " " + testFilePath
	return header + "\n\n" + strings.Join(sections, "\n\n")
}

func (f *Formatter) formatResult(r domain.AssertionResult) string {
	title := f.paint(color.New(color.FgRed), "● "+r.FullName)
	body := strings.Join(r.FailureMessages, "\n\n")
	if body == "" {
		return title
	}
	return title + "\n\n" + indent(body, "  ")
}

func (f *Formatter) paint(c *color.Color, text string) string {
	if f.config != nil && f.config.Flags.NoColor {
		c.DisableColor()
	}
	return c.Sprint(text)
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
