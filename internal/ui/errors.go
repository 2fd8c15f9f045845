package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"sra/internal/config"
	"sra/internal/domain"
	"sra/internal/storage"
)

// FailureViewer displays archived spec failures in an interactive TUI
type FailureViewer struct {
	config  *config.Config
	storage storage.Storage
}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer(cfg *config.Config, st storage.Storage) *FailureViewer {
	return &FailureViewer{
		config:  cfg,
		storage: st,
	}
}

// failureEntry is one failed spec flattened out of the archive.
type failureEntry struct {
	filePath string
	result   domain.AssertionResult
}

func (e failureEntry) key() string {
	return e.filePath + "::" + e.result.FullName
}

func collectFailures(archive *domain.RunArchive) []failureEntry {
	var entries []failureEntry
	for _, run := range archive.Runs {
		for _, result := range run.TestResults {
			if result.Status == domain.StatusFailed {
				entries = append(entries, failureEntry{filePath: run.TestFilePath, result: result})
			}
		}
	}
	return entries
}

// View displays spec failures in an interactive TUI
func (fv *FailureViewer) View(archive *domain.RunArchive) error {
	entries := collectFailures(archive)
	if len(entries) == 0 {
		color.Green("✓ No spec failures found!")
		return nil
	}

	if archive.Resolved == nil {
		archive.Resolved = make(map[string]bool)
	}

	saveResolved := func() error {
		return fv.storage.SaveArchive(archive)
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	getListItemText := func(index int) string {
		entry := entries[index]
		name := entry.result.FullName
		if name == "" {
			name = fmt.Sprintf("Spec %d", index+1)
		}
		if archive.Resolved[entry.key()] {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
	}

	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		list.SetItemText(index, getListItemText(index), "")
	}

	for i := range entries {
		list.AddItem(getListItemText(i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	countUnresolved := func() int {
		count := 0
		for _, entry := range entries {
			if !archive.Resolved[entry.key()] {
				count++
			}
		}
		return count
	}

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" Spec Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ",
			len(entries), countUnresolved(),
		))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(entries) {
			entry := entries[index]
			statsView.SetText(fv.formatFailureStats(entry, index+1))
			detailsView.SetText(fv.formatFailureDetails(entry))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(entries) {
					key := entries[index].key()
					archive.Resolved[key] = !archive.Resolved[key]
					updateListItem(index)
					updateHeader()
					updateDetails()
					// The TUI owns the screen here, so a failed save
					// can't be reported inline.
					_ = saveResolved()
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// formatFailureDetails formats a failed spec for display using tview
// color tags ([red], [cyan], etc.)
func (fv *FailureViewer) formatFailureDetails(entry failureEntry) string {
	var builder strings.Builder
	result := entry.result

	fmt.Fprintf(&builder, "[red]✗ Spec: %s[white]\n\n", result.FullName)

	fmt.Fprintf(&builder, "[cyan]Stream: %s[white]\n", entry.filePath)
	if len(result.AncestorTitles) > 0 {
		fmt.Fprintf(&builder, "[cyan]Suites: %s[white]\n", strings.Join(result.AncestorTitles, " › "))
	}
	if result.Location != nil {
		fmt.Fprintf(&builder, "[yellow]Location: line %d, column %d[white]\n", result.Location.Line, result.Location.Column)
	}
	if result.Duration != nil {
		fmt.Fprintf(&builder, "[yellow]Duration: %dms[white]\n", *result.Duration)
	}
	fmt.Fprint(&builder, "\n")

	for i, message := range result.FailureMessages {
		fmt.Fprintf(&builder, "[yellow]Failure %d:[white]\n%s\n\n", i+1, tview.Escape(message))
	}

	return builder.String()
}

// formatFailureStats formats the stats header for a failed spec
func (fv *FailureViewer) formatFailureStats(entry failureEntry, number int) string {
	path := entry.filePath
	if path == "" {
		path = "Unknown stream"
	}
	name := entry.result.FullName
	if name == "" {
		name = fmt.Sprintf("Spec %d", number)
	}
	return fmt.Sprintf("[cyan]stream:[white] [yellow]%s[white]::[yellow]%s[white]\n", path, name)
}
