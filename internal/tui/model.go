// Package tui provides the BubbleTea-based interactive theme switcher.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/themeswitch/internal/adapter/output"
	"github.com/jmylchreest/themeswitch/internal/page"
	"github.com/jmylchreest/themeswitch/internal/store"
	"github.com/jmylchreest/themeswitch/internal/theme"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	frameStyle  = lipgloss.NewStyle().Padding(1, 2)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Model is the main TUI model.
type Model struct {
	page *page.Page
	keys KeyMap
	help help.Model

	width int
	err   error // Last dispatch failure

	// Store change subscription, nil when the store cannot be watched
	changes <-chan store.ChangeEvent
}

// storeChangedMsg reports a change written by another process.
type storeChangedMsg struct {
	event store.ChangeEvent
	ok    bool
}

// New creates a new TUI model for a loaded page.
func New(p *page.Page) Model {
	m := Model{
		page: p,
		keys: DefaultKeyMap(),
		help: help.New(),
	}

	if fs, ok := p.Store.(*store.FileStore); ok {
		m.changes = fs.Subscribe()
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange returns a command that waits for the next store change.
func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		ev, ok := <-ch
		return storeChangedMsg{event: ev, ok: ok}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case storeChangedMsg:
		if !msg.ok {
			m.changes = nil
			return m, nil
		}
		if msg.event.Key == m.page.Controller.StorageKey() {
			m.err = m.page.Sync(context.Background())
		}
		return m, m.waitForChange()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Dark):
			m.err = m.page.Dispatch(context.Background(), string(theme.ModeDark))
		case key.Matches(msg, m.keys.Light):
			m.err = m.page.Dispatch(context.Background(), string(theme.ModeLight))
		case key.Matches(msg, m.keys.Toggle):
			m.err = m.page.Dispatch(context.Background(), "")
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	state := m.page.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Theme"))
	b.WriteString("\n")
	b.WriteString(output.ModeBadge(state.Mode))
	b.WriteString("\n\n")

	details := []string{
		fmt.Sprintf("origin:  %s", state.Origin),
		fmt.Sprintf("source:  %s", state.Source),
		fmt.Sprintf("root:    %s", m.page.HTML()),
		fmt.Sprintf("changed: %s", state.RelativeChange()),
	}
	b.WriteString(detailStyle.Render(strings.Join(details, "\n")))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.help.View(m.keys))

	return frameStyle.Render(b.String())
}

// Run starts the TUI for a loaded page, watching its storage for changes made
// elsewhere.
func Run(p *page.Page, logger *slog.Logger) error {
	var watcher *store.FileWatcher
	if fs, ok := p.Store.(*store.FileStore); ok {
		var err error
		watcher, err = store.NewFileWatcher(fs, logger)
		if err != nil {
			logger.Warn("failed to create file watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start file watcher", "error", err)
		}
	}

	// Subscribe before the program starts so no change is missed
	m := New(p)
	prog := tea.NewProgram(m, tea.WithAltScreen())

	_, err := prog.Run()

	if watcher != nil {
		watcher.Stop()
	}

	return err
}
