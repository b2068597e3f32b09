// Package tui implements the interactive terminal UI for promptstash.
// It follows the Elm architecture via Bubbletea: a single App model, a
// pure Update function and a View renderer.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptstash/promptstash-cli/internal/adapters/driving/tui/keymap"
	"github.com/promptstash/promptstash-cli/internal/adapters/driving/tui/styles"
	"github.com/promptstash/promptstash-cli/internal/core/domain"
)

// resultsMsg carries a finished search back into the update loop.
type resultsMsg struct {
	query string
	page  domain.SearchPage
	err   error
}

// App is the main TUI application. It implements tea.Model.
type App struct {
	ports  *Ports
	ctx    context.Context
	keys   *keymap.KeyMap
	styles *styles.Styles

	input textinput.Model

	query    string
	results  []domain.Prompt
	total    int
	selected int
	showFull bool

	err    error
	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	input := textinput.New()
	input.Placeholder = "Search prompts..."
	input.Focus()
	input.CharLimit = 200

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		keys:   keymap.DefaultKeyMap(),
		styles: styles.DefaultStyles(),
		input:  input,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case resultsMsg:
		a.query = msg.query
		a.err = msg.err
		a.results = msg.page.Items
		a.total = msg.page.Total
		a.selected = 0
		a.showFull = false
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, a.keys.Back):
			if a.showFull {
				a.showFull = false
				return a, nil
			}
			a.results = nil
			a.total = 0
			a.err = nil
			a.input.SetValue("")
			return a, nil

		case key.Matches(msg, a.keys.Search):
			return a, a.search(a.input.Value())

		case key.Matches(msg, a.keys.Up):
			if a.selected > 0 {
				a.selected--
			}
			return a, nil

		case key.Matches(msg, a.keys.Down):
			if a.selected < len(a.results)-1 {
				a.selected++
			}
			return a, nil

		case key.Matches(msg, a.keys.Select):
			if len(a.results) > 0 {
				a.showFull = !a.showFull
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// search runs a query against the search service as a command.
func (a *App) search(query string) tea.Cmd {
	return func() tea.Msg {
		page, err := a.ports.Search.Search(a.ctx, domain.SearchQuery{
			Query: query,
			Limit: 20,
		})
		return resultsMsg{query: query, page: page, err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("promptstash"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Input.Render(a.input.View()))
	b.WriteString("\n\n")

	switch {
	case a.err != nil:
		b.WriteString(a.styles.Error.Render(fmt.Sprintf("Error: %v", a.err)))
		b.WriteString("\n")

	case a.showFull && a.selected < len(a.results):
		b.WriteString(a.renderFull(&a.results[a.selected]))

	case len(a.results) > 0:
		b.WriteString(a.renderResults())

	case a.query != "":
		b.WriteString(a.styles.Status.Render("No results."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Status.Render(
		"enter search · ↑/↓ navigate · tab view · esc back · ctrl+c quit"))
	return b.String()
}

func (a *App) renderResults() string {
	var b strings.Builder

	b.WriteString(a.styles.Status.Render(fmt.Sprintf("%d results", a.total)))
	b.WriteString("\n\n")

	for i := range a.results {
		p := &a.results[i]

		line := firstLine(p.Text, 70)
		if p.Pinned {
			line = a.styles.Pinned.Render("* ") + line
		} else {
			line = "  " + line
		}

		if i == a.selected {
			b.WriteString(a.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(a.styles.Result.Render("  " + line))
		}
		if len(p.Tags) > 0 {
			names := make([]string, len(p.Tags))
			for j, t := range p.Tags {
				names[j] = t.Name
			}
			b.WriteString("  ")
			b.WriteString(a.styles.Tag.Render("[" + strings.Join(names, ", ") + "]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) renderFull(p *domain.Prompt) string {
	var b strings.Builder

	b.WriteString(a.styles.Selected.Render(fmt.Sprintf("Prompt #%d", p.ID)))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Result.Render(p.Text))
	b.WriteString("\n")
	return b.String()
}

// firstLine truncates text to its first line, capped at max runes.
func firstLine(text string, max int) string {
	line := text
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	runes := []rune(line)
	if len(runes) > max {
		return string(runes[:max-3]) + "..."
	}
	return line
}
