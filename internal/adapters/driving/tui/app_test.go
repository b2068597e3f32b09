package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driving"
)

type stubSearchService struct {
	page domain.SearchPage
}

var _ driving.SearchService = (*stubSearchService)(nil)

func (s *stubSearchService) Search(context.Context, domain.SearchQuery) (domain.SearchPage, error) {
	return s.page, nil
}

func (s *stubSearchService) RebuildIndex(context.Context) (int, error) {
	return 0, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(&Ports{Search: &stubSearchService{
		page: domain.SearchPage{
			Items: []domain.Prompt{
				{ID: 1, Text: "golang tips"},
				{ID: 2, Text: "python tips"},
			},
			Total: 2,
		},
	}})
	require.NoError(t, err)
	return app
}

func TestNewApp_RequiresSearchService(t *testing.T) {
	_, err := NewApp(&Ports{})
	assert.ErrorIs(t, err, ErrMissingSearchService)
}

func TestApp_SearchPopulatesResults(t *testing.T) {
	app := newTestApp(t)

	cmd := app.search("tips")
	require.NotNil(t, cmd)

	model, _ := app.Update(cmd())
	app = model.(*App)

	assert.Equal(t, 2, app.total)
	require.Len(t, app.results, 2)
	assert.Equal(t, "tips", app.query)
	assert.Zero(t, app.selected)
}

func TestApp_Navigation(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(app.search("tips")())
	app = model.(*App)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app = model.(*App)
	assert.Equal(t, 1, app.selected)

	// Bounded at the end of the list.
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app = model.(*App)
	assert.Equal(t, 1, app.selected)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyUp})
	app = model.(*App)
	assert.Zero(t, app.selected)
}

func TestApp_EscClearsResults(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(app.search("tips")())
	app = model.(*App)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)
	assert.Empty(t, app.results)
	assert.Zero(t, app.total)
}

func TestApp_ViewShowsResults(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(app.search("tips")())
	app = model.(*App)

	view := app.View()
	assert.Contains(t, view, "golang tips")
	assert.Contains(t, view, "2 results")
}
