// Package tui is an interactive browser over a reconstructed forest.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"ntfsundeletetree/internal/adapters/tui/views"
	"ntfsundeletetree/internal/domain"
)

// App is the main TUI application model
type App struct {
	browser *views.BrowserModel
}

// NewApp creates a new TUI application browsing forest
func NewApp(forest *domain.Forest, subtitle string) *App {
	return &App{
		browser: views.NewBrowserModel(forest, subtitle),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := a.browser.Update(msg)
	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	return a.browser.View()
}

// Selected returns the inode the user chose to undelete, if any
func (a *App) Selected() (int64, bool) {
	return a.browser.Selected()
}
