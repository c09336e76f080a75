package views

import (
	"fmt"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ntfsundeletetree/internal/domain"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Enter  key.Binding
	Copy   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("j/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/l", "collapse/expand"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy inode"),
	),
	Select: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undelete subtree"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// clipboardWrite is replaced in tests
var clipboardWrite = clipboard.WriteAll

// row is one visible line of the flattened forest
type row struct {
	node  *domain.ForestNode
	depth int
}

// BrowserModel is the model for the forest browser view
type BrowserModel struct {
	forest     *domain.Forest
	subtitle   string
	expanded   map[int64]bool
	rows       []row
	cursor     int
	selected   *int64
	width      int
	height     int
	message    string
	messageErr bool
}

// NewBrowserModel creates a browser over forest with roots collapsed
func NewBrowserModel(forest *domain.Forest, subtitle string) *BrowserModel {
	m := &BrowserModel{
		forest:   forest,
		subtitle: subtitle,
		expanded: make(map[int64]bool),
	}
	m.refreshRows()
	return m
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		m.message = "" // Clear message on key press

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, BrowserKeys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}

		case key.Matches(msg, BrowserKeys.Left):
			r, ok := m.current()
			if !ok {
				break
			}
			if m.expanded[r.node.Record.ID] {
				m.expanded[r.node.Record.ID] = false
				m.refreshRows()
				break
			}
			// Move to parent
			for i := m.cursor - 1; i >= 0; i-- {
				if m.rows[i].depth == r.depth-1 {
					m.cursor = i
					break
				}
			}

		case key.Matches(msg, BrowserKeys.Right):
			if r, ok := m.current(); ok && len(r.node.Children) > 0 {
				m.expanded[r.node.Record.ID] = true
				m.refreshRows()
			}

		case key.Matches(msg, BrowserKeys.Enter):
			if r, ok := m.current(); ok && len(r.node.Children) > 0 {
				id := r.node.Record.ID
				m.expanded[id] = !m.expanded[id]
				m.refreshRows()
			}

		case key.Matches(msg, BrowserKeys.Copy):
			if r, ok := m.current(); ok {
				id := strconv.FormatInt(r.node.Record.ID, 10)
				if err := clipboardWrite(id); err != nil {
					m.message, m.messageErr = fmt.Sprintf("clipboard: %v", err), true
				} else {
					m.message, m.messageErr = "Copied inode "+id, false
				}
			}

		case key.Matches(msg, BrowserKeys.Select):
			if r, ok := m.current(); ok {
				id := r.node.Record.ID
				m.selected = &id
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

// Selected returns the inode chosen with the select key, if any
func (m *BrowserModel) Selected() (int64, bool) {
	if m.selected == nil {
		return 0, false
	}
	return *m.selected, true
}

func (m *BrowserModel) current() (row, bool) {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return m.rows[m.cursor], true
	}
	return row{}, false
}

func (m *BrowserModel) refreshRows() {
	m.rows = m.rows[:0]
	for _, id := range m.forest.Roots {
		m.forest.Walk(id, func(n *domain.ForestNode, depth int) bool {
			m.rows = append(m.rows, row{node: n, depth: depth})
			return m.expanded[n.Record.ID]
		})
	}
	// Clamp cursor
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// window returns the range of rows that fits the terminal, keeping the
// cursor visible
func (m *BrowserModel) window() (int, int) {
	visible := m.height - 9
	if m.height == 0 || visible >= len(m.rows) {
		return 0, len(m.rows)
	}
	if visible < 1 {
		visible = 1
	}
	start := m.cursor - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > len(m.rows) {
		start = len(m.rows) - visible
	}
	return start, start + visible
}

// View renders the browser
func (m *BrowserModel) View() string {
	v := NewViewBuilder().
		Title("ntfsundeletetree").
		Subtitle(m.subtitle)

	if len(m.rows) == 0 {
		v.Muted("No records")
	}
	start, end := m.window()
	for i := start; i < end; i++ {
		r := m.rows[i]
		v.Line(RenderTreeRow(r.node.Record, r.depth, len(r.node.Children) > 0, m.expanded[r.node.Record.ID], i == m.cursor))
	}

	v.BlankLine()
	if r, ok := m.current(); ok {
		v.Line(RenderRecordDetails(r.node.Record))
	}
	v.BlankLine()
	v.Message(m.message, m.messageErr)

	return v.Help(BrowserKeys.Up, BrowserKeys.Left, BrowserKeys.Copy, BrowserKeys.Select, BrowserKeys.Quit).String()
}

// SetSize updates the view dimensions
func (m *BrowserModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
