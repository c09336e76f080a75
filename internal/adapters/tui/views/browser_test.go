package views

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ntfsundeletetree/internal/domain"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// testForest has root 2 (synthesized) with file 1, and root 5 with
// directory 6 holding file 7
func testForest(t *testing.T) *domain.Forest {
	t.Helper()
	ts := time.Date(2022, 5, 1, 10, 0, 0, 0, time.UTC)
	s := domain.NewRecordStore()
	s.Put(&domain.FileRecord{ID: 1, Kind: domain.KindFile, Name: "a.txt", ParentID: domain.Int64(2), Recoverable: domain.Percent(100), LastModified: ts})
	s.Put(&domain.FileRecord{ID: 5, Kind: domain.KindDirectory, Name: "docs", LastModified: ts})
	s.Put(&domain.FileRecord{ID: 6, Kind: domain.KindDirectory, Name: "old", ParentID: domain.Int64(5), LastModified: ts})
	s.Put(&domain.FileRecord{ID: 7, Kind: domain.KindFile, Name: "b.txt", ParentID: domain.Int64(6), Recoverable: domain.Percent(40), LastModified: ts})

	f, err := domain.Build(s, nil)
	if err != nil {
		t.Fatalf("building forest: %v", err)
	}
	return f
}

func visibleIDs(m *BrowserModel) []int64 {
	var ids []int64
	for _, r := range m.rows {
		ids = append(ids, r.node.Record.ID)
	}
	return ids
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBrowser_ExpandCollapse(t *testing.T) {
	m := NewBrowserModel(testForest(t), "disk.img")

	if got := visibleIDs(m); !equalIDs(got, []int64{2, 5}) {
		t.Fatalf("initial rows %v, want roots only", got)
	}

	steps := []struct {
		key    string
		want   []int64
		cursor int
	}{
		{key: "j", want: []int64{2, 5}, cursor: 1},
		{key: "l", want: []int64{2, 5, 6}, cursor: 1},
		{key: "j", want: []int64{2, 5, 6}, cursor: 2},
		{key: "l", want: []int64{2, 5, 6, 7}, cursor: 2},
		{key: "j", want: []int64{2, 5, 6, 7}, cursor: 3},
		{key: "l", want: []int64{2, 5, 6, 7}, cursor: 3}, // files do not expand
		{key: "h", want: []int64{2, 5, 6, 7}, cursor: 2}, // to parent
		{key: "h", want: []int64{2, 5, 6}, cursor: 2},    // collapse
		{key: "k", want: []int64{2, 5, 6}, cursor: 1},
		{key: "h", want: []int64{2, 5}, cursor: 1},
	}

	for i, s := range steps {
		m.Update(runeKey(s.key))
		if got := visibleIDs(m); !equalIDs(got, s.want) {
			t.Errorf("step %d (%s): rows %v, want %v", i, s.key, got, s.want)
		}
		if m.cursor != s.cursor {
			t.Errorf("step %d (%s): cursor %d, want %d", i, s.key, m.cursor, s.cursor)
		}
	}
}

func TestBrowser_EnterToggles(t *testing.T) {
	m := NewBrowserModel(testForest(t), "")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := visibleIDs(m); !equalIDs(got, []int64{2, 1, 5}) {
		t.Fatalf("rows after enter %v", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := visibleIDs(m); !equalIDs(got, []int64{2, 5}) {
		t.Fatalf("rows after second enter %v", got)
	}
}

func TestBrowser_CopyInode(t *testing.T) {
	orig := clipboardWrite
	defer func() { clipboardWrite = orig }()

	var copied string
	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}

	m := NewBrowserModel(testForest(t), "")
	m.Update(runeKey("j"))
	m.Update(runeKey("y"))

	if copied != "5" {
		t.Errorf("copied %q, want 5", copied)
	}
	if m.message != "Copied inode 5" || m.messageErr {
		t.Errorf("unexpected message %q", m.message)
	}

	clipboardWrite = func(string) error { return errors.New("no display") }
	m.Update(runeKey("y"))
	if !m.messageErr || !strings.Contains(m.message, "no display") {
		t.Errorf("expected clipboard error message, got %q", m.message)
	}
}

func TestBrowser_SelectQuits(t *testing.T) {
	m := NewBrowserModel(testForest(t), "")

	if _, ok := m.Selected(); ok {
		t.Fatal("nothing should be selected yet")
	}

	m.Update(runeKey("j"))
	_, cmd := m.Update(runeKey("u"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	id, ok := m.Selected()
	if !ok || id != 5 {
		t.Errorf("selected %d (%v), want 5", id, ok)
	}
}

func TestBrowser_View(t *testing.T) {
	m := NewBrowserModel(testForest(t), "disk.img")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	out := m.View()
	for _, want := range []string{"ntfsundeletetree", "disk.img", "2: 2", "1: a.txt", "5: docs", "not in scan", "copy inode"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestBrowser_WindowKeepsCursorVisible(t *testing.T) {
	m := NewBrowserModel(testForest(t), "")
	for _, id := range []int64{2, 5, 6} {
		m.expanded[id] = true
	}
	m.refreshRows()
	m.SetSize(80, 11) // two rows visible
	m.cursor = 4

	start, end := m.window()
	if end-start != 2 || m.cursor < start || m.cursor >= end {
		t.Errorf("window [%d,%d) does not hold cursor %d", start, end, m.cursor)
	}
}
