package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"ntfsundeletetree/internal/adapters/tui/styles"
	"ntfsundeletetree/internal/domain"
)

// RenderTreeRow renders one forest node as "inode: name" behind its
// indent and expand indicator
func RenderTreeRow(rec *domain.FileRecord, depth int, hasChildren, expanded, selected bool) string {
	prefix := styles.TreeCollapsed
	switch {
	case !hasChildren:
		prefix = styles.TreeLeaf
	case expanded:
		prefix = styles.TreeExpanded
	}

	style := recordStyle(rec)
	if selected {
		style = styles.NodeSelected
	}

	return strings.Repeat("  ", depth) +
		styles.TreeBranch.Render(prefix) +
		style.Render(fmt.Sprintf("%d: %s", rec.ID, rec.Name))
}

// recordStyle colors placeholders, directories, and files that would be
// skipped as partially recoverable
func recordStyle(rec *domain.FileRecord) lipgloss.Style {
	switch {
	case rec.Synthesized:
		return styles.NodeSynthesized
	case rec.Kind == domain.KindDirectory:
		return styles.NodeDirectory
	case rec.Kind == domain.KindFile && !rec.FullyRecoverable():
		return styles.NodePartial
	default:
		return styles.NodeFile
	}
}

// RenderRecordDetails renders the status line of the node under the cursor
func RenderRecordDetails(rec *domain.FileRecord) string {
	parts := []string{
		labelValue("Type", rec.Kind.String()),
		labelValue("Modified", rec.LastModified.Format(time.DateTime)),
	}
	if rec.Kind == domain.KindFile {
		parts = append(parts, labelValue("Recoverable", rec.RecoverableString()))
	}
	if rec.Synthesized {
		parts = append(parts, styles.MutedText.Render("not in scan"))
	}
	return strings.Join(parts, "  ")
}

func labelValue(label, value string) string {
	return styles.Label.Render(label+":") + " " + value
}

// ViewBuilder assembles a view top to bottom
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds the view title
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n")
	return v
}

// Subtitle adds a subtitle followed by a blank line
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds a line of muted text
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.Line(styles.MutedText.Render(text))
}

// Message adds the status message, if any
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	style := styles.Success
	if isError {
		style = styles.ErrorMsg
	}
	v.b.WriteString(style.Render(message))
	v.b.WriteString("\n\n")
	return v
}

// Help adds the key help line, bindings separated by bullets
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	v.b.WriteString(strings.Join(parts, styles.HelpSeparator.String()))
	return v
}

// String returns the view wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
