package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Screen rows of the fixed parts of the layout
const (
	TitleRow = 0
	InputRow = 1
	PanelTop = 2
)

const (
	appTitle     = "searchbox"
	clearLabel   = "[clear all]"
	removeMark   = "×"
	itemIndent   = "  "
	selectedMark = "> "
)

// Item is one rendered row of the panel
type Item struct {
	Text   string
	Icon   string
	Detail string
	Kind   ItemKind
}

// ItemKind picks the colour of an item
type ItemKind int

const (
	KindPlain ItemKind = iota
	KindCorrection
	KindCompletion
	KindHistory
)

// PanelView is everything the renderer needs for one frame
type PanelView struct {
	ModeLabel      string
	DocumentMode   bool
	Input          string
	Visible        bool
	ShowingHistory bool
	Notice         string
	NoticeFailure  bool
	Items          []Item
	Selected       int
	Offset         int
	MaxRows        int
	Width          int
	Help           string
}

// Renderer draws the search box
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render renders the full view
func (r *Renderer) Render(v PanelView) string {
	var b strings.Builder

	b.WriteString(r.renderTitle(v))
	b.WriteString("\n")
	b.WriteString(v.Input)
	b.WriteString("\n")

	if v.Visible {
		for _, line := range r.renderPanel(v) {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if v.Help != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Help.Render(v.Help))
	}

	return b.String()
}

func (r *Renderer) renderTitle(v PanelView) string {
	badge := r.styles.ModeWeb
	if v.DocumentMode {
		badge = r.styles.ModeDoc
	}
	return r.styles.Title.Render(appTitle) + " " + badge.Render(v.ModeLabel)
}

// modeButtonSpan returns the columns [start, end) of the mode badge on the title row
func (r *Renderer) modeButtonSpan(v PanelView) (int, int) {
	start := lipgloss.Width(r.styles.Title.Render(appTitle)) + 1
	badge := r.styles.ModeWeb
	if v.DocumentMode {
		badge = r.styles.ModeDoc
	}
	return start, start + lipgloss.Width(badge.Render(v.ModeLabel))
}

func (r *Renderer) renderPanel(v PanelView) []string {
	var lines []string

	if v.ShowingHistory && v.Notice == "" && len(v.Items) > 0 {
		lines = append(lines, r.styles.Header.Render("Search history")+"  "+r.styles.ClearButton.Render(clearLabel))
	}

	if v.Notice != "" {
		style := r.styles.Empty
		if v.NoticeFailure {
			style = r.styles.Failure
		}
		return append(lines, itemIndent+style.Render(v.Notice))
	}

	start, end := visibleRange(len(v.Items), v.Offset, v.MaxRows)
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("%s↑ %d more", itemIndent, start)))
	}
	for i := start; i < end; i++ {
		lines = append(lines, r.renderItem(v, i))
	}
	if end < len(v.Items) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("%s↓ %d more", itemIndent, len(v.Items)-end)))
	}

	return lines
}

func (r *Renderer) renderItem(v PanelView, i int) string {
	item := v.Items[i]
	selected := i == v.Selected

	prefix := itemIndent
	if selected {
		prefix = selectedMark
	}

	var text string
	switch item.Kind {
	case KindHistory:
		text = r.styles.RemoveMark.Render(removeMark) + " " + r.styles.Item.Render(item.Text)
	case KindCorrection:
		text = r.styles.Icon.Render(item.Icon) + " " + r.styles.Correction.Render(item.Text)
	case KindCompletion:
		text = r.styles.Icon.Render(item.Icon) + " " + r.styles.Completion.Render(item.Text)
	default:
		text = r.styles.Icon.Render(item.Icon) + " " + r.styles.Item.Render(item.Text)
	}
	if item.Detail != "" {
		text += "  " + r.styles.Detail.Render(item.Detail)
	}

	line := prefix + text
	if selected {
		width := v.Width
		if w := lipgloss.Width(line); w > width {
			width = w
		}
		return r.styles.Selected.Width(width).Render(line)
	}
	return line
}

// visibleRange returns the window [start, end) of items shown for the given offset
func visibleRange(count, offset, maxRows int) (int, int) {
	if maxRows <= 0 || count <= maxRows {
		return 0, count
	}
	if offset < 0 {
		offset = 0
	}
	if offset > count-maxRows {
		offset = count - maxRows
	}
	return offset, offset + maxRows
}

// HitKind classifies a mouse click
type HitKind int

const (
	HitOutside HitKind = iota
	HitModeButton
	HitInput
	HitPanel
	HitClearAll
	HitRemove
	HitItem
)

// Hit is the result of HitTest
type Hit struct {
	Kind  HitKind
	Index int
}

// HitTest maps a click at (x, y) to the element under it, using the same layout as Render
func (r *Renderer) HitTest(v PanelView, x, y int) Hit {
	switch y {
	case TitleRow:
		start, end := r.modeButtonSpan(v)
		if x >= start && x < end {
			return Hit{Kind: HitModeButton}
		}
		return Hit{Kind: HitOutside}
	case InputRow:
		return Hit{Kind: HitInput}
	}

	if !v.Visible {
		return Hit{Kind: HitOutside}
	}

	row := y - PanelTop
	if row < 0 {
		return Hit{Kind: HitOutside}
	}

	if v.ShowingHistory && v.Notice == "" && len(v.Items) > 0 {
		if row == 0 {
			clearStart := lipgloss.Width(r.styles.Header.Render("Search history")) + 2
			if x >= clearStart && x < clearStart+lipgloss.Width(clearLabel) {
				return Hit{Kind: HitClearAll}
			}
			return Hit{Kind: HitPanel}
		}
		row--
	}

	if v.Notice != "" {
		if row == 0 {
			return Hit{Kind: HitPanel}
		}
		return Hit{Kind: HitOutside}
	}

	start, end := visibleRange(len(v.Items), v.Offset, v.MaxRows)
	if start > 0 {
		if row == 0 {
			return Hit{Kind: HitPanel}
		}
		row--
	}

	idx := start + row
	if idx >= end {
		if idx == end && end < len(v.Items) {
			return Hit{Kind: HitPanel}
		}
		return Hit{Kind: HitOutside}
	}

	if v.ShowingHistory {
		markStart := len(itemIndent)
		if x >= markStart && x < markStart+lipgloss.Width(removeMark) {
			return Hit{Kind: HitRemove, Index: idx}
		}
	}
	return Hit{Kind: HitItem, Index: idx}
}
