package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"searchbox/internal/config"
	"searchbox/internal/domain"
	"searchbox/internal/eventbus"
	"searchbox/internal/ui/views"
)

// Panel messages
const (
	MsgHistoryEmpty    = "No search history"
	MsgOperationFailed = "Operation failed, please try again"
)

// reserved screen lines outside the panel: title, input, header, help gap, help
const reservedLines = 5

// Backend is what the search box needs from the suggestion layer.
// *suggest.Service satisfies it.
type Backend interface {
	Fetch(ctx context.Context, query string) []domain.Suggestion
	History(ctx context.Context) ([]string, error)
	AllHistory(ctx context.Context) ([]string, error)
	RemoveHistory(ctx context.Context, query string) error
	ClearHistory(ctx context.Context) error
}

// Model is the search box: a text input with a suggestion/history panel
type Model struct {
	ctx     context.Context
	cfg     *config.Config
	backend Backend
	bus     eventbus.EventBus

	input      textinput.Model
	searchType domain.SearchType
	state      domain.WidgetState

	panelVisible  bool
	notice        string
	noticeFailure bool
	offset        int

	// debounceTag identifies the only debounce tick allowed to fire a fetch;
	// requestSeq identifies the only response allowed to render.
	debounceTag int
	requestSeq  int

	width  int
	height int
	keys   keyMap
	help   help.Model

	renderer *views.Renderer
	pager    PagerFunc

	submitted string
}

// NewModel creates the search box. bus may be nil.
func NewModel(ctx context.Context, cfg *config.Config, backend Backend, bus eventbus.EventBus) *Model {
	searchType := cfg.Mode()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = searchType.Placeholder()
	ti.Focus()

	m := &Model{
		ctx:        ctx,
		cfg:        cfg,
		backend:    backend,
		bus:        bus,
		input:      ti,
		searchType: searchType,
		state:      domain.WidgetState{SelectedIndex: -1},
		keys:       defaultKeyMap(),
		help:       help.New(),
		renderer:   views.NewRenderer(),
	}
	m.input.PromptStyle = m.renderer.Styles().Prompt
	return m
}

// SetProgram sets the program reference used to hand the terminal to the pager
func (m *Model) SetProgram(p *tea.Program) {
	m.pager = ovPager(p)
}

// SetInitialQuery pre-fills the input; Init then schedules a suggestion fetch for it
func (m *Model) SetInitialQuery(q string) {
	m.input.SetValue(q)
	m.input.CursorEnd()
}

// Submitted returns the submitted query, or "" if the user quit without submitting
func (m *Model) Submitted() string {
	return m.submitted
}

// SearchType returns the current search mode
func (m *Model) SearchType() domain.SearchType {
	return m.searchType
}

// State returns a copy of the widget state
func (m *Model) State() domain.WidgetState {
	return m.state
}

// PanelVisible reports whether the suggestion panel is shown
func (m *Model) PanelVisible() bool {
	return m.panelVisible
}

// Notice returns the message shown in place of panel items, if any
func (m *Model) Notice() string {
	return m.notice
}

// Init starts the cursor and shows history (the input starts focused)
func (m *Model) Init() tea.Cmd {
	if strings.TrimSpace(m.input.Value()) == "" {
		return tea.Batch(textinput.Blink, m.showHistory())
	}
	return tea.Batch(textinput.Blink, m.scheduleFetch(strings.TrimSpace(m.input.Value())))
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(m.input.Prompt) - 1
		m.ensureSelectedVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.FocusMsg:
		return m, m.focusInput()

	case debounceMsg:
		if msg.tag != m.debounceTag {
			return m, nil
		}
		m.state.LastQuery = msg.query
		return m, m.fetchSuggestions(msg.query)

	case suggestionsMsg:
		if msg.seq != m.requestSeq {
			log.Printf("UI: dropping stale suggestions for %q (seq %d, latest %d)", msg.query, msg.seq, m.requestSeq)
			return m, nil
		}
		m.renderSuggestions(msg.query, msg.items)
		return m, nil

	case historyMsg:
		if msg.seq != m.requestSeq {
			return m, nil
		}
		if msg.err != nil {
			m.publish(domain.ErrorEvent{Message: "failed to load search history", Err: msg.err})
		}
		m.renderHistory(msg.items)
		return m, nil

	case historyRemovedMsg:
		if msg.err != nil {
			m.publish(domain.ErrorEvent{Message: "failed to remove history entry", Err: msg.err})
		} else {
			m.publish(domain.HistoryItemRemovedEvent{Query: msg.query})
		}
		return m, m.showHistory()

	case historyClearedMsg:
		// Invalidate in-flight fetches so they cannot repaint old history
		m.requestSeq++
		if msg.err != nil {
			m.publish(domain.ErrorEvent{Message: "failed to clear search history", Err: msg.err})
			m.renderNotice(MsgOperationFailed, true)
			return m, nil
		}
		m.publish(domain.HistoryClearedEvent{})
		m.renderHistory(nil)
		return m, nil

	case historyPagerMsg:
		if msg.err != nil {
			log.Printf("UI: history pager failed: %v", msg.err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Hide):
		m.panelVisible = false
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		if selected, ok := m.state.ItemText(m.state.SelectedIndex); ok && m.panelVisible {
			text = selected
		}
		return m, m.submit(text)

	case key.Matches(msg, m.keys.ToggleType):
		m.ToggleSearchType()
		return m, nil

	case key.Matches(msg, m.keys.RemoveItem):
		if !m.state.ShowingHistory || !m.panelVisible {
			return m, nil
		}
		if q, ok := m.state.ItemText(m.state.SelectedIndex); ok {
			return m, m.RemoveHistoryItem(q)
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearHistory):
		return m, m.ClearHistory()

	case key.Matches(msg, m.keys.HistoryPager):
		return m, m.openHistoryPager()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.inputChanged(m.input.Value()))
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	hit := m.renderer.HitTest(m.panelView(), msg.X, msg.Y)
	switch hit.Kind {
	case views.HitModeButton:
		m.ToggleSearchType()
	case views.HitInput:
		return m.focusInput()
	case views.HitClearAll:
		return m.ClearHistory()
	case views.HitRemove:
		if q, ok := m.state.ItemText(hit.Index); ok {
			return m.RemoveHistoryItem(q)
		}
	case views.HitItem:
		if q, ok := m.state.ItemText(hit.Index); ok {
			return m.submit(q)
		}
	case views.HitPanel:
		// inside the panel but not on an action
	default:
		m.panelVisible = false
	}
	return nil
}

// focusInput shows history when the input is focused or clicked while empty
func (m *Model) focusInput() tea.Cmd {
	if strings.TrimSpace(m.input.Value()) != "" {
		return nil
	}
	return m.showHistory()
}

// inputChanged cancels any pending debounce and either shows history (empty
// input) or schedules a suggestion fetch
func (m *Model) inputChanged(value string) tea.Cmd {
	query := strings.TrimSpace(value)
	if query == "" {
		m.debounceTag++
		return m.showHistory()
	}
	m.state.ShowingHistory = false
	// a history fetch still in flight must not render over typed text
	m.requestSeq++
	return m.scheduleFetch(query)
}

func (m *Model) scheduleFetch(query string) tea.Cmd {
	m.debounceTag++
	tag := m.debounceTag
	return tea.Tick(m.cfg.Debounce(), func(time.Time) tea.Msg {
		return debounceMsg{tag: tag, query: query}
	})
}

func (m *Model) fetchSuggestions(query string) tea.Cmd {
	m.requestSeq++
	seq := m.requestSeq
	ctx := m.ctx
	backend := m.backend
	return func() tea.Msg {
		return suggestionsMsg{seq: seq, query: query, items: backend.Fetch(ctx, query)}
	}
}

func (m *Model) showHistory() tea.Cmd {
	m.requestSeq++
	seq := m.requestSeq
	ctx := m.ctx
	backend := m.backend
	return func() tea.Msg {
		items, err := backend.History(ctx)
		return historyMsg{seq: seq, items: items, err: err}
	}
}

// RemoveHistoryItem removes one query from history and then reloads it
func (m *Model) RemoveHistoryItem(query string) tea.Cmd {
	ctx := m.ctx
	backend := m.backend
	return func() tea.Msg {
		return historyRemovedMsg{query: query, err: backend.RemoveHistory(ctx, query)}
	}
}

// ClearHistory clears all history
func (m *Model) ClearHistory() tea.Cmd {
	ctx := m.ctx
	backend := m.backend
	return func() tea.Msg {
		return historyClearedMsg{err: backend.ClearHistory(ctx)}
	}
}

// ToggleSearchType flips between webpage and document search.
// Only the label, placeholder and submitted mode change.
func (m *Model) ToggleSearchType() {
	m.searchType = m.searchType.Toggle()
	m.input.Placeholder = m.searchType.Placeholder()
	m.publish(domain.SearchTypeToggledEvent{SearchType: m.searchType})
}

func (m *Model) openHistoryPager() tea.Cmd {
	if m.pager == nil {
		return nil
	}
	ctx := m.ctx
	backend := m.backend
	pager := m.pager
	return func() tea.Msg {
		history, err := backend.AllHistory(ctx)
		if err != nil {
			return historyPagerMsg{err: err}
		}
		return historyPagerMsg{err: pager(buildHistoryPage(history))}
	}
}

func (m *Model) submit(text string) tea.Cmd {
	query := strings.TrimSpace(text)
	if query == "" {
		return nil
	}
	m.input.SetValue(query)
	m.input.CursorEnd()
	m.submitted = query
	m.panelVisible = false
	m.publish(domain.SearchSubmittedEvent{Query: query, SearchType: m.searchType})
	return tea.Quit
}

func (m *Model) renderSuggestions(query string, items []domain.Suggestion) {
	m.state.ShowingHistory = false
	m.state.Suggestions = items
	m.state.History = nil
	m.resetSelection()
	m.notice = ""
	m.noticeFailure = false
	m.panelVisible = len(items) > 0
	m.publish(domain.SuggestionsFetchedEvent{Query: query, Count: len(items)})
}

func (m *Model) renderHistory(items []string) {
	m.state.ShowingHistory = true
	m.state.History = items
	m.state.Suggestions = nil
	m.resetSelection()
	m.notice = ""
	m.noticeFailure = false
	if len(items) == 0 {
		m.notice = MsgHistoryEmpty
	}
	m.panelVisible = true
	m.publish(domain.HistoryLoadedEvent{Count: len(items)})
}

func (m *Model) renderNotice(notice string, failure bool) {
	m.state.ShowingHistory = true
	m.state.History = nil
	m.state.Suggestions = nil
	m.resetSelection()
	m.notice = notice
	m.noticeFailure = failure
	m.panelVisible = true
}

func (m *Model) resetSelection() {
	m.state.SelectedIndex = -1
	m.offset = 0
}

// moveSelection moves within the visible panel. Down on a hidden panel with
// loaded items shows it again without moving.
func (m *Model) moveSelection(delta int) {
	if !m.panelVisible {
		if delta > 0 && m.state.ItemCount() > 0 {
			m.panelVisible = true
		}
		return
	}
	m.state.MoveSelection(delta)
	m.ensureSelectedVisible()
}

// maxRows is how many panel items fit on screen; 0 means unlimited
func (m *Model) maxRows() int {
	if m.height == 0 {
		return 0
	}
	rows := m.height - reservedLines
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) ensureSelectedVisible() {
	rows := m.maxRows()
	sel := m.state.SelectedIndex
	if rows == 0 || sel < 0 {
		if sel < 0 {
			m.offset = 0
		}
		return
	}
	if sel < m.offset {
		m.offset = sel
	}
	if sel >= m.offset+rows {
		m.offset = sel - rows + 1
	}
}

func (m *Model) publish(e domain.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

func (m *Model) panelView() views.PanelView {
	v := views.PanelView{
		ModeLabel:      m.searchType.Label(),
		DocumentMode:   m.searchType == domain.SearchDocument,
		Input:          m.input.View(),
		Visible:        m.panelVisible,
		ShowingHistory: m.state.ShowingHistory,
		Notice:         m.notice,
		NoticeFailure:  m.noticeFailure,
		Selected:       m.state.SelectedIndex,
		Offset:         m.offset,
		MaxRows:        m.maxRows(),
		Width:          m.width,
	}

	if m.state.ShowingHistory {
		for _, h := range m.state.History {
			v.Items = append(v.Items, views.Item{Text: h, Kind: views.KindHistory})
		}
		return v
	}

	for _, s := range m.state.Suggestions {
		item := views.Item{Text: s.Text, Icon: s.Icon}
		switch s.Type {
		case domain.TypeCorrection:
			item.Kind = views.KindCorrection
			item.Detail = "did you mean"
		case domain.TypeESCompletion:
			item.Kind = views.KindCompletion
			if m.cfg.UISettings.ShowScores {
				item.Detail = fmt.Sprintf("%.2f", s.Score)
			}
		}
		v.Items = append(v.Items, item)
	}
	return v
}

// View renders the UI
func (m *Model) View() string {
	v := m.panelView()
	v.Help = m.help.View(m.keys)
	return m.renderer.Render(v)
}
