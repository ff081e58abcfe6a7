package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/scripturesteps/internal/catalog"
	"github.com/papapumpkin/scripturesteps/internal/progress"
	"github.com/papapumpkin/scripturesteps/internal/reflection"
	"github.com/papapumpkin/scripturesteps/internal/tracker"
)

// ViewDepth tracks the navigation level.
type ViewDepth int

const (
	// DepthBooks shows the filtered book list (top level).
	DepthBooks ViewDepth = iota
	// DepthChapters shows one book's chapter grid.
	DepthChapters
	// DepthFavorites shows the favorites index.
	DepthFavorites
)

// maxMessages bounds the message history kept for the message line.
const maxMessages = 20

// testamentCycle is the order the testament filter steps through.
var testamentCycle = []catalog.Testament{catalog.AllTestaments, catalog.OldTestament, catalog.NewTestament}

// AppModel is the root BubbleTea model.
type AppModel struct {
	Session   *tracker.Session
	Reflector *reflection.Reflector
	MaxVerses int

	StatusBar StatusBar
	Keys      KeyMap
	Search    textinput.Model
	Spinner   spinner.Model
	Width     int
	Height    int

	Depth     ViewDepth
	Testament catalog.Testament
	Searching bool
	Cursor    int // index into the filtered book list
	Focused   catalog.Book
	Chapter   int // chapter cursor in DepthChapters, 1-based

	Place   *PlacePrompt
	Confirm *ConfirmPrompt

	Reflecting int // requests in flight
	Reflection string
	Messages   []string

	ctx context.Context
}

// NewAppModel creates a root model over an open session.
func NewAppModel(ctx context.Context, s *tracker.Session, rf *reflection.Reflector, maxVerses int) AppModel {
	if rf == nil {
		rf = reflection.New(reflection.Config{}, nil)
	}
	search := textinput.New()
	search.Placeholder = "search books"
	search.Prompt = "/ "
	search.CharLimit = 40

	m := AppModel{
		Session:   s,
		Reflector: rf,
		MaxVerses: maxVerses,
		StatusBar: NewStatusBar(),
		Keys:      DefaultKeyMap(),
		Search:    search,
		Spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		Chapter:   1,
		ctx:       ctx,
	}
	m.StatusBar.Summary = s.Summary()
	return m
}

// Init starts the spinner.
func (m AppModel) Init() tea.Cmd {
	return m.Spinner.Tick
}

// Update handles all messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.StatusBar.Width = msg.Width
		m.Search.Width = max(msg.Width-6, 10)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case MsgReflection:
		if m.Reflecting > 0 {
			m.Reflecting--
		}
		m.Reflection = msg.Text

	case MsgReload:
		// Our own saves also trigger the watcher; only report foreign writes.
		before := m.Session.Record().LastUpdated
		if r := m.Session.Reload(m.ctx); r.LastUpdated != before {
			m.addMessage("progress reloaded from disk")
		}
		m.refresh()

	case MsgError:
		m.addMessage("error: %s", msg.Msg)
	case MsgInfo:
		m.addMessage("%s", msg.Msg)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.Confirm != nil:
		return m.handleConfirmKey(msg)
	case m.Place != nil:
		return m.handlePlaceKey(msg)
	case m.Searching:
		return m.handleSearchKey(msg)
	}

	if key.Matches(msg, m.Keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.Keys.Reflect) {
		cmd := m.requestReflection()
		return m, cmd
	}

	switch m.Depth {
	case DepthChapters:
		m.handleChapterKey(msg)
	case DepthFavorites:
		if key.Matches(msg, m.Keys.Back) {
			m.Depth = DepthBooks
		}
	default:
		return m.handleBookKey(msg)
	}
	return m, nil
}

func (m AppModel) handleBookKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	books := m.visibleBooks()
	selected, ok := m.selected(books)

	switch {
	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(books)-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.Keys.Toggle):
		if ok {
			m.apply(m.Session.ToggleBook(m.ctx, selected.ID))
		}
	case key.Matches(msg, m.Keys.Enter):
		if ok {
			m.Focused = selected
			m.Chapter = 1
			m.Depth = DepthChapters
		}
	case key.Matches(msg, m.Keys.FavoriteBook):
		if ok {
			m.apply(m.Session.ToggleFavoriteBook(m.ctx, selected.ID))
		}
	case key.Matches(msg, m.Keys.Place):
		if ok {
			m.openPlace(selected, 0)
		}
	case key.Matches(msg, m.Keys.ClearPlace):
		m.apply(m.Session.ClearCurrentPlace(m.ctx))
	case key.Matches(msg, m.Keys.Search):
		m.Searching = true
		cmd := m.Search.Focus()
		return m, cmd
	case key.Matches(msg, m.Keys.Testament):
		m.Testament = nextTestament(m.Testament)
		m.Cursor = 0
	case key.Matches(msg, m.Keys.Favorites):
		m.Depth = DepthFavorites
	case key.Matches(msg, m.Keys.Reset):
		m.Confirm = &ConfirmPrompt{Question: tracker.ResetPrompt}
	case key.Matches(msg, m.Keys.Back):
		if m.Search.Value() != "" {
			m.Search.SetValue("")
			m.Cursor = 0
		}
	}
	return m, nil
}

func (m *AppModel) handleChapterKey(msg tea.KeyMsg) {
	b := m.Focused
	switch {
	case key.Matches(msg, m.Keys.Back):
		m.Depth = DepthBooks
	case key.Matches(msg, m.Keys.Left):
		m.moveChapter(-1)
	case key.Matches(msg, m.Keys.Right):
		m.moveChapter(1)
	case key.Matches(msg, m.Keys.Up):
		m.moveChapter(-gridColumns)
	case key.Matches(msg, m.Keys.Down):
		m.moveChapter(gridColumns)
	case key.Matches(msg, m.Keys.Toggle):
		m.apply(m.Session.ToggleChapter(m.ctx, b.ID, m.Chapter))
	case key.Matches(msg, m.Keys.Favorite):
		m.apply(m.Session.ToggleFavoriteChapter(m.ctx, b.ID, m.Chapter))
	case key.Matches(msg, m.Keys.FavoriteBook):
		m.apply(m.Session.ToggleFavoriteBook(m.ctx, b.ID))
	case key.Matches(msg, m.Keys.Place):
		m.openPlace(b, m.Chapter)
	case key.Matches(msg, m.Keys.ClearPlace):
		m.apply(m.Session.ClearCurrentPlace(m.ctx))
	}
}

func (m AppModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.Searching = false
		m.Search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.Searching = false
		m.Search.Blur()
		m.Search.SetValue("")
		m.Cursor = 0
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.Search, cmd = m.Search.Update(msg)
	m.Cursor = 0
	return m, cmd
}

func (m AppModel) handlePlaceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.Place = nil
		return m, nil
	case tea.KeyEnter:
		p, err := m.Place.Parse(m.MaxVerses)
		if err != nil {
			m.Place.Err = err.Error()
			return m, nil
		}
		m.Place = nil
		m.apply(m.Session.SetCurrentPlace(m.ctx, p))
		return m, nil
	}
	var cmd tea.Cmd
	m.Place.Input, cmd = m.Place.Input.Update(msg)
	return m, cmd
}

func (m AppModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Confirm):
		m.Confirm = nil
		_, err := m.Session.Reset(m.ctx, tracker.AlwaysConfirm)
		m.afterApply(err)
		if err == nil {
			m.Cursor = 0
			m.Depth = DepthBooks
			m.addMessage("all progress cleared")
		}
	case key.Matches(msg, m.Keys.Cancel):
		m.Confirm = nil
	}
	return m, nil
}

// openPlace opens the place prompt for b. It is prefilled with the stored
// place when it is in b, otherwise with chapter (or the start of b).
func (m *AppModel) openPlace(b catalog.Book, chapter int) {
	start := progress.StartOf(b)
	if cp := m.Session.Record().CurrentPlace; cp != nil && cp.BookID == b.ID {
		start = *cp
	}
	if chapter > 0 && chapter != start.Chapter {
		start = progress.Place{BookID: b.ID, Chapter: chapter, Verse: 1}
	}
	m.Place = NewPlacePrompt(b, start)
}

func (m *AppModel) moveChapter(delta int) {
	next := m.Chapter + delta
	if next >= 1 && next <= m.Focused.Chapters {
		m.Chapter = next
	}
}

func (m *AppModel) requestReflection() tea.Cmd {
	m.Reflecting++
	s := m.Session.Summary()
	rf, ctx := m.Reflector, m.ctx
	return tea.Batch(m.Spinner.Tick, func() tea.Msg {
		return MsgReflection{Text: rf.Request(ctx, s.CompletedBooks, s.TotalBooks, s.LastCompleted)}
	})
}

// apply finishes a session transition. The snapshot has advanced even when
// err is set.
func (m *AppModel) apply(_ progress.Record, err error) {
	m.afterApply(err)
}

func (m *AppModel) afterApply(err error) {
	if err != nil && !errors.Is(err, tracker.ErrResetDeclined) {
		m.addMessage("error: %v", err)
	}
	m.refresh()
}

func (m *AppModel) refresh() {
	m.StatusBar.Summary = m.Session.Summary()
	if n := len(m.visibleBooks()); m.Cursor >= n {
		m.Cursor = max(n-1, 0)
	}
}

func (m *AppModel) addMessage(format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	m.Messages = append(m.Messages, msg)
	if len(m.Messages) > maxMessages {
		m.Messages = m.Messages[len(m.Messages)-maxMessages:]
	}
}

func (m AppModel) visibleBooks() []catalog.Book {
	return m.Session.Catalog().Filter(m.Search.Value(), m.Testament)
}

func (m AppModel) selected(books []catalog.Book) (catalog.Book, bool) {
	if m.Cursor < 0 || m.Cursor >= len(books) {
		return catalog.Book{}, false
	}
	return books[m.Cursor], true
}

func nextTestament(t catalog.Testament) catalog.Testament {
	for i, c := range testamentCycle {
		if c == t {
			return testamentCycle[(i+1)%len(testamentCycle)]
		}
	}
	return catalog.AllTestaments
}

// View renders the full screen.
func (m AppModel) View() string {
	if m.Width == 0 {
		return "initializing..."
	}
	if m.Width < MinWidth || m.Height < MinHeight {
		return "terminal too small"
	}

	var sections []string
	sections = append(sections, m.StatusBar.View())
	sections = append(sections, m.renderBreadcrumb())

	bodyHeight := max(m.Height-ChromeHeight, 1)
	if m.Reflection != "" || m.Reflecting > 0 {
		bodyHeight = max(bodyHeight-4, 1)
	}

	switch {
	case m.Confirm != nil:
		sections = append(sections, m.Confirm.View())
	case m.Place != nil:
		sections = append(sections, m.Place.View())
	default:
		switch m.Depth {
		case DepthChapters:
			sections = append(sections, renderChapters(m.Focused, m.Session.Record(), m.Chapter))
		case DepthFavorites:
			sections = append(sections, renderFavorites(progress.Favorites(m.Session.Record(), m.Session.Catalog())))
		default:
			if m.Searching || m.Search.Value() != "" {
				sections = append(sections, m.Search.View())
				bodyHeight = max(bodyHeight-1, 1)
			}
			sections = append(sections, renderBookList(m.visibleBooks(), m.Session.Record(), m.Cursor, bodyHeight, m.Width))
		}
	}

	if m.Reflecting > 0 {
		sections = append(sections, styleDim.Render(m.Spinner.View()+" asking for a reflection..."))
	} else if m.Reflection != "" {
		sections = append(sections, styleReflection.Width(max(m.Width-2, 10)).Render(m.Reflection))
	}

	if len(m.Messages) > 0 {
		sections = append(sections, styleDim.Render(TruncateWithEllipsis(m.Messages[len(m.Messages)-1], m.Width)))
	}

	sections = append(sections, Footer{Width: m.Width, Bindings: m.footerBindings()}.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m AppModel) renderBreadcrumb() string {
	parts := []string{m.Testament.Label()}
	switch m.Depth {
	case DepthChapters:
		parts = append(parts, m.Focused.Name)
	case DepthFavorites:
		parts = []string{"Favorites"}
	}
	if cp := m.Session.Record().CurrentPlace; cp != nil {
		name := cp.BookID
		if b, ok := m.Session.Catalog().Lookup(cp.BookID); ok {
			name = b.Name
		}
		parts = append(parts, fmt.Sprintf("reading %s %d:%d", name, cp.Chapter, cp.Verse))
	}
	return styleBreadcrumb.Width(m.Width).Render(strings.Join(parts, " › "))
}

func (m AppModel) footerBindings() []key.Binding {
	switch {
	case m.Confirm != nil:
		return PromptFooterBindings(m.Keys)
	case m.Place != nil:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	case m.Searching:
		return SearchFooterBindings()
	}
	switch m.Depth {
	case DepthChapters:
		return ChapterFooterBindings(m.Keys)
	case DepthFavorites:
		return FavoritesFooterBindings(m.Keys)
	default:
		return BookListFooterBindings(m.Keys)
	}
}
