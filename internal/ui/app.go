package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/reel/internal/prefs"
	"github.com/five82/reel/internal/search"
	"github.com/five82/reel/internal/trending"
)

// Searcher is the page's view of search.Service.
type Searcher interface {
	FetchMovies(ctx context.Context, query string) search.Result
	LoadTrending(ctx context.Context) ([]trending.Entry, error)
}

var _ Searcher = (*search.Service)(nil)

type focusArea int

const (
	focusInput focusArea = iota
	focusGrid
)

const placeholder = "Search through thousands of movies"

// Options configures the UI.
type Options struct {
	Context   context.Context
	Searcher  Searcher
	Logger    *slog.Logger
	Debounce  time.Duration
	ImageBase string
	LogPath   string
	ThemeName string
	PrefsPath string
}

// Model is the search page. It owns search.State for its lifetime.
type Model struct {
	ctx       context.Context
	searcher  Searcher
	logger    *slog.Logger
	imageBase string
	logPath   string
	prefsPath string

	// UI state
	theme    Theme
	keys     keyMap
	width    int
	height   int
	ready    bool
	focus    focusArea
	selected int
	showHelp bool
	notice   string

	// Page state
	state    search.State
	debounce search.Debouncer
	mountReq search.Request

	// Components
	input   textinput.Model
	spinner spinner.Model
	grid    viewport.Model
}

// New creates the page and starts its mount fetch.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = "⌕ "
	input.Focus()

	m := Model{
		ctx:       ctx,
		searcher:  opts.Searcher,
		logger:    logger.With("component", "ui"),
		imageBase: opts.ImageBase,
		logPath:   opts.LogPath,
		prefsPath: prefsPath,
		theme:     GetTheme(themeName),
		keys:      defaultKeyMap(),
		debounce:  search.NewDebouncer(opts.Debounce),
		input:     input,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		grid:      viewport.New(0, 0),
	}
	m.applyTheme()

	// The page mounts with the empty query, which lists popular movies.
	m.mountReq = m.state.BeginFetch("")
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.fetchCmd(m.mountReq),
		m.loadTrendingCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case debounceMsg:
		return m.handleDebounce(search.Pending(msg))

	case fetchedMsg:
		if !m.state.FinishFetch(msg.req, msg.res) {
			m.logger.Debug("dropped stale response", "seq", msg.req.Seq, "latest", m.state.LatestSeq(), "query", msg.req.Query)
			return m, nil
		}
		m.selected = 0
		m.grid.GotoTop()
		m.layout()
		return m, nil

	case trendingMsg:
		if msg.err == nil {
			m.state.SetTrending(msg.entries)
			m.layout()
		}
		return m, nil

	case pagerClosedMsg:
		m.notice = ""
		if msg.err != nil {
			m.logger.Warn("pager failed", "what", msg.what, "error", msg.err)
			m.notice = "Could not open " + msg.what
		}
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focus == focusInput {
		return m.updateInput(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.debounce.Stop()
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Focus):
		m.toggleFocus()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.layout()
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.logger.Warn("save prefs failed", "error", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		if m.logPath == "" {
			return m, nil
		}
		return m, pageFile("log file", m.logPath)

	case key.Matches(msg, m.keys.Clear):
		m.input.SetValue("")
		return m, m.queryChanged()
	}

	if m.focus == focusInput {
		return m.updateInput(msg)
	}
	return m.handleGridKey(msg)
}

// updateInput forwards msg to the search box and debounces the new value.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, tea.Batch(cmd, m.queryChanged())
}

// queryChanged records the search box value and schedules its commit.
func (m *Model) queryChanged() tea.Cmd {
	value := m.input.Value()
	if !m.state.SetQuery(value) {
		return nil
	}
	pending := m.debounce.Schedule(value)
	return tea.Tick(m.debounce.Delay(), func(time.Time) tea.Msg {
		return debounceMsg(pending)
	})
}

// handleDebounce commits a settled query and fetches it when it changed.
func (m Model) handleDebounce(p search.Pending) (tea.Model, tea.Cmd) {
	if !m.debounce.Ready(p) || !m.state.Commit(p.Value) {
		return m, nil
	}
	req := m.state.BeginFetch(p.Value)
	m.layout()
	return m, tea.Batch(m.spinner.Tick, m.fetchCmd(req))
}

// handleGridKey moves the selection and opens movies.
func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = true
		return m, nil
	}

	count := len(m.state.Results)
	if count == 0 || m.state.Mode() != search.ModeResults {
		return m, nil
	}
	cols := gridColumns(m.width)

	switch {
	case key.Matches(msg, m.keys.Left):
		m.selected = max(m.selected-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.selected = min(m.selected+1, count-1)
	case key.Matches(msg, m.keys.Up):
		if m.selected-cols >= 0 {
			m.selected -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected+cols < count {
			m.selected += cols
		}
	case key.Matches(msg, m.keys.PageUp):
		m.selected = max(m.selected-cols*m.visibleRows(), 0)
	case key.Matches(msg, m.keys.PageDown):
		m.selected = min(m.selected+cols*m.visibleRows(), count-1)
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	case key.Matches(msg, m.keys.Open):
		movie := m.state.Results[m.selected]
		return m, pageText("overview", overviewText(movie, m.imageBase))
	default:
		return m, nil
	}

	m.layout()
	return m, nil
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusGrid
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

// applyTheme restyles the bubbles components for the current theme.
func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.input.PromptStyle = styles.AccentText
	m.input.TextStyle = styles.Text
	m.input.PlaceholderStyle = styles.MutedText
	m.input.Cursor.Style = styles.AccentText
	m.spinner.Style = styles.AccentText
}

// visibleRows is how many card rows fit in the grid viewport.
func (m Model) visibleRows() int {
	return max(m.grid.Height/cardHeight, 1)
}

// layout sizes the grid viewport to the space left under the page chrome
// and keeps the selected card in view.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	m.grid.Width = m.width
	m.grid.Height = max(m.height-lipgloss.Height(m.renderTop())-1, 1)
	m.grid.SetContent(m.renderResults())

	if m.state.Mode() != search.ModeResults || len(m.state.Results) == 0 {
		m.grid.GotoTop()
		return
	}
	top := (m.selected / gridColumns(m.width)) * cardHeight
	switch {
	case top < m.grid.YOffset:
		m.grid.SetYOffset(top)
	case top+cardHeight > m.grid.YOffset+m.grid.Height:
		m.grid.SetYOffset(top + cardHeight - m.grid.Height)
	}
}

// Messages

type debounceMsg search.Pending

type fetchedMsg struct {
	req search.Request
	res search.Result
}

type trendingMsg struct {
	entries []trending.Entry
	err     error
}

// Commands

func (m Model) fetchCmd(req search.Request) tea.Cmd {
	searcher, ctx := m.searcher, m.ctx
	return func() tea.Msg {
		if searcher == nil {
			return fetchedMsg{req: req, res: search.Result{Query: req.Query, Err: search.MsgTryAgain}}
		}
		return fetchedMsg{req: req, res: searcher.FetchMovies(ctx, req.Query)}
	}
}

func (m Model) loadTrendingCmd() tea.Cmd {
	searcher, ctx := m.searcher, m.ctx
	return func() tea.Msg {
		if searcher == nil {
			return trendingMsg{}
		}
		entries, err := searcher.LoadTrending(ctx)
		return trendingMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
