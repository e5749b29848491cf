// Package tui provides a Bubble Tea terminal front end for the coin tracker.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/status-im/coin-tracker/coin_detail"
	"github.com/status-im/coin-tracker/coin_list"
	"github.com/status-im/coin-tracker/events"
	"github.com/status-im/coin-tracker/interfaces"
	"github.com/status-im/coin-tracker/theme"
)

// View represents the current active view.
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewSettings
)

// Options configures the UI.
type Options struct {
	Context        context.Context
	CoinList       *coin_list.Service
	Details        *coin_detail.Manager
	Theme          *theme.Service
	ClearLocalData func(ctx context.Context) error
}

type themeReadyMsg struct{}

type listChangedMsg struct{}

type detailChangedMsg struct {
	coinID string
}

type clearedMsg struct {
	err error
}

type sessionErrMsg struct {
	err error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Services
	ctx            context.Context
	coinList       *coin_list.Service
	details        *coin_detail.Manager
	themeService   *theme.Service
	clearLocalData func(ctx context.Context) error

	// UI state
	keys        keyMap
	help        help.Model
	spinner     spinner.Model
	search      textinput.Model
	searching   bool
	styles      Styles
	themeReady  bool
	currentView View
	width       int
	height      int
	notice      string

	// List state
	listSub   events.ISubscription
	listState coin_list.State
	visible   []interfaces.Coin
	cursor    int

	// Detail state
	session     *coin_detail.Session
	detailSub   events.ISubscription
	detailState coin_detail.State
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	search := textinput.New()
	search.Placeholder = "Search by name or symbol..."
	search.CharLimit = 64
	search.Prompt = "/ "

	return Model{
		ctx:            ctx,
		coinList:       opts.CoinList,
		details:        opts.Details,
		themeService:   opts.Theme,
		clearLocalData: opts.ClearLocalData,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		search:         search,
		styles:         PaletteFor(theme.DefaultMode).Styles(),
		currentView:    ViewList,
		listSub:        opts.CoinList.Subscribe(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitThemeReady(m.ctx, m.themeService),
		m.spinner.Tick,
		func() tea.Msg { return listChangedMsg{} },
	)
}

// waitThemeReady blocks until the persisted theme has been read
func waitThemeReady(ctx context.Context, themeService *theme.Service) tea.Cmd {
	return func() tea.Msg {
		if err := themeService.WaitReady(ctx); err != nil {
			return nil
		}
		return themeReadyMsg{}
	}
}

// waitForSignal turns the next subscription signal into msg
func waitForSignal(sub events.ISubscription, msg tea.Msg) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-sub.Chan(); !ok {
			return nil
		}
		return msg
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case themeReadyMsg:
		m.themeReady = true
		m.styles = PaletteFor(m.themeService.Mode()).Styles()
		return m, nil

	case listChangedMsg:
		m.syncList()
		return m, waitForSignal(m.listSub, listChangedMsg{})

	case detailChangedMsg:
		if m.session == nil || m.session.CoinID() != msg.coinID {
			return m, nil
		}
		m.detailState = m.session.State()
		return m, waitForSignal(m.detailSub, msg)

	case clearedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("Failed to clear local data: %v", msg.err)
		} else {
			m.notice = "Local data cleared."
		}
		return m, nil

	case sessionErrMsg:
		m.notice = msg.err.Error()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, m.quit()
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if key.Matches(msg, m.keys.Quit) {
		return m, m.quit()
	}

	switch m.currentView {
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewSettings:
		return m.handleSettingsKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) quit() tea.Cmd {
	m.closeDetail()
	if m.listSub != nil {
		m.listSub.Cancel()
	}
	return tea.Quit
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.coinList.SetSearchTerm("")
		m.syncList()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.coinList.SetSearchTerm(m.search.Value())
	m.syncList()
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Back):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.coinList.SetSearchTerm("")
			m.syncList()
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshListCmd()
	case key.Matches(msg, m.keys.Favorite):
		if coin, ok := m.selectedCoin(); ok {
			m.coinList.ToggleFavorite(m.ctx, coin.ID)
		}
	case key.Matches(msg, m.keys.Settings):
		m.currentView = ViewSettings
		m.notice = ""
	case key.Matches(msg, m.keys.Open):
		if coin, ok := m.selectedCoin(); ok {
			return m.openDetail(coin.ID)
		}
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeDetail()
		m.currentView = ViewList
		m.notice = ""
	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchDetailCmd()
	case key.Matches(msg, m.keys.Favorite):
		m.coinList.ToggleFavorite(m.ctx, m.detailState.CoinID)
	case key.Matches(msg, m.keys.TimeFrame):
		tf, ok := coin_detail.TimeFrameByLabel(timeFrameKeys[msg.String()])
		if !ok || m.session == nil {
			return m, nil
		}
		session, ctx := m.session, m.ctx
		return m, func() tea.Msg {
			if _, err := session.SetTimeFrame(ctx, tf.Days); err != nil {
				return sessionErrMsg{err: err}
			}
			return nil
		}
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.currentView = ViewList
		m.notice = ""
	case key.Matches(msg, m.keys.ToggleTheme):
		mode := m.themeService.Toggle(m.ctx)
		m.styles = PaletteFor(mode).Styles()
	case key.Matches(msg, m.keys.ClearCache):
		if m.clearLocalData == nil {
			return m, nil
		}
		clearLocalData, ctx := m.clearLocalData, m.ctx
		return m, func() tea.Msg {
			return clearedMsg{err: clearLocalData(ctx)}
		}
	}
	return m, nil
}

// openDetail switches to the detail view and starts a fetch for coinID
func (m Model) openDetail(coinID string) (tea.Model, tea.Cmd) {
	session, err := m.details.Open(coinID)
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}

	m.closeDetail()
	m.session = session
	m.detailSub = session.Subscribe()
	m.detailState = session.State()
	m.currentView = ViewDetail
	m.notice = ""

	return m, tea.Batch(
		waitForSignal(m.detailSub, detailChangedMsg{coinID: coinID}),
		m.fetchDetailCmd(),
	)
}

func (m *Model) closeDetail() {
	if m.detailSub != nil {
		m.detailSub.Cancel()
	}
	m.detailSub = nil
	m.session = nil
	m.detailState = coin_detail.State{}
}

func (m Model) refreshListCmd() tea.Cmd {
	coinList, ctx := m.coinList, m.ctx
	return func() tea.Msg {
		coinList.FetchInitialData(ctx)
		return nil
	}
}

func (m Model) fetchDetailCmd() tea.Cmd {
	if m.session == nil {
		return nil
	}
	session, ctx := m.session, m.ctx
	return func() tea.Msg {
		session.FetchDetails(ctx)
		return nil
	}
}

// syncList copies the latest list state and keeps the cursor in range
func (m *Model) syncList() {
	m.listState = m.coinList.State()
	m.visible = coin_list.Filter(m.listState.Coins, m.listState.SearchTerm)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selectedCoin() (interfaces.Coin, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return interfaces.Coin{}, false
	}
	return m.visible[m.cursor], true
}

// Run starts the program and blocks until the user quits.
func Run(opts Options) error {
	if opts.CoinList == nil || opts.Details == nil || opts.Theme == nil {
		return errors.New("tui requires the coin list, detail manager and theme services")
	}

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
