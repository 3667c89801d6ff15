package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/render"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/sessions"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/timetable"
)

type screen int

const (
	modeScreen screen = iota
	selectorScreen
	resultScreen
)

// menuItem is one entry of the top-level menu. live items skip the selector.
type menuItem struct {
	label string
	view  timetable.View
	live  bool
}

var menu = []menuItem{
	{label: "Classroom", view: timetable.ClassroomView},
	{label: "Day", view: timetable.DayView},
	{label: "Subject", view: timetable.SubjectView},
	{label: "Teacher", view: timetable.TeacherView},
	{label: "Labs", view: timetable.LabsView},
	{label: "Live now", live: true},
}

// chrome is the number of lines taken by header and footer.
const chrome = 3

// Config is what Run needs to load and query the timetable.
type Config struct {
	Source  string
	Load    Loader
	Service timetable.ServiceOptions
}

type model struct {
	cfg Config
	svc *timetable.Service

	screen         screen
	menuCursor     int
	selectors      []string
	selectorCursor int
	selected       string

	grid      *timetable.Grid
	labs      []timetable.Entry
	colOffset int

	viewport viewport.Model
	ready    bool
	width    int
	height   int

	loadingState     sessions.LoadingState
	loadingIndicator *LoadingIndicator
	cancelLoad       context.CancelFunc

	status string
	err    error
}

func initialModel(cfg Config) model {
	return model{
		cfg:          cfg,
		screen:       modeScreen,
		loadingState: sessions.StateIdle,
	}
}

func (m model) Init() tea.Cmd {
	return m.startLoad()
}

// startLoad is called from Init, whose receiver is a copy, so the cancel
// func is handed back through StoreLoadedMsg instead of stored here.
func (m model) startLoad() tea.Cmd {
	if m.cfg.Load == nil {
		return func() tea.Msg { return StoreLoadedMsg{Store: sessions.NewStore(nil, sessions.StoreOptions{})} }
	}
	return func() tea.Msg { return loadStartedMsg{} }
}

// loadStartedMsg lets Update own the load's context.
type loadStartedMsg struct{}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chrome)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chrome
		}
		m.updateViewport()

	case loadStartedMsg:
		ctx, cancel := context.WithCancel(context.Background())
		m.cancelLoad = cancel
		m.loadingState = sessions.StateLoading
		m.loadingIndicator = NewLoadingIndicator(fmt.Sprintf("Loading timetable from %s...", m.cfg.Source))
		return m, tea.Batch(loadStoreCmd(ctx, m.cfg.Load), tickCmd())

	case TickMsg:
		if m.loadingState == sessions.StateLoading || m.loadingState == sessions.StateCancelling {
			m.loadingIndicator.Tick()
			return m, tickCmd()
		}
		return m, nil

	case StoreLoadedMsg:
		if m.cancelLoad != nil {
			m.cancelLoad()
			m.cancelLoad = nil
		}
		m.applyStore(msg)
		m.updateViewport()
		return m, nil

	case tea.KeyMsg:
		if m.loadingState == sessions.StateLoading || m.loadingState == sessions.StateCancelling {
			return m.handleLoadingKey(msg)
		}
		// nothing to browse until a store has arrived
		if m.svc == nil {
			if k := msg.String(); k == "ctrl+c" || k == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}

	if m.screen == resultScreen {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *model) applyStore(msg StoreLoadedMsg) {
	store := msg.Store
	if store == nil {
		store = sessions.FailedStore(msg.Error)
	}
	m.svc = timetable.NewService(store, m.cfg.Service)

	switch {
	case errors.Is(msg.Error, context.Canceled):
		m.loadingState = sessions.StateError
		m.err = errors.New("loading cancelled")
	case msg.Error != nil:
		m.loadingState = sessions.StateError
		m.err = msg.Error
	default:
		m.loadingState = sessions.StateReady
		m.err = nil
		m.status = fmt.Sprintf("%d sessions loaded", store.Len())
	}
}

func (m model) handleLoadingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.cancelLoad != nil {
			m.cancelLoad()
		}
		return m, tea.Quit
	case "esc":
		if m.cancelLoad != nil {
			m.cancelLoad()
		}
		m.loadingState = sessions.StateCancelling
		m.loadingIndicator.SetMessage("Cancelling...")
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit, true

	case "up", "k":
		if m.screen == resultScreen {
			return m, nil, false
		}
		m.moveCursor(-1)

	case "down", "j":
		if m.screen == resultScreen {
			return m, nil, false
		}
		m.moveCursor(1)

	case "left", "h":
		if m.screen == resultScreen && m.colOffset > 0 {
			m.colOffset--
			m.updateViewport()
		}

	case "right", "l":
		if m.screen == resultScreen && m.grid != nil && m.colOffset+m.visibleColumns() < len(m.grid.Columns) {
			m.colOffset++
			m.updateViewport()
		}

	case "enter":
		m.enter()

	case "r":
		if m.screen == resultScreen && m.menuItem().live {
			m.showLive()
		}

	case "esc", "backspace":
		m.back()

	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m *model) menuItem() menuItem {
	return menu[m.menuCursor]
}

func (m *model) moveCursor(delta int) {
	switch m.screen {
	case modeScreen:
		m.menuCursor = clamp(m.menuCursor+delta, 0, len(menu)-1)
	case selectorScreen:
		m.selectorCursor = clamp(m.selectorCursor+delta, 0, len(m.selectors)-1)
	}
	m.updateViewport()
	m.followCursor()
}

func (m *model) enter() {
	m.status = ""
	switch m.screen {
	case modeScreen:
		item := m.menuItem()
		if item.live {
			m.showLive()
			return
		}
		m.selectors = m.svc.Selectors(item.view)
		m.selectorCursor = 0
		m.screen = selectorScreen
		if len(m.selectors) == 0 {
			m.status = "Nothing to choose from: no timetable data loaded"
		}
		m.updateViewport()
		m.viewport.GotoTop()

	case selectorScreen:
		if len(m.selectors) == 0 {
			return
		}
		m.selected = m.selectors[m.selectorCursor]
		g, labs, err := m.svc.Show(m.menuItem().view, m.selected)
		if err != nil {
			m.status = err.Error()
			return
		}
		m.grid, m.labs, m.colOffset = g, labs, 0
		m.screen = resultScreen
		m.updateViewport()
		m.viewport.GotoTop()
	}
}

func (m *model) showLive() {
	live, err := m.svc.LiveNow()
	if err != nil {
		m.status = err.Error()
		return
	}
	m.grid, m.labs = nil, nil
	m.screen = resultScreen
	m.viewport.SetContent(render.Live(live))
	m.viewport.GotoTop()
}

func (m *model) back() {
	m.status = ""
	switch m.screen {
	case resultScreen:
		if m.menuItem().live {
			m.screen = modeScreen
		} else {
			m.screen = selectorScreen
		}
	case selectorScreen:
		m.screen = modeScreen
	}
	m.updateViewport()
	m.followCursor()
}

func (m *model) updateViewport() {
	if !m.ready {
		return
	}
	switch m.screen {
	case modeScreen:
		m.viewport.SetContent(m.renderMenu())
	case selectorScreen:
		m.viewport.SetContent(m.renderSelectors())
	case resultScreen:
		if m.grid != nil {
			m.viewport.SetContent(m.renderResult())
		}
	}
}

// followCursor scrolls list screens so the cursor stays visible.
func (m *model) followCursor() {
	if !m.ready {
		return
	}
	line := m.menuCursor
	if m.screen == selectorScreen {
		line = m.selectorCursor
	} else if m.screen != modeScreen {
		return
	}
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

func (m model) renderMenu() string {
	var s strings.Builder
	for i, item := range menu {
		s.WriteString(listLine(item.label, i == m.menuCursor) + "\n")
	}
	return s.String()
}

func (m model) renderSelectors() string {
	var s strings.Builder
	for i, value := range m.selectors {
		s.WriteString(listLine(value, i == m.selectorCursor) + "\n")
	}
	return s.String()
}

func listLine(text string, selected bool) string {
	if selected {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Render("> " + text)
	}
	return "  " + text
}

// visibleColumns is how many grid columns fit the terminal at the minimum
// cell width.
func (m model) visibleColumns() int {
	const slotColumn, minCell, sep = 11, 14, 3
	n := (m.width - slotColumn) / (minCell + sep)
	return max(n, 1)
}

func (m model) renderResult() string {
	g := m.grid
	visible := m.visibleColumns()
	if len(g.Columns) > visible {
		end := min(m.colOffset+visible, len(g.Columns))
		page := *g
		page.Columns = g.Columns[m.colOffset:end]
		g = &page
	}

	width := render.DefaultCellWidth
	if n := len(g.Columns); n > 0 {
		width = clamp((m.width-11)/n-3, 14, 40)
	}

	out := render.Grid(g, render.Options{CellWidth: width})
	if m.grid.Type == timetable.DayView {
		out += "\n\n" + render.Labs(m.labs, m.grid.ActiveRow)
	}
	return out
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	if m.loadingState == sessions.StateLoading || m.loadingState == sessions.StateCancelling {
		return LoadingOverlay(m.width, m.height, m.loadingIndicator)
	}

	return fmt.Sprintf("%s\n%s\n%s", m.renderHeader(), m.viewport.View(), m.renderFooter())
}

func (m model) renderHeader() string {
	title := "Timetable"
	switch m.screen {
	case selectorScreen:
		title = "Timetable - choose a " + strings.ToLower(m.menuItem().label)
	case resultScreen:
		if m.menuItem().live {
			title = "Timetable - live now"
		} else {
			title = fmt.Sprintf("Timetable - %s: %s", m.menuItem().label, m.selected)
		}
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63"))
	return style.Render(title)
}

func (m model) renderFooter() string {
	info := "↑/↓: navigate • enter: select"
	switch m.screen {
	case selectorScreen:
		info += " • esc: back"
	case resultScreen:
		info = "↑/↓: scroll • esc: back"
		if m.grid != nil && len(m.grid.Columns) > m.visibleColumns() {
			info += " • ←/→: columns"
		}
		if m.menuItem().live {
			info += " • r: refresh"
		}
	}
	info += " • q: quit"

	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(info)
	switch {
	case m.err != nil:
		footer += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("Error: "+m.err.Error())
	case m.status != "":
		footer += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Render(m.status)
	}
	return footer
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// Run starts the terminal browser and blocks until the user quits.
func Run(cfg Config) error {
	p := tea.NewProgram(initialModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
