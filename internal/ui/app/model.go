package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	gamedto "wikigo/internal/modules/game/dto"
	"wikigo/internal/platform/prefs"
	"wikigo/internal/ui/components"
	"wikigo/internal/ui/theme"
	leaderboardview "wikigo/internal/ui/views/leaderboard"
	playview "wikigo/internal/ui/views/play"
	practiceview "wikigo/internal/ui/views/practice"
)

// Deps are the handlers the TUI drives. Prefs may be nil, in which case
// preferences live only for the lifetime of the program.
type Deps struct {
	Game        playview.GamePort
	Wiki        playview.WikiPort
	Leaderboard leaderboardview.Port
	Practice    practiceview.Port
	Prefs       prefs.Store
	Start       *gamedto.StartInput
	Now         func() time.Time
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabPlay tabID = iota
	tabLeaderboard
	tabPractice
	tabCount
)

var tabLabels = [tabCount]string{"Play", "Leaderboard", "Practice"}

var paletteHints = []string{
	"play:daily",
	"play:random",
	"play:zen <id>",
	"play:challenge <url>",
	"reset",
	"open",
	"theme <light|dark|classic>",
	"user <name>",
	"leaderboard",
	"practice",
}

type prefsSavedMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Follow  key.Binding
	Open    key.Binding
	Daily   key.Binding
	Random  key.Binding
	Reset   key.Binding
	Days    key.Binding
	Reveal  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab/shift+tab", "switch tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":", "ctrl+p"), key.WithHelp(":/ctrl+p", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Follow:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "follow link")),
		Open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		Daily:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "daily challenge")),
		Random:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "random game")),
		Reset:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new game")),
		Days:    key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "leaderboard day")),
		Reveal:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "reveal solution")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Daily, k.Random, k.Reset},
		{k.Follow, k.Open},
		{k.Days, k.Reveal},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, preferences, the
// help overlay and the command palette; gameplay lives in the play view.
type Model struct {
	store prefs.Store
	prefs prefs.Preferences
	start *gamedto.StartInput

	playView  playview.Model
	boardView leaderboardview.Model
	practView practiceview.Model

	activeTab  tabID
	keys       keyMap
	help       help.Model
	showHelp   bool
	onboarding bool
	palette    components.Palette
	status     string
	width      int
	height     int
}

func NewModel(deps Deps) Model {
	store := deps.Prefs
	if store == nil {
		store = prefs.NewMemoryStore(prefs.Preferences{})
	}
	p, err := store.Load()
	status := "ready"
	if err != nil {
		status = "preferences: " + err.Error()
		p = prefs.Preferences{}.Normalize()
	}
	theme.Use(p.Theme)

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	board := leaderboardview.New(deps.Leaderboard, now())
	board.SetUsername(p.Username)

	return Model{
		store:      store,
		prefs:      p,
		start:      deps.Start,
		playView:   playview.New(deps.Game, deps.Wiki),
		boardView:  board,
		practView:  practiceview.New(deps.Practice, p.Username),
		activeTab:  tabPlay,
		keys:       defaultKeys(),
		help:       help.New(),
		onboarding: !p.OnboardingSeen,
		palette:    components.NewPalette(paletteHints),
		status:     status,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.playView.Init(), m.boardView.Init(), m.practView.Init()}
	if m.start != nil {
		input := *m.start
		cmds = append(cmds, func() tea.Msg { return startRequestMsg{input: input} })
	}
	return tea.Batch(cmds...)
}

type startRequestMsg struct{ input gamedto.StartInput }

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	// Play results must land in the play view whichever tab is showing.
	if isPlayMsg(msg) {
		var cmd tea.Cmd
		m.playView, cmd = m.playView.Update(msg)
		m.status = m.playView.Status()
		if _, ok := msg.(playview.SubmittedMsg); ok {
			cmd = tea.Batch(cmd, m.boardView.Refresh())
		}
		return m, cmd
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		cmd := m.propagateSize()
		return m, cmd

	case startRequestMsg:
		m.activeTab = tabPlay
		cmd := m.playView.Start(msg.input)
		return m, cmd

	case spinner.TickMsg:
		// Spinners ignore ticks carrying another spinner's ID.
		var playCmd, boardCmd tea.Cmd
		m.playView, playCmd = m.playView.Update(msg)
		m.boardView, boardCmd = m.boardView.Update(msg)
		return m, tea.Batch(playCmd, boardCmd)

	case leaderboardview.LoadedMsg:
		var cmd tea.Cmd
		m.boardView, cmd = m.boardView.Update(msg)
		return m, cmd

	case practiceview.GamesLoadedMsg, practiceview.SolutionMsg:
		var cmd tea.Cmd
		m.practView, cmd = m.practView.Update(msg)
		m.status = m.practView.Status()
		return m, cmd

	case practiceview.PlayMsg:
		m.activeTab = tabPlay
		cmd := m.playView.Start(gamedto.StartInput{Mode: "zen", PracticeGameID: msg.ID})
		return m, cmd

	case prefsSavedMsg:
		if msg.err != nil {
			m.status = "preferences: " + msg.err.Error()
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.onboarding {
			m.onboarding = false
			m.prefs.OnboardingSeen = true
			return m, m.savePrefsCmd()
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+p":
			cmd := m.palette.Open()
			return m, cmd
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		}
		if m.subViewCapturing() {
			break
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		case "ctrl+n":
			m.activeTab = tabPlay
			cmd := m.playView.Reset()
			return m, cmd
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabPlay:
		m.playView, tabCmd = m.playView.Update(msg)
		m.status = m.playView.Status()
	case tabLeaderboard:
		m.boardView, tabCmd = m.boardView.Update(msg)
	case tabPractice:
		m.practView, tabCmd = m.practView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

func isPlayMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case playview.StartedMsg, playview.FollowedMsg, playview.SummaryMsg,
		playview.ResultMsg, playview.SubmittedMsg, playview.ResetMsg, playview.OpenedMsg:
		return true
	}
	return playview.IsTick(msg)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.onboarding:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.renderOnboarding())
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabPlay:
		return m.playView.View()
	case tabLeaderboard:
		return m.boardView.View()
	case tabPractice:
		return m.practView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := theme.Title.Render("wikigo") + "  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return theme.Bar.Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := theme.Muted.Render(m.prefs.DisplayName()) + "  " + m.status
	right := theme.Muted.Render("?:help  shift+tab:switch  ctrl+p:palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return "\n" + theme.Bar.Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

func (m Model) renderOnboarding() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Welcome to wikigo") + "\n\n")
	sb.WriteString("Get from the start article to the goal article by following links.\n")
	sb.WriteString("Fewer clicks and less time mean a higher score.\n\n")
	sb.WriteString(theme.Muted.Render("ctrl+d") + "  today's daily challenge\n")
	sb.WriteString(theme.Muted.Render("ctrl+r") + "  a random pair\n")
	sb.WriteString(theme.Muted.Render("enter ") + "  follow the selected link\n")
	sb.WriteString(theme.Muted.Render(":     ") + "  command palette, try `user <name>`\n\n")
	sb.WriteString(theme.Muted.Render("press any key to begin"))
	return theme.PaneActive.Width(min(m.width-4, 72)).Render(sb.String())
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	arg := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "play:daily":
		m.activeTab = tabPlay
		cmd := m.playView.Start(gamedto.StartInput{Mode: "daily"})
		return m, cmd
	case "play:random":
		m.activeTab = tabPlay
		cmd := m.playView.Start(gamedto.StartInput{Mode: "random"})
		return m, cmd
	case "play:zen":
		if arg == "" {
			m.status = "usage: play:zen <id>"
			return m, nil
		}
		m.activeTab = tabPlay
		cmd := m.playView.Start(gamedto.StartInput{Mode: "zen", PracticeGameID: arg})
		return m, cmd
	case "play:challenge":
		if arg == "" {
			m.status = "usage: play:challenge <url>"
			return m, nil
		}
		m.activeTab = tabPlay
		cmd := m.playView.Start(gamedto.StartInput{Mode: "challenge", Challenge: arg})
		return m, cmd
	case "reset":
		m.activeTab = tabPlay
		cmd := m.playView.Reset()
		return m, cmd
	case "open":
		return m, m.playView.OpenInBrowser()
	case "theme":
		name, err := prefs.ParseTheme(arg)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.prefs.Theme = name
		theme.Use(name)
		m.status = fmt.Sprintf("theme: %s", name)
		cmd := tea.Batch(m.savePrefsCmd(), m.propagateSize())
		return m, cmd
	case "user":
		if arg == "" {
			m.status = "usage: user <name>"
			return m, nil
		}
		m.prefs.Username = arg
		m.boardView.SetUsername(arg)
		m.status = "playing as " + arg
		cmd := tea.Batch(m.savePrefsCmd(), m.practView.SetUsername(arg), m.boardView.Refresh())
		return m, cmd
	case "leaderboard":
		m.activeTab = tabLeaderboard
		cmd := m.boardView.Refresh()
		return m, cmd
	case "practice":
		m.activeTab = tabPractice
		return m, nil
	}
	m.status = "unknown command: " + parts[0]
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewCapturing reports whether the active tab is taking free text, in
// which case global key bindings must yield.
func (m Model) subViewCapturing() bool {
	switch m.activeTab {
	case tabPlay:
		return m.playView.Capturing()
	case tabPractice:
		return m.practView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() tea.Cmd {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	var cmds [3]tea.Cmd
	m.playView, cmds[0] = m.playView.Update(sz)
	m.boardView, cmds[1] = m.boardView.Update(sz)
	m.practView, cmds[2] = m.practView.Update(sz)
	return tea.Batch(cmds[:]...)
}

func (m Model) savePrefsCmd() tea.Cmd {
	store, p := m.store, m.prefs
	return func() tea.Msg {
		return prefsSavedMsg{err: store.Save(p)}
	}
}
