package practice

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	practicedto "wikigo/internal/modules/practice/dto"
	"wikigo/internal/ui/theme"
)

const listLimit = 200

type Port interface {
	List(ctx context.Context, username string, limit int) ([]practicedto.GameOutput, error)
	Solution(ctx context.Context, username, id string) (practicedto.GameOutput, error)
}

type GamesLoadedMsg struct {
	Games []practicedto.GameOutput
	Err   error
}

type SolutionMsg struct {
	Game practicedto.GameOutput
	Err  error
}

// PlayMsg asks the root model to start a zen session for a practice game.
type PlayMsg struct {
	ID string
}

type gameItem struct {
	game practicedto.GameOutput
}

func (i gameItem) Title() string {
	return fmt.Sprintf("%s → %s", i.game.StartTitle, i.game.GoalTitle)
}

func (i gameItem) Description() string {
	return fmt.Sprintf("%s  added %s", i.game.Status, humanize.Time(i.game.CreatedAt))
}

func (i gameItem) FilterValue() string { return i.game.StartTitle + " " + i.game.GoalTitle }

type Model struct {
	port     Port
	username string
	list     list.Model
	detail   viewport.Model
	solution *practicedto.GameOutput
	status   string
	width    int
	height   int
}

func New(port Port, username string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Current.Accent).BorderForeground(theme.Current.Accent)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Current.Link).BorderForeground(theme.Current.Accent)
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Practice"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return Model{port: port, username: username, list: l, detail: viewport.New(0, 0)}
}

func (m Model) Init() tea.Cmd { return m.loadCmd() }

func (m *Model) SetUsername(name string) tea.Cmd {
	m.username = name
	return m.loadCmd()
}

func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		listW := m.width / 2
		m.list.SetSize(listW, m.height)
		m.detail.Width = m.width - listW - 4
		m.detail.Height = max(m.height-4, 1)
		m.detail.SetContent(m.renderDetail())
		return m, nil

	case GamesLoadedMsg:
		if msg.Err != nil {
			m.status = "practice: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Games))
		for i, g := range msg.Games {
			items[i] = gameItem{game: g}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.status = fmt.Sprintf("%d practice games", len(msg.Games))

	case SolutionMsg:
		if msg.Err != nil {
			m.status = "solution: " + msg.Err.Error()
			return m, nil
		}
		m.solution = &msg.Game
		m.detail.SetContent(m.renderDetail())
		return m, m.loadCmd()

	case tea.KeyMsg:
		if !m.Filtering() {
			switch msg.String() {
			case "enter":
				if item, ok := m.list.SelectedItem().(gameItem); ok {
					id := item.game.ID
					return m, func() tea.Msg { return PlayMsg{ID: id} }
				}
				return m, nil
			case "v":
				if item, ok := m.list.SelectedItem().(gameItem); ok {
					return m, m.solutionCmd(item.game.ID)
				}
				return m, nil
			}
		}
	}

	prev := m.list.Index()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	if m.list.Index() != prev {
		m.solution = nil
	}
	m.detail.SetContent(m.renderDetail())
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width / 2
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := theme.Pane.Width(m.width - listW - 2).Height(max(m.height-2, 1)).Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) Status() string { return m.status }

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(gameItem)
	if !ok {
		return theme.Muted.Render("No practice games yet. Seed some with `wikigo practice seed <file>`.")
	}
	g := item.game
	if m.solution != nil && m.solution.ID == g.ID {
		g = *m.solution
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(g.StartTitle+" → "+g.GoalTitle) + "\n\n")
	sb.WriteString(theme.Muted.Render("status: ") + g.Status + "\n")
	if len(g.Solution) > 0 {
		sb.WriteString("\n" + theme.Muted.Render("solution:") + "\n")
		for i, title := range g.Solution {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i, title))
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: play  v: reveal solution  /: filter"))
	return sb.String()
}

func (m Model) loadCmd() tea.Cmd {
	port, user := m.port, m.username
	return func() tea.Msg {
		games, err := port.List(context.Background(), user, listLimit)
		return GamesLoadedMsg{Games: games, Err: err}
	}
}

func (m Model) solutionCmd(id string) tea.Cmd {
	port, user := m.port, m.username
	return func() tea.Msg {
		game, err := port.Solution(context.Background(), user, id)
		return SolutionMsg{Game: game, Err: err}
	}
}
