package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	lbdto "wikigo/internal/modules/leaderboard/dto"
	"wikigo/internal/platform/day"
	apperrors "wikigo/internal/platform/errors"
	"wikigo/internal/ui/theme"
)

const pageSize = 20

type Port interface {
	Leaderboard(ctx context.Context, date string, limit, offset int) ([]lbdto.EntryOutput, error)
	Daily(ctx context.Context, date string) (lbdto.DailyOutput, error)
	DailyStats(ctx context.Context, date string) (lbdto.DailyStatsOutput, error)
}

type LoadedMsg struct {
	Date    string
	Daily   *lbdto.DailyOutput
	Stats   lbdto.DailyStatsOutput
	Entries []lbdto.EntryOutput
	Err     error
}

type Model struct {
	port     Port
	date     time.Time
	loaded   LoadedMsg
	viewport viewport.Model
	spinner  spinner.Model
	loading  bool
	username string
	width    int
	height   int
}

func New(port Port, today time.Time) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{port: port, date: day.Of(today), viewport: viewport.New(0, 0), spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// SetUsername highlights the player's own row.
func (m *Model) SetUsername(name string) {
	m.username = name
	m.viewport.SetContent(m.render())
}

// Refresh reloads the shown day.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-2, 1)
		m.viewport.SetContent(m.render())
		return m, nil

	case LoadedMsg:
		if msg.Date != day.Format(m.date) {
			return m, nil
		}
		m.loading = false
		m.loaded = msg
		m.viewport.SetContent(m.render())
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.date = day.AddDays(m.date, -1)
			cmd := m.Refresh()
			return m, cmd
		case "right", "l":
			m.date = day.AddDays(m.date, 1)
			cmd := m.Refresh()
			return m, cmd
		case "r":
			cmd := m.Refresh()
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := theme.Title.Render("Leaderboard "+day.Format(m.date)) +
		theme.Muted.Render("  ←/→: day  r: refresh")
	if m.loading {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			lipgloss.Place(m.width, max(m.height-2, 1), lipgloss.Center, lipgloss.Center, m.spinner.View()+" Loading…"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View())
}

func (m Model) render() string {
	l := m.loaded
	if l.Err != nil {
		return theme.Hot.Render("Could not load leaderboard: " + l.Err.Error())
	}
	var sb strings.Builder
	if l.Daily != nil {
		sb.WriteString(fmt.Sprintf("%s %s → %s\n", theme.Muted.Render("challenge:"), l.Daily.StartTitle, l.Daily.GoalTitle))
		if l.Daily.Hint != "" {
			sb.WriteString(theme.Muted.Render("hint:      ") + l.Daily.Hint + "\n")
		}
	} else {
		sb.WriteString(theme.Muted.Render("no daily challenge set for this day") + "\n")
	}
	if l.Stats.CompletionCount > 0 {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%s completions  avg %.1f moves  avg %.0fs  avg score %.0f",
			humanize.Comma(int64(l.Stats.CompletionCount)), l.Stats.AverageMoves, l.Stats.AverageTimeMs/1000, l.Stats.AverageScore)) + "\n")
	}
	sb.WriteString("\n")
	if len(l.Entries) == 0 {
		sb.WriteString(theme.Muted.Render("nobody has finished yet"))
		return sb.String()
	}
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-6s %-24s %6s %6s %7s", "rank", "player", "score", "moves", "time")) + "\n")
	for _, e := range l.Entries {
		row := fmt.Sprintf("%-6s %-24s %6d %6d %6ds", humanize.Ordinal(e.Position), e.Username, e.Score, e.Moves, e.TimeMs/1000)
		if m.username != "" && strings.EqualFold(e.Username, m.username) {
			row = theme.Good.Render(row)
		}
		sb.WriteString(row + "\n")
	}
	return sb.String()
}

func (m Model) loadCmd() tea.Cmd {
	port, date := m.port, day.Format(m.date)
	return func() tea.Msg {
		out := LoadedMsg{Date: date}
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			daily, err := port.Daily(ctx, date)
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			out.Daily = &daily
			return nil
		})
		g.Go(func() error {
			var err error
			out.Stats, err = port.DailyStats(ctx, date)
			return err
		})
		g.Go(func() error {
			var err error
			out.Entries, err = port.Leaderboard(ctx, date, pageSize, 0)
			return err
		})
		out.Err = g.Wait()
		return out
	}
}
