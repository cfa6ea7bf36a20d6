package play

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	gamedto "wikigo/internal/modules/game/dto"
	wikidto "wikigo/internal/modules/wiki/dto"
	apperrors "wikigo/internal/platform/errors"
	"wikigo/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type GamePort interface {
	Start(ctx context.Context, input gamedto.StartInput) (gamedto.PlayOutput, error)
	Follow(ctx context.Context, generation uint64, target string) (gamedto.PlayOutput, error)
	Reset(ctx context.Context) (gamedto.SessionOutput, error)
	Result(ctx context.Context) (gamedto.ResultOutput, error)
	Submit(ctx context.Context) (gamedto.SubmitOutput, error)
}

type WikiPort interface {
	Summary(ctx context.Context, title string) (*wikidto.SummaryOutput, error)
	Open(ctx context.Context, title string) (string, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type StartedMsg struct {
	Out gamedto.PlayOutput
	Err error
}

// FollowedMsg carries the generation the click was made in so results for
// an abandoned session can be dropped.
type FollowedMsg struct {
	Generation uint64
	Target     string
	Out        gamedto.PlayOutput
	Err        error
}

type SummaryMsg struct {
	Title   string
	Summary *wikidto.SummaryOutput
	Err     error
}

type ResultMsg struct {
	Generation uint64
	Result     gamedto.ResultOutput
	Err        error
}

type SubmittedMsg struct {
	Generation uint64
	Out        gamedto.SubmitOutput
	Err        error
}

type ResetMsg struct {
	Session gamedto.SessionOutput
	Err     error
}

type OpenedMsg struct {
	URL string
	Err error
}

type tickMsg struct {
	generation uint64
	at         time.Time
}

// IsTick reports whether msg is this view's elapsed-time tick.
func IsTick(msg tea.Msg) bool {
	_, ok := msg.(tickMsg)
	return ok
}

// ─── list item ───────────────────────────────────────────────────────────────

type linkItem string

func (i linkItem) Title() string       { return string(i) }
func (i linkItem) Description() string { return "" }
func (i linkItem) FilterValue() string { return string(i) }

// ─── model ───────────────────────────────────────────────────────────────────

type phase int

const (
	phaseSetup phase = iota
	phasePlaying
	phaseWon
)

type Model struct {
	game GamePort
	wiki WikiPort

	phase    phase
	inputs   []textinput.Model
	focus    int
	session  gamedto.SessionOutput
	summary  *wikidto.SummaryOutput
	result   *gamedto.ResultOutput
	submit   *gamedto.SubmitOutput
	links    list.Model
	article  viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	fetching bool
	pending  string
	now      time.Time
	status   string
	width    int
	height   int
}

func New(game GamePort, wiki WikiPort) Model {
	start := textinput.New()
	start.Placeholder = "Start article (blank for random)"
	start.CharLimit = 255
	start.Focus()
	goal := textinput.New()
	goal.Placeholder = "Goal article (blank for random)"
	goal.CharLimit = 255

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Current.Link).BorderForeground(theme.Current.Accent)
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Links"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Current.Accent)

	m := Model{
		game:    game,
		wiki:    wiki,
		inputs:  []textinput.Model{start, goal},
		links:   l,
		article: viewport.New(0, 0),
		spinner: sp,
		status:  "enter titles, or ctrl+d for the daily challenge",
	}
	m.renderer = newRenderer(0)
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case StartedMsg:
		m.fetching = false
		if msg.Err != nil {
			m.status = "could not start: " + msg.Err.Error()
			return m, nil
		}
		m.phase = phasePlaying
		m.result, m.submit, m.summary = nil, nil, nil
		m.session = msg.Out.Session
		m.now = msg.Out.Session.StartedAt
		m.status = fmt.Sprintf("%s → %s", m.session.StartTitle, m.session.GoalTitle)
		cmds = append(cmds, m.setArticle(msg.Out.Article), m.tickCmd())

	case FollowedMsg:
		if msg.Generation != m.session.Generation {
			return m, nil
		}
		m.fetching, m.pending = false, ""
		if msg.Err != nil {
			if !errors.Is(msg.Err, apperrors.ErrStaleResult) {
				m.status = fmt.Sprintf("%s: %v", msg.Target, msg.Err)
			}
			return m, nil
		}
		m.session = msg.Out.Session
		if m.session.Won() {
			m.phase = phaseWon
			m.status = "goal reached"
			return m, tea.Batch(m.resultCmd(), m.submitCmd())
		}
		m.status = fmt.Sprintf("%s → %s", m.session.StartTitle, m.session.GoalTitle)
		cmds = append(cmds, m.setArticle(msg.Out.Article))

	case SummaryMsg:
		if msg.Title != m.session.Current {
			return m, nil
		}
		m.summary = msg.Summary
		m.article.SetContent(m.renderArticle())
		m.article.GotoTop()

	case ResultMsg:
		if msg.Generation != m.session.Generation {
			return m, nil
		}
		if msg.Err != nil {
			m.status = "result: " + msg.Err.Error()
			return m, nil
		}
		m.result = &msg.Result

	case SubmittedMsg:
		if msg.Generation != m.session.Generation {
			return m, nil
		}
		if msg.Err != nil {
			m.submit = &gamedto.SubmitOutput{Status: gamedto.SubmissionFailed, Message: msg.Err.Error()}
			return m, nil
		}
		m.submit = &msg.Out

	case ResetMsg:
		m.fetching, m.pending = false, ""
		if msg.Err != nil {
			m.status = "reset: " + msg.Err.Error()
			return m, nil
		}
		m.session = msg.Session
		m.phase = phaseSetup
		m.result, m.submit, m.summary = nil, nil, nil
		m.links.SetItems(nil)
		m.status = "enter titles, or ctrl+d for the daily challenge"
		cmd := m.focusInput(0)
		return m, cmd

	case OpenedMsg:
		if msg.Err != nil {
			m.status = "open: " + msg.Err.Error()
		} else {
			m.status = "opened " + msg.URL
		}

	case tickMsg:
		if m.phase != phasePlaying || msg.generation != m.session.Generation {
			return m, nil
		}
		m.now = msg.at
		return m, m.tickCmd()

	case spinner.TickMsg:
		if m.fetching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch m.phase {
		case phaseSetup:
			return m.updateSetup(msg)
		case phasePlaying:
			return m.updatePlaying(msg)
		case phaseWon:
			switch msg.String() {
			case "enter", "n":
				return m, m.Reset()
			case "r":
				if m.submit != nil && m.submit.Status == gamedto.SubmissionFailed {
					m.submit = nil
					return m, m.submitCmd()
				}
			}
			return m, nil
		}
	}

	if m.phase == phasePlaying {
		var cmd tea.Cmd
		m.article, cmd = m.article.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateSetup(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.fetching {
		return m, nil
	}
	switch msg.String() {
	case "tab", "down", "up":
		cmd := m.focusInput((m.focus + 1) % len(m.inputs))
		return m, cmd
	case "ctrl+d":
		cmd := m.Start(gamedto.StartInput{Mode: "daily"})
		return m, cmd
	case "ctrl+r":
		cmd := m.Start(gamedto.StartInput{Mode: "random"})
		return m, cmd
	case "enter":
		cmd := m.Start(gamedto.StartInput{
			Mode:  "random",
			Start: strings.TrimSpace(m.inputs[0].Value()),
			Goal:  strings.TrimSpace(m.inputs[1].Value()),
		})
		return m, cmd
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updatePlaying(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.links.FilterState() != list.Filtering {
		switch msg.String() {
		case "enter":
			item, ok := m.links.SelectedItem().(linkItem)
			if !ok || m.fetching {
				return m, nil
			}
			m.fetching, m.pending = true, string(item)
			return m, tea.Batch(m.followCmd(m.session.Generation, string(item)), m.spinner.Tick)
		case "o":
			return m, m.OpenInBrowser()
		case "pgdown", "pgup", "J", "K":
			var cmd tea.Cmd
			m.article, cmd = m.article.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.links, cmd = m.links.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	switch m.phase {
	case phasePlaying:
		return m.viewPlaying()
	case phaseWon:
		return m.viewWon()
	default:
		return m.viewSetup()
	}
}

// Start begins a new session. It is ignored while a request is in flight.
func (m *Model) Start(input gamedto.StartInput) tea.Cmd {
	if m.fetching {
		return nil
	}
	m.fetching = true
	m.status = "finding articles…"
	game := m.game
	return tea.Batch(func() tea.Msg {
		out, err := game.Start(context.Background(), input)
		return StartedMsg{Out: out, Err: err}
	}, m.spinner.Tick)
}

func (m Model) Reset() tea.Cmd {
	game := m.game
	return func() tea.Msg {
		session, err := game.Reset(context.Background())
		return ResetMsg{Session: session, Err: err}
	}
}

func (m Model) OpenInBrowser() tea.Cmd {
	title := m.session.Current
	if title == "" || m.wiki == nil {
		return nil
	}
	wiki := m.wiki
	return func() tea.Msg {
		url, err := wiki.Open(context.Background(), title)
		return OpenedMsg{URL: url, Err: err}
	}
}

// Capturing reports whether typed keys belong to this view, so the root
// model must not treat them as global shortcuts.
func (m Model) Capturing() bool {
	return m.phase == phaseSetup || m.links.FilterState() == list.Filtering
}

func (m Model) Status() string { return m.status }

func (m Model) Session() gamedto.SessionOutput { return m.session }

// ─── private ─────────────────────────────────────────────────────────────────

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(theme.Current.Glamour),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

func (m *Model) resize() {
	linksW := m.width * 4 / 10
	articleW := m.width - linksW
	bodyH := m.height - 4
	if bodyH < 3 {
		bodyH = 3
	}
	m.links.SetSize(linksW, bodyH)
	m.article.Width = articleW - 4
	m.article.Height = bodyH - 2
	m.renderer = newRenderer(articleW - 6)
	for i := range m.inputs {
		m.inputs[i].Width = max(20, m.width/2)
	}
	if m.phase == phasePlaying {
		m.article.SetContent(m.renderArticle())
	}
}

func (m *Model) focusInput(idx int) tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = idx
	return m.inputs[idx].Focus()
}

func (m *Model) setArticle(article *wikidto.ArticleOutput) tea.Cmd {
	if article == nil {
		return nil
	}
	var items []list.Item
	for title := range article.Links {
		items = append(items, linkItem(title))
	}
	m.links.ResetFilter()
	m.links.Title = fmt.Sprintf("Links on %s (%d)", article.Title, article.LinkCount)
	m.summary = nil
	m.article.SetContent(m.renderArticle())
	return tea.Batch(m.links.SetItems(items), m.summaryCmd(article.Title))
}

func (m Model) elapsed() time.Duration {
	if m.session.Won() || m.now.IsZero() {
		return time.Duration(m.session.ElapsedMs) * time.Millisecond
	}
	return max(m.now.Sub(m.session.StartedAt), 0)
}

func (m Model) renderArticle() string {
	var sb strings.Builder
	sb.WriteString("# " + m.session.Current + "\n\n")
	switch {
	case m.summary == nil:
		sb.WriteString("_Loading summary…_\n")
	default:
		if m.summary.Description != "" {
			sb.WriteString("*" + m.summary.Description + "*\n\n")
		}
		sb.WriteString(m.summary.Extract + "\n")
	}
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(sb.String()); err == nil {
			return rendered
		}
	}
	return sb.String()
}

func (m Model) header() string {
	s := m.session
	clock := fmt.Sprintf("%02d:%02d", int(m.elapsed().Minutes()), int(m.elapsed().Seconds())%60)
	parts := []string{
		theme.Title.Render(s.StartTitle + " → " + s.GoalTitle),
		theme.Muted.Render(fmt.Sprintf("moves %d", s.MoveCount)),
		theme.Hot.Render("⏱ " + clock),
	}
	if s.Challenge != nil {
		parts = append(parts, theme.Muted.Render(fmt.Sprintf("vs %s (%d)", s.Challenge.Username, s.Challenge.Score)))
	}
	return strings.Join(parts, "  ")
}

func (m Model) breadcrumb() string {
	history := m.session.History
	if len(history) > 6 {
		history = append([]string{"…"}, history[len(history)-5:]...)
	}
	return theme.Muted.Render(strings.Join(history, " › "))
}

func (m Model) viewSetup() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("New game") + "\n\n")
	labels := []string{"Start", "Goal "}
	for i, in := range m.inputs {
		sb.WriteString(theme.Muted.Render(labels[i]+"  ") + in.View() + "\n")
	}
	sb.WriteString("\n")
	if m.fetching {
		sb.WriteString(m.spinner.View() + " " + m.status + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("enter: play  ctrl+r: random pair  ctrl+d: daily challenge") + "\n")
	}
	return lipgloss.Place(m.width, max(m.height, 1), lipgloss.Center, lipgloss.Center, theme.Pane.Render(sb.String()))
}

func (m Model) viewPlaying() string {
	linksW := m.width * 4 / 10
	articleW := m.width - linksW
	bodyH := max(m.height-4, 3)

	linksPane := lipgloss.NewStyle().Width(linksW).Height(bodyH).Render(m.links.View())
	articlePane := theme.Pane.Width(articleW - 2).Height(bodyH - 2).Render(m.article.View())
	footer := m.breadcrumb()
	if m.fetching {
		footer = m.spinner.View() + " opening " + m.pending + "…"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		lipgloss.JoinHorizontal(lipgloss.Top, linksPane, articlePane),
		footer,
	)
}

func (m Model) viewWon() string {
	s := m.session
	var sb strings.Builder
	sb.WriteString(theme.Good.Render("You reached "+s.GoalTitle+"!") + "\n\n")
	if r := m.result; r != nil {
		b := r.Breakdown
		sb.WriteString(fmt.Sprintf("%s %s\n", theme.Muted.Render("base          "), humanize.Comma(int64(b.Base))))
		sb.WriteString(fmt.Sprintf("%s -%d (%d %s)\n", theme.Muted.Render("moves         "), b.MovePenalty, s.MoveCount, pluralMoves(s.MoveCount)))
		sb.WriteString(fmt.Sprintf("%s -%d (%ds)\n", theme.Muted.Render("time          "), b.TimePenalty, b.ElapsedSeconds))
		sb.WriteString(fmt.Sprintf("%s %s\n\n", theme.Muted.Render("score         "), theme.Title.Render(humanize.Comma(int64(b.Final)))))
		if c := r.Comparison; c != nil {
			line := fmt.Sprintf("vs %s's %d: you %s", c.Challenger.Username, c.Challenger.Score, c.Outcome)
			if c.Outcome == "won" {
				sb.WriteString(theme.Good.Render(line) + "\n\n")
			} else {
				sb.WriteString(theme.Hot.Render(line) + "\n\n")
			}
		}
		sb.WriteString(theme.Muted.Render("share: ") + theme.Link.Render(r.ShareURL) + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("computing score…") + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("path: ") + strings.Join(s.History, " › ") + "\n\n")
	sb.WriteString(m.submissionLine() + "\n\n")
	hint := "enter: new game"
	if m.submit != nil && m.submit.Status == gamedto.SubmissionFailed {
		hint = "r: retry submission · " + hint
	}
	sb.WriteString(theme.Muted.Render(hint))
	return lipgloss.Place(m.width, max(m.height, 1), lipgloss.Center, lipgloss.Center, theme.Pane.Render(sb.String()))
}

func (m Model) submissionLine() string {
	if m.submit == nil {
		return theme.Muted.Render("saving result…")
	}
	switch m.submit.Status {
	case gamedto.SubmissionSubmitted:
		line := "submitted to today's leaderboard"
		if m.submit.GlobalRank != nil {
			line += ", currently " + humanize.Ordinal(*m.submit.GlobalRank)
		}
		return theme.Good.Render(line)
	case gamedto.SubmissionCompleted:
		return theme.Good.Render("practice game completed")
	case gamedto.SubmissionFailed:
		return theme.Hot.Render(m.submit.Message)
	default:
		return theme.Muted.Render("saved to your run journal")
	}
}

func pluralMoves(n int) string {
	if n == 1 {
		return "move"
	}
	return "moves"
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) tickCmd() tea.Cmd {
	gen := m.session.Generation
	return tea.Tick(time.Second, func(at time.Time) tea.Msg {
		return tickMsg{generation: gen, at: at.UTC()}
	})
}

func (m Model) followCmd(generation uint64, target string) tea.Cmd {
	game := m.game
	return func() tea.Msg {
		out, err := game.Follow(context.Background(), generation, target)
		return FollowedMsg{Generation: generation, Target: target, Out: out, Err: err}
	}
}

func (m Model) summaryCmd(title string) tea.Cmd {
	if m.wiki == nil {
		return nil
	}
	wiki := m.wiki
	return func() tea.Msg {
		summary, err := wiki.Summary(context.Background(), title)
		return SummaryMsg{Title: title, Summary: summary, Err: err}
	}
}

func (m Model) resultCmd() tea.Cmd {
	game, gen := m.game, m.session.Generation
	return func() tea.Msg {
		result, err := game.Result(context.Background())
		return ResultMsg{Generation: gen, Result: result, Err: err}
	}
}

func (m Model) submitCmd() tea.Cmd {
	game, gen := m.game, m.session.Generation
	return func() tea.Msg {
		out, err := game.Submit(context.Background())
		return SubmittedMsg{Generation: gen, Out: out, Err: err}
	}
}
