package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"wikigo/internal/modules/game/domain"
	"wikigo/internal/modules/game/dto"
	gamein "wikigo/internal/modules/game/port/in"
	"wikigo/internal/modules/game/service"
	leaderboarddto "wikigo/internal/modules/leaderboard/dto"
	leaderboardin "wikigo/internal/modules/leaderboard/port/in"
	practicein "wikigo/internal/modules/practice/port/in"
	wikidto "wikigo/internal/modules/wiki/dto"
	wikiin "wikigo/internal/modules/wiki/port/in"
	"wikigo/internal/platform/day"
	apperrors "wikigo/internal/platform/errors"
	"wikigo/internal/platform/prefs"
)

const randomPairAttempts = 3

type Deps struct {
	Wiki         wikiin.Usecase
	Leaderboard  leaderboardin.Usecase
	Practice     practicein.Usecase
	Preferences  prefs.Store
	ShareBaseURL string
	Logger       hclog.Logger
}

// Interactor owns the single current session. The session value is replaced
// wholesale on every transition.
type Interactor struct {
	svc       *service.GameService
	wiki      wikiin.Usecase
	board     leaderboardin.Usecase
	practice  practicein.Usecase
	prefs     prefs.Store
	shareBase string
	log       hclog.Logger

	mu         sync.Mutex
	current    *domain.Session
	generation uint64
	// links holds the lower-cased link titles of the current article.
	links map[string]struct{}

	submitMu  sync.Mutex
	submitted map[string]dto.SubmitOutput
	journaled map[string]string
}

func NewInteractor(svc *service.GameService, deps Deps) gamein.Usecase {
	if deps.Preferences == nil {
		deps.Preferences = prefs.NewMemoryStore(prefs.Preferences{})
	}
	if deps.Logger == nil {
		deps.Logger = hclog.NewNullLogger()
	}
	return &Interactor{
		svc:       svc,
		wiki:      deps.Wiki,
		board:     deps.Leaderboard,
		practice:  deps.Practice,
		prefs:     deps.Preferences,
		shareBase: deps.ShareBaseURL,
		log:       deps.Logger.Named("game"),
		submitted: map[string]dto.SubmitOutput{},
		journaled: map[string]string{},
	}
}

type plan struct {
	mode           domain.Mode
	start          string
	goal           string
	challenge      *domain.ChallengeDescriptor
	practiceGameID string
	dailyDate      time.Time
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.PlayOutput, error) {
	mode, err := domain.ParseMode(input.Mode)
	if err != nil {
		return dto.PlayOutput{}, err
	}
	p, err := i.resolve(ctx, mode, input)
	if err != nil {
		return dto.PlayOutput{}, err
	}
	article, err := i.wiki.Article(ctx, p.start)
	if err != nil {
		return dto.PlayOutput{}, err
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.generation++
	session := i.svc.NewSession(i.generation, p.mode)
	session.Challenge = p.challenge
	session.PracticeGameID = p.practiceGameID
	session.DailyDate = p.dailyDate
	session, err = i.svc.Begin(session, p.start, p.goal)
	if err != nil {
		return dto.PlayOutput{}, err
	}
	i.current = &session
	i.links = linkSet(article)
	return dto.PlayOutput{Session: toSession(session, i.svc.Now()), Article: &article}, nil
}

// resolve turns the requested mode into a validated start/goal pair.
func (i *Interactor) resolve(ctx context.Context, mode domain.Mode, input dto.StartInput) (plan, error) {
	p := plan{mode: mode, start: strings.TrimSpace(input.Start), goal: strings.TrimSpace(input.Goal)}
	switch mode {
	case domain.ModeDaily:
		if i.board == nil {
			return plan{}, fmt.Errorf("%w: daily challenges are not available", apperrors.ErrInvalidInput)
		}
		daily, err := i.board.Daily(ctx, input.Date)
		if err != nil {
			return plan{}, err
		}
		date, err := day.Parse(daily.Date)
		if err != nil {
			return plan{}, err
		}
		p.start, p.goal, p.dailyDate = daily.StartTitle, daily.GoalTitle, date
	case domain.ModeZen:
		if i.practice == nil {
			return plan{}, fmt.Errorf("%w: practice games are not available", apperrors.ErrInvalidInput)
		}
		game, err := i.practice.GetGame(ctx, i.username(), input.PracticeGameID)
		if err != nil {
			return plan{}, err
		}
		p.start, p.goal, p.practiceGameID = game.StartTitle, game.GoalTitle, game.ID
	case domain.ModeChallenge:
		challenge, ok := domain.Deserialize(input.Challenge)
		if !ok {
			return plan{}, fmt.Errorf("%w: challenge link is incomplete", apperrors.ErrInvalidInput)
		}
		p.start, p.goal, p.challenge = challenge.Start, challenge.End, &challenge
	case domain.ModeRandom:
		return i.resolveRandom(ctx, p, input.Category)
	}

	pair, err := i.wiki.ValidatePair(ctx, p.start, p.goal)
	if err != nil {
		return plan{}, err
	}
	p.start, p.goal = pair.Start.CanonicalTitle, pair.Goal.CanonicalTitle
	return p, nil
}

// resolveRandom fills any missing title with a random article. Only picks
// made here are retried; titles supplied by the player are validated once.
func (i *Interactor) resolveRandom(ctx context.Context, p plan, category string) (plan, error) {
	fixedStart, fixedGoal := p.start != "", p.goal != ""
	var lastErr error
	for attempt := 0; attempt < randomPairAttempts; attempt++ {
		start, goal := p.start, p.goal
		var err error
		if !fixedStart {
			if start, err = i.wiki.RandomTitle(ctx, category); err != nil {
				return plan{}, err
			}
		}
		if !fixedGoal {
			if goal, err = i.wiki.RandomTitle(ctx, category); err != nil {
				return plan{}, err
			}
		}
		pair, err := i.wiki.ValidatePair(ctx, start, goal)
		if err == nil {
			p.start, p.goal = pair.Start.CanonicalTitle, pair.Goal.CanonicalTitle
			return p, nil
		}
		lastErr = err
		if (fixedStart && fixedGoal) || !errors.Is(err, apperrors.ErrInvalidInput) {
			break
		}
		i.log.Debug("random pair rejected, retrying", "start", start, "goal", goal, "error", err)
	}
	return plan{}, lastErr
}

func (i *Interactor) Navigate(ctx context.Context, input dto.NavigateInput) (dto.PlayOutput, error) {
	i.mu.Lock()
	if i.current == nil {
		i.mu.Unlock()
		return dto.PlayOutput{}, apperrors.ErrNoActiveSession
	}
	snapshot := *i.current
	generation := i.generation
	links := i.links
	i.mu.Unlock()

	if input.Generation != 0 && input.Generation != generation {
		return dto.PlayOutput{}, apperrors.ErrStaleResult
	}
	if snapshot.Status != domain.StatusActive {
		return dto.PlayOutput{}, fmt.Errorf("%w: session is %s", apperrors.ErrInvalidTransition, snapshot.Status)
	}
	target, err := i.wiki.ParseTitle(input.Target)
	if err != nil {
		return dto.PlayOutput{}, err
	}
	if _, ok := links[strings.ToLower(target)]; !ok {
		return dto.PlayOutput{}, fmt.Errorf("%w: %s is not linked from %s", apperrors.ErrNotArticle, target, snapshot.Current())
	}
	clickedAt := i.svc.Now()

	var article *wikidto.ArticleOutput
	title := target
	if !strings.EqualFold(target, snapshot.GoalTitle) {
		fetched, err := i.wiki.Article(ctx, target)
		if err != nil {
			return dto.PlayOutput{}, err
		}
		title = fetched.Title
		article = &fetched
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.current == nil || i.generation != generation || i.current.ID != snapshot.ID {
		return dto.PlayOutput{}, apperrors.ErrStaleResult
	}
	next, err := i.svc.Move(*i.current, title, clickedAt)
	if err != nil {
		return dto.PlayOutput{}, err
	}
	i.current = &next
	if next.Status == domain.StatusWon {
		article = nil
		i.links = nil
	} else if article != nil {
		i.links = linkSet(*article)
	}
	return dto.PlayOutput{Session: toSession(next, i.svc.Now()), Article: article}, nil
}

func (i *Interactor) Current(_ context.Context) (dto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.current == nil {
		return dto.SessionOutput{}, apperrors.ErrNoActiveSession
	}
	return toSession(*i.current, i.svc.Now()), nil
}

func (i *Interactor) Reset(_ context.Context) (dto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	mode := domain.ModeRandom
	if i.current != nil {
		mode = i.current.Mode
	}
	i.generation++
	fresh := i.svc.NewSession(i.generation, mode)
	i.current = &fresh
	i.links = nil
	return toSession(fresh, i.svc.Now()), nil
}

func (i *Interactor) Result(_ context.Context) (dto.ResultOutput, error) {
	session, err := i.wonSession()
	if err != nil {
		return dto.ResultOutput{}, err
	}
	share, err := domain.NewChallenge(session, i.username())
	if err != nil {
		return dto.ResultOutput{}, err
	}
	link := domain.ShareURL(i.shareBase, share)
	out := dto.ResultOutput{
		Session:   toSession(session, i.svc.Now()),
		Breakdown: toScore(domain.ScoreBreakdown(session.MoveCount(), session.FrozenElapsedMs)),
		Share:     toChallenge(share),
		ShareURL:  link,
		ShareText: domain.ShareText(share, link),
	}
	if session.Challenge != nil {
		out.Comparison = &dto.ComparisonOutput{
			Challenger: toChallenge(*session.Challenge),
			Score:      session.FinalScore,
			Outcome:    string(domain.CompareOutcome(session.FinalScore, session.Challenge.Score)),
		}
	}
	return out, nil
}

func (i *Interactor) SubmitResult(ctx context.Context) (dto.SubmitOutput, error) {
	session, err := i.wonSession()
	if err != nil {
		return dto.SubmitOutput{}, err
	}

	i.submitMu.Lock()
	defer i.submitMu.Unlock()
	if out, ok := i.submitted[session.ID]; ok {
		return out, nil
	}

	username := i.username()
	out := dto.SubmitOutput{Status: dto.SubmissionSkipped}
	switch session.Mode {
	case domain.ModeDaily:
		out = i.submitDaily(ctx, session, username)
	case domain.ModeZen:
		out = i.completePractice(ctx, session, username)
	}

	out.JournalPath = i.journal(ctx, session, username, out.Status)
	// Failed outcomes stay uncached so the player can retry.
	if out.Status != dto.SubmissionFailed {
		i.submitted[session.ID] = out
	}
	return out, nil
}

// journal writes the run note once per session. Callers hold submitMu.
func (i *Interactor) journal(ctx context.Context, session domain.Session, username, status string) string {
	if path, ok := i.journaled[session.ID]; ok {
		return path
	}
	outcome := ""
	if session.Challenge != nil {
		outcome = string(domain.CompareOutcome(session.FinalScore, session.Challenge.Score))
	}
	path, err := i.svc.Record(ctx, domain.NewRunRecord(session, username, outcome, status))
	if err != nil {
		i.log.Warn("run journal write failed", "session", session.ID, "error", err)
		return ""
	}
	i.journaled[session.ID] = path
	return path
}

func (i *Interactor) submitDaily(ctx context.Context, session domain.Session, username string) dto.SubmitOutput {
	if i.board == nil {
		return dto.SubmitOutput{Status: dto.SubmissionSkipped}
	}
	date := ""
	if !session.DailyDate.IsZero() {
		date = day.Format(session.DailyDate)
	}
	res, err := i.board.Submit(ctx, leaderboarddto.SubmitInput{
		Username: username,
		Date:     date,
		Moves:    session.MoveCount(),
		TimeMs:   session.FrozenElapsedMs,
		Score:    session.FinalScore,
		History:  slices.Clone(session.History),
	})
	if err != nil {
		i.log.Error("leaderboard submission failed", "session", session.ID, "error", err)
		return dto.SubmitOutput{Status: dto.SubmissionFailed, Message: apperrors.ErrSubmissionFailed.Error()}
	}
	return dto.SubmitOutput{Status: dto.SubmissionSubmitted, GlobalRank: res.GlobalRank}
}

func (i *Interactor) completePractice(ctx context.Context, session domain.Session, username string) dto.SubmitOutput {
	if i.practice == nil || session.PracticeGameID == "" {
		return dto.SubmitOutput{Status: dto.SubmissionSkipped}
	}
	if err := i.practice.MarkCompleted(ctx, username, session.PracticeGameID); err != nil {
		i.log.Error("practice completion failed", "session", session.ID, "game", session.PracticeGameID, "error", err)
		return dto.SubmitOutput{Status: dto.SubmissionFailed, Message: err.Error()}
	}
	return dto.SubmitOutput{Status: dto.SubmissionCompleted}
}

func (i *Interactor) DecodeChallenge(raw string) (dto.ChallengeOutput, bool) {
	d, ok := domain.Deserialize(raw)
	if !ok {
		return dto.ChallengeOutput{}, false
	}
	return toChallenge(d), true
}

func (i *Interactor) CompareChallenge(finalScore int, raw string) (dto.ComparisonOutput, bool) {
	d, ok := domain.Deserialize(raw)
	if !ok {
		return dto.ComparisonOutput{}, false
	}
	return dto.ComparisonOutput{
		Challenger: toChallenge(d),
		Score:      finalScore,
		Outcome:    string(domain.CompareOutcome(finalScore, d.Score)),
	}, true
}

func (i *Interactor) Score(moves, elapsedMs int) dto.ScoreOutput {
	return toScore(domain.ScoreBreakdown(moves, elapsedMs))
}

func (i *Interactor) Runs(ctx context.Context, limit int) ([]dto.RunOutput, error) {
	runs, paths, err := i.svc.Runs(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RunOutput, 0, len(runs))
	for idx, run := range runs {
		out = append(out, dto.RunOutput{
			SessionID:  run.SessionID,
			Mode:       string(run.Mode),
			Username:   run.Username,
			Start:      run.Start,
			Goal:       run.Goal,
			History:    run.History,
			Moves:      run.Moves,
			ElapsedMs:  run.ElapsedMs,
			Score:      run.Score,
			WonAt:      run.WonAt,
			Outcome:    run.Outcome,
			Submission: run.Submission,
			Path:       paths[idx],
		})
	}
	return out, nil
}

func (i *Interactor) wonSession() (domain.Session, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.current == nil {
		return domain.Session{}, apperrors.ErrNoActiveSession
	}
	if i.current.Status != domain.StatusWon {
		return domain.Session{}, fmt.Errorf("%w: session is %s", apperrors.ErrInvalidTransition, i.current.Status)
	}
	return *i.current, nil
}

func (i *Interactor) username() string {
	p, err := i.prefs.Load()
	if err != nil {
		i.log.Warn("preferences unavailable", "error", err)
		return prefs.Preferences{}.DisplayName()
	}
	return p.DisplayName()
}

func linkSet(article wikidto.ArticleOutput) map[string]struct{} {
	set := make(map[string]struct{}, article.LinkCount)
	if article.Links == nil {
		return set
	}
	for title := range article.Links {
		set[strings.ToLower(title)] = struct{}{}
	}
	return set
}

func toSession(s domain.Session, now time.Time) dto.SessionOutput {
	out := dto.SessionOutput{
		ID:             s.ID,
		Generation:     s.Generation,
		Mode:           string(s.Mode),
		Status:         string(s.Status),
		StartTitle:     s.StartTitle,
		GoalTitle:      s.GoalTitle,
		Current:        s.Current(),
		History:        slices.Clone(s.History),
		MoveCount:      s.MoveCount(),
		ElapsedMs:      s.ElapsedMs(now),
		FinalScore:     s.FinalScore,
		StartedAt:      s.StartedAt,
		PracticeGameID: s.PracticeGameID,
	}
	if s.Challenge != nil {
		c := toChallenge(*s.Challenge)
		out.Challenge = &c
	}
	if !s.DailyDate.IsZero() {
		out.DailyDate = day.Format(s.DailyDate)
	}
	return out
}

func toChallenge(d domain.ChallengeDescriptor) dto.ChallengeOutput {
	return dto.ChallengeOutput{Username: d.Username, Start: d.Start, End: d.End, Moves: d.Moves, Time: d.Time, Score: d.Score}
}

func toScore(b domain.Breakdown) dto.ScoreOutput {
	return dto.ScoreOutput{
		Base:           b.Base,
		MovePenalty:    b.MovePenalty,
		TimePenalty:    b.TimePenalty,
		ElapsedSeconds: b.ElapsedSecond,
		Final:          b.Final,
	}
}
