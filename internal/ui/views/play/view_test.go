package play

import (
	"context"
	"slices"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	gamedto "wikigo/internal/modules/game/dto"
	wikidto "wikigo/internal/modules/wiki/dto"
)

type stubGame struct {
	follows []string
	submits int
}

func (g *stubGame) Start(context.Context, gamedto.StartInput) (gamedto.PlayOutput, error) {
	return gamedto.PlayOutput{}, nil
}

func (g *stubGame) Follow(_ context.Context, _ uint64, target string) (gamedto.PlayOutput, error) {
	g.follows = append(g.follows, target)
	return gamedto.PlayOutput{}, nil
}

func (g *stubGame) Reset(context.Context) (gamedto.SessionOutput, error) {
	return gamedto.SessionOutput{}, nil
}

func (g *stubGame) Result(context.Context) (gamedto.ResultOutput, error) {
	return gamedto.ResultOutput{}, nil
}

func (g *stubGame) Submit(context.Context) (gamedto.SubmitOutput, error) {
	g.submits++
	return gamedto.SubmitOutput{Status: gamedto.SubmissionSubmitted}, nil
}

func session(gen uint64, history ...string) gamedto.SessionOutput {
	return gamedto.SessionOutput{
		ID:         "s",
		Generation: gen,
		Status:     "active",
		StartTitle: history[0],
		GoalTitle:  "Machine Learning",
		Current:    history[len(history)-1],
		History:    history,
		MoveCount:  len(history) - 1,
		StartedAt:  time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func article(title string, links ...string) *wikidto.ArticleOutput {
	return &wikidto.ArticleOutput{Title: title, Links: slices.Values(links), LinkCount: len(links)}
}

func started(t *testing.T, game GamePort) Model {
	t.Helper()
	m := New(game, nil)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(StartedMsg{Out: gamedto.PlayOutput{
		Session: session(2, "Alan Turing"),
		Article: article("Alan Turing", "Computer Science", "Enigma"),
	}})
	if m.phase != phasePlaying {
		t.Fatalf("expected playing phase")
	}
	return m
}

func TestFollowedResultFromOldGenerationIsDropped(t *testing.T) {
	m := started(t, &stubGame{})
	m, _ = m.Update(FollowedMsg{
		Generation: 1,
		Target:     "Enigma",
		Out:        gamedto.PlayOutput{Session: session(1, "Alan Turing", "Enigma")},
	})
	if m.Session().Current != "Alan Turing" || m.Session().MoveCount != 0 {
		t.Fatalf("stale result applied: %+v", m.Session())
	}

	m, _ = m.Update(FollowedMsg{
		Generation: 2,
		Target:     "Enigma",
		Out: gamedto.PlayOutput{
			Session: session(2, "Alan Turing", "Enigma"),
			Article: article("Enigma", "Alan Turing"),
		},
	})
	if m.Session().Current != "Enigma" || m.links.Title != "Links on Enigma (1)" {
		t.Fatalf("current result not applied: %+v", m.Session())
	}
}

func TestSelectionsIgnoredWhileFetching(t *testing.T) {
	game := &stubGame{}
	m := started(t, game)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !m.fetching || m.pending != "Computer Science" {
		t.Fatalf("first selection should start a fetch: fetching=%v pending=%q", m.fetching, m.pending)
	}
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("second selection must be ignored while fetching")
	}
}

func TestWinSwitchesToResults(t *testing.T) {
	m := started(t, &stubGame{})
	won := session(2, "Alan Turing", "Machine Learning")
	won.Status = "won"
	won.FinalScore = 980
	m, cmd := m.Update(FollowedMsg{Generation: 2, Target: "Machine Learning", Out: gamedto.PlayOutput{Session: won}})
	if m.phase != phaseWon || cmd == nil {
		t.Fatalf("expected results phase with result and submit commands")
	}
	m, _ = m.Update(SubmittedMsg{Generation: 2, Out: gamedto.SubmitOutput{Status: gamedto.SubmissionFailed, Message: "leaderboard submission failed"}})
	if m.submit == nil || m.submit.Status != gamedto.SubmissionFailed {
		t.Fatalf("submission status not recorded")
	}
	if m.phase != phaseWon {
		t.Fatalf("a failed submission must not leave the results screen")
	}
}

func TestRetryKeyResubmitsAfterFailure(t *testing.T) {
	game := &stubGame{}
	m := started(t, game)
	won := session(2, "Alan Turing", "Machine Learning")
	won.Status = "won"
	m, _ = m.Update(FollowedMsg{Generation: 2, Target: "Machine Learning", Out: gamedto.PlayOutput{Session: won}})

	retry := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}
	m, _ = m.Update(SubmittedMsg{Generation: 2, Out: gamedto.SubmitOutput{Status: gamedto.SubmissionSubmitted}})
	if _, cmd := m.Update(retry); cmd != nil {
		t.Fatalf("retry must be ignored after a successful submission")
	}

	m, _ = m.Update(SubmittedMsg{Generation: 2, Out: gamedto.SubmitOutput{Status: gamedto.SubmissionFailed, Message: "leaderboard submission failed"}})
	m, cmd := m.Update(retry)
	if cmd == nil || m.submit != nil {
		t.Fatalf("retry should clear the failure and resubmit")
	}
	m, _ = m.Update(cmd())
	if game.submits != 1 || m.submit == nil || m.submit.Status != gamedto.SubmissionSubmitted {
		t.Fatalf("resubmission not applied: submits=%d submit=%+v", game.submits, m.submit)
	}
}

func TestTickFromPreviousSessionStops(t *testing.T) {
	m := started(t, &stubGame{})
	_, cmd := m.Update(tickMsg{generation: 1, at: time.Now()})
	if cmd != nil {
		t.Fatalf("tick for an old session must not reschedule")
	}
	m, cmd = m.Update(tickMsg{generation: 2, at: m.session.StartedAt.Add(65 * time.Second)})
	if cmd == nil || m.elapsed() != 65*time.Second {
		t.Fatalf("tick not applied: elapsed=%s", m.elapsed())
	}
}
