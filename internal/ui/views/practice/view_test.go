package practice

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	practicedto "wikigo/internal/modules/practice/dto"
)

type stubPort struct {
	viewed []string
}

func (p *stubPort) List(context.Context, string, int) ([]practicedto.GameOutput, error) {
	return []practicedto.GameOutput{
		{ID: "moon-to-sun", StartTitle: "Moon", GoalTitle: "Sun", Status: "available", CreatedAt: time.Now()},
	}, nil
}

func (p *stubPort) Solution(_ context.Context, _ string, id string) (practicedto.GameOutput, error) {
	p.viewed = append(p.viewed, id)
	return practicedto.GameOutput{
		ID: id, StartTitle: "Moon", GoalTitle: "Sun", Status: "solution_viewed",
		Solution: []string{"Moon", "Solar System", "Sun"},
	}, nil
}

func loaded(t *testing.T, port Port) Model {
	t.Helper()
	m := New(port, "ada")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m, _ = m.Update(m.loadCmd()())
	return m
}

func TestEnterRequestsZenPlay(t *testing.T) {
	m := loaded(t, &stubPort{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected play command")
	}
	msg, ok := cmd().(PlayMsg)
	if !ok || msg.ID != "moon-to-sun" {
		t.Fatalf("unexpected message: %#v", msg)
	}
}

func TestRevealShowsSolution(t *testing.T) {
	port := &stubPort{}
	m := loaded(t, port)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
	if cmd == nil {
		t.Fatalf("expected solution command")
	}
	m, _ = m.Update(cmd())
	if len(port.viewed) != 1 || port.viewed[0] != "moon-to-sun" {
		t.Fatalf("solution not requested: %v", port.viewed)
	}
	if !strings.Contains(m.renderDetail(), "Solar System") {
		t.Fatalf("solution not rendered:\n%s", m.renderDetail())
	}
}
