package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPaletteSubmitsTrimmedInput(t *testing.T) {
	p := NewPalette([]string{"play:daily", "play:random", "theme <light|dark|classic>"})
	_ = p.Open()
	for _, r := range "play:d" {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if got := p.Matching(); len(got) != 1 || got[0] != "play:daily" {
		t.Fatalf("matching = %v", got)
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("palette should close on enter")
	}
	msg, ok := cmd().(PaletteSubmitMsg)
	if !ok || msg.Input != "play:d" {
		t.Fatalf("unexpected submit: %#v", msg)
	}
}

func TestPaletteCancel(t *testing.T) {
	p := NewPalette(nil)
	_ = p.Open()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatalf("palette should close on esc")
	}
	if _, ok := cmd().(PaletteCancelMsg); !ok {
		t.Fatalf("expected cancel message")
	}
}
