package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"wikigo/internal/modules/game/domain"
	gameout "wikigo/internal/modules/game/port/out"
	"wikigo/internal/platform/markdown"
	"wikigo/internal/platform/slug"
)

type runMeta struct {
	SchemaVersion int       `yaml:"schema_version"`
	SessionID     string    `yaml:"session_id"`
	Mode          string    `yaml:"mode"`
	Username      string    `yaml:"username"`
	Start         string    `yaml:"start"`
	Goal          string    `yaml:"goal"`
	History       []string  `yaml:"history"`
	Moves         int       `yaml:"moves"`
	ElapsedMs     int       `yaml:"elapsed_ms"`
	Score         int       `yaml:"score"`
	StartedAt     time.Time `yaml:"started_at"`
	WonAt         time.Time `yaml:"won_at"`
	Outcome       string    `yaml:"outcome,omitempty"`
	Submission    string    `yaml:"submission"`
}

// MarkdownJournal writes one note per won run under
// <dir>/YYYY/MM/DD/HHMMSS-<start>-to-<goal>.md.
type MarkdownJournal struct {
	dir string
}

func NewMarkdownJournal(dir string) gameout.RunJournal {
	return &MarkdownJournal{dir: dir}
}

func (j *MarkdownJournal) Save(_ context.Context, run domain.RunRecord) (string, error) {
	date := run.WonAt.UTC()
	dir := filepath.Join(j.dir, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Pair(run.Start, run.Goal))
	path := filepath.Join(dir, name)

	meta := runMeta{
		SchemaVersion: domain.SchemaVersion,
		SessionID:     run.SessionID,
		Mode:          string(run.Mode),
		Username:      run.Username,
		Start:         run.Start,
		Goal:          run.Goal,
		History:       run.History,
		Moves:         run.Moves,
		ElapsedMs:     run.ElapsedMs,
		Score:         run.Score,
		StartedAt:     run.StartedAt.UTC(),
		WonAt:         date,
		Outcome:       run.Outcome,
		Submission:    run.Submission,
	}
	rendered, err := markdown.Encode(meta, renderBody(run))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write run note: %w", err)
	}
	return path, nil
}

func renderBody(run domain.RunRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s → %s\n\n", run.Start, run.Goal)
	fmt.Fprintf(&b, "- Score: %d\n- Moves: %d\n- Time: %ds\n", run.Score, run.Moves, run.ElapsedMs/1000)
	if run.Outcome != "" {
		fmt.Fprintf(&b, "- Challenge: %s\n", run.Outcome)
	}
	b.WriteString("\n## Path\n\n")
	for idx, title := range run.History {
		fmt.Fprintf(&b, "%d. %s\n", idx, title)
	}
	return b.String()
}

func (j *MarkdownJournal) List(_ context.Context, limit int) ([]domain.RunRecord, []string, error) {
	type entry struct {
		run  domain.RunRecord
		path string
	}
	var entries []entry
	err := filepath.WalkDir(j.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read run note: %w", err)
		}
		var meta runMeta
		if _, err := markdown.Decode(string(raw), &meta); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if meta.SessionID == "" {
			return nil
		}
		entries = append(entries, entry{path: path, run: domain.RunRecord{
			SessionID:  meta.SessionID,
			Mode:       domain.Mode(meta.Mode),
			Username:   meta.Username,
			Start:      meta.Start,
			Goal:       meta.Goal,
			History:    meta.History,
			Moves:      meta.Moves,
			ElapsedMs:  meta.ElapsedMs,
			Score:      meta.Score,
			StartedAt:  meta.StartedAt,
			WonAt:      meta.WonAt,
			Outcome:    meta.Outcome,
			Submission: meta.Submission,
		}})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scan journal: %w", err)
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return b.run.WonAt.Compare(a.run.WonAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	runs := make([]domain.RunRecord, 0, len(entries))
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		runs = append(runs, e.run)
		paths = append(paths, e.path)
	}
	return runs, paths, nil
}
