package out

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wikigo/internal/modules/practice/domain"
	practiceout "wikigo/internal/modules/practice/port/out"
	apperrors "wikigo/internal/platform/errors"
)

// seedFile is the on-disk layout:
//
//	games:
//	  - id: moon-to-sun
//	    start: Moon
//	    goal: Sun
//	    solution: [Moon, Solar System, Sun]
type seedFile struct {
	Games []struct {
		ID       string   `yaml:"id"`
		Start    string   `yaml:"start"`
		Goal     string   `yaml:"goal"`
		Solution []string `yaml:"solution"`
	} `yaml:"games"`
}

type YAMLSeedSource struct{}

func NewYAMLSeedSource() practiceout.SeedSource {
	return YAMLSeedSource{}
}

func (YAMLSeedSource) Load(_ context.Context, path string) ([]domain.Game, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: parse seed file: %v", apperrors.ErrInvalidInput, err)
	}
	games := make([]domain.Game, 0, len(file.Games))
	for _, g := range file.Games {
		games = append(games, domain.Game{ID: g.ID, StartTitle: g.Start, GoalTitle: g.Goal, SolutionHistory: g.Solution})
	}
	return games, nil
}
