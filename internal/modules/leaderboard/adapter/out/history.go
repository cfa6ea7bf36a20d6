package out

import (
	"encoding/json"
	"fmt"
)

// Paths are stored as JSON arrays in a text column so both SQL backends
// share one representation.
func encodeTitles(titles []string) (string, error) {
	if titles == nil {
		titles = []string{}
	}
	raw, err := json.Marshal(titles)
	if err != nil {
		return "", fmt.Errorf("encode titles: %w", err)
	}
	return string(raw), nil
}

func decodeTitles(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var titles []string
	if err := json.Unmarshal([]byte(raw), &titles); err != nil {
		return nil, fmt.Errorf("decode titles: %w", err)
	}
	if len(titles) == 0 {
		return nil, nil
	}
	return titles, nil
}
