package out

import (
	"encoding/json"
	"fmt"
)

func encodeTitles(titles []string) (string, error) {
	if titles == nil {
		titles = []string{}
	}
	raw, err := json.Marshal(titles)
	if err != nil {
		return "", fmt.Errorf("encode solution: %w", err)
	}
	return string(raw), nil
}

func decodeTitles(raw string) ([]string, error) {
	var titles []string
	if raw == "" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(raw), &titles); err != nil {
		return nil, fmt.Errorf("decode solution: %w", err)
	}
	return titles, nil
}
