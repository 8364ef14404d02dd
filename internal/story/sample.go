package story

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed sample.json
var sampleJSON []byte

// Sample returns the built-in stories shown when no story file is
// configured.
func Sample() ([]Story, error) {
	var stories []Story
	if err := json.Unmarshal(sampleJSON, &stories); err != nil {
		return nil, fmt.Errorf("story: sample: %w", err)
	}
	return stories, nil
}

// LoadOrSample loads path, or the built-in stories when path is empty.
func LoadOrSample(path string) ([]Story, error) {
	if path == "" {
		return Sample()
	}
	return Load(path)
}
