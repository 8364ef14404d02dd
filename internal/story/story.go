// Package story loads, imports and saves the news stories the reader shows.
package story

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"gopkg.in/yaml.v3"

	"github.com/csheth/akesi/internal/tokenize"
)

// SummaryLimit is the number of runes kept when a summary is generated.
const SummaryLimit = 100

// ErrUnsupportedFormat is returned for files that are neither JSON, YAML
// nor PDF.
var ErrUnsupportedFormat = errors.New("unsupported story format")

var extraneousWhitespace = regexp.MustCompile(`\s+`)

// Story is one news story. Tokenised holds the pre-tokenized content when
// the story went through Import.
type Story struct {
	ID           string           `json:"id" yaml:"id"`
	Title        string           `json:"title" yaml:"title"`
	Content      string           `json:"content" yaml:"content"`
	Summary      string           `json:"summary,omitempty" yaml:"summary,omitempty"`
	Date         string           `json:"date,omitempty" yaml:"date,omitempty"`
	Author       string           `json:"author,omitempty" yaml:"author,omitempty"`
	ImageURL     string           `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	OriginalLink string           `json:"originalLink,omitempty" yaml:"originalLink,omitempty"`
	Tokenised    []tokenize.Token `json:"tokenised,omitempty" yaml:"tokenised,omitempty"`
}

// Load reads stories from path. The format follows the extension.
func Load(path string) ([]Story, error) {
	var (
		stories []Story
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		stories, err = loadJSON(path)
	case ".yaml", ".yml":
		stories, err = loadYAML(path)
	case ".pdf":
		stories, err = loadPDF(path)
	default:
		return nil, fmt.Errorf("story: load %s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("story: load %s: %w", path, err)
	}
	for i := range stories {
		if stories[i].ID == "" {
			stories[i].ID = stableID(stories[i])
		}
	}
	return stories, nil
}

func loadJSON(path string) ([]Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var stories []Story
	if err := json.Unmarshal(data, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func loadYAML(path string) ([]Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var stories []Story
	if err := yaml.Unmarshal(data, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func loadPDF(path string) ([]Story, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return nil, err
	}
	return []Story{FromText(path, builder.String())}, nil
}

// FromText builds a story from extracted plain text. The title is the file
// name without its extension.
func FromText(path, text string) Story {
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Story{
		Title:   title,
		Content: strings.TrimSpace(extraneousWhitespace.ReplaceAllString(text, " ")),
	}
}

// stableID derives an identifier from the title and date so reloading the
// same file yields the same IDs.
func stableID(s Story) string {
	sum := sha1.Sum([]byte(s.Title + "\x00" + s.Date))
	return hex.EncodeToString(sum[:])[:12]
}

// Save writes stories to path as indented JSON. The file is written next to
// path and renamed into place.
func Save(path string, stories []Story) error {
	data, err := json.MarshalIndent(stories, "", "  ")
	if err != nil {
		return fmt.Errorf("story: encode: %w", err)
	}
	partial := path + ".part"
	if err := os.WriteFile(partial, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("story: save %s: %w", path, err)
	}
	if err := os.Rename(partial, path); err != nil {
		_ = os.Remove(partial)
		return fmt.Errorf("story: save %s: %w", path, err)
	}
	return nil
}

// Options control Import.
type Options struct {
	// Summarize regenerates every summary, not only the missing ones.
	Summarize bool
}

// Import tokenizes each story's content and fills in summaries. The input
// slice is not modified.
func Import(stories []Story, tok *tokenize.Tokenizer, opts Options) []Story {
	out := make([]Story, len(stories))
	for i, s := range stories {
		s.Tokenised = tok.Tokens(s.Content)
		if opts.Summarize || strings.TrimSpace(s.Summary) == "" {
			s.Summary = tokenize.Summarize(s.Tokenised, SummaryLimit)
		}
		if s.ID == "" {
			s.ID = stableID(s)
		}
		out[i] = s
	}
	return out
}

// Find returns the story with the given ID.
func Find(stories []Story, id string) (Story, bool) {
	for _, s := range stories {
		if s.ID == id {
			return s, true
		}
	}
	return Story{}, false
}
