package tui

import (
	"context"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/akesi/internal/story"
	"github.com/csheth/akesi/internal/tokencache"
	"github.com/csheth/akesi/internal/tokenize"
)

type storiesLoadedMsg struct {
	stories []story.Story
	err     error
}

// loadStoriesJob reads the story file, or the built-in stories, and
// pre-tokenizes the stories that were not imported yet. A nil tok skips
// tokenization; a nil cache tokenizes everything.
func loadStoriesJob(path string, tok *tokenize.Tokenizer, cache *tokencache.Cache) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		stories, err := story.LoadOrSample(path)
		if err != nil {
			return storiesLoadedMsg{err: err}, err
		}
		if err := ctx.Err(); err != nil {
			return storiesLoadedMsg{err: err}, err
		}
		if tok != nil {
			stories = pretokenize(stories, tok, cache)
		}
		slog.Debug("stories loaded", "component", "tui", "path", path, "count", len(stories))
		return storiesLoadedMsg{stories: stories}, nil
	}
}

func pretokenize(stories []story.Story, tok *tokenize.Tokenizer, cache *tokencache.Cache) []story.Story {
	var pending []story.Story
	var idx []int
	out := append([]story.Story(nil), stories...)
	hits := 0
	for i, s := range out {
		if len(s.Tokenised) > 0 {
			continue
		}
		if cache != nil {
			if tokens, ok := cache.Get(s.Content); ok {
				s.Tokenised = tokens
				if strings.TrimSpace(s.Summary) == "" {
					s.Summary = tokenize.Summarize(tokens, story.SummaryLimit)
				}
				out[i] = s
				hits++
				continue
			}
		}
		pending = append(pending, s)
		idx = append(idx, i)
	}
	for i, s := range story.Import(pending, tok, story.Options{}) {
		out[idx[i]] = s
		if cache == nil {
			continue
		}
		if err := cache.Put(s.Content, s.Tokenised); err != nil {
			slog.Warn("token cache write failed", "component", "tui", "story", s.ID, "err", err)
		}
	}
	if cache != nil {
		slog.Debug("token cache", "component", "tui", "hits", hits, "misses", len(pending))
	}
	return out
}
