package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/csheth/akesi/internal/dictionary"
	"github.com/csheth/akesi/internal/story"
	"github.com/csheth/akesi/internal/tokencache"
	"github.com/csheth/akesi/internal/tokenize"
)

func TestLoadStoriesJobTokenizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stories.json")
	body := `[{"id": "1", "title": "kala", "content": "jan [Sonja] li pona"}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	msg, err := loadStoriesJob(path, tokenize.New(dictionary.Default()), nil)(context.Background())
	if err != nil {
		t.Fatalf("load job: %v", err)
	}
	loaded, ok := msg.(storiesLoadedMsg)
	if !ok {
		t.Fatalf("expected storiesLoadedMsg, got %T", msg)
	}
	if len(loaded.stories) != 1 || len(loaded.stories[0].Tokenised) == 0 {
		t.Fatalf("story not tokenized: %+v", loaded.stories)
	}
}

func TestLoadStoriesJobKeepsRawContentByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stories.json")
	body := `[{"id": "1", "title": "kala", "content": "jan [Sonja|sona] li pona"}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	teaModel, _ := New(Config{StoriesPath: path}).(*model)
	if teaModel.config.Pretokenize {
		t.Fatal("pretokenize should be opt-in")
	}

	msg, err := loadStoriesJob(path, nil, nil)(context.Background())
	if err != nil {
		t.Fatalf("load job: %v", err)
	}
	loaded := msg.(storiesLoadedMsg).stories
	if len(loaded) != 1 || len(loaded[0].Tokenised) != 0 {
		t.Fatalf("raw story should keep no tokens: %+v", loaded)
	}
	if loaded[0].Content != "jan [Sonja|sona] li pona" {
		t.Fatalf("content changed: %q", loaded[0].Content)
	}
}

func TestLoadStoriesJobFallsBackToSamples(t *testing.T) {
	msg, err := loadStoriesJob("", nil, nil)(context.Background())
	if err != nil {
		t.Fatalf("load job: %v", err)
	}
	samples, _ := story.Sample()
	if got := len(msg.(storiesLoadedMsg).stories); got != len(samples) {
		t.Fatalf("expected %d sample stories, got %d", len(samples), got)
	}
}

func TestLoadStoriesJobMissingFile(t *testing.T) {
	msg, err := loadStoriesJob(filepath.Join(t.TempDir(), "missing.json"), nil, nil)(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if msg.(storiesLoadedMsg).err == nil {
		t.Fatal("message should carry the error")
	}
}

func TestPretokenizeKeepsImportedStories(t *testing.T) {
	tok := tokenize.New(dictionary.Default())
	imported := tokenize.Token{Type: tokenize.TypeTokiPona, Content: tokenize.Content{Text: "pona"}}
	stories := []story.Story{
		{ID: "a", Title: "a", Content: "toki", Tokenised: []tokenize.Token{imported}},
		{ID: "b", Title: "b", Content: "jan li pona"},
	}
	out := pretokenize(stories, tok, nil)
	if len(out[0].Tokenised) != 1 || out[0].Tokenised[0] != imported {
		t.Fatalf("imported tokens changed: %+v", out[0].Tokenised)
	}
	if len(out[1].Tokenised) == 0 {
		t.Fatal("story without tokens should be tokenized")
	}
	if len(stories[1].Tokenised) != 0 {
		t.Fatal("input slice should not be modified")
	}
}

func TestPretokenizeUsesCache(t *testing.T) {
	cache, err := tokencache.Open(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	tok := tokenize.New(dictionary.Default())
	stories := []story.Story{{ID: "a", Title: "a", Content: "jan li pona"}}

	first := pretokenize(stories, tok, cache)
	cached, ok := cache.Get("jan li pona")
	if !ok {
		t.Fatal("tokenized content should be cached")
	}
	if len(cached) != len(first[0].Tokenised) {
		t.Fatalf("cached %d tokens, story has %d", len(cached), len(first[0].Tokenised))
	}

	marker := []tokenize.Token{{Type: tokenize.TypeTokiPona, Content: tokenize.Content{Text: "CACHED"}}}
	if err := cache.Put("jan li pona", marker); err != nil {
		t.Fatalf("put: %v", err)
	}
	second := pretokenize(stories, tok, cache)
	if len(second[0].Tokenised) != 1 || second[0].Tokenised[0] != marker[0] {
		t.Fatalf("expected cached tokens, got %+v", second[0].Tokenised)
	}
	if second[0].Summary != "CACHED..." {
		t.Fatalf("summary should come from cached tokens, got %q", second[0].Summary)
	}
}
