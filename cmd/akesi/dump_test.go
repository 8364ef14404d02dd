package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/csheth/akesi/internal/config"
	"github.com/csheth/akesi/internal/dictionary"
	"github.com/csheth/akesi/internal/settings"
	"github.com/csheth/akesi/internal/story"
	"github.com/csheth/akesi/internal/tokenize"
)

func TestDumpStoryRawAndImported(t *testing.T) {
	dict := dictionary.Default()
	raw := story.Story{ID: "raw", Title: "kiwi", Content: "jan [Sonja|sona] li toki e kiwi"}
	imported := story.Import([]story.Story{raw}, tokenize.New(dict), story.Options{})[0]
	imported.ID = "imported"
	path := filepath.Join(t.TempDir(), "stories.json")
	if err := story.Save(path, []story.Story{raw, imported}); err != nil {
		t.Fatalf("save: %v", err)
	}
	scriptASCII := settings.Default().ToggleMode()

	dump := func(id, format string) string {
		t.Helper()
		var buf bytes.Buffer
		if err := dumpStory(&buf, path, id, format, dict, &config.Config{}, scriptASCII); err != nil {
			t.Fatalf("dump %s: %v", id, err)
		}
		return buf.String()
	}

	if got := dump("raw", "text"); !strings.Contains(got, "jan [SONA] li toki e kiwi") {
		t.Fatalf("raw content should go through the segmenter, got %q", got)
	}
	if got := dump("raw", "html"); strings.Contains(got, ">kiwi</span>") {
		t.Fatalf("kiwi is plain text in raw content, got %s", got)
	}
	if got := dump("imported", "text"); !strings.Contains(got, "jan [sona] li toki e kiwi") {
		t.Fatalf("stored tokens should render as imported, got %q", got)
	}

	var buf bytes.Buffer
	if err := dumpStory(&buf, path, "raw", "pdf", dict, &config.Config{}, scriptASCII); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestPrintWords(t *testing.T) {
	dict := dictionary.Default()
	var buf bytes.Buffer
	if err := printWords(&buf, dict); err != nil {
		t.Fatalf("printWords: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != dict.Len() {
		t.Fatalf("expected %d lines, got %d", dict.Len(), len(lines))
	}
	if !strings.Contains(buf.String(), "pona\tU+F1954\tgood, positive; simple\n") {
		t.Fatalf("pona line missing:\n%s", buf.String())
	}
}
