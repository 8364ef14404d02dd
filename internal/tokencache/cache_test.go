package tokencache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/csheth/akesi/internal/tokenize"
)

var sampleTokens = []tokenize.Token{
	{Type: tokenize.TypeTokiPona, Content: tokenize.Content{Text: "jan "}},
	{Type: tokenize.TypeName, Content: tokenize.Content{Name: "Sonja", TokiName: "sona"}},
	{Type: tokenize.TypeEscaped, Content: tokenize.Content{Text: "BBC"}},
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := Open(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := cache.Get("jan [Sonja|sona] {BBC}"); ok {
		t.Fatal("empty cache should miss")
	}
	if err := cache.Put("jan [Sonja|sona] {BBC}", sampleTokens); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok := cache.Get("jan [Sonja|sona] {BBC}")
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if diff := cmp.Diff(sampleTokens, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if _, ok := cache.Get("jan [Sonja|sona] {BBC}."); ok {
		t.Fatal("different content should miss")
	}
	if _, err := os.Stat(cache.pathFor(Key("jan [Sonja|sona] {BBC}")) + partialSuffix); !os.IsNotExist(err) {
		t.Fatalf("partial file should be renamed away, stat err=%v", err)
	}
}

func TestCacheExpiresEntries(t *testing.T) {
	cache, err := Open(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	if err := cache.Put("pona", sampleTokens[:1]); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok := cache.Get("pona"); !ok {
		t.Fatal("fresh entry should hit")
	}
	now = now.Add(2 * time.Hour)
	if _, ok := cache.Get("pona"); ok {
		t.Fatal("stale entry should miss")
	}
}

func TestCacheIgnoresCorruptEntries(t *testing.T) {
	cache, err := Open(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := os.WriteFile(cache.pathFor(Key("pona")), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := cache.Get("pona"); ok {
		t.Fatal("corrupt entry should miss")
	}
}

func TestOpenUsesEnvDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	t.Setenv(EnvDir, dir)
	cache, err := Open("", 0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if cache.Dir() != dir {
		t.Fatalf("expected %s, got %s", dir, cache.Dir())
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("cache dir not created: %v", err)
	}
}

func TestPruneRemovesStaleAndPartialFiles(t *testing.T) {
	dir := t.TempDir()
	cache, err := Open(dir, time.Hour)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := cache.Put("fresh", sampleTokens[:1]); err != nil {
		t.Fatalf("Put: %v", err)
	}
	stale := cache.pathFor(Key("stale"))
	if err := os.WriteFile(stale, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	partial := filepath.Join(dir, "leftover.json"+partialSuffix)
	if err := os.WriteFile(partial, []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	removed, err := cache.Prune()
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if _, ok := cache.Get("fresh"); !ok {
		t.Fatal("fresh entry should survive prune")
	}
}
