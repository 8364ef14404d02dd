package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/akesi/internal/app"
	"github.com/csheth/akesi/internal/config"
	"github.com/csheth/akesi/internal/dictionary"
	"github.com/csheth/akesi/internal/render"
	"github.com/csheth/akesi/internal/settings"
	"github.com/csheth/akesi/internal/story"
	"github.com/csheth/akesi/internal/tokencache"
	"github.com/csheth/akesi/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default ./akesi.yaml when present)")
	storiesPath := flag.String("stories", "", "path to a stories file (.json, .yaml or .pdf); built-in stories when empty")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	renderMode := flag.String("render", "", "initial output: latin or sitelen_pona")
	ucsur := flag.Bool("ucsur", false, "write sitelen pona as UCSUR code points")
	font := flag.String("font", "", "initial script font")
	hints := flag.Bool("hints", false, "show word hints under the pointer")
	settingsPath := flag.String("settings", "", "JSON settings snapshot used in place of the display config")
	pretokenize := flag.Bool("pretokenize", false, "run raw story content through the markdown tokenizer")
	noCache := flag.Bool("no-cache", false, "with -pretokenize, tokenize every story instead of reusing the token cache")
	words := flag.Bool("words", false, "print the dictionary and exit")
	dump := flag.String("dump", "", "print the story with this ID and exit")
	dumpFormat := flag.String("dump-format", "html", "output of -dump: html or text")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	if *settingsPath != "" {
		if err := applySnapshot(cfg, *settingsPath); err != nil {
			fmt.Fprintln(os.Stderr, "settings error:", err)
			os.Exit(1)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "stories":
			cfg.Reader.StoriesPath = *storiesPath
		case "render":
			cfg.Display.Render = *renderMode
		case "ucsur":
			cfg.Display.UseUCSUR = *ucsur
		case "font":
			cfg.Display.Font = *font
		case "hints":
			cfg.Display.ShowHints = *hints
		case "pretokenize":
			cfg.Reader.Pretokenize = *pretokenize
		case "no-cache":
			cfg.Reader.NoCache = *noCache
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	rs, _ := cfg.Display.Settings()

	// The terminal belongs to the TUI, so logs only go to a configured file.
	var fallback io.Writer = io.Discard
	if *dump != "" || *words {
		fallback = os.Stderr
	}
	_, closer, err := app.NewLogger(cfg.Log, fallback)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger error:", err)
		os.Exit(1)
	}
	defer closer.Close()

	path := cfg.Reader.StoriesPath
	if path != "" {
		if path, err = filepath.Abs(path); err != nil {
			fmt.Fprintln(os.Stderr, "failed to resolve stories path:", err)
			os.Exit(1)
		}
	}
	dict := dictionary.Default()

	if *words {
		if err := printWords(os.Stdout, dict); err != nil {
			slog.Error("word list failed", "err", err)
			os.Exit(1)
		}
		return
	}
	if *dump != "" {
		if err := dumpStory(os.Stdout, path, *dump, *dumpFormat, dict, cfg, rs); err != nil {
			slog.Error("dump failed", "id", *dump, "err", err)
			os.Exit(1)
		}
		return
	}

	var cache *tokencache.Cache
	if cfg.Reader.Pretokenize {
		cache = openCache(cfg.Reader)
	}

	opts := []tea.ProgramOption{tea.WithMouseAllMotion()}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			StoriesPath: path,
			Settings:    rs,
			Dictionary:  dict,
			AutoBracket: cfg.Reader.AutoBracket,
			MemoSize:    cfg.Reader.MemoSize,
			Pretokenize: cfg.Reader.Pretokenize,
			TokenCache:  cache,
		}),
		opts...,
	)

	slog.Info("starting reader", "stories", path, "settings", rs.String())
	if _, err := program.Run(); err != nil {
		slog.Error("program error", "err", err)
		fmt.Fprintln(os.Stderr, "program error:", err)
		os.Exit(1)
	}
}

// applySnapshot replaces the display section with a JSON settings snapshot.
func applySnapshot(cfg *config.Config, path string) error {
	rs, err := settings.ReadFile(path)
	if err != nil {
		return err
	}
	snap := rs.Snapshot()
	cfg.Display = config.DisplayConfig{
		Render:    snap.Render,
		UseUCSUR:  snap.UseUCSUR,
		Font:      snap.SitelenPonaFont,
		ShowHints: snap.ShowHints,
	}
	return nil
}

func dumpStory(w io.Writer, path, id, format string, dict *dictionary.Dictionary, cfg *config.Config, rs settings.Render) error {
	stories, err := story.LoadOrSample(path)
	if err != nil {
		return err
	}
	s, ok := story.Find(stories, id)
	if !ok {
		return fmt.Errorf("no story with id %q", id)
	}
	r := render.New(dict, render.Config{AutoBracket: cfg.Reader.AutoBracket, MemoSize: cfg.Reader.MemoSize})
	var tree render.Tree
	if len(s.Tokenised) > 0 {
		tree = r.RenderTokens(s.Tokenised, rs, render.Options{})
	} else {
		tree = r.RenderString(s.Content, rs, render.Options{})
	}
	switch strings.ToLower(format) {
	case "html":
		return render.WriteHTML(w, tree)
	case "text":
		_, err := fmt.Fprintln(w, render.Text(tree))
		return err
	default:
		return fmt.Errorf("unknown dump format %q", format)
	}
}

// printWords lists the dictionary in order: word, code point and
// definition, tab separated.
func printWords(w io.Writer, dict *dictionary.Dictionary) error {
	for _, e := range dict.Entries() {
		glyph := ""
		if e.HasUCSUR() {
			glyph = fmt.Sprintf("U+%X", e.UCSUR)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", e.Word, glyph, e.Definition); err != nil {
			return err
		}
	}
	return nil
}

// openCache returns nil when caching is off or the directory is unusable;
// the reader then tokenizes on every start.
func openCache(cfg config.ReaderConfig) *tokencache.Cache {
	if cfg.NoCache {
		return nil
	}
	cache, err := tokencache.Open(cfg.CacheDir, cfg.CacheTTL)
	if err != nil {
		slog.Warn("token cache disabled", "err", err)
		return nil
	}
	if removed, err := cache.Prune(); err != nil {
		slog.Warn("token cache prune failed", "dir", cache.Dir(), "err", err)
	} else if removed > 0 {
		slog.Info("token cache pruned", "dir", cache.Dir(), "removed", removed)
	}
	return cache
}
