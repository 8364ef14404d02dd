// Command akesi-import tokenizes a stories file so the reader can skip
// tokenization at startup.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/csheth/akesi/internal/app"
	"github.com/csheth/akesi/internal/config"
	"github.com/csheth/akesi/internal/dictionary"
	"github.com/csheth/akesi/internal/story"
	"github.com/csheth/akesi/internal/tokenize"
)

func main() {
	output := flag.String("o", "", "output JSON file (default: <input>.tokenised.json)")
	summarize := flag.Bool("s", false, "regenerate summaries even when a story has one")
	verbose := flag.Bool("v", false, "log each imported story")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-s] [-v] [-o out.json] input\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	logger, closer, err := app.NewLogger(config.LogConfig{Level: level, Format: "text"}, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger error:", err)
		os.Exit(1)
	}
	defer closer.Close()

	input := flag.Arg(0)
	out := *output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".tokenised.json"
	}

	stories, err := story.Load(input)
	if err != nil {
		logger.Error("load failed", "input", input, "err", err)
		os.Exit(1)
	}
	imported := story.Import(stories, tokenize.New(dictionary.Default()), story.Options{Summarize: *summarize})
	for _, s := range imported {
		logger.Debug("imported story", "id", s.ID, "title", s.Title, "tokens", len(s.Tokenised))
	}
	if err := story.Save(out, imported); err != nil {
		logger.Error("save failed", "output", out, "err", err)
		os.Exit(1)
	}
	logger.Info("import complete", "input", input, "output", out, "stories", len(imported))
}
