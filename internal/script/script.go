// Package script converts Toki Pona text between Latin words and sitelen pona
// UCSUR code points.
package script

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/csheth/akesi/internal/dictionary"
)

// DefaultMemoSize bounds the conversion memo when no size is configured.
const DefaultMemoSize = 512

// Lexicon is the dictionary view the converter needs.
type Lexicon interface {
	Lookup(word string) (dictionary.Entry, bool)
	LookupRune(r rune) (dictionary.Entry, bool)
}

// Converter maps dictionary words to UCSUR code points. Results are memoised
// per input string; the memo never changes the output.
type Converter struct {
	lex  Lexicon
	memo *lru.Cache[string, string]
}

// NewConverter returns a Converter over lex. A memoSize of zero or less
// disables memoisation.
func NewConverter(lex Lexicon, memoSize int) *Converter {
	c := &Converter{lex: lex}
	if memoSize > 0 {
		// lru.New only fails on a non-positive size.
		c.memo, _ = lru.New[string, string](memoSize)
	}
	return c
}

var whitespace = regexp.MustCompile(`\s+`)

// Convert replaces every whitespace-delimited dictionary word with its code
// point. Leading and trailing punctuation is kept; unknown words come back
// unchanged. Whitespace runs are rejoined as single spaces.
func (c *Converter) Convert(text string) string {
	if c.memo != nil {
		if out, ok := c.memo.Get(text); ok {
			return out
		}
	}
	words := whitespace.Split(text, -1)
	for i, word := range words {
		words[i] = c.convertWord(word)
	}
	out := strings.Join(words, " ")
	if c.memo != nil {
		c.memo.Add(text, out)
	}
	return out
}

func (c *Converter) convertWord(word string) string {
	prefix, core, suffix := SplitPunctuation(word)
	if core == "" {
		return word
	}
	entry, ok := c.lex.Lookup(core)
	if !ok || !entry.HasUCSUR() {
		return word
	}
	glyph := string(entry.UCSUR)
	if core == strings.ToUpper(core) {
		// Code points in the private use area have no case mapping.
		glyph = cases.Upper(language.Und).String(glyph)
	}
	return prefix + glyph + suffix
}

var spaceBeforePunct = regexp.MustCompile(` ([.,!?])`)

// ToLatin turns UCSUR code points back into Latin words. Other characters
// are kept, and spaces before sentence punctuation are dropped.
func (c *Converter) ToLatin(text string) string {
	var b strings.Builder
	last := func() byte {
		s := b.String()
		if s == "" {
			return 0
		}
		return s[len(s)-1]
	}
	for _, r := range text {
		if entry, ok := c.lex.LookupRune(r); ok {
			b.WriteString(entry.Word)
			b.WriteByte(' ')
			continue
		}
		if r == ' ' && last() == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	out := spaceBeforePunct.ReplaceAllString(b.String(), "$1")
	return strings.TrimSpace(out)
}

// IsUCSUR reports whether text holds any sitelen pona code point.
func IsUCSUR(text string) bool {
	for _, r := range text {
		if dictionary.InBlock(r) {
			return true
		}
	}
	return false
}

// SplitPunctuation splits word into its leading non-word run, its core and
// its trailing non-word run. Word characters are ASCII letters, digits and
// underscore.
func SplitPunctuation(word string) (prefix, core, suffix string) {
	start := 0
	for start < len(word) && !isWordByte(word[start]) {
		start++
	}
	if start == len(word) {
		return word, "", ""
	}
	end := len(word)
	for end > start && !isWordByte(word[end-1]) {
		end--
	}
	return word[:start], word[start:end], word[end:]
}

func isWordByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9', b == '_':
		return true
	}
	return false
}
