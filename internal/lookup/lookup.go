// Package lookup finds the dictionary word under the pointer and tracks the
// hint shown for it.
package lookup

import (
	"strings"
	"unicode"

	"github.com/csheth/akesi/internal/dictionary"
	"github.com/csheth/akesi/internal/settings"
)

// HintOffsetY is the vertical distance between the pointer and the hint
// anchor, in rows.
const HintOffsetY = 1

// Lexicon is the dictionary view lookups need.
type Lexicon interface {
	Lookup(word string) (dictionary.Entry, bool)
	LookupRune(r rune) (dictionary.Entry, bool)
}

// Resolver maps a screen position to the text under it and the rune offset
// of the position within that text.
type Resolver interface {
	ResolveTextAtPoint(x, y int) (text string, offset int, ok bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(x, y int) (string, int, bool)

func (f ResolverFunc) ResolveTextAtPoint(x, y int) (string, int, bool) {
	return f(x, y)
}

// WordAt returns the run of non-whitespace runes around offset: the run
// ending before offset joined with the run starting at it. offset counts
// runes and is clamped to the text.
func WordAt(text string, offset int) (string, bool) {
	runes := []rune(text)
	if offset < 0 {
		offset = 0
	}
	if offset > len(runes) {
		offset = len(runes)
	}
	start := offset
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	end := offset
	for end < len(runes) && !unicode.IsSpace(runes[end]) {
		end++
	}
	if start == end {
		return "", false
	}
	return string(runes[start:end]), true
}

// TrimPunctuation strips leading and trailing punctuation and symbols.
// Sitelen pona code points are private use characters and survive.
func TrimPunctuation(word string) string {
	return strings.TrimFunc(word, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

// Find looks word up after trimming punctuation. With useUCSUR a single
// code point is matched against the entries' code points first; otherwise,
// and as the fallback, the lowercased word is matched against entry words.
func Find(lex Lexicon, word string, useUCSUR bool) (dictionary.Entry, bool) {
	if lex == nil {
		return dictionary.Entry{}, false
	}
	trimmed := TrimPunctuation(word)
	if trimmed == "" {
		return dictionary.Entry{}, false
	}
	if useUCSUR {
		if runes := []rune(trimmed); len(runes) == 1 {
			if entry, ok := lex.LookupRune(runes[0]); ok {
				return entry, true
			}
		}
	}
	return lex.Lookup(strings.ToLower(trimmed))
}

// Point is a screen position in cells.
type Point struct {
	X, Y int
}

// HintState is the word currently hinted and where the pointer was. The
// zero value means no hint.
type HintState struct {
	Word     string
	Entry    dictionary.Entry
	Position Point
}

// Active reports whether a hint is shown.
func (h HintState) Active() bool {
	return h.Word != ""
}

// Anchor is where the hint is drawn, just below the pointer.
func (h HintState) Anchor() Point {
	return Point{X: h.Position.X, Y: h.Position.Y + HintOffsetY}
}

// Hint is the view model of a shown hint.
type Hint struct {
	// Glyph is the word as script: its code point under UCSUR output,
	// otherwise the word itself.
	Glyph      string
	Word       string
	Definition string
}

// NewHint builds the hint for entry under rs.
func NewHint(entry dictionary.Entry, rs settings.Render) Hint {
	glyph := entry.Word
	if rs.UseUCSUR && entry.HasUCSUR() {
		glyph = string(entry.UCSUR)
	}
	return Hint{Glyph: glyph, Word: entry.Word, Definition: entry.Definition}
}

// Tracker owns the hint state for one text region.
type Tracker struct {
	lex      Lexicon
	resolver Resolver
	state    HintState
}

// NewTracker returns a Tracker resolving positions with resolver.
func NewTracker(lex Lexicon, resolver Resolver) *Tracker {
	return &Tracker{lex: lex, resolver: resolver}
}

// SetResolver swaps the resolver, for example after a re-render.
func (t *Tracker) SetResolver(r Resolver) {
	t.resolver = r
}

// State returns the current hint state.
func (t *Tracker) State() HintState {
	return t.state
}

// Lookup resolves the word at (x, y) without touching the state. It finds
// nothing unless hints are enabled.
func (t *Tracker) Lookup(rs settings.Render, x, y int) (string, dictionary.Entry, bool) {
	if !rs.ShowHints || t.resolver == nil {
		return "", dictionary.Entry{}, false
	}
	text, offset, ok := t.resolver.ResolveTextAtPoint(x, y)
	if !ok {
		return "", dictionary.Entry{}, false
	}
	word, ok := WordAt(text, offset)
	if !ok {
		return "", dictionary.Entry{}, false
	}
	entry, ok := Find(t.lex, word, rs.UseUCSUR)
	if !ok {
		return "", dictionary.Entry{}, false
	}
	return word, entry, true
}

// Move handles pointer motion or a click at (x, y). A match sets the hint
// to the word and position; anything else clears it.
func (t *Tracker) Move(rs settings.Render, x, y int) HintState {
	word, entry, ok := t.Lookup(rs, x, y)
	if !ok {
		t.state = HintState{}
		return t.state
	}
	t.state = HintState{Word: word, Entry: entry, Position: Point{X: x, Y: y}}
	return t.state
}

// Leave clears the hint when the pointer leaves the text.
func (t *Tracker) Leave() {
	t.state = HintState{}
}
