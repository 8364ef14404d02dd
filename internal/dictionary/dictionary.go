// Package dictionary holds the fixed Toki Pona word list: every word with its
// UCSUR code point, a glyph reference and an English definition.
package dictionary

import "strings"

// Cartouche delimiters in the UCSUR block.
const (
	CartoucheStart rune = 0xF1990
	CartoucheEnd   rune = 0xF1991
)

// UCSUR block bounds for sitelen pona.
const (
	BlockStart rune = 0xF1900
	BlockEnd   rune = 0xF19FF
)

// unorthodox spellings mapped onto their dictionary form.
var unorthodoxies = map[string]string{
	"ali": "ale",
}

// Entry is one dictionary word.
type Entry struct {
	Word       string
	UCSUR      rune
	Glyph      string
	Definition string
}

// HasUCSUR reports whether the entry carries a code point mapping.
func (e Entry) HasUCSUR() bool {
	return e.UCSUR != 0
}

// Dictionary is an immutable ordered word list with prebuilt indexes.
type Dictionary struct {
	entries []Entry
	byWord  map[string]int
	byRune  map[rune]int
}

// New builds a Dictionary from entries. Words are normalised to lowercase;
// a repeated word keeps its first entry.
func New(entries []Entry) *Dictionary {
	d := &Dictionary{
		entries: make([]Entry, 0, len(entries)),
		byWord:  make(map[string]int, len(entries)),
		byRune:  make(map[rune]int, len(entries)),
	}
	for _, entry := range entries {
		entry.Word = Normalize(entry.Word)
		if entry.Word == "" {
			continue
		}
		if _, seen := d.byWord[entry.Word]; seen {
			continue
		}
		idx := len(d.entries)
		d.entries = append(d.entries, entry)
		d.byWord[entry.Word] = idx
		if entry.HasUCSUR() {
			if _, seen := d.byRune[entry.UCSUR]; !seen {
				d.byRune[entry.UCSUR] = idx
			}
		}
	}
	return d
}

// Lookup finds a word, ignoring case and surrounding whitespace.
func (d *Dictionary) Lookup(word string) (Entry, bool) {
	if d == nil {
		return Entry{}, false
	}
	idx, ok := d.byWord[Normalize(word)]
	if !ok {
		return Entry{}, false
	}
	return d.entries[idx], true
}

// LookupRune finds the entry mapped to a UCSUR code point. Aliases sharing a
// code point resolve to the entry listed first.
func (d *Dictionary) LookupRune(r rune) (Entry, bool) {
	if d == nil {
		return Entry{}, false
	}
	idx, ok := d.byRune[r]
	if !ok {
		return Entry{}, false
	}
	return d.entries[idx], true
}

// Contains reports whether word is a dictionary word.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.Lookup(word)
	return ok
}

// Entries returns a copy of the ordered word list.
func (d *Dictionary) Entries() []Entry {
	if d == nil {
		return nil
	}
	return append([]Entry(nil), d.entries...)
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Normalize lowercases and trims a word the way the indexes store it.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Canonical normalises word and replaces unorthodox spellings with the
// dictionary form.
func Canonical(word string) string {
	word = Normalize(word)
	if canonical, ok := unorthodoxies[word]; ok {
		return canonical
	}
	return word
}

// InBlock reports whether r lies in the sitelen pona UCSUR block.
func InBlock(r rune) bool {
	return r >= BlockStart && r <= BlockEnd
}
