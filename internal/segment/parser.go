package segment

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Lexicon answers word membership for legality checks.
type Lexicon interface {
	Contains(word string) bool
}

// Parser turns raw annotated strings into segments.
type Parser struct {
	Lexicon Lexicon
	// AutoBracket wraps bare capitalised words as bracket annotations.
	AutoBracket bool
}

var (
	paragraphSep = regexp.MustCompile(`\n\s*\n`)
	// brackets and braces do not span lines and do not nest.
	splitter = regexp.MustCompile(`\[.*?\]|\{.*?\}|\n`)
)

// Parse splits raw into segments. Paragraph groups are separated by a
// ParagraphBoundary. Parse never fails: unbalanced brackets or braces are
// kept as plain text.
func (p Parser) Parse(raw string) []Segment {
	if raw == "" {
		return nil
	}
	raw = norm.NFC.String(strings.ReplaceAll(raw, "\r\n", "\n"))

	var out []Segment
	for i, paragraph := range paragraphSep.Split(raw, -1) {
		if i > 0 {
			out = append(out, Boundary())
		}
		if p.AutoBracket {
			paragraph = AutoBracket(paragraph)
		}
		out = p.appendParagraph(out, paragraph)
	}
	return out
}

func (p Parser) appendParagraph(out []Segment, paragraph string) []Segment {
	last := 0
	for _, loc := range splitter.FindAllStringIndex(paragraph, -1) {
		if loc[0] > last {
			out = append(out, Plain(paragraph[last:loc[0]]))
		}
		out = append(out, p.capture(paragraph[loc[0]:loc[1]]))
		last = loc[1]
	}
	if last < len(paragraph) {
		out = append(out, Plain(paragraph[last:]))
	}
	return out
}

func (p Parser) capture(part string) Segment {
	switch part[0] {
	case '\n':
		return Break()
	case '{':
		return Escaped(part[1 : len(part)-1])
	}
	content := part[1 : len(part)-1]
	fields := strings.Split(content, "|")
	if len(fields) > 1 {
		if toki := strings.TrimSpace(fields[1]); toki != "" {
			return Bracket(strings.TrimSpace(fields[0]), toki)
		}
	}
	seg := Bracket(content, "")
	seg.Legality = Classify(p.Lexicon, content)
	return seg
}

// Classify reports whether every space-separated word of phrase is a
// dictionary word.
func Classify(lex Lexicon, phrase string) Legality {
	if lex == nil {
		return ForeignPhrase
	}
	for _, word := range strings.Split(phrase, " ") {
		if !lex.Contains(strings.ToLower(word)) {
			return ForeignPhrase
		}
	}
	return LegalPhrase
}

// AutoBracket wraps every bare word that starts with an uppercase ASCII
// letter and consists only of ASCII letters in brackets, so "jan Sonja"
// becomes "jan [Sonja]". Text already inside brackets or braces on the same
// line is left alone.
func AutoBracket(paragraph string) string {
	var b strings.Builder
	b.Grow(len(paragraph) + 8)
	i := 0
	for i < len(paragraph) {
		c := paragraph[i]
		if c == '[' || c == '{' {
			if end := closing(paragraph, i); end > 0 {
				b.WriteString(paragraph[i : end+1])
				i = end + 1
				continue
			}
		}
		if isUpper(c) && (i == 0 || !isWordByte(paragraph[i-1])) {
			j := i + 1
			for j < len(paragraph) && isLetter(paragraph[j]) {
				j++
			}
			if j == len(paragraph) || !isWordByte(paragraph[j]) {
				b.WriteByte('[')
				b.WriteString(paragraph[i:j])
				b.WriteByte(']')
				i = j
				continue
			}
			for j < len(paragraph) && isWordByte(paragraph[j]) {
				j++
			}
			b.WriteString(paragraph[i:j])
			i = j
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

// closing returns the index of the delimiter matching the one at open, or -1
// when it is not closed on the same line.
func closing(s string, open int) int {
	want := byte(']')
	if s[open] == '{' {
		want = '}'
	}
	for i := open + 1; i < len(s); i++ {
		switch s[i] {
		case want:
			return i
		case '\n':
			return -1
		}
	}
	return -1
}

func isUpper(b byte) bool  { return b >= 'A' && b <= 'Z' }
func isLetter(b byte) bool { return isUpper(b) || (b >= 'a' && b <= 'z') }

func isWordByte(b byte) bool {
	return isLetter(b) || (b >= '0' && b <= '9') || b == '_'
}
