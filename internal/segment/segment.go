// Package segment splits annotated Toki Pona text into typed segments.
//
// Raw story text mixes plain prose, [bracketed] names and loanwords,
// {braced} Latin escapes, newlines and blank-line paragraph breaks. Parse
// turns it into a flat sequence of Segment values that the renderer consumes.
// Pre-tokenized input from the importer produces the same Segment values, so
// both entry points share one downstream path.
package segment

import "strings"

// Kind discriminates segments.
type Kind int

const (
	PlainRun Kind = iota
	BracketAnnotation
	Escape
	LineBreak
	ParagraphBoundary
	MarkupStart
	MarkupEnd
	NameToken
	IllegalToken
	ErrorToken
)

var kindNames = [...]string{
	PlainRun:          "plain",
	BracketAnnotation: "bracket",
	Escape:            "escape",
	LineBreak:         "linebreak",
	ParagraphBoundary: "paragraph",
	MarkupStart:       "markup-start",
	MarkupEnd:         "markup-end",
	NameToken:         "name",
	IllegalToken:      "illegal",
	ErrorToken:        "error",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Markup names the structural element a MarkupStart or MarkupEnd refers to.
type Markup int

const (
	NoMarkup Markup = iota
	Bold
	Italic
	Heading1
	Heading2
	Heading3
	Strikethrough
	Table
	TableRow
	TableCell
	Generic
	Image
)

var markupElements = [...]string{
	Bold:          "strong",
	Italic:        "em",
	Heading1:      "h1",
	Heading2:      "h2",
	Heading3:      "h3",
	Strikethrough: "del",
	Table:         "table",
	TableRow:      "tr",
	TableCell:     "td",
	Image:         "img",
}

// Element returns the element name for m. Generic markup has no fixed name.
func (m Markup) Element() string {
	if m > NoMarkup && int(m) < len(markupElements) {
		return markupElements[m]
	}
	return ""
}

// Block reports whether m is rendered as a block on its own.
func (m Markup) Block() bool {
	switch m {
	case Heading1, Heading2, Heading3, Table:
		return true
	}
	return false
}

// ParseMarkup maps an element name onto a Markup kind. Unknown names are
// Generic.
func ParseMarkup(tag string) Markup {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "strong", "b":
		return Bold
	case "em", "i":
		return Italic
	case "h1":
		return Heading1
	case "h2":
		return Heading2
	case "h3":
		return Heading3
	case "del", "s", "strike":
		return Strikethrough
	case "table":
		return Table
	case "tr":
		return TableRow
	case "td":
		return TableCell
	case "img", "image":
		return Image
	default:
		return Generic
	}
}

// Legality classifies a bare bracket phrase.
type Legality int

const (
	Unclassified Legality = iota
	LegalPhrase
	ForeignPhrase
)

func (l Legality) String() string {
	switch l {
	case LegalPhrase:
		return "legal"
	case ForeignPhrase:
		return "foreign"
	default:
		return "unclassified"
	}
}

// Segment is one classified unit of text.
//
// Text holds the prose for PlainRun, Escape, IllegalToken and ErrorToken,
// the Latin form for BracketAnnotation and the Latin name for NameToken.
// Toki holds the optional Toki Pona form of annotations and names. Markup
// and Tag describe markup markers; Tag is the element name of Generic markup
// and the source of an Image.
type Segment struct {
	Kind     Kind
	Text     string
	Toki     string
	Markup   Markup
	Tag      string
	Legality Legality
}

func Plain(text string) Segment   { return Segment{Kind: PlainRun, Text: text} }
func Escaped(text string) Segment { return Segment{Kind: Escape, Text: text} }
func Illegal(text string) Segment { return Segment{Kind: IllegalToken, Text: text} }
func Error(text string) Segment   { return Segment{Kind: ErrorToken, Text: text} }
func Break() Segment              { return Segment{Kind: LineBreak} }
func Boundary() Segment           { return Segment{Kind: ParagraphBoundary} }

// Bracket builds an annotation. A bare phrase (empty toki) needs Legality
// set by the caller, see Classify.
func Bracket(latin, toki string) Segment {
	return Segment{Kind: BracketAnnotation, Text: latin, Toki: toki}
}

// Name builds a proper name with an optional Toki Pona form.
func Name(latin, toki string) Segment {
	return Segment{Kind: NameToken, Text: latin, Toki: toki}
}

// Start opens markup m. tag names a Generic element or an Image source.
func Start(m Markup, tag string) Segment {
	return Segment{Kind: MarkupStart, Markup: m, Tag: tag}
}

// End closes markup m.
func End(m Markup, tag string) Segment {
	return Segment{Kind: MarkupEnd, Markup: m, Tag: tag}
}

// Element returns the element name of a markup segment.
func (s Segment) Element() string {
	if s.Markup == Generic {
		return strings.ToLower(s.Tag)
	}
	return s.Markup.Element()
}

// Closes reports whether end closes the markup opened by s.
func (s Segment) Closes(end Segment) bool {
	return end.Kind == MarkupEnd && s.Kind == MarkupStart && s.Element() == end.Element()
}

// Paragraphs regroups a flat sequence at its paragraph boundaries.
func Paragraphs(segs []Segment) [][]Segment {
	if len(segs) == 0 {
		return nil
	}
	groups := [][]Segment{{}}
	for _, seg := range segs {
		if seg.Kind == ParagraphBoundary {
			groups = append(groups, []Segment{})
			continue
		}
		last := len(groups) - 1
		groups[last] = append(groups[last], seg)
	}
	return groups
}
