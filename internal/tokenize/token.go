package tokenize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"github.com/csheth/akesi/internal/segment"
)

// Token types on the wire.
const (
	TypeTokiPona = "tokipona"
	TypeEscaped  = "escaped"
	TypeName     = "name"
	TypeIllegal  = "illegal"
	TypeError    = "error"
	TypeMarkdown = "markdown"
)

// Token is one element of a stored tokenised story.
type Token struct {
	Type    string  `json:"type" yaml:"type"`
	Content Content `json:"content" yaml:"content"`
}

// Content is either plain text or, for names, a name with an optional
// Toki Pona form. It encodes as a JSON string or as
// {"name": ..., "toki_name": ...}.
type Content struct {
	Text     string
	Name     string
	TokiName string
}

type nameContent struct {
	Name     string `json:"name" yaml:"name"`
	TokiName string `json:"toki_name,omitempty" yaml:"toki_name,omitempty"`
}

func (c Content) named() bool {
	return c.Name != "" || c.TokiName != ""
}

// Latin returns the name for named content and the text otherwise.
func (c Content) Latin() string {
	if c.named() {
		return c.Name
	}
	return c.Text
}

func (c Content) MarshalJSON() ([]byte, error) {
	if c.named() {
		return json.Marshal(nameContent{Name: c.Name, TokiName: c.TokiName})
	}
	return json.Marshal(c.Text)
}

func (c *Content) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = Content{}
		return nil
	case len(data) > 0 && data[0] == '{':
		var nc nameContent
		if err := json.Unmarshal(data, &nc); err != nil {
			return fmt.Errorf("tokenize: name content: %w", err)
		}
		*c = Content{Name: nc.Name, TokiName: nc.TokiName}
		return nil
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("tokenize: text content: %w", err)
		}
		*c = Content{Text: s}
		return nil
	}
}

func (c Content) MarshalYAML() (any, error) {
	if c.named() {
		return nameContent{Name: c.Name, TokiName: c.TokiName}, nil
	}
	return c.Text, nil
}

func (c *Content) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		var nc nameContent
		if err := value.Decode(&nc); err != nil {
			return fmt.Errorf("tokenize: name content: %w", err)
		}
		*c = Content{Name: nc.Name, TokiName: nc.TokiName}
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return fmt.Errorf("tokenize: text content: %w", err)
		}
		*c = Content{Text: s}
	default:
		return fmt.Errorf("tokenize: unexpected yaml content at line %d", value.Line)
	}
	return nil
}

func textToken(typ, text string) Token {
	return Token{Type: typ, Content: Content{Text: text}}
}

func nameToken(name, toki string) Token {
	return Token{Type: TypeName, Content: Content{Name: name, TokiName: toki}}
}

// Encode converts segments into their wire tokens. Bracket annotations are
// stored as names; line and paragraph breaks become newlines in tokipona
// text.
func Encode(segs []segment.Segment) []Token {
	tokens := make([]Token, 0, len(segs))
	for _, seg := range segs {
		switch seg.Kind {
		case segment.PlainRun:
			tokens = append(tokens, textToken(TypeTokiPona, seg.Text))
		case segment.LineBreak:
			tokens = append(tokens, textToken(TypeTokiPona, "\n"))
		case segment.ParagraphBoundary:
			tokens = append(tokens, textToken(TypeTokiPona, "\n\n"))
		case segment.Escape:
			tokens = append(tokens, textToken(TypeEscaped, seg.Text))
		case segment.BracketAnnotation, segment.NameToken:
			tokens = append(tokens, nameToken(seg.Text, seg.Toki))
		case segment.IllegalToken:
			tokens = append(tokens, textToken(TypeIllegal, seg.Text))
		case segment.ErrorToken:
			tokens = append(tokens, textToken(TypeError, seg.Text))
		case segment.MarkupStart:
			tokens = append(tokens, textToken(TypeMarkdown, startTag(seg)))
		case segment.MarkupEnd:
			tokens = append(tokens, textToken(TypeMarkdown, "/"+seg.Element()))
		}
	}
	return tokens
}

func startTag(seg segment.Segment) string {
	if seg.Markup == segment.Image {
		return `img src="` + html.EscapeString(seg.Tag) + `"`
	}
	return seg.Element()
}

// Decode converts wire tokens into segments. Newlines inside tokipona text
// become line breaks, blank lines paragraph boundaries. Unknown token types
// are dropped.
func Decode(tokens []Token) []segment.Segment {
	var out []segment.Segment
	for _, tok := range tokens {
		switch tok.Type {
		case TypeTokiPona:
			out = appendText(out, tok.Content.Latin())
		case TypeEscaped:
			out = append(out, segment.Escaped(tok.Content.Latin()))
		case TypeName:
			out = append(out, segment.Name(tok.Content.Latin(), tok.Content.TokiName))
		case TypeIllegal:
			out = append(out, segment.Illegal(tok.Content.Latin()))
		case TypeError:
			out = append(out, segment.Error(tok.Content.Latin()))
		case TypeMarkdown:
			out = append(out, markdownSegments(tok.Content.Text)...)
		}
	}
	return out
}

var blankLines = regexp.MustCompile(`\n\s*\n`)

func appendText(out []segment.Segment, text string) []segment.Segment {
	for i, paragraph := range blankLines.Split(text, -1) {
		if i > 0 {
			out = append(out, segment.Boundary())
		}
		for j, line := range strings.Split(paragraph, "\n") {
			if j > 0 {
				out = append(out, segment.Break())
			}
			if line != "" {
				out = append(out, segment.Plain(line))
			}
		}
	}
	return out
}

// Summarize joins the text of all non-markdown tokens and cuts it to limit
// characters followed by an ellipsis.
func Summarize(tokens []Token, limit int) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == TypeMarkdown {
			continue
		}
		parts = append(parts, tok.Content.Latin())
	}
	summary := []rune(strings.Join(parts, " "))
	if limit >= 0 && len(summary) > limit {
		summary = summary[:limit]
	}
	return string(summary) + "..."
}
