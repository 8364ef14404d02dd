// Package tokenize pre-tokenizes story content for storage.
//
// Content is read as markdown first; structural elements become markup
// segments and the text between them is scanned into Toki Pona runs, names,
// escapes, illegal words and errors. The result is stored with a story and
// later rendered without running the raw-text segmenter.
package tokenize

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/unicode/norm"

	"github.com/csheth/akesi/internal/dictionary"
	"github.com/csheth/akesi/internal/segment"
)

// Tokenizer turns story content into segments.
type Tokenizer struct {
	lex segment.Lexicon
	md  goldmark.Markdown
}

// New returns a Tokenizer checking words against lex. A nil lex uses the
// built-in dictionary.
func New(lex segment.Lexicon) *Tokenizer {
	if lex == nil {
		lex = dictionary.Default()
	}
	return &Tokenizer{
		lex: lex,
		md:  goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough)),
	}
}

// Tokenize parses content into segments. Top-level markdown blocks are
// separated by paragraph boundaries.
func (t *Tokenizer) Tokenize(content string) []segment.Segment {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	src := []byte(norm.NFC.String(content))
	doc := t.md.Parser().Parse(text.NewReader(src))

	w := &walker{t: t, src: src}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if n.PreviousSibling() != nil {
			w.emit(segment.Boundary())
		}
		w.node(n)
	}
	w.flush()
	return w.out
}

// Tokens tokenizes content straight into its wire form.
func (t *Tokenizer) Tokens(content string) []Token {
	return Encode(t.Tokenize(content))
}

// walker collects text between markup nodes and scans it in one piece, so
// text split across several AST nodes (brackets, for one) is seen whole.
type walker struct {
	t   *Tokenizer
	src []byte
	out []segment.Segment
	buf strings.Builder
}

func (w *walker) flush() {
	if w.buf.Len() == 0 {
		return
	}
	w.out = append(w.out, Decode(w.t.scan(w.buf.String()))...)
	w.buf.Reset()
}

func (w *walker) emit(segs ...segment.Segment) {
	w.flush()
	w.out = append(w.out, segs...)
}

func (w *walker) wrap(m segment.Markup, tag string, n ast.Node) {
	w.emit(segment.Start(m, tag))
	w.children(n)
	w.emit(segment.End(m, tag))
}

func (w *walker) children(n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.node(c)
	}
}

func (w *walker) node(n ast.Node) {
	switch n := n.(type) {
	case *ast.Text:
		w.buf.Write(n.Segment.Value(w.src))
		if n.SoftLineBreak() || n.HardLineBreak() {
			w.buf.WriteByte('\n')
		}
	case *ast.String:
		w.buf.Write(n.Value)
	case *ast.Paragraph, *ast.TextBlock:
		w.children(n)
		if n.NextSibling() != nil && n.Parent() != nil && n.Parent().Kind() != ast.KindDocument {
			w.buf.WriteByte('\n')
		}
	case *ast.Heading:
		m, tag := headingMarkup(n.Level)
		w.wrap(m, tag, n)
	case *ast.Emphasis:
		m := segment.Italic
		if n.Level >= 2 {
			m = segment.Bold
		}
		w.wrap(m, "", n)
	case *east.Strikethrough:
		w.wrap(segment.Strikethrough, "", n)
	case *east.Table:
		w.wrap(segment.Table, "", n)
	case *east.TableHeader, *east.TableRow:
		w.wrap(segment.TableRow, "", n)
	case *east.TableCell:
		w.wrap(segment.TableCell, "", n)
	case *ast.Image:
		w.emit(segment.Start(segment.Image, string(n.Destination)))
	case *ast.Link:
		w.wrap(segment.Generic, "a", n)
	case *ast.AutoLink:
		w.emit(segment.Escaped(string(n.URL(w.src))))
	case *ast.CodeSpan:
		var b strings.Builder
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				b.Write(t.Segment.Value(w.src))
			}
		}
		w.emit(segment.Escaped(b.String()))
	case *ast.RawHTML:
		w.emit(segment.Escaped(w.segments(n.Segments)))
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		w.emit(segment.Escaped(strings.TrimRight(w.segments(n.Lines()), "\n")))
	case *ast.List:
		tag := "ul"
		if n.IsOrdered() {
			tag = "ol"
		}
		w.wrap(segment.Generic, tag, n)
	case *ast.ListItem:
		w.wrap(segment.Generic, "li", n)
	case *ast.Blockquote:
		w.wrap(segment.Generic, "blockquote", n)
	case *ast.ThematicBreak:
		w.emit(segment.Start(segment.Generic, "hr"), segment.End(segment.Generic, "hr"))
	default:
		w.children(n)
	}
}

func (w *walker) segments(segs *text.Segments) string {
	var b strings.Builder
	for i := 0; i < segs.Len(); i++ {
		s := segs.At(i)
		b.Write(s.Value(w.src))
	}
	return b.String()
}

func headingMarkup(level int) (segment.Markup, string) {
	switch level {
	case 1:
		return segment.Heading1, ""
	case 2:
		return segment.Heading2, ""
	case 3:
		return segment.Heading3, ""
	default:
		return segment.Generic, "h" + strconv.Itoa(level)
	}
}
