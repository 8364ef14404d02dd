// Package render composes segments into a display tree for the current
// settings.
//
// The tree is a small block/inline structure: paragraphs, headings, tables
// and inline elements hold text, line break and image nodes. Each text node
// carries the font family it is shown in. Hosts draw the tree themselves
// (the terminal reader) or serialise it with HTML.
package render

import (
	"strings"
	"unicode"

	"github.com/csheth/akesi/internal/dictionary"
	"github.com/csheth/akesi/internal/script"
	"github.com/csheth/akesi/internal/segment"
	"github.com/csheth/akesi/internal/settings"
	"github.com/csheth/akesi/internal/tokenize"
)

// NodeKind discriminates tree nodes.
type NodeKind int

const (
	TextNode NodeKind = iota
	BreakNode
	ElementNode
	ImageNode
)

// Node is one element of the render tree.
type Node struct {
	Kind NodeKind
	Text string
	// Font is the family the text is shown in.
	Font string
	// Latin marks text that is always shown in the system font.
	Latin bool
	Tag   string
	Src   string
	// Phrase is the legality class of a bare bracket annotation.
	Phrase   segment.Legality
	Children []Node
}

// Tree is the output of one render pass.
type Tree struct {
	// Font is the container font family.
	Font    string
	Compact bool
	Blocks  []Node
}

// Empty reports whether the tree has no blocks.
func (t Tree) Empty() bool {
	return len(t.Blocks) == 0
}

// Options tune a single render pass.
type Options struct {
	// English forces Latin output in the system font.
	English bool
	// TrimTrailingSpace trims whitespace after the last text of each
	// paragraph, for compact inline display.
	TrimTrailingSpace bool
}

// Lexicon is the dictionary view the renderer needs.
type Lexicon interface {
	script.Lexicon
	segment.Lexicon
}

// Config configures a Renderer.
type Config struct {
	AutoBracket bool
	MemoSize    int
}

// Renderer renders raw strings and pre-tokenized content through one path.
type Renderer struct {
	lex    Lexicon
	conv   *script.Converter
	parser segment.Parser
}

// New returns a Renderer over lex.
func New(lex Lexicon, cfg Config) *Renderer {
	return &Renderer{
		lex:    lex,
		conv:   script.NewConverter(lex, cfg.MemoSize),
		parser: segment.Parser{Lexicon: lex, AutoBracket: cfg.AutoBracket},
	}
}

// Converter exposes the renderer's script converter.
func (r *Renderer) Converter() *script.Converter {
	return r.conv
}

// RenderString segments raw and renders the result.
func (r *Renderer) RenderString(raw string, rs settings.Render, opts Options) Tree {
	return r.Render(r.parser.Parse(raw), rs, opts)
}

// RenderTokens renders pre-tokenized content. The segmenter is bypassed.
func (r *Renderer) RenderTokens(tokens []tokenize.Token, rs settings.Render, opts Options) Tree {
	return r.Render(tokenize.Decode(tokens), rs, opts)
}

// Render composes segs for rs. It is a pure function of its inputs.
func (r *Renderer) Render(segs []segment.Segment, rs settings.Render, opts Options) Tree {
	p := pass{r: r, latin: opts.English || !rs.Script()}
	p.ucsur = !p.latin && rs.UseUCSUR
	if p.latin {
		p.font = settings.SansSerif
	} else {
		p.font = settings.FontFamily(rs.ScriptFont)
	}

	tree := Tree{Font: p.font, Compact: opts.TrimTrailingSpace}
	for _, group := range segment.Paragraphs(segs) {
		pos := 0
		children := p.nodes(group, &pos, nil)
		if opts.TrimTrailingSpace {
			children = trimTrailing(children)
		}
		if len(children) == 1 && isBlock(children[0]) {
			tree.Blocks = append(tree.Blocks, children[0])
			continue
		}
		tree.Blocks = append(tree.Blocks, Node{Kind: ElementNode, Tag: "p", Children: children})
	}
	return tree
}

func isBlock(n Node) bool {
	if n.Kind != ElementNode {
		return false
	}
	switch n.Tag {
	case "ul", "ol", "blockquote", "hr":
		return true
	}
	return segment.ParseMarkup(n.Tag).Block()
}

type pass struct {
	r     *Renderer
	latin bool
	ucsur bool
	font  string
}

// nodes reads segments from *pos until the end of the group or a markup end
// that closes one of the open elements. open is the stack of enclosing
// starts, innermost last.
func (p pass) nodes(group []segment.Segment, pos *int, open []segment.Segment) []Node {
	var out []Node
	for *pos < len(group) {
		seg := group[*pos]
		switch seg.Kind {
		case segment.MarkupEnd:
			if closesAny(open, seg) {
				// Leave it for the element that owns it.
				return out
			}
			*pos++
		case segment.MarkupStart:
			*pos++
			if seg.Markup == segment.Image {
				out = append(out, Node{Kind: ImageNode, Tag: "img", Src: seg.Tag})
				continue
			}
			el := Node{Kind: ElementNode, Tag: seg.Element()}
			el.Children = p.nodes(group, pos, append(open, seg))
			if *pos < len(group) && seg.Closes(group[*pos]) {
				*pos++
			}
			out = append(out, el)
		default:
			*pos++
			out = append(out, p.segment(seg))
		}
	}
	return out
}

func closesAny(open []segment.Segment, end segment.Segment) bool {
	for i := len(open) - 1; i >= 0; i-- {
		if open[i].Closes(end) {
			return true
		}
	}
	return false
}

func (p pass) text(s string) Node {
	return Node{Kind: TextNode, Text: s, Font: p.font}
}

func latinText(s string) Node {
	return Node{Kind: TextNode, Text: s, Font: settings.SansSerif, Latin: true}
}

func (p pass) segment(seg segment.Segment) Node {
	switch seg.Kind {
	case segment.PlainRun:
		if p.ucsur {
			return p.text(p.r.conv.Convert(seg.Text))
		}
		return p.text(seg.Text)

	case segment.BracketAnnotation:
		if seg.Toki != "" {
			if p.latin {
				return p.text(seg.Text)
			}
			return p.text(p.cartouche(strings.ToUpper(seg.Toki)))
		}
		phrase := seg.Legality
		if phrase == segment.Unclassified {
			phrase = segment.Classify(p.r.lex, seg.Text)
		}
		n := p.bracket(seg.Text, phrase)
		n.Phrase = phrase
		return n

	case segment.NameToken:
		if p.latin {
			return p.text(seg.Text)
		}
		core := strings.TrimRightFunc(seg.Text, unicode.IsSpace)
		tail := seg.Text[len(core):]
		if seg.Toki != "" {
			return p.text(p.cartouche(seg.Toki) + tail)
		}
		return p.text(p.cartouche(strings.ToUpper(core)) + tail)

	case segment.Escape, segment.IllegalToken, segment.ErrorToken:
		return latinText(seg.Text)

	case segment.LineBreak:
		return Node{Kind: BreakNode}
	}
	return p.text(seg.Text)
}

// bracket renders a bare annotation. Legal and foreign phrases come out the
// same; the class is only recorded on the node.
func (p pass) bracket(phrase string, class segment.Legality) Node {
	if p.latin {
		return p.text(phrase)
	}
	switch class {
	case segment.LegalPhrase:
		return p.text(p.cartouche(strings.ToUpper(phrase)))
	default:
		return p.text(p.cartouche(strings.ToUpper(phrase)))
	}
}

// cartouche wraps inner in brackets, or in the UCSUR cartouche code points
// when UCSUR output is on.
func (p pass) cartouche(inner string) string {
	if p.ucsur {
		return string(dictionary.CartoucheStart) + inner + string(dictionary.CartoucheEnd)
	}
	return "[" + inner + "]"
}

// trimTrailing trims whitespace from the last node when it is text.
func trimTrailing(nodes []Node) []Node {
	if len(nodes) == 0 {
		return nodes
	}
	last := &nodes[len(nodes)-1]
	if last.Kind != TextNode {
		return nodes
	}
	last.Text = strings.TrimRightFunc(last.Text, unicode.IsSpace)
	if last.Text == "" {
		return nodes[:len(nodes)-1]
	}
	return nodes
}
