package tui

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/csheth/akesi/internal/render"
)

// displayLine is one viewport row. plain is what the row shows with styling
// stripped; the pointer resolver measures columns against it.
type displayLine struct {
	plain  string
	styled string
}

type span struct {
	text  string
	style lipgloss.Style
}

// drawTree lays a render tree out as wrapped terminal rows. Blocks are
// separated by a blank row.
func drawTree(t render.Tree, width int) []displayLine {
	var out []displayLine
	for i, block := range t.Blocks {
		if i > 0 {
			out = append(out, displayLine{})
		}
		out = append(out, drawBlock(block, t.Font, width)...)
	}
	return out
}

func drawBlock(n render.Node, font string, width int) []displayLine {
	base := fontStyle(font)
	switch n.Tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return wrapSpans(inlineSpans(n.Children, base.Copy().Inherit(headingStyle)), width)
	case "hr":
		rule := strings.Repeat("─", width)
		return []displayLine{{plain: rule, styled: ruleStyle.Render(rule)}}
	case "table":
		var out []displayLine
		for _, row := range n.Children {
			var spans []span
			for i, cell := range row.Children {
				if i > 0 {
					spans = append(spans, span{text: " | ", style: ruleStyle})
				}
				spans = append(spans, inlineSpans(cell.Children, base)...)
			}
			out = append(out, wrapSpans(spans, width)...)
		}
		return out
	case "ul", "ol":
		var out []displayLine
		for i, item := range n.Children {
			marker := "• "
			if n.Tag == "ol" {
				marker = strconv.Itoa(i+1) + ". "
			}
			spans := append([]span{{text: marker, style: helperStyle}}, inlineSpans(item.Children, base)...)
			out = append(out, wrapSpans(spans, width)...)
		}
		return out
	case "blockquote":
		lines := wrapSpans(inlineSpans(n.Children, base), width-2)
		for i := range lines {
			lines[i].plain = "│ " + lines[i].plain
			lines[i].styled = ruleStyle.Render("│ ") + lines[i].styled
		}
		return lines
	}
	return wrapSpans(inlineSpans([]render.Node{n}, base), width)
}

func inlineSpans(nodes []render.Node, style lipgloss.Style) []span {
	var out []span
	for _, n := range nodes {
		switch n.Kind {
		case render.TextNode:
			s := fontStyle(n.Font).Inherit(style)
			if n.Latin {
				s = latinStyle.Copy().Inherit(style)
			}
			out = append(out, span{text: n.Text, style: s})
		case render.BreakNode:
			out = append(out, span{text: "\n"})
		case render.ImageNode:
			out = append(out, span{text: "[image: " + n.Src + "]", style: imageStyle})
		case render.ElementNode:
			out = append(out, inlineSpans(n.Children, elementStyle(n.Tag, style))...)
		}
	}
	return out
}

func elementStyle(tag string, style lipgloss.Style) lipgloss.Style {
	s := style.Copy()
	switch tag {
	case "strong":
		return s.Bold(true)
	case "em":
		return s.Italic(true)
	case "del":
		return s.Strikethrough(true)
	case "a":
		return s.Underline(true)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return s.Inherit(headingStyle)
	}
	return s
}

// wrapSpans breaks spans into rows no wider than width cells. wordwrap picks
// the soft breaks and drops the space at each one; wrap splits words wider
// than a row. The wrapped text is then walked against the source so every
// row is styled on its own.
func wrapSpans(spans []span, width int) []displayLine {
	if width < 1 {
		width = 1
	}
	var (
		src   []rune
		owner []int
	)
	for i, sp := range spans {
		for _, r := range sp.text {
			if r != '\n' && unicode.IsSpace(r) {
				// Tabs would be widened by wrap but not by the plain row.
				r = ' '
			}
			src = append(src, r)
			owner = append(owner, i)
		}
	}
	if len(src) == 0 {
		return nil
	}
	wrapped := wrap.String(wordwrap.String(string(src), width), width)

	var (
		out      []displayLine
		row      []rune
		rowOwner []int
		pos      int
	)
	flush := func() {
		out = append(out, styleRow(row, rowOwner, spans))
		row, rowOwner = row[:0], rowOwner[:0]
	}
	for _, r := range wrapped {
		if r == '\n' {
			if pos < len(src) && src[pos] == '\n' {
				pos++
				flush()
			} else if len(row) > 0 {
				flush()
			}
			continue
		}
		for pos < len(src) && src[pos] != r && src[pos] == ' ' {
			pos++
		}
		idx := owner[len(owner)-1]
		if pos < len(src) {
			idx = owner[pos]
			pos++
		}
		row = append(row, r)
		rowOwner = append(rowOwner, idx)
	}
	if len(row) > 0 || len(out) == 0 {
		flush()
	}
	return out
}

// styleRow renders one wrapped row, grouping runes by the span they came
// from. Trailing spaces are dropped.
func styleRow(row []rune, owner []int, spans []span) displayLine {
	end := len(row)
	for end > 0 && row[end-1] == ' ' {
		end--
	}
	var styled strings.Builder
	for start := 0; start < end; {
		next := start + 1
		for next < end && owner[next] == owner[start] {
			next++
		}
		styled.WriteString(spans[owner[start]].style.Render(string(row[start:next])))
		start = next
	}
	return displayLine{plain: string(row[:end]), styled: styled.String()}
}

// runeOffsetAtColumn maps a terminal column within line to the rune index
// drawn there. Columns past the end of the line have no rune.
func runeOffsetAtColumn(line string, col int) (int, bool) {
	if col < 0 {
		return 0, false
	}
	used := 0
	idx := 0
	for _, r := range line {
		w := runewidth.RuneWidth(r)
		if col < used+w {
			return idx, true
		}
		used += w
		idx++
	}
	return 0, false
}

// textLines wraps a single styled string.
func textLines(text string, style lipgloss.Style, width int) []displayLine {
	return wrapSpans([]span{{text: text, style: style}}, width)
}
