package tui

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/akesi/internal/render"
	"github.com/csheth/akesi/internal/story"
	"github.com/csheth/akesi/internal/tokenize"
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	viewportWidth  int
	viewportHeight int
}

func newPageLayout() pageLayout {
	return pageLayout{
		viewportWidth:  80,
		viewportHeight: 20,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth
	contentHeight := height - viewportChrome
	if contentHeight < minViewportHeight {
		contentHeight = minViewportHeight
	}
	l.viewportHeight = contentHeight
}

// contentView is the viewport content plus the row of each story in the
// list.
type contentView struct {
	lines     []displayLine
	storyRows []int
}

type contentBuilder struct {
	lines []displayLine
}

func (cb *contentBuilder) add(lines ...displayLine) {
	cb.lines = append(cb.lines, lines...)
}

func (cb *contentBuilder) blank() {
	cb.lines = append(cb.lines, displayLine{})
}

func (cb *contentBuilder) Line() int {
	return len(cb.lines)
}

func (m *model) buildListContent() contentView {
	cb := &contentBuilder{}
	rows := make([]int, 0, len(m.stories))
	width := m.wrapWidth(len(listIndent))
	opts := render.Options{TrimTrailingSpace: true}
	for idx, s := range m.stories {
		if idx > 0 {
			cb.blank()
		}
		rows = append(rows, cb.Line())
		title := drawTree(m.renderer.RenderString(s.Title, m.settings, opts), width)
		summary := drawTree(m.renderer.RenderString(storySummary(s), m.settings, opts), width)
		for i, line := range title {
			prefix := listIndent
			if i == 0 && idx == m.cursor {
				prefix = listMarker
			}
			if idx == m.cursor {
				line.styled = currentLineStyle.Render(line.plain)
			} else {
				line.styled = heroTitleStyle.Render(line.plain)
			}
			cb.add(indent(line, prefix))
		}
		for _, line := range summary {
			cb.add(indent(line, listIndent))
		}
	}
	if len(m.stories) == 0 {
		cb.add(textLines("No stories found.", helperStyle, width)...)
	}
	return contentView{lines: cb.lines, storyRows: rows}
}

func (m *model) buildReadingContent() contentView {
	cb := &contentBuilder{}
	s := m.current
	if s == nil {
		return contentView{}
	}
	width := m.wrapWidth(0)
	title := m.renderer.RenderString(s.Title, m.settings, render.Options{TrimTrailingSpace: true})
	for _, line := range drawTree(title, width) {
		line.styled = heroTitleStyle.Render(line.plain)
		cb.add(line)
	}
	if meta := storyMeta(*s); meta != "" {
		cb.add(textLines(meta, helperStyle, width)...)
	}
	if s.ImageURL != "" {
		cb.add(textLines("[image: "+s.ImageURL+"]", imageStyle, width)...)
	}
	cb.blank()

	var tree render.Tree
	if len(s.Tokenised) > 0 {
		tree = m.renderer.RenderTokens(s.Tokenised, m.settings, render.Options{})
	} else {
		tree = m.renderer.RenderString(s.Content, m.settings, render.Options{})
	}
	cb.add(drawTree(tree, width)...)

	if s.OriginalLink != "" {
		cb.blank()
		cb.add(textLines("source: "+s.OriginalLink, helperStyle, width)...)
	}
	return contentView{lines: cb.lines}
}

func storySummary(s story.Story) string {
	if strings.TrimSpace(s.Summary) != "" {
		return s.Summary
	}
	if len(s.Tokenised) > 0 {
		return tokenize.Summarize(s.Tokenised, story.SummaryLimit)
	}
	return previewText(s.Content, story.SummaryLimit)
}

func storyMeta(s story.Story) string {
	parts := make([]string, 0, 2)
	if s.Date != "" {
		parts = append(parts, s.Date)
	}
	if s.Author != "" {
		parts = append(parts, s.Author)
	}
	return strings.Join(parts, " · ")
}

func indent(line displayLine, prefix string) displayLine {
	return displayLine{plain: prefix + line.plain, styled: prefix + line.styled}
}

func previewText(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

func (m *model) wrapWidth(padding int) int {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	if padding < 0 {
		padding = 0
	}
	available := width - padding
	if available < 10 {
		available = 10
	}
	return available
}

func wrapHelp(text string, width int) string {
	return helperStyle.Render(wordwrap.String(text, width))
}

type matchRange struct {
	line  int
	start int
	end   int
}

// findMatches finds query case-insensitively in the plain rows. Offsets are
// byte offsets into the row.
func findMatches(lines []displayLine, query string) []matchRange {
	lowerQuery := strings.ToLower(query)
	if lowerQuery == "" {
		return nil
	}
	var matches []matchRange
	for idx, line := range lines {
		lowerLine := strings.ToLower(line.plain)
		if len(lowerLine) != len(line.plain) {
			// Case folding changed the byte layout; offsets would not map back.
			continue
		}
		searchIdx := 0
		for searchIdx < len(lowerLine) {
			found := strings.Index(lowerLine[searchIdx:], lowerQuery)
			if found == -1 {
				break
			}
			start := searchIdx + found
			end := start + len(lowerQuery)
			matches = append(matches, matchRange{line: idx, start: start, end: end})
			searchIdx = end
		}
	}
	return matches
}

// highlightMatches restyles the rows holding matches. Those rows lose their
// own styling while highlighted.
func highlightMatches(lines []displayLine, matches []matchRange, current int) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.styled
	}
	byLine := map[int][]int{}
	for idx, match := range matches {
		byLine[match.line] = append(byLine[match.line], idx)
	}
	for lineIdx, idxs := range byLine {
		plain := lines[lineIdx].plain
		var b strings.Builder
		pos := 0
		for _, idx := range idxs {
			match := matches[idx]
			if match.start > pos {
				b.WriteString(plain[pos:match.start])
			}
			segment := plain[match.start:match.end]
			if idx == current {
				b.WriteString(searchCurrentStyle.Render(segment))
			} else {
				b.WriteString(searchHighlightStyle.Render(segment))
			}
			pos = match.end
		}
		if pos < len(plain) {
			b.WriteString(plain[pos:])
		}
		out[lineIdx] = b.String()
	}
	return out
}
