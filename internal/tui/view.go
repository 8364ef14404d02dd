package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/akesi/internal/lookup"
)

func (m *model) View() string {
	m.refreshViewportIfDirty()
	header := m.headerView()
	m.viewportTop = lipgloss.Height(header) + 1

	var body string
	if m.stage == stageLoading {
		body = fmt.Sprintf("%s %s", m.spinner.View(), m.infoMessage)
	} else {
		body = m.viewport.View()
	}
	parts := []string{m.footerView()}
	if m.stage == stageSearch {
		parts = append([]string{m.searchView()}, parts...)
	}
	if m.helpVisible {
		parts = append(parts, m.keyLegendView())
	}
	// The viewport keeps its position even when it renders blank rows, so
	// it is joined outside joinNonEmpty.
	frame := header + "\n\n" + body
	if rest := joinNonEmpty(parts); rest != "" {
		frame += "\n\n" + rest
	}
	return m.overlayHint(frame)
}

func (m *model) headerView() string {
	logo := logoStyle.Render("akesi")
	title := taglineStyle.Render(heroTagline)
	if m.current != nil {
		title = heroTitleStyle.Render(truncate.StringWithTail(m.current.Title, uint(m.wrapWidth(12)), "…"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, logo, " ", title)
}

func (m *model) searchView() string {
	return joinNonEmpty([]string{
		sectionHeaderStyle.Render("Search"),
		m.searchInput.View(),
		helperStyle.Render("enter searches, esc cancels."),
	})
}

func (m *model) footerView() string {
	lines := []string{m.statusBarView()}
	if status := m.searchStatusLine(); status != "" {
		lines = append(lines, helperStyle.Render(status))
	}
	if m.errorMessage != "" {
		lines = append(lines, errorStyle.Render(m.errorMessage))
	}
	if m.infoMessage != "" && m.stage != stageLoading {
		lines = append(lines, wrapHelp(m.infoMessage, m.wrapWidth(0)))
	}
	return strings.Join(lines, "\n")
}

func (m *model) stageLabel() string {
	switch m.stage {
	case stageLoading:
		return "LOADING"
	case stageReading:
		return "READING"
	case stageSearch:
		return "SEARCH"
	default:
		return "STORIES"
	}
}

func (m *model) statusBarView() string {
	encoding := "ascii"
	if m.settings.UseUCSUR {
		encoding = "ucsur"
	}
	hints := "off"
	if m.settings.ShowHints {
		hints = "on"
	}
	stats := []string{
		m.stageLabel(),
		string(m.settings.Mode),
		encoding,
		m.settings.ScriptFont,
		"hints " + hints,
	}
	if jobBadges := m.jobStatusBadges(); len(jobBadges) > 0 {
		stats = append(stats, jobBadges...)
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

// overlayHint draws the hint box over frame, its top-left corner at the
// hint anchor. Rows the frame lacks are added.
func (m *model) overlayHint(frame string) string {
	state := m.tracker.State()
	if !state.Active() {
		return frame
	}
	box := hintBoxView(lookup.NewHint(state.Entry, m.settings))
	anchor := state.Anchor()
	x := anchor.X
	if x < 0 {
		x = 0
	}
	lines := strings.Split(frame, "\n")
	for i, boxLine := range strings.Split(box, "\n") {
		row := anchor.Y + i
		if row < 0 {
			continue
		}
		for len(lines) <= row {
			lines = append(lines, "")
		}
		left := padding.String(truncate.String(lines[row], uint(x)), uint(x))
		lines[row] = left + boxLine
	}
	return strings.Join(lines, "\n")
}

func hintBoxView(hint lookup.Hint) string {
	title := hintWordStyle.Render(hint.Word)
	if hint.Glyph != hint.Word {
		title = hintWordStyle.Render(hint.Glyph) + " " + title
	}
	definition := wordwrap.String(hint.Definition, hintWrapWidth)
	return hintBoxStyle.Render(title + "\n" + definition)
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"↑/↓", "Move or scroll"},
		{"enter", "Read story"},
		{"esc", "Back / quit"},
		{"m", "Latin or script"},
		{"u", "UCSUR or ASCII"},
		{"f", "Next font"},
		{"h", "Word hints"},
		{"/", "Search"},
		{"n/N", "Next/prev match"},
		{"g/G", "Top or bottom"},
		{"?", "Toggle cheatsheet"},
		{"ctrl+c", "Quit"},
	}
	rows := []string{sectionHeaderStyle.Render("Keys")}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := i + columns
		if end > len(hints) {
			end = len(hints)
		}
		var cells []string
		for _, hint := range hints[i:end] {
			key := keyStyle.Render(hint.Key)
			desc := keyDescStyle.Render(" " + hint.Description + "  ")
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	rows = append(rows, helperStyle.Render("With hints on, point at a word to see its meaning."))
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}
