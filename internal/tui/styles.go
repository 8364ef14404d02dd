package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/akesi/internal/settings"
)

var (
	sectionHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	searchHighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("190"))
	searchCurrentStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("229"))

	heroAccentColor        = lipgloss.Color("#2a9d8f")
	heroEmberColor         = lipgloss.Color("#0b2421")
	heroTextColor          = lipgloss.Color("#e9f5db")
	heroSecondaryTextColor = lipgloss.Color("#8ab17d")

	logoStyle        = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroEmberColor).Padding(0, 1)
	taglineStyle     = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	heroTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	statusBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(1, 2)
	currentLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6"))
	hintBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(heroAccentColor).Padding(0, 1)
	hintWordStyle    = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)

	latinStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	imageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	// fontStyles stands in for font loading: each script font gets its own
	// colour so a font switch is visible in the terminal.
	fontStyles = map[string]lipgloss.Style{
		settings.SansSerif:         lipgloss.NewStyle(),
		"nasin-nanpa":              lipgloss.NewStyle().Foreground(lipgloss.Color("#e9c46a")),
		"Fairfax Pona HD":          lipgloss.NewStyle().Foreground(lipgloss.Color("#f4a261")),
		"linja pona":               lipgloss.NewStyle().Foreground(lipgloss.Color("#e76f51")),
		"sitelen-pona":             lipgloss.NewStyle().Foreground(lipgloss.Color("#a8dadc")),
		"nasin-sitelen-pu":         lipgloss.NewStyle().Foreground(lipgloss.Color("#bde0fe")),
		"sitelen seli kiwen asuki": lipgloss.NewStyle().Foreground(lipgloss.Color("#cdb4db")),
	}
)

func fontStyle(family string) lipgloss.Style {
	if style, ok := fontStyles[family]; ok {
		return style.Copy()
	}
	return lipgloss.NewStyle()
}
