package tui

type stage int

const (
	stageLoading stage = iota
	stageList
	stageReading
	stageSearch
)

const heroTagline = "o lukin e toki pona."

const (
	minViewportWidth          = 20
	minViewportHeight         = 5
	viewportHorizontalPadding = 4
	// header row, blank, blank, status bar, blank, message row
	viewportChrome = 6
	hintWrapWidth  = 36
	listMarker     = "▸ "
	listIndent     = "  "
)
