package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/akesi/internal/dictionary"
	"github.com/csheth/akesi/internal/lookup"
	"github.com/csheth/akesi/internal/render"
	"github.com/csheth/akesi/internal/script"
	"github.com/csheth/akesi/internal/settings"
	"github.com/csheth/akesi/internal/story"
	"github.com/csheth/akesi/internal/tokencache"
	"github.com/csheth/akesi/internal/tokenize"
)

// Config wires runtime options into the TUI program.
type Config struct {
	StoriesPath string
	// Stories are shown as given and nothing is loaded when set.
	Stories     []story.Story
	Settings    settings.Render
	Dictionary  *dictionary.Dictionary
	AutoBracket bool
	MemoSize    int
	// Pretokenize runs loaded stories without a token stream through the
	// markdown tokenizer. Off, their raw content goes through the segmenter
	// every time it is drawn.
	Pretokenize bool
	// TokenCache, when set, remembers pre-tokenized content across runs.
	TokenCache *tokencache.Cache
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search the current page…"
	searchInput.CharLimit = 120
	searchInput.Width = 60

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	dict := config.Dictionary
	if dict == nil {
		dict = dictionary.Default()
	}
	rs := config.Settings
	if rs == (settings.Render{}) {
		rs = settings.Default()
	}

	m := &model{
		config:         config,
		stage:          stageLoading,
		settings:       rs,
		dict:           dict,
		renderer:       render.New(dict, render.Config{AutoBracket: config.AutoBracket, MemoSize: config.MemoSize}),
		jobs:           newJobBus(),
		runningJobs:    map[string]jobSnapshot{},
		searchInput:    searchInput,
		spinner:        spin,
		viewport:       vp,
		layout:         newPageLayout(),
		searchMatchIdx: -1,
		viewportDirty:  true,
		infoMessage:    "Loading stories…",
	}
	m.tracker = lookup.NewTracker(dict, lookup.ResolverFunc(m.resolveTextAtPoint))
	if config.Stories != nil {
		m.setStories(config.Stories)
	}
	return m
}

type model struct {
	config Config
	stage  stage
	// searchReturn is the stage the search prompt was opened from.
	searchReturn stage

	settings settings.Render
	dict     *dictionary.Dictionary
	renderer *render.Renderer
	tracker  *lookup.Tracker

	jobs        *jobBus
	runningJobs map[string]jobSnapshot
	lastJob     jobSnapshot

	searchInput textinput.Model
	spinner     spinner.Model
	viewport    viewport.Model
	layout      pageLayout

	stories []story.Story
	cursor  int
	current *story.Story

	content       contentView
	viewportDirty bool
	// viewportTop is the screen row of the first viewport row, measured by
	// the last View call.
	viewportTop int

	searchQuery    string
	searchMatches  []matchRange
	searchMatchIdx int

	infoMessage  string
	errorMessage string
	helpVisible  bool
}

func (m *model) Init() tea.Cmd {
	if m.stage != stageLoading {
		return nil
	}
	var tok *tokenize.Tokenizer
	if m.config.Pretokenize {
		tok = tokenize.New(m.dict)
	}
	return tea.Batch(m.spinner.Tick, m.jobs.Start(jobKindLoad, loadStoriesJob(m.config.StoriesPath, tok, m.config.TokenCache)))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.stage == stageLoading || len(m.runningJobs) > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case jobSignalMsg:
		m.recordJob(msg.Snapshot)
		return m, nil
	case jobResultEnvelope:
		m.recordJob(msg.Snapshot)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case storiesLoadedMsg:
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			m.infoMessage = "Could not load stories. Press ctrl+c to quit."
			m.setStories(nil)
			return m, nil
		}
		m.errorMessage = ""
		m.setStories(msg.stories)
		return m, nil
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.viewport.Width = m.layout.viewportWidth
		m.viewport.Height = m.layout.viewportHeight
		m.tracker.Leave()
		m.markViewportDirty()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.stage == stageSearch {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) setStories(stories []story.Story) {
	m.stories = stories
	m.cursor = 0
	m.current = nil
	m.stage = stageList
	m.viewport.SetYOffset(0)
	if m.errorMessage == "" {
		m.infoMessage = fmt.Sprintf("%d stories. enter reads, ? shows keys.", len(stories))
	}
	m.markViewportDirty()
}

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.stage == stageLoading {
		return m, nil
	}
	switch msg.Type {
	case tea.MouseWheelUp, tea.MouseWheelDown:
		m.tracker.Leave()
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.MouseMotion, tea.MouseLeft:
		m.refreshViewportIfDirty()
		state := m.tracker.Move(m.settings, msg.X, msg.Y)
		if state.Active() {
			slog.Debug("hint", "component", "tui", "word", state.Word, "entry", state.Entry.Word)
		}
	}
	return m, nil
}

// resolveTextAtPoint maps a screen cell to the viewport row under it and
// the rune offset of the cell within that row.
func (m *model) resolveTextAtPoint(x, y int) (string, int, bool) {
	if m.stage == stageLoading {
		return "", 0, false
	}
	row := y - m.viewportTop
	if row < 0 || row >= m.viewport.Height {
		return "", 0, false
	}
	idx := m.viewport.YOffset + row
	if idx < 0 || idx >= len(m.content.lines) {
		return "", 0, false
	}
	line := m.content.lines[idx].plain
	offset, ok := runeOffsetAtColumn(line, x)
	if !ok {
		return "", 0, false
	}
	return line, offset, true
}

func (m *model) handleSearchKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.stage = m.searchReturn
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.searchInput.Value())
		m.stage = m.searchReturn
		m.applySearch(value)
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(key)
	return m, cmd
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.stage == stageLoading {
		return m, nil
	}
	switch key.String() {
	case "esc":
		if m.stage == stageReading {
			m.closeStory()
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		if m.stage == stageList {
			m.openStory(m.cursor)
		}
	case "m":
		m.applySettings(m.settings.ToggleMode())
	case "u":
		m.applySettings(m.settings.WithUCSUR(!m.settings.UseUCSUR))
	case "f":
		m.applySettings(m.settings.WithFont(settings.NextFont(m.settings.ScriptFont, m.settings.UseUCSUR)))
	case "h":
		m.applySettings(m.settings.WithHints(!m.settings.ShowHints))
	case "/":
		m.searchReturn = m.stage
		m.stage = stageSearch
		m.searchInput.SetValue(m.searchQuery)
		m.searchInput.Focus()
		return m, textinput.Blink
	case "n":
		m.advanceSearch(1)
	case "N":
		m.advanceSearch(-1)
	case "g":
		m.scrollToTop()
	case "G":
		m.scrollToBottom()
	case "?":
		m.helpVisible = !m.helpVisible
	}
	return m, nil
}

func (m *model) move(delta int) {
	m.tracker.Leave()
	if m.stage == stageReading {
		if delta < 0 {
			m.viewport.LineUp(-delta)
		} else {
			m.viewport.LineDown(delta)
		}
		return
	}
	if len(m.stories) == 0 {
		return
	}
	target := m.cursor + delta
	if target < 0 {
		target = 0
	}
	if target >= len(m.stories) {
		target = len(m.stories) - 1
	}
	if target == m.cursor {
		return
	}
	m.cursor = target
	m.markViewportDirty()
	m.refreshViewportIfDirty()
	m.ensureCursorVisible()
}

func (m *model) ensureCursorVisible() {
	if m.cursor >= len(m.content.storyRows) {
		return
	}
	start := m.content.storyRows[m.cursor]
	end := len(m.content.lines) - 1
	if m.cursor+1 < len(m.content.storyRows) {
		end = m.content.storyRows[m.cursor+1] - 1
	}
	if start < m.viewport.YOffset {
		m.viewport.SetYOffset(start)
		return
	}
	lowerBound := m.viewport.YOffset + m.viewport.Height - 1
	if end > lowerBound {
		target := end - m.viewport.Height + 1
		if target > start {
			target = start
		}
		m.viewport.SetYOffset(target)
	}
}

func (m *model) openStory(idx int) {
	if idx < 0 || idx >= len(m.stories) {
		return
	}
	s := m.stories[idx]
	m.current = &s
	m.stage = stageReading
	m.tracker.Leave()
	m.clearSearch()
	m.viewport.SetYOffset(0)
	m.errorMessage = ""
	m.infoMessage = "esc returns to the list."
	m.markViewportDirty()
}

func (m *model) closeStory() {
	m.current = nil
	m.stage = stageList
	m.tracker.Leave()
	m.clearSearch()
	m.viewport.SetYOffset(0)
	m.infoMessage = ""
	m.markViewportDirty()
	m.refreshViewportIfDirty()
	m.ensureCursorVisible()
}

// applySettings swaps the settings snapshot and re-renders. Any open hint
// belongs to the old rendering and is dropped.
func (m *model) applySettings(rs settings.Render) {
	m.settings = rs
	m.tracker.Leave()
	m.infoMessage = "Settings: " + rs.String()
	slog.Debug("settings changed", "component", "tui", "settings", rs.String())
	m.markViewportDirty()
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if m.viewportDirty {
		m.refreshViewport()
	}
}

func (m *model) refreshViewport() {
	m.viewportDirty = false
	switch {
	case m.stage == stageLoading:
		m.content = contentView{}
	case m.current != nil:
		m.content = m.buildReadingContent()
	default:
		m.content = m.buildListContent()
	}

	var rows []string
	if m.searchQuery != "" {
		m.searchMatches = findMatches(m.content.lines, m.searchTerm(m.searchQuery))
		if len(m.searchMatches) == 0 {
			m.searchMatchIdx = -1
		} else if m.searchMatchIdx < 0 || m.searchMatchIdx >= len(m.searchMatches) {
			m.searchMatchIdx = 0
		}
		rows = highlightMatches(m.content.lines, m.searchMatches, m.searchMatchIdx)
	} else {
		m.searchMatches = nil
		m.searchMatchIdx = -1
		rows = make([]string, len(m.content.lines))
		for i, line := range m.content.lines {
			rows[i] = line.styled
		}
	}
	m.viewport.SetContent(strings.Join(rows, "\n"))
}

func (m *model) scrollToTop() {
	m.viewport.GotoTop()
	m.tracker.Leave()
	if m.stage == stageList && len(m.stories) > 0 {
		m.cursor = 0
		m.markViewportDirty()
	}
	m.infoMessage = "Jumped to top."
}

func (m *model) scrollToBottom() {
	m.refreshViewportIfDirty()
	m.tracker.Leave()
	if m.stage == stageList && len(m.stories) > 0 {
		m.cursor = len(m.stories) - 1
		m.markViewportDirty()
		m.refreshViewportIfDirty()
	}
	m.viewport.GotoBottom()
	m.infoMessage = "Jumped to bottom."
}

func (m *model) applySearch(query string) {
	query = strings.TrimSpace(query)
	m.searchInput.Blur()
	m.searchQuery = query
	if query == "" {
		m.searchMatches = nil
		m.searchMatchIdx = -1
		m.searchInput.SetValue("")
	} else {
		m.searchMatchIdx = 0
	}
	m.markViewportDirty()
	m.refreshViewportIfDirty()
	switch {
	case query == "":
		m.infoMessage = "Cleared search filter."
	case len(m.searchMatches) == 0:
		m.infoMessage = fmt.Sprintf("No matches for %q.", query)
	default:
		m.infoMessage = fmt.Sprintf("Search ready for %q.", query)
		m.scrollToCurrentMatch()
	}
}

// searchTerm puts query in the script the rows are drawn in: Latin queries
// become code points on UCSUR rows, pasted code points become Latin words
// elsewhere.
func (m *model) searchTerm(query string) string {
	conv := m.renderer.Converter()
	switch ucsur := script.IsUCSUR(query); {
	case m.settings.UCSUR() && !ucsur:
		return conv.Convert(query)
	case !m.settings.UCSUR() && ucsur:
		return conv.ToLatin(query)
	}
	return query
}

func (m *model) clearSearch() {
	m.searchQuery = ""
	m.searchMatches = nil
	m.searchMatchIdx = -1
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.markViewportDirty()
}

func (m *model) advanceSearch(delta int) {
	if m.searchQuery == "" {
		m.infoMessage = "Start a search with / first."
		return
	}
	if len(m.searchMatches) == 0 {
		m.infoMessage = fmt.Sprintf("No matches for %q.", m.searchQuery)
		return
	}
	count := len(m.searchMatches)
	m.searchMatchIdx = (m.searchMatchIdx + delta) % count
	if m.searchMatchIdx < 0 {
		m.searchMatchIdx += count
	}
	m.infoMessage = fmt.Sprintf("Match %d/%d for %q.", m.searchMatchIdx+1, count, m.searchQuery)
	m.markViewportDirty()
	m.refreshViewportIfDirty()
	m.scrollToCurrentMatch()
}

func (m *model) scrollToCurrentMatch() {
	if m.searchMatchIdx < 0 || m.searchMatchIdx >= len(m.searchMatches) {
		return
	}
	line := m.searchMatches[m.searchMatchIdx].line
	if line >= m.viewport.YOffset && line < m.viewport.YOffset+m.viewport.Height {
		return
	}
	target := line - 1
	if target < 0 {
		target = 0
	}
	m.tracker.Leave()
	m.viewport.SetYOffset(target)
}

func (m *model) searchStatusLine() string {
	if m.searchQuery == "" {
		return ""
	}
	if len(m.searchMatches) == 0 {
		return fmt.Sprintf("Search %q: no matches", m.searchQuery)
	}
	return fmt.Sprintf("Search %q: match %d/%d", m.searchQuery, m.searchMatchIdx+1, len(m.searchMatches))
}
