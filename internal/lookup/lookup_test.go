package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/akesi/internal/dictionary"
	"github.com/csheth/akesi/internal/settings"
)

const (
	akesiRune = rune(0xF1901)
	ponaRune  = rune(0xF1954)
)

func TestWordAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		offset int
		want   string
		ok     bool
	}{
		{name: "start of word", text: "akesi li pona.", offset: 0, want: "akesi", ok: true},
		{name: "inside word", text: "akesi li pona.", offset: 2, want: "akesi", ok: true},
		{name: "end of word", text: "akesi li pona.", offset: 5, want: "akesi", ok: true},
		{name: "punctuation", text: "akesi li pona.", offset: 13, want: "pona.", ok: true},
		{name: "between spaces", text: "akesi  li", offset: 6, ok: false},
		{name: "past end clamps", text: "pona", offset: 40, want: "pona", ok: true},
		{name: "negative clamps", text: "pona", offset: -3, want: "pona", ok: true},
		{name: "empty", text: "", offset: 0, ok: false},
		{name: "multibyte", text: string(akesiRune) + " " + string(ponaRune), offset: 2, want: string(ponaRune), ok: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := WordAt(tt.text, tt.offset)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrimPunctuation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pona", TrimPunctuation("pona."))
	assert.Equal(t, "toki", TrimPunctuation(`"toki!"`))
	assert.Equal(t, "", TrimPunctuation("..."))
	assert.Equal(t, string(ponaRune), TrimPunctuation(string(ponaRune)+","))
}

func TestFind(t *testing.T) {
	t.Parallel()

	dict := dictionary.Default()

	entry, ok := Find(dict, "Akesi", false)
	require.True(t, ok)
	assert.Equal(t, "akesi", entry.Word)
	assert.Equal(t, "reptile, amphibian", entry.Definition)

	entry, ok = Find(dict, string(ponaRune)+".", true)
	require.True(t, ok)
	assert.Equal(t, "pona", entry.Word)

	_, ok = Find(dict, string(ponaRune), false)
	assert.False(t, ok)

	entry, ok = Find(dict, "pona", true)
	require.True(t, ok, "UCSUR lookups fall back to words")
	assert.Equal(t, "pona", entry.Word)

	_, ok = Find(dict, "kiwi", false)
	assert.False(t, ok)
	_, ok = Find(nil, "pona", false)
	assert.False(t, ok)
}

// lineResolver resolves positions on a single row of text, one cell per rune.
func lineResolver(row int, text string) Resolver {
	return ResolverFunc(func(x, y int) (string, int, bool) {
		if y != row || x < 0 || x >= len([]rune(text)) {
			return "", 0, false
		}
		return text, x, true
	})
}

func TestTrackerMove(t *testing.T) {
	t.Parallel()

	rs := settings.Default().WithHints(true)
	tr := NewTracker(dictionary.Default(), lineResolver(3, "akesi li pona."))

	state := tr.Move(rs, 1, 3)
	require.True(t, state.Active())
	assert.Equal(t, "akesi", state.Word)
	assert.Equal(t, "reptile, amphibian", state.Entry.Definition)
	assert.Equal(t, Point{X: 1, Y: 3}, state.Position)
	assert.Equal(t, Point{X: 1, Y: 3 + HintOffsetY}, state.Anchor())

	state = tr.Move(rs, 13, 3)
	require.True(t, state.Active())
	assert.Equal(t, "pona.", state.Word)
	assert.Equal(t, "pona", state.Entry.Word)

	state = tr.Move(rs, 5, 3)
	assert.True(t, state.Active(), "offset just past a word still selects it")

	assert.False(t, tr.Move(rs, 1, 9).Active(), "off the text clears the hint")
	assert.Equal(t, HintState{}, tr.State())

	tr.Move(rs, 1, 3)
	tr.Leave()
	assert.False(t, tr.State().Active())
}

func TestTrackerDisabledWithoutHints(t *testing.T) {
	t.Parallel()

	tr := NewTracker(dictionary.Default(), lineResolver(0, "pona"))
	assert.False(t, tr.Move(settings.Default().WithHints(false), 1, 0).Active())

	_, _, ok := tr.Lookup(settings.Default(), 1, 0)
	assert.False(t, ok)
}

func TestTrackerUnknownWordClears(t *testing.T) {
	t.Parallel()

	rs := settings.Default().WithHints(true)
	tr := NewTracker(dictionary.Default(), lineResolver(0, "pona kiwi"))
	require.True(t, tr.Move(rs, 0, 0).Active())
	assert.False(t, tr.Move(rs, 6, 0).Active())
}

func TestTrackerSetResolver(t *testing.T) {
	t.Parallel()

	rs := settings.Default().WithHints(true)
	tr := NewTracker(dictionary.Default(), nil)
	assert.False(t, tr.Move(rs, 0, 0).Active())

	tr.SetResolver(lineResolver(0, "li"))
	assert.Equal(t, "li", tr.Move(rs, 0, 0).Entry.Word)
}

func TestNewHint(t *testing.T) {
	t.Parallel()

	entry, ok := dictionary.Default().Lookup("akesi")
	require.True(t, ok)

	plain := NewHint(entry, settings.Default())
	assert.Equal(t, "akesi", plain.Glyph)
	assert.Equal(t, "reptile, amphibian", plain.Definition)

	ucsur := NewHint(entry, settings.Default().WithMode(settings.ModeScript).WithUCSUR(true))
	assert.Equal(t, string(akesiRune), ucsur.Glyph)
	assert.Equal(t, "akesi", ucsur.Word)
}
