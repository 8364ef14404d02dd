package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/akesi/internal/dictionary"
)

func glyph(r rune) string { return string(r) }

const (
	akesi = rune(0xF1901)
	li    = rune(0xF1927)
	pona  = rune(0xF1954)
	toki  = rune(0xF196C)
)

func TestConvert(t *testing.T) {
	t.Parallel()

	c := NewConverter(dictionary.Default(), 0)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "sentence", in: "akesi li pona.", want: glyph(akesi) + " " + glyph(li) + " " + glyph(pona) + "."},
		{name: "mixed case", in: "Toki", want: glyph(toki)},
		{name: "upper case", in: "TOKI!", want: glyph(toki) + "!"},
		{name: "wrapping punctuation", in: "(pona),", want: "(" + glyph(pona) + "),"},
		{name: "unknown word", in: "Hello,", want: "Hello,"},
		{name: "whitespace collapses", in: " toki \n\t pona ", want: " " + glyph(toki) + " " + glyph(pona) + " "},
		{name: "punctuation only", in: "...", want: "..."},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.Convert(tt.in))
		})
	}
}

func TestConvertLeavesMissesUntouched(t *testing.T) {
	t.Parallel()

	c := NewConverter(dictionary.Default(), 8)
	for _, w := range []string{"hello", "Hello,", "xyz!", "tokii", "[toki]x"} {
		assert.Equal(t, w, c.Convert(w), w)
	}
}

func TestConvertMemoIsTransparent(t *testing.T) {
	t.Parallel()

	memo := NewConverter(dictionary.Default(), 2)
	plain := NewConverter(dictionary.Default(), 0)
	inputs := []string{"toki pona", "mi moku", "toki pona", "jan Sonja", "mi moku", "toki pona"}
	for _, in := range inputs {
		require.Equal(t, plain.Convert(in), memo.Convert(in), in)
	}
}

func TestToLatin(t *testing.T) {
	t.Parallel()

	c := NewConverter(dictionary.Default(), 0)
	for _, in := range []string{"toki pona", "akesi li pona.", "mi moku, sina lape!"} {
		assert.Equal(t, in, c.ToLatin(c.Convert(in)), in)
	}
	assert.Equal(t, "jan Sonja", c.ToLatin(glyph(0xF1911)+" Sonja"))
}

func TestIsUCSUR(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUCSUR("x"+glyph(toki)))
	assert.True(t, IsUCSUR(glyph(dictionary.CartoucheStart)))
	assert.False(t, IsUCSUR("toki pona"))
	assert.False(t, IsUCSUR(""))
}

func TestSplitPunctuation(t *testing.T) {
	t.Parallel()

	p, core, s := SplitPunctuation("\"pona!\"")
	assert.Equal(t, []string{"\"", "pona", "!\""}, []string{p, core, s})

	p, core, s = SplitPunctuation("?!")
	assert.Equal(t, []string{"?!", "", ""}, []string{p, core, s})
}
