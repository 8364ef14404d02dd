package dictionary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// escU builds a JSON-style escape without writing it as a literal.
func escU(hex string) string {
	return "\\" + "u" + hex
}

func TestDecodeEscaped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    rune
		wantErr bool
	}{
		{name: "surrogate pair", in: escU("DB86") + escU("DD01"), want: 0xF1901},
		{name: "lowercase hex", in: escU("db86") + escU("dd90"), want: CartoucheStart},
		{name: "long form", in: "\\" + "U000F1954", want: 0xF1954},
		{name: "bmp escape", in: escU("0041"), want: 'A'},
		{name: "decoded literal", in: string(rune(0xF1902)), want: 0xF1902},
		{name: "empty", in: "", want: 0},
		{name: "lone high surrogate", in: escU("DB86"), wantErr: true},
		{name: "two scalars", in: escU("0041") + escU("0042"), wantErr: true},
		{name: "bad hex", in: escU("ZZZZ"), wantErr: true},
		{name: "several literals", in: "ab", wantErr: true},
		{name: "truncated", in: "\\" + "u12", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := DecodeEscaped(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidEscape)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultDictionary(t *testing.T) {
	t.Parallel()

	dict := Default()
	require.NotNil(t, dict)
	assert.Greater(t, dict.Len(), 120)

	entry, ok := dict.Lookup("akesi")
	require.True(t, ok)
	assert.Equal(t, "reptile, amphibian", entry.Definition)
	assert.Equal(t, rune(0xF1901), entry.UCSUR)
	assert.True(t, strings.HasSuffix(entry.Glyph, "/akesi.svg"))

	entry, ok = dict.Lookup("  PONA ")
	require.True(t, ok)
	assert.Equal(t, "pona", entry.Word)
	assert.Equal(t, rune(0xF1954), entry.UCSUR)

	_, ok = dict.Lookup("hello")
	assert.False(t, ok)

	for _, e := range dict.Entries() {
		assert.True(t, InBlock(e.UCSUR), "word %q outside the UCSUR block", e.Word)
	}
}

func TestLookupRunePrefersFirstEntry(t *testing.T) {
	t.Parallel()

	entry, ok := Default().LookupRune(0xF1904)
	require.True(t, ok)
	assert.Equal(t, "ale", entry.Word)

	_, ok = Default().LookupRune('x')
	assert.False(t, ok)
}

func TestNewKeepsFirstDuplicate(t *testing.T) {
	t.Parallel()

	dict := New([]Entry{
		{Word: "Toki", UCSUR: 0xF196C, Definition: "first"},
		{Word: "toki", UCSUR: 0xF196C, Definition: "second"},
		{Word: "  ", Definition: "blank"},
	})
	assert.Equal(t, 1, dict.Len())
	entry, ok := dict.Lookup("TOKI")
	require.True(t, ok)
	assert.Equal(t, "first", entry.Definition)
	assert.Equal(t, "toki", entry.Word)
}

func TestLoadRejectsBadLiteral(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader(`[{"word":"x","ucsur":"nope"}]`))
	require.ErrorIs(t, err, ErrInvalidEscape)

	_, err = Load(strings.NewReader(`{`))
	require.Error(t, err)
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ale", Canonical(" Ali "))
	assert.Equal(t, "pona", Canonical("pona"))
}

func TestNilDictionaryIsEmpty(t *testing.T) {
	t.Parallel()

	var dict *Dictionary
	_, ok := dict.Lookup("pona")
	assert.False(t, ok)
	assert.Zero(t, dict.Len())
	assert.Nil(t, dict.Entries())
}
