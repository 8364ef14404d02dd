package tui

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/csheth/akesi/internal/render"
)

func plainRows(lines []displayLine) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.plain
	}
	return out
}

func TestWrapSpans(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "fits", text: "jan li pona", width: 20, want: []string{"jan li pona"}},
		{name: "soft break drops space", text: "jan li pona", width: 6, want: []string{"jan li", "pona"}},
		{name: "long word splits", text: "abcdefgh", width: 3, want: []string{"abc", "def", "gh"}},
		{name: "hard break", text: "toki\npona", width: 20, want: []string{"toki", "pona"}},
		{name: "tab becomes space", text: "a\tb", width: 20, want: []string{"a b"}},
		{name: "space before hard break", text: "jan \npona", width: 20, want: []string{"jan", "pona"}},
		{name: "blank line kept", text: "a\n\nb", width: 20, want: []string{"a", "", "b"}},
		{name: "long word after short", text: "a bcdefg", width: 3, want: []string{"a", "bcd", "efg"}},
		{name: "only spaces", text: "   ", width: 20, want: []string{""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := plainRows(wrapSpans([]span{{text: tc.text}}, tc.width))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("wrap mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrapSpansAcrossSpans(t *testing.T) {
	spans := []span{{text: "jan "}, {text: "li pona"}, {text: " mute", style: latinStyle}}
	got := plainRows(wrapSpans(spans, 6))
	if diff := cmp.Diff([]string{"jan li", "pona", "mute"}, got); diff != "" {
		t.Fatalf("wrap mismatch (-want +got):\n%s", diff)
	}
	if rows := wrapSpans(nil, 6); rows != nil {
		t.Fatalf("no spans should give no rows, got %#v", rows)
	}
}

func TestWrapSpansWideRuneTakesRow(t *testing.T) {
	wide := string(rune(0x4E16))
	got := plainRows(wrapSpans([]span{{text: wide + wide}}, 1))
	if diff := cmp.Diff([]string{wide, wide}, got); diff != "" {
		t.Fatalf("wrap mismatch (-want +got):\n%s", diff)
	}
}

func TestRuneOffsetAtColumn(t *testing.T) {
	line := "a" + string(rune(0x4E16)) + "b"
	cases := []struct {
		col  int
		want int
		ok   bool
	}{
		{col: 0, want: 0, ok: true},
		{col: 1, want: 1, ok: true},
		{col: 2, want: 1, ok: true},
		{col: 3, want: 2, ok: true},
		{col: 4, ok: false},
		{col: -1, ok: false},
	}
	for _, tc := range cases {
		got, ok := runeOffsetAtColumn(line, tc.col)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("col %d: got (%d, %v) want (%d, %v)", tc.col, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDrawTreeBlocks(t *testing.T) {
	tree := render.Tree{
		Font: "nasin-nanpa",
		Blocks: []render.Node{
			{Kind: render.ElementNode, Tag: "h2", Children: []render.Node{{Kind: render.TextNode, Text: "toki sin"}}},
			{Kind: render.ElementNode, Tag: "p", Children: []render.Node{
				{Kind: render.TextNode, Text: "jan "},
				{Kind: render.ElementNode, Tag: "strong", Children: []render.Node{{Kind: render.TextNode, Text: "Akesi"}}},
			}},
			{Kind: render.ElementNode, Tag: "ol", Children: []render.Node{
				{Kind: render.ElementNode, Tag: "li", Children: []render.Node{{Kind: render.TextNode, Text: "wan"}}},
				{Kind: render.ElementNode, Tag: "li", Children: []render.Node{{Kind: render.TextNode, Text: "tu"}}},
			}},
			{Kind: render.ElementNode, Tag: "blockquote", Children: []render.Node{{Kind: render.TextNode, Text: "o pona"}}},
			{Kind: render.ElementNode, Tag: "hr"},
		},
	}
	got := plainRows(drawTree(tree, 6))
	want := []string{
		"toki",
		"sin",
		"",
		"jan",
		"Akesi",
		"",
		"1. wan",
		"2. tu",
		"",
		"│ o",
		"│ pona",
		"",
		"──────",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("draw mismatch (-want +got):\n%s", diff)
	}
}
