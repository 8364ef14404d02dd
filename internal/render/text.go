package render

import "strings"

// Text flattens a tree to plain text. Blocks are separated by blank lines,
// table cells by " | " and rows by newlines. Images show as their source.
func Text(t Tree) string {
	blocks := make([]string, 0, len(t.Blocks))
	for _, block := range t.Blocks {
		blocks = append(blocks, inlineText([]Node{block}))
	}
	return strings.Join(blocks, "\n\n")
}

// inlineText flattens nodes without block separators.
func inlineText(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		writeText(&b, n)
	}
	return b.String()
}

func writeText(b *strings.Builder, n Node) {
	switch n.Kind {
	case TextNode:
		b.WriteString(n.Text)
	case BreakNode:
		b.WriteByte('\n')
	case ImageNode:
		b.WriteString(n.Src)
	case ElementNode:
		for i, c := range n.Children {
			if i > 0 {
				switch n.Tag {
				case "tr":
					b.WriteString(" | ")
				case "table", "ul", "ol":
					b.WriteByte('\n')
				}
			}
			writeText(b, c)
		}
	}
}
