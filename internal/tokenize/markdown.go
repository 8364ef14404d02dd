package tokenize

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/csheth/akesi/internal/segment"
)

// markdownSegments reads a stored markdown tag such as "strong", "/strong",
// "h2" or `img alt="" src="a.png" /`.
func markdownSegments(tag string) []segment.Segment {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil
	}
	z := html.NewTokenizer(strings.NewReader("<" + tag + ">"))
	if z.Next() == html.ErrorToken {
		return nil
	}
	tok := z.Token()
	name := tok.Data

	switch tok.Type {
	case html.EndTagToken:
		switch name {
		case "p", "br", "img", "hr":
			return nil
		}
		m := segment.ParseMarkup(name)
		return []segment.Segment{segment.End(m, genericTag(m, name))}
	case html.StartTagToken, html.SelfClosingTagToken:
		switch name {
		case "p":
			return nil
		case "br":
			return []segment.Segment{segment.Break()}
		case "hr":
			return []segment.Segment{segment.Start(segment.Generic, name), segment.End(segment.Generic, name)}
		case "img":
			return []segment.Segment{segment.Start(segment.Image, attr(tok, "src"))}
		}
		m := segment.ParseMarkup(name)
		return []segment.Segment{segment.Start(m, genericTag(m, name))}
	default:
		return nil
	}
}

func genericTag(m segment.Markup, name string) string {
	if m == segment.Generic {
		return name
	}
	return ""
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
