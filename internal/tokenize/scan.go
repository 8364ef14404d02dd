package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/csheth/akesi/internal/dictionary"
)

const tokiPonaLetters = " aeioujklmnpstw"

// IsLegal reports whether s is written only with Toki Pona letters and
// every space-separated word is in the dictionary.
func (t *Tokenizer) IsLegal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(tokiPonaLetters, s[i]) < 0 {
			return false
		}
	}
	for _, word := range strings.Split(strings.TrimSpace(s), " ") {
		if !t.lex.Contains(word) {
			return false
		}
	}
	return true
}

// scan splits one run of text into wire tokens. Bracketed text becomes a
// name, braced text an escape, capitalised words names and words that are
// not Toki Pona illegal tokens. An unclosed bracket or brace turns the rest
// of the run into an error token.
func (t *Tokenizer) scan(s string) []Token {
	var (
		tokens []Token
		out    strings.Builder
	)
	flush := func() {
		if out.Len() > 0 {
			tokens = append(tokens, textToken(TypeTokiPona, out.String()))
			out.Reset()
		}
	}

	i := 0
	for i < len(s) {
		c := s[i]
		if c == '[' || c == '{' {
			flush()
			rest := s[i:]
			closer := byte(']')
			if c == '{' {
				closer = '}'
			}
			end := strings.IndexByte(rest, closer)
			if end < 0 {
				tokens = append(tokens, textToken(TypeError, rest))
				break
			}
			inner := rest[1:end]
			if c == '[' {
				tokens = append(tokens, t.fancyName(inner))
			} else {
				tokens = append(tokens, textToken(TypeEscaped, inner))
			}
			i += end + 1
			continue
		}

		if w := wordAt(s[i:]); w != "" {
			i += len(w)
			if w == strings.ToLower(w) {
				w = dictionary.Canonical(w)
			}
			switch {
			case hasUpper(w):
				flush()
				tokens = append(tokens, nameToken(w, ""))
			case !t.IsLegal(w):
				flush()
				tokens = append(tokens, textToken(TypeIllegal, w))
			default:
				out.WriteString(w)
			}
			continue
		}

		_, size := utf8.DecodeRuneInString(s[i:])
		out.WriteString(s[i : i+size])
		i += size
	}
	flush()
	return attachWhitespace(mergeAdjacent(tokens))
}

// fancyName reads "latin|toki" bracket content. The toki form is kept only
// when it is legal Toki Pona.
func (t *Tokenizer) fancyName(inner string) Token {
	parts := strings.Split(inner, "|")
	if len(parts) != 2 {
		return nameToken(inner, "")
	}
	if t.IsLegal(parts[1]) {
		return nameToken(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
	}
	return nameToken(strings.TrimSpace(parts[0]), "")
}

func wordAt(s string) string {
	end := 0
	for end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if !isWordRune(r) {
			break
		}
		end += size
	}
	return s[:end]
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func mergeable(typ string) bool {
	switch typ {
	case TypeTokiPona, TypeIllegal, TypeEscaped, TypeName:
		return true
	}
	return false
}

// mergeAdjacent joins neighbouring tokens of the same mergeable type. A
// merged name takes the Toki Pona form of the later name when it has one.
func mergeAdjacent(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if n := len(out); n > 0 && mergeable(tok.Type) && out[n-1].Type == tok.Type {
			prev := &out[n-1]
			if tok.Type == TypeName {
				prev.Content.Name += tok.Content.Name
				if tok.Content.TokiName != "" {
					prev.Content.TokiName = tok.Content.TokiName
				}
			} else {
				prev.Content.Text += tok.Content.Text
			}
			continue
		}
		out = append(out, tok)
	}
	return out
}

func isTextType(typ string) bool {
	return typ == TypeTokiPona || typ == TypeIllegal || typ == TypeEscaped
}

// attachWhitespace folds whitespace-only text tokens into the token before
// them.
func attachWhitespace(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		n := len(out)
		if n > 0 && isTextType(tok.Type) && strings.TrimSpace(tok.Content.Text) == "" {
			prev := &out[n-1]
			switch {
			case isTextType(prev.Type):
				prev.Content.Text += tok.Content.Text
				continue
			case prev.Type == TypeName:
				prev.Content.Name += tok.Content.Text
				continue
			}
		}
		out = append(out, tok)
	}
	return out
}
