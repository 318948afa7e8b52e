// Package chroma provides an alternate highlighting engine backed by the
// chroma lexer collection.
package chroma

import (
	"strings"

	"github.com/AmKilopa/KlpGIT"
	"github.com/AmKilopa/KlpGIT/highlight"
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

var (
	_ klpgit.Lexer             = (*Lexer)(nil)
	_ highlight.MultiLineLexer = (*Lexer)(nil)
)

// Lexer adapts a chroma lexer to klpgit.Lexer.
type Lexer struct {
	lexer chromalib.Lexer
}

// NewLexer returns a lexer for the chroma language name, alias or file
// extension, or nil when chroma has no such lexer.
func NewLexer(language string) *Lexer {
	l := lexers.Get(language)
	if l == nil {
		return nil
	}
	return &Lexer{lexer: chromalib.Coalesce(l)}
}

// Name returns chroma's name for the language.
func (l *Lexer) Name() string { return l.lexer.Config().Name }

// Tokenize splits one line into tokens. The line is lexed in isolation, so
// constructs opened on earlier lines are not continued.
func (l *Lexer) Tokenize(line string) []klpgit.Token {
	if line == "" {
		return []klpgit.Token{}
	}
	tokens := l.tokenize(line)
	if tokens == nil {
		return []klpgit.Token{{Text: line}}
	}
	return clip(tokens, len(line))
}

// TokenizeLines lexes source with full context, then splits tokens by line.
// Multi-line comments and strings keep their kind on every line they span.
// Returns nil if chroma fails.
func (l *Lexer) TokenizeLines(source string) [][]klpgit.Token {
	if source == "" {
		return [][]klpgit.Token{}
	}
	tokens := l.tokenize(source)
	if tokens == nil {
		return nil
	}
	return splitTokensByLine(clip(tokens, len(source)))
}

func (l *Lexer) tokenize(source string) []klpgit.Token {
	// The default options rewrite CRLF, which would break reconstruction.
	iterator, err := l.lexer.Tokenise(&chromalib.TokeniseOptions{State: "root"}, source)
	if err != nil {
		return nil
	}
	var tokens []klpgit.Token
	for token := iterator(); token != chromalib.EOF; token = iterator() {
		tokens = appendToken(tokens, KindOf(token.Type), token.Value)
	}
	return tokens
}

// appendToken appends text as kind, merging with the previous token when the
// kinds agree and dropping empty text.
func appendToken(tokens []klpgit.Token, kind klpgit.TokenKind, text string) []klpgit.Token {
	if text == "" {
		return tokens
	}
	if n := len(tokens); n > 0 && tokens[n-1].Kind == kind {
		tokens[n-1].Text += text
		return tokens
	}
	return append(tokens, klpgit.Token{Kind: kind, Text: text})
}

// clip truncates tokens to n bytes of text. Chroma appends a newline to
// input that lacks one, which must not leak into the output.
func clip(tokens []klpgit.Token, n int) []klpgit.Token {
	out := tokens[:0]
	for _, t := range tokens {
		if n <= 0 {
			break
		}
		if len(t.Text) > n {
			t.Text = t.Text[:n]
		}
		n -= len(t.Text)
		out = append(out, t)
	}
	return out
}

// splitTokensByLine splits a flat list of tokens into per-line token slices.
// Tokens that span lines are cut at newline boundaries.
func splitTokensByLine(tokens []klpgit.Token) [][]klpgit.Token {
	result := [][]klpgit.Token{}
	current := []klpgit.Token{}

	for _, tok := range tokens {
		parts := strings.Split(tok.Text, "\n")
		for i, part := range parts {
			current = appendToken(current, tok.Kind, part)
			if i < len(parts)-1 {
				result = append(result, current)
				current = []klpgit.Token{}
			}
		}
	}
	return append(result, current)
}

// Install registers a chroma lexer over every language key of reg that
// chroma recognizes and returns the number of languages replaced.
func Install(reg *highlight.Registry) int {
	n := 0
	for _, key := range reg.Keys() {
		l := NewLexer(key)
		if l == nil {
			continue
		}
		reg.Register(key, l.Name(), l)
		n++
	}
	return n
}
