package klpgit

import "strings"

// TokenKind classifies a highlighted span of a source line.
type TokenKind string

// Token kinds. TokenPlain marks text no rule matched.
const (
	TokenPlain     TokenKind = ""
	TokenKeyword   TokenKind = "keyword"
	TokenString    TokenKind = "string"
	TokenComment   TokenKind = "comment"
	TokenNumber    TokenKind = "number"
	TokenBoolean   TokenKind = "boolean"
	TokenFunction  TokenKind = "function-name"
	TokenType      TokenKind = "type-name"
	TokenTag       TokenKind = "tag"
	TokenAttribute TokenKind = "attribute"
)

// TokenKinds lists the typed kinds in match precedence order: when two rules
// match at the same position the earlier kind wins.
var TokenKinds = []TokenKind{
	TokenComment,
	TokenString,
	TokenNumber,
	TokenKeyword,
	TokenBoolean,
	TokenFunction,
	TokenType,
	TokenTag,
	TokenAttribute,
}

// Precedence returns the rank of k in TokenKinds, or len(TokenKinds) for
// TokenPlain and unknown kinds.
func (k TokenKind) Precedence() int {
	for i, kind := range TokenKinds {
		if kind == k {
			return i
		}
	}
	return len(TokenKinds)
}

// Token is a classified substring of a source line. The tokens of a line
// concatenate back to the line exactly.
type Token struct {
	Kind TokenKind `json:"kind,omitempty"`
	Text string    `json:"text"`
}

// Lexer splits one line of source into tokens.
type Lexer interface {
	Tokenize(line string) []Token
}

// LexerFunc adapts a function to the Lexer interface.
type LexerFunc func(line string) []Token

// Tokenize calls f(line).
func (f LexerFunc) Tokenize(line string) []Token { return f(line) }

// LanguageDetector determines a human readable language name from a file path.
type LanguageDetector interface {
	// DetectFromPath returns the language name for the given path,
	// or an empty string if the language cannot be determined.
	DetectFromPath(path string) string
}

// ClassifyExtension returns the lowercased text after the final '.' of the
// base name of filename, or "" when the base name has no '.'.
func ClassifyExtension(filename string) string {
	name := filename[strings.LastIndexAny(filename, `/\`)+1:]
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// JoinTokens concatenates token texts.
func JoinTokens(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}
