// Package highlight implements the per-line regex lexers used by the source
// and diff views.
package highlight

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/AmKilopa/KlpGIT"
)

// Rule classifies text matching Pattern as Kind.
//
// Patterns use RE2 syntax. A leading `\b` is checked against the character
// before the match, and a leading `^` restricts the rule to the start of the
// line. Follow, when set, must match the text right after the candidate
// without being consumed. A candidate rejected by Follow is not re-entered by
// the same rule.
type Rule struct {
	Kind    klpgit.TokenKind
	Pattern string
	Follow  string
}

// Language is a named grammar.
type Language struct {
	Name  string
	Rules []Rule
}

type compiledRule struct {
	kind      klpgit.TokenKind
	re        *regexp.Regexp
	follow    *regexp.Regexp
	wordStart bool
	lineStart bool
}

// candidate is the next accepted match of a rule. A negative start means the
// rule has no further match on the line.
type candidate struct {
	start, end int
}

var noCandidate = candidate{start: -1, end: -1}

// RegexLexer tokenizes lines with an ordered set of rules. It is safe for
// concurrent use.
type RegexLexer struct {
	name  string
	rules []compiledRule
}

var _ klpgit.Lexer = (*RegexLexer)(nil)

// Compile builds a lexer for lang. Rules are ordered stably by the precedence
// of their kind so that earlier kinds win ties at the same position.
func Compile(lang Language) (*RegexLexer, error) {
	rules := make([]Rule, len(lang.Rules))
	copy(rules, lang.Rules)
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Kind.Precedence() < rules[j].Kind.Precedence()
	})

	l := &RegexLexer{name: lang.Name, rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		if r.Kind == klpgit.TokenPlain {
			return nil, fmt.Errorf("rule %q: plain kind is not allowed", r.Pattern)
		}
		cr := compiledRule{kind: r.Kind}
		pattern := r.Pattern
		if rest, ok := strings.CutPrefix(pattern, "^"); ok {
			cr.lineStart = true
			pattern = rest
		}
		if rest, ok := strings.CutPrefix(pattern, `\b`); ok {
			cr.wordStart = true
			pattern = rest
		}
		expr := `(?:` + pattern + `)`
		if cr.lineStart {
			expr = `^` + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Pattern, err)
		}
		cr.re = re
		if r.Follow != "" {
			follow, err := regexp.Compile(`^(?:` + r.Follow + `)`)
			if err != nil {
				return nil, fmt.Errorf("rule %q follow: %w", r.Pattern, err)
			}
			cr.follow = follow
		}
		l.rules = append(l.rules, cr)
	}
	return l, nil
}

// MustCompile is like Compile but panics on an invalid grammar.
func MustCompile(lang Language) *RegexLexer {
	l, err := Compile(lang)
	if err != nil {
		panic(fmt.Sprintf("highlight: compile %s: %v", lang.Name, err))
	}
	return l
}

// Name returns the human readable language name.
func (l *RegexLexer) Name() string { return l.name }

// Tokenize splits line into tokens whose texts concatenate back to line.
// Untyped gaps between matches are merged into single plain tokens. An empty
// line yields an empty slice.
//
// Each rule keeps its next candidate and only searches again once the scan
// has moved past it, so a rule that never closes costs one search per line.
func (l *RegexLexer) Tokenize(line string) []klpgit.Token {
	tokens := []klpgit.Token{}
	if line == "" {
		return tokens
	}

	next := make([]candidate, len(l.rules))
	for k := range l.rules {
		next[k] = l.rules[k].find(line, 0)
	}

	gap := 0
	for i := 0; i < len(line); {
		win, nearest := -1, len(line)
		for k := range next {
			if next[k].start >= 0 && next[k].start < i {
				next[k] = l.rules[k].find(line, i)
			}
			start := next[k].start
			if start < 0 {
				continue
			}
			if start == i && win < 0 {
				win = k
			}
			nearest = min(nearest, start)
		}
		if win < 0 {
			i = nearest
			continue
		}

		if gap < i {
			tokens = append(tokens, klpgit.Token{Text: line[gap:i]})
		}
		end := next[win].end
		tokens = append(tokens, klpgit.Token{Kind: l.rules[win].kind, Text: line[i:end]})
		i = end
		gap = i
	}
	if gap < len(line) {
		tokens = append(tokens, klpgit.Token{Text: line[gap:]})
	}
	return tokens
}

// find returns the first accepted match of r starting at or after from.
func (r *compiledRule) find(line string, from int) candidate {
	if r.lineStart {
		if from > 0 {
			return noCandidate
		}
		loc := r.re.FindStringIndex(line)
		if loc == nil || loc[1] == 0 ||
			r.wordStart && !atWordBoundary(line, 0) ||
			r.follow != nil && !r.follow.MatchString(line[loc[1]:]) {
			return noCandidate
		}
		return candidate{start: 0, end: loc[1]}
	}

	for from < len(line) {
		loc := r.re.FindStringIndex(line[from:])
		if loc == nil {
			return noCandidate
		}
		start, end := from+loc[0], from+loc[1]
		switch {
		case start == end:
			if start == len(line) {
				return noCandidate
			}
			_, size := utf8.DecodeRuneInString(line[start:])
			from = start + size
		case r.wordStart && !atWordBoundary(line, start):
			from = nextBoundary(line, start)
		case r.follow != nil && !r.follow.MatchString(line[end:]):
			from = end
		default:
			return candidate{start: start, end: end}
		}
	}
	return noCandidate
}

// nextBoundary returns the first word boundary after i, or len(line).
func nextBoundary(line string, i int) int {
	for i++; i < len(line) && !atWordBoundary(line, i); i++ {
	}
	return i
}

func atWordBoundary(line string, i int) bool {
	before := i > 0 && isWordByte(line[i-1])
	after := i < len(line) && isWordByte(line[i])
	return before != after
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// Registry resolves file extensions to lexers. Register must not be called
// concurrently with lookups.
type Registry struct {
	extensions map[string]string
	lexers     map[string]klpgit.Lexer
	names      map[string]string
}

// NewRegistry returns a registry holding the built-in languages.
func NewRegistry() *Registry {
	r := &Registry{
		extensions: make(map[string]string, len(Extensions)),
		lexers:     make(map[string]klpgit.Lexer, len(Languages)),
		names:      make(map[string]string, len(Languages)),
	}
	for key, lang := range Languages {
		r.Register(key, lang.Name, MustCompile(lang))
	}
	for ext, key := range Extensions {
		r.extensions[ext] = key
	}
	return r
}

// Register installs lexer under the language key, replacing any previous one.
// The key also resolves as an extension of itself.
func (r *Registry) Register(key, name string, lexer klpgit.Lexer) {
	r.lexers[key] = lexer
	r.names[key] = name
	if _, ok := r.extensions[key]; !ok {
		r.extensions[key] = key
	}
}

// Alias maps an extension to a registered language key.
func (r *Registry) Alias(ext, key string) {
	r.extensions[strings.ToLower(ext)] = key
}

// Language returns the language key for ext, or "" if none is registered.
func (r *Registry) Language(ext string) string {
	key := r.extensions[strings.ToLower(ext)]
	if _, ok := r.lexers[key]; !ok {
		return ""
	}
	return key
}

// LanguageName returns the human readable name of the language for ext.
func (r *Registry) LanguageName(ext string) string {
	return r.names[r.Language(ext)]
}

// Lexer returns the lexer for ext, or nil.
func (r *Registry) Lexer(ext string) klpgit.Lexer {
	return r.lexers[r.Language(ext)]
}

// DetectFromPath implements klpgit.LanguageDetector.
func (r *Registry) DetectFromPath(path string) string {
	return r.LanguageName(klpgit.ClassifyExtension(path))
}

// Keys returns the registered language keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.lexers))
	for k := range r.lexers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HighlightLine tokenizes one line for the language of ext. An unknown ext
// yields the whole line as a single plain token.
func (r *Registry) HighlightLine(line, ext string) []klpgit.Token {
	if line == "" {
		return []klpgit.Token{}
	}
	lexer := r.Lexer(ext)
	if lexer == nil {
		return []klpgit.Token{{Text: line}}
	}
	return lexer.Tokenize(line)
}

// MultiLineLexer tokenizes a whole source with context carried across lines,
// returning one token slice per line or nil on failure.
type MultiLineLexer interface {
	klpgit.Lexer
	TokenizeLines(source string) [][]klpgit.Token
}

// HighlightLines tokenizes content line by line. Lines are split on "\n" and
// a trailing "\r" is dropped from each. A lexer implementing MultiLineLexer
// sees the whole content at once; when its result does not have one entry
// per line, each line is tokenized on its own.
func (r *Registry) HighlightLines(content, ext string) [][]klpgit.Token {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	if ml, ok := r.Lexer(ext).(MultiLineLexer); ok {
		if out := ml.TokenizeLines(strings.Join(lines, "\n")); len(out) == len(lines) {
			return out
		}
	}
	out := make([][]klpgit.Token, len(lines))
	for i, line := range lines {
		out[i] = r.HighlightLine(line, ext)
	}
	return out
}

var defaultRegistry = NewRegistry()

// Default returns the shared registry of built-in languages.
func Default() *Registry { return defaultRegistry }

// HighlightLine tokenizes line with the built-in languages.
func HighlightLine(line, ext string) []klpgit.Token {
	return defaultRegistry.HighlightLine(line, ext)
}
