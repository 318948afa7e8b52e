package highlight

import (
	"strings"

	"github.com/AmKilopa/KlpGIT"
)

// Extensions maps a file extension to a language key of Languages.
var Extensions = map[string]string{
	"js": "js", "jsx": "js", "mjs": "js", "cjs": "js",
	"ts": "js", "tsx": "js", "mts": "js", "cts": "js",
	"py": "py", "pyw": "py",
	"css": "css", "scss": "css", "less": "css",
	"json": "json", "jsonc": "json",
	"html": "html", "htm": "html", "xml": "html", "svg": "html", "vue": "html", "svelte": "html",
	"md": "md", "mdx": "md",
	"rb": "rb", "ruby": "rb",
	"go": "go",
	"rs": "rs", "rust": "rs",
	"java": "java", "kt": "java", "kts": "java", "scala": "java",
	"c": "c", "cpp": "c", "cc": "c", "h": "c", "hpp": "c",
	"sh": "sh", "bash": "sh", "zsh": "sh", "fish": "sh",
	"yaml": "yaml", "yml": "yaml",
	"toml": "toml",
	"sql": "sql",
	"php": "php",
}

const bt = "`"

// Shared sub-patterns.
const (
	lineComment  = `//.*`
	hashComment  = `#.*`
	blockComment = `/\*.*?\*/`
	dqString     = `"(?:[^"\\]|\\.)*"`
	sqString     = `'(?:[^'\\]|\\.)*'`
	rawSQString  = `'[^']*'`
	simpleNumber = `\b\d+\.?\d*\b`
	expNumber    = `\b\d+\.?\d*(?:e[+-]?\d+)?\b`
	identCall    = `\b[a-zA-Z_]\w*`
	typeName     = `\b[A-Z]\w*\b`
	callFollow   = `\s*\(`
)

// words builds a whole-word alternation.
func words(ws ...string) string {
	return `\b(?:` + strings.Join(ws, "|") + `)\b`
}

func rule(kind klpgit.TokenKind, pattern string) Rule {
	return Rule{Kind: kind, Pattern: pattern}
}

func followed(kind klpgit.TokenKind, pattern, follow string) Rule {
	return Rule{Kind: kind, Pattern: pattern, Follow: follow}
}

// Languages is the built-in grammar table keyed by language key.
var Languages = map[string]Language{
	"js": {Name: "JavaScript", Rules: []Rule{
		rule(klpgit.TokenComment, lineComment),
		rule(klpgit.TokenComment, blockComment),
		rule(klpgit.TokenString, dqString),
		rule(klpgit.TokenString, sqString),
		rule(klpgit.TokenString, bt+`(?:[^`+bt+`\\]|\\.)*`+bt),
		rule(klpgit.TokenNumber, expNumber),
		rule(klpgit.TokenKeyword, words("const", "let", "var", "function", "class", "if", "else", "return",
			"import", "export", "from", "async", "await", "for", "while", "do", "try", "catch", "throw", "new",
			"typeof", "instanceof", "interface", "type", "enum", "extends", "implements", "default", "switch",
			"case", "break", "continue", "finally", "void", "delete", "yield", "of", "in", "as", "super", "this",
			"static", "public", "private", "protected", "readonly", "abstract", "declare", "module", "namespace",
			"require", "keyof", "infer")),
		rule(klpgit.TokenBoolean, words("true", "false", "null", "undefined", "NaN", "Infinity")),
		followed(klpgit.TokenFunction, `\b[a-zA-Z_$][\w$]*`, callFollow),
		rule(klpgit.TokenType, typeName),
	}},

	"py": {Name: "Python", Rules: []Rule{
		rule(klpgit.TokenComment, hashComment),
		rule(klpgit.TokenString, `""".*?"""`),
		rule(klpgit.TokenString, `'''.*?'''`),
		rule(klpgit.TokenString, `f?`+dqString),
		rule(klpgit.TokenString, `f?`+sqString),
		rule(klpgit.TokenNumber, expNumber),
		rule(klpgit.TokenKeyword, words("def", "class", "if", "elif", "else", "for", "while", "return", "import",
			"from", "as", "try", "except", "finally", "raise", "with", "yield", "pass", "break", "continue", "and",
			"or", "not", "in", "is", "lambda", "async", "await", "global", "nonlocal", "assert", "del", "print")),
		rule(klpgit.TokenBoolean, words("True", "False", "None")),
		followed(klpgit.TokenFunction, identCall, callFollow),
		rule(klpgit.TokenType, typeName),
	}},

	"css": {Name: "CSS", Rules: []Rule{
		rule(klpgit.TokenComment, blockComment),
		rule(klpgit.TokenString, dqString),
		rule(klpgit.TokenString, sqString),
		rule(klpgit.TokenNumber, `\b\d+\.?\d*(?:px|em|rem|%|vh|vw|vmin|vmax|s|ms|deg|fr|ch)?\b`),
		rule(klpgit.TokenKeyword, words("important", "inherit", "initial", "unset", "revert", "none", "auto",
			"solid", "dashed", "flex", "grid", "block", "inline", "inline-block", "relative", "absolute", "fixed",
			"sticky", "hidden", "visible", "scroll", "wrap", "nowrap", "center", "normal", "bold", "italic")),
		rule(klpgit.TokenFunction, `[.#:]+[\w-]+`),
		rule(klpgit.TokenType, `@[\w-]+`),
	}},

	// Object keys are strings, other string values are attributes.
	"json": {Name: "JSON", Rules: []Rule{
		followed(klpgit.TokenString, dqString, `\s*:`),
		rule(klpgit.TokenNumber, `-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?\b`),
		rule(klpgit.TokenBoolean, words("true", "false", "null")),
		rule(klpgit.TokenAttribute, dqString),
	}},

	"html": {Name: "HTML", Rules: []Rule{
		rule(klpgit.TokenComment, `<!--.*?-->`),
		rule(klpgit.TokenString, `"[^"]*"`),
		rule(klpgit.TokenString, rawSQString),
		rule(klpgit.TokenTag, `</?[\w-]+`),
		rule(klpgit.TokenTag, `/?>`),
		followed(klpgit.TokenAttribute, `\b[\w-]+`, `=`),
	}},

	"rb": {Name: "Ruby", Rules: []Rule{
		rule(klpgit.TokenComment, hashComment),
		rule(klpgit.TokenString, dqString),
		rule(klpgit.TokenString, sqString),
		rule(klpgit.TokenNumber, simpleNumber),
		rule(klpgit.TokenKeyword, words("def", "class", "module", "if", "elsif", "else", "unless", "while",
			"until", "for", "do", "end", "begin", "rescue", "ensure", "return", "yield", "require", "include",
			"extend", "attr_accessor", "attr_reader", "attr_writer", "puts", "raise", "then", "and", "or", "not",
			"in", "self", "super")),
		rule(klpgit.TokenBoolean, words("true", "false", "nil")),
		followed(klpgit.TokenFunction, `\b[a-zA-Z_]\w*[!?]?`, `[\s(]`),
		rule(klpgit.TokenType, typeName),
	}},

	"go": {Name: "Go", Rules: []Rule{
		rule(klpgit.TokenComment, lineComment),
		rule(klpgit.TokenComment, blockComment),
		rule(klpgit.TokenString, dqString),
		rule(klpgit.TokenString, bt+`[^`+bt+`]*`+bt),
		rule(klpgit.TokenString, sqString),
		rule(klpgit.TokenNumber, simpleNumber),
		rule(klpgit.TokenKeyword, words("func", "package", "import", "var", "const", "type", "struct",
			"interface", "map", "chan", "go", "defer", "return", "if", "else", "for", "range", "switch", "case",
			"default", "break", "continue", "select", "fallthrough", "goto")),
		rule(klpgit.TokenBoolean, words("true", "false", "nil", "iota")),
		followed(klpgit.TokenFunction, identCall, callFollow),
		rule(klpgit.TokenType, typeName),
	}},

	"rs": {Name: "Rust", Rules: []Rule{
		rule(klpgit.TokenComment, lineComment),
		rule(klpgit.TokenComment, blockComment),
		rule(klpgit.TokenString, dqString),
		rule(klpgit.TokenNumber, simpleNumber),
		rule(klpgit.TokenKeyword, words("fn", "let", "mut", "pub", "use", "mod", "struct", "enum", "impl",
			"trait", "match", "if", "else", "for", "while", "loop", "return", "break", "continue", "where",
			"async", "await", "move", "ref", "self", "super", "crate", "as", "in", "type", "const", "static",
			"unsafe", "extern")),
		rule(klpgit.TokenBoolean, words("true", "false")),
		followed(klpgit.TokenFunction, identCall, `\s*[(<]`),
		rule(klpgit.TokenType, typeName),
	}},

	"java": {Name: "Java", Rules: []Rule{
		rule(klpgit.TokenComment, lineComment),
		rule(klpgit.TokenComment, blockComment),
		rule(klpgit.TokenString, dqString),
		rule(klpgit.TokenString, sqString),
		rule(klpgit.TokenNumber, `\b\d+\.?\d*[fFdDlL]?\b`),
		rule(klpgit.TokenKeyword, words("class", "interface", "extends", "implements", "import", "package",
			"public", "private", "protected", "static", "final", "abstract", "void", "return", "if", "else", "for",
			"while", "do", "switch", "case", "break", "continue", "try", "catch", "finally", "throw", "throws",
			"new", "this", "super", "instanceof", "default", "synchronized", "volatile", "transient", "native",
			"enum", "assert", "var", "val", "fun", "object", "override", "when", "sealed", "data", "companion")),
		rule(klpgit.TokenBoolean, words("true", "false", "null")),
		followed(klpgit.TokenFunction, identCall, callFollow),
		rule(klpgit.TokenType, typeName),
	}},

	"c": {Name: "C/C++", Rules: []Rule{
		rule(klpgit.TokenComment, lineComment),
		rule(klpgit.TokenComment, blockComment),
		rule(klpgit.TokenString, dqString),
		rule(klpgit.TokenString, sqString),
		rule(klpgit.TokenNumber, `\b\d+\.?\d*[fFuUlL]*\b`),
		rule(klpgit.TokenKeyword, words("auto", "break", "case", "char", "const", "continue", "default", "do",
			"double", "else", "enum", "extern", "float", "for", "goto", "if", "inline", "int", "long", "register",
			"return", "short", "signed", "sizeof", "static", "struct", "switch", "typedef", "union", "unsigned",
			"void", "volatile", "while", "class", "namespace", "template", "typename", "using", "virtual",
			"public", "private", "protected", "override", "constexpr", "noexcept", "include", "define",
			"ifdef", "ifndef", "endif", "pragma")),
		rule(klpgit.TokenBoolean, words("true", "false", "NULL", "nullptr")),
		followed(klpgit.TokenFunction, identCall, callFollow),
		rule(klpgit.TokenType, typeName),
	}},

	// Variable expansions are reported as functions.
	"sh": {Name: "Shell", Rules: []Rule{
		rule(klpgit.TokenComment, hashComment),
		rule(klpgit.TokenString, dqString),
		rule(klpgit.TokenString, rawSQString),
		rule(klpgit.TokenNumber, `\b\d+\b`),
		rule(klpgit.TokenKeyword, words("if", "then", "else", "elif", "fi", "for", "while", "do", "done", "case",
			"esac", "function", "return", "exit", "echo", "export", "source", "alias", "local", "readonly",
			"shift", "eval", "exec", "set", "unset", "trap", "cd", "pwd", "ls", "cat", "grep", "sed", "awk",
			"chmod", "chown", "mkdir", "rm", "cp", "mv", "ln", "find", "xargs", "read", "test")),
		rule(klpgit.TokenFunction, `\$[\w{]+`),
	}},

	// Mapping keys are reported as keywords.
	"yaml": {Name: "YAML", Rules: []Rule{
		rule(klpgit.TokenComment, hashComment),
		rule(klpgit.TokenString, dqString),
		rule(klpgit.TokenString, rawSQString),
		rule(klpgit.TokenNumber, simpleNumber),
		followed(klpgit.TokenKeyword, `[\w.-]+`, `\s*:`),
		rule(klpgit.TokenBoolean, words("true", "false", "yes", "no", "null", "on", "off")),
	}},

	"toml": {Name: "TOML", Rules: []Rule{
		rule(klpgit.TokenComment, hashComment),
		rule(klpgit.TokenString, `""".*?"""`),
		rule(klpgit.TokenString, `'''.*?'''`),
		rule(klpgit.TokenString, dqString),
		rule(klpgit.TokenString, rawSQString),
		rule(klpgit.TokenNumber, simpleNumber),
		followed(klpgit.TokenKeyword, `[\w.-]+`, `\s*=`),
		rule(klpgit.TokenBoolean, words("true", "false")),
		rule(klpgit.TokenTag, `\[[\w.-]+\]`),
	}},

	"sql": {Name: "SQL", Rules: []Rule{
		rule(klpgit.TokenComment, `--.*`),
		rule(klpgit.TokenComment, blockComment),
		rule(klpgit.TokenString, sqString),
		rule(klpgit.TokenNumber, simpleNumber),
		rule(klpgit.TokenKeyword, `\b(?i:SELECT|FROM|WHERE|INSERT|INTO|VALUES|UPDATE|SET|DELETE|CREATE|DROP|`+
			`ALTER|TABLE|INDEX|JOIN|LEFT|RIGHT|INNER|OUTER|ON|AND|OR|NOT|IN|IS|NULL|AS|ORDER|BY|GROUP|HAVING|`+
			`LIMIT|OFFSET|UNION|ALL|DISTINCT|BETWEEN|LIKE|EXISTS|CASE|WHEN|THEN|ELSE|END|COUNT|SUM|AVG|MIN|MAX|`+
			`PRIMARY|KEY|FOREIGN|REFERENCES|UNIQUE|CHECK|DEFAULT|CONSTRAINT|CASCADE)\b`),
		rule(klpgit.TokenBoolean, `\b(?i:TRUE|FALSE)\b`),
	}},

	"php": {Name: "PHP", Rules: []Rule{
		rule(klpgit.TokenComment, lineComment),
		rule(klpgit.TokenComment, hashComment),
		rule(klpgit.TokenComment, blockComment),
		rule(klpgit.TokenString, dqString),
		rule(klpgit.TokenString, sqString),
		rule(klpgit.TokenNumber, simpleNumber),
		rule(klpgit.TokenKeyword, words("function", "class", "if", "else", "elseif", "for", "foreach", "while",
			"do", "switch", "case", "break", "continue", "return", "echo", "print", "public", "private",
			"protected", "static", "abstract", "final", "interface", "extends", "implements", "new", "try",
			"catch", "finally", "throw", "use", "namespace", "require", "include", "require_once",
			"include_once", "array", "isset", "empty", "unset", "var", "const", "global")),
		rule(klpgit.TokenBoolean, `\b(?i:true|false|null)\b`),
		rule(klpgit.TokenFunction, `\$\w+`),
		followed(klpgit.TokenFunction, identCall, callFollow),
		rule(klpgit.TokenType, typeName),
	}},

	// Headings are tags, code spans strings, emphasis keywords, links
	// comments and list markers attributes.
	"md": {Name: "Markdown", Rules: []Rule{
		rule(klpgit.TokenComment, `\[[^\]]+\]\([^)]+\)`),
		rule(klpgit.TokenString, bt+`[^`+bt+`]+`+bt),
		rule(klpgit.TokenKeyword, `\*\*[^*]+\*\*`),
		rule(klpgit.TokenKeyword, `__[^_]+__`),
		rule(klpgit.TokenTag, `^#{1,6}\s.*`),
		rule(klpgit.TokenAttribute, `^\s*[-*+]\s`),
		rule(klpgit.TokenAttribute, `^\s*\d+\.\s`),
	}},
}
