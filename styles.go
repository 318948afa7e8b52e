package klpgit

// ColorPair represents a foreground and background color combination.
// Colors are hex strings in "#RRGGBB" format. Empty strings mean no override.
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for the rows and chrome of terminal output.
type Styles struct {
	Added      ColorPair // added diff rows
	Removed    ColorPair // removed diff rows
	Context    ColorPair
	Hunk       ColorPair // @@ headers
	Meta       ColorPair // file headers
	LineNumber ColorPair // gutter
	Header     ColorPair // title bar
	Warning    ColorPair
	Info       ColorPair
}

// Palette maps token kinds to foreground colors.
type Palette struct {
	Foreground string // TokenPlain
	Keyword    string
	String     string
	Comment    string
	Number     string
	Boolean    string
	Function   string
	Type       string
	Tag        string
	Attribute  string
}

// Color returns the foreground color for kind.
func (p Palette) Color(kind TokenKind) string {
	switch kind {
	case TokenKeyword:
		return p.Keyword
	case TokenString:
		return p.String
	case TokenComment:
		return p.Comment
	case TokenNumber:
		return p.Number
	case TokenBoolean:
		return p.Boolean
	case TokenFunction:
		return p.Function
	case TokenType:
		return p.Type
	case TokenTag:
		return p.Tag
	case TokenAttribute:
		return p.Attribute
	default:
		return p.Foreground
	}
}

// Theme provides colors for terminal rendering.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
	Palette() Palette
}
