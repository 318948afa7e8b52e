package chroma

import (
	"github.com/AmKilopa/KlpGIT"
	chromalib "github.com/alecthomas/chroma/v2"
)

// KindOf maps a chroma token type onto the token kinds of the UI.
func KindOf(tt chromalib.TokenType) klpgit.TokenKind {
	switch tt {
	case chromalib.KeywordConstant:
		return klpgit.TokenBoolean
	case chromalib.KeywordType, chromalib.NameClass, chromalib.NameBuiltinPseudo:
		return klpgit.TokenType
	case chromalib.NameFunction, chromalib.NameFunctionMagic, chromalib.NameBuiltin:
		return klpgit.TokenFunction
	case chromalib.NameTag, chromalib.GenericHeading, chromalib.GenericSubheading:
		return klpgit.TokenTag
	case chromalib.NameAttribute:
		return klpgit.TokenAttribute
	}

	switch {
	case tt.InCategory(chromalib.Comment):
		return klpgit.TokenComment
	case tt.InSubCategory(chromalib.String):
		return klpgit.TokenString
	case tt.InSubCategory(chromalib.Number):
		return klpgit.TokenNumber
	case tt.InCategory(chromalib.Keyword):
		return klpgit.TokenKeyword
	default:
		return klpgit.TokenPlain
	}
}
