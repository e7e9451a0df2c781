// Package token defines the lexical tokens and source positions shared by
// the lexer, reader, and diagnostics packages.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	// NoToken is the internal sentinel the tokenizer returns at end of input
	// when nothing is pending; the reader treats it as end of input.
	NoToken Kind = iota
	OpenList
	CloseList
	Quote
	Quasiquote
	Unquote
	Identifier
	Integer
	Text
	Invalid
)

func (k Kind) String() string {
	switch k {
	case NoToken:
		return "NoToken"
	case OpenList:
		return "OpenList"
	case CloseList:
		return "CloseList"
	case Quote:
		return "Quote"
	case Quasiquote:
		return "Quasiquote"
	case Unquote:
		return "Unquote"
	case Identifier:
		return "Identifier"
	case Integer:
		return "Integer"
	case Text:
		return "Text"
	case Invalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// Position is a 1-indexed line/column location in the source being tokenized.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is one lexical unit produced by the tokenizer. Literal holds the
// accumulated text for Identifier, Integer, Text, and Invalid tokens; it is
// empty for the punctuation kinds.
type Token struct {
	Kind    Kind
	Literal string
	Pos     Position
}

func (t Token) String() string {
	if t.Literal == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Literal)
}
