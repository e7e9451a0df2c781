// Package reader parses a token stream into a heap-allocated value graph in
// cons-list form, per spec §4.3. It owns no evaluation semantics: Read
// returns a value.Value (or EOF, signalled by ok=false) for the evaluator
// to consume.
package reader

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cwbudde/go-lustre/internal/lexer"
	"github.com/cwbudde/go-lustre/internal/token"
	"github.com/cwbudde/go-lustre/internal/value"
)

// upperCaser performs Unicode-correct upper-casing of identifiers, grounded
// on the teacher interpreter's habit of reaching for golang.org/x/text for
// any text transform instead of hand-rolling strings.ToUpper, which would
// mishandle non-ASCII letters such as the κόσμε example from spec §4.2.
var upperCaser = cases.Upper(language.Und)

// Error is the reader's typed error, covering spec §7's Parse error and
// Unexpected-syntax taxonomy entries.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Reader turns a token stream into value.Value graphs.
type Reader struct {
	lex *lexer.Lexer
}

// New constructs a Reader over lex.
func New(lex *lexer.Lexer) *Reader {
	return &Reader{lex: lex}
}

// Read parses the next top-level expression. ok is false at end of input,
// distinguishing EOF from a legitimately-read Nil (spec §4.3/§7).
func (r *Reader) Read() (v value.Value, ok bool, err error) {
	tok, err := r.lex.Next()
	if err != nil {
		return nil, false, err
	}

	switch tok.Kind {
	case token.NoToken:
		return nil, false, nil

	case token.Integer:
		n, perr := strconv.ParseInt(tok.Literal, 10, 64)
		if perr != nil || n < math.MinInt32 || n > math.MaxInt32 {
			return nil, false, &Error{Pos: tok.Pos, Msg: fmt.Sprintf("integer literal out of range: %s", tok.Literal)}
		}
		return value.NewInteger(int32(n)), true, nil

	case token.Text:
		return value.NewString(tok.Literal), true, nil

	case token.Identifier:
		return value.NewSymbol(upperCaser.String(tok.Literal)), true, nil

	case token.OpenList:
		v, err := r.readList()
		if err != nil {
			return nil, false, err
		}
		return v, true, nil

	case token.Quote:
		inner, ok, err := r.Read()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, &Error{Pos: tok.Pos, Msg: "unexpected end of input after quote"}
		}
		return value.List(value.NewSymbol("QUOTE"), inner), true, nil

	case token.CloseList:
		return nil, false, &Error{Pos: tok.Pos, Msg: "unexpected closing parenthesis"}

	case token.Quasiquote, token.Unquote:
		return nil, false, &Error{Pos: tok.Pos, Msg: fmt.Sprintf("unimplemented: %s", tok.Kind)}

	case token.Invalid:
		return nil, false, &Error{Pos: tok.Pos, Msg: fmt.Sprintf("invalid character: %q", tok.Literal)}

	default:
		return nil, false, &Error{Pos: tok.Pos, Msg: fmt.Sprintf("unimplemented token: %s", tok.Kind)}
	}
}

// readList reads the elements of a list until a matching CloseList,
// assembling a right-nested Cons chain terminated by Nil.
func (r *Reader) readList() (value.Value, error) {
	tok, err := r.lex.Next()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.NoToken {
		return nil, &Error{Pos: tok.Pos, Msg: "unexpected end of input inside list"}
	}
	if tok.Kind == token.CloseList {
		return value.Nil(), nil
	}

	r.lex.Putback(tok)
	head, ok, err := r.Read()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &Error{Pos: tok.Pos, Msg: "unexpected end of input inside list"}
	}
	tail, err := r.readList()
	if err != nil {
		return nil, err
	}
	return value.NewCons(head, tail), nil
}
