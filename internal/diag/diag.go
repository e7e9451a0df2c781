// Package diag provides the core's typed error taxonomy (spec §7) and the
// CLI-facing source-context formatting built on top of it.
//
// The taxonomy itself (Kind) is grounded on the teacher interpreter's
// internal/interp/errors.InterpreterError (Category + Pos + Message) and its
// internal/interp/errors catalog-of-constants convention: every error
// message used by the evaluator is a named format string here rather than
// an ad hoc fmt.Errorf scattered through call sites.
package diag

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-lustre/internal/token"
)

// Kind names one bullet of spec §7's error taxonomy.
type Kind string

const (
	KindInput            Kind = "Input"
	KindParse            Kind = "Parse"
	KindShape            Kind = "Shape"
	KindBinding          Kind = "Binding"
	KindCallable         Kind = "Callable"
	KindUnexpectedSyntax Kind = "UnexpectedSyntax"
)

// Message catalog: named format strings instead of scattered fmt.Errorf
// text, mirroring the teacher's ErrMsg* constants.
const (
	MsgNotCons           = "expected a cons cell, got %s"
	MsgNotSymbol         = "expected a symbol, got %s"
	MsgNotInteger        = "expected an integer, got %s"
	MsgUnboundSymbol     = "unbound symbol: %s"
	MsgAlreadyBound      = "symbol already bound at root: %s"
	MsgNotCallable       = "value is not callable: %s"
	MsgWrongArity        = "%s: wrong number of arguments: expected %s, got %d"
	MsgDivByZero         = "division by zero"
	MsgIntegerOutOfRange = "integer literal out of range: %s"
	MsgUnexpectedClose   = "unexpected closing parenthesis"
	MsgUnimplementedTok  = "unimplemented token: %s"
)

// Error is the core's single error type. Pos is the zero Position when the
// failure has no useful source location (e.g. a Shape error raised deep in
// the evaluator, far from the token that caused it).
type Error struct {
	Kind Kind
	Pos  token.Position
	Msg  string
	Err  error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Pos != (token.Position{}) {
		return fmt.Sprintf("%s error at %s: %s", e.Kind, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Format renders the error with source-line and caret context, grounded on
// the teacher's internal/errors.CompilerError.Format: a file:line:column
// header, the offending source line prefixed with its line number, a caret
// under the failing column, then the message. source is the full program
// text the error was raised against; file is the display name for the
// header (e.g. a path, or "<eval>"). If e.Pos is the zero Position (a Shape
// error raised deep in the evaluator, far from any token) or source has
// fewer lines than e.Pos.Line, Format falls back to the flat Error() text.
func (e *Error) Format(source, file string, color bool) string {
	if e.Pos == (token.Position{}) {
		return e.Error()
	}

	sourceLine := sourceLineAt(source, e.Pos.Line)
	if sourceLine == "" {
		return e.Error()
	}

	var sb strings.Builder
	if file != "" {
		fmt.Fprintf(&sb, "%s error in %s:%s\n", e.Kind, file, e.Pos)
	} else {
		fmt.Fprintf(&sb, "%s error at %s\n", e.Kind, e.Pos)
	}

	lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(sourceLine)
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}
	sb.WriteString("\n")

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Msg)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// sourceLineAt extracts a single 1-indexed line from source, or "" if out
// of range, mirroring the teacher's CompilerError.getSourceLine.
func sourceLineAt(source string, line int) string {
	if source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// New constructs an Error with no source position.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// NewAt constructs an Error carrying a source position.
func NewAt(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Wrap constructs an Error that chains an underlying error (e.g. a
// lexer.Error or reader.Error bubbling up as an Input/Parse kind).
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Msg: err.Error(), Err: err}
}
