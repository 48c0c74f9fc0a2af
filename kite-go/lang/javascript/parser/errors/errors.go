// Package errors defines the syntax errors returned by the javascript parser
// and classifies them by kind.
package errors

import (
	"fmt"
	"go/token"

	pkgerrors "github.com/pkg/errors"
)

// Kind identifies the class of a syntax error.
type Kind int

// List of error kinds.
const (
	// Grammar is an unexpected or missing token, or an invalid construct.
	Grammar Kind = iota
	// Mode is a construct not permitted by the selected dialect.
	Mode
	// Scope is a break, continue, return or yield with nothing to refer to.
	Scope
	// Resource is input nested deeper than the parser allows.
	Resource
	// Lexical is a token the scanner could not recognize.
	Lexical
)

var kindString = map[Kind]string{
	Grammar:  "grammar",
	Mode:     "mode",
	Scope:    "scope",
	Resource: "resource",
	Lexical:  "lexical",
}

// String representation of a Kind.
func (k Kind) String() string {
	if s, ok := kindString[k]; ok {
		return s
	}
	return fmt.Sprintf("invalid kind (%d)", k)
}

// SyntaxError is the single error a failed parse returns.
type SyntaxError struct {
	Kind     Kind
	Msg      string
	Filename string
	Line     int
	// Pos is the byte offset of the offending token.
	Pos token.Pos
}

// Error formats the error as file:line: message.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Filename, e.Line, e.Msg)
}

// AsSyntaxError returns the SyntaxError at the root of err, if there is one.
// Errors wrapped with github.com/pkg/errors are unwrapped first.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	if err == nil {
		return nil, false
	}
	se, ok := pkgerrors.Cause(err).(*SyntaxError)
	return se, ok
}

// KindOf returns the kind of the syntax error at the root of err. The second
// result is false when err is not a syntax error.
func KindOf(err error) (Kind, bool) {
	se, ok := AsSyntaxError(err)
	if !ok {
		return Grammar, false
	}
	return se.Kind, true
}
