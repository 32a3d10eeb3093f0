package runtime

import (
	"fmt"

	"quill/interpreter-go/pkg/ast"
)

// ErrorKind is the stable tag carried by every language-level failure.
type ErrorKind string

const (
	NameError           ErrorKind = "NameError"
	AttributeError      ErrorKind = "AttributeError"
	ParameterCountError ErrorKind = "ParameterCountError"
	TypeError           ErrorKind = "TypeError"
	NoMatchError        ErrorKind = "NoMatchError"
	ControlFlowError    ErrorKind = "ControlFlowError"
	RuntimeLimitError   ErrorKind = "RuntimeLimitError"
	ImportError         ErrorKind = "ImportError"
	// UserError tags values raised from the language with `raise`.
	UserError ErrorKind = "Error"
)

// Error is both a runtime value (catchable from the language) and a Go error
// (propagating through the evaluator's error returns).
type Error struct {
	ErrKind ErrorKind
	Message string
	Pos     *ast.Position
	// Payload is the raised value for user errors, nil otherwise.
	Payload Value
}

func (*Error) Kind() Kind { return KindError }

func (e *Error) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("%s: %s (line %d, col %d)", e.ErrKind, e.Message, e.Pos.Line, e.Pos.Col)
	}
	return fmt.Sprintf("%s: %s", e.ErrKind, e.Message)
}

func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{ErrKind: kind, Message: fmt.Sprintf(format, args...)}
}

// At attaches a source position when one is available; the first position
// wins so the innermost frame is reported.
func (e *Error) At(pos *ast.Position) *Error {
	if e.Pos == nil && pos != nil {
		e.Pos = pos
	}
	return e
}
