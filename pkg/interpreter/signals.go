package interpreter

import (
	"fmt"

	"quill/interpreter-go/pkg/runtime"
)

// Control flow travels as error-typed signals through ordinary Go error
// returns; each construct absorbs the signals addressed to it and re-raises
// the rest.

type breakSignal struct {
	label string
}

func (b breakSignal) Error() string {
	if b.label != "" {
		return fmt.Sprintf("break %s", b.label)
	}
	return "break"
}

type continueSignal struct {
	label string
}

func (c continueSignal) Error() string {
	if c.label != "" {
		return fmt.Sprintf("continue %s", c.label)
	}
	return "continue"
}

type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return"
}

type raiseSignal struct {
	value *runtime.Error
}

func (r raiseSignal) Error() string {
	return r.value.Error()
}

// raise wraps a language-level error so it can be caught by catch clauses.
func raise(err *runtime.Error) error {
	return raiseSignal{value: err}
}

// asRaise normalizes any runtime.Error returned through plain error paths
// (environment lookups and the like) into a raiseSignal, leaving control
// signals and internal errors untouched.
func asRaise(err error) error {
	switch e := err.(type) {
	case nil:
		return nil
	case raiseSignal, breakSignal, continueSignal, returnSignal:
		return err
	case *runtime.Error:
		return raiseSignal{value: e}
	default:
		return err
	}
}

// makeUserError wraps a raised value; an already-raised Error keeps its kind.
func makeUserError(val runtime.Value) *runtime.Error {
	if errVal, ok := val.(*runtime.Error); ok {
		return errVal
	}
	return &runtime.Error{ErrKind: runtime.UserError, Message: runtime.ToString(val), Payload: val}
}
