// Package ipperr implements the IPPcode22 closed error taxonomy and its
// 1:1 mapping to process exit codes.
package ipperr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the closed taxonomy of IPPcode22 errors. Each kind maps
// to exactly one exit code.
type Kind int

const (
	// Params: CLI argument shape is invalid.
	Params Kind = iota
	// FileOpen: a file named on the command line could not be opened.
	FileOpen
	// XMLFormat: the input is not well-formed XML.
	XMLFormat
	// XMLStructure: the XML is well-formed but violates the instruction schema.
	XMLStructure
	// Semantics: undefined/duplicate label, duplicate DEFVAR, and similar
	// structural-but-not-syntactic errors.
	Semantics
	// Operands: wrong operand type(s) for an opcode.
	Operands
	// VarMissing: a read/write names a variable absent from its frame.
	VarMissing
	// FrameMissing: a reference names a frame that does not currently exist.
	FrameMissing
	// MissingValue: a read observes an Uninit slot, empty stack, or empty
	// call stack where a value was required.
	MissingValue
	// OperandValue: operand has the right type but an illegal value
	// (division by zero, EXIT out of range, etc).
	OperandValue
	// StringError: a string/character operation indexed out of bounds or
	// with an invalid code point.
	StringError
	// Internal: a bug in the interpreter itself.
	Internal
)

// exitCodes is the authoritative Kind -> exit code table (spec §6).
var exitCodes = [...]int{
	Params:       10,
	FileOpen:     11,
	XMLFormat:    31,
	XMLStructure: 32,
	Semantics:    52,
	Operands:     53,
	VarMissing:   54,
	FrameMissing: 55,
	MissingValue: 56,
	OperandValue: 57,
	StringError:  58,
	Internal:     99,
}

var kindNames = [...]string{
	Params:       "params",
	FileOpen:     "file-open",
	XMLFormat:    "xml-format",
	XMLStructure: "xml-structure",
	Semantics:    "semantics",
	Operands:     "operands",
	VarMissing:   "var-missing",
	FrameMissing: "frame-missing",
	MissingValue: "missing-value",
	OperandValue: "operand-value",
	StringError:  "string-error",
	Internal:     "internal",
}

// ExitCode returns the exit code associated with k.
func (k Kind) ExitCode() int { return exitCodes[k] }

func (k Kind) String() string { return kindNames[k] }

// Error is the concrete error type carrying a Kind and an underlying
// cause. It implements the error interface and unwraps via errors.Cause,
// matching the teacher's own convention of wrapping causes with
// github.com/pkg/errors and inspecting them at the outermost layer.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.cause)
}

// Cause implements the github.com/pkg/errors Causer interface.
func (e *Error) Cause() error { return e.cause }

// Unwrap supports errors.Is/errors.As from the standard library too.
func (e *Error) Unwrap() error { return e.cause }

// New returns a new *Error of the given kind with msg as its message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, cause: errors.New(msg)}
}

// Newf returns a new *Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, cause: errors.Errorf(format, args...)}
}

// Wrap wraps err as an *Error of the given kind, adding msg as context.
// Returns nil if err is nil. If err is already an *Error it is returned
// unchanged, keeping its own Kind.
func Wrap(err error, kind Kind, msg string) *Error {
	if err == nil {
		return nil
	}
	if ie, ok := err.(*Error); ok {
		return ie
	}
	return &Error{Kind: kind, cause: errors.Wrap(err, msg)}
}

// Wrapf wraps err as an *Error of the given kind with a formatted message.
// Like Wrap, it returns nil for a nil err and an existing *Error unchanged.
func Wrapf(err error, kind Kind, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	if ie, ok := err.(*Error); ok {
		return ie
	}
	return &Error{Kind: kind, cause: errors.Wrapf(err, format, args...)}
}

// As extracts an *Error from err, following the cause chain. ok is false
// if no *Error is found anywhere in the chain.
func As(err error) (ie *Error, ok bool) {
	for err != nil {
		if e, match := err.(*Error); match {
			return e, true
		}
		cause, has := err.(interface{ Cause() error })
		if !has {
			break
		}
		err = cause.Cause()
	}
	return nil, false
}
