// Package apperrors classifies failures by stage so handlers can choose an
// HTTP status from the error kind instead of matching on message text.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindUnknown covers anything not classified by a stage.
	KindUnknown Kind = iota
	// KindValidation marks caller mistakes: malformed ids, unsupported
	// content types.
	KindValidation
	// KindNotFound marks a well-formed lookup that matched nothing.
	KindNotFound
	// KindUpstream marks failures from external collaborators: object
	// store, model endpoint, text extraction.
	KindUpstream
	// KindPersistence marks database failures.
	KindPersistence
)

type Error struct {
	kind Kind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }

func (e *Error) Unwrap() error { return e.err }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, err: fmt.Errorf(format, args...)}
}

func Wrap(kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, err: err}
}

// KindOf reports the kind of the outermost classified error in err's chain,
// or KindUnknown when none is present.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
