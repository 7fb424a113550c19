package usecases

import "errors"

// Kind tags a failure so the HTTP boundary can resolve a status code once,
// without inspecting message text.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindConflict
)

// Error is the plain failure signal the use cases return. Message is the
// user-facing text carried through the response envelope unchanged.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NotFound(message string) error     { return &Error{Kind: KindNotFound, Message: message} }
func Unauthorized(message string) error { return &Error{Kind: KindUnauthorized, Message: message} }
func Conflict(message string) error     { return &Error{Kind: KindConflict, Message: message} }
func Internal(message string) error     { return &Error{Kind: KindInternal, Message: message} }

// KindOf extracts the tag from an error, defaulting to internal for
// anything untagged (driver errors and the like).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
