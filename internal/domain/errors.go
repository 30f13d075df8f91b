package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the transport layer.
type Kind int

const (
	KindUnavailable Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidArgument:
		return "invalid_argument"
	default:
		return "unavailable"
	}
}

// Error is a failure with a kind and a message that is safe to show callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind, so errors.Is(err, domain.ErrNotFound) works
// for any not-found failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Unauthenticated(msg string) *Error { return newError(KindUnauthenticated, msg, nil) }

func Forbidden(msg string) *Error { return newError(KindForbidden, msg, nil) }

func NotFound(msg string) *Error { return newError(KindNotFound, msg, nil) }

func Conflict(msg string, err error) *Error { return newError(KindConflict, msg, err) }

func InvalidArgument(msg string, err error) *Error { return newError(KindInvalidArgument, msg, err) }

func Unavailable(msg string, err error) *Error { return newError(KindUnavailable, msg, err) }

// Kind markers for errors.Is
var (
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
	ErrForbidden       = &Error{Kind: KindForbidden}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrUnavailable     = &Error{Kind: KindUnavailable}
)

// Resource errors
var (
	ErrDisplayNameExists  = errors.New("display name already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateFavorite  = errors.New("hero already in favorites")
	ErrDuplicateHeroName  = errors.New("hero name already exists")
	ErrHeroMissing        = errors.New("hero does not exist")
	ErrDraftSize          = fmt.Errorf("draft must contain exactly %d heroes", DraftSize)
	ErrRatingRange        = fmt.Errorf("rating must be between %d and %d", MinRating, MaxRating)
)

// KindOf reports the kind of err. Errors without a kind are Unavailable.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnavailable
}

// MessageOf returns the caller-safe message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "service unavailable"
}
