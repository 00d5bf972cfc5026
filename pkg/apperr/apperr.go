package apperr

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies a recoverable request-level failure. Every service
// method fails with exactly one of these kinds or an internal error.
type Kind int

const (
	// KindNotFound covers absent entities and cross-tenant lookups;
	// the two are deliberately indistinguishable.
	KindNotFound Kind = iota
	// KindAlreadyExists covers natural-key collisions on create.
	KindAlreadyExists
	// KindInvalidArgument covers rejected mutations: insufficient
	// points, protected system rows, missing required fields.
	KindInvalidArgument
)

// Error is a classified service error.
type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

// Kind returns the classification of the error.
func (e *Error) Kind() Kind {
	return e.kind
}

// NotFound creates a NotFound error.
func NotFound(msg string) error {
	return &Error{kind: KindNotFound, msg: msg}
}

// NotFoundf creates a NotFound error with formatting.
func NotFoundf(format string, args ...interface{}) error {
	return &Error{kind: KindNotFound, msg: errors.Errorf(format, args...).Error()}
}

// AlreadyExists creates an AlreadyExists error.
func AlreadyExists(msg string) error {
	return &Error{kind: KindAlreadyExists, msg: msg}
}

// AlreadyExistsf creates an AlreadyExists error with formatting.
func AlreadyExistsf(format string, args ...interface{}) error {
	return &Error{kind: KindAlreadyExists, msg: errors.Errorf(format, args...).Error()}
}

// InvalidArgument creates an InvalidArgument error.
func InvalidArgument(msg string) error {
	return &Error{kind: KindInvalidArgument, msg: msg}
}

// InvalidArgumentf creates an InvalidArgument error with formatting.
func InvalidArgumentf(format string, args ...interface{}) error {
	return &Error{kind: KindInvalidArgument, msg: errors.Errorf(format, args...).Error()}
}

// Wrap annotates err with a message while preserving its classification.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return &Error{kind: appErr.kind, msg: msg + ": " + appErr.msg}
	}
	return errors.Wrap(err, msg)
}

// IsKind reports whether err is a classified error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind == kind
	}
	return false
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}

// IsAlreadyExists reports whether err is an AlreadyExists error.
func IsAlreadyExists(err error) bool {
	return IsKind(err, KindAlreadyExists)
}

// IsInvalidArgument reports whether err is an InvalidArgument error.
func IsInvalidArgument(err error) bool {
	return IsKind(err, KindInvalidArgument)
}

// HTTPStatus maps an error to the status code the admin API returns for it.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindAlreadyExists:
		return http.StatusConflict
	case KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
