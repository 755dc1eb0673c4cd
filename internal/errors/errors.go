// Package errors provides structured error types for studydesk.
// These errors record which operation failed and what category of failure
// it was, so the UI can decide between an inline banner, an alert, or a
// silent fallback.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindPermission
	KindIO
	KindNetwork
	KindConfig
	KindLimit
	KindBusy
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindPermission:
		return "permission denied"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindConfig:
		return "configuration error"
	case KindLimit:
		return "limit reached"
	case KindBusy:
		return "operation in progress"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for studydesk.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the text meant for the user: the innermost context or
// underlying message without the operation prefix.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Context != "" {
			return e.Context
		}
		if e.Err != nil {
			return Message(e.Err)
		}
	}
	return err.Error()
}

// HTTP errors

// RequestFailed wraps a transport failure (no response received).
func RequestFailed(op Op, err error) error {
	return E(op, KindNetwork, "request failed", err)
}

// StatusError reports a non-2xx response. Server-supplied text is kept as
// the context so it reaches the user verbatim.
func StatusError(op Op, status int, serverMessage string) error {
	kind := KindNetwork
	switch {
	case status == 404:
		kind = KindNotFound
	case status == 401 || status == 403:
		kind = KindPermission
	case status == 400 || status == 409 || status == 422:
		kind = KindInvalid
	case status == 408 || status == 504:
		kind = KindTimeout
	}
	if serverMessage == "" {
		serverMessage = fmt.Sprintf("server returned status %d", status)
	}
	return E(op, kind, serverMessage)
}

// Validation errors

// ApplicationLimitReached is returned before submitting an application that
// would exceed the per-student cap.
func ApplicationLimitReached(studentID string, limit int) error {
	return E(Op("applications.Submit"), KindLimit,
		fmt.Sprintf("student %s already has the maximum of %d applications", studentID, limit))
}

// FileTooLarge is returned before uploading a document over the size cap.
func FileTooLarge(name string, size, limit int64) error {
	return E(Op("documents.Upload"), KindInvalid,
		fmt.Sprintf("%s is %d bytes; the limit is %d bytes", name, size, limit))
}

// EmptyMessage is returned when sending a blank chat message.
func EmptyMessage() error {
	return E(Op("chat.Send"), KindInvalid, "message is empty")
}

// UnknownField is returned when a form path does not name a field of the section.
func UnknownField(section, path string) error {
	return E(Op("profile.SetPath"), KindInvalid, fmt.Sprintf("%s has no field %q", section, path))
}

// Permission errors

// PermissionDenied is returned when the current capability cannot perform action.
func PermissionDenied(action string) error {
	return E(Op("auth.Check"), KindPermission, fmt.Sprintf("not allowed to %s", action))
}

// Busy is returned when the same operation is already in flight.
func Busy(op Op) error {
	return E(op, KindBusy, "already in progress")
}

// Config errors

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// As is errors.As from the standard library, re-exported so callers that
// import this package under the name errors still have it.
func As(err error, target any) bool {
	return errors.As(err, target)
}
