package port

import (
	"errors"
	"fmt"
)

// AuthKind classifies an authentication failure.
type AuthKind string

const (
	AuthDuplicate       AuthKind = "duplicate"
	AuthBadCredentials  AuthKind = "bad_credentials"
	AuthUnauthenticated AuthKind = "unauthenticated"
	AuthTokenInvalid    AuthKind = "invalid"
	AuthTokenExpired    AuthKind = "expired"
)

// AuthError is returned by the hasher, token and auth gateway layers.
// Message is safe to show to callers; Err is kept for logs only.
type AuthError struct {
	Kind    AuthKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("auth %s: %s", e.Kind, e.Message)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Is matches any AuthError of the same kind.
func (e *AuthError) Is(target error) bool {
	var t *AuthError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// NotFoundError reports a missing resource, e.g. a profile not yet submitted.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func (e *NotFoundError) Is(target error) bool {
	var t *NotFoundError
	return errors.As(target, &t) && t.Resource == e.Resource
}

// ValidationError reports bad client input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamKind classifies a failure of the completion provider or its output.
type UpstreamKind string

const (
	UpstreamTransport   UpstreamKind = "llm_transport"
	UpstreamBadJSON     UpstreamKind = "llm_bad_json"
	UpstreamUnknownTool UpstreamKind = "llm_unknown_tool"
	UpstreamMissingArg  UpstreamKind = "llm_missing_arg"
)

// UpstreamError carries the raw model output so operators can see what the
// model actually produced. Fragment is the part that failed to decode.
type UpstreamError struct {
	Kind     UpstreamKind
	Detail   string
	Raw      string
	Fragment string
	Err      error
}

func (e *UpstreamError) Error() string {
	msg := string(e.Kind) + ": " + e.Detail
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool {
	var t *UpstreamError
	return errors.As(target, &t) && t.Kind == e.Kind
}

// Sentinel errors used across ports. Compare with errors.Is.
var (
	ErrDuplicate       = &AuthError{Kind: AuthDuplicate, Message: "already registered"}
	ErrBadCredentials  = &AuthError{Kind: AuthBadCredentials, Message: "incorrect username or password"}
	ErrUnauthenticated = &AuthError{Kind: AuthUnauthenticated, Message: "could not validate credentials"}
	ErrTokenInvalid    = &AuthError{Kind: AuthTokenInvalid, Message: "token invalid"}
	ErrTokenExpired    = &AuthError{Kind: AuthTokenExpired, Message: "token expired"}

	ErrProfileNotFound = &NotFoundError{Resource: "profile"}

	ErrLLMTransport   = &UpstreamError{Kind: UpstreamTransport}
	ErrLLMBadJSON     = &UpstreamError{Kind: UpstreamBadJSON}
	ErrLLMUnknownTool = &UpstreamError{Kind: UpstreamUnknownTool}
	ErrLLMMissingArg  = &UpstreamError{Kind: UpstreamMissingArg}

	ErrUserNotFound = errors.New("user not found")
)
