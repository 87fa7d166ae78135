package domain

import "errors"

var (
	// ErrNotFound indicates the requested thread or post does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAuthRequired indicates the action needs a signed-in session.
	ErrAuthRequired = errors.New("sign in required")

	// ErrReplyTooLong indicates the reply exceeds MaxReplyLength.
	ErrReplyTooLong = errors.New("reply exceeds character limit")

	// ErrEmptyReply indicates the user submitted an empty reply.
	ErrEmptyReply = errors.New("reply cannot be empty")
)

// IsNotFound reports whether err means the thread or post is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAuth reports whether err is an authentication problem.
func IsAuth(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrAuthRequired)
}
