package blog

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the stores and the service. Callers branch on
// these with errors.Is; the UI layer owns the user-facing presentation.
var (
	// ErrDuplicateEmail indicates a registration with an already-used email.
	ErrDuplicateEmail = errors.New("blog: email already registered")

	// ErrAuthorNotFound indicates an author lookup miss, including the
	// referential check performed before creating a post.
	ErrAuthorNotFound = errors.New("blog: author not found")

	// ErrPostNotFound indicates a post lookup miss.
	ErrPostNotFound = errors.New("blog: post not found")

	// ErrCommentNotFound indicates a comment lookup miss within a post.
	ErrCommentNotFound = errors.New("blog: comment not found")

	// ErrNotOwner indicates an attempt to modify content owned by another author.
	ErrNotOwner = errors.New("blog: not the owner")
)

// ValidationError reports invalid user input (empty fields, malformed email).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("blog: invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
