package domain

import "fmt"

// ValidationError reports a malformed or missing field in a command payload.
// The store is left unchanged when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ReferentialIntegrityError reports a reference to a non-existent entity or a
// delete blocked by dependent records.
type ReferentialIntegrityError struct {
	Entity  EntityType
	ID      string
	Message string
}

func (e ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.Message)
}

// PermissionDeniedError reports that the actor's role lacks the capability
// required by a command.
type PermissionDeniedError struct {
	Role    Role
	Command CommandKind
}

func (e PermissionDeniedError) Error() string {
	return fmt.Sprintf("role %s may not issue %s", e.Role, e.Command)
}

// NotFoundError reports an update or delete targeting an unknown identity.
type NotFoundError struct {
	Entity EntityType
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// PersistenceError wraps a durable-store failure. It is surfaced as a warning
// and never rolls back an already-committed in-memory mutation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying failure for errors.Is / errors.As.
func (e PersistenceError) Unwrap() error { return e.Err }

// Warning records a non-fatal condition attached to a committed mutation,
// typically a durable-store write failure.
type Warning struct {
	Source  string
	Message string
}

// Result aggregates warnings produced while committing a command.
type Result struct {
	Warnings []Warning
}

// Merge appends warnings from another result.
func (r *Result) Merge(other Result) {
	if len(other.Warnings) == 0 {
		return
	}
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// HasWarnings reports whether any warnings were recorded.
func (r Result) HasWarnings() bool { return len(r.Warnings) > 0 }
