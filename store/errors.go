package store

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateLink is matched by every DuplicateLinkError
	ErrDuplicateLink = errors.New("job link already exists in the tracker")
	// ErrInvalidRecord is matched by every ValidationError
	ErrInvalidRecord = errors.New("invalid job application")
	// ErrCorruptData marks a records file that exists but could not be read or parsed
	ErrCorruptData = errors.New("records file is unreadable")
)

// DuplicateLinkError is returned by Add when the link is already tracked
type DuplicateLinkError struct {
	Link     string // link as given to Add, trimmed
	Existing string // link of the record already stored
	Company  string // company of the record already stored
}

func (e *DuplicateLinkError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrDuplicateLink, e.Existing, e.Company)
}

// Is makes errors.Is(err, ErrDuplicateLink) succeed
func (e *DuplicateLinkError) Is(target error) bool {
	return target == ErrDuplicateLink
}

// ValidationError is returned by Add when a field is missing or malformed
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidRecord, e.Field, e.Message)
}

// Is makes errors.Is(err, ErrInvalidRecord) succeed
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRecord
}
