package model

import "errors"

// ErrNotFound is returned by stores when no record matches the lookup.
// Read endpoints translate it into a JSON null body rather than a 404.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when a write would leave two users
// sharing one email address.
var ErrDuplicateEmail = errors.New("email already exists")

// ErrInvalidID is returned by ParseID for malformed identifiers.
var ErrInvalidID = errors.New("invalid id")
