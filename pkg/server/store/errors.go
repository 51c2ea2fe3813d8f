package store

import "errors"

// ErrNotFound is returned when a lookup or conditional write matches no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when a user's email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrDuplicateSlug is returned when a blog slug is already taken.
var ErrDuplicateSlug = errors.New("slug already in use")
