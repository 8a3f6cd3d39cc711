package domain

import "errors"

// ErrNotFound is returned by repositories and clients when no record exists for an id.
var ErrNotFound = errors.New("not found")
