package repository

import "errors"

// ErrNotFound is wrapped by every repository lookup that finds no row.
var ErrNotFound = errors.New("not found")
