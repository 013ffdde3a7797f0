package repository

import "errors"

var (
	ErrNotFound       = errors.New("NOT_FOUND")
	ErrDuplicate      = errors.New("DUPLICATE")
	ErrNoRowsAffected = errors.New("NO_ROWS_AFFECTED")
)
