package store

import "github.com/bookdenapp/bookden-server/internal/errors"

// Sentinel errors returned by Store implementations.
var (
	ErrBookNotFound      = errors.NotFound("book not found")
	ErrUserNotFound      = errors.NotFound("user not found")
	ErrBookAlreadyExists = errors.AlreadyExists("book already exists")
	ErrUserAlreadyExists = errors.AlreadyExists("user already exists")
)
