package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Permission/Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Resource related errors
	ErrItemNotFound   = errors.New("item not found")
	ErrStoreNotFound  = errors.New("store not found")
	ErrRecipeNotFound = errors.New("recipe not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
