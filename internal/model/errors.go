package model

import "errors"

var (
	// ErrValidation is returned for payloads that break a field rule
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCategory is returned for category names outside the enum
	ErrInvalidCategory = errors.New("invalid category")
)
