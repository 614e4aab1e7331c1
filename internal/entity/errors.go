package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("duplicate")
	ErrInsufficientStock = errors.New("not enough stock")
	ErrAlreadyDelivered  = errors.New("delivery already completed")
	ErrAlreadyCancelled  = errors.New("order already cancelled")
	ErrInvalidCount      = errors.New("count must be at least 1")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrInvalidName       = errors.New("name must not be empty")
	ErrInvalidKind       = errors.New("unknown item kind")
)
