package repository

import "errors"

var (
	// ErrNotFound means no document matched the id
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate means a unique index rejected the write
	ErrDuplicate = errors.New("duplicate key")
	// ErrNotInList means the embedded list has no entry for the product
	ErrNotInList = errors.New("product not in list")
	// ErrAlreadyInList means the embedded list already holds the product
	ErrAlreadyInList = errors.New("product already in list")
)
