package models

import "errors"

// Errors
var (
	ErrNilObject       = errors.New("object must not be nil")
	ErrEmptyName       = errors.New("name must not be empty")
	ErrDuplicateName   = errors.New("an entry with the same name already exists")
	ErrProtectedEntry  = errors.New("entry cannot be removed")
	ErrNotFound        = errors.New("entry not found")
	ErrAlreadyAttached = errors.New("object already belongs to a document")
	ErrNotAttached     = errors.New("object is not attached to a document")
	ErrWrongDocument   = errors.New("object belongs to another document")
	ErrHandleInUse     = errors.New("handle already in use")
)
