package repository

import "errors"

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("document already exists")
)
