package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrBookNotAvailable  = errors.New("book has been checked out by someone else")
	ErrBookNotCheckedOut = errors.New("book has not been checked out")
	ErrInvalidInput      = errors.New("invalid input")
)

// translate maps a missing row to ErrNotFound and wraps anything else with op.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
