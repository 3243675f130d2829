package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both missing rows and rows outside the caller's visibility.
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// lookupErr folds gorm's missing-row error into ErrNotFound.
func lookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
