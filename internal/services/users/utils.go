package users

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("a user with this email already exists")
	ErrValidation    = errors.New("invalid user payload")
	ErrEmptyMetadata = errors.New("metadata payload has no fields to apply")
)

var ErrorMap = map[error]int{
	ErrUserNotFound:  http.StatusNotFound,
	ErrValidation:    http.StatusBadRequest,
	ErrEmptyMetadata: http.StatusBadRequest,
	ErrEmailTaken:    http.StatusConflict,
}

var validate = validator.New()

func validationError(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
