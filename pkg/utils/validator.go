package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// RequestValidator wraps go-playground/validator so handlers share a single
// configured instance.
type RequestValidator struct {
	validate *validator.Validate
}

var (
	validatorOnce   sync.Once
	sharedValidator *RequestValidator
)

// GetValidator returns the process-wide request validator.
func GetValidator() *RequestValidator {
	validatorOnce.Do(func() {
		sharedValidator = &RequestValidator{validate: validator.New()}
	})
	return sharedValidator
}

// Validate checks the struct's `validate` tags and returns the first error.
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
