package http

import (
	"github.com/go-playground/validator/v10"
)

// RequestValidator wires go-playground/validator into echo's Validator hook,
// so handlers validate bound request DTOs with struct tags.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator for request DTOs.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
