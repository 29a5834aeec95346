package deskhttp

import (
	"github.com/go-playground/validator/v10"
)

// ActionRequest is the body of every desk action.
// A blank enrollment number is not a validation error; the desk answers it with its own notice.
type ActionRequest struct {
	EnrollmentNo string `json:"enrollment_no" validate:"max=64"`
	BookID       string `json:"book_id" validate:"omitempty,max=64,printascii"`
}

// NoticeResponse is the JSON form of a desk notice.
type NoticeResponse struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Outcome string `json:"outcome"`
}

// requestValidator adapts go-playground/validator to echo.Validator.
type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (rv *requestValidator) Validate(i any) error {
	return rv.v.Struct(i)
}
