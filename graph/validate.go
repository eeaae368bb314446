package graph

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError is one entry in the data payload of a 422 response.
type FieldError struct {
	Message string `json:"message"`
}

func validateUserInput(email, password string) []FieldError {
	var errs []FieldError
	if err := validate.Var(email, "required,email"); err != nil {
		errs = append(errs, FieldError{Message: "E-Mail is invalid."})
	}
	if err := validate.Var(strings.TrimSpace(password), "required,min=5"); err != nil {
		errs = append(errs, FieldError{Message: "Password too short!"})
	}
	return errs
}

func validatePostInput(title, content string) []FieldError {
	var errs []FieldError
	if err := validate.Var(strings.TrimSpace(title), "required,min=5"); err != nil {
		errs = append(errs, FieldError{Message: "Title is invalid."})
	}
	if err := validate.Var(strings.TrimSpace(content), "required,min=5"); err != nil {
		errs = append(errs, FieldError{Message: "Content is invalid."})
	}
	return errs
}
