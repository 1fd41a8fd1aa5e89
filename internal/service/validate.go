package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/aanand-mishra/students-grpc/internal/types"
)

// fieldMessages maps a types.Student field to the message reported when
// that field fails validation.
var fieldMessages = map[string]string{
	"Name":  "name required",
	"Email": "invalid email",
	"Age":   "age out of range",
	"Major": "major required",
	"GPA":   "gpa out of range",
}

// newValidator returns a validator with the custom tags used on
// types.Student registered.
func newValidator() *validator.Validate {
	v := validator.New()

	// Registration only fails for empty tag names or nil funcs.
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("mailbox", isMailbox); err != nil {
		panic(err)
	}

	return v
}

// isMailbox accepts the basic local@domain shape: exactly one "@" with
// something other than whitespace on each side.
func isMailbox(fl validator.FieldLevel) bool {
	local, domain, ok := strings.Cut(strings.TrimSpace(fl.Field().String()), "@")
	return ok &&
		strings.TrimSpace(local) != "" &&
		strings.TrimSpace(domain) != "" &&
		!strings.Contains(domain, "@")
}

// validateStudent checks every field of s and returns an InvalidArgument
// error for the first field (in declaration order) that fails.
func (s *Students) validateStudent(student types.Student) error {
	err := s.validate.Struct(student)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return internal(err)
	}

	msg, ok := fieldMessages[errs[0].Field()]
	if !ok {
		msg = "field " + strings.ToLower(errs[0].Field()) + " is invalid"
	}
	return invalidArgument(msg)
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return invalidArgument("id required")
	}
	return nil
}
