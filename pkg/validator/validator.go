// Package validator wraps go-playground struct-tag validation with the
// custom rules the request payloads rely on.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrorResponse describes a single field that failed validation.
type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	// BodyParser leaves omitted id fields as the zero UUID, which the
	// plain "required" tag does not catch.
	v.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		id, ok := fl.Field().Interface().(uuid.UUID)
		return ok && id != uuid.Nil
	})
	return v
}

// ValidateStruct runs the struct's validate tags and returns one entry per
// failing field, or nil when everything passed.
func ValidateStruct(data interface{}) []*ErrorResponse {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var failures []*ErrorResponse
	for _, fe := range err.(validator.ValidationErrors) {
		failures = append(failures, &ErrorResponse{
			FailedField: fe.StructNamespace(),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
		})
	}
	return failures
}
