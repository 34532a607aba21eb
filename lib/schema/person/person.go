// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package person

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field length limits enforced by Validate.
const (
	MaxNameLength      = 100
	MaxEmailLength     = 254
	MaxEducationLength = 200
	MaxAddressLength   = 500
	MaxPhoneLength     = 32
	MaxInterestsLength = 2000
)

// Record is one person in the collection.
type Record struct {
	// ID is assigned by the server on create. Drafts carry the zero ID,
	// which is omitted from the encoded body.
	ID ID `json:"id,omitzero"`

	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"omitempty,email,max=254"`
	Education   string `json:"education" validate:"max=200"`
	Address     string `json:"address" validate:"max=500"`
	PhoneNumber string `json:"phone_number" validate:"max=32"`
	Gender      Gender `json:"gender" validate:"gender"`

	// Interests is free text and may span several lines.
	Interests string `json:"interests" validate:"max=2000"`

	DateOfBirth Date `json:"date_of_birth"`
}

// Field names an editable attribute of a Record. The values match the
// JSON keys.
type Field string

const (
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldEducation   Field = "education"
	FieldAddress     Field = "address"
	FieldPhoneNumber Field = "phone_number"
	FieldGender      Field = "gender"
	FieldInterests   Field = "interests"
	FieldDateOfBirth Field = "date_of_birth"
)

// Fields lists the editable fields in form order.
var Fields = []Field{
	FieldName,
	FieldEmail,
	FieldEducation,
	FieldAddress,
	FieldPhoneNumber,
	FieldGender,
	FieldInterests,
	FieldDateOfBirth,
}

// ErrUnknownField is returned by WithField and Value for a name that is
// not in Fields.
var ErrUnknownField = errors.New("unknown person field")

// Label returns the field's display name.
func (f Field) Label() string {
	switch f {
	case FieldPhoneNumber:
		return "Phone Number"
	case FieldDateOfBirth:
		return "Date of Birth"
	}
	s := string(f)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseField resolves a field name as typed by a user. Hyphens are
// accepted in place of underscores.
func ParseField(s string) (Field, error) {
	f := Field(strings.ReplaceAll(strings.ToLower(s), "-", "_"))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownField, s)
}

// Value returns the field's current value in its text form: gender as
// its code and date of birth as "YYYY-MM-DD" (empty when unset).
func (r Record) Value(field Field) (string, error) {
	switch field {
	case FieldName:
		return r.Name, nil
	case FieldEmail:
		return r.Email, nil
	case FieldEducation:
		return r.Education, nil
	case FieldAddress:
		return r.Address, nil
	case FieldPhoneNumber:
		return r.PhoneNumber, nil
	case FieldGender:
		return string(r.Gender), nil
	case FieldInterests:
		return r.Interests, nil
	case FieldDateOfBirth:
		return r.DateOfBirth.String(), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownField, field)
}

// WithField returns a copy of r with one field set from its text form.
// Gender accepts anything ParseGender does; date of birth accepts
// "YYYY-MM-DD" or empty. On error r is returned unchanged.
func (r Record) WithField(field Field, value string) (Record, error) {
	switch field {
	case FieldName:
		r.Name = value
	case FieldEmail:
		r.Email = value
	case FieldEducation:
		r.Education = value
	case FieldAddress:
		r.Address = value
	case FieldPhoneNumber:
		r.PhoneNumber = value
	case FieldGender:
		gender, err := ParseGender(value)
		if err != nil {
			return r, err
		}
		r.Gender = gender
	case FieldInterests:
		r.Interests = value
	case FieldDateOfBirth:
		date, err := ParseDate(value)
		if err != nil {
			return r, err
		}
		r.DateOfBirth = date
	default:
		return r, fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	return r, nil
}

// recordValidate is shared by all Validate calls. Field errors report
// JSON names so they can be returned to API clients as-is.
var recordValidate *validator.Validate

func init() {
	recordValidate = validator.New(validator.WithRequiredStructEnabled())
	recordValidate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = recordValidate.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		return Gender(fl.Field().String()).IsValid()
	})
}

// Validate checks the record's field constraints: a name is required,
// email must be well formed when present, gender must be a known code,
// and free-text fields are length-bounded. The identifier is not
// checked; drafts and stored records validate the same way.
func (r Record) Validate() error {
	return recordValidate.Struct(r)
}

// FieldErrors flattens a Validate error into a map of JSON field name to
// a short message. Errors that did not come from Validate are reported
// under the empty key.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"": err.Error()}
	}
	result := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		result[fieldError.Field()] = describeFieldError(fieldError)
	}
	return result
}

func describeFieldError(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldError.Param())
	case "gender":
		return "must be one of M, F, O, or empty"
	}
	return fmt.Sprintf("failed %q", fieldError.Tag())
}
