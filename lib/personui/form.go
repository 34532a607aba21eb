// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personui

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bureau-foundation/persons/lib/personapi"
	"github.com/bureau-foundation/persons/lib/schema/person"
	"github.com/bureau-foundation/persons/lib/tui"
)

// formFields maps person.Fields onto form rows.
func formFields() []tui.FormField {
	fields := make([]tui.FormField, 0, len(person.Fields))
	for _, field := range person.Fields {
		formField := tui.FormField{
			Key:   string(field),
			Label: field.Label(),
			Kind:  tui.FieldText,
		}
		switch field {
		case person.FieldName:
			formField.CharLimit = person.MaxNameLength
		case person.FieldEmail:
			formField.CharLimit = person.MaxEmailLength
			formField.Placeholder = "name@example.org"
		case person.FieldEducation:
			formField.CharLimit = person.MaxEducationLength
		case person.FieldAddress:
			formField.CharLimit = person.MaxAddressLength
		case person.FieldPhoneNumber:
			formField.CharLimit = person.MaxPhoneLength
		case person.FieldGender:
			formField.Kind = tui.FieldChoice
			for _, gender := range person.Genders {
				formField.Options = append(formField.Options, tui.ChoiceOption{
					Label: gender.Label(),
					Value: string(gender),
				})
			}
		case person.FieldInterests:
			formField.Kind = tui.FieldMultiline
			formField.Lines = 3
		case person.FieldDateOfBirth:
			formField.CharLimit = len(person.DateLayout)
			formField.Placeholder = "YYYY-MM-DD"
		}
		fields = append(fields, formField)
	}
	return fields
}

// newPersonForm builds a form showing record's values.
func newPersonForm(title string, record person.Record, theme tui.Theme) *tui.FormModal {
	form := tui.NewFormModal(title, formFields(), theme)
	for _, field := range person.Fields {
		value, err := record.Value(field)
		if err != nil {
			continue
		}
		form.SetValue(string(field), value)
	}
	return &form
}

// applyFieldErrors attaches messages to form rows. Messages for fields
// the form does not show are joined into the form-wide error, after
// summary.
func applyFieldErrors(form *tui.FormModal, messages map[string]string, summary string) {
	form.ClearFieldErrors()
	var general []string
	if summary != "" {
		general = append(general, summary)
	}
	for _, field := range person.Fields {
		if message, ok := messages[string(field)]; ok {
			form.SetFieldError(string(field), message)
		}
	}
	for _, fieldName := range slices.Sorted(maps.Keys(messages)) {
		if _, err := person.ParseField(fieldName); err == nil {
			continue
		}
		general = append(general, messages[fieldName])
	}
	form.SetError(strings.Join(general, "; "))
}

// describeSaveError turns a failed save into a short message for the
// form.
func describeSaveError(err error) string {
	var failure *personapi.NetworkFailure
	if errors.As(err, &failure) {
		switch {
		case !failure.Completed():
			return "server unreachable, try again"
		case failure.StatusCode == 400:
			return "server rejected the changes"
		case personapi.IsNotFound(err):
			return "this person no longer exists on the server"
		}
		return fmt.Sprintf("save failed: HTTP %d", failure.StatusCode)
	}
	return "save failed: " + err.Error()
}
