// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package person

import (
	"fmt"
	"strings"
)

// Gender is the one letter code stored by the backend.
type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// Genders lists the selectable codes in display order, unset first.
var Genders = []Gender{GenderUnset, GenderMale, GenderFemale, GenderOther}

// Label returns the human-readable name shown in forms and listings.
func (g Gender) Label() string {
	switch g {
	case GenderUnset:
		return "Select Gender"
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	case GenderOther:
		return "Other"
	default:
		return string(g)
	}
}

// IsValid reports whether g is one of the known codes (including unset).
func (g Gender) IsValid() bool {
	switch g {
	case GenderUnset, GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ParseGender accepts a wire code ("M", "F", "O", "") or the words
// male, female and other, case-insensitively.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return GenderUnset, nil
	case "m", "male":
		return GenderMale, nil
	case "f", "female":
		return GenderFemale, nil
	case "o", "other":
		return GenderOther, nil
	}
	return GenderUnset, fmt.Errorf("unknown gender %q (want M, F, O, or empty)", s)
}
