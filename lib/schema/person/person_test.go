// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package person

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRecordJSONWireFormat(t *testing.T) {
	t.Parallel()

	record := Record{
		ID:          NumericID(12),
		Name:        "Ann",
		Email:       "ann@x.io",
		PhoneNumber: "555-0100",
		Gender:      GenderFemale,
		DateOfBirth: NewDate(1990, time.March, 4),
	}
	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal into map: %v", err)
	}
	if fields["id"] != float64(12) {
		t.Errorf("id = %#v, want number 12", fields["id"])
	}
	if fields["phone_number"] != "555-0100" {
		t.Errorf("phone_number = %#v", fields["phone_number"])
	}
	if fields["gender"] != "F" {
		t.Errorf("gender = %#v, want \"F\"", fields["gender"])
	}
	if fields["date_of_birth"] != "1990-03-04" {
		t.Errorf("date_of_birth = %#v", fields["date_of_birth"])
	}

	var decoded Record
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != record {
		t.Errorf("decoded %+v, want %+v", decoded, record)
	}
}

func TestDraftOmitsIdentifier(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Record{Name: "Bo"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(data), `"id"`) {
		t.Errorf("draft body contains id: %s", data)
	}
	if !strings.Contains(string(data), `"date_of_birth":null`) {
		t.Errorf("unset date should encode as null: %s", data)
	}
}

func TestIDUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    ID
		wantErr bool
	}{
		{input: `7`, want: NumericID(7)},
		{input: `"abc-1"`, want: StringID("abc-1")},
		{input: `null`, want: ID{}},
		{input: `1.5`, wantErr: true},
		{input: `true`, wantErr: true},
	}
	for _, test := range tests {
		var id ID
		err := json.Unmarshal([]byte(test.input), &id)
		if test.wantErr {
			if err == nil {
				t.Errorf("Unmarshal(%s) succeeded, want error", test.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unmarshal(%s): %v", test.input, err)
			continue
		}
		if id != test.want {
			t.Errorf("Unmarshal(%s) = %#v, want %#v", test.input, id, test.want)
		}
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id, err := ParseID("42")
	if err != nil || id != NumericID(42) {
		t.Errorf("ParseID(42) = %#v, %v", id, err)
	}
	id, err = ParseID("p-9")
	if err != nil || id != StringID("p-9") {
		t.Errorf("ParseID(p-9) = %#v, %v", id, err)
	}
	if _, err := ParseID(""); err == nil {
		t.Error("ParseID(\"\") succeeded")
	}
}

func TestIDEqualityIgnoresWireForm(t *testing.T) {
	t.Parallel()

	var fromString, fromNumber ID
	if err := json.Unmarshal([]byte(`"7"`), &fromString); err != nil {
		t.Fatalf("Unmarshal string: %v", err)
	}
	if err := json.Unmarshal([]byte(`7`), &fromNumber); err != nil {
		t.Fatalf("Unmarshal number: %v", err)
	}
	parsed, _ := ParseID("7")
	if fromString != fromNumber || fromString != parsed || parsed != NumericID(7) {
		t.Errorf("ids differ: string %#v, number %#v, parsed %#v", fromString, fromNumber, parsed)
	}

	seen := map[ID]bool{fromNumber: true}
	if !seen[fromString] {
		t.Error("map lookup by string-form id missed the number-form key")
	}
}

func TestIDMarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   ID
		want string
	}{
		{NumericID(7), `7`},
		{StringID("7"), `7`},
		{StringID("007"), `"007"`},
		{StringID("abc-1"), `"abc-1"`},
		{ID{}, `null`},
	}
	for _, test := range tests {
		data, err := json.Marshal(test.id)
		if err != nil {
			t.Errorf("Marshal(%#v): %v", test.id, err)
			continue
		}
		if string(data) != test.want {
			t.Errorf("Marshal(%#v) = %s, want %s", test.id, data, test.want)
		}
	}
}

func TestDateUnmarshal(t *testing.T) {
	t.Parallel()

	for _, input := range []string{`null`, `""`} {
		var date Date
		if err := json.Unmarshal([]byte(input), &date); err != nil {
			t.Errorf("Unmarshal(%s): %v", input, err)
		}
		if !date.IsZero() {
			t.Errorf("Unmarshal(%s) = %v, want zero", input, date)
		}
	}

	var date Date
	if err := json.Unmarshal([]byte(`"04/03/1990"`), &date); err == nil {
		t.Error("non-ISO date accepted")
	}
}

func TestWithField(t *testing.T) {
	t.Parallel()

	original := Record{ID: NumericID(1), Name: "Ann"}
	updated, err := original.WithField(FieldName, "Anne")
	if err != nil {
		t.Fatalf("WithField: %v", err)
	}
	if updated.Name != "Anne" || original.Name != "Ann" {
		t.Errorf("WithField mutated receiver or did not apply: original=%q updated=%q", original.Name, updated.Name)
	}

	updated, err = original.WithField(FieldGender, "female")
	if err != nil || updated.Gender != GenderFemale {
		t.Errorf("gender word: %v, %v", updated.Gender, err)
	}

	if _, err := original.WithField(FieldGender, "x"); err == nil {
		t.Error("invalid gender accepted")
	}
	if _, err := original.WithField(FieldDateOfBirth, "1990-13-01"); err == nil {
		t.Error("invalid date accepted")
	}
	if _, err := original.WithField("nickname", "A"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("unknown field error = %v, want ErrUnknownField", err)
	}

	for _, field := range Fields {
		set, err := Record{}.WithField(field, "")
		if err != nil {
			t.Errorf("clearing %s: %v", field, err)
		}
		value, err := set.Value(field)
		if err != nil || value != "" {
			t.Errorf("Value(%s) = %q, %v", field, value, err)
		}
	}
}

func TestParseField(t *testing.T) {
	t.Parallel()

	field, err := ParseField("Date-Of-Birth")
	if err != nil || field != FieldDateOfBirth {
		t.Errorf("ParseField = %q, %v", field, err)
	}
	if _, err := ParseField("age"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("ParseField(age) error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		record    Record
		wantField string
	}{
		{name: "valid", record: Record{Name: "Ann", Email: "ann@x.io", Gender: GenderOther}},
		{name: "email optional", record: Record{Name: "Ann"}},
		{name: "missing name", record: Record{Email: "ann@x.io"}, wantField: "name"},
		{name: "bad email", record: Record{Name: "Ann", Email: "ann"}, wantField: "email"},
		{name: "bad gender", record: Record{Name: "Ann", Gender: "X"}, wantField: "gender"},
		{name: "long phone", record: Record{Name: "Ann", PhoneNumber: strings.Repeat("1", MaxPhoneLength+1)}, wantField: "phone_number"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.record.Validate()
			if test.wantField == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate succeeded, want error")
			}
			fieldErrors := FieldErrors(err)
			if _, ok := fieldErrors[test.wantField]; !ok {
				t.Errorf("FieldErrors = %v, want key %q", fieldErrors, test.wantField)
			}
		})
	}
}

func TestGenderLabels(t *testing.T) {
	t.Parallel()

	want := []string{"Select Gender", "Male", "Female", "Other"}
	for i, gender := range Genders {
		if gender.Label() != want[i] {
			t.Errorf("Genders[%d].Label() = %q, want %q", i, gender.Label(), want[i])
		}
	}
}
