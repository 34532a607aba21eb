// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"io"
	"reflect"

	"github.com/spf13/pflag"
)

// JSONOutput adds a --json flag to a command's parameters. Embed it and
// call [JSONOutput.EmitJSON] before printing the human-readable form:
//
//	if done, err := params.EmitJSON(stdout, records); done {
//	    return err
//	}
type JSONOutput struct {
	OutputJSON bool
}

// AddFlag registers --json on flagSet.
func (output *JSONOutput) AddFlag(flagSet *pflag.FlagSet) {
	flagSet.BoolVar(&output.OutputJSON, "json", false, "print the result as JSON")
}

// EmitJSON writes result to w when --json was given and reports whether
// it did. A nil slice is written as [] so scripts never see null where
// they expect a list.
func (output *JSONOutput) EmitJSON(w io.Writer, result any) (bool, error) {
	if !output.OutputJSON {
		return false, nil
	}
	if value := reflect.ValueOf(result); value.Kind() == reflect.Slice && value.IsNil() {
		result = reflect.MakeSlice(value.Type(), 0, 0).Interface()
	}
	return true, WriteJSON(w, result)
}

// WriteJSON writes value to w as two-space indented JSON followed by a
// newline.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
