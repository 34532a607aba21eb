// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personmock

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/persons/lib/schema/person"
)

// ParseSeed strips JSONC comments and trailing commas from data, then
// decodes a JSON array of person records. Every record must pass
// person.Record.Validate. Identifiers are optional; records without one
// are numbered by the server.
func ParseSeed(data []byte) ([]person.Record, error) {
	stripped := jsonc.ToJSON(data)

	var records []person.Record
	if err := json.Unmarshal(stripped, &records); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	for index, record := range records {
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("seed record %d (%q): %w", index, record.Name, err)
		}
	}
	return records, nil
}

// ReadSeedFile reads and parses a JSONC seed file.
func ReadSeedFile(path string) ([]person.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	records, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
