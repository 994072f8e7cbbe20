// SPDX-License-Identifier: MIT

package coding

import "strings"

// Schema selects how categorical predictors are coded.
type Schema int

const (
	// Reference codes levels against a dropped baseline level.
	Reference Schema = iota
	// Effects codes levels as sum-to-zero contrasts and centers continuous predictors.
	Effects
)

// DefaultSchema is used when no schema is configured.
const DefaultSchema = Reference

// String returns "reference" or "effects".
func (s Schema) String() string {
	if s == Effects {
		return "effects"
	}
	return "reference"
}

// ParseSchema maps a case-insensitive name to a Schema.
func ParseSchema(name string) (Schema, error) {
	switch strings.ToLower(name) {
	case "", "reference":
		return Reference, nil
	case "effects":
		return Effects, nil
	default:
		return Reference, codingErrorf(ErrUnknownSchema, "%q", name)
	}
}
