// ABOUTME: Raw-to-typed decoding for validated documents
// ABOUTME: JSON round-trip keeps validators free of reflection

package schema

import (
	"encoding/json"
	"fmt"
)

// Decode maps a structurally validated raw document onto a typed value.
// Validators call this after their structural pass; a failure here indicates
// a validator bug, which the validation service converts into a
// VALIDATION_EXCEPTION rather than letting it escape.
func Decode(raw map[string]any, out any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
