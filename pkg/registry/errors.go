// ABOUTME: Structured errors surfaced by the registry facade
// ABOUTME: Carries validation detail for field-level rendering upstream

package registry

import (
	"fmt"

	"github.com/mkearney/huntstore/pkg/schema"
	"github.com/mkearney/huntstore/pkg/validation"
)

// ValidationError reports a document that failed validation during an upsert
// or an org load. Callers can render field-level messages from Errors.
type ValidationError struct {
	Kind   schema.Kind
	Key    string
	Errors []validation.Error
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%s document %s failed validation", e.Kind, e.Key)
	}
	first := e.Errors[0]
	return fmt.Sprintf("%s document %s failed validation: %s at %q (%d error(s))",
		e.Kind, e.Key, first.Code, first.Path, len(e.Errors))
}
