// ABOUTME: Field extraction helpers shared by version validators
// ABOUTME: Each helper records a FieldError instead of failing hard

package schema

import "fmt"

// RequireString returns raw[field] as a string, recording an error when the
// field is absent or mistyped. path is the JSON path of the enclosing object
// ("" at the root).
func RequireString(raw map[string]any, field, path string, errs *[]FieldError) string {
	v, ok := raw[field]
	if !ok || v == nil {
		*errs = append(*errs, FieldError{
			Code:    CodeMissingField,
			Path:    joinPath(path, field),
			Message: fmt.Sprintf("required field %q is missing", field),
		})
		return ""
	}
	s, ok := v.(string)
	if !ok {
		*errs = append(*errs, FieldError{
			Code:    CodeTypeMismatch,
			Path:    joinPath(path, field),
			Message: fmt.Sprintf("field %q must be a string", field),
		})
		return ""
	}
	return s
}

// OptionalString returns raw[field] as a string when present, recording an
// error only on a type mismatch.
func OptionalString(raw map[string]any, field, path string, errs *[]FieldError) string {
	v, ok := raw[field]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		*errs = append(*errs, FieldError{
			Code:    CodeTypeMismatch,
			Path:    joinPath(path, field),
			Message: fmt.Sprintf("field %q must be a string", field),
		})
		return ""
	}
	return s
}

// RequireMap returns raw[field] as an object, recording an error otherwise.
func RequireMap(raw map[string]any, field, path string, errs *[]FieldError) map[string]any {
	v, ok := raw[field]
	if !ok || v == nil {
		*errs = append(*errs, FieldError{
			Code:    CodeMissingField,
			Path:    joinPath(path, field),
			Message: fmt.Sprintf("required field %q is missing", field),
		})
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		*errs = append(*errs, FieldError{
			Code:    CodeTypeMismatch,
			Path:    joinPath(path, field),
			Message: fmt.Sprintf("field %q must be an object", field),
		})
		return nil
	}
	return m
}

// OptionalMap returns raw[field] as an object when present.
func OptionalMap(raw map[string]any, field, path string, errs *[]FieldError) map[string]any {
	v, ok := raw[field]
	if !ok || v == nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		*errs = append(*errs, FieldError{
			Code:    CodeTypeMismatch,
			Path:    joinPath(path, field),
			Message: fmt.Sprintf("field %q must be an object", field),
		})
		return nil
	}
	return m
}

// RequireArray returns raw[field] as an array, recording an error otherwise.
func RequireArray(raw map[string]any, field, path string, errs *[]FieldError) []any {
	v, ok := raw[field]
	if !ok || v == nil {
		*errs = append(*errs, FieldError{
			Code:    CodeMissingField,
			Path:    joinPath(path, field),
			Message: fmt.Sprintf("required field %q is missing", field),
		})
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		*errs = append(*errs, FieldError{
			Code:    CodeTypeMismatch,
			Path:    joinPath(path, field),
			Message: fmt.Sprintf("field %q must be an array", field),
		})
		return nil
	}
	return arr
}

// OptionalArray returns raw[field] as an array when present.
func OptionalArray(raw map[string]any, field, path string, errs *[]FieldError) []any {
	v, ok := raw[field]
	if !ok || v == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		*errs = append(*errs, FieldError{
			Code:    CodeTypeMismatch,
			Path:    joinPath(path, field),
			Message: fmt.Sprintf("field %q must be an array", field),
		})
		return nil
	}
	return arr
}

// CheckEnum records an error when value is not one of allowed. Empty values
// are skipped; pair with RequireString for presence.
func CheckEnum(value, field, path string, allowed []string, errs *[]FieldError) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	*errs = append(*errs, FieldError{
		Code:    CodeInvalidEnum,
		Path:    joinPath(path, field),
		Message: fmt.Sprintf("field %q must be one of %v, got %q", field, allowed, value),
	})
}

// CheckMaxLen records an error when value exceeds max characters.
func CheckMaxLen(value, field, path string, max int, errs *[]FieldError) {
	if len(value) > max {
		*errs = append(*errs, FieldError{
			Code:    CodeStringTooLong,
			Path:    joinPath(path, field),
			Message: fmt.Sprintf("field %q must be at most %d characters", field, max),
		})
	}
}

// IndexPath builds the path for element i of an array field.
func IndexPath(path, field string, i int) string {
	return fmt.Sprintf("%s[%d]", joinPath(path, field), i)
}

func joinPath(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}
