// ABOUTME: Schema version data model
// ABOUTME: Kinds, versioned validators and structural error codes

package schema

// Kind identifies a document kind with its own version chain.
type Kind string

const (
	KindApp Kind = "appData"
	KindOrg Kind = "orgData"
)

// Structural error codes emitted by validators.
const (
	CodeMissingField  = "MISSING_FIELD"
	CodeTypeMismatch  = "TYPE_MISMATCH"
	CodeStringTooLong = "STRING_TOO_LONG"
	CodeInvalidEnum   = "INVALID_ENUM"
	CodeInvalidFormat = "INVALID_FORMAT"
	CodeDuplicate     = "DUPLICATE_VALUE"
)

// FieldError is one structural problem found by a validator.
type FieldError struct {
	Code    string
	Path    string
	Message string
}

// Validator parses a raw decoded JSON document into the shape registered for
// one schema version. On success it returns the typed document (for the
// latest version of a kind) or the raw map (for historical versions, which
// only exist as migration sources).
type Validator interface {
	Parse(raw map[string]any) (any, []FieldError)
}

// Version pairs a semantic version tag with its validator.
type Version struct {
	Version    string
	Validator  Validator
	Deprecated bool
}
