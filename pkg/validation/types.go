// ABOUTME: Validation result data model
// ABOUTME: Errors, warnings and migration detail for one document check

package validation

// Service-level error codes. Validators add the structural codes defined in
// pkg/schema.
const (
	CodeMissingSchemaVersion = "MISSING_SCHEMA_VERSION"
	CodeMigrationFailed      = "MIGRATION_FAILED"
	CodeUnknownKind          = "UNKNOWN_KIND"
	CodeUnknownVersion       = "UNKNOWN_VERSION"
	CodeValidationException  = "VALIDATION_EXCEPTION"
)

// Warning codes.
const (
	WarnDeprecatedVersion = "DEPRECATED_VERSION"
	WarnMissingUpdatedAt  = "MISSING_UPDATED_AT"
)

// Severity distinguishes fatal errors from advisory warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Error is one fatal problem with a document. Suggestion is a fixed,
// code-derived hint suitable for rendering field-level messages.
type Error struct {
	Code       string
	Path       string
	Message    string
	Suggestion string
	Severity   Severity
}

// Warning is one non-fatal data-quality observation. Warnings never block
// success.
type Warning struct {
	Code    string
	Path    string
	Message string
}

// MigrationDetail records what the auto-migration did (or attempted).
type MigrationDetail struct {
	SourceVersion string
	Applied       []string
}

// Result is the immutable outcome of validating one document. Data is set
// iff Success, and holds the typed document when Version is the kind's
// latest (the raw map otherwise).
type Result struct {
	Success          bool
	Data             any
	Errors           []Error
	Warnings         []Warning
	Version          string
	MigrationApplied bool
	Migration        *MigrationDetail
}

// Options control one validation call.
type Options struct {
	// Strict rejects missing version markers and migration failures outright
	// instead of degrading gracefully.
	Strict bool
	// AutoMigrate upgrades the document to the target version before
	// validating.
	AutoMigrate bool
	// TargetVersion overrides the kind's latest version as the migration and
	// validation target.
	TargetVersion string
	// IncludeWarnings computes advisory warnings on success.
	IncludeWarnings bool
}

// DefaultOptions are the permissive defaults used by document loads.
func DefaultOptions() Options {
	return Options{AutoMigrate: true, IncludeWarnings: true}
}

// StrictOptions are used by upserts: the caller must already hold a
// target-version document.
func StrictOptions() Options {
	return Options{Strict: true}
}
