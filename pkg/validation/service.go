// ABOUTME: Validation service tying detection, migration and validation together
// ABOUTME: Single entry point for every document check in the store

package validation

import (
	"fmt"
	"time"

	"github.com/mkearney/huntstore/internal/logger"
	"github.com/mkearney/huntstore/internal/metrics"
	"github.com/mkearney/huntstore/pkg/migration"
	"github.com/mkearney/huntstore/pkg/schema"
)

// Service validates documents against their registered schemas, migrating
// them forward first when asked to. It never panics and never returns a Go
// error for well-formed inputs; every failure is data in the Result.
type Service struct {
	schemas  *schema.Registry
	migrator *migration.Engine
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewService creates a validation service. metrics may be nil.
func NewService(schemas *schema.Registry, migrator *migration.Engine, log *logger.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{schemas: schemas, migrator: migrator, log: log, metrics: m}
}

// Validate runs the full pipeline: detect version, migrate if needed,
// validate against the target schema, derive warnings.
func (s *Service) Validate(kind schema.Kind, raw map[string]any, opts Options) Result {
	res := s.validate(kind, raw, opts)

	status := "success"
	if !res.Success {
		status = "failure"
	}
	s.metrics.RecordValidation(string(kind), status)
	for _, e := range res.Errors {
		s.metrics.RecordValidationError(string(kind), e.Code)
	}

	return res
}

// ValidateOnly validates against a single version's schema with no migration
// attempted. version may be empty, in which case the document's own marker
// (or the kind's default) is used. For hot read paths that already hold a
// latest-version document.
func (s *Service) ValidateOnly(kind schema.Kind, raw map[string]any, version string) Result {
	opts := Options{IncludeWarnings: true, TargetVersion: version}
	if version == "" {
		detected, ok := detectVersion(raw)
		if !ok {
			detected = s.schemas.DefaultVersion(kind)
		}
		opts.TargetVersion = detected
	}
	return s.Validate(kind, raw, opts)
}

func (s *Service) validate(kind schema.Kind, raw map[string]any, opts Options) Result {
	if raw == nil {
		raw = map[string]any{}
	}

	// 1. Detect the embedded version.
	detected, found := detectVersion(raw)
	if !found {
		if opts.Strict {
			return failure(detected, CodeMissingSchemaVersion, "",
				"document has no schemaVersion field")
		}
		detected = s.schemas.DefaultVersion(kind)
		if detected == "" {
			return failure("", CodeUnknownKind, "",
				fmt.Sprintf("no versions registered for kind %q", kind))
		}
	}

	// 2. Resolve the target version.
	target := opts.TargetVersion
	if target == "" {
		target = s.schemas.LatestVersion(kind)
	}
	if target == "" {
		return failure(detected, CodeUnknownKind, "",
			fmt.Sprintf("no versions registered for kind %q", kind))
	}

	// 3. Migrate forward when needed. A failed migration aborts only in
	// strict mode; otherwise validation proceeds against the original
	// document and version.
	doc := raw
	version := detected
	if !opts.AutoMigrate {
		// Without migration the document must already satisfy the target;
		// falling back to the detected version is reserved for the permissive
		// migration-failure path below.
		version = target
	}
	migrated := false
	var detail *MigrationDetail

	if opts.AutoMigrate && s.migrator != nil && s.migrator.NeedsMigration(kind, detected, target) {
		start := time.Now()
		mres := s.migrator.Migrate(kind, raw, detected, target)
		s.log.LogMigration(string(kind), detected, target, mres.Applied, mres.Err)

		if mres.Success {
			s.metrics.RecordMigration(string(kind), "success", time.Since(start))
			doc = mres.Data
			version = target
			migrated = true
			detail = &MigrationDetail{SourceVersion: detected, Applied: mres.Applied}
		} else {
			s.metrics.RecordMigration(string(kind), "failure", time.Since(start))
			if opts.Strict {
				res := failure(detected, CodeMigrationFailed, "", mres.Err.Error())
				res.Migration = &MigrationDetail{SourceVersion: detected, Applied: mres.Applied}
				return res
			}
		}
	}

	// 4. Validate against the schema for the version the document now claims.
	validator := s.schemas.Schema(kind, version)
	if validator == nil {
		return failure(version, CodeUnknownVersion, "",
			fmt.Sprintf("no schema registered for kind %q version %s", kind, version))
	}

	parsed, ferrs, fault := safeParse(validator, doc)
	if fault != nil {
		s.log.ValidationLogger(string(kind)).Error("Validator fault").Err(fault).Send()
		return failure(version, CodeValidationException, "", fault.Error())
	}
	if len(ferrs) > 0 {
		res := Result{
			Success:          false,
			Version:          version,
			MigrationApplied: migrated,
			Migration:        detail,
		}
		for _, fe := range ferrs {
			res.Errors = append(res.Errors, Error{
				Code:       fe.Code,
				Path:       fe.Path,
				Message:    fe.Message,
				Suggestion: suggestionFor(fe.Code),
				Severity:   SeverityError,
			})
		}
		return res
	}

	// 5. Success; derive advisory warnings.
	res := Result{
		Success:          true,
		Data:             parsed,
		Version:          version,
		MigrationApplied: migrated,
		Migration:        detail,
	}
	if opts.IncludeWarnings {
		res.Warnings = s.warnings(kind, detected, raw)
	}
	return res
}

func (s *Service) warnings(kind schema.Kind, sourceVersion string, raw map[string]any) []Warning {
	var warnings []Warning

	if s.schemas.IsDeprecated(kind, sourceVersion) {
		warnings = append(warnings, Warning{
			Code: WarnDeprecatedVersion,
			Message: fmt.Sprintf("document was stored at deprecated version %s; latest is %s",
				sourceVersion, s.schemas.LatestVersion(kind)),
		})
	}

	if v, ok := raw["updatedAt"].(string); !ok || v == "" {
		warnings = append(warnings, Warning{
			Code:    WarnMissingUpdatedAt,
			Path:    "updatedAt",
			Message: "document carries no update timestamp",
		})
	}

	return warnings
}

// detectVersion reads the document's embedded version marker.
func detectVersion(raw map[string]any) (string, bool) {
	v, ok := raw["schemaVersion"].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// safeParse shields the service from a panicking validator.
func safeParse(v schema.Validator, doc map[string]any) (parsed any, errs []schema.FieldError, fault error) {
	defer func() {
		if r := recover(); r != nil {
			parsed = nil
			errs = nil
			fault = fmt.Errorf("validator panicked: %v", r)
		}
	}()
	parsed, errs = v.Parse(doc)
	return parsed, errs, nil
}

func failure(version, code, path, message string) Result {
	return Result{
		Version: version,
		Errors: []Error{{
			Code:       code,
			Path:       path,
			Message:    message,
			Suggestion: suggestionFor(code),
			Severity:   SeverityError,
		}},
	}
}
