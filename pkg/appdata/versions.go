// ABOUTME: Structural validators for each appData schema version
// ABOUTME: Historical versions validate shape only, latest decodes to Document

package appdata

import (
	"fmt"
	"regexp"

	"github.com/mkearney/huntstore/pkg/schema"
)

// Historical appData versions.
const (
	VersionLegacy = "0.9.0" // flat appName/orgs shape
	VersionV1     = "1.0.0" // nested app/organizations, no byDate index
)

// Versions returns the full appData version chain for registration.
func Versions() []schema.Version {
	return []schema.Version{
		{Version: VersionLegacy, Validator: legacyValidator{}, Deprecated: true},
		{Version: VersionV1, Validator: v1Validator{}, Deprecated: true},
		{Version: LatestVersion, Validator: latestValidator{}},
	}
}

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// latestValidator checks the 1.2.0 shape and decodes it.
type latestValidator struct{}

func (latestValidator) Parse(raw map[string]any) (any, []schema.FieldError) {
	var errs []schema.FieldError

	schema.RequireString(raw, "schemaVersion", "", &errs)
	schema.RequireString(raw, "updatedAt", "", &errs)

	if app := schema.RequireMap(raw, "app", "", &errs); app != nil {
		if meta := schema.RequireMap(app, "metadata", "app", &errs); meta != nil {
			name := schema.RequireString(meta, "name", "app.metadata", &errs)
			schema.CheckMaxLen(name, "name", "app.metadata", 120, &errs)
		}
	}

	orgs := schema.RequireArray(raw, "organizations", "", &errs)
	seenSlugs := make(map[string]bool)
	for i, entry := range orgs {
		path := schema.IndexPath("", "organizations", i)
		org, ok := entry.(map[string]any)
		if !ok {
			errs = append(errs, schema.FieldError{
				Code:    schema.CodeTypeMismatch,
				Path:    path,
				Message: "organization entry must be an object",
			})
			continue
		}

		slug := schema.RequireString(org, "orgSlug", path, &errs)
		schema.CheckMaxLen(slug, "orgSlug", path, 64, &errs)
		name := schema.RequireString(org, "orgName", path, &errs)
		schema.CheckMaxLen(name, "orgName", path, 120, &errs)
		schema.RequireString(org, "contactEmail", path, &errs)
		status := schema.RequireString(org, "status", path, &errs)
		schema.CheckEnum(status, "status", path, OrgStatuses, &errs)

		if slug != "" && seenSlugs[slug] {
			errs = append(errs, schema.FieldError{
				Code:    schema.CodeDuplicate,
				Path:    path + ".orgSlug",
				Message: fmt.Sprintf("duplicate organization slug %q", slug),
			})
		}
		seenSlugs[slug] = true
	}

	if byDate := schema.OptionalMap(raw, "byDate", "", &errs); byDate != nil {
		validateByDate(byDate, &errs)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	var doc Document
	if err := schema.Decode(raw, &doc); err != nil {
		panic(err) // validator bug, contained by the validation service
	}
	return &doc, nil
}

func validateByDate(byDate map[string]any, errs *[]schema.FieldError) {
	for date, v := range byDate {
		path := "byDate." + date
		if !dateKeyPattern.MatchString(date) {
			*errs = append(*errs, schema.FieldError{
				Code:    schema.CodeInvalidFormat,
				Path:    path,
				Message: fmt.Sprintf("date key %q must be YYYY-MM-DD", date),
			})
		}

		entries, ok := v.([]any)
		if !ok {
			*errs = append(*errs, schema.FieldError{
				Code:    schema.CodeTypeMismatch,
				Path:    path,
				Message: "byDate value must be an array",
			})
			continue
		}

		seen := make(map[string]bool)
		for i, e := range entries {
			entryPath := fmt.Sprintf("%s[%d]", path, i)
			entry, ok := e.(map[string]any)
			if !ok {
				*errs = append(*errs, schema.FieldError{
					Code:    schema.CodeTypeMismatch,
					Path:    entryPath,
					Message: "index entry must be an object",
				})
				continue
			}

			slug := schema.RequireString(entry, "orgSlug", entryPath, errs)
			huntID := schema.RequireString(entry, "huntId", entryPath, errs)

			pair := slug + "/" + huntID
			if slug != "" && huntID != "" && seen[pair] {
				*errs = append(*errs, schema.FieldError{
					Code:    schema.CodeDuplicate,
					Path:    entryPath,
					Message: fmt.Sprintf("duplicate index entry %s on %s", pair, date),
				})
			}
			seen[pair] = true
		}
	}
}

// v1Validator checks the deprecated 1.0.0 shape. Documents at this version
// only exist as migration sources, so it returns the raw map.
type v1Validator struct{}

func (v1Validator) Parse(raw map[string]any) (any, []schema.FieldError) {
	var errs []schema.FieldError

	schema.RequireString(raw, "schemaVersion", "", &errs)

	if app := schema.RequireMap(raw, "app", "", &errs); app != nil {
		if meta := schema.RequireMap(app, "metadata", "app", &errs); meta != nil {
			schema.RequireString(meta, "name", "app.metadata", &errs)
		}
	}

	orgs := schema.RequireArray(raw, "organizations", "", &errs)
	for i, entry := range orgs {
		path := schema.IndexPath("", "organizations", i)
		org, ok := entry.(map[string]any)
		if !ok {
			errs = append(errs, schema.FieldError{
				Code:    schema.CodeTypeMismatch,
				Path:    path,
				Message: "organization entry must be an object",
			})
			continue
		}
		schema.RequireString(org, "orgSlug", path, &errs)
		schema.RequireString(org, "orgName", path, &errs)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return raw, nil
}

// legacyValidator checks the original 0.9.0 shape: flat appName and an orgs
// array with short field names.
type legacyValidator struct{}

func (legacyValidator) Parse(raw map[string]any) (any, []schema.FieldError) {
	var errs []schema.FieldError

	schema.RequireString(raw, "appName", "", &errs)

	orgs := schema.OptionalArray(raw, "orgs", "", &errs)
	for i, entry := range orgs {
		path := schema.IndexPath("", "orgs", i)
		org, ok := entry.(map[string]any)
		if !ok {
			errs = append(errs, schema.FieldError{
				Code:    schema.CodeTypeMismatch,
				Path:    path,
				Message: "org entry must be an object",
			})
			continue
		}
		schema.RequireString(org, "slug", path, &errs)
		schema.RequireString(org, "name", path, &errs)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return raw, nil
}
