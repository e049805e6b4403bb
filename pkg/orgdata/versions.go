// ABOUTME: Structural validators for each orgData schema version
// ABOUTME: The 1.0.0 shape exists only as a migration source

package orgdata

import (
	"fmt"

	"github.com/mkearney/huntstore/pkg/schema"
)

// VersionV1 is the deprecated 1.0.0 orgData shape: a single contactEmail on
// the org and flat hunt records without access/scoring/audit sub-structures.
const VersionV1 = "1.0.0"

// Versions returns the full orgData version chain for registration.
func Versions() []schema.Version {
	return []schema.Version{
		{Version: VersionV1, Validator: v1Validator{}, Deprecated: true},
		{Version: LatestVersion, Validator: latestValidator{}},
	}
}

// latestValidator checks the 1.2.0 shape and decodes it.
type latestValidator struct{}

func (latestValidator) Parse(raw map[string]any) (any, []schema.FieldError) {
	var errs []schema.FieldError

	schema.RequireString(raw, "schemaVersion", "", &errs)
	schema.RequireString(raw, "updatedAt", "", &errs)

	if org := schema.RequireMap(raw, "org", "", &errs); org != nil {
		slug := schema.RequireString(org, "orgSlug", "org", &errs)
		schema.CheckMaxLen(slug, "orgSlug", "org", 64, &errs)
		name := schema.RequireString(org, "orgName", "org", &errs)
		schema.CheckMaxLen(name, "orgName", "org", 120, &errs)

		contacts := schema.RequireArray(org, "contacts", "org", &errs)
		for i, entry := range contacts {
			path := schema.IndexPath("org", "contacts", i)
			contact, ok := entry.(map[string]any)
			if !ok {
				errs = append(errs, schema.FieldError{
					Code:    schema.CodeTypeMismatch,
					Path:    path,
					Message: "contact must be an object",
				})
				continue
			}
			schema.RequireString(contact, "email", path, &errs)
		}
	}

	hunts := schema.RequireArray(raw, "hunts", "", &errs)
	seenIDs := make(map[string]bool)
	for i, entry := range hunts {
		path := schema.IndexPath("", "hunts", i)
		hunt, ok := entry.(map[string]any)
		if !ok {
			errs = append(errs, schema.FieldError{
				Code:    schema.CodeTypeMismatch,
				Path:    path,
				Message: "hunt must be an object",
			})
			continue
		}

		id := schema.RequireString(hunt, "id", path, &errs)
		schema.RequireString(hunt, "name", path, &errs)
		schema.RequireString(hunt, "startDate", path, &errs)
		schema.RequireString(hunt, "endDate", path, &errs)
		status := schema.RequireString(hunt, "status", path, &errs)
		schema.CheckEnum(status, "status", path, HuntStatuses, &errs)

		if access := schema.RequireMap(hunt, "access", path, &errs); access != nil {
			visibility := schema.RequireString(access, "visibility", path+".access", &errs)
			schema.CheckEnum(visibility, "visibility", path+".access", Visibilities, &errs)
		}
		if scoring := schema.RequireMap(hunt, "scoring", path, &errs); scoring != nil {
			schema.RequireString(scoring, "mode", path+".scoring", &errs)
		}
		if audit := schema.RequireMap(hunt, "audit", path, &errs); audit != nil {
			schema.RequireString(audit, "createdBy", path+".audit", &errs)
			schema.RequireString(audit, "createdAt", path+".audit", &errs)
		}

		if id != "" && seenIDs[id] {
			errs = append(errs, schema.FieldError{
				Code:    schema.CodeDuplicate,
				Path:    path + ".id",
				Message: fmt.Sprintf("duplicate hunt id %q", id),
			})
		}
		seenIDs[id] = true
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

// v1Validator checks the deprecated 1.0.0 shape and returns the raw map.
type v1Validator struct{}

func (v1Validator) Parse(raw map[string]any) (any, []schema.FieldError) {
	var errs []schema.FieldError

	schema.RequireString(raw, "schemaVersion", "", &errs)

	if org := schema.RequireMap(raw, "org", "", &errs); org != nil {
		schema.RequireString(org, "orgSlug", "org", &errs)
		schema.RequireString(org, "orgName", "org", &errs)
	}

	schema.OptionalArray(raw, "hunts", "", &errs)

	if len(errs) > 0 {
		return nil, errs
	}
	return raw, nil
}
