// ABOUTME: Migration steps for the appData version chain
// ABOUTME: 0.9.0 legacy flat shape -> 1.0.0 nested -> 1.2.0 with byDate index

package appdata

import (
	"time"

	"github.com/mkearney/huntstore/pkg/migration"
)

// Migrations returns the appData chain for engine registration.
func Migrations() []migration.Step {
	return []migration.Step{
		{From: VersionLegacy, To: VersionV1, Transform: migrateLegacyToV1},
		{From: VersionV1, To: LatestVersion, Transform: migrateV1ToLatest},
	}
}

// migrateLegacyToV1 lifts the flat 0.9.0 shape into the nested 1.0.0 layout:
// appName moves under app.metadata, orgs become organizations with full field
// names and an active status.
func migrateLegacyToV1(raw map[string]any) (map[string]any, error) {
	appName, _ := raw["appName"].(string)
	if appName == "" {
		appName = "Scavenger Hunt"
	}

	organizations := []any{}
	if orgs, ok := raw["orgs"].([]any); ok {
		for _, entry := range orgs {
			org, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			slug, _ := org["slug"].(string)
			name, _ := org["name"].(string)
			email, _ := org["contactEmail"].(string)
			organizations = append(organizations, map[string]any{
				"orgSlug":      slug,
				"orgName":      name,
				"contactEmail": email,
				"status":       "active",
			})
		}
	}

	updatedAt, _ := raw["updatedAt"].(string)
	if updatedAt == "" {
		updatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	return map[string]any{
		"schemaVersion": VersionV1,
		"updatedAt":     updatedAt,
		"app": map[string]any{
			"metadata": map[string]any{"name": appName},
		},
		"organizations": organizations,
	}, nil
}

// migrateV1ToLatest adds the byDate index and feature defaults introduced in
// 1.2.0. Existing fields pass through untouched.
func migrateV1ToLatest(raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw)+1)
	for k, v := range raw {
		out[k] = v
	}

	out["schemaVersion"] = LatestVersion

	if _, ok := out["byDate"]; !ok {
		out["byDate"] = map[string]any{}
	}

	// Nested structures are copied before gaining fields so the input
	// document stays untouched.
	if app, ok := out["app"].(map[string]any); ok {
		migrated := make(map[string]any, len(app)+1)
		for k, v := range app {
			migrated[k] = v
		}
		if _, ok := migrated["features"]; !ok {
			features := map[string]any{}
			for k, v := range defaultFeatures() {
				features[k] = v
			}
			migrated["features"] = features
		}
		out["app"] = migrated
	}

	if _, ok := out["updatedAt"]; !ok {
		out["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	}

	// Organizations migrated from very old exports may lack a status.
	if orgs, ok := out["organizations"].([]any); ok {
		migratedOrgs := make([]any, 0, len(orgs))
		for _, entry := range orgs {
			org, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			copied := make(map[string]any, len(org)+2)
			for k, v := range org {
				copied[k] = v
			}
			if _, ok := copied["status"]; !ok {
				copied["status"] = "active"
			}
			if _, ok := copied["contactEmail"]; !ok {
				copied["contactEmail"] = ""
			}
			migratedOrgs = append(migratedOrgs, copied)
		}
		out["organizations"] = migratedOrgs
	}

	return out, nil
}
