// ABOUTME: Migration steps for the orgData version chain
// ABOUTME: 1.0.0 single-contact flat hunts -> 1.2.0 structured shape

package orgdata

import (
	"time"

	"github.com/mkearney/huntstore/pkg/migration"
)

// Migrations returns the orgData chain for engine registration.
func Migrations() []migration.Step {
	return []migration.Step{
		{From: VersionV1, To: LatestVersion, Transform: migrateV1ToLatest},
	}
}

// migrateV1ToLatest restructures a 1.0.0 org document: the single
// contactEmail becomes a contacts array, and each hunt gains the
// access/scoring/audit sub-structures with defaults.
func migrateV1ToLatest(raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	out["schemaVersion"] = LatestVersion

	if org, ok := out["org"].(map[string]any); ok {
		migrated := make(map[string]any, len(org))
		for k, v := range org {
			migrated[k] = v
		}

		if _, ok := migrated["contacts"]; !ok {
			contacts := []any{}
			if email, _ := migrated["contactEmail"].(string); email != "" {
				contacts = append(contacts, map[string]any{
					"email": email,
					"role":  "primary",
				})
			}
			migrated["contacts"] = contacts
		}
		delete(migrated, "contactEmail")

		out["org"] = migrated
	}

	if hunts, ok := out["hunts"].([]any); ok {
		migratedHunts := make([]any, 0, len(hunts))
		for _, entry := range hunts {
			hunt, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			migratedHunts = append(migratedHunts, migrateHunt(hunt))
		}
		out["hunts"] = migratedHunts
	} else {
		out["hunts"] = []any{}
	}

	if _, ok := out["updatedAt"]; !ok {
		out["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	}

	return out, nil
}

func migrateHunt(hunt map[string]any) map[string]any {
	out := make(map[string]any, len(hunt))
	for k, v := range hunt {
		out[k] = v
	}

	if _, ok := out["status"]; !ok {
		out["status"] = "scheduled"
	}
	if _, ok := out["slug"]; !ok {
		out["slug"], _ = out["id"].(string)
	}

	if _, ok := out["access"]; !ok {
		access := map[string]any{"visibility": "private"}
		// The 1.0.0 shape kept an optional flat accessCode.
		if code, _ := out["accessCode"].(string); code != "" {
			access["visibility"] = "pin"
			access["pin"] = code
		}
		out["access"] = access
	}
	delete(out, "accessCode")

	if _, ok := out["scoring"]; !ok {
		points := 10
		if p, ok := out["points"].(float64); ok && p > 0 {
			points = int(p)
		}
		out["scoring"] = map[string]any{
			"mode":          "points",
			"pointsPerStop": points,
			"bonusEnabled":  false,
		}
	}
	delete(out, "points")

	if _, ok := out["audit"]; !ok {
		createdBy, _ := out["createdBy"].(string)
		if createdBy == "" {
			createdBy = "migration"
		}
		createdAt, _ := out["createdAt"].(string)
		if createdAt == "" {
			createdAt = time.Now().UTC().Format(time.RFC3339)
		}
		out["audit"] = map[string]any{
			"createdBy": createdBy,
			"createdAt": createdAt,
		}
	}
	delete(out, "createdBy")
	delete(out, "createdAt")

	if _, ok := out["stops"]; !ok {
		out["stops"] = []any{}
	}

	return out
}
