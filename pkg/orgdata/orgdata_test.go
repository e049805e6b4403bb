// ABOUTME: Tests for orgData validators and migration transforms
// ABOUTME: Verifies the 1.0.0 to 1.2.0 restructuring end to end

package orgdata

import (
	"testing"

	"github.com/mkearney/huntstore/pkg/migration"
	"github.com/mkearney/huntstore/pkg/schema"
)

func validLatestRaw() map[string]any {
	return map[string]any{
		"schemaVersion": "1.2.0",
		"updatedAt":     "2025-08-08T10:00:00Z",
		"org": map[string]any{
			"orgSlug": "bhhs",
			"orgName": "Berkshire Hathaway",
			"contacts": []any{
				map[string]any{"email": "ops@bhhs.example.com", "role": "primary"},
			},
		},
		"hunts": []any{
			map[string]any{
				"id":        "vail-hunt-2025",
				"slug":      "vail-hunt-2025",
				"name":      "Vail Hunt 2025",
				"startDate": "2025-08-08",
				"endDate":   "2025-08-09",
				"status":    "scheduled",
				"access":    map[string]any{"visibility": "private"},
				"scoring":   map[string]any{"mode": "points", "pointsPerStop": 10},
				"stops":     []any{},
				"audit":     map[string]any{"createdBy": "ops", "createdAt": "2025-08-01T00:00:00Z"},
			},
		},
	}
}

func TestLatestValidatorAccepts(t *testing.T) {
	parsed, errs := (latestValidator{}).Parse(validLatestRaw())
	if len(errs) != 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}

	doc := parsed.(*Document)
	if doc.Org.OrgSlug != "bhhs" {
		t.Errorf("Expected org slug bhhs, got %s", doc.Org.OrgSlug)
	}
	if len(doc.Hunts) != 1 || doc.Hunts[0].ID != "vail-hunt-2025" {
		t.Errorf("Unexpected hunts: %+v", doc.Hunts)
	}
}

func TestLatestValidatorRejectsDuplicateHuntID(t *testing.T) {
	raw := validLatestRaw()
	hunts := raw["hunts"].([]any)
	raw["hunts"] = append(hunts, hunts[0])

	_, errs := (latestValidator{}).Parse(raw)
	found := false
	for _, e := range errs {
		if e.Code == schema.CodeDuplicate && e.Path == "hunts[1].id" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected duplicate hunt id error, got %v", errs)
	}
}

func TestLatestValidatorReportsMissingFields(t *testing.T) {
	raw := validLatestRaw()
	hunt := raw["hunts"].([]any)[0].(map[string]any)
	delete(hunt, "startDate")
	delete(hunt, "audit")

	_, errs := (latestValidator{}).Parse(raw)

	paths := make(map[string]bool)
	for _, e := range errs {
		paths[e.Path] = true
	}
	if !paths["hunts[0].startDate"] {
		t.Errorf("Expected missing startDate at hunts[0].startDate, got %v", errs)
	}
	if !paths["hunts[0].audit"] {
		t.Errorf("Expected missing audit, got %v", errs)
	}
}

func TestV1MigratesToLatest(t *testing.T) {
	engine := migration.NewEngine()
	engine.Register(schema.KindOrg, Migrations()...)

	v1 := map[string]any{
		"schemaVersion": "1.0.0",
		"org": map[string]any{
			"orgSlug":      "bhhs",
			"orgName":      "Berkshire Hathaway",
			"contactEmail": "ops@bhhs.example.com",
		},
		"hunts": []any{
			map[string]any{
				"id":         "vail-hunt-2025",
				"name":       "Vail Hunt 2025",
				"startDate":  "2025-08-08",
				"endDate":    "2025-08-09",
				"accessCode": "7744",
				"points":     float64(25),
				"createdBy":  "ops",
			},
		},
	}

	res := engine.Migrate(schema.KindOrg, v1, VersionV1, LatestVersion)
	if !res.Success {
		t.Fatalf("Migration failed: %v", res.Err)
	}

	parsed, errs := (latestValidator{}).Parse(res.Data)
	if len(errs) != 0 {
		t.Fatalf("Migrated document failed validation: %v", errs)
	}

	doc := parsed.(*Document)
	if len(doc.Org.Contacts) != 1 || doc.Org.Contacts[0].Email != "ops@bhhs.example.com" {
		t.Errorf("Expected contactEmail lifted into contacts, got %+v", doc.Org.Contacts)
	}

	hunt := doc.Hunts[0]
	if hunt.Access.Visibility != "pin" || hunt.Access.PIN != "7744" {
		t.Errorf("Expected accessCode migrated to pin access, got %+v", hunt.Access)
	}
	if hunt.Scoring.PointsPerStop != 25 {
		t.Errorf("Expected points carried into scoring, got %+v", hunt.Scoring)
	}
	if hunt.Status != "scheduled" {
		t.Errorf("Expected default status scheduled, got %s", hunt.Status)
	}
	if hunt.Audit.CreatedBy != "ops" {
		t.Errorf("Expected audit createdBy ops, got %+v", hunt.Audit)
	}
}

func TestCloneIsDeep(t *testing.T) {
	parsed, errs := (latestValidator{}).Parse(validLatestRaw())
	if len(errs) != 0 {
		t.Fatalf("Setup failed: %v", errs)
	}
	doc := parsed.(*Document)

	clone := doc.Clone()
	clone.Hunts[0].Name = "Renamed"
	clone.Org.Contacts[0].Email = "other@x.com"

	if doc.Hunts[0].Name != "Vail Hunt 2025" {
		t.Error("Clone shares hunts slice")
	}
	if doc.Org.Contacts[0].Email != "ops@bhhs.example.com" {
		t.Error("Clone shares contacts slice")
	}
}
