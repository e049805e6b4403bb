// ABOUTME: Tests for the pure mutation helpers and constructors
// ABOUTME: Verifies replace-or-append idempotence and default stamping

package registry

import (
	"testing"
	"time"

	"github.com/mkearney/huntstore/pkg/appdata"
	"github.com/mkearney/huntstore/pkg/orgdata"
)

func testTime() time.Time {
	return time.Date(2025, 8, 8, 10, 0, 0, 0, time.UTC)
}

func TestAddOrganizationReplacesBySlug(t *testing.T) {
	doc := appdata.NewDocument(testTime())

	first := appdata.OrganizationSummary{
		OrgSlug: "bhhs", OrgName: "First Name", ContactEmail: "one@x.com", Status: "active",
	}
	second := appdata.OrganizationSummary{
		OrgSlug: "bhhs", OrgName: "Second Name", ContactEmail: "two@x.com", Status: "inactive",
	}

	doc = AddOrganization(doc, first)
	doc = AddOrganization(doc, second)

	if len(doc.Organizations) != 1 {
		t.Fatalf("Expected 1 organization, got %d", len(doc.Organizations))
	}
	if doc.Organizations[0].OrgName != "Second Name" {
		t.Errorf("Expected second summary to win, got %+v", doc.Organizations[0])
	}
}

func TestAddOrganizationDoesNotMutateInput(t *testing.T) {
	doc := appdata.NewDocument(testTime())

	out := AddOrganization(doc, appdata.OrganizationSummary{OrgSlug: "bhhs"})
	if len(doc.Organizations) != 0 {
		t.Error("Input document was mutated")
	}
	if len(out.Organizations) != 1 {
		t.Error("Output document missing the new entry")
	}
}

func TestAddHuntToOrgReplacesByID(t *testing.T) {
	org := NewOrg("bhhs", "Berkshire Hathaway", nil)

	hunt := NewHunt("Vail Hunt 2025", "2025-08-08", "2025-08-09", "ops", nil)
	org = AddHuntToOrg(org, hunt)

	renamed := hunt
	renamed.Name = "Vail Hunt 2025 (Updated)"
	org = AddHuntToOrg(org, renamed)

	if len(org.Hunts) != 1 {
		t.Fatalf("Expected 1 hunt, got %d", len(org.Hunts))
	}
	if org.Hunts[0].Name != "Vail Hunt 2025 (Updated)" {
		t.Errorf("Expected replacement to win, got %s", org.Hunts[0].Name)
	}
}

func TestUpdateByDateIndexIsIdempotent(t *testing.T) {
	doc := appdata.NewDocument(testTime())

	doc = UpdateByDateIndex(doc, "2025-08-08", "bhhs", "vail-hunt-2025")
	doc = UpdateByDateIndex(doc, "2025-08-08", "bhhs", "vail-hunt-2025")

	entries := doc.ByDate["2025-08-08"]
	if len(entries) != 1 {
		t.Fatalf("Expected exactly 1 entry, got %d", len(entries))
	}
	if entries[0].OrgSlug != "bhhs" || entries[0].HuntID != "vail-hunt-2025" {
		t.Errorf("Unexpected entry: %+v", entries[0])
	}
}

func TestUpdateByDateIndexKeepsInsertionOrder(t *testing.T) {
	doc := appdata.NewDocument(testTime())
	doc.ByDate = nil // index may be absent on older documents

	doc = UpdateByDateIndex(doc, "2025-08-08", "bhhs", "hunt-b")
	doc = UpdateByDateIndex(doc, "2025-08-08", "acme", "hunt-a")
	doc = UpdateByDateIndex(doc, "2025-08-08", "bhhs", "hunt-b")

	entries := doc.ByDate["2025-08-08"]
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].HuntID != "hunt-b" || entries[1].HuntID != "hunt-a" {
		t.Errorf("Expected insertion order preserved, got %+v", entries)
	}
}

func TestNewHuntDefaults(t *testing.T) {
	hunt := NewHunt("Vail Hunt 2025!", "2025-08-08", "2025-08-09", "ops",
		&orgdata.Location{Name: "Vail Village", City: "Vail", State: "CO"})

	if hunt.ID == "" {
		t.Error("Expected generated hunt ID")
	}
	if hunt.Slug != "vail-hunt-2025" {
		t.Errorf("Expected slug vail-hunt-2025, got %s", hunt.Slug)
	}
	if hunt.Status != "scheduled" {
		t.Errorf("Expected scheduled status, got %s", hunt.Status)
	}
	if len(hunt.Teams) != len(DefaultTeams) {
		t.Errorf("Expected default teams, got %v", hunt.Teams)
	}
	if hunt.Scoring.Mode != "points" || hunt.Scoring.PointsPerStop != 10 {
		t.Errorf("Unexpected scoring defaults: %+v", hunt.Scoring)
	}
	if hunt.Audit.CreatedBy != "ops" || hunt.Audit.CreatedAt == "" {
		t.Errorf("Expected audit trail, got %+v", hunt.Audit)
	}
}

func TestOrgKeyRoundTrip(t *testing.T) {
	key := OrgKey("bhhs")
	if key != "orgs/bhhs.json" {
		t.Errorf("Unexpected key: %s", key)
	}
	if slug := SlugFromKey(key); slug != "bhhs" {
		t.Errorf("Expected bhhs, got %s", slug)
	}
	if slug := SlugFromKey("app.json"); slug != "" {
		t.Errorf("Expected empty slug for app key, got %s", slug)
	}
}
