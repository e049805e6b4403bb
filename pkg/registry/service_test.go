// ABOUTME: Tests for the registry facade
// ABOUTME: Covers load fallbacks, migration write-back, conflicts and caching

package registry

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mkearney/huntstore/internal/logger"
	"github.com/mkearney/huntstore/pkg/appdata"
	"github.com/mkearney/huntstore/pkg/backend"
	"github.com/mkearney/huntstore/pkg/orgdata"
	"github.com/mkearney/huntstore/pkg/validation"
)

func setupTestService() (*Service, *backend.MemoryStore) {
	store := backend.NewMemoryStore()
	vsvc := validation.NewService(Schemas(), Migrations(), logger.Nop(), nil)
	return NewService(store, vsvc, logger.Nop(), nil), store
}

func seed(t *testing.T, store *backend.MemoryStore, key string, doc any) string {
	t.Helper()
	bytes, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal seed doc: %v", err)
	}
	etag, err := store.Put(context.Background(), key, bytes, "")
	if err != nil {
		t.Fatalf("Failed to seed %s: %v", key, err)
	}
	return etag
}

func TestLoadAppFirstRunReturnsDefault(t *testing.T) {
	svc, _ := setupTestService()

	doc, etag := svc.LoadApp(context.Background())
	if etag != "" {
		t.Errorf("Expected empty etag on first run, got %s", etag)
	}
	if doc.SchemaVersion != appdata.LatestVersion {
		t.Errorf("Expected latest version, got %s", doc.SchemaVersion)
	}
	if len(doc.Organizations) != 0 {
		t.Errorf("Expected empty organizations, got %d", len(doc.Organizations))
	}
}

func TestLoadAppCorruptBytesReturnsDefault(t *testing.T) {
	svc, store := setupTestService()
	if _, err := store.Put(context.Background(), AppKey, []byte("not json{"), ""); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	doc, etag := svc.LoadApp(context.Background())
	if etag != "" {
		t.Errorf("Expected empty etag for unreadable registry, got %s", etag)
	}
	if doc == nil || doc.SchemaVersion != appdata.LatestVersion {
		t.Errorf("Expected default document, got %+v", doc)
	}
}

func TestLoadAppMigratesAndWritesBack(t *testing.T) {
	svc, store := setupTestService()
	seed(t, store, AppKey, map[string]any{
		"schemaVersion": "0.9.0",
		"appName":       "Legacy App",
		"orgs": []any{
			map[string]any{
				"slug":         "test-org",
				"name":         "Test Organization",
				"contactEmail": "test@example.com",
			},
		},
	})

	doc, etag := svc.LoadApp(context.Background())
	if etag == "" {
		t.Fatal("Expected etag for existing registry")
	}
	if doc.SchemaVersion != "1.2.0" {
		t.Errorf("Expected migrated version 1.2.0, got %s", doc.SchemaVersion)
	}
	if len(doc.Organizations) != 1 || doc.Organizations[0].OrgSlug != "test-org" {
		t.Errorf("Unexpected organizations: %+v", doc.Organizations)
	}

	// Storage converges to the latest version once the write-back lands.
	svc.Flush()
	rec, err := store.Get(context.Background(), AppKey)
	if err != nil {
		t.Fatalf("Failed to re-read registry: %v", err)
	}
	var stored map[string]any
	if err := json.Unmarshal(rec.Bytes, &stored); err != nil {
		t.Fatalf("Stored registry unreadable: %v", err)
	}
	if stored["schemaVersion"] != "1.2.0" {
		t.Errorf("Expected written-back version 1.2.0, got %v", stored["schemaVersion"])
	}
}

func TestLoadAppUsesCacheOnRepeatRead(t *testing.T) {
	svc, store := setupTestService()
	seed(t, store, AppKey, appdata.NewDocument(testTime()))

	doc1, etag1 := svc.LoadApp(context.Background())
	doc2, etag2 := svc.LoadApp(context.Background())

	if etag1 != etag2 {
		t.Errorf("Expected identical etags, got %s vs %s", etag1, etag2)
	}
	// The cache returns the validated document for the same content.
	if doc1 != doc2 {
		t.Error("Expected second load to hit the validated-document cache")
	}
}

func TestLoadOrgMissingPropagates(t *testing.T) {
	svc, _ := setupTestService()

	_, _, err := svc.LoadOrg(context.Background(), "ghost")
	if err == nil {
		t.Fatal("Expected error for missing org")
	}
	if !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("Expected ErrNotFound in chain, got %v", err)
	}
}

func TestLoadOrgMigratesLegacyDocument(t *testing.T) {
	svc, store := setupTestService()
	seed(t, store, OrgKey("bhhs"), map[string]any{
		"schemaVersion": "1.0.0",
		"org": map[string]any{
			"orgSlug":      "bhhs",
			"orgName":      "Berkshire Hathaway",
			"contactEmail": "ops@bhhs.example.com",
		},
		"hunts": []any{},
	})

	doc, etag, err := svc.LoadOrg(context.Background(), "bhhs")
	if err != nil {
		t.Fatalf("Failed to load org: %v", err)
	}
	if etag == "" {
		t.Error("Expected non-empty etag")
	}
	if doc.SchemaVersion != orgdata.LatestVersion {
		t.Errorf("Expected latest version, got %s", doc.SchemaVersion)
	}
	if len(doc.Org.Contacts) != 1 {
		t.Errorf("Expected contactEmail lifted into contacts, got %+v", doc.Org.Contacts)
	}

	// Storage converges here too.
	svc.Flush()
	rec, err := store.Get(context.Background(), OrgKey("bhhs"))
	if err != nil {
		t.Fatalf("Failed to re-read org: %v", err)
	}
	var stored map[string]any
	if err := json.Unmarshal(rec.Bytes, &stored); err != nil {
		t.Fatalf("Stored org unreadable: %v", err)
	}
	if stored["schemaVersion"] != orgdata.LatestVersion {
		t.Errorf("Expected written-back latest version, got %v", stored["schemaVersion"])
	}
}

func TestUpsertAppRejectsInvalidDocument(t *testing.T) {
	svc, _ := setupTestService()

	doc := appdata.NewDocument(testTime())
	doc.Organizations = append(doc.Organizations, appdata.OrganizationSummary{
		OrgSlug:      "bhhs",
		OrgName:      "Berkshire Hathaway",
		ContactEmail: "ops@bhhs.example.com",
		Status:       "paused", // not a valid status
	})

	_, err := svc.UpsertApp(context.Background(), doc, "")
	if err == nil {
		t.Fatal("Expected validation error")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationError, got %T: %v", err, err)
	}
	if len(verr.Errors) == 0 || verr.Errors[0].Path == "" {
		t.Errorf("Expected field-level error detail, got %+v", verr.Errors)
	}
}

func TestConcurrentUpsertConflicts(t *testing.T) {
	svc, _ := setupTestService()
	ctx := context.Background()

	// Create the registry.
	base := appdata.NewDocument(testTime())
	etag1, err := svc.UpsertApp(ctx, base, "")
	if err != nil {
		t.Fatalf("Failed initial upsert: %v", err)
	}

	// Caller A wins the race.
	docA := AddOrganization(base, appdata.OrganizationSummary{
		OrgSlug: "a-org", OrgName: "A", ContactEmail: "a@x.com", Status: "active",
	})
	if _, err := svc.UpsertApp(ctx, docA, etag1); err != nil {
		t.Fatalf("Caller A upsert failed: %v", err)
	}

	// Caller B still holds etag1 and must conflict, not silently overwrite.
	docB := AddOrganization(base, appdata.OrganizationSummary{
		OrgSlug: "b-org", OrgName: "B", ContactEmail: "b@x.com", Status: "active",
	})
	_, err = svc.UpsertApp(ctx, docB, etag1)
	if !errors.Is(err, backend.ErrConflict) {
		t.Fatalf("Expected ErrConflict for stale etag, got %v", err)
	}
}

func TestUpsertThenLoadRoundTrip(t *testing.T) {
	svc, _ := setupTestService()
	ctx := context.Background()

	org := NewOrg("bhhs", "Berkshire Hathaway", []orgdata.Contact{
		{Email: "ops@bhhs.example.com", Role: "primary"},
	})
	hunt := NewHunt("Vail Hunt 2025", "2025-08-08", "2025-08-09", "ops", nil)
	org = AddHuntToOrg(org, hunt)

	etag, err := svc.UpsertOrg(ctx, org, "bhhs", "")
	if err != nil {
		t.Fatalf("Failed to upsert org: %v", err)
	}
	if etag == "" {
		t.Fatal("Expected non-empty etag")
	}

	loaded, _, err := svc.LoadOrg(ctx, "bhhs")
	if err != nil {
		t.Fatalf("Failed to load org back: %v", err)
	}
	if len(loaded.Hunts) != 1 || loaded.Hunts[0].Name != "Vail Hunt 2025" {
		t.Errorf("Unexpected hunts after round trip: %+v", loaded.Hunts)
	}
	if loaded.Hunts[0].Status != "scheduled" {
		t.Errorf("Expected scheduled status, got %s", loaded.Hunts[0].Status)
	}
}

func TestListOrgSlugs(t *testing.T) {
	svc, store := setupTestService()
	seed(t, store, OrgKey("bhhs"), NewOrg("bhhs", "B", nil))
	seed(t, store, OrgKey("acme"), NewOrg("acme", "A", nil))
	seed(t, store, AppKey, appdata.NewDocument(testTime()))

	slugs, err := svc.ListOrgSlugs(context.Background())
	if err != nil {
		t.Fatalf("Failed to list orgs: %v", err)
	}
	if len(slugs) != 2 || slugs[0] != "acme" || slugs[1] != "bhhs" {
		t.Errorf("Expected [acme bhhs], got %v", slugs)
	}
}
