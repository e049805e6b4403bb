// ABOUTME: App Registry document model, latest version 1.2.0
// ABOUTME: Global organization index plus the byDate hunt index

package appdata

import "time"

// LatestVersion is the current appData schema version.
const LatestVersion = "1.2.0"

// Document is the App Registry: the global organization index and the byDate
// hunt index. One instance exists per deployment, stored under a fixed key.
type Document struct {
	SchemaVersion string                      `json:"schemaVersion"`
	UpdatedAt     string                      `json:"updatedAt"`
	App           AppInfo                     `json:"app"`
	Organizations []OrganizationSummary       `json:"organizations"`
	ByDate        map[string][]HuntIndexEntry `json:"byDate,omitempty"`
}

// AppInfo is deployment-level metadata, opaque to the storage core beyond its
// structural shape.
type AppInfo struct {
	Metadata Metadata          `json:"metadata"`
	Features map[string]bool   `json:"features,omitempty"`
	Defaults map[string]string `json:"defaults,omitempty"`
}

// Metadata names the deployment.
type Metadata struct {
	Name        string `json:"name"`
	Environment string `json:"environment,omitempty"`
}

// OrganizationSummary is the index entry for one organization. Entries are
// unique by OrgSlug.
type OrganizationSummary struct {
	OrgSlug      string `json:"orgSlug"`
	OrgName      string `json:"orgName"`
	ContactEmail string `json:"contactEmail"`
	Status       string `json:"status"`
}

// HuntIndexEntry points from a date to a hunt in some org's document. Entries
// are unique by (OrgSlug, HuntID) within a date. The org document is the
// source of truth; this index is a lookup cache for "what's happening today".
type HuntIndexEntry struct {
	OrgSlug  string `json:"orgSlug"`
	HuntID   string `json:"huntId"`
	HuntName string `json:"huntName,omitempty"`
}

// Valid organization statuses.
var OrgStatuses = []string{"active", "inactive", "archived"}

// NewDocument returns an empty latest-version App Registry. LoadApp falls
// back to this on first run or unrecoverable read failure.
func NewDocument(now time.Time) *Document {
	return &Document{
		SchemaVersion: LatestVersion,
		UpdatedAt:     now.UTC().Format(time.RFC3339),
		App: AppInfo{
			Metadata: Metadata{Name: "Scavenger Hunt"},
			Features: defaultFeatures(),
		},
		Organizations: []OrganizationSummary{},
		ByDate:        map[string][]HuntIndexEntry{},
	}
}

// Clone returns a deep copy. The pure index helpers in pkg/registry build on
// this so callers never share mutable state with cached documents.
func (d *Document) Clone() *Document {
	out := *d

	out.App.Features = copyBoolMap(d.App.Features)
	out.App.Defaults = copyStringMap(d.App.Defaults)

	out.Organizations = make([]OrganizationSummary, len(d.Organizations))
	copy(out.Organizations, d.Organizations)

	if d.ByDate != nil {
		out.ByDate = make(map[string][]HuntIndexEntry, len(d.ByDate))
		for date, entries := range d.ByDate {
			copied := make([]HuntIndexEntry, len(entries))
			copy(copied, entries)
			out.ByDate[date] = copied
		}
	}

	return &out
}

func defaultFeatures() map[string]bool {
	return map[string]bool{
		"photoUpload":   true,
		"leaderboard":   true,
		"notifications": false,
	}
}

func copyBoolMap(m map[string]bool) map[string]bool {
	if m == nil {
		return nil
	}
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
