// ABOUTME: Document key layout in the backend store
// ABOUTME: One fixed app key, one key per organization

package registry

import "strings"

// AppKey is the single key holding the App Registry document.
const AppKey = "app.json"

// OrgPrefix is the key prefix for organization documents.
const OrgPrefix = "orgs/"

// OrgKey returns the storage key for an organization's document.
func OrgKey(orgSlug string) string {
	return OrgPrefix + orgSlug + ".json"
}

// SlugFromKey extracts the org slug from an organization key. Returns ""
// for keys outside the org prefix.
func SlugFromKey(key string) string {
	if !strings.HasPrefix(key, OrgPrefix) || !strings.HasSuffix(key, ".json") {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(key, OrgPrefix), ".json")
}
