// ABOUTME: Pure document mutation helpers, replace-or-append semantics
// ABOUTME: No storage writes, callers still upsert the returned copy

package registry

import (
	"github.com/mkearney/huntstore/pkg/appdata"
	"github.com/mkearney/huntstore/pkg/orgdata"
)

// AddOrganization returns a copy of the App Registry with the summary added.
// An existing entry with the same orgSlug is replaced in place, so calling
// twice with the same slug leaves one entry whose fields are the last write.
func AddOrganization(doc *appdata.Document, summary appdata.OrganizationSummary) *appdata.Document {
	out := doc.Clone()

	for i, org := range out.Organizations {
		if org.OrgSlug == summary.OrgSlug {
			out.Organizations[i] = summary
			return out
		}
	}

	out.Organizations = append(out.Organizations, summary)
	return out
}

// AddHuntToOrg returns a copy of the org document with the hunt added,
// replacing any existing hunt with the same ID.
func AddHuntToOrg(doc *orgdata.Document, hunt orgdata.Hunt) *orgdata.Document {
	out := doc.Clone()

	for i, h := range out.Hunts {
		if h.ID == hunt.ID {
			out.Hunts[i] = hunt
			return out
		}
	}

	out.Hunts = append(out.Hunts, hunt)
	return out
}

// UpdateByDateIndex returns a copy of the App Registry with (orgSlug, huntID)
// indexed under dateStr. An existing entry for the pair is replaced;
// otherwise the entry appends, keeping insertion order for the date.
func UpdateByDateIndex(doc *appdata.Document, dateStr, orgSlug, huntID string) *appdata.Document {
	out := doc.Clone()

	if out.ByDate == nil {
		out.ByDate = map[string][]appdata.HuntIndexEntry{}
	}

	entry := appdata.HuntIndexEntry{OrgSlug: orgSlug, HuntID: huntID}
	entries := out.ByDate[dateStr]

	for i, e := range entries {
		if e.OrgSlug == orgSlug && e.HuntID == huntID {
			entries[i] = entry
			out.ByDate[dateStr] = entries
			return out
		}
	}

	out.ByDate[dateStr] = append(entries, entry)
	return out
}
