// ABOUTME: Constructors for fresh org documents and hunts
// ABOUTME: Stamps default sub-structures and an audit trail

package registry

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkearney/huntstore/pkg/orgdata"
)

// DefaultTeams are assigned to new hunts until organizers rename them.
var DefaultTeams = []string{"RED", "GREEN", "BLUE"}

// NewOrg builds a fresh latest-version org document with no hunts.
func NewOrg(orgSlug, orgName string, contacts []orgdata.Contact) *orgdata.Document {
	if contacts == nil {
		contacts = []orgdata.Contact{}
	}

	return &orgdata.Document{
		SchemaVersion: orgdata.LatestVersion,
		UpdatedAt:     time.Now().UTC().Format(time.RFC3339),
		Org: orgdata.Organization{
			OrgSlug:  orgSlug,
			OrgName:  orgName,
			Contacts: contacts,
			Settings: map[string]any{
				"timezone": "America/Denver",
			},
		},
		Hunts: []orgdata.Hunt{},
	}
}

// NewHunt builds a scheduled hunt with default teams, scoring and access,
// plus an audit trail naming its creator.
func NewHunt(name, startDate, endDate, createdBy string, location *orgdata.Location) orgdata.Hunt {
	return orgdata.Hunt{
		ID:        uuid.NewString(),
		Slug:      slugify(name),
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    "scheduled",
		Access: orgdata.Access{
			Visibility: "private",
		},
		Scoring: orgdata.Scoring{
			Mode:          "points",
			PointsPerStop: 10,
		},
		Teams:    append([]string(nil), DefaultTeams...),
		Stops:    []orgdata.Stop{},
		Location: location,
		Audit: orgdata.Audit{
			CreatedBy: createdBy,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// slugify lowercases and replaces runs of non-alphanumerics with hyphens.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen

	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
