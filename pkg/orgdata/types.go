// ABOUTME: Organization document model, latest version 1.2.0
// ABOUTME: Org profile, contacts and the hunts owned by the organization

package orgdata

// LatestVersion is the current orgData schema version.
const LatestVersion = "1.2.0"

// Document holds everything belonging to one organization. It is the source
// of truth for its hunts; the App Registry's date index only points here.
type Document struct {
	SchemaVersion string       `json:"schemaVersion"`
	UpdatedAt     string       `json:"updatedAt"`
	Org           Organization `json:"org"`
	Hunts         []Hunt       `json:"hunts"`
}

// Organization is the org profile.
type Organization struct {
	OrgSlug  string         `json:"orgSlug"`
	OrgName  string         `json:"orgName"`
	Contacts []Contact      `json:"contacts"`
	Settings map[string]any `json:"settings,omitempty"`
}

// Contact is one person attached to the organization.
type Contact struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
}

// Hunt is one scavenger hunt. Hunts are unique by ID within a document.
type Hunt struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Status    string    `json:"status"`
	Access    Access    `json:"access"`
	Scoring   Scoring   `json:"scoring"`
	Teams     []string  `json:"teams,omitempty"`
	Stops     []Stop    `json:"stops"`
	Location  *Location `json:"location,omitempty"`
	Audit     Audit     `json:"audit"`
}

// Access controls who can join a hunt.
type Access struct {
	Visibility string `json:"visibility"`
	PIN        string `json:"pin,omitempty"`
}

// Scoring configures how stops are scored.
type Scoring struct {
	Mode          string `json:"mode"`
	PointsPerStop int    `json:"pointsPerStop"`
	BonusEnabled  bool   `json:"bonusEnabled"`
}

// Stop is one location/clue within a hunt.
type Stop struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Clue   string  `json:"clue,omitempty"`
	Lat    float64 `json:"lat,omitempty"`
	Lng    float64 `json:"lng,omitempty"`
	Points int     `json:"points,omitempty"`
}

// Location is an optional venue for a hunt.
type Location struct {
	Name  string `json:"name"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

// Audit records who created a record and when.
type Audit struct {
	CreatedBy string `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
}

// Valid hunt statuses.
var HuntStatuses = []string{"scheduled", "active", "completed", "archived"}

// Valid access visibilities.
var Visibilities = []string{"public", "private", "pin"}

// Clone returns a deep copy, used by the pure mutation helpers.
func (d *Document) Clone() *Document {
	out := *d

	out.Org.Contacts = make([]Contact, len(d.Org.Contacts))
	copy(out.Org.Contacts, d.Org.Contacts)

	if d.Org.Settings != nil {
		out.Org.Settings = make(map[string]any, len(d.Org.Settings))
		for k, v := range d.Org.Settings {
			out.Org.Settings[k] = v
		}
	}

	out.Hunts = make([]Hunt, len(d.Hunts))
	for i, h := range d.Hunts {
		out.Hunts[i] = h.clone()
	}

	return &out
}

func (h Hunt) clone() Hunt {
	out := h
	out.Teams = append([]string(nil), h.Teams...)
	out.Stops = append([]Stop(nil), h.Stops...)
	if h.Location != nil {
		loc := *h.Location
		out.Location = &loc
	}
	return out
}
