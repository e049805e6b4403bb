// ABOUTME: Schema version registry, a read-only lookup per document kind
// ABOUTME: Answers latest/deprecated/validator/migration-target questions

package schema

// Registry holds the registered versions for each document kind. It is
// populated once at bootstrap and must not be mutated afterwards; every
// lookup on an unknown kind or version returns a zero value, never panics.
type Registry struct {
	kinds map[Kind]*kindEntry
}

type kindEntry struct {
	versions       []Version // ascending semver order
	defaultVersion string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[Kind]*kindEntry)}
}

// RegisterKind registers the full version chain for a kind. defaultVersion is
// assumed when a document carries no schemaVersion marker in permissive mode.
// Versions are kept in ascending semver order regardless of argument order.
func (r *Registry) RegisterKind(kind Kind, defaultVersion string, versions ...Version) {
	entry := &kindEntry{defaultVersion: defaultVersion}
	for _, v := range versions {
		entry.versions = insertSorted(entry.versions, v)
	}
	r.kinds[kind] = entry
}

// LatestVersion returns the highest registered version for kind, or "" if the
// kind is unknown.
func (r *Registry) LatestVersion(kind Kind) string {
	entry, ok := r.kinds[kind]
	if !ok || len(entry.versions) == 0 {
		return ""
	}
	return entry.versions[len(entry.versions)-1].Version
}

// Schema returns the validator registered for (kind, version), or nil.
func (r *Registry) Schema(kind Kind, version string) Validator {
	if v := r.find(kind, version); v != nil {
		return v.Validator
	}
	return nil
}

// IsDeprecated reports whether (kind, version) is registered and deprecated.
func (r *Registry) IsDeprecated(kind Kind, version string) bool {
	if v := r.find(kind, version); v != nil {
		return v.Deprecated
	}
	return false
}

// MigrationTarget returns the version a document at (kind, version) should
// move toward: the latest version of the kind. Returns "" when the version is
// unregistered.
func (r *Registry) MigrationTarget(kind Kind, version string) string {
	if r.find(kind, version) == nil {
		return ""
	}
	return r.LatestVersion(kind)
}

// DefaultVersion returns the version assumed for unmarked documents of kind,
// or "" for an unknown kind.
func (r *Registry) DefaultVersion(kind Kind) string {
	entry, ok := r.kinds[kind]
	if !ok {
		return ""
	}
	return entry.defaultVersion
}

// Versions returns the registered version strings for kind in ascending
// order. Introspection for diagnostics and tests.
func (r *Registry) Versions(kind Kind) []string {
	entry, ok := r.kinds[kind]
	if !ok {
		return nil
	}
	out := make([]string, len(entry.versions))
	for i, v := range entry.versions {
		out[i] = v.Version
	}
	return out
}

func (r *Registry) find(kind Kind, version string) *Version {
	entry, ok := r.kinds[kind]
	if !ok {
		return nil
	}
	for i := range entry.versions {
		if entry.versions[i].Version == version {
			return &entry.versions[i]
		}
	}
	return nil
}

func insertSorted(versions []Version, v Version) []Version {
	pos := len(versions)
	for i, existing := range versions {
		if CompareVersions(v.Version, existing.Version) < 0 {
			pos = i
			break
		}
	}
	versions = append(versions, Version{})
	copy(versions[pos+1:], versions[pos:])
	versions[pos] = v
	return versions
}
