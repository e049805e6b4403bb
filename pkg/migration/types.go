// ABOUTME: Migration data model
// ABOUTME: Directed steps between schema versions and their results

package migration

// Step is one directed transform between two schema versions. Transform must
// be deterministic, must succeed for any document valid at From, and must
// stamp the output's schemaVersion with To.
type Step struct {
	From      string
	To        string
	Transform func(raw map[string]any) (map[string]any, error)
}

// Result reports one migration attempt. Applied lists the versions reached by
// each step that ran, in order, including steps that ran before a failure.
type Result struct {
	Success bool
	Data    map[string]any
	Err     error
	Applied []string
}
