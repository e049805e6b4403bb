// ABOUTME: Migration engine walking version chains per document kind
// ABOUTME: Applies registered steps greedily, fails fast on a broken chain

package migration

import (
	"fmt"
	"sort"

	"github.com/mkearney/huntstore/pkg/schema"
)

// Engine holds the registered migration steps for each document kind.
// Version history is linear, so steps form a chain keyed by their From
// version; there is no path search. Populated once at bootstrap and
// read-only afterwards.
type Engine struct {
	steps map[schema.Kind]map[string]Step
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{steps: make(map[schema.Kind]map[string]Step)}
}

// Register adds migration steps for a kind. A later step with the same From
// version replaces the earlier one.
func (e *Engine) Register(kind schema.Kind, steps ...Step) {
	chain, ok := e.steps[kind]
	if !ok {
		chain = make(map[string]Step)
		e.steps[kind] = chain
	}
	for _, s := range steps {
		chain[s.From] = s
	}
}

// NeedsMigration reports whether a document at version from must migrate to
// reach to. It returns true whenever the versions differ, even when no chain
// connects them: the attempt will then fail with a clear error instead of
// being silently skipped.
func (e *Engine) NeedsMigration(kind schema.Kind, from, to string) bool {
	return from != to
}

// Migrate walks the chain from version from to version to, applying one step
// at a time. A missing step or a failing transform stops the walk; the result
// then carries the versions already reached so the caller can report how far
// the document got. The input map is never mutated by the engine itself
// (transforms receive it directly and are expected to build their output).
func (e *Engine) Migrate(kind schema.Kind, raw map[string]any, from, to string) Result {
	if from == to {
		return Result{Success: true, Data: raw}
	}

	chain := e.steps[kind]
	doc := raw
	current := from
	var applied []string

	// The chain is finite; cap the walk so a miswired cycle cannot spin.
	for i := 0; i < len(chain)+1; i++ {
		step, ok := chain[current]
		if !ok {
			return Result{
				Err:     fmt.Errorf("no migration step from %s for kind %s", current, kind),
				Applied: applied,
			}
		}

		next, err := applyStep(step, doc)
		if err != nil {
			return Result{
				Err:     fmt.Errorf("migration %s -> %s: %w", step.From, step.To, err),
				Applied: applied,
			}
		}

		doc = next
		current = step.To
		applied = append(applied, step.To)

		if current == to {
			return Result{Success: true, Data: doc, Applied: applied}
		}
	}

	return Result{
		Err:     fmt.Errorf("migration chain for kind %s never reaches %s from %s", kind, to, from),
		Applied: applied,
	}
}

// AvailableVersions returns every version that appears in the registered
// chain for kind, ascending. Introspection for diagnostics and tests.
func (e *Engine) AvailableVersions(kind schema.Kind) []string {
	seen := make(map[string]bool)
	for from, step := range e.steps[kind] {
		seen[from] = true
		seen[step.To] = true
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return schema.CompareVersions(out[i], out[j]) < 0
	})
	return out
}

// applyStep shields the engine from a panicking transform; the failure comes
// back as an error in the result, never as an escaping panic.
func applyStep(step Step, doc map[string]any) (out map[string]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("transform panicked: %v", r)
		}
	}()
	return step.Transform(doc)
}
