// Package resctx implements the context qualifier provider (C4): a
// validated set of current qualifier values a resolver (C5) matches
// conditions against. A Context is immutable once built, so the same
// Context can be resolved against concurrently and reused across calls
// (spec §5).
package resctx

import (
	"fmt"
	"sort"
	"strings"

	"github.com/resctx/resctx-runtime/pkg/arena"
	"github.com/resctx/resctx-runtime/pkg/ids"
)

// Context is an immutable map from qualifier index to its current string
// value, validated against the qualifier's type at construction time.
type Context struct {
	a      *arena.Arena
	values map[ids.QualifierIndex]string
}

// ContextError aggregates every qualifier value rejected while building a
// Context, so a caller assembling context from request headers, a config
// file, or similar sees every bad value in one report.
type ContextError struct {
	Problems []string
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("resctx: invalid context: %s", strings.Join(e.Problems, "; "))
}

func nameIndex(a *arena.Arena) map[string]ids.QualifierIndex {
	byName := make(map[string]ids.QualifierIndex, a.NumQualifiers())
	for i := 0; i < a.NumQualifiers(); i++ {
		q, _ := a.QualifierAt(ids.QualifierIndex(i))
		byName[q.Name] = q.Index
	}
	return byName
}

// New builds a Context from a qualifier-name -> value map, validating each
// value against its qualifier's type. Unknown qualifier names and values
// rejected by IsValidContextValue are collected into a single *ContextError.
func New(a *arena.Arena, values map[string]string) (*Context, error) {
	byName := nameIndex(a)
	out := make(map[ids.QualifierIndex]string, len(values))
	var problems []string

	// Sort for deterministic error ordering.
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := values[name]
		idx, ok := byName[name]
		if !ok {
			problems = append(problems, fmt.Sprintf("unknown qualifier %q", name))
			continue
		}
		q, _ := a.QualifierAt(idx)
		qt, _ := a.QualifierTypeAt(q.TypeIndex)
		if qt.Impl != nil && !qt.Impl.IsValidContextValue(value) {
			problems = append(problems, fmt.Sprintf("qualifier %q: value %q is not valid for type %q", name, value, qt.Name))
			continue
		}
		out[idx] = value
	}

	if len(problems) > 0 {
		return nil, &ContextError{Problems: problems}
	}
	return &Context{a: a, values: out}, nil
}

// Get returns the current value for a qualifier by name.
func (c *Context) Get(name string) (string, bool) {
	idx, ok := nameIndex(c.a)[name]
	if !ok {
		return "", false
	}
	return c.ValueAt(idx)
}

// ValueAt returns the current value for a qualifier by arena index; this is
// the form the resolver's hot path uses, since it already has the index from
// the condition it's evaluating.
func (c *Context) ValueAt(idx ids.QualifierIndex) (string, bool) {
	v, ok := c.values[idx]
	return v, ok
}

// With returns a new Context with updates applied on top of c's existing
// values, re-validating every entry of the merged set. c itself is left
// untouched.
func (c *Context) With(updates map[string]string) (*Context, error) {
	merged := make(map[string]string, len(c.values)+len(updates))
	byName := nameIndex(c.a)
	inverse := make(map[ids.QualifierIndex]string, len(byName))
	for name, idx := range byName {
		inverse[idx] = name
	}
	for idx, v := range c.values {
		if name, ok := inverse[idx]; ok {
			merged[name] = v
		}
	}
	for name, v := range updates {
		merged[name] = v
	}
	return New(c.a, merged)
}
