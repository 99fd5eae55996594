// Package terms maps abstract information-element identifiers (Darwin Core
// terms) onto the column names a real dataset actually uses.
package terms

import "strings"

// ColumnSet is the lowercase set of a dataset's column names.
type ColumnSet map[string]struct{}

// NewColumnSet builds a ColumnSet from raw header names. Names are trimmed
// and lowercased; empty names are dropped.
func NewColumnSet(names []string) ColumnSet {
	cs := make(ColumnSet, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		cs[n] = struct{}{}
	}
	return cs
}

// Contains reports whether the set holds the given (already lowercase) name.
func (cs ColumnSet) Contains(name string) bool {
	_, ok := cs[name]
	return ok
}

// Resolver resolves identifiers against a column set using an alias table.
// A Resolver is immutable after construction and safe for concurrent use.
type Resolver struct {
	aliases map[string][]string
}

// NewResolver returns a resolver over the canonical Darwin Core alias table.
func NewResolver() *Resolver {
	return &Resolver{aliases: canonicalAliases}
}

// WithAliases returns a new resolver whose table is this resolver's table
// extended (or overridden, per identifier) by extra. Keys in extra are
// normalized; the receiver is not modified.
func (r *Resolver) WithAliases(extra map[string][]string) *Resolver {
	merged := make(map[string][]string, len(r.aliases)+len(extra))
	for k, v := range r.aliases {
		merged[k] = v
	}
	for k, v := range extra {
		key := Normalize(k)
		cleaned := make([]string, 0, len(v))
		for _, a := range v {
			a = strings.ToLower(strings.TrimSpace(a))
			if a != "" {
				cleaned = append(cleaned, a)
			}
		}
		if len(cleaned) > 0 {
			merged[key] = cleaned
		}
	}
	return &Resolver{aliases: merged}
}

// Normalize strips a namespace prefix (everything up to and including the
// last ':') and lowercases the remainder.
func Normalize(identifier string) string {
	id := strings.TrimSpace(identifier)
	if i := strings.LastIndex(id, ":"); i >= 0 {
		id = id[i+1:]
	}
	return strings.ToLower(id)
}

// Resolve returns the first alias for identifier that is present in columns,
// in declared preference order. Identifiers absent from the alias table fall
// back to the bare normalized identifier as their sole candidate, so every
// identifier is resolvable in principle. Resolve never fails; a false second
// return means no alias matched.
func (r *Resolver) Resolve(identifier string, columns ColumnSet) (string, bool) {
	key := Normalize(identifier)
	candidates, ok := r.aliases[key]
	if !ok {
		candidates = []string{key}
	}
	for _, c := range candidates {
		if columns.Contains(c) {
			return c, true
		}
	}
	return "", false
}
