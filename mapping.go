// Copyright 2026 The parampath Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parampath

import (
	"encoding/json"
	"slices"
	"strings"
	"sync"
)

// RouteMapping is the narrow view of a registered route that pattern
// providers consume: the mapping's resolved path patterns and its
// query-parameter conditions. Host-framework route types are bridged to this
// interface at the adapter boundary (see the ginroutes and echoroutes
// packages); nothing else in this package inspects concrete route
// representations.
//
// Implementations should return defensive copies; providers never mutate
// what they receive, but they may sort it.
type RouteMapping interface {
	// Patterns returns the mapping's resolved URL path patterns.
	Patterns() []string

	// ParamConditions returns the query-parameter conditions attached to
	// the mapping.
	ParamConditions() []Condition
}

// Mapping is the canonical [RouteMapping] implementation: one HTTP method,
// one or more registered path patterns, and the parameter conditions that
// distinguish the mapping from others sharing the same path.
//
// Paths may use router-style (":id") or OpenAPI-style ("{id}") parameter
// syntax; providers normalize to OpenAPI syntax.
type Mapping struct {
	// Method is the HTTP method, upper-case.
	Method string `json:"method"`

	// Paths holds the registered path patterns.
	Paths []string `json:"paths"`

	// Params holds the mapping's parameter conditions. Conditions
	// marshal as expression strings ("enabled", "!debug", "mode=fast").
	Params []Condition `json:"params,omitempty"`
}

// NewMapping builds a single-path mapping. The method is upper-cased; the
// conditions are copied.
func NewMapping(method, path string, params ...Condition) Mapping {
	return Mapping{
		Method: strings.ToUpper(method),
		Paths:  []string{path},
		Params: slices.Clone(params),
	}
}

// Patterns implements [RouteMapping]. It returns a copy.
func (m Mapping) Patterns() []string {
	return slices.Clone(m.Paths)
}

// ParamConditions implements [RouteMapping]. It returns a copy.
func (m Mapping) ParamConditions() []Condition {
	return slices.Clone(m.Params)
}

// Equal reports whether two mappings have the same method, patterns, and
// conditions, compared element-wise in order.
func (m Mapping) Equal(other Mapping) bool {
	return m.Method == other.Method &&
		slices.Equal(m.Paths, other.Paths) &&
		slices.Equal(m.Params, other.Params)
}

// Registry collects route mappings ahead of document patching.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	mappings []Mapping
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends mappings, dropping exact duplicates of already-registered
// ones. It reports how many mappings were actually added.
func (r *Registry) Add(mappings ...Mapping) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := 0
	for _, m := range mappings {
		if r.contains(m) {
			continue
		}
		r.mappings = append(r.mappings, m)
		added++
	}
	return added
}

// contains must be called with the lock held.
func (r *Registry) contains(m Mapping) bool {
	for _, existing := range r.mappings {
		if existing.Equal(m) {
			return true
		}
	}
	return false
}

// Mappings returns a snapshot of the registered mappings in insertion order.
func (r *Registry) Mappings() []Mapping {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Mapping, len(r.mappings))
	copy(out, r.mappings)
	return out
}

// Len returns the number of registered mappings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.mappings)
}

// Export renders the registered mappings as indented JSON, sorted by first
// path then method so repeated exports of the same registry are
// byte-identical.
func (r *Registry) Export() ([]byte, error) {
	ms := r.Mappings()
	slices.SortStableFunc(ms, func(a, b Mapping) int {
		if c := strings.Compare(firstPath(a.Paths), firstPath(b.Paths)); c != 0 {
			return c
		}
		return strings.Compare(a.Method, b.Method)
	})
	return json.MarshalIndent(ms, "", "  ")
}

func firstPath(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return paths[0]
}
