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
	"slices"
	"strings"
)

// PatternProvider derives the documented path patterns for a route mapping:
// the path strings a documentation generator lists as representing the
// mapping. Implementations must not mutate the mapping and must be safe for
// concurrent use.
type PatternProvider interface {
	ActivePatterns(m RouteMapping) []string
}

// PatternProviderFunc adapts a function to the [PatternProvider] interface.
type PatternProviderFunc func(m RouteMapping) []string

// ActivePatterns calls f(m).
func (f PatternProviderFunc) ActivePatterns(m RouteMapping) []string {
	return f(m)
}

// ConditionOrder selects how rendered condition fragments are ordered within
// a derived pattern.
type ConditionOrder int

const (
	// OrderDeclared keeps conditions in the order they were declared on the
	// mapping. Default.
	OrderDeclared ConditionOrder = iota

	// OrderByName sorts conditions by parameter name before rendering,
	// stable for equal names.
	OrderByName
)

// String returns the order's flag spelling ("declared", "name").
func (o ConditionOrder) String() string {
	switch o {
	case OrderDeclared:
		return "declared"
	case OrderByName:
		return "name"
	default:
		return "unknown"
	}
}

// ParseConditionOrder parses the flag spelling of a condition order.
func ParseConditionOrder(s string) (ConditionOrder, error) {
	switch s {
	case "declared":
		return OrderDeclared, nil
	case "name":
		return OrderByName, nil
	default:
		return 0, ErrInvalidConditionOrder
	}
}

// DefaultProvider returns the stock pattern provider: it normalizes every
// registered pattern to OpenAPI template syntax (":id" becomes "{id}") and
// returns the set deduplicated and sorted. Parameter conditions are ignored;
// routes sharing a path therefore collide into one documented entry. This is
// the behavior [Provider] overrides.
func DefaultProvider() PatternProvider {
	return PatternProviderFunc(func(m RouteMapping) []string {
		if m == nil {
			return nil
		}
		return normalizePatterns(m.Patterns())
	})
}

// normalizePatterns converts each pattern to OpenAPI syntax and returns the
// set deduplicated and sorted.
func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, normalizePattern(p))
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// normalizePattern converts router-style path parameters (":id") to OpenAPI
// template syntax ("{id}"), segment by segment. Anything after the first "?"
// is left untouched so already-derived patterns pass through intact.
func normalizePattern(p string) string {
	path, query, hasQuery := strings.Cut(p, "?")

	parts := strings.Split(path, "/")
	for i, part := range parts {
		if after, found := strings.CutPrefix(part, ":"); found && after != "" {
			parts[i] = "{" + after + "}"
		}
	}

	normalized := strings.Join(parts, "/")
	if hasQuery {
		return normalized + "?" + query
	}
	return normalized
}

// Provider is the condition-aware pattern provider: it wraps a base provider
// and appends each mapping's non-negated parameter conditions to the base
// patterns, so that routes sharing a URL path but distinguished by query
// parameters document as distinct paths instead of colliding into one entry.
//
// Create instances with [NewProvider] or [MustNewProvider]. A Provider holds
// no per-call state and is safe for concurrent use.
type Provider struct {
	base  PatternProvider
	order ConditionOrder
}

// ProviderOption configures a [Provider] using the functional options
// pattern. Options are applied in order.
type ProviderOption func(*Provider)

// WithBaseProvider sets the provider whose output the condition fragments
// are appended to.
//
// Default: [DefaultProvider].
func WithBaseProvider(base PatternProvider) ProviderOption {
	return func(p *Provider) {
		p.base = base
	}
}

// WithConditionOrder sets the fragment ordering policy.
//
// Default: [OrderDeclared].
func WithConditionOrder(order ConditionOrder) ProviderOption {
	return func(p *Provider) {
		p.order = order
	}
}

// NewProvider creates a [Provider] with the given options applied over
// defaults. It returns an error when an option produced an invalid
// configuration (nil base provider, unknown condition order).
func NewProvider(opts ...ProviderOption) (*Provider, error) {
	p := &Provider{
		base:  DefaultProvider(),
		order: OrderDeclared,
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// MustNewProvider is like [NewProvider] but panics on error. Intended for
// wiring code with literal options.
func MustNewProvider(opts ...ProviderOption) *Provider {
	p, err := NewProvider(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Provider) validate() error {
	if p.base == nil {
		return ErrNilBaseProvider
	}
	switch p.order {
	case OrderDeclared, OrderByName:
		return nil
	default:
		return ErrInvalidConditionOrder
	}
}

// ActivePatterns implements [PatternProvider]: the base provider's patterns
// pass through [Derive] with the mapping's conditions ordered per the
// configured policy. A nil mapping yields nil.
func (p *Provider) ActivePatterns(m RouteMapping) []string {
	if m == nil {
		return nil
	}

	conditions := m.ParamConditions()
	if p.order == OrderByName {
		conditions = slices.Clone(conditions)
		slices.SortStableFunc(conditions, func(a, b Condition) int {
			return strings.Compare(a.Name, b.Name)
		})
	}
	return Derive(p.base.ActivePatterns(m), conditions)
}
