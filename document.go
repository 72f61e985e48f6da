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
	"fmt"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/j-pep1/parampath/diag"
)

// Patcher rewrites the paths of an OpenAPI document so that route mappings
// distinguished only by parameter conditions appear as distinct documented
// entries. For each mapping whose derived patterns differ from its
// normalized base patterns, the operation registered under the base path key
// is relocated to every derived key; a base entry left without operations is
// dropped. A sibling mapping on the same method and path whose conditions
// derive nothing new (all negated, or none) pins the base key, so the
// operation stays documented at the base path as well.
//
// Create instances with [NewPatcher] or [MustNewPatcher].
type Patcher struct {
	provider PatternProvider
	strict   bool
}

// PatcherOption configures a [Patcher] using the functional options pattern.
type PatcherOption func(*Patcher)

// WithProvider sets the pattern provider used to derive documented paths.
//
// Default: MustNewProvider(), the condition-aware provider with
// declaration-order fragments.
func WithProvider(provider PatternProvider) PatcherOption {
	return func(p *Patcher) {
		p.provider = provider
	}
}

// WithStrict turns patch mismatches (missing path, missing operation,
// variant collision) into errors instead of warnings.
//
// Default: false.
func WithStrict(strict bool) PatcherOption {
	return func(p *Patcher) {
		p.strict = strict
	}
}

// NewPatcher creates a [Patcher] with the given options applied over
// defaults.
func NewPatcher(opts ...PatcherOption) (*Patcher, error) {
	p := &Patcher{
		provider: MustNewProvider(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.provider == nil {
		return nil, ErrNilProvider
	}
	return p, nil
}

// MustNewPatcher is like [NewPatcher] but panics on error. Intended for
// wiring code with literal options.
func MustNewPatcher(opts ...PatcherOption) *Patcher {
	p, err := NewPatcher(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Apply patches doc in place, relocating the operations of the given
// mappings from their base path keys to the keys the provider derives.
//
// Source operations are located in the input document as it was when Apply
// started: for each mapping, the base keys are the mapping's patterns
// normalized to OpenAPI syntax, and the source is the operation registered
// there for the mapping's method. Several mappings may share one source
// operation (one declared variant per condition set); the operation is then
// cloned per derived key, and a non-empty operationId gets a fragment-derived
// suffix so the clones stay unique.
//
// Mismatches between declarations and document produce warnings by default
// and errors in strict mode. Mappings without conditions, and mappings whose
// conditions are all negated, derive the base path itself: alongside a
// fragment-producing sibling they keep the base entry documented, and alone
// they change nothing (all-negated ones warn, since the declaration is
// invisible in the output).
//
// On error the document is unchanged, apart from a nil Paths map being
// initialized.
func (p *Patcher) Apply(doc *openapi3.T, mappings []Mapping) (diag.Warnings, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if doc.Paths == nil {
		doc.Paths = openapi3.NewPaths()
	}

	plan, warnings, err := p.plan(doc, mappings)
	if err != nil {
		return warnings, err
	}

	applyWarnings, err := p.applyPlan(doc, plan)
	warnings = append(warnings, applyWarnings...)
	return warnings, err
}

// Index returns the normalized base path keys of the given mappings, each
// mapped to the sorted derived keys the provider produces for it. Hosts that
// integrate at generation time can key their paths map from this instead of
// patching a finished document.
func (p *Patcher) Index(mappings []Mapping) map[string][]string {
	index := make(map[string][]string)
	for _, m := range mappings {
		for _, baseKey := range normalizePatterns(m.Patterns()) {
			derived := p.provider.ActivePatterns(patternSource{pattern: baseKey, params: m.Params})
			index[baseKey] = append(index[baseKey], derived...)
		}
	}
	for key, derived := range index {
		slices.Sort(derived)
		index[key] = slices.Compact(derived)
	}
	return index
}

// relocation moves one operation from its base path key to derived keys.
// Mappings sharing a base key and method merge into a single relocation.
type relocation struct {
	baseKey string
	method  string
	op      *openapi3.Operation
	item    *openapi3.PathItem
	targets []string
}

// plan reads the document and resolves each mapping to a relocation.
// It performs no writes, so later mappings see the unpatched document.
func (p *Patcher) plan(doc *openapi3.T, mappings []Mapping) ([]*relocation, diag.Warnings, error) {
	var (
		plan     []*relocation
		index    = make(map[string]int)
		warnings diag.Warnings
	)

	for _, m := range mappings {
		if queryFragment(m.Params) == "" {
			continue
		}

		method := strings.ToUpper(m.Method)
		for _, baseKey := range normalizePatterns(m.Patterns()) {
			item := doc.Paths.Value(baseKey)
			if item == nil {
				if p.strict {
					return nil, warnings, fmt.Errorf("%w: %s %s", ErrPathMissing, method, baseKey)
				}
				warnings = append(warnings, diag.NewWarning(
					diag.WarnPatchPathMissing,
					method+" "+baseKey,
					fmt.Sprintf("document has no entry for %q", baseKey),
				))
				continue
			}

			op := item.Operations()[method]
			if op == nil {
				if p.strict {
					return nil, warnings, fmt.Errorf("%w: %s %s", ErrOperationMissing, method, baseKey)
				}
				warnings = append(warnings, diag.NewWarning(
					diag.WarnPatchOperationMissing,
					method+" "+baseKey,
					fmt.Sprintf("entry %q has no %s operation", baseKey, method),
				))
				continue
			}

			targets := p.provider.ActivePatterns(patternSource{pattern: baseKey, params: m.Params})

			key := method + " " + baseKey
			if i, ok := index[key]; ok {
				plan[i].targets = append(plan[i].targets, targets...)
				continue
			}
			index[key] = len(plan)
			plan = append(plan, &relocation{
				baseKey: baseKey,
				method:  method,
				op:      op,
				item:    item,
				targets: targets,
			})
		}
	}

	// Mappings whose conditions derive nothing new still declare the base
	// path itself. With a fragment-producing sibling on the same method and
	// base key they pin the base entry, keeping Apply consistent with
	// Index; alone, an all-negated declaration is invisible and warns.
	for _, m := range mappings {
		if queryFragment(m.Params) != "" {
			continue
		}

		method := strings.ToUpper(m.Method)
		baseKeys := normalizePatterns(m.Patterns())
		pinned := false
		for _, baseKey := range baseKeys {
			if i, ok := index[method+" "+baseKey]; ok {
				plan[i].targets = append(plan[i].targets, baseKey)
				pinned = true
			}
		}
		if !pinned && len(m.Params) > 0 {
			warnings = append(warnings, diag.NewWarning(
				diag.WarnDeclareNoVisibleChange,
				method+" "+firstPath(baseKeys),
				"conditions are all negated; the documented path is unchanged",
			))
		}
	}

	return plan, warnings, nil
}

// applyPlan writes the relocations into the document: operations are placed
// under their derived keys, removed from their base keys unless a
// declaration pinned them or a sibling placement re-occupied the slot, and
// base entries left without operations are dropped. Collision checks and
// clones all happen before the first write, so an error leaves the document
// untouched.
func (p *Patcher) applyPlan(doc *openapi3.T, plan []*relocation) (diag.Warnings, error) {
	placements, warnings, err := p.resolve(doc, plan)
	if err != nil {
		return warnings, err
	}

	emptied := make(map[string]bool)
	for _, pl := range placements {
		for _, target := range pl.targets {
			item := doc.Paths.Value(target)
			if item == nil {
				item = &openapi3.PathItem{
					Summary:     pl.rel.item.Summary,
					Description: pl.rel.item.Description,
					Parameters:  pl.rel.item.Parameters,
				}
				doc.Paths.Set(target, item)
			}
			item.SetOperation(pl.rel.method, pl.ops[target])
		}

		// A derived key can double as another mapping's base key, so the
		// base slot may meanwhile hold an operation a sibling placement
		// relocated in. Clear only the operation this relocation moved out.
		if !pl.keep && pl.rel.item.Operations()[pl.rel.method] == pl.rel.op {
			pl.rel.item.SetOperation(pl.rel.method, nil)
			if len(pl.rel.item.Operations()) == 0 {
				emptied[pl.rel.baseKey] = true
			}
		}
	}

	if len(emptied) > 0 {
		rebuilt := openapi3.NewPaths()
		for key, item := range doc.Paths.Map() {
			// A later relocation may have re-targeted an emptied entry.
			if emptied[key] && len(item.Operations()) == 0 {
				continue
			}
			rebuilt.Set(key, item)
		}
		doc.Paths = rebuilt
	}

	return warnings, nil
}

// placement is a resolved relocation: the derived keys to write (base key
// excluded), the operation to place under each, and whether the base entry
// stays documented.
type placement struct {
	rel     *relocation
	targets []string
	ops     map[string]*openapi3.Operation
	keep    bool
}

// resolve turns the plan into concrete placements without touching the
// document: targets are deduplicated, fan-out operations cloned and their
// ids suffixed, and collisions replayed against the occupancy the writes
// will produce.
func (p *Patcher) resolve(doc *openapi3.T, plan []*relocation) ([]placement, diag.Warnings, error) {
	var warnings diag.Warnings

	occupied := make(map[string]bool)
	for key, item := range doc.Paths.Map() {
		for method := range item.Operations() {
			occupied[method+" "+key] = true
		}
	}

	placed := make(map[string]bool)
	placements := make([]placement, 0, len(plan))
	for _, rel := range plan {
		slices.Sort(rel.targets)
		rel.targets = slices.Compact(rel.targets)

		keep := slices.Contains(rel.targets, rel.baseKey)
		targets := make([]string, 0, len(rel.targets))
		for _, t := range rel.targets {
			if t != rel.baseKey {
				targets = append(targets, t)
			}
		}
		if len(targets) == 0 {
			continue
		}

		ops := make(map[string]*openapi3.Operation, len(targets))
		for _, target := range targets {
			if occupied[rel.method+" "+target] {
				if p.strict {
					return nil, warnings, fmt.Errorf("%w: %s %s", ErrVariantCollision, rel.method, target)
				}
				warnings = append(warnings, diag.NewWarning(
					diag.WarnPatchVariantCollision,
					rel.method+" "+target,
					fmt.Sprintf("replacing the %s operation already documented at %q", rel.method, target),
				))
			}
			occupied[rel.method+" "+target] = true
			placed[rel.method+" "+target] = true

			// The base entry keeps the original operation when pinned, so
			// every derived key gets a clone; a lone derived key without a
			// pinned base takes the operation as is.
			op := rel.op
			if keep || len(targets) > 1 {
				clone, err := cloneOperation(rel.op)
				if err != nil {
					return nil, warnings, fmt.Errorf("clone operation %s %s: %w", rel.method, rel.baseKey, err)
				}
				if clone.OperationID != "" {
					fragment := strings.TrimLeft(strings.TrimPrefix(target, rel.baseKey), "?&")
					clone.OperationID += "_" + fragmentSlug(fragment)
				}
				op = clone
			}
			ops[target] = op
		}

		// Vacate the base slot only when no earlier placement wrote into
		// it, mirroring the guarded clear in applyPlan.
		if !keep && !placed[rel.method+" "+rel.baseKey] {
			occupied[rel.method+" "+rel.baseKey] = false
		}

		placements = append(placements, placement{rel: rel, targets: targets, ops: ops, keep: keep})
	}

	return placements, warnings, nil
}

// patternSource adapts one already-normalized pattern plus conditions to
// RouteMapping for per-pattern derivation.
type patternSource struct {
	pattern string
	params  []Condition
}

func (s patternSource) Patterns() []string {
	return []string{s.pattern}
}

func (s patternSource) ParamConditions() []Condition {
	return slices.Clone(s.params)
}

// cloneOperation deep-copies an operation through its JSON form.
func cloneOperation(op *openapi3.Operation) (*openapi3.Operation, error) {
	data, err := op.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var clone openapi3.Operation
	if err := clone.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return &clone, nil
}

// fragmentSlug renders a query fragment as an operationId-safe suffix:
// "enabled&mode=fast" becomes "enabled_mode_fast".
func fragmentSlug(fragment string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, fragment)
}
