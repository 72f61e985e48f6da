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

// Package ginroutes bridges gin route tables to parampath route mappings.
//
// It is the adapter boundary between gin's route representation and the
// narrow [parampath.RouteMapping] view: the rest of the library never sees a
// gin type. Variant condition sets are declared per route key:
//
//	mappings, warnings := ginroutes.Mappings(engine,
//	    ginroutes.WithVariants("PUT /containers/:containerId",
//	        parampath.MustConditions("enabled"),
//	        parampath.MustConditions("!enabled"),
//	    ),
//	)
package ginroutes

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/j-pep1/parampath"
	"github.com/j-pep1/parampath/diag"
)

// Option configures route extraction.
type Option func(*config)

type config struct {
	variants map[string][][]parampath.Condition
}

// WithVariants declares variant condition sets for one registered route.
//
// The route key is "METHOD /path" with the path in gin syntax, for example
// "PUT /containers/:containerId". Each condition set yields one mapping for
// the route; repeated options for the same key accumulate.
func WithVariants(route string, conditionSets ...[]parampath.Condition) Option {
	return func(c *config) {
		c.variants[route] = append(c.variants[route], conditionSets...)
	}
}

// Mappings converts the engine's registered routes to route mappings.
//
// Routes with declared variants expand to one mapping per condition set; all
// other routes map once, without conditions. Declared variants that match no
// registered route are reported as warnings, not errors, so a stale
// declaration cannot break documentation generation. The result is sorted by
// path, then method.
func Mappings(e *gin.Engine, opts ...Option) ([]parampath.Mapping, diag.Warnings) {
	cfg := &config{variants: make(map[string][][]parampath.Condition)}
	for _, opt := range opts {
		opt(cfg)
	}

	matched := make(map[string]bool, len(cfg.variants))
	mappings := make([]parampath.Mapping, 0, len(e.Routes()))
	for _, r := range e.Routes() {
		key := r.Method + " " + r.Path
		sets, ok := cfg.variants[key]
		if !ok {
			mappings = append(mappings, parampath.NewMapping(r.Method, r.Path))
			continue
		}

		matched[key] = true
		for _, set := range sets {
			mappings = append(mappings, parampath.NewMapping(r.Method, r.Path, set...))
		}
	}

	var warnings diag.Warnings
	for _, key := range slices.Sorted(maps.Keys(cfg.variants)) {
		if !matched[key] {
			warnings = append(warnings, diag.NewWarning(
				diag.WarnDeclareUnmatchedRoute,
				key,
				fmt.Sprintf("variant declared for %q matches no registered route", key),
			))
		}
	}

	sortMappings(mappings)
	return mappings, warnings
}

func sortMappings(mappings []parampath.Mapping) {
	slices.SortStableFunc(mappings, func(a, b parampath.Mapping) int {
		ap, bp := "", ""
		if len(a.Paths) > 0 {
			ap = a.Paths[0]
		}
		if len(b.Paths) > 0 {
			bp = b.Paths[0]
		}
		if c := strings.Compare(ap, bp); c != 0 {
			return c
		}
		return strings.Compare(a.Method, b.Method)
	})
}
