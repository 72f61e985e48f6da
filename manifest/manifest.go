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

// Package manifest loads declarative route-variant manifests.
//
// A manifest is a YAML document listing route variants: one entry per
// method, path, and parameter condition set. Entries sharing a method and
// path declare the variants of one route:
//
//	routes:
//	  - method: PUT
//	    path: /containers/:containerId
//	    params: ["enabled"]
//	  - method: PUT
//	    path: /containers/:containerId
//	    params: ["!enabled"]
//
// Documents are validated against an embedded JSON Schema before decoding,
// and each path is checked with [validate.ValidatePattern].
package manifest

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/j-pep1/parampath"
	"github.com/j-pep1/parampath/validate"
)

// ErrInvalid indicates a manifest document that does not match the schema.
var ErrInvalid = errors.New("manifest: document does not match schema")

// schemaJSON is the manifest JSON Schema (draft 2020-12).
//
//go:embed schema.json
var schemaJSON []byte

// Route declares one route variant: a method, a path pattern, and the
// parameter condition expressions that distinguish the variant.
type Route struct {
	Method string   `yaml:"method" json:"method"`
	Path   string   `yaml:"path" json:"path"`
	Params []string `yaml:"params,omitempty" json:"params,omitempty"`
}

// Manifest is a declarative list of route variants.
type Manifest struct {
	Routes []Route `yaml:"routes" json:"routes"`
}

// Load reads, validates, and decodes a YAML manifest from r.
func Load(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// LoadFile reads, validates, and decodes the YAML manifest at path.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Parse validates and decodes manifest bytes.
//
// The raw document is checked against the embedded JSON Schema first, so
// schema violations surface as [ErrInvalid] with the failing location rather
// than as zero-valued fields after decoding.
func Parse(data []byte) (*Manifest, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	rawJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	if err := validate.NewEngine().Validate(schemaJSON, rawJSON); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	for i, r := range m.Routes {
		if err := validate.ValidatePattern(r.Path); err != nil {
			return nil, fmt.Errorf("route %d (%s %s): %w", i, r.Method, r.Path, err)
		}
	}

	return &m, nil
}

// Mappings converts the manifest to route mappings, parsing each entry's
// condition expressions. It fails on the first malformed expression.
func (m *Manifest) Mappings() ([]parampath.Mapping, error) {
	out := make([]parampath.Mapping, 0, len(m.Routes))
	for i, r := range m.Routes {
		conds, err := parampath.ParseConditions(r.Params...)
		if err != nil {
			return nil, fmt.Errorf("route %d (%s %s): %w", i, r.Method, r.Path, err)
		}
		out = append(out, parampath.NewMapping(r.Method, r.Path, conds...))
	}
	return out, nil
}
