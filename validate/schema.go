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

// Package validate checks route patterns and manifest documents before they
// feed path-variant derivation. Manifest documents are validated against a
// JSON Schema.
package validate

import (
	"bytes"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Engine provides JSON Schema validation for manifest documents.
//
// The engine uses santhosh-tekuri/jsonschema, which supports JSON Schema
// draft-2020-12. It is stateless: each call compiles the given schema
// against a fresh compiler, so one Engine is safe for concurrent use.
type Engine struct{}

// NewEngine creates a new validation engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Validate validates docJSON against schemaJSON, both given as JSON bytes.
// Returns nil when the document conforms; the returned error carries the
// jsonschema failure detail otherwise.
func (e *Engine) Validate(schemaJSON, docJSON []byte) error {
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", schemaDoc); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}

	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(docJSON))
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	return schema.Validate(doc)
}
