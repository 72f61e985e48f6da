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

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/j-pep1/parampath"
)

const testSpec = `{
  "openapi": "3.0.3",
  "info": {"title": "Containers", "version": "1.0.0"},
  "paths": {
    "/containers/{containerId}": {
      "parameters": [
        {"name": "containerId", "in": "path", "required": true, "schema": {"type": "string"}}
      ],
      "put": {
        "operationId": "updateContainer",
        "responses": {"204": {"description": "updated"}}
      }
    }
  }
}`

const testManifest = `routes:
  - method: PUT
    path: /containers/{containerId}
    params:
      - enabled
  - method: PUT
    path: /containers/{containerId}
    params:
      - "!enabled"
`

// writeFixtures puts a spec and a manifest into a fresh temp dir.
func writeFixtures(t *testing.T) (specPath, routesPath string) {
	t.Helper()

	dir := t.TempDir()
	specPath = filepath.Join(dir, "openapi.json")
	require.NoError(t, os.WriteFile(specPath, []byte(testSpec), 0o644))
	routesPath = filepath.Join(dir, "routes.yaml")
	require.NoError(t, os.WriteFile(routesPath, []byte(testManifest), 0o644))
	return specPath, routesPath
}

func decodePaths(t *testing.T, data []byte) map[string]json.RawMessage {
	t.Helper()

	var doc struct {
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc.Paths
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("patches a spec to a json file", func(t *testing.T) {
		t.Parallel()

		specPath, routesPath := writeFixtures(t)
		outPath := filepath.Join(t.TempDir(), "patched.json")

		var stdout bytes.Buffer
		err := run([]string{"-spec", specPath, "-routes", routesPath, "-out", outPath}, &stdout)
		require.NoError(t, err)
		assert.Zero(t, stdout.Len())

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)

		paths := decodePaths(t, data)
		assert.Contains(t, paths, "/containers/{containerId}?enabled")
		// The negated variant keeps the base path documented.
		assert.Contains(t, paths, "/containers/{containerId}")
		assert.Len(t, paths, 2)
	})

	t.Run("writes to stdout by default", func(t *testing.T) {
		t.Parallel()

		specPath, routesPath := writeFixtures(t)

		var stdout bytes.Buffer
		err := run([]string{"-spec", specPath, "-routes", routesPath}, &stdout)
		require.NoError(t, err)

		paths := decodePaths(t, stdout.Bytes())
		assert.Contains(t, paths, "/containers/{containerId}?enabled")
	})

	t.Run("picks yaml from the output extension", func(t *testing.T) {
		t.Parallel()

		specPath, routesPath := writeFixtures(t)
		outPath := filepath.Join(t.TempDir(), "patched.yaml")

		var stdout bytes.Buffer
		require.NoError(t, run([]string{"-spec", specPath, "-routes", routesPath, "-out", outPath}, &stdout))

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)

		var doc struct {
			Paths map[string]any `yaml:"paths"`
		}
		require.NoError(t, yaml.Unmarshal(data, &doc))
		assert.Contains(t, doc.Paths, "/containers/{containerId}?enabled")
	})

	t.Run("format flag overrides the extension", func(t *testing.T) {
		t.Parallel()

		specPath, routesPath := writeFixtures(t)

		var stdout bytes.Buffer
		err := run([]string{"-spec", specPath, "-routes", routesPath, "-format", "yaml"}, &stdout)
		require.NoError(t, err)

		var doc struct {
			Paths map[string]any `yaml:"paths"`
		}
		require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &doc))
		assert.Contains(t, doc.Paths, "/containers/{containerId}?enabled")
	})

	t.Run("validate flag accepts a valid document", func(t *testing.T) {
		t.Parallel()

		specPath, routesPath := writeFixtures(t)

		var stdout bytes.Buffer
		err := run([]string{"-spec", specPath, "-routes", routesPath, "-validate"}, &stdout)
		require.NoError(t, err)
	})

	t.Run("requires spec and routes", func(t *testing.T) {
		t.Parallel()

		var stdout bytes.Buffer
		err := run(nil, &stdout)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("rejects an unknown order", func(t *testing.T) {
		t.Parallel()

		specPath, routesPath := writeFixtures(t)

		var stdout bytes.Buffer
		err := run([]string{"-spec", specPath, "-routes", routesPath, "-order", "alphabetical"}, &stdout)
		assert.ErrorIs(t, err, parampath.ErrInvalidConditionOrder)
	})

	t.Run("rejects an unknown format", func(t *testing.T) {
		t.Parallel()

		specPath, routesPath := writeFixtures(t)

		var stdout bytes.Buffer
		err := run([]string{"-spec", specPath, "-routes", routesPath, "-format", "toml"}, &stdout)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "want json or yaml")
	})

	t.Run("strict mode surfaces a mismatched manifest", func(t *testing.T) {
		t.Parallel()

		specPath, _ := writeFixtures(t)
		routesPath := filepath.Join(t.TempDir(), "routes.yaml")
		mismatched := "routes:\n  - method: PUT\n    path: /nope/{id}\n    params: [\"enabled\"]\n"
		require.NoError(t, os.WriteFile(routesPath, []byte(mismatched), 0o644))

		var stdout bytes.Buffer
		err := run([]string{"-spec", specPath, "-routes", routesPath, "-strict"}, &stdout)
		assert.ErrorIs(t, err, parampath.ErrPathMissing)
	})

	t.Run("missing spec file fails", func(t *testing.T) {
		t.Parallel()

		_, routesPath := writeFixtures(t)

		var stdout bytes.Buffer
		err := run([]string{"-spec", filepath.Join(t.TempDir(), "absent.json"), "-routes", routesPath}, &stdout)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load spec")
	})

	t.Run("help is not an error", func(t *testing.T) {
		t.Parallel()

		var stdout bytes.Buffer
		assert.NoError(t, run([]string{"-h"}, &stdout))
	})
}

func TestResolveFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		outPath string
		want    string
	}{
		{name: "explicit format wins", format: "yaml", outPath: "out.json", want: "yaml"},
		{name: "yaml extension", format: "", outPath: "out.yaml", want: "yaml"},
		{name: "yml extension", format: "", outPath: "out.yml", want: "yaml"},
		{name: "upper-case extension", format: "", outPath: "OUT.YAML", want: "yaml"},
		{name: "json extension", format: "", outPath: "out.json", want: "json"},
		{name: "stdout defaults to json", format: "", outPath: "-", want: "json"},
		{name: "no extension defaults to json", format: "", outPath: "patched", want: "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, resolveFormat(tt.format, tt.outPath))
		})
	}
}
