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

// Command parampath patches an OpenAPI document so that routes sharing a URL
// path but distinguished by query-parameter conditions appear as distinct
// documented paths.
//
//	parampath -spec openapi.json -routes routes.yaml -out patched.yaml
//
// The route manifest declares one entry per variant; see the manifest
// package for the format.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/j-pep1/parampath"
	"github.com/j-pep1/parampath/diag"
	"github.com/j-pep1/parampath/manifest"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("parampath failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("parampath", flag.ContinueOnError)
	var (
		specPath    = fs.String("spec", "", "OpenAPI document to patch, JSON or YAML (required)")
		routesPath  = fs.String("routes", "", "route manifest YAML (required)")
		outPath     = fs.String("out", "-", "output file, or - for stdout")
		format      = fs.String("format", "", "output format: json or yaml (default: by -out extension, else json)")
		order       = fs.String("order", "declared", "condition fragment order: declared or name")
		strict      = fs.Bool("strict", false, "treat patch mismatches as errors")
		validateDoc = fs.Bool("validate", false, "validate the input document before patching")
		verbose     = fs.Bool("verbose", false, "enable debug logging")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *specPath == "" || *routesPath == "" {
		fs.Usage()
		return errors.New("both -spec and -routes are required")
	}

	conditionOrder, err := parampath.ParseConditionOrder(*order)
	if err != nil {
		return fmt.Errorf("-order %q: %w", *order, err)
	}

	outFormat := resolveFormat(*format, *outPath)
	if outFormat != "json" && outFormat != "yaml" {
		return fmt.Errorf("-format %q: want json or yaml", outFormat)
	}

	loader := openapi3.NewLoader()
	loader.Context = context.Background()
	doc, err := loader.LoadFromFile(*specPath)
	if err != nil {
		return fmt.Errorf("load spec: %w", err)
	}
	logger.Debug("loaded document", "spec", *specPath)

	if *validateDoc {
		if err := doc.Validate(loader.Context); err != nil {
			return fmt.Errorf("validate spec: %w", err)
		}
		logger.Debug("document is valid")
	}

	mf, err := manifest.LoadFile(*routesPath)
	if err != nil {
		return err
	}
	mappings, err := mf.Mappings()
	if err != nil {
		return err
	}
	logger.Debug("loaded manifest", "routes", len(mappings))

	patcher, err := parampath.NewPatcher(
		parampath.WithProvider(parampath.MustNewProvider(parampath.WithConditionOrder(conditionOrder))),
		parampath.WithStrict(*strict),
	)
	if err != nil {
		return err
	}

	warnings, err := patcher.Apply(doc, mappings)
	warnings.Each(func(w diag.Warning) {
		logger.Warn(w.Message(), "code", w.Code(), "path", w.Path())
	})
	if err != nil {
		return fmt.Errorf("patch document: %w", err)
	}
	if warnings.HasCategory(diag.CategoryPatch) {
		logger.Warn("document and manifest disagree",
			"codes", warnings.FilterCategory(diag.CategoryPatch).Codes())
	}
	logger.Info("patched document", "paths", doc.Paths.Len(), "warnings", len(warnings))

	out, err := render(doc, outFormat)
	if err != nil {
		return err
	}

	if *outPath == "-" {
		_, err := stdout.Write(out)
		return err
	}
	if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("wrote output", "out", *outPath, "format", outFormat)
	return nil
}

// resolveFormat picks the output format from the flag, falling back to the
// output file extension, then to JSON.
func resolveFormat(format, outPath string) string {
	if format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// render marshals the document. YAML output goes through the document's JSON
// form so both formats carry identical content.
func render(doc *openapi3.T, format string) ([]byte, error) {
	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	switch format {
	case "yaml":
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal document: %w", err)
		}
		return out, nil
	default:
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return nil, fmt.Errorf("indent document: %w", err)
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	}
}
