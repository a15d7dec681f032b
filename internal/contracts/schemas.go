// Package contracts validates API request bodies against the JSON schemas
// embedded in the binary.
package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema names accepted by Validate.
const (
	GenerateRequest = "generate/v1"
	ExportRequest   = "export/v1"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemaFiles = map[string]string{
	GenerateRequest: "schemas/generate.v1.json",
	ExportRequest:   "schemas/export.v1.json",
}

var compiledSchemas = mustCompile()

func mustCompile() map[string]*jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	out := make(map[string]*jsonschema.Schema, len(schemaFiles))
	for name, file := range schemaFiles {
		raw, err := schemaFS.ReadFile(file)
		if err != nil {
			panic(fmt.Sprintf("contracts: read %s: %v", file, err))
		}
		url := "mem://" + path.Base(file)
		if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
			panic(fmt.Sprintf("contracts: add %s: %v", file, err))
		}
		schema, err := compiler.Compile(url)
		if err != nil {
			panic(fmt.Sprintf("contracts: compile %s: %v", file, err))
		}
		out[name] = schema
	}
	return out
}

// ViolationError lists the schema violations of a request body, each as
// "<json pointer>: <message>".
type ViolationError struct {
	Violations []string
}

func (e *ViolationError) Error() string {
	return "request body does not match schema: " + strings.Join(e.Violations, "; ")
}

// Validate checks body against the named schema. Malformed JSON and schema
// violations both come back as *ViolationError.
func Validate(name string, body []byte) error {
	schema, ok := compiledSchemas[name]
	if !ok {
		return fmt.Errorf("schema %q not found", name)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return &ViolationError{Violations: []string{"body is not valid JSON: " + err.Error()}}
	}
	if err := schema.Validate(v); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &ViolationError{Violations: flatten(verr)}
		}
		return fmt.Errorf("validate %s: %w", name, err)
	}
	return nil
}

func flatten(verr *jsonschema.ValidationError) []string {
	var out []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			out = append(out, loc+": "+e.Message)
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(verr)
	sort.Strings(out)
	return out
}
