// Package validation checks request bodies against embedded JSON schemas.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema names
const (
	Organization = "organization"
	Project      = "project"
	Service      = "service"
	Client       = "client"
	Review       = "review"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Error lists validation messages per field. Fields are dotted paths into the
// request body ("sampleWork.0.title"); problems with the body as a whole are
// reported under "request".
type Error struct {
	Fields map[string][]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *Error) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Validator holds the compiled request schemas
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// New compiles every embedded schema
func New() (*Validator, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to read schemas: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(entries))}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".json")
		data, err := schemaFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
		}

		id := "inmemory://" + name
		if err := compiler.AddResource(id, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema resource %s: %w", name, err)
		}
		schema, err := compiler.Compile(id)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		v.schemas[name] = schema
	}
	return v, nil
}

// Validate checks body against the named schema. A body that breaks the
// schema, or is not JSON at all, fails with *Error.
func (v *Validator) Validate(name string, body []byte) error {
	schema, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		verr := &Error{}
		verr.add("request", "body must be valid JSON")
		return verr
	}

	err := schema.Validate(payload)
	if err == nil {
		return nil
	}

	var schemaErr *jsonschema.ValidationError
	if !errors.As(err, &schemaErr) {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	verr := &Error{}
	collect(verr, schemaErr)
	return verr
}

// collect records the leaf causes, which carry the specific messages
func collect(verr *Error, e *jsonschema.ValidationError) {
	if len(e.Causes) > 0 {
		for _, cause := range e.Causes {
			collect(verr, cause)
		}
		return
	}
	verr.add(fieldName(e.InstanceLocation), e.Message)
}

func fieldName(location string) string {
	location = strings.TrimPrefix(location, "/")
	if location == "" {
		return "request"
	}
	return strings.ReplaceAll(location, "/", ".")
}
