package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaURL = "https://bioread.dev/schema/profile.json"

// ValidationError describes one schema violation in a profile.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// SchemaValidator checks profile documents against the profile schema.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

// NewSchemaValidator compiles the profile schema read from provider.
func NewSchemaValidator(provider DataProvider) (*SchemaValidator, error) {
	content, err := provider.ReadFile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("profile schema is not valid JSON: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add profile schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile profile schema: %w", err)
	}
	return &SchemaValidator{schema: schema}, nil
}

// Validate returns the violations found in data. A document that is not JSON
// yields a single JSON_SYNTAX_ERROR entry.
func (v *SchemaValidator) Validate(data []byte) []ValidationError {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return []ValidationError{{Path: "$", Message: err.Error(), Code: "JSON_SYNTAX_ERROR"}}
	}
	err = v.schema.Validate(inst)
	if err == nil {
		return nil
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return parseSchemaValidationErrors(validationErr, message.NewPrinter(language.English))
	}
	return []ValidationError{{Path: "$", Message: err.Error(), Code: "SCHEMA_VALIDATION_ERROR"}}
}

// parseSchemaValidationErrors flattens the leaves of a validation error tree.
func parseSchemaValidationErrors(validationErr *jsonschema.ValidationError, p *message.Printer) []ValidationError {
	if len(validationErr.Causes) == 0 {
		path := "$"
		if len(validationErr.InstanceLocation) > 0 {
			path = "$." + strings.Join(validationErr.InstanceLocation, ".")
		}
		return []ValidationError{{
			Path:    path,
			Message: validationErr.ErrorKind.LocalizedString(p),
			Code:    "SCHEMA_VALIDATION_ERROR",
		}}
	}

	var errs []ValidationError
	for _, cause := range validationErr.Causes {
		errs = append(errs, parseSchemaValidationErrors(cause, p)...)
	}
	return errs
}
