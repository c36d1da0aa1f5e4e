// Package schema validates statement wire JSON against the xAPI statement
// shape before it is sent to an LRS. Compiled schemas are cached.
package schema

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	js "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed statement.schema.json
var statementSchema []byte

// Validator compiles and caches JSON schemas and checks statement payloads
// against the embedded statement schema.
type Validator struct {
	compiler *js.Compiler
	cache    *expirable.LRU[string, *js.Schema]
}

// NewValidator creates a validator with a compiled-schema cache of maxSize
// entries.
func NewValidator(maxSize int) *Validator {
	c := js.NewCompiler()
	c.ExtractAnnotations = true
	return &Validator{
		compiler: c,
		cache:    expirable.NewLRU[string, *js.Schema](maxSize, nil, time.Hour),
	}
}

func (v *Validator) compile(name string, doc []byte) (*js.Schema, error) {
	if s, ok := v.cache.Get(name); ok {
		return s, nil
	}
	resourceURL := fmt.Sprintf("mem://%s.json", name)
	if err := v.compiler.AddResource(resourceURL, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := v.compiler.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	v.cache.Add(name, compiled)
	return compiled, nil
}

// ValidateStatement checks one statement JSON document.
func (v *Validator) ValidateStatement(data []byte) error {
	compiled, err := v.compile("statement", statementSchema)
	if err != nil {
		return err
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to parse statement JSON: %w", err)
	}
	if err := compiled.Validate(value); err != nil {
		return fmt.Errorf("statement validation failed: %w", err)
	}
	return nil
}

// ValidateStatements checks a JSON array of statements element-wise.
func (v *Validator) ValidateStatements(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse statement array: %w", err)
	}
	for i, r := range raw {
		if err := v.ValidateStatement(r); err != nil {
			return fmt.Errorf("statement[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate checks an arbitrary value against a caller-supplied schema
// document. The schema is compiled once and cached by its serialized form.
func (v *Validator) Validate(schemaDoc map[string]any, value any) error {
	key, err := json.Marshal(schemaDoc)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	sum := sha256.Sum256(key)
	compiled, err := v.compile(fmt.Sprintf("caller/%x", sum[:8]), key)
	if err != nil {
		return err
	}
	if err := compiled.Validate(value); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
