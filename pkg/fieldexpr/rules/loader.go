package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nick227/ssot-codegen-sub019/pkg/fieldexpr"
	"github.com/nick227/ssot-codegen-sub019/pkg/fieldexpr/registry"
)

// Document is the on-disk shape of a rule file.
type Document struct {
	Rules []*Rule `json:"rules"`
}

// FromFile loads rules from a file, auto-detecting format by extension,
// and validates every expression against ops so unknown operation names
// fail at load time rather than at first evaluation.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string, ops *registry.Registry[string, fieldexpr.Operation]) ([]*Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data, ops)
	case ".json":
		return FromJSON(data, ops)
	default:
		return nil, fmt.Errorf("unsupported rules file extension: %s", ext)
	}
}

// FromYAML parses YAML rule data. The document is decoded generically and
// re-encoded through the JSON codec so expression nodes go through the
// same unmarshaling as JSON documents.
func FromYAML(data []byte, ops *registry.Registry[string, fieldexpr.Operation]) ([]*Rule, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert yaml: %w", err)
	}
	return FromJSON(jsonData, ops)
}

// FromJSON parses JSON rule data and validates it.
func FromJSON(data []byte, ops *registry.Registry[string, fieldexpr.Operation]) ([]*Rule, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	for _, r := range doc.Rules {
		if err := r.Validate(ops); err != nil {
			return nil, err
		}
	}
	return doc.Rules, nil
}
