package scenario

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// ValidateSchema checks a YAML scenario document against the embedded JSON
// schema. Every violation is reported.
func ValidateSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: failed to parse YAML: %v", ErrInvalidScenario, err)
	}
	if doc == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidScenario)
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return fmt.Errorf("%w: schema validation failed: %s", ErrInvalidScenario, strings.Join(msgs, "; "))
}
