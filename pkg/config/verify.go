package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// schemaDoc is the part of the generated schema we check config against
type schemaDoc struct {
	Defs map[string]struct {
		Required   []string `json:"required"`
		Properties map[string]struct {
			Enum []string `json:"enum"`
		} `json:"properties"`
	} `json:"$defs"`
}

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema schemaDoc
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	srcDef, ok := schema.Defs["SourceDefinition"]
	if !ok {
		return fmt.Errorf("schema has no SourceDefinition")
	}
	allowedTypes := srcDef.Properties["type"].Enum
	for _, s := range cfg.Sources {
		if len(allowedTypes) > 0 && !slices.Contains(allowedTypes, string(s.Type)) {
			return fmt.Errorf("source %s: type %q not in schema enum %v", s.Key, s.Type, allowedTypes)
		}
		for _, req := range srcDef.Required {
			if req == "key" && s.Key == "" || req == "endpoint" && s.Endpoint == "" || req == "type" && s.Type == "" {
				return fmt.Errorf("source %q: %s is required", s.Key, req)
			}
		}
	}

	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Extraction.Timeout == 0 {
		return fmt.Errorf("extraction.timeout is required")
	}
	if cfg.Pull.ProviderTimeout == 0 {
		return fmt.Errorf("pull.provider_timeout is required")
	}
	if cfg.Health.DegradeThreshold == 0 {
		return fmt.Errorf("health.degrade_threshold is required")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
