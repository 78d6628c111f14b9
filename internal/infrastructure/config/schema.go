package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// Schema reflects the JSON schema of Config.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag:   "toml",
		DoNotReference: true,
	}
	schema := r.Reflect(&Config{})
	schema.ID = "https://github.com/bnema/plugview/config.schema.json"
	schema.Title = "plugview configuration"
	schema.Description = "Configuration for plugview, a web view bridge for plugin editors"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// GenerateSchemaFile writes the schema next to config.toml and returns its path.
func GenerateSchemaFile() (string, error) {
	schemaFile, err := GetSchemaFile()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	data, err := Schema()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(schemaFile), dirPerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return "", fmt.Errorf("failed to write schema file: %w", err)
	}
	return schemaFile, nil
}
