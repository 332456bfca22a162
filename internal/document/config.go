package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/n2code/reqtree/internal/fault"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// DescriptorFileName is the name of the configuration file which marks a document directory.
const DescriptorFileName = ".doorstop.yml"

// Settings are carried through as configured, only Prefix and Parent drive the tree assembly.
type Settings struct {
	Digits int    `yaml:"digits" json:"digits"`
	Parent string `yaml:"parent" json:"parent,omitempty"`
	Prefix string `yaml:"prefix" json:"prefix"`
	Sep    string `yaml:"sep" json:"sep"`
}

type Attributes struct {
	Publish []string `yaml:"publish" json:"publish,omitempty"`
}

// Config is the content of a descriptor file.
type Config struct {
	Settings   Settings   `yaml:"settings" json:"settings"`
	Attributes Attributes `yaml:"attributes" json:"attributes"`
}

const descriptorSchemaURL = "https://reqtree.n2code.github.io/schema/descriptor.json"

const descriptorSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["settings"],
	"properties": {
		"settings": {
			"type": "object",
			"required": ["digits", "prefix", "sep"],
			"properties": {
				"digits": {"type": "integer"},
				"parent": {"type": ["string", "null"]},
				"prefix": {"type": "string", "minLength": 1},
				"sep": {"type": ["string", "null"]}
			}
		},
		"attributes": {
			"type": ["object", "null"],
			"properties": {
				"publish": {
					"type": ["array", "null"],
					"items": {"type": "string"}
				}
			}
		}
	}
}`

var descriptorValidator = mustCompileSchema(descriptorSchemaURL, descriptorSchema)

func mustCompileSchema(url string, schema string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schema))
	if err != nil {
		panic(fmt.Errorf("embedded schema unreadable: %w", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, doc); err != nil {
		panic(fmt.Errorf("embedded schema not accepted: %w", err))
	}
	return compiler.MustCompile(url)
}

// LoadConfig reads and validates a descriptor file.
func LoadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fault.Read(path, err)
	}
	if err := validateStructure(content); err != nil {
		return nil, fault.Format(path, err)
	}
	var config Config
	if err := yaml.Unmarshal(content, &config); err != nil {
		return nil, fault.Format(path, err)
	}
	return &config, nil
}

// validateStructure checks the structural fields only, unknown fields are permitted
func validateStructure(content []byte) error {
	var raw interface{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return err
	}
	asJSON, err := json.Marshal(stringKeys(raw))
	if err != nil {
		return fmt.Errorf("descriptor cannot be represented as JSON: %w", err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(asJSON))
	if err != nil {
		return err
	}
	if err := descriptorValidator.Validate(instance); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return fmt.Errorf("invalid descriptor at %s: %s", instanceLocation(validationErr), validationErr.Error())
		}
		return err
	}
	return nil
}

// stringKeys turns YAML mappings with non-string keys (e.g. "1: one") into JSON objects
func stringKeys(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		converted := make(map[string]interface{}, len(v))
		for key, child := range v {
			converted[key] = stringKeys(child)
		}
		return converted
	case map[interface{}]interface{}:
		converted := make(map[string]interface{}, len(v))
		for key, child := range v {
			converted[fmt.Sprint(key)] = stringKeys(child)
		}
		return converted
	case []interface{}:
		converted := make([]interface{}, len(v))
		for i, child := range v {
			converted[i] = stringKeys(child)
		}
		return converted
	}
	return value
}

func instanceLocation(validationErr *jsonschema.ValidationError) string {
	for len(validationErr.Causes) > 0 {
		validationErr = validationErr.Causes[0]
	}
	if len(validationErr.InstanceLocation) == 0 {
		return "$"
	}
	return "$." + strings.Join(validationErr.InstanceLocation, ".")
}
