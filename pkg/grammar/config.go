package grammar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// presetFile is the on-disk layout of a presets file:
//
//	presets:
//	  - name: deep
//	    base: general
//	    max_depth: 5
//	  - name: sums
//	    base: binaryOnly
//	    variables: [a, b]
type presetFile struct {
	Presets []map[string]any `yaml:"presets" json:"presets"`
}

// LoadPresets reads preset definitions from a YAML file (or JSON when the
// extension is .json). Each entry may name a built-in "base" preset whose
// values are used for every key the entry leaves out.
func LoadPresets(path string) ([]Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}
	return ParsePresets(data, strings.ToLower(filepath.Ext(path)) == ".json")
}

// ParsePresets decodes preset definitions from raw bytes.
func ParsePresets(data []byte, isJSON bool) ([]Policy, error) {
	var file presetFile
	if isJSON {
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse presets json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse presets yaml: %w", err)
		}
	}

	policies := make([]Policy, 0, len(file.Presets))
	for i, raw := range file.Presets {
		p, err := decodePolicy(raw)
		if err != nil {
			return nil, fmt.Errorf("preset #%d: %w", i+1, err)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}

func decodePolicy(raw map[string]any) (Policy, error) {
	var p Policy
	if base, ok := raw["base"]; ok {
		name, _ := base.(string)
		basePolicy, err := Lookup(name)
		if err != nil {
			return Policy{}, err
		}
		p = basePolicy
		delete(raw, "base")
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		TagName:          "mapstructure",
		ZeroFields:       true,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Policy{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Policy{}, fmt.Errorf("failed to decode preset: %w", err)
	}
	return p, nil
}

// LoadFile registers every preset found in path.
func (r *Registry) LoadFile(path string) ([]string, error) {
	policies, err := LoadPresets(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(policies))
	for _, p := range policies {
		if err := r.Register(p); err != nil {
			return nil, err
		}
		names = append(names, p.Name)
	}
	return names, nil
}
