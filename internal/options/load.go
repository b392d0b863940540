package options

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// LoadFile decodes an option file into an override map. The format is
// picked from the file name: .toml, .yaml/.yml, or JSON for .json and
// .jshintrc (JSON files may carry // and /* */ comments and trailing
// commas).
func LoadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	out, err := Decode(filepath.Base(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Decode parses data according to the format implied by name.
func Decode(name string, data []byte) (map[string]any, error) {
	out := make(map[string]any)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &out); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json", ".jshintrc", "":
		// .jshintrc допускает комментарии и висячие запятые
		std, err := hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		if err := json.Unmarshal(std, &out); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", name)
	}
	if out == nil {
		// "null" в JSON
		out = make(map[string]any)
	}
	return out, nil
}

// ParseValue interprets a command-line option value: true/false become
// bools, integers and floats become numbers, anything else stays a string.
func ParseValue(raw string) any {
	s := strings.TrimSpace(raw)
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return raw
}

// ParseAssignment splits "name=value" into its parts.
func ParseAssignment(s string) (string, any, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, fmt.Errorf("invalid option %q (expected name=value)", s)
	}
	return name, ParseValue(value), nil
}
