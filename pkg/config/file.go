package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAMLFile reads a YAML configuration file into out.
// Returns (false, nil) when path is empty or the file does not exist, so an
// absent file is not an error; environment variables remain the only source.
func LoadYAMLFile(path string, out any) (bool, error) {
	if path == "" {
		return false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return true, nil
}
