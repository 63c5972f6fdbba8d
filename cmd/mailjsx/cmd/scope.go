package cmd

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailjsx"
)

// loadScope reads a YAML (or JSON) mapping from path. An empty path yields
// an empty scope.
func loadScope(path string) (mailjsx.Scope, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scope file: %w", err)
	}
	var scope mailjsx.Scope
	if err := yaml.Unmarshal(data, &scope); err != nil {
		return nil, fmt.Errorf("failed to parse scope file %s: %w", path, err)
	}
	return scope, nil
}

// parseSet turns name=value pairs into scope entries. Values stay strings.
func parseSet(pairs []string) (mailjsx.Scope, error) {
	scope := make(mailjsx.Scope, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", p)
		}
		scope[name] = value
	}
	return scope, nil
}
