package cli

import (
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/dirwise/fdapi/pkg/directory"
)

// loadValuesFile reads a tab → field → value mapping from a YAML file.
func loadValuesFile(path string) (directory.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read values file: %w", err)
	}

	values := directory.Values{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("unable to parse values file: %w", err)
	}
	return values, nil
}

// valuesFromSetFlags builds a tab → field → value mapping from repeated
// --set tab.field=value flags. The path left of '=' is an sjson path, so
// a literal dot in a field name can be escaped as '\.'.
func valuesFromSetFlags(pairs []string) (directory.Values, error) {
	doc := []byte(`{}`)
	for _, pair := range pairs {
		path, value, found := strings.Cut(pair, "=")
		if !found || path == "" {
			return nil, fmt.Errorf("invalid --set %q, expected tab.field=value", pair)
		}
		if !strings.Contains(path, ".") {
			return nil, fmt.Errorf("invalid --set path %q, expected tab.field", path)
		}
		var err error
		doc, err = sjson.SetBytes(doc, path, value)
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", pair, err)
		}
	}

	values := directory.Values{}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(doc, &values); err != nil {
		return nil, fmt.Errorf("--set flags do not form a tab.field mapping: %w", err)
	}
	return values, nil
}

// gatherValues merges a values file and --set flags, flags winning.
func gatherValues(file string, setPairs []string) (directory.Values, error) {
	values := directory.Values{}
	if file != "" {
		fromFile, err := loadValuesFile(file)
		if err != nil {
			return nil, err
		}
		values = fromFile
	}

	if len(setPairs) > 0 {
		fromFlags, err := valuesFromSetFlags(setPairs)
		if err != nil {
			return nil, err
		}
		for tab, fields := range fromFlags {
			if values[tab] == nil {
				values[tab] = map[string]any{}
			}
			for k, v := range fields {
				values[tab][k] = v
			}
		}
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("no values given; use -f or --set")
	}
	return values, nil
}
