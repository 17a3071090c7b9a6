package incremental

import (
	"encoding/json"
	"os"

	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
	"git.home.luguber.info/inful/webhelp/internal/logfields"
)

// pluginEntry is the per-plugin record of a plugins.json file. Other fields
// (package, registry) are ignored.
type pluginEntry struct {
	Version string `json:"version"`
}

// LoadPlugins reads a plugins.json file mapping plugin names to install records.
// A missing file means no plugins are installed. The result is in name order.
func LoadPlugins(path string) ([]Package, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read plugins file").
			Fatal().
			WithContext(logfields.KeyFile, path).
			Build()
	}
	var entries map[string]pluginEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "plugins file is not valid JSON").
			Fatal().
			UserAction().
			WithContext(logfields.KeyFile, path).
			Build()
	}
	plugins := make(PackageMetadata, 0, len(entries))
	for name, entry := range entries {
		plugins = append(plugins, Package{Name: name, Version: entry.Version})
	}
	return plugins.Normalized(), nil
}
