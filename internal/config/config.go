package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// DefaultBaseURL is the default OpenAI-compatible API endpoint.
	DefaultBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

	// DefaultModel is the model used when none was ever selected.
	DefaultModel = "qwen3-vl-plus"

	// DefaultQuery is the prompt used when none was ever given.
	DefaultQuery = "What scene is depicted in the image?"

	// EnvAPIToken is the environment fallback for the API token.
	EnvAPIToken = "DASHSCOPE_API_KEY"

	fileName = ".heye"
)

// Persisted file keys. The names match the original ~/.heye format so
// existing files keep working.
const (
	keyBaseURL  = "base_url"
	keyAPIToken = "api_token"
	keyModel    = "model_name"
	keyQuery    = "query_text"
)

// Overrides holds the values explicitly supplied on the command line
// for one run. An empty string means the flag was not given.
type Overrides struct {
	BaseURL  string
	APIToken string
	Model    string
	Query    string
}

// Settings is the effective configuration for one run after merging
// overrides, persisted values and built-in defaults.
type Settings struct {
	BaseURL  string
	APIToken string
	Model    string
	Query    string
}

// File returns the path of the persisted configuration file.
func File() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return fileName
	}
	return filepath.Join(home, fileName)
}

// Load reads the persisted configuration. A missing, unreadable or
// corrupt file yields an empty map rather than an error.
func Load() map[string]string {
	b, err := os.ReadFile(File())
	if err != nil {
		return map[string]string{}
	}
	var stored map[string]string
	if err := json.Unmarshal(b, &stored); err != nil || stored == nil {
		return map[string]string{}
	}
	return stored
}

// Apply copies the supplied overrides into stored and writes the result
// back to disk. Keys the run did not supply keep whatever was last
// persisted. When nothing needs persisting the file is left untouched.
//
// A model unset both on the command line and in the file resolves to
// DefaultModel; that resolution is persisted so later runs are explicit
// about which model they used.
func Apply(stored map[string]string, ov Overrides) error {
	dirty := false
	set := func(key, val string) {
		if val != "" {
			stored[key] = val
			dirty = true
		}
	}
	set(keyBaseURL, ov.BaseURL)
	set(keyAPIToken, ov.APIToken)
	set(keyModel, ov.Model)
	set(keyQuery, ov.Query)

	if stored[keyModel] == "" {
		stored[keyModel] = DefaultModel
		dirty = true
	}

	if !dirty {
		return nil
	}
	return save(stored)
}

// Resolve merges one run's configuration: explicit flag, then persisted
// value, then built-in default, per field independently. The API token
// default comes from the environment.
func Resolve(stored map[string]string, ov Overrides) Settings {
	pick := func(flag, persisted, fallback string) string {
		if flag != "" {
			return flag
		}
		if persisted != "" {
			return persisted
		}
		return fallback
	}
	return Settings{
		BaseURL:  pick(ov.BaseURL, stored[keyBaseURL], DefaultBaseURL),
		APIToken: pick(ov.APIToken, stored[keyAPIToken], os.Getenv(EnvAPIToken)),
		Model:    pick(ov.Model, stored[keyModel], DefaultModel),
		Query:    pick(ov.Query, stored[keyQuery], DefaultQuery),
	}
}

func save(stored map[string]string) error {
	b, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	path := File()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
