package config

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvAPIToken, "")
}

func readFile(t *testing.T) map[string]string {
	t.Helper()
	b, err := os.ReadFile(File())
	require.NoError(t, err)
	var m map[string]string
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestLoadMissingFile(t *testing.T) {
	setHome(t)
	assert.Empty(t, Load())
}

func TestLoadCorruptFile(t *testing.T) {
	setHome(t)
	require.NoError(t, os.WriteFile(File(), []byte("{not json"), 0o600))
	assert.Empty(t, Load())
}

func TestResolvePrecedence(t *testing.T) {
	setHome(t)
	stored := map[string]string{
		"model_name": "qwen3-vl-flash",
		"api_token":  "persisted-token",
	}

	t.Run("persisted value beats default", func(t *testing.T) {
		s := Resolve(stored, Overrides{})
		assert.Equal(t, "qwen3-vl-flash", s.Model)
		assert.Equal(t, "persisted-token", s.APIToken)
		assert.Equal(t, DefaultBaseURL, s.BaseURL)
		assert.Equal(t, DefaultQuery, s.Query)
	})

	t.Run("flag beats persisted value", func(t *testing.T) {
		s := Resolve(stored, Overrides{Model: "qwen-vl-ocr-latest", Query: "read this"})
		assert.Equal(t, "qwen-vl-ocr-latest", s.Model)
		assert.Equal(t, "read this", s.Query)
		assert.Equal(t, "persisted-token", s.APIToken)
	})
}

func TestResolveTokenFromEnv(t *testing.T) {
	setHome(t)
	t.Setenv(EnvAPIToken, "env-token")

	s := Resolve(map[string]string{}, Overrides{})
	assert.Equal(t, "env-token", s.APIToken)

	s = Resolve(map[string]string{"api_token": "persisted"}, Overrides{})
	assert.Equal(t, "persisted", s.APIToken)
}

func TestResolveNoTokenAnywhere(t *testing.T) {
	setHome(t)
	s := Resolve(map[string]string{}, Overrides{})
	assert.Empty(t, s.APIToken)
}

func TestApplyWritesOnlySuppliedKeys(t *testing.T) {
	setHome(t)
	stored := map[string]string{
		"api_token":  "old-token",
		"model_name": "qwen3-vl-flash",
		"base_url":   "https://example.com/v1",
	}
	require.NoError(t, save(stored))

	require.NoError(t, Apply(stored, Overrides{Query: "what is this"}))

	persisted := readFile(t)
	assert.Equal(t, "old-token", persisted["api_token"])
	assert.Equal(t, "qwen3-vl-flash", persisted["model_name"])
	assert.Equal(t, "https://example.com/v1", persisted["base_url"])
	assert.Equal(t, "what is this", persisted["query_text"])
}

func TestApplyOverwritesModel(t *testing.T) {
	setHome(t)
	stored := map[string]string{"model_name": "qwen3-vl-plus"}
	require.NoError(t, save(stored))

	require.NoError(t, Apply(stored, Overrides{Model: "qwen3-vl-flash"}))

	assert.Equal(t, "qwen3-vl-flash", readFile(t)["model_name"])
}

func TestApplyNothingSuppliedLeavesFileAlone(t *testing.T) {
	setHome(t)
	// Model already persisted, nothing supplied: no write should happen,
	// so the file must not even be created.
	stored := map[string]string{"model_name": "qwen3-vl-flash"}
	require.NoError(t, Apply(stored, Overrides{}))

	_, err := os.Stat(File())
	assert.True(t, os.IsNotExist(err))
}

func TestApplyPersistsDefaultModelWhenUnsetEverywhere(t *testing.T) {
	setHome(t)
	stored := map[string]string{}
	require.NoError(t, Apply(stored, Overrides{}))

	assert.Equal(t, DefaultModel, stored["model_name"])
	assert.Equal(t, DefaultModel, readFile(t)["model_name"])
}
