package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unset clears key for the duration of the test and restores it afterwards.
func unset(t *testing.T, key string) {
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"CARNI_PORT", "CARNI_DATA_DIR", "CARNI_LOG_LEVEL", "CARNI_CORS_ORIGINS", "CARNI_SALT_GRAMS_PER_TSP", "OPENROUTER_API_KEY", "CARNI_LLM_MEMORY"} {
		unset(t, k)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 6.0, cfg.Units().SaltGramsPerTeaspoon)
	assert.Equal(t, 5, cfg.LLM.MemorySize)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.Equal(t, filepath.Join("data", "daily"), cfg.DailyDir())
	assert.Equal(t, filepath.Join("data", "profile"), cfg.ProfileDir())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("CARNI_PORT", "9000")
	t.Setenv("CARNI_CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("CARNI_SALT_GRAMS_PER_TSP", "5.5")
	t.Setenv("OPENROUTER_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 5.5, cfg.SaltGramsPerTeaspoon)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestLoad_EnvFile(t *testing.T) {
	unset(t, "CARNI_DATA_DIR")
	unset(t, "CARNI_LLM_MODEL")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CARNI_DATA_DIR=/srv/carni\nCARNI_LLM_MODEL=local/model\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/carni", cfg.DataDir)
	assert.Equal(t, "local/model", cfg.LLM.Model)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("CARNI_SALT_GRAMS_PER_TSP", "not-a-number")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("CARNI_SALT_GRAMS_PER_TSP", "-1")
	_, err = Load()
	assert.ErrorContains(t, err, "salt grams per teaspoon")
}

func TestValidate(t *testing.T) {
	cfg := Config{DataDir: "data", SaltGramsPerTeaspoon: 6, LLM: LLMConfig{MemorySize: 5}}
	require.NoError(t, cfg.Validate())

	cfg.LLM.MemorySize = 0
	assert.Error(t, cfg.Validate())

	cfg.LLM.MemorySize = 5
	cfg.DataDir = ""
	assert.Error(t, cfg.Validate())
}
