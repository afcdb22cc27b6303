package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := &Config{
		Accounts: []string{"NL11RABO0101010101", "NL22RABO0202020202"},
		Overrides: Overrides{
			KeyForceDatePosted: "true",
		},
	}

	path := filepath.Join(t.TempDir(), "rabo2ofx.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Accounts, got.Accounts)
	assert.Equal(t, "true", got.Overrides[KeyForceDatePosted])
	assert.True(t, got.Overrides.Bool(KeyForceDatePosted))
}

func TestLoadMissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)

	assert.Empty(t, got.Accounts)
	assert.Empty(t, got.Overrides)
	assert.False(t, got.Overrides.Bool(KeyForceDatePosted))
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rabo2ofx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accounts: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestOverridesBool(t *testing.T) {
	o := Overrides{
		"yes_lower": "true",
		"yes_upper": "TRUE",
		"yes_digit": "1",
		"no_lower":  "false",
		"no_digit":  "0",
		"garbage":   "maybe",
		"empty":     "",
	}

	assert.True(t, o.Bool("yes_lower"))
	assert.True(t, o.Bool("yes_upper"))
	assert.True(t, o.Bool("yes_digit"))
	assert.False(t, o.Bool("no_lower"))
	assert.False(t, o.Bool("no_digit"))
	assert.False(t, o.Bool("garbage"))
	assert.False(t, o.Bool("empty"))
	assert.False(t, o.Bool("absent"))
}

func TestExample(t *testing.T) {
	cfg := Example()

	assert.Len(t, cfg.Accounts, 2)
	assert.Equal(t, "false", cfg.Overrides[KeyForceDatePosted])
	assert.False(t, cfg.Overrides.Bool(KeyForceDatePosted))
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rabo2ofx.yaml")
	err := Save(path, Example())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "accounts:")
	assert.Contains(t, contents, "- NL01RABO0123456789")
	assert.Contains(t, contents, "force_date_posted:")
}
