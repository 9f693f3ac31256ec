package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureConfig(t *testing.T) {
	c, err := loadConfig("")

	assert.NoError(t, err)
	assert.Equal(t, `Sample\s*Exercise\s+\d+\.\d+`, c.Pattern)
	assert.True(t, c.IgnoreCase)
	assert.Equal(t, 1, c.SpanPages)
	assert.Equal(t, 10.0, c.HeaderMargin)
	assert.Equal(t, 168*time.Hour, c.CacheTTL)
	assert.NoError(t, c.Validate())
}

func TestLoadConfigUserOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("span_pages: 3\npreview: true\n"), 0o644))

	c, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3, c.SpanPages)
	assert.True(t, c.Preview)
	// untouched keys keep the embedded defaults
	assert.Equal(t, "sample_exercises_extracted.pdf", c.Output)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NoError(t, err)
}

func TestConfigValidate(t *testing.T) {
	base, err := loadConfig("")
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad regex", mutate: func(c *Config) { c.Pattern = "Sample(" }, wantErr: "invalid pattern"},
		{name: "empty regex", mutate: func(c *Config) { c.Pattern = "" }, wantErr: "empty pattern"},
		{name: "negative margin", mutate: func(c *Config) { c.HeaderMargin = -1 }, wantErr: "negative"},
		{name: "threshold", mutate: func(c *Config) { c.HeaderThreshold = 1.5 }, wantErr: "outside"},
		{name: "span pages", mutate: func(c *Config) { c.SpanPages = 0 }, wantErr: "span_pages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCompilePatternIgnoreCase(t *testing.T) {
	c := Config{Pattern: `Sample\s*Exercise\s+\d+\.\d+`, IgnoreCase: true}
	re, err := c.compilePattern()
	require.NoError(t, err)
	assert.True(t, re.MatchString("SAMPLE\nexercise 2.14"))

	c.IgnoreCase = false
	re, err = c.compilePattern()
	require.NoError(t, err)
	assert.False(t, re.MatchString("sample exercise 2.14"))
}
