package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeItemsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracked_urls.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadItems(t *testing.T) {
	path := writeItemsFile(t, `{
		"settings": {"model": "gemini-2.5-pro", "threshold": 50000, "shoe_names": ["Samba"]},
		"urls": [
			{"name": "Store A", "url": "https://example.com/a", "selector": "#gallery"},
			{"name": "Store B", "url": "https://example.com/b", "threshold": 30000}
		]
	}`)

	settings, items, err := LoadItems(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", settings.Model)
	assert.Equal(t, 50000.0, settings.DefaultThreshold)
	assert.Equal(t, []string{"Samba"}, settings.ShoeNames)

	require.Len(t, items, 2)
	assert.Equal(t, "Store A", items[0].Name)
	assert.Equal(t, "#gallery", items[0].Selector)
	assert.Nil(t, items[0].Threshold)
	assert.Equal(t, 50000.0, items[0].EffectiveThreshold(settings))
	require.NotNil(t, items[1].Threshold)
	assert.Equal(t, 30000.0, items[1].EffectiveThreshold(settings))
}

func TestLoadItemsDefaultsModel(t *testing.T) {
	path := writeItemsFile(t, `{
		"settings": {"threshold": 100},
		"urls": []
	}`)

	settings, items, err := LoadItems(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", settings.Model)
	assert.Empty(t, items)
}

func TestLoadItemsMissingFile(t *testing.T) {
	_, _, err := LoadItems(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadItemsMalformed(t *testing.T) {
	path := writeItemsFile(t, `{not json`)
	_, _, err := LoadItems(path)
	assert.Error(t, err)
}

func TestLoadItemsValidation(t *testing.T) {
	// Missing url
	path := writeItemsFile(t, `{
		"settings": {"threshold": 100},
		"urls": [{"name": "No URL"}]
	}`)
	_, _, err := LoadItems(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing a url")

	// Missing name
	path = writeItemsFile(t, `{
		"settings": {"threshold": 100},
		"urls": [{"url": "https://example.com"}]
	}`)
	_, _, err = LoadItems(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing a name")

	// Non-positive default threshold
	path = writeItemsFile(t, `{
		"settings": {"threshold": 0},
		"urls": []
	}`)
	_, _, err = LoadItems(path)
	assert.Error(t, err)

	// Non-positive item threshold
	path = writeItemsFile(t, `{
		"settings": {"threshold": 100},
		"urls": [{"name": "Bad", "url": "https://example.com", "threshold": -5}]
	}`)
	_, _, err = LoadItems(path)
	assert.Error(t, err)
}
