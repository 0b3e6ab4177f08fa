package config

import (
	"encoding/json"
	"fmt"
	"os"

	apperrors "sjsage522/shoetracker/pkg/errors"
)

const defaultModel = "gemini-2.5-pro"

// Settings holds the global tracking settings from the items file.
// Read-only after load.
type Settings struct {
	// Model is the Gemini model identifier used for extraction
	Model string `json:"model"`
	// DefaultThreshold applies to items without their own threshold
	DefaultThreshold float64 `json:"threshold"`
	// ShoeNames filters alerts to products whose name contains one of
	// these keywords (case-insensitive). Empty means no filtering.
	ShoeNames []string `json:"shoe_names"`
}

// TrackedItem is a single product URL configured for monitoring.
// Identity is the URL; immutable during a run.
type TrackedItem struct {
	Name      string   `json:"name"`
	URL       string   `json:"url"`
	Selector  string   `json:"selector,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
}

// EffectiveThreshold returns the item threshold if set, else the default
func (t TrackedItem) EffectiveThreshold(s Settings) float64 {
	if t.Threshold != nil {
		return *t.Threshold
	}
	return s.DefaultThreshold
}

// itemsFile mirrors the on-disk tracked items document
type itemsFile struct {
	Settings Settings      `json:"settings"`
	URLs     []TrackedItem `json:"urls"`
}

// LoadItems reads the tracked items file and returns the settings and the
// ordered item list. Any problem with the file is a configuration error
// and aborts the run before any item is processed.
func LoadItems(path string) (Settings, []TrackedItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, nil, apperrors.NewConfiguration(
			fmt.Sprintf("tracked items file %s is not readable", path), err)
	}

	var doc itemsFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return Settings{}, nil, apperrors.NewConfiguration(
			fmt.Sprintf("tracked items file %s is malformed", path), err)
	}

	if doc.Settings.Model == "" {
		doc.Settings.Model = defaultModel
	}
	if doc.Settings.DefaultThreshold <= 0 {
		return Settings{}, nil, apperrors.NewConfiguration(
			"settings.threshold must be a positive number", nil)
	}

	for i, item := range doc.URLs {
		if item.Name == "" {
			return Settings{}, nil, apperrors.NewConfiguration(
				fmt.Sprintf("urls[%d] is missing a name", i), nil)
		}
		if item.URL == "" {
			return Settings{}, nil, apperrors.NewConfiguration(
				fmt.Sprintf("urls[%d] (%s) is missing a url", i, item.Name), nil)
		}
		if item.Threshold != nil && *item.Threshold <= 0 {
			return Settings{}, nil, apperrors.NewConfiguration(
				fmt.Sprintf("urls[%d] (%s) threshold must be positive", i, item.Name), nil)
		}
	}

	return doc.Settings, doc.URLs, nil
}
