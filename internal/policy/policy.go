// Package policy decides whether a price check triggers an alert. It is a
// pure function of the item, the record, and the settings; no hidden state.
package policy

import (
	"sjsage522/shoetracker/config"
	"sjsage522/shoetracker/helpers"
	"sjsage522/shoetracker/internal/extractor"
)

// AlertEvent signals that an item's current price meets alert policy.
// Derived transiently each run; not persisted.
type AlertEvent struct {
	ItemName  string  `json:"item_name"`
	URL       string  `json:"url"`
	Price     float64 `json:"price"`
	Threshold float64 `json:"threshold"`
}

// Savings returns how far below the threshold the price landed
func (a AlertEvent) Savings() float64 {
	return a.Threshold - a.Price
}

// Evaluate returns an AlertEvent when the record triggers one, nil otherwise.
// Rules, in order:
//   - a failed record never alerts
//   - when name filters are configured, the item name must contain at least
//     one keyword (case-insensitive substring)
//   - the price must be at or below the effective threshold (item threshold
//     when set, else the settings default); the boundary is inclusive
func Evaluate(item config.TrackedItem, record extractor.PriceRecord, settings config.Settings) *AlertEvent {
	if !record.Success || record.Price == nil {
		return nil
	}

	if len(settings.ShoeNames) > 0 && !helpers.ContainsAnyFold(item.Name, settings.ShoeNames) {
		return nil
	}

	threshold := item.EffectiveThreshold(settings)
	if *record.Price > threshold {
		return nil
	}

	return &AlertEvent{
		ItemName:  item.Name,
		URL:       item.URL,
		Price:     *record.Price,
		Threshold: threshold,
	}
}
