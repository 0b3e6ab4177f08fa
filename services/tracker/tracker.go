// Package tracker sequences one full price-check run across all tracked
// items: fetch, extract, evaluate, record, then a single notification.
package tracker

import (
	"context"
	"encoding/json"
	"time"

	"sjsage522/shoetracker/config"
	"sjsage522/shoetracker/internal/extractor"
	"sjsage522/shoetracker/internal/policy"
	"sjsage522/shoetracker/logger"
	"sjsage522/shoetracker/services/history"
	"sjsage522/shoetracker/services/notifier"
	"sjsage522/shoetracker/services/publisher"
)

// ItemState tracks an item through the per-item pipeline
type ItemState string

const (
	StatePending    ItemState = "pending"
	StateFetching   ItemState = "fetching"
	StateExtracting ItemState = "extracting"
	StateEvaluated  ItemState = "evaluated"
	StateRecorded   ItemState = "recorded"
	StateFailed     ItemState = "failed"
)

// PageFetcher retrieves raw page content for an item
type PageFetcher interface {
	Fetch(url, selector string) (string, error)
}

// PriceExtractor turns page content into a price record
type PriceExtractor interface {
	Extract(ctx context.Context, itemName, content string) extractor.PriceRecord
}

// Deps holds the collaborators the tracker drives
type Deps struct {
	Fetcher   PageFetcher
	Extractor PriceExtractor
	History   history.Store
	Notifier  notifier.Notifier
	Publisher publisher.Publisher
}

// RunSummary aggregates the result of one run
type RunSummary struct {
	Checked int
	Failed  int
	Alerts  []policy.AlertEvent
}

// Tracker runs the price-check pipeline over the tracked items.
// Execution is deliberately sequential with a minimum inter-item delay:
// the AI backend and the fetch targets are rate limited, so pacing is the
// correctness mechanism, not an optimization target.
type Tracker struct {
	ctx        context.Context
	settings   config.Settings
	items      []config.TrackedItem
	deps       Deps
	checkDelay time.Duration
	sleep      func(time.Duration)
	log        *logger.Logger
}

// New creates a tracker for one run over the given items
func New(ctx context.Context, settings config.Settings, items []config.TrackedItem, deps Deps, checkDelay time.Duration) *Tracker {
	return &Tracker{
		ctx:        ctx,
		settings:   settings,
		items:      items,
		deps:       deps,
		checkDelay: checkDelay,
		sleep:      time.Sleep,
		log:        logger.ForTracker(),
	}
}

// Run checks every tracked item in order and returns the run summary.
// Per-item failures degrade that item and never abort the run; only the
// caller's configuration loading can do that.
func (t *Tracker) Run() RunSummary {
	summary := RunSummary{}

	t.log.Info().
		Int("items", len(t.items)).
		Str("model", t.settings.Model).
		Msg("Starting price check run")

	for i, item := range t.items {
		record, alert := t.checkItem(item)
		summary.Checked++

		t.deps.History.Append(item.URL, record)
		if !record.Success {
			summary.Failed++
		}

		if alert != nil {
			summary.Alerts = append(summary.Alerts, *alert)
			t.publishAlert(*alert)
			t.log.Info().
				Str("item", item.Name).
				Float64("price", alert.Price).
				Float64("threshold", alert.Threshold).
				Float64("savings", alert.Savings()).
				Msg("ALERT: price at or below threshold")
		}

		// Pacing between items, skipped after the last one
		if i < len(t.items)-1 && t.checkDelay > 0 {
			t.log.Debug().Dur("delay", t.checkDelay).Msg("Pacing before next item")
			t.sleep(t.checkDelay)
		}
	}

	if err := t.deps.History.Save(); err != nil {
		// A failed save must not suppress already-computed alerts
		t.log.Error().Err(err).Msg("Failed to persist history")
	}

	if err := t.deps.Publisher.TrimStream(); err != nil {
		t.log.Warn().Err(err).Msg("Failed to trim alert stream")
	}

	if err := t.deps.Notifier.Notify(t.ctx, summary.Alerts); err != nil {
		t.log.Error().Err(err).Msg("Failed to send notification")
	}

	t.logSummary(summary)
	return summary
}

// checkItem walks one item through fetch, extract and evaluate. A fetch or
// extraction failure yields a success=false record and a nil alert.
func (t *Tracker) checkItem(item config.TrackedItem) (extractor.PriceRecord, *policy.AlertEvent) {
	log := logger.ForItem(item.Name)

	state := StateFetching
	log.Info().Str("state", string(state)).Str("url", item.URL).Msg("Checking item")

	content, err := t.deps.Fetcher.Fetch(item.URL, item.Selector)
	if err != nil {
		state = StateFailed
		log.Error().Err(err).Str("state", string(state)).Msg("Fetch failed")
		return extractor.FailedRecord(time.Now(), "fetch failed: "+err.Error()), nil
	}

	state = StateExtracting
	log.Debug().Str("state", string(state)).Int("chars", len(content)).Msg("Extracting price")

	record := t.deps.Extractor.Extract(t.ctx, item.Name, content)

	state = StateEvaluated
	alert := policy.Evaluate(item, record, t.settings)
	log.Debug().Str("state", string(state)).Msg("Policy evaluated")

	state = StateRecorded
	if record.Success {
		log.Info().Str("state", string(state)).Float64("price", *record.Price).Bool("alert", alert != nil).Msg("Item checked")
	} else {
		log.Warn().Str("state", string(state)).Str("reason", record.RawText).Msg("Item check failed")
	}
	return record, alert
}

// publishAlert pushes one alert to the optional stream backend
func (t *Tracker) publishAlert(alert policy.AlertEvent) {
	data, err := json.Marshal(alert)
	if err != nil {
		t.log.Error().Err(err).Msg("Failed to encode alert event")
		return
	}
	if err := t.deps.Publisher.Publish(data); err != nil {
		t.log.Warn().Err(err).Msg("Failed to publish alert event")
	}
}

// logSummary prints the human-readable end-of-run block
func (t *Tracker) logSummary(summary RunSummary) {
	t.log.Info().
		Int("checked", summary.Checked).
		Int("failed", summary.Failed).
		Int("alerts", len(summary.Alerts)).
		Msg("Run complete")

	for _, a := range summary.Alerts {
		t.log.Info().
			Str("item", a.ItemName).
			Float64("price", a.Price).
			Float64("savings", a.Savings()).
			Str("url", a.URL).
			Msg("Alert detail")
	}
}
