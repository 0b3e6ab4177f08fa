package notifier

import (
	"context"

	"sjsage522/shoetracker/internal/policy"
	"sjsage522/shoetracker/logger"
)

// Notifier delivers a summary of triggered alerts.
type Notifier interface {
	// Notify sends one message summarizing all alerts. An empty alert
	// slice is a successful no-op.
	Notify(ctx context.Context, alerts []policy.AlertEvent) error
}

// Noop is selected when mail transport credentials are absent. This is an
// explicit soft-disabled mode, not an error: the run still checks, records
// and prints alerts, it just cannot mail them.
type Noop struct{}

// Notify logs and discards the alerts
func (Noop) Notify(_ context.Context, alerts []policy.AlertEvent) error {
	if len(alerts) > 0 {
		logger.ForNotifier().Warn().
			Int("alerts", len(alerts)).
			Msg("Email not configured, skipping notification")
	}
	return nil
}
