package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/shoetracker/config"
	"sjsage522/shoetracker/internal/extractor"
	"sjsage522/shoetracker/internal/policy"
	"sjsage522/shoetracker/services/history"
	"sjsage522/shoetracker/services/notifier"
	"sjsage522/shoetracker/services/publisher"
)

// MockFetcher implements the PageFetcher interface for testing
type MockFetcher struct {
	content  map[string]string
	fetchErr map[string]error
	calls    []string
}

var _ PageFetcher = (*MockFetcher)(nil)

func (m *MockFetcher) Fetch(url, _ string) (string, error) {
	m.calls = append(m.calls, url)
	if err := m.fetchErr[url]; err != nil {
		return "", err
	}
	return m.content[url], nil
}

// MockExtractor implements the PriceExtractor interface for testing
type MockExtractor struct {
	records map[string]extractor.PriceRecord
}

var _ PriceExtractor = (*MockExtractor)(nil)

func (m *MockExtractor) Extract(_ context.Context, itemName, _ string) extractor.PriceRecord {
	if rec, ok := m.records[itemName]; ok {
		return rec
	}
	return extractor.FailedRecord(time.Now(), "no canned record")
}

// MockNotifier implements the notifier.Notifier interface for testing
type MockNotifier struct {
	mu     sync.Mutex
	calls  int
	alerts []policy.AlertEvent
	err    error
}

var _ notifier.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Notify(_ context.Context, alerts []policy.AlertEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.alerts = alerts
	return m.err
}

// MockPublisher implements the publisher.Publisher interface for testing
type MockPublisher struct {
	mu       sync.Mutex
	messages [][]byte
	trimmed  bool
}

var _ publisher.Publisher = (*MockPublisher)(nil)

func (m *MockPublisher) Publish(message []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	messageCopy := make([]byte, len(message))
	copy(messageCopy, message)
	m.messages = append(m.messages, messageCopy)
	return nil
}

func (m *MockPublisher) TrimStream() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trimmed = true
	return nil
}

func (m *MockPublisher) Close() error { return nil }

// failingStore wraps a Store whose Save always fails
type failingStore struct {
	history.Store
}

func (f *failingStore) Save() error {
	return errors.New("disk full")
}

func successRecord(price float64) extractor.PriceRecord {
	return extractor.PriceRecord{Timestamp: time.Now(), Price: &price, Success: true}
}

func newTestDeps(t *testing.T, fetcher *MockFetcher, ext *MockExtractor) (Deps, *MockNotifier, *MockPublisher, history.Store) {
	t.Helper()
	store := history.NewFileStore(filepath.Join(t.TempDir(), "history.json"))
	n := &MockNotifier{}
	p := &MockPublisher{}
	return Deps{
		Fetcher:   fetcher,
		Extractor: ext,
		History:   store,
		Notifier:  n,
		Publisher: p,
	}, n, p, store
}

func TestRunSingleItemAlert(t *testing.T) {
	item := config.TrackedItem{Name: "Adidas Samba OG", URL: "https://example.com/samba"}
	settings := config.Settings{Model: "gemini-2.5-pro", DefaultThreshold: 100}

	fetcher := &MockFetcher{content: map[string]string{item.URL: "<html>page</html>"}}
	ext := &MockExtractor{records: map[string]extractor.PriceRecord{
		"Adidas Samba OG": successRecord(95),
	}}
	deps, n, p, store := newTestDeps(t, fetcher, ext)

	tr := New(context.Background(), settings, []config.TrackedItem{item}, deps, 0)
	summary := tr.Run()

	assert.Equal(t, 1, summary.Checked)
	assert.Equal(t, 0, summary.Failed)
	require.Len(t, summary.Alerts, 1)
	assert.Equal(t, 95.0, summary.Alerts[0].Price)
	assert.Equal(t, 100.0, summary.Alerts[0].Threshold)

	// History gained exactly one record
	assert.Equal(t, 1, store.Len(item.URL))

	// Notifier invoked once with exactly that alert
	assert.Equal(t, 1, n.calls)
	require.Len(t, n.alerts, 1)
	assert.Equal(t, "Adidas Samba OG", n.alerts[0].ItemName)

	// Alert published to the stream
	require.Len(t, p.messages, 1)
	var published policy.AlertEvent
	require.NoError(t, json.Unmarshal(p.messages[0], &published))
	assert.Equal(t, 95.0, published.Price)
	assert.True(t, p.trimmed)
}

func TestRunNotFoundRecordsFailure(t *testing.T) {
	item := config.TrackedItem{Name: "Item", URL: "https://example.com/item"}
	settings := config.Settings{DefaultThreshold: 100}

	fetcher := &MockFetcher{content: map[string]string{item.URL: "page"}}
	ext := &MockExtractor{records: map[string]extractor.PriceRecord{
		"Item": {Timestamp: time.Now(), RawText: "NOT_FOUND", Success: false},
	}}
	deps, n, p, store := newTestDeps(t, fetcher, ext)

	tr := New(context.Background(), settings, []config.TrackedItem{item}, deps, 0)
	summary := tr.Run()

	assert.Equal(t, 1, summary.Checked)
	assert.Equal(t, 1, summary.Failed)
	assert.Empty(t, summary.Alerts)

	// The failure is recorded in history
	records := store.Get(item.URL)
	require.Len(t, records, 1)
	assert.False(t, records[0].Success)
	assert.Nil(t, records[0].Price)

	// Notifier still invoked once, with an empty list
	assert.Equal(t, 1, n.calls)
	assert.Empty(t, n.alerts)
	assert.Empty(t, p.messages)
}

func TestRunFetchFailureDoesNotAbortRun(t *testing.T) {
	itemA := config.TrackedItem{Name: "Broken", URL: "https://example.com/broken"}
	itemB := config.TrackedItem{Name: "Fine", URL: "https://example.com/fine"}
	settings := config.Settings{DefaultThreshold: 100}

	fetcher := &MockFetcher{
		content:  map[string]string{itemB.URL: "page"},
		fetchErr: map[string]error{itemA.URL: errors.New("connection refused")},
	}
	ext := &MockExtractor{records: map[string]extractor.PriceRecord{
		"Fine": successRecord(50),
	}}
	deps, n, _, store := newTestDeps(t, fetcher, ext)

	tr := New(context.Background(), settings, []config.TrackedItem{itemA, itemB}, deps, 0)
	summary := tr.Run()

	assert.Equal(t, 2, summary.Checked)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Alerts, 1)
	assert.Equal(t, "Fine", summary.Alerts[0].ItemName)

	// Both items got a history record; the broken one is a failure
	require.Equal(t, 1, store.Len(itemA.URL))
	assert.False(t, store.Get(itemA.URL)[0].Success)
	assert.Equal(t, 1, store.Len(itemB.URL))

	assert.Equal(t, 1, n.calls)
}

func TestRunPacingBetweenItems(t *testing.T) {
	items := []config.TrackedItem{
		{Name: "A", URL: "https://example.com/a"},
		{Name: "B", URL: "https://example.com/b"},
		{Name: "C", URL: "https://example.com/c"},
	}
	settings := config.Settings{DefaultThreshold: 100}

	fetcher := &MockFetcher{content: map[string]string{
		items[0].URL: "p", items[1].URL: "p", items[2].URL: "p",
	}}
	ext := &MockExtractor{records: map[string]extractor.PriceRecord{
		"A": successRecord(200), "B": successRecord(200), "C": successRecord(200),
	}}
	deps, _, _, _ := newTestDeps(t, fetcher, ext)

	tr := New(context.Background(), settings, items, deps, 30*time.Second)

	var slept []time.Duration
	tr.sleep = func(d time.Duration) { slept = append(slept, d) }

	tr.Run()

	// Delay between items, skipped after the last one
	require.Len(t, slept, 2)
	assert.Equal(t, 30*time.Second, slept[0])
	assert.Equal(t, 30*time.Second, slept[1])
}

func TestRunPersistenceFailureDoesNotSuppressAlerts(t *testing.T) {
	item := config.TrackedItem{Name: "Item", URL: "https://example.com/item"}
	settings := config.Settings{DefaultThreshold: 100}

	fetcher := &MockFetcher{content: map[string]string{item.URL: "page"}}
	ext := &MockExtractor{records: map[string]extractor.PriceRecord{
		"Item": successRecord(95),
	}}
	deps, n, _, _ := newTestDeps(t, fetcher, ext)
	deps.History = &failingStore{Store: deps.History}

	tr := New(context.Background(), settings, []config.TrackedItem{item}, deps, 0)
	summary := tr.Run()

	require.Len(t, summary.Alerts, 1)
	assert.Equal(t, 1, n.calls)
	require.Len(t, n.alerts, 1)
}

func TestRunNameFilterAppliedByPolicy(t *testing.T) {
	items := []config.TrackedItem{
		{Name: "Adidas Samba OG", URL: "https://example.com/samba"},
		{Name: "Nike Air Max", URL: "https://example.com/airmax"},
	}
	settings := config.Settings{DefaultThreshold: 100, ShoeNames: []string{"Samba"}}

	fetcher := &MockFetcher{content: map[string]string{
		items[0].URL: "p", items[1].URL: "p",
	}}
	ext := &MockExtractor{records: map[string]extractor.PriceRecord{
		"Adidas Samba OG": successRecord(95),
		"Nike Air Max":    successRecord(95),
	}}
	deps, _, _, store := newTestDeps(t, fetcher, ext)

	tr := New(context.Background(), settings, items, deps, 0)
	summary := tr.Run()

	// Both checked and recorded, only the matching name alerts
	assert.Equal(t, 2, summary.Checked)
	require.Len(t, summary.Alerts, 1)
	assert.Equal(t, "Adidas Samba OG", summary.Alerts[0].ItemName)
	assert.Equal(t, 1, store.Len(items[1].URL))
}
