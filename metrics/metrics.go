// Package metrics implements the process-wide usage counters recorded during
// dialogue evaluation. Counters are monotonic: they only increase and are
// never reset except at process restart.
package metrics

import "sync"

// Snapshot is a read-only copy of both counter maps at a point in time.
type Snapshot struct {
	LanguageUsage map[string]uint64 `json:"language_usage"`
	IntentUsage   map[string]uint64 `json:"intent_usage"`
}

// Aggregator accumulates per-language and per-intent counters. Safe for
// concurrent use.
type Aggregator struct {
	mu        sync.RWMutex
	languages map[string]uint64
	intents   map[string]uint64
}

// NewAggregator constructs an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		languages: make(map[string]uint64),
		intents:   make(map[string]uint64),
	}
}

// IncrLanguage adds one to the counter for lang.
func (a *Aggregator) IncrLanguage(lang string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.languages[lang]++
}

// IncrIntent adds one to the counter for intent.
func (a *Aggregator) IncrIntent(intent string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.intents[intent]++
}

// Snapshot returns an independent copy of both counter maps.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	snap := Snapshot{
		LanguageUsage: make(map[string]uint64, len(a.languages)),
		IntentUsage:   make(map[string]uint64, len(a.intents)),
	}
	for k, v := range a.languages {
		snap.LanguageUsage[k] = v
	}
	for k, v := range a.intents {
		snap.IntentUsage[k] = v
	}
	return snap
}
