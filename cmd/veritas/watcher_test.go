package main

import (
	"context"
	"strings"
	"sync"
	"testing"
)

type fakeSink struct {
	mu     sync.Mutex
	alerts []string // "alertChannel/sourceChannel/user"
}

func (f *fakeSink) SendAlert(alertChannelID, sourceChannelID, userID string, outcome *PipelineOutcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, alertChannelID+"/"+sourceChannelID+"/"+userID)
	return nil
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.alerts)
}

func watchTestConfig() *WatchConfig {
	return &WatchConfig{
		AlertChannelIDs: []string{"alerts"},
		Interval:        "@every 1h",
		BufferLimit:     5,
		Targets: []WatchTarget{
			{ChannelID: "watched", UserIDs: []string{"suspect"}},
		},
	}
}

func TestWatcherObserveFiltersUnwatched(t *testing.T) {
	w := NewWatcher(watchTestConfig(), NewPipeline(&fakeFacts{}, nil, nil), &fakeSink{})

	w.Observe("watched", "suspect", "the moon is cheese")
	w.Observe("watched", "someone_else", "hello")
	w.Observe("other_channel", "suspect", "hello")
	w.Observe("watched", "suspect", "   ")

	if got := w.BufferedCount(); got != 1 {
		t.Errorf("buffered = %d, want 1 (only the watched user's non-empty message)", got)
	}
}

func TestWatcherBufferKeepsRecentOnly(t *testing.T) {
	cfg := watchTestConfig()
	cfg.BufferLimit = 3
	w := NewWatcher(cfg, NewPipeline(&fakeFacts{}, nil, nil), &fakeSink{})

	for _, msg := range []string{"one", "two", "three", "four", "five"} {
		w.Observe("watched", "suspect", msg)
	}

	if got := w.BufferedCount(); got != 3 {
		t.Errorf("buffered = %d, want the 3 most recent", got)
	}
}

func TestWatcherFlushAlertsOnFalseVerdict(t *testing.T) {
	facts := &fakeFacts{results: []ClaimResult{{ClaimText: "the moon is cheese", Rating: "False"}}}
	sink := &fakeSink{}
	w := NewWatcher(watchTestConfig(), NewPipeline(facts, nil, nil), sink)

	w.Observe("watched", "suspect", "the moon is made of cheese")
	w.Flush(context.Background())

	if sink.count() != 1 {
		t.Fatalf("alerts = %d, want 1", sink.count())
	}
	if sink.alerts[0] != "alerts/watched/suspect" {
		t.Errorf("alert routing = %q", sink.alerts[0])
	}
	if got := w.BufferedCount(); got != 0 {
		t.Errorf("buffer not cleared after flush: %d", got)
	}
}

func TestWatcherFlushQuietOnTrueVerdict(t *testing.T) {
	facts := &fakeFacts{results: []ClaimResult{{ClaimText: "water is wet", Rating: "True"}}}
	sink := &fakeSink{}
	w := NewWatcher(watchTestConfig(), NewPipeline(facts, nil, nil), sink)

	w.Observe("watched", "suspect", "water is wet")
	w.Flush(context.Background())

	if sink.count() != 0 {
		t.Errorf("alerts = %d, want none for a true verdict", sink.count())
	}
}

func TestWatcherFlushQuietOnNoResults(t *testing.T) {
	sink := &fakeSink{}
	w := NewWatcher(watchTestConfig(), NewPipeline(&fakeFacts{}, nil, nil), sink)

	w.Observe("watched", "suspect", "xyzzy")
	w.Flush(context.Background())

	if sink.count() != 0 {
		t.Errorf("alerts = %d, want none when nothing was found", sink.count())
	}
}

func TestWatcherFlushJoinsBufferedMessages(t *testing.T) {
	facts := &recordingFacts{}
	w := NewWatcher(watchTestConfig(), NewPipeline(facts, nil, nil), &fakeSink{})

	w.Observe("watched", "suspect", "first part")
	w.Observe("watched", "suspect", "second part")
	w.Flush(context.Background())

	if len(facts.statements) != 1 {
		t.Fatalf("pipeline ran %d times, want 1", len(facts.statements))
	}
	if facts.statements[0] != "first part second part" {
		t.Errorf("flushed statement = %q", facts.statements[0])
	}
}

func TestWatcherObserveDuringFlushIsKept(t *testing.T) {
	w := NewWatcher(watchTestConfig(), NewPipeline(&fakeFacts{}, nil, nil), &fakeSink{})

	w.Observe("watched", "suspect", "before flush")
	w.Flush(context.Background())
	w.Observe("watched", "suspect", "after snapshot")

	if got := w.BufferedCount(); got != 1 {
		t.Errorf("buffered = %d, want the post-snapshot message kept", got)
	}
}

func TestWatcherAddRemoveTargets(t *testing.T) {
	w := NewWatcher(&WatchConfig{Interval: "@every 1h", BufferLimit: 5},
		NewPipeline(&fakeFacts{}, nil, nil), &fakeSink{})

	w.AddTarget("chan1", "user1", "fallback_alerts")
	w.AddTarget("chan1", "user1", "") // duplicate is a no-op
	w.AddTarget("chan1", "user2", "")

	targets := w.TargetsSnapshot()
	if len(targets) != 1 || len(targets[0].UserIDs) != 2 {
		t.Fatalf("targets = %+v", targets)
	}

	w.Observe("chan1", "user1", "something dubious")
	if !w.RemoveTarget("chan1") {
		t.Error("RemoveTarget returned false for a watched channel")
	}
	if w.RemoveTarget("chan1") {
		t.Error("RemoveTarget returned true for an already-removed channel")
	}
	if got := w.BufferedCount(); got != 0 {
		t.Errorf("removing a target must drop its buffer, still have %d", got)
	}
}

// recordingFacts captures the statements the pipeline was run with
type recordingFacts struct {
	mu         sync.Mutex
	statements []string
}

func (r *recordingFacts) Search(ctx context.Context, statement string) ([]ClaimResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements = append(r.statements, statement)
	if strings.Contains(statement, "cheese") {
		return []ClaimResult{{ClaimText: statement, Rating: "False"}}, nil
	}
	return nil, nil
}
