// cmd/veritas/watcher.go
package main

import (
	"context"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
)

// AlertSink delivers a watch alert to a notification channel
type AlertSink interface {
	SendAlert(alertChannelID string, sourceChannelID string, userID string, outcome *PipelineOutcome) error
}

// Watcher buffers messages from monitored users and periodically runs the
// buffered content through the fact-check pipeline, alerting when the
// verdict comes back False or Misleading
type Watcher struct {
	mu      sync.Mutex
	buffers map[string]map[string][]string // channelID -> userID -> texts

	config   *WatchConfig
	pipeline *Pipeline
	sink     AlertSink
	cron     *cron.Cron
}

// NewWatcher creates a watch-and-alert batcher
func NewWatcher(config *WatchConfig, pipeline *Pipeline, sink AlertSink) *Watcher {
	return &Watcher{
		buffers:  make(map[string]map[string][]string),
		config:   config,
		pipeline: pipeline,
		sink:     sink,
	}
}

// Start schedules the periodic flush
func (w *Watcher) Start() error {
	w.cron = cron.New()
	_, err := w.cron.AddFunc(w.config.Interval, func() {
		w.Flush(context.Background())
	})
	if err != nil {
		return NewError(ErrorTypeConfig, ErrCodeConfigLoad, "invalid watch interval", err)
	}
	w.cron.Start()
	Logger().Info("Watcher started with interval %q over %d targets",
		w.config.Interval, len(w.config.Targets))
	return nil
}

// Stop halts the flush schedule
func (w *Watcher) Stop() {
	if w.cron != nil {
		w.cron.Stop()
	}
}

// Observe buffers a message from a monitored user. Messages from
// unmonitored channels or users are ignored. The buffer keeps only the
// most recent entries per user.
func (w *Watcher) Observe(channelID, userID, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.config.WatchesUser(channelID, userID) {
		return
	}

	users, ok := w.buffers[channelID]
	if !ok {
		users = make(map[string][]string)
		w.buffers[channelID] = users
	}

	buf := append(users[userID], text)
	if len(buf) > w.config.BufferLimit {
		buf = buf[len(buf)-w.config.BufferLimit:]
	}
	users[userID] = buf
}

// AddTarget starts monitoring a user in a channel. The alert channel list
// gains a default destination on first use so alerts have somewhere to go.
func (w *Watcher) AddTarget(channelID, userID, defaultAlertChannelID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.config.AlertChannelIDs) == 0 && defaultAlertChannelID != "" {
		w.config.AlertChannelIDs = []string{defaultAlertChannelID}
	}

	for i, t := range w.config.Targets {
		if t.ChannelID != channelID {
			continue
		}
		for _, id := range t.UserIDs {
			if id == userID {
				return
			}
		}
		w.config.Targets[i].UserIDs = append(t.UserIDs, userID)
		return
	}

	w.config.Targets = append(w.config.Targets, WatchTarget{
		ChannelID: channelID,
		UserIDs:   []string{userID},
	})
}

// RemoveTarget stops monitoring a channel and drops its buffered messages.
// It reports whether the channel was being watched.
func (w *Watcher) RemoveTarget(channelID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	kept := w.config.Targets[:0]
	removed := false
	for _, t := range w.config.Targets {
		if t.ChannelID == channelID {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	w.config.Targets = kept
	delete(w.buffers, channelID)
	return removed
}

// TargetsSnapshot returns a copy of the current watch targets
func (w *Watcher) TargetsSnapshot() []WatchTarget {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]WatchTarget, len(w.config.Targets))
	for i, t := range w.config.Targets {
		out[i] = WatchTarget{
			ChannelID: t.ChannelID,
			UserIDs:   append([]string(nil), t.UserIDs...),
		}
	}
	return out
}

// BufferedCount returns the number of buffered messages across all users
func (w *Watcher) BufferedCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	count := 0
	for _, users := range w.buffers {
		for _, buf := range users {
			count += len(buf)
		}
	}
	return count
}

// Flush runs the pipeline over every buffered user's recent messages and
// emits alerts for negative verdicts. The buffer map is swapped out before
// processing, so a message arriving mid-flush lands in the fresh map
// rather than being lost.
func (w *Watcher) Flush(ctx context.Context) {
	w.mu.Lock()
	snapshot := w.buffers
	w.buffers = make(map[string]map[string][]string)
	w.mu.Unlock()

	for channelID, users := range snapshot {
		for userID, texts := range users {
			if len(texts) == 0 {
				continue
			}
			w.checkBuffered(ctx, channelID, userID, texts)
		}
	}
}

// checkBuffered fact-checks one user's buffered messages as a single
// statement and alerts on a False or Misleading verdict
func (w *Watcher) checkBuffered(ctx context.Context, channelID, userID string, texts []string) {
	statement := strings.Join(texts, " ")

	outcome := w.pipeline.Run(ctx, statement)
	switch outcome.Kind {
	case OutcomeStructured, OutcomeFreeform:
	default:
		return
	}

	verdict := outcome.Verdict()
	if verdict != VerdictFalse && verdict != VerdictMisleading {
		return
	}

	Logger().Info("Watch alert: user %s in channel %s flagged %s", userID, channelID, verdict)
	for _, alertChannel := range w.config.AlertChannelIDs {
		// Fire and forget; a failed delivery is logged, not retried.
		if err := w.sink.SendAlert(alertChannel, channelID, userID, outcome); err != nil {
			Logger().Error("Failed to deliver alert to channel %s: %v", alertChannel, err)
		}
	}
}
