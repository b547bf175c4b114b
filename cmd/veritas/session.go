// cmd/veritas/session.go
package main

import (
	"sync"
	"time"
)

// NavAction is a navigation request on a paginated session
type NavAction int

const (
	NavPrev NavAction = iota
	NavNext
	NavFirst
)

// navEvent is one user click delivered to a session's owner goroutine
type navEvent struct {
	action NavAction
	userID string
}

// Session binds one in-flight fact check to one rendered message. All
// mutation happens on the session's owner goroutine; clicks arrive as
// events on a channel.
type Session struct {
	ChannelID string
	MessageID string
	InvokerID string
	Statement string
	Kind      OutcomeKind

	pages  []Page
	events chan navEvent

	mu    sync.Mutex
	index int
}

// Index returns the current page index
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// CurrentPage returns the page at the current index
func (s *Session) CurrentPage() Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages[s.index]
}

// PageCount returns the number of pages in the session
func (s *Session) PageCount() int {
	return len(s.pages)
}

// apply performs one navigation step with saturating bounds and reports
// whether the index changed
func (s *Session) apply(action NavAction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.index
	switch action {
	case NavPrev:
		next = clampIndex(s.index-1, len(s.pages))
	case NavNext:
		next = clampIndex(s.index+1, len(s.pages))
	case NavFirst:
		next = 0
	}

	if next == s.index {
		return false
	}
	s.index = next
	return true
}

// SessionRenderer updates the rendered message for a session. The Discord
// implementation lives in formatter.go; tests substitute a fake.
type SessionRenderer interface {
	RenderPage(sess *Session, page Page) error
	DisableControls(sess *Session, page Page) error
}

// SessionManager owns all live pagination sessions, keyed by message ID.
// Each session gets an owner goroutine that consumes navigation events
// until the absolute deadline elapses; the deadline is fixed at creation
// and is not extended by activity.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	renderer SessionRenderer
	ttl      time.Duration
	restrict bool
}

// NewSessionManager creates a session manager. When restrict is set, only
// the original invoker may navigate a session's pages.
func NewSessionManager(renderer SessionRenderer, ttl time.Duration, restrict bool) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		renderer: renderer,
		ttl:      ttl,
		restrict: restrict,
	}
}

// Open registers a new session for a rendered message and starts its
// owner goroutine
func (sm *SessionManager) Open(channelID, messageID, invokerID, statement string, kind OutcomeKind, pages []Page) *Session {
	sess := &Session{
		ChannelID: channelID,
		MessageID: messageID,
		InvokerID: invokerID,
		Statement: statement,
		Kind:      kind,
		pages:     pages,
		events:    make(chan navEvent, 8),
	}

	sm.mu.Lock()
	sm.sessions[messageID] = sess
	sm.mu.Unlock()

	go sm.run(sess)
	return sess
}

// Dispatch routes a click to the owning session. It reports false when the
// session is unknown or expired, or when navigation is restricted to the
// invoker and the click came from someone else.
func (sm *SessionManager) Dispatch(messageID, userID string, action NavAction) bool {
	sm.mu.Lock()
	sess, ok := sm.sessions[messageID]
	sm.mu.Unlock()
	if !ok {
		return false
	}

	if sm.restrict && userID != sess.InvokerID {
		return false
	}

	// Never block the gateway handler; a full queue drops the click and
	// the next render catches up.
	select {
	case sess.events <- navEvent{action: action, userID: userID}:
	default:
	}
	return true
}

// Count returns the number of live sessions
func (sm *SessionManager) Count() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.sessions)
}

// run consumes navigation events for one session until its deadline
func (sm *SessionManager) run(sess *Session) {
	timer := time.NewTimer(sm.ttl)
	defer timer.Stop()

	for {
		select {
		case ev := <-sess.events:
			// Re-render even on a clamped no-op so button disabled-state
			// stays in sync with the index.
			sess.apply(ev.action)
			if err := sm.renderer.RenderPage(sess, sess.CurrentPage()); err != nil {
				Logger().Error("Failed to render page for message %s: %v", sess.MessageID, err)
			}
		case <-timer.C:
			sm.expire(sess)
			return
		}
	}
}

// expire removes the session and disables its controls in place.
// Disabling already-disabled controls is a harmless edit, so the
// transition is idempotent against racing clicks.
func (sm *SessionManager) expire(sess *Session) {
	sm.mu.Lock()
	delete(sm.sessions, sess.MessageID)
	sm.mu.Unlock()

	if err := sm.renderer.DisableControls(sess, sess.CurrentPage()); err != nil {
		Logger().Warning("Failed to disable controls for message %s: %v", sess.MessageID, err)
	}
}
