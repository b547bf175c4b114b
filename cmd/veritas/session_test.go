package main

import (
	"sync"
	"testing"
	"time"
)

// fakeRenderer records render calls and signals them to the test goroutine
type fakeRenderer struct {
	mu       sync.Mutex
	rendered []int
	disabled bool

	renderCh  chan int
	disableCh chan struct{}
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		renderCh:  make(chan int, 32),
		disableCh: make(chan struct{}, 1),
	}
}

func (f *fakeRenderer) RenderPage(sess *Session, page Page) error {
	f.mu.Lock()
	f.rendered = append(f.rendered, page.Index)
	f.mu.Unlock()
	f.renderCh <- page.Index
	return nil
}

func (f *fakeRenderer) DisableControls(sess *Session, page Page) error {
	f.mu.Lock()
	f.disabled = true
	f.mu.Unlock()
	select {
	case f.disableCh <- struct{}{}:
	default:
	}
	return nil
}

func (f *fakeRenderer) waitRender(t *testing.T) int {
	t.Helper()
	select {
	case idx := <-f.renderCh:
		return idx
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a render")
		return -1
	}
}

func threePages() []Page {
	pages := make([]Page, 3)
	for i := range pages {
		pages[i] = Page{Content: "page", Index: i, Total: 3}
	}
	return pages
}

func TestSessionNavigationClamps(t *testing.T) {
	renderer := newFakeRenderer()
	manager := NewSessionManager(renderer, time.Minute, false)

	sess := manager.Open("chan1", "msg1", "user1", "stmt", OutcomeStructured, threePages())

	// Prev at index 0 clamps silently and still re-renders
	if !manager.Dispatch("msg1", "user1", NavPrev) {
		t.Fatal("dispatch to a live session returned false")
	}
	if idx := renderer.waitRender(t); idx != 0 {
		t.Errorf("after prev at start, rendered index %d, want 0", idx)
	}

	// Three nexts land on the last page and stay there
	for i := 0; i < 3; i++ {
		manager.Dispatch("msg1", "user1", NavNext)
		renderer.waitRender(t)
	}
	if idx := sess.Index(); idx != 2 {
		t.Errorf("after three nexts, index = %d, want 2 (clamped)", idx)
	}

	manager.Dispatch("msg1", "user1", NavFirst)
	if idx := renderer.waitRender(t); idx != 0 {
		t.Errorf("after first, rendered index %d, want 0", idx)
	}
}

func TestSessionExpiryDisablesControls(t *testing.T) {
	renderer := newFakeRenderer()
	manager := NewSessionManager(renderer, 30*time.Millisecond, false)

	sess := manager.Open("chan1", "msg1", "user1", "stmt", OutcomeStructured, threePages())

	select {
	case <-renderer.disableCh:
	case <-time.After(2 * time.Second):
		t.Fatal("controls were never disabled after the deadline")
	}

	// Navigation after expiry has no observable effect
	if manager.Dispatch("msg1", "user1", NavNext) {
		t.Error("dispatch to an expired session returned true")
	}
	if idx := sess.Index(); idx != 0 {
		t.Errorf("index mutated after expiry: %d", idx)
	}
	if manager.Count() != 0 {
		t.Errorf("expired session still registered (count=%d)", manager.Count())
	}
}

func TestSessionDeadlineIsAbsolute(t *testing.T) {
	renderer := newFakeRenderer()
	manager := NewSessionManager(renderer, 60*time.Millisecond, false)

	manager.Open("chan1", "msg1", "user1", "stmt", OutcomeStructured, threePages())

	// Keep clicking; activity must not extend the deadline
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-renderer.disableCh:
			return
		case <-deadline:
			t.Fatal("session never expired despite the absolute deadline")
		default:
			manager.Dispatch("msg1", "user1", NavNext)
			time.Sleep(5 * time.Millisecond)
		}
	}
}

func TestSessionRestrictedToInvoker(t *testing.T) {
	renderer := newFakeRenderer()
	manager := NewSessionManager(renderer, time.Minute, true)

	manager.Open("chan1", "msg1", "inviter", "stmt", OutcomeStructured, threePages())

	if manager.Dispatch("msg1", "someone_else", NavNext) {
		t.Error("restricted session accepted navigation from a non-invoker")
	}
	if !manager.Dispatch("msg1", "inviter", NavNext) {
		t.Error("restricted session rejected the invoker")
	}
}

func TestSessionUnknownMessage(t *testing.T) {
	manager := NewSessionManager(newFakeRenderer(), time.Minute, false)
	if manager.Dispatch("no_such_message", "user1", NavNext) {
		t.Error("dispatch to an unknown message returned true")
	}
}
