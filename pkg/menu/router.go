package menu

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
)

// Router maps live windows to the menus they render and dispatches host click
// and close notifications to slot actions. Create one per process with
// NewRouter and Attach it to the host's event stream before showing menus.
type Router struct {
	Logger  *log.Logger
	Metrics *Metrics
	Verbose bool

	host Host

	mu       sync.RWMutex
	windows  map[WindowID]*Menu
	attached bool
}

// NewRouter creates a router rendering through host.
func NewRouter(host Host) *Router {
	return &Router{
		Logger:  log.New(os.Stdout, "", log.LstdFlags),
		host:    host,
		windows: make(map[WindowID]*Menu),
	}
}

// Attach subscribes the router to sub's click and close notifications. It may
// only be called once.
func (r *Router) Attach(sub Subscriber) error {
	r.mu.Lock()
	if r.attached {
		r.mu.Unlock()
		return ErrAlreadyAttached
	}
	r.attached = true
	r.mu.Unlock()

	sub.OnClick(r.HandleClick)
	sub.OnClose(r.HandleClose)
	return nil
}

// Host returns the host the router renders through.
func (r *Router) Host() Host { return r.host }

// Open creates a window for m on the host, fills it, opens it for viewer and
// registers it. If any host call fails the window is discarded, nothing is
// registered and the error wraps ErrOpenWindow.
func (r *Router) Open(ctx context.Context, m *Menu, viewer Viewer) (WindowID, error) {
	id, err := r.host.CreateWindow(m.kind, m.size, m.title)
	if err != nil {
		r.Metrics.showFailed()
		return 0, fmt.Errorf("%w: create: %w", ErrOpenWindow, err)
	}
	fail := func(err error) (WindowID, error) {
		r.host.DiscardWindow(id)
		r.Metrics.showFailed()
		return 0, err
	}
	for index, s := range m.contents() {
		if err := r.host.SetContents(id, index, s); err != nil {
			return fail(fmt.Errorf("%w: slot %d: %w", ErrOpenWindow, index, err))
		}
	}
	if err := r.host.OpenWindow(ctx, id, viewer); err != nil {
		return fail(fmt.Errorf("%w: open for %s: %w", ErrOpenWindow, viewer.Name(), err))
	}

	r.Register(id, m)
	if r.Verbose {
		r.Logger.Printf("menu: opened %q (%s, %d slots) as window %d for %s", m.title, m.kind, m.size, id, viewer.Name())
	}
	return id, nil
}

// Register binds window id to m, replacing any previous binding.
func (r *Router) Register(id WindowID, m *Menu) {
	r.mu.Lock()
	prev, replaced := r.windows[id]
	r.windows[id] = m
	r.mu.Unlock()

	if replaced && prev != m {
		prev.detach(id)
	}
	m.attach(r.host, id)
	if !replaced {
		r.Metrics.opened()
	}
}

// Lookup returns the menu bound to id.
func (r *Router) Lookup(id WindowID) (*Menu, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.windows[id]
	return m, ok
}

// Len returns the number of registered windows.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.windows)
}

// HandleClick dispatches a click. Clicks on unregistered windows or outside the
// menu's own pane are left alone. Otherwise the click is cancelled and the
// slot's action, if any, runs before HandleClick returns.
func (r *Router) HandleClick(e *ClickEvent) {
	m, ok := r.Lookup(e.Window)
	if !ok || e.Pane != PaneMenu {
		r.Metrics.click(clickIgnored)
		return
	}

	e.Cancel()
	e.Menu = m

	action := m.action(e.Slot)
	if action == nil {
		r.Metrics.click(clickCancelled)
		return
	}
	if r.Verbose {
		r.Logger.Printf("menu: window %d slot %d clicked", e.Window, e.Slot)
	}
	r.Metrics.click(clickDispatched)
	action(e)
}

// HandleClose forgets the window. Closing an unknown window does nothing.
func (r *Router) HandleClose(e CloseEvent) {
	r.mu.Lock()
	m, ok := r.windows[e.Window]
	delete(r.windows, e.Window)
	r.mu.Unlock()

	if !ok {
		return
	}
	m.detach(e.Window)
	r.Metrics.closed()
	if r.Verbose {
		r.Logger.Printf("menu: window %d closed", e.Window)
	}
}
