// Package memhost is an in-process menu.Host. It keeps window state in memory
// and lets callers inject clicks and closes, which makes it useful for tests and
// for driving menus from a terminal preview.
package memhost

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/menu"
	"github.com/google/uuid"
)

var ErrNoWindow = errors.New("no such window")

// Player is a menu.Viewer.
type Player struct {
	id   uuid.UUID
	name string
}

// NewPlayer returns a player with a random UUID.
func NewPlayer(name string) *Player {
	return &Player{id: uuid.New(), name: name}
}

func (p *Player) ID() uuid.UUID { return p.id }

func (p *Player) Name() string { return p.name }

// Window is the host-side state of one window.
type Window struct {
	ID     menu.WindowID
	Kind   menu.Kind
	Title  string
	Slots  []*item.Snapshot
	Viewer menu.Viewer
	Open   bool
}

// Host implements menu.Host and menu.Subscriber.
type Host struct {
	mu      sync.RWMutex
	nextID  menu.WindowID
	windows map[menu.WindowID]*Window
	open    map[uuid.UUID]menu.WindowID

	onClick      []func(*menu.ClickEvent)
	onClose      []func(menu.CloseEvent)
	onSlotUpdate []func(id menu.WindowID, index int, s *item.Snapshot)

	// FailOpen, when set, is returned by OpenWindow.
	FailOpen error
}

func New() *Host {
	return &Host{
		nextID:  1,
		windows: make(map[menu.WindowID]*Window),
		open:    make(map[uuid.UUID]menu.WindowID),
	}
}

func (h *Host) CreateWindow(kind menu.Kind, size int, title string) (menu.WindowID, error) {
	if size <= 0 {
		return 0, fmt.Errorf("memhost: bad window size %d", size)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.windows[id] = &Window{ID: id, Kind: kind, Title: title, Slots: make([]*item.Snapshot, size)}
	return id, nil
}

func (h *Host) SetContents(id menu.WindowID, index int, s *item.Snapshot) error {
	h.mu.Lock()
	w, ok := h.windows[id]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrNoWindow, id)
	}
	if index < 0 || index >= len(w.Slots) {
		h.mu.Unlock()
		return fmt.Errorf("memhost: slot %d out of range for window %d", index, id)
	}
	w.Slots[index] = s
	h.mu.Unlock()

	for _, cb := range h.onSlotUpdate {
		cb(id, index, s)
	}
	return nil
}

// OpenWindow shows the window to viewer. A window the viewer already had open
// is closed first, firing close callbacks, as a real server would.
func (h *Host) OpenWindow(ctx context.Context, id menu.WindowID, viewer menu.Viewer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.FailOpen != nil {
		return h.FailOpen
	}

	h.mu.Lock()
	w, ok := h.windows[id]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrNoWindow, id)
	}
	prev, hadPrev := h.open[viewer.ID()]
	h.mu.Unlock()

	if hadPrev && prev != id {
		h.Close(prev)
	}

	h.mu.Lock()
	w.Viewer = viewer
	w.Open = true
	h.open[viewer.ID()] = id
	h.mu.Unlock()
	return nil
}

// DiscardWindow drops a window without notifying subscribers.
func (h *Host) DiscardWindow(id menu.WindowID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if w, ok := h.windows[id]; ok && w.Viewer != nil && h.open[w.Viewer.ID()] == id {
		delete(h.open, w.Viewer.ID())
	}
	delete(h.windows, id)
}

func (h *Host) OnClick(cb func(*menu.ClickEvent)) {
	h.onClick = append(h.onClick, cb)
}

func (h *Host) OnClose(cb func(menu.CloseEvent)) {
	h.onClose = append(h.onClose, cb)
}

// OnSlotUpdate registers cb to run whenever a window slot changes.
func (h *Host) OnSlotUpdate(cb func(id menu.WindowID, index int, s *item.Snapshot)) {
	h.onSlotUpdate = append(h.onSlotUpdate, cb)
}

// Click delivers a click to the subscribers and returns the event so callers
// can inspect whether it was cancelled.
func (h *Host) Click(id menu.WindowID, pane menu.Pane, slot int) *menu.ClickEvent {
	h.mu.RLock()
	var viewer menu.Viewer
	if w, ok := h.windows[id]; ok {
		viewer = w.Viewer
	}
	h.mu.RUnlock()

	e := &menu.ClickEvent{Window: id, Viewer: viewer, Pane: pane, Slot: slot}
	for _, cb := range h.onClick {
		cb(e)
	}
	return e
}

// Close closes the window and notifies subscribers. Closing a window twice
// notifies twice, matching a host that repeats close packets.
func (h *Host) Close(id menu.WindowID) {
	h.mu.Lock()
	var viewer menu.Viewer
	if w, ok := h.windows[id]; ok {
		viewer = w.Viewer
		w.Open = false
		if viewer != nil && h.open[viewer.ID()] == id {
			delete(h.open, viewer.ID())
		}
	}
	h.mu.Unlock()

	for _, cb := range h.onClose {
		cb(menu.CloseEvent{Window: id, Viewer: viewer})
	}
}

// Window returns a copy of the window state.
func (h *Host) Window(id menu.WindowID) (Window, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	w, ok := h.windows[id]
	if !ok {
		return Window{}, false
	}
	cp := *w
	cp.Slots = append([]*item.Snapshot(nil), w.Slots...)
	return cp, true
}

// Len returns the number of windows the host holds, open or not.
func (h *Host) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.windows)
}

// OpenWindowOf returns the window viewer currently has open.
func (h *Host) OpenWindowOf(viewer menu.Viewer) (menu.WindowID, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	id, ok := h.open[viewer.ID()]
	return id, ok
}
