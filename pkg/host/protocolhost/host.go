// Package protocolhost renders menus to Minecraft Java Edition clients. It
// writes container packets to each player's connection and turns the
// client's container click and close packets into menu events.
package protocolhost

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/go-mclib/data/pkg/data/packet_ids"
	"github.com/go-mclib/data/pkg/packets"
	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/menu"
	jp "github.com/go-mclib/protocol/java_protocol"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
	"github.com/google/uuid"
)

var (
	ErrNoSession = errors.New("player has no session")
	ErrNoWindow  = errors.New("no such window")
)

// Conn is the outgoing side of a player connection. *jp.TCPClient satisfies it.
type Conn interface {
	WritePacket(pkt jp.Packet) error
}

type session struct {
	viewer        menu.Viewer
	conn          Conn
	nextContainer int32
	open          menu.WindowID // 0 when nothing is open
}

type window struct {
	kind        menu.Kind
	title       string
	contents    []*item.Snapshot
	stateID     int32
	containerID int32
	session     *session // nil until opened
}

// Host implements menu.Host and menu.Subscriber over protocol connections.
type Host struct {
	Logger  *log.Logger
	Verbose bool

	mu       sync.Mutex
	nextID   menu.WindowID
	windows  map[menu.WindowID]*window
	sessions map[uuid.UUID]*session
	encoder  *slotEncoder

	onClick []func(*menu.ClickEvent)
	onClose []func(menu.CloseEvent)
}

// New creates a host. cacheSize bounds the number of encoded slots kept.
func New(cacheSize int) *Host {
	return &Host{
		Logger:   log.New(os.Stdout, "", log.LstdFlags),
		nextID:   1,
		windows:  make(map[menu.WindowID]*window),
		sessions: make(map[uuid.UUID]*session),
		encoder:  newSlotEncoder(cacheSize),
	}
}

// Join registers a player's connection. Menus can only be shown to joined players.
func (h *Host) Join(viewer menu.Viewer, conn Conn) {
	h.mu.Lock()
	h.sessions[viewer.ID()] = &session{viewer: viewer, conn: conn}
	h.mu.Unlock()
}

// Leave drops a player's session. A window the player had open is reported
// closed.
func (h *Host) Leave(viewer menu.Viewer) {
	h.mu.Lock()
	s, ok := h.sessions[viewer.ID()]
	delete(h.sessions, viewer.ID())
	var open menu.WindowID
	if ok {
		open = s.open
		if open != 0 {
			delete(h.windows, open)
		}
	}
	h.mu.Unlock()

	if open != 0 {
		h.fireClose(menu.CloseEvent{Window: open, Viewer: viewer})
	}
}

func (h *Host) CreateWindow(kind menu.Kind, size int, title string) (menu.WindowID, error) {
	if size <= 0 {
		return 0, fmt.Errorf("protocolhost: bad window size %d", size)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.windows[id] = &window{kind: kind, title: title, contents: make([]*item.Snapshot, size)}
	return id, nil
}

func (h *Host) SetContents(id menu.WindowID, index int, s *item.Snapshot) error {
	h.mu.Lock()
	w, ok := h.windows[id]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrNoWindow, id)
	}
	if index < 0 || index >= len(w.contents) {
		h.mu.Unlock()
		return fmt.Errorf("protocolhost: slot %d out of range for window %d", index, id)
	}
	w.contents[index] = s
	if w.session == nil {
		h.mu.Unlock()
		return nil
	}
	w.stateID++
	pkt := &packets.S2CContainerSetSlot{
		WindowId: ns.VarInt(w.containerID),
		StateId:  ns.VarInt(w.stateID),
		Slot:     ns.Int16(index),
		SlotData: h.encoder.encode(s),
	}
	conn := w.session.conn
	h.mu.Unlock()

	return conn.WritePacket(pkt)
}

func (h *Host) OpenWindow(ctx context.Context, id menu.WindowID, viewer menu.Viewer) error {
	if err := ctx.Err(); err != nil {
		h.DiscardWindow(id)
		return err
	}

	h.mu.Lock()
	w, ok := h.windows[id]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrNoWindow, id)
	}
	s, ok := h.sessions[viewer.ID()]
	if !ok {
		delete(h.windows, id)
		h.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNoSession, viewer.Name())
	}
	prev := s.open

	// container IDs cycle through 1..100 like the vanilla server
	s.nextContainer = s.nextContainer%maxContainerID + 1
	w.containerID = s.nextContainer
	w.session = s
	w.stateID++
	s.open = id

	open := &packets.S2COpenScreen{
		WindowId:    ns.VarInt(w.containerID),
		WindowType:  ns.VarInt(menuTypeFor(w.kind, len(w.contents))),
		WindowTitle: ns.TextComponent{Text: w.title},
	}
	content := h.contentPacket(w)
	if prev != 0 && prev != id {
		delete(h.windows, prev)
	}
	h.mu.Unlock()

	// the client drops its previous screen when a new one opens
	if prev != 0 && prev != id {
		h.fireClose(menu.CloseEvent{Window: prev, Viewer: viewer})
	}

	if err := s.conn.WritePacket(open); err != nil {
		h.forget(id, s)
		return fmt.Errorf("send open screen: %w", err)
	}
	if err := s.conn.WritePacket(content); err != nil {
		h.forget(id, s)
		return fmt.Errorf("send contents: %w", err)
	}
	if h.Verbose {
		h.Logger.Printf("protocolhost: opened window %d (container %d) for %s", id, w.containerID, viewer.Name())
	}
	return nil
}

// DiscardWindow drops a window without notifying subscribers. If a player has
// it open the client keeps its screen until the next open or close.
func (h *Host) DiscardWindow(id menu.WindowID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.windows[id]
	if !ok {
		return
	}
	if w.session != nil && w.session.open == id {
		w.session.open = 0
	}
	delete(h.windows, id)
}

// forget undoes a failed open.
func (h *Host) forget(id menu.WindowID, s *session) {
	h.mu.Lock()
	if s.open == id {
		s.open = 0
	}
	delete(h.windows, id)
	h.mu.Unlock()
}

// contentPacket builds a full content update. Must be called under h.mu.
func (h *Host) contentPacket(w *window) *packets.S2CContainerSetContent {
	return &packets.S2CContainerSetContent{
		WindowId:    ns.VarInt(w.containerID),
		StateId:     ns.VarInt(w.stateID),
		Slots:       h.encoder.encodeAll(w.contents),
		CarriedItem: ns.Slot{},
	}
}

func (h *Host) OnClick(cb func(*menu.ClickEvent)) {
	h.onClick = append(h.onClick, cb)
}

func (h *Host) OnClose(cb func(menu.CloseEvent)) {
	h.onClose = append(h.onClose, cb)
}

func (h *Host) fireClose(e menu.CloseEvent) {
	for _, cb := range h.onClose {
		cb(e)
	}
}

// HandlePacket processes a serverbound play packet from viewer. Packets other
// than container click and close are ignored.
func (h *Host) HandlePacket(viewer menu.Viewer, pkt *jp.WirePacket) {
	switch pkt.PacketID {
	case packet_ids.C2SContainerClickID:
		h.handleContainerClick(viewer, pkt)
	case packet_ids.C2SContainerCloseID:
		h.handleContainerClose(viewer, pkt)
	}
}

// lookup finds the window a viewer's container ID refers to. Must be called
// under h.mu.
func (h *Host) lookup(viewer menu.Viewer, containerID int32) (menu.WindowID, *window, *session) {
	s, ok := h.sessions[viewer.ID()]
	if !ok || s.open == 0 {
		return 0, nil, nil
	}
	w, ok := h.windows[s.open]
	if !ok || w.containerID != containerID {
		return 0, nil, nil
	}
	return s.open, w, s
}

func (h *Host) handleContainerClick(viewer menu.Viewer, pkt *jp.WirePacket) {
	var d packets.C2SContainerClick
	if err := pkt.ReadInto(&d); err != nil {
		h.Logger.Println("protocolhost: failed to parse container click:", err)
		return
	}

	h.click(viewer, int32(d.WindowId), int(d.Slot), int(d.Button), d.Mode == 1) // 1 = QUICK_MOVE
}

// click dispatches a click on the viewer's open container.
func (h *Host) click(viewer menu.Viewer, containerID int32, slot, button int, shift bool) {
	h.mu.Lock()
	id, w, _ := h.lookup(viewer, containerID)
	if w == nil {
		h.mu.Unlock()
		return
	}
	size := len(w.contents)
	h.mu.Unlock()

	e := &menu.ClickEvent{Window: id, Viewer: viewer, Button: button, Shift: shift}
	switch {
	case slot < 0:
		e.Pane, e.Slot = menu.PaneOutside, slot
	case slot < size:
		e.Pane, e.Slot = menu.PaneMenu, slot
	default:
		e.Pane, e.Slot = menu.PaneViewer, slot-size
	}

	for _, cb := range h.onClick {
		cb(e)
	}
	if e.Cancelled() {
		h.resync(id)
	}
}

// resync resends the window contents and clears the cursor, undoing the
// client's own prediction of a cancelled click.
func (h *Host) resync(id menu.WindowID) {
	h.mu.Lock()
	w, ok := h.windows[id]
	if !ok || w.session == nil {
		h.mu.Unlock()
		return
	}
	w.stateID++
	pkt := h.contentPacket(w)
	conn := w.session.conn
	h.mu.Unlock()

	if err := conn.WritePacket(pkt); err != nil {
		h.Logger.Println("protocolhost: failed to resync window:", err)
	}
}

func (h *Host) handleContainerClose(viewer menu.Viewer, pkt *jp.WirePacket) {
	var d packets.C2SContainerClose
	if err := pkt.ReadInto(&d); err != nil {
		h.Logger.Println("protocolhost: failed to parse container close:", err)
		return
	}

	h.close(viewer, int32(d.WindowId))
}

func (h *Host) close(viewer menu.Viewer, containerID int32) {
	h.mu.Lock()
	id, w, s := h.lookup(viewer, containerID)
	if w == nil {
		h.mu.Unlock()
		return
	}
	s.open = 0
	delete(h.windows, id)
	h.mu.Unlock()

	h.fireClose(menu.CloseEvent{Window: id, Viewer: viewer})
}

// Contents returns a copy of a window's current contents.
func (h *Host) Contents(id menu.WindowID) ([]*item.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.windows[id]
	if !ok {
		return nil, false
	}
	return append([]*item.Snapshot(nil), w.contents...), true
}
