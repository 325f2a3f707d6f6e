package protocolhost

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"

	"github.com/go-mclib/data/pkg/packets"
	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/menu"
	jp "github.com/go-mclib/protocol/java_protocol"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type player struct {
	id   uuid.UUID
	name string
}

func (p player) ID() uuid.UUID { return p.id }
func (p player) Name() string  { return p.name }

type recordingConn struct {
	mu   sync.Mutex
	sent []jp.Packet
	err  error
}

func (c *recordingConn) WritePacket(pkt jp.Packet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, pkt)
	return nil
}

func (c *recordingConn) last() jp.Packet {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		return nil
	}
	return c.sent[len(c.sent)-1]
}

func setup(t *testing.T) (*Host, *menu.Router, player, *recordingConn) {
	t.Helper()
	h := New(64)
	h.Logger = log.New(io.Discard, "", 0)
	r := menu.NewRouter(h)
	r.Logger = h.Logger
	require.NoError(t, r.Attach(h))

	p := player{id: uuid.New(), name: "Steve"}
	conn := &recordingConn{}
	h.Join(p, conn)
	return h, r, p, conn
}

func TestOpenSendsScreenAndContents(t *testing.T) {
	h, r, p, conn := setup(t)
	m := menu.MustNew(menu.Chest, "Shop", 2)
	require.NoError(t, m.SetSlot(4, item.New("diamond").SetCount(3).Build(), nil))

	_, err := m.Show(context.Background(), r, p)
	require.NoError(t, err)

	require.Len(t, conn.sent, 2)
	open, ok := conn.sent[0].(*packets.S2COpenScreen)
	require.True(t, ok)
	assert.Equal(t, ns.VarInt(1), open.WindowId)
	assert.Equal(t, ns.VarInt(MenuGeneric9x2), open.WindowType)

	content, ok := conn.sent[1].(*packets.S2CContainerSetContent)
	require.True(t, ok)
	require.Len(t, content.Slots, 18)
	assert.Equal(t, ns.VarInt(3), content.Slots[4].Count)
	assert.Equal(t, h.encoder.encode(nil), content.Slots[0])
}

func TestOpenWithoutSession(t *testing.T) {
	h, r, _, _ := setup(t)
	stranger := player{id: uuid.New(), name: "Herobrine"}

	_, err := menu.MustNew(menu.Chest, "t", 1).Show(context.Background(), r, stranger)
	assert.ErrorIs(t, err, menu.ErrOpenWindow)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, h.windows)
}

func TestOpenCancelledReleasesWindow(t *testing.T) {
	h, _, p, conn := setup(t)
	id, err := h.CreateWindow(menu.Chest, 9, "t")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, h.OpenWindow(ctx, id, p), context.Canceled)
	assert.Empty(t, h.windows)
	assert.Empty(t, conn.sent)
}

func TestDiscardOpenWindow(t *testing.T) {
	h, r, p, _ := setup(t)
	id, err := menu.MustNew(menu.Chest, "t", 1).Show(context.Background(), r, p)
	require.NoError(t, err)

	h.DiscardWindow(id)
	h.DiscardWindow(id)
	assert.Empty(t, h.windows)
	assert.Equal(t, menu.WindowID(0), h.sessions[p.ID()].open)
}

func TestOpenWriteFailure(t *testing.T) {
	h, r, p, conn := setup(t)
	conn.err = errors.New("broken pipe")

	_, err := menu.MustNew(menu.Chest, "t", 1).Show(context.Background(), r, p)
	assert.ErrorIs(t, err, menu.ErrOpenWindow)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, h.windows)
}

func TestClickRoutesAndResyncs(t *testing.T) {
	h, r, p, conn := setup(t)
	m := menu.MustNew(menu.Chest, "t", 1)
	var got *menu.ClickEvent
	require.NoError(t, m.SetSlot(2, item.New("apple").Build(), func(e *menu.ClickEvent) { got = e }))

	_, err := m.Show(context.Background(), r, p)
	require.NoError(t, err)
	sent := len(conn.sent)

	h.click(p, 1, 2, 0, true)
	require.NotNil(t, got)
	assert.Equal(t, menu.PaneMenu, got.Pane)
	assert.Equal(t, 2, got.Slot)
	assert.True(t, got.Shift)
	assert.True(t, got.Cancelled())

	require.Len(t, conn.sent, sent+1)
	_, ok := conn.last().(*packets.S2CContainerSetContent)
	assert.True(t, ok, "cancelled click must resync the window")
}

func TestClickViewerPaneNotCancelled(t *testing.T) {
	h, r, p, conn := setup(t)
	m := menu.MustNew(menu.Chest, "t", 1)
	calls := 0
	require.NoError(t, m.SetSlot(0, item.New("apple").Build(), func(*menu.ClickEvent) { calls++ }))

	_, err := m.Show(context.Background(), r, p)
	require.NoError(t, err)
	sent := len(conn.sent)

	h.click(p, 1, 9, 0, false) // first slot of the player's inventory
	h.click(p, 1, -999, 0, false)
	h.click(p, 7, 0, 0, false) // stale container id

	assert.Zero(t, calls)
	assert.Len(t, conn.sent, sent)
}

func TestCloseEvicts(t *testing.T) {
	h, r, p, _ := setup(t)
	m := menu.MustNew(menu.Chest, "t", 1)
	calls := 0
	require.NoError(t, m.SetSlot(0, item.New("apple").Build(), func(*menu.ClickEvent) { calls++ }))

	id, err := m.Show(context.Background(), r, p)
	require.NoError(t, err)

	h.close(p, 1)
	_, ok := r.Lookup(id)
	assert.False(t, ok)

	h.click(p, 1, 0, 0, false)
	assert.Zero(t, calls)

	h.close(p, 1)
}

func TestLiveUpdateSendsSetSlot(t *testing.T) {
	_, r, p, conn := setup(t)
	m := menu.MustNew(menu.Chest, "t", 1)
	_, err := m.Show(context.Background(), r, p)
	require.NoError(t, err)

	require.NoError(t, m.SetSlot(5, item.New("emerald").Build(), nil))
	set, ok := conn.last().(*packets.S2CContainerSetSlot)
	require.True(t, ok)
	assert.Equal(t, ns.Int16(5), set.Slot)
	assert.Equal(t, ns.VarInt(1), set.WindowId)
}

func TestReopenClosesPrevious(t *testing.T) {
	_, r, p, _ := setup(t)

	first, err := menu.MustNew(menu.Chest, "a", 1).Show(context.Background(), r, p)
	require.NoError(t, err)
	second, err := menu.MustNew(menu.Chest, "b", 1).Show(context.Background(), r, p)
	require.NoError(t, err)

	_, ok := r.Lookup(first)
	assert.False(t, ok)
	_, ok = r.Lookup(second)
	assert.True(t, ok)
}

func TestLeaveClosesOpenWindow(t *testing.T) {
	h, r, p, _ := setup(t)
	_, err := menu.MustNew(menu.Chest, "t", 1).Show(context.Background(), r, p)
	require.NoError(t, err)

	h.Leave(p)
	assert.Equal(t, 0, r.Len())
}

func TestContainerIDsCycle(t *testing.T) {
	h, r, p, _ := setup(t)
	for range maxContainerID {
		_, err := menu.MustNew(menu.Hopper, "t", 0).Show(context.Background(), r, p)
		require.NoError(t, err)
	}
	id, err := menu.MustNew(menu.Hopper, "t", 0).Show(context.Background(), r, p)
	require.NoError(t, err)

	h.mu.Lock()
	defer h.mu.Unlock()
	assert.Equal(t, int32(1), h.windows[id].containerID)
}

func TestMenuTypeFor(t *testing.T) {
	assert.Equal(t, MenuGeneric9x1, menuTypeFor(menu.Chest, 9))
	assert.Equal(t, MenuGeneric9x6, menuTypeFor(menu.Chest, 54))
	assert.Equal(t, MenuGeneric3x3, menuTypeFor(menu.Dropper, 9))
	assert.Equal(t, MenuHopper, menuTypeFor(menu.Hopper, 5))
	assert.Equal(t, MenuGeneric9x3, menuTypeFor(menu.Barrel, 27))
}

func TestEncoderCaches(t *testing.T) {
	e := newSlotEncoder(2)
	s := item.New("diamond").Build()
	first := e.encode(s)
	assert.Equal(t, first, e.encode(s))
	assert.Equal(t, 1, e.cache.Len())
	assert.Equal(t, ns.Slot{}, e.encode(item.New("minecraft:not_an_item").Build()))
}
