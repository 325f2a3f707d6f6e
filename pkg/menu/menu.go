package menu

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-mclib/menu/pkg/item"
)

type slotEntry struct {
	item   *item.Snapshot
	action Action
}

// liveWindow is a window rendering a table. size is the slot count the window
// was created with, which stays fixed for its lifetime.
type liveWindow struct {
	owner *Menu
	size  int
}

// table holds slot contents and the live windows rendering them. Menus share a
// table after ReplaceWith.
type table struct {
	mu    sync.RWMutex
	slots map[int]slotEntry
	host  Host
	live  map[WindowID]liveWindow
}

func newTable() *table {
	return &table{
		slots: make(map[int]slotEntry),
		live:  make(map[WindowID]liveWindow),
	}
}

// Menu is an inventory window definition: a layout kind, a title, and per-slot
// items and click actions.
type Menu struct {
	kind  Kind
	title string
	size  int
	tbl   *table
}

// New creates an empty menu. For Chest, a size below RowWidth is taken as a row
// count, so New(Chest, "Shop", 3) is a 27 slot chest; any other Chest size must
// be a whole number of rows between 1 and MaxRows. Other kinds ignore size and
// use their fixed layout.
func New(kind Kind, title string, size int) (*Menu, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidOptions, kind)
	}
	if kind.Grid() {
		if size < RowWidth {
			size *= RowWidth
		}
		if size <= 0 || size%RowWidth != 0 || size > RowWidth*MaxRows {
			return nil, fmt.Errorf("%w: %d slots is not 1 to %d rows of %d", ErrInvalidSize, size, MaxRows, RowWidth)
		}
	} else {
		size = kind.DefaultSize()
	}
	return &Menu{kind: kind, title: title, size: size, tbl: newTable()}, nil
}

// MustNew is like New but panics on error. Use it for fixed layouts.
func MustNew(kind Kind, title string, size int) *Menu {
	m, err := New(kind, title, size)
	if err != nil {
		panic(err)
	}
	return m
}

// NewDefault creates a menu with the kind's default title and size.
func NewDefault(kind Kind) (*Menu, error) {
	return New(kind, kind.DefaultTitle(), kind.DefaultSize())
}

func (m *Menu) Kind() Kind { return m.kind }

func (m *Menu) Title() string { return m.title }

// Size returns the number of slots.
func (m *Menu) Size() int { return m.size }

// Rows returns the row count of a Chest menu, or 0 for other kinds.
func (m *Menu) Rows() int {
	if !m.kind.Grid() {
		return 0
	}
	return m.size / RowWidth
}

// Item returns the item at index, or nil.
func (m *Menu) Item(index int) *item.Snapshot {
	m.tbl.mu.RLock()
	defer m.tbl.mu.RUnlock()
	return m.tbl.slots[index].item
}

// HasAction reports whether index has a click action.
func (m *Menu) HasAction(index int) bool {
	return m.action(index) != nil
}

func (m *Menu) action(index int) Action {
	m.tbl.mu.RLock()
	defer m.tbl.mu.RUnlock()
	return m.tbl.slots[index].action
}

// SetSlot puts s at index with an optional click action, replacing whatever was
// there. A nil action removes any previous one. A nil snapshot empties the slot
// and drops its action.
// If the menu is being shown, open windows are updated immediately.
func (m *Menu) SetSlot(index int, s *item.Snapshot, action Action) error {
	if index < 0 || index >= m.size {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrSlotOutOfRange, index, m.size)
	}

	m.tbl.mu.Lock()
	if s == nil {
		delete(m.tbl.slots, index)
	} else {
		m.tbl.slots[index] = slotEntry{item: s, action: action}
	}
	host, windows := m.tbl.host, m.liveLocked(index)
	m.tbl.mu.Unlock()

	for _, id := range windows {
		if err := host.SetContents(id, index, s); err != nil {
			return fmt.Errorf("update window %d slot %d: %w", id, index, err)
		}
	}
	return nil
}

// SetItem is SetSlot with a builder, which is built first.
func (m *Menu) SetItem(index int, b *item.Builder, action Action) error {
	return m.SetSlot(index, b.Build(), action)
}

// S is a short alias for SetItem.
func (m *Menu) S(index int, b *item.Builder, action Action) error {
	return m.SetItem(index, b, action)
}

// SetSlots applies SetSlot to every index. It stops at the first error.
func (m *Menu) SetSlots(indices []int, s *item.Snapshot, action Action) error {
	for _, i := range indices {
		if err := m.SetSlot(i, s, action); err != nil {
			return err
		}
	}
	return nil
}

// Corners returns the slots of the four 2x2 corner blocks of a Chest menu:
// the first two and last two columns of the first two and last two rows.
// Other kinds have no corners.
func (m *Menu) Corners() []int {
	if !m.kind.Grid() {
		return nil
	}
	rows := m.size / RowWidth
	var out []int
	for i := range m.size {
		row, col := i/RowWidth, i%RowWidth
		if (row < 2 || row >= rows-2) && (col < 2 || col >= RowWidth-2) {
			out = append(out, i)
		}
	}
	return out
}

// Borders returns the outer ring of a Chest menu: the first and last rows and
// the first and last column of each row. Menus under three rows have no inside,
// so every slot is returned. Other kinds have no border.
func (m *Menu) Borders() []int {
	if !m.kind.Grid() {
		return nil
	}
	size := m.size
	var out []int
	for i := range size {
		if size < 3*RowWidth || i < RowWidth || i%RowWidth == 0 ||
			(i-(RowWidth-1))%RowWidth == 0 || i > size-RowWidth {
			out = append(out, i)
		}
	}
	return out
}

// SetCorners fills Corners with s.
func (m *Menu) SetCorners(s *item.Snapshot, action Action) error {
	return m.SetSlots(m.Corners(), s, action)
}

// SetBorders fills Borders with s.
func (m *Menu) SetBorders(s *item.Snapshot, action Action) error {
	return m.SetSlots(m.Borders(), s, action)
}

// ReplaceWith makes m use other's layout and slot table. The table is shared,
// not copied: later changes through either menu are seen by both.
// Windows already showing m are re-rendered from the new table and follow it
// from then on. They keep the kind, size and title they were opened with;
// slots beyond their size are not shown.
func (m *Menu) ReplaceWith(other *Menu) *Menu {
	old := m.tbl
	m.kind = other.kind
	m.title = other.title
	m.size = other.size
	m.tbl = other.tbl
	if old == m.tbl {
		return m
	}

	old.mu.Lock()
	host := old.host
	moved := make(map[WindowID]liveWindow)
	for id, w := range old.live {
		if w.owner == m {
			moved[id] = w
			delete(old.live, id)
		}
	}
	old.mu.Unlock()
	if len(moved) == 0 {
		return m
	}

	m.tbl.mu.Lock()
	m.tbl.host = host
	for id, w := range moved {
		m.tbl.live[id] = w
	}
	m.tbl.mu.Unlock()

	items := m.contents()
	for id, w := range moved {
		for i := range w.size {
			// a window the host already dropped stops at the first error
			if err := host.SetContents(id, i, items[i]); err != nil {
				break
			}
		}
	}
	return m
}

// Show opens the menu for viewer through r's host and registers the window
// with r so clicks reach the slot actions. Nothing is registered on failure.
func (m *Menu) Show(ctx context.Context, r *Router, viewer Viewer) (WindowID, error) {
	return r.Open(ctx, m, viewer)
}

// contents returns the filled slots. Caller must not hold tbl.mu.
func (m *Menu) contents() map[int]*item.Snapshot {
	m.tbl.mu.RLock()
	defer m.tbl.mu.RUnlock()
	out := make(map[int]*item.Snapshot, len(m.tbl.slots))
	for i, e := range m.tbl.slots {
		if e.item != nil {
			out[i] = e.item
		}
	}
	return out
}

// liveLocked returns the open windows large enough to show index, or all of
// them for a negative index. Must be called under tbl.mu.
func (m *Menu) liveLocked(index int) []WindowID {
	if len(m.tbl.live) == 0 {
		return nil
	}
	out := make([]WindowID, 0, len(m.tbl.live))
	for id, w := range m.tbl.live {
		if index < w.size {
			out = append(out, id)
		}
	}
	return out
}

func (m *Menu) attach(host Host, id WindowID) {
	m.tbl.mu.Lock()
	m.tbl.host = host
	m.tbl.live[id] = liveWindow{owner: m, size: m.size}
	m.tbl.mu.Unlock()
}

func (m *Menu) detach(id WindowID) {
	m.tbl.mu.Lock()
	delete(m.tbl.live, id)
	m.tbl.mu.Unlock()
}

// Windows returns the IDs of windows currently showing the menu.
func (m *Menu) Windows() []WindowID {
	m.tbl.mu.RLock()
	defer m.tbl.mu.RUnlock()
	return m.liveLocked(-1)
}
