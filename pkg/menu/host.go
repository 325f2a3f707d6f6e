package menu

import (
	"context"

	"github.com/go-mclib/menu/pkg/item"
	"github.com/google/uuid"
)

// WindowID identifies one live window on the host. It is assigned by the host
// when the window is created and is distinct from the Menu it renders.
type WindowID int32

// Viewer is a connected player a menu can be shown to.
type Viewer interface {
	ID() uuid.UUID
	Name() string
}

// Host is the server capability a Menu is rendered through.
type Host interface {
	// CreateWindow allocates a window of the given shape.
	CreateWindow(kind Kind, size int, title string) (WindowID, error)
	// SetContents sets the item shown at index. A nil snapshot clears the slot.
	SetContents(id WindowID, index int, s *item.Snapshot) error
	// OpenWindow shows the window to viewer.
	OpenWindow(ctx context.Context, id WindowID, viewer Viewer) error
	// DiscardWindow releases a window that will not be shown. Discarding an
	// unknown window does nothing.
	DiscardWindow(id WindowID)
}

// Subscriber delivers click and close notifications from the host.
type Subscriber interface {
	OnClick(func(*ClickEvent))
	OnClose(func(CloseEvent))
}

// Pane tells which part of a window a click landed in.
type Pane int

const (
	// PaneOutside is a click outside any slot (e.g. dropping the cursor item).
	PaneOutside Pane = iota
	// PaneMenu is the top part of the window, owned by the menu.
	PaneMenu
	// PaneViewer is the viewer's own inventory shown under the menu.
	PaneViewer
)

func (p Pane) String() string {
	switch p {
	case PaneMenu:
		return "menu"
	case PaneViewer:
		return "viewer"
	default:
		return "outside"
	}
}

// ClickEvent is a click inside a live window.
type ClickEvent struct {
	Window WindowID
	Viewer Viewer
	Pane   Pane
	// Slot is the index within the clicked pane.
	Slot   int
	Button int
	Shift  bool

	// Menu is the menu owning Window, set by the Router before an Action runs.
	Menu *Menu

	cancelled bool
}

// Cancel suppresses the host's default pickup/move handling for the click.
func (e *ClickEvent) Cancel() { e.cancelled = true }

// Cancelled reports whether Cancel was called. Hosts check this after dispatch.
func (e *ClickEvent) Cancelled() bool { return e.cancelled }

// CloseEvent reports that a viewer closed a window.
type CloseEvent struct {
	Window WindowID
	Viewer Viewer
}

// Action runs when a viewer clicks a slot. It executes inline in the host's
// event delivery and must return promptly.
type Action func(e *ClickEvent)
