package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-mclib/menu/pkg/host/memhost"
	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/menu"
)

const cellWidth = 12

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241"))

	selectedStyle = cellStyle.
			BorderForeground(lipgloss.Color("205"))

	glowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Click, Close, Quit    key.Binding
}

var keys = keyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k")),
	Down:  key.NewBinding(key.WithKeys("down", "j")),
	Left:  key.NewBinding(key.WithKeys("left", "h")),
	Right: key.NewBinding(key.WithKeys("right", "l")),
	Click: key.NewBinding(key.WithKeys("enter", " ")),
	Close: key.NewBinding(key.WithKeys("e")),
	Quit:  key.NewBinding(key.WithKeys("ctrl+c", "esc", "q")),
}

// TUI renders the window a viewer has open on a memhost.Host and lets the
// keyboard click its slots.
type TUI struct {
	host        *memhost.Host
	viewer      menu.Viewer
	viewport    viewport.Model
	logs        []string
	logMutex    sync.Mutex
	maxLogLines int
	ready       bool
	cursor      int
	width       int
	height      int
}

// New creates a TUI for viewer.
func New(host *memhost.Host, viewer menu.Viewer, maxLogLines int) *TUI {
	return &TUI{
		host:        host,
		viewer:      viewer,
		logs:        []string{},
		maxLogLines: maxLogLines,
	}
}

func (t *TUI) Init() tea.Cmd { return nil }

func (t *TUI) window() (memhost.Window, bool) {
	id, ok := t.host.OpenWindowOf(t.viewer)
	if !ok {
		return memhost.Window{}, false
	}
	return t.host.Window(id)
}

func (t *TUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		w, open := t.window()
		switch {
		case key.Matches(msg, keys.Quit):
			return t, tea.Quit
		case !open:
			return t, nil
		case key.Matches(msg, keys.Up):
			t.move(w, -menu.RowWidth)
		case key.Matches(msg, keys.Down):
			t.move(w, menu.RowWidth)
		case key.Matches(msg, keys.Left):
			t.move(w, -1)
		case key.Matches(msg, keys.Right):
			t.move(w, 1)
		case key.Matches(msg, keys.Click):
			e := t.host.Click(w.ID, menu.PaneMenu, t.cursor)
			t.AddLog(fmt.Sprintf("click slot %d (cancelled=%t)", t.cursor, e.Cancelled()))
		case key.Matches(msg, keys.Close):
			t.host.Close(w.ID)
			t.AddLog(fmt.Sprintf("closed window %d", w.ID))
		}
		t.refreshLogs()
		return t, nil

	case tea.WindowSizeMsg:
		logHeight := max(msg.Height/3, 3)
		if !t.ready {
			t.viewport = viewport.New(msg.Width, logHeight)
			t.ready = true
		} else {
			t.viewport.Width = msg.Width
			t.viewport.Height = logHeight
		}
		t.width = msg.Width
		t.height = msg.Height
		t.refreshLogs()

	case LogMsg:
		t.AddLog(string(msg))
		t.refreshLogs()
		return t, nil

	case RefreshMsg:
		return t, nil
	}

	if t.ready {
		t.viewport, cmd = t.viewport.Update(msg)
	}
	return t, cmd
}

func (t *TUI) move(w memhost.Window, delta int) {
	next := t.cursor + delta
	if next >= 0 && next < len(w.Slots) {
		t.cursor = next
	}
}

func (t *TUI) refreshLogs() {
	if !t.ready {
		return
	}
	// do not scroll if not at bottom, to prevent flickering
	wasAtBottom := t.viewport.AtBottom()
	t.viewport.SetContent(t.renderLogs())
	if wasAtBottom {
		t.viewport.GotoBottom()
	}
}

func (t *TUI) View() string {
	if !t.ready {
		return "Initializing..."
	}

	w, open := t.window()
	if !open {
		return fmt.Sprintf("%s\n%s\n%s",
			titleStyle.Render("No menu open for "+t.viewer.Name()),
			t.viewport.View(),
			helpStyle.Render("q/Esc: quit"))
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s",
		titleStyle.Render(fmt.Sprintf("%s (%s, %d slots) - %s", w.Title, w.Kind, len(w.Slots), t.viewer.Name())),
		t.renderGrid(w),
		t.renderSelected(w),
		t.viewport.View(),
		helpStyle.Render("arrows: move • Enter: click • e: close • q/Esc: quit"),
	)
}

func (t *TUI) renderGrid(w memhost.Window) string {
	rows := make([]string, 0, len(w.Slots)/menu.RowWidth+1)
	for start := 0; start < len(w.Slots); start += menu.RowWidth {
		end := min(start+menu.RowWidth, len(w.Slots))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			style := cellStyle
			if i == t.cursor {
				style = selectedStyle
			}
			cells = append(cells, style.Render(cellLabel(w.Slots[i])))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (t *TUI) renderSelected(w memhost.Window) string {
	if t.cursor >= len(w.Slots) || w.Slots[t.cursor] == nil {
		return helpStyle.Render(fmt.Sprintf("slot %d: empty", t.cursor))
	}
	s := w.Slots[t.cursor]
	var b strings.Builder
	fmt.Fprintf(&b, "slot %d: %s x%d", t.cursor, s.DisplayName(), s.Count())
	for _, line := range s.Lore() {
		b.WriteString("\n  " + line)
	}
	return b.String()
}

func cellLabel(s *item.Snapshot) string {
	if s == nil {
		return ""
	}
	label := s.DisplayName()
	if _, path, ok := strings.Cut(label, ":"); ok && s.Name() == "" {
		label = path
	}
	if r := []rune(label); len(r) > cellWidth {
		label = string(r[:cellWidth-1]) + "…"
	}
	if s.Count() > 1 {
		label = fmt.Sprintf("%s %d", label, s.Count())
	}
	if s.Glowing() {
		return glowStyle.Render(label)
	}
	return label
}

// AddLog adds a log message to the TUI
func (t *TUI) AddLog(msg string) {
	t.logMutex.Lock()
	defer t.logMutex.Unlock()
	t.logs = append(t.logs, msg)

	// trim logs
	if t.maxLogLines > 0 && len(t.logs) > t.maxLogLines {
		t.logs = t.logs[len(t.logs)-t.maxLogLines:]
	}
}

func (t *TUI) renderLogs() string {
	t.logMutex.Lock()
	defer t.logMutex.Unlock()
	return strings.Join(t.logs, "\n")
}

// LogMsg is a message type for logging
type LogMsg string

// RefreshMsg asks the TUI to redraw after host-side changes.
type RefreshMsg struct{}

// Writer is an io.Writer that sends output to the TUI
type Writer struct {
	program *tea.Program
}

// NewWriter creates a new TUI Writer
func NewWriter(program *tea.Program) *Writer {
	return &Writer{program: program}
}

// Write implements io.Writer
func (w *Writer) Write(p []byte) (n int, err error) {
	msg := strings.TrimSuffix(string(p), "\n")
	if msg != "" {
		w.program.Send(LogMsg(msg))
	}
	return len(p), nil
}

// Start creates a program for the TUI and a writer for logging into it. Slot
// changes on host trigger a redraw.
func Start(host *memhost.Host, viewer menu.Viewer, maxLogLines int) (*tea.Program, io.Writer) {
	t := New(host, viewer, maxLogLines)
	p := tea.NewProgram(t, tea.WithAltScreen())
	host.OnSlotUpdate(func(menu.WindowID, int, *item.Snapshot) {
		go p.Send(RefreshMsg{})
	})
	return p, NewWriter(p)
}
