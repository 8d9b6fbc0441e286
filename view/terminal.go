package view

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"

	"weatheros/manager"
)

const (
	green       = "\x1b[32m"
	red         = "\x1b[31m"
	reset       = "\x1b[0m"
	clearScreen = "\x1b[H\x1b[2J"
	save        = "\x1b7"
	restore     = "\x1b8"
	headerRow   = "\x1b[2;1H"
)

// Terminal draws frames on a writer. On a real terminal it redraws the whole
// screen on every state change and repaints only the clock in place;
// elsewhere it appends plain frames.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	live   bool
	prompt string
	state  manager.State
	clock  string
}

// NewTerminal returns a Terminal for f, live and coloured if f is a terminal.
func NewTerminal(f *os.File) *Terminal {
	fd := f.Fd()
	live := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return &Terminal{
		out:   colorable.NewColorable(f),
		live:  live,
		state: manager.InitialState(),
		clock: "--:--:--",
	}
}

// NewWriter returns a plain Terminal that never redraws in place.
func NewWriter(w io.Writer) *Terminal {
	return &Terminal{
		out:   w,
		state: manager.InitialState(),
		clock: "--:--:--",
	}
}

// SetPrompt sets the line drawn under every live frame.
func (t *Terminal) SetPrompt(prompt string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prompt = prompt
}

// Update redraws the screen for st.
func (t *Terminal) Update(st manager.State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = st
	t.draw()
}

// Clock records the time shown in the header and, on a live terminal,
// repaints the header line without touching the rest of the screen.
func (t *Terminal) Clock(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clock = s
	if !t.live {
		return
	}
	frame := Render(t.state, t.clock)
	io.WriteString(t.out, save+headerRow+t.paint(boxLine(frame.Header), green)+restore)
}

// Notice prints a one-off message below the frame.
func (t *Terminal) Notice(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	io.WriteString(t.out, t.paint("! "+msg, red)+"\n")
	if t.live {
		io.WriteString(t.out, t.prompt)
	}
}

func (t *Terminal) draw() {
	frame := Render(t.state, t.clock)

	var b strings.Builder
	if t.live {
		b.WriteString(clearScreen)
	}
	b.WriteString(t.paint(border("┌", "┐"), green) + "\n")
	for _, line := range frame.Lines() {
		colour := green
		if frame.Status != "" && line == frame.Status && t.state.Status == manager.Error {
			colour = red
		}
		b.WriteString(t.paint(boxLine(line), colour) + "\n")
	}
	b.WriteString(t.paint(border("└", "┘"), green) + "\n")
	if t.live {
		b.WriteString(t.prompt)
	}

	io.WriteString(t.out, b.String())
}

func (t *Terminal) paint(s, colour string) string {
	if !t.live {
		return s
	}
	return colour + s + reset
}

func border(left, right string) string {
	return left + strings.Repeat("─", Width+2) + right
}

func boxLine(s string) string {
	s = runewidth.Truncate(s, Width, "…")
	return "│ " + runewidth.FillRight(s, Width) + " │"
}
