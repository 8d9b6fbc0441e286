// Package view projects session state onto the retro terminal screen.
package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"weatheros/manager"
	"weatheros/weathercode"
)

const (
	Width   = 32
	Title   = "[WEATHER.OS]"
	Rec     = "REC ●"
	Divider = "--------------------------------"
)

// Frame is one rendered screen.
type Frame struct {
	Header string
	Title  string
	// Status is set when the panel shows a message instead of weather.
	Status string
	Panel  []string
}

// Lines returns the frame top to bottom.
func (f Frame) Lines() []string {
	lines := []string{f.Header, f.Title, Divider}
	return append(lines, f.Panel...)
}

// Render builds the frame for st. The panel shows the status message while
// a lookup runs or when there is nothing to show, and the weather otherwise.
func Render(st manager.State, clock string) Frame {
	f := Frame{
		Header: header(clock),
		Title:  Title,
	}

	snap := st.Snapshot
	if st.Busy() || snap == nil {
		f.Status = statusLine(st)
		f.Panel = []string{f.Status}
		return f
	}

	f.Panel = append(f.Panel, snap.Name)
	if snap.Subtitle != "" {
		f.Panel = append(f.Panel, snap.Subtitle)
	}
	f.Panel = append(f.Panel,
		"",
		field("TEMP", fmt.Sprintf("%d°C", snap.TemperatureC)),
		field("COND", weathercode.Code(snap.ConditionCode).String()),
		field("VENTO", Wind(snap.WindKmh)+" km/h"),
	)
	return f
}

// Wind formats a speed the short way: 12 rather than 12.0.
func Wind(kmh float64) string {
	return strconv.FormatFloat(kmh, 'f', -1, 64)
}

func statusLine(st manager.State) string {
	msg := strings.ToUpper(st.Message)
	if st.Status == manager.Idle || st.Status == manager.Loading {
		msg += "..."
	}
	return msg
}

func header(clock string) string {
	gap := Width - runewidth.StringWidth(Rec) - runewidth.StringWidth(clock)
	if gap < 1 {
		gap = 1
	}
	return Rec + strings.Repeat(" ", gap) + clock
}

func field(label, value string) string {
	return runewidth.FillRight(label, 7) + value
}
