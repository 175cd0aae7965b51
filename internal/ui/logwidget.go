package ui

import (
	"github.com/pstruik/phraser/internal/logview"
)

// LogWidget renders the bounded log mirror as a list, newest line at the
// bottom. Hidden by default, toggled by the app.
type LogWidget struct {
	mirror  *logview.Mirror
	visible bool
}

// NewLogWidget creates a widget over mirror
func NewLogWidget(mirror *logview.Mirror) *LogWidget {
	return &LogWidget{mirror: mirror}
}

// Toggle flips visibility
func (w *LogWidget) Toggle() {
	w.visible = !w.visible
}

// IsVisible returns whether the widget is shown
func (w *LogWidget) IsVisible() bool {
	return w.visible
}

// Render draws the newest entries into the rows between startY and endY
// (exclusive), scrolled to the bottom.
func (w *LogWidget) Render(screen *Screen, startY, endY int) {
	if !w.visible {
		return
	}
	rows := endY - startY
	if rows <= 0 {
		return
	}

	entries := w.mirror.Entries()
	if len(entries) > rows {
		entries = entries[len(entries)-rows:]
	}

	y := startY
	for _, e := range entries {
		screen.DrawString(0, y, e.Text, screen.LogStyle(e.Elevated))
		y++
	}
}
