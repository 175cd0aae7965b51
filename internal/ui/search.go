package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstruik/phraser/internal/history"
)

// SearchBar is the incremental search input. It only owns the query text;
// the application resolves matches and moves the tree cursor after every
// change.
type SearchBar struct {
	query     string
	cursorPos int
	active    bool
	history   *History

	matchCount int
	matchNum   int // 1-based, 0 when no matches
}

// NewSearchBar creates a search bar without history persistence.
func NewSearchBar() *SearchBar {
	return &SearchBar{history: NewHistory(50)}
}

// NewSearchBarWithHistory creates a search bar whose query history is
// persisted through manager.
func NewSearchBarWithHistory(manager *history.Manager) *SearchBar {
	h, err := NewHistoryWithManager(50, manager, "search.toml")
	if err != nil {
		h = NewHistory(50)
	}
	return &SearchBar{history: h}
}

// Start enters search mode with an empty query.
func (s *SearchBar) Start() {
	s.active = true
	s.query = ""
	s.cursorPos = 0
	s.matchCount = 0
	s.matchNum = 0
	s.history.Reset()
}

// Stop leaves search mode
func (s *SearchBar) Stop() {
	s.active = false
	s.history.Reset()
}

// IsActive returns whether search mode is active
func (s *SearchBar) IsActive() bool {
	return s.active
}

// Query returns the current query text
func (s *SearchBar) Query() string {
	return s.query
}

// SetMatches updates the match counter shown at the right edge.
func (s *SearchBar) SetMatches(num, count int) {
	s.matchNum = num
	s.matchCount = count
}

// HandleKey processes one key press. It reports whether search mode ended
// and whether the query changed, so the caller can rerun the match.
func (s *SearchBar) HandleKey(ev *tcell.EventKey) (done, changed bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		s.Stop()
		return true, false
	case tcell.KeyEnter:
		s.history.Add(s.query)
		s.Stop()
		return true, false
	case tcell.KeyUp:
		if !s.history.IsNavigating() {
			s.history.SetPending(s.query)
		}
		if prev, ok := s.history.Previous(); ok {
			s.query = prev
			s.cursorPos = len(s.query)
			return false, true
		}
		return false, false
	case tcell.KeyDown:
		if next, ok := s.history.Next(); ok {
			s.query = next
			s.cursorPos = len(s.query)
			return false, true
		}
		return false, false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if s.cursorPos > 0 {
			s.query = s.query[:s.cursorPos-1] + s.query[s.cursorPos:]
			s.cursorPos--
			return false, true
		}
		return false, false
	case tcell.KeyDelete:
		if s.cursorPos < len(s.query) {
			s.query = s.query[:s.cursorPos] + s.query[s.cursorPos+1:]
			return false, true
		}
		return false, false
	case tcell.KeyLeft:
		if s.cursorPos > 0 {
			s.cursorPos--
		}
		return false, false
	case tcell.KeyRight:
		if s.cursorPos < len(s.query) {
			s.cursorPos++
		}
		return false, false
	case tcell.KeyHome:
		s.cursorPos = 0
		return false, false
	case tcell.KeyEnd:
		s.cursorPos = len(s.query)
		return false, false
	}

	if r := ev.Rune(); r >= 32 && r != 127 {
		s.query = s.query[:s.cursorPos] + string(r) + s.query[s.cursorPos:]
		s.cursorPos++
		return false, true
	}
	return false, false
}

// Render draws the search line at row y.
func (s *SearchBar) Render(screen *Screen, y int) {
	style := screen.CommandStyle()
	screen.DrawString(0, y, "Search: "+s.query, style)

	cursorX := 8 + s.cursorPos
	ch := " "
	if s.cursorPos < len(s.query) {
		ch = string(s.query[s.cursorPos])
	}
	screen.DrawString(cursorX, y, ch, screen.CursorStyle())

	var count string
	if s.query == "" {
		count = ""
	} else if s.matchCount == 0 {
		count = "(no matches)"
	} else {
		count = fmt.Sprintf("(%d of %d)", s.matchNum, s.matchCount)
	}
	if count != "" {
		screen.DrawString(screen.GetWidth()-len(count), y, count, style)
	}
}
