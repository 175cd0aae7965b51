package ui

import (
	"github.com/pstruik/phraser/internal/editor"
	"github.com/pstruik/phraser/internal/model"
)

// TreeWidget displays the presentation nodes and tracks the cursor and the
// multi-selection marks. It never mutates the trees itself; structural
// edits go through the synchronizer, which owns the nodes.
type TreeWidget struct {
	roots func() []*editor.Node

	cursorIdx      int
	viewportOffset int
	collapsed      map[*editor.Node]bool
	marked         map[*editor.Node]bool

	rows []row
}

type row struct {
	node  *editor.Node
	depth int
}

// NewTreeWidget creates a widget over the live root list supplied by roots.
func NewTreeWidget(roots func() []*editor.Node) *TreeWidget {
	tw := &TreeWidget{
		roots:     roots,
		collapsed: make(map[*editor.Node]bool),
		marked:    make(map[*editor.Node]bool),
	}
	tw.Rebuild()
	return tw
}

// Rebuild reflattens the visible rows. Call after any structural edit.
func (tw *TreeWidget) Rebuild() {
	tw.rows = tw.rows[:0]
	alive := make(map[*editor.Node]bool)
	var walk func(nodes []*editor.Node, depth int)
	walk = func(nodes []*editor.Node, depth int) {
		for _, n := range nodes {
			alive[n] = true
			tw.rows = append(tw.rows, row{node: n, depth: depth})
			if !tw.collapsed[n] {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(tw.roots(), 0)

	// Drop marks and collapse state of nodes that left the tree.
	for n := range tw.marked {
		if !alive[n] {
			delete(tw.marked, n)
		}
	}
	for n := range tw.collapsed {
		if !alive[n] {
			delete(tw.collapsed, n)
		}
	}

	if tw.cursorIdx >= len(tw.rows) {
		tw.cursorIdx = len(tw.rows) - 1
	}
	if tw.cursorIdx < 0 {
		tw.cursorIdx = 0
	}
}

// SelectNext moves the cursor down
func (tw *TreeWidget) SelectNext() {
	if tw.cursorIdx < len(tw.rows)-1 {
		tw.cursorIdx++
	}
}

// SelectPrev moves the cursor up
func (tw *TreeWidget) SelectPrev() {
	if tw.cursorIdx > 0 {
		tw.cursorIdx--
	}
}

// SelectFirst moves the cursor to the first row
func (tw *TreeWidget) SelectFirst() {
	tw.cursorIdx = 0
}

// SelectLast moves the cursor to the last row
func (tw *TreeWidget) SelectLast() {
	if len(tw.rows) > 0 {
		tw.cursorIdx = len(tw.rows) - 1
	}
}

// Collapse hides the children of the cursor node, or moves to the parent
// when the node has none showing.
func (tw *TreeWidget) Collapse() {
	n := tw.CursorNode()
	if n == nil {
		return
	}
	if len(n.Children) > 0 && !tw.collapsed[n] {
		tw.collapsed[n] = true
		tw.Rebuild()
		return
	}
	if n.Parent != nil {
		tw.MoveCursorTo(n.Parent)
	}
}

// Expand shows the children of the cursor node
func (tw *TreeWidget) Expand() {
	n := tw.CursorNode()
	if n == nil {
		return
	}
	if tw.collapsed[n] {
		delete(tw.collapsed, n)
		tw.Rebuild()
	}
}

// ToggleMark flips the multi-selection mark on the cursor node
func (tw *TreeWidget) ToggleMark() {
	n := tw.CursorNode()
	if n == nil {
		return
	}
	if tw.marked[n] {
		delete(tw.marked, n)
	} else {
		tw.marked[n] = true
	}
}

// ClearMarks drops the multi-selection
func (tw *TreeWidget) ClearMarks() {
	tw.marked = make(map[*editor.Node]bool)
}

// CursorNode returns the node under the cursor, or nil on an empty tree.
func (tw *TreeWidget) CursorNode() *editor.Node {
	if tw.cursorIdx < 0 || tw.cursorIdx >= len(tw.rows) {
		return nil
	}
	return tw.rows[tw.cursorIdx].node
}

// Selection returns the marked nodes in display order, or the cursor node
// when nothing is marked.
func (tw *TreeWidget) Selection() []*editor.Node {
	if len(tw.marked) > 0 {
		var out []*editor.Node
		for _, r := range tw.rows {
			if tw.marked[r.node] {
				out = append(out, r.node)
			}
		}
		return out
	}
	if n := tw.CursorNode(); n != nil {
		return []*editor.Node{n}
	}
	return nil
}

// MoveCursorTo places the cursor on n, expanding ancestors so it is
// visible.
func (tw *TreeWidget) MoveCursorTo(n *editor.Node) {
	for p := n.Parent; p != nil; p = p.Parent {
		delete(tw.collapsed, p)
	}
	tw.Rebuild()
	for idx, r := range tw.rows {
		if r.node == n {
			tw.cursorIdx = idx
			return
		}
	}
}

// Select implements the presentation select capability: marks are replaced
// by the given nodes and the cursor lands on the first one.
func (tw *TreeWidget) Select(nodes ...*editor.Node) {
	tw.ClearMarks()
	if len(nodes) == 0 {
		return
	}
	tw.MoveCursorTo(nodes[0])
	if len(nodes) > 1 {
		for _, n := range nodes {
			tw.marked[n] = true
		}
	}
}

// Render draws the rows between startY and endY (exclusive).
func (tw *TreeWidget) Render(screen *Screen, startY, endY int) {
	visible := endY - startY
	if visible <= 0 {
		return
	}

	// Keep the cursor inside the viewport.
	if tw.cursorIdx < tw.viewportOffset {
		tw.viewportOffset = tw.cursorIdx
	}
	if tw.cursorIdx >= tw.viewportOffset+visible {
		tw.viewportOffset = tw.cursorIdx - visible + 1
	}

	y := startY
	for i := tw.viewportOffset; i < len(tw.rows) && y < endY; i++ {
		r := tw.rows[i]
		tw.renderRow(screen, r, y, i == tw.cursorIdx)
		y++
	}
}

func (tw *TreeWidget) renderRow(screen *Screen, r row, y int, isCursor bool) {
	x := r.depth * 2

	arrow := "  "
	if len(r.node.Children) > 0 {
		if tw.collapsed[r.node] {
			arrow = "▶ "
		} else {
			arrow = "▼ "
		}
	}

	style := screen.DefaultStyle()
	switch r.node.Entity.EntityKind() {
	case model.KindFolder:
		style = screen.FolderStyle()
	case model.KindScript:
		style = screen.ScriptStyle()
	}
	if tw.marked[r.node] {
		style = screen.MarkedStyle()
	}
	if isCursor {
		style = screen.SelectedStyle()
	}

	label := r.node.Display()
	if tw.marked[r.node] {
		label = "* " + label
	}
	screen.DrawString(x, y, arrow+label, style)
}

// CursorScreenPos reports the x offset and row index of the cursor row
// relative to the widget top, for overlaying the inline rename editor.
func (tw *TreeWidget) CursorScreenPos() (x, rowIdx int) {
	if tw.cursorIdx < 0 || tw.cursorIdx >= len(tw.rows) {
		return 0, -1
	}
	r := tw.rows[tw.cursorIdx]
	return r.depth*2 + 2, tw.cursorIdx - tw.viewportOffset
}
