package app

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/pstruik/phraser/internal/logview"
	"github.com/pstruik/phraser/internal/model"
)

// handleKeypress handles a single keypress in normal mode
func (a *App) handleKeypress(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyDown:
		a.tree.SelectNext()
		return
	case tcell.KeyUp:
		a.tree.SelectPrev()
		return
	case tcell.KeyLeft:
		a.tree.Collapse()
		return
	case tcell.KeyRight:
		a.tree.Expand()
		return
	case tcell.KeyHome:
		a.tree.SelectFirst()
		return
	case tcell.KeyEnd:
		a.tree.SelectLast()
		return
	case tcell.KeyEnter:
		a.useSelected()
		return
	case tcell.KeyCtrlS:
		if err := a.Save(); err != nil {
			a.SetStatus("Failed to save: " + err.Error())
		} else {
			a.SetStatus("Saved")
		}
		return
	case tcell.KeyEscape:
		a.tree.ClearMarks()
		return
	}

	switch ev.Rune() {
	case 'j':
		a.tree.SelectNext()
	case 'k':
		a.tree.SelectPrev()
	case 'h':
		a.tree.Collapse()
	case 'l':
		a.tree.Expand()
	case 'g':
		a.tree.SelectFirst()
	case 'G':
		a.tree.SelectLast()
	case ' ':
		a.tree.ToggleMark()
		a.tree.SelectNext()
	case 'f':
		a.sync.CreateFolder(a.cursorFolder(), "New Folder")
	case 'F':
		a.sync.CreateFolder(nil, "New Folder")
	case 'p':
		if parent := a.cursorFolder(); parent != nil {
			a.sync.CreateLeaf(parent, model.KindPhrase, "New Phrase", "Enter phrase contents")
		}
	case 's':
		if parent := a.cursorFolder(); parent != nil {
			a.sync.CreateLeaf(parent, model.KindScript, "New Script", "# Enter script code")
		}
	case 'r':
		if n := a.tree.CursorNode(); n != nil {
			a.EnterRenameMode(n)
		}
	case 'c':
		if n := a.tree.CursorNode(); n != nil {
			if item, ok := n.Entity.(*model.Item); ok {
				a.sync.Clone(item)
				a.SetStatus("Cloned " + item.Description)
			}
		}
	case 'y':
		sel := a.sync.SelectionQuery()
		a.sync.Copy(sel)
		a.SetStatus(fmt.Sprintf("Copied %d item(s)", len(a.sync.Clipboard())))
	case 'x':
		sel := a.sync.SelectionQuery()
		if len(sel) > 0 {
			a.sync.Cut(sel)
			a.SetStatus(fmt.Sprintf("Cut %d item(s)", len(sel)))
		}
	case 'v':
		target := a.cursorFolder()
		if target == nil {
			a.SetStatus("Select a folder to paste into")
			return
		}
		if pasted := a.sync.Paste(target); pasted != nil {
			a.SetStatus(fmt.Sprintf("Pasted %d item(s) into %s", len(pasted), target.Title))
		}
	case 'd':
		sel := a.tree.Selection()
		if len(sel) == 0 {
			return
		}
		var ids []string
		for _, n := range sel {
			for _, e := range model.Subtree(n.Entity) {
				ids = append(ids, e.EntityID())
			}
		}
		if a.sync.Delete(sel) {
			a.forgetUsage(ids)
			a.SetStatus("Deleted")
		}
	case 'm':
		a.moveMarked()
	case 'Y':
		a.copyContentToClipboard()
	case 'u':
		a.showUsage()
	case 'n':
		if len(a.matches) > 0 {
			a.matchIdx = (a.matchIdx + 1) % len(a.matches)
			a.jumpToMatch()
		}
	case 'N':
		if len(a.matches) > 0 {
			a.matchIdx = (a.matchIdx - 1 + len(a.matches)) % len(a.matches)
			a.jumpToMatch()
		}
	case '/':
		a.search.Start()
		a.matches = nil
		a.matchIdx = 0
	case ':':
		a.command.Start()
	case 'L':
		a.logPane.Toggle()
	}
}

// cursorFolder resolves the folder a create or paste should target: the
// cursor's folder itself, or a leaf's parent.
func (a *App) cursorFolder() *model.Folder {
	n := a.tree.CursorNode()
	if n == nil {
		return nil
	}
	switch e := n.Entity.(type) {
	case *model.Folder:
		return e
	case *model.Item:
		return e.Parent
	}
	return nil
}

// moveMarked re-parents the marked nodes under the cursor folder.
func (a *App) moveMarked() {
	sel := a.tree.Selection()
	cursor := a.tree.CursorNode()
	if len(sel) == 1 && sel[0] == cursor {
		a.SetStatus("Mark items with space, then press m on the target folder")
		return
	}
	target := a.cursorFolder()
	if target == nil {
		a.SetStatus("Select a target folder")
		return
	}
	moved := a.sync.Move(sel, target)
	a.tree.ClearMarks()
	if moved == 0 {
		a.SetStatus("Cannot move a folder into itself")
		return
	}
	a.SetStatus("Moved into " + target.Title)
}

// forgetUsage drops the usage rows of deleted entities so the statistics
// database does not accumulate rows for things that no longer exist.
func (a *App) forgetUsage(ids []string) {
	if a.usage == nil {
		return
	}
	for _, id := range ids {
		if err := a.usage.Forget(id); err != nil {
			a.mirror.Emitf(logview.LevelWarning, "failed to drop usage row: %v", err)
		}
	}
}

// useSelected triggers the cursor item the way the expansion engine would:
// the content lands on the system clipboard and a usage tick is recorded.
func (a *App) useSelected() {
	n := a.tree.CursorNode()
	if n == nil {
		return
	}
	item, ok := n.Entity.(*model.Item)
	if !ok {
		// Folders toggle open instead.
		a.tree.Expand()
		return
	}

	if err := clipboard.WriteAll(item.Content); err != nil {
		a.mirror.Emitf(logview.LevelError, "clipboard write failed: %v", err)
		return
	}
	if a.usage != nil {
		if err := a.usage.RecordUse(item.ID); err != nil {
			a.mirror.Emitf(logview.LevelWarning, "failed to record usage for %s: %v", item.Description, err)
		}
	}
	a.mirror.Emitf(logview.LevelInfo, "used %s", item.Description)
	a.SetStatus("Copied contents of " + item.Description)
}

// copyContentToClipboard copies the raw content without a usage tick.
func (a *App) copyContentToClipboard() {
	n := a.tree.CursorNode()
	if n == nil {
		return
	}
	if item, ok := n.Entity.(*model.Item); ok {
		if err := clipboard.WriteAll(item.Content); err != nil {
			a.SetStatus("Clipboard write failed: " + err.Error())
			return
		}
		a.SetStatus("Copied contents of " + item.Description)
	}
}

// showUsage reports the persisted usage count of the cursor entity.
func (a *App) showUsage() {
	n := a.tree.CursorNode()
	if n == nil || a.usage == nil {
		return
	}
	count, err := a.usage.Count(n.Entity.EntityID())
	if err != nil {
		a.SetStatus("Usage lookup failed: " + err.Error())
		return
	}
	a.SetStatus(fmt.Sprintf("%s used %d time(s)", n.Entity.Display(), count))
}
