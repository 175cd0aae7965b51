package app

import (
	"log"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/pstruik/phraser/internal/export"
	"github.com/pstruik/phraser/internal/logview"
	"github.com/pstruik/phraser/internal/model"
)

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "q", "quit":
		a.quitWithPrompt(false)
	case "q!", "quit!":
		a.quit = true
	case "w", "write":
		if err := a.Save(); err != nil {
			a.SetStatus("Failed to save: " + err.Error())
		} else {
			a.SetStatus("Saved")
		}
	case "wq":
		if err := a.Save(); err != nil {
			a.SetStatus("Failed to save: " + err.Error())
		} else {
			a.quit = true
		}
	case "export":
		if len(parts) < 2 {
			a.SetStatus("Usage: export <file.yaml>")
			return
		}
		a.exportCursorFolder(parts[1])
	case "log":
		a.handleLogCommand(parts[1:])
	case "set", "set!":
		if len(parts) < 3 {
			a.SetStatus("Usage: set[!] <key> <value>")
			return
		}
		if parts[0] == "set!" {
			a.appCfg.SetPersistent(parts[1], parts[2])
			if err := a.appCfg.Save(); err != nil {
				a.SetStatus("Failed to save config: " + err.Error())
				return
			}
			a.SetStatus("Set " + parts[1] + " permanently")
			return
		}
		a.appCfg.Set(parts[1], parts[2])
		a.SetStatus("Set " + parts[1] + " for this session")
	case "debug":
		// Dump the full tree to the log file for bug reports.
		log.Printf("tree dump:\n%s", spew.Sdump(a.cfg))
		a.mirror.Emitf(logview.LevelInfo, "tree dumped to log file")
	default:
		a.SetStatus("Unknown command: " + parts[0])
	}
}

// quitWithPrompt quits, first offering to save unsaved changes when the
// config asks for that.
func (a *App) quitWithPrompt(force bool) {
	if force || !a.dirty {
		a.quit = true
		return
	}
	if !a.appCfg.PromptToSave {
		a.SetStatus("Unsaved changes! Use :q! to force quit or :w to save")
		return
	}
	if a.Confirm("Save changes?", "Save your changes before quitting?") {
		if err := a.Save(); err != nil {
			a.SetStatus("Failed to save: " + err.Error())
			return
		}
	}
	a.quit = true
}

// exportCursorFolder writes the cursor folder's subtree as a YAML snippet
// pack.
func (a *App) exportCursorFolder(filePath string) {
	n := a.tree.CursorNode()
	if n == nil {
		return
	}
	folder, ok := n.Entity.(*model.Folder)
	if !ok {
		a.SetStatus("Select a folder to export")
		return
	}
	if err := export.ExportFolder(folder, filePath); err != nil {
		a.SetStatus("Export failed: " + err.Error())
		return
	}
	a.mirror.Emitf(logview.LevelInfo, "exported %s to %s", folder.Title, filePath)
	a.SetStatus("Exported " + folder.Title)
}

// handleLogCommand covers `log`, `log clear` and `log save <path>`.
func (a *App) handleLogCommand(args []string) {
	if len(args) == 0 {
		a.logPane.Toggle()
		return
	}
	switch args[0] {
	case "clear":
		a.mirror.Clear()
		a.SetStatus("Log cleared")
	case "save":
		if len(args) < 2 {
			a.SetStatus("Usage: log save <file>")
			return
		}
		a.mirror.SaveTo(args[1])
		a.SetStatus("Log saved to " + args[1])
	default:
		a.SetStatus("Unknown log command: " + args[0])
	}
}
