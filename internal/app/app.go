package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstruik/phraser/internal/config"
	"github.com/pstruik/phraser/internal/editor"
	"github.com/pstruik/phraser/internal/history"
	"github.com/pstruik/phraser/internal/logview"
	"github.com/pstruik/phraser/internal/model"
	"github.com/pstruik/phraser/internal/monitor"
	"github.com/pstruik/phraser/internal/search"
	"github.com/pstruik/phraser/internal/stats"
	"github.com/pstruik/phraser/internal/storage"
	"github.com/pstruik/phraser/internal/theme"
	"github.com/pstruik/phraser/internal/ui"
)

// App is the main application controller. It owns the event loop and wires
// the configuration tree, the synchronizer, the monitor and the widgets
// together. It implements the synchronizer's Presentation and Notifier
// capabilities.
type App struct {
	screen  *ui.Screen
	appCfg  *config.Config
	cfg     *model.Config
	store   *storage.FileStore
	monitor *monitor.Monitor
	sync    *editor.Synchronizer
	mirror  *logview.Mirror
	usage   *stats.Recorder

	tree    *ui.TreeWidget
	logPane *ui.LogWidget
	command *ui.CommandMode
	search  *ui.SearchBar
	confirm *ui.ConfirmPrompt

	rename       *ui.RenameEditor
	renameTarget *editor.Node

	matches  []search.Match
	matchIdx int

	events     chan tcell.Event
	statusMsg  string
	statusTime time.Time
	dirty      bool
	autoSave   time.Time
	quit       bool
}

// NewApp creates an App over the tree directory named in appCfg.
func NewApp(appCfg *config.Config) (*App, error) {
	screen, err := ui.NewScreen(theme.ByName(appCfg.Theme))
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	store := storage.NewFileStore(appCfg.TreeDir)
	cfg, err := store.Load()
	if err != nil {
		screen.Close()
		return nil, fmt.Errorf("failed to load tree: %w", err)
	}
	if len(cfg.Folders) == 0 {
		cfg.Folders = append(cfg.Folders, model.NewFolder("My Phrases"))
	}

	histMgr, err := history.NewManager(appCfg.DataDir())
	if err != nil {
		histMgr = nil
	}

	a := &App{
		screen:     screen,
		appCfg:     appCfg,
		cfg:        cfg,
		store:      store,
		monitor:    monitor.New(cfg),
		mirror:     logview.NewMirror(screen.Post),
		command:    ui.NewCommandModeWithHistory(histMgr),
		search:     ui.NewSearchBarWithHistory(histMgr),
		confirm:    ui.NewConfirmPrompt(),
		statusMsg:  "Ready",
		statusTime: time.Now(),
		autoSave:   time.Now(),
	}

	a.sync = editor.New(cfg, store, a.monitor, a.monitor, a, a)
	a.tree = ui.NewTreeWidget(a.sync.Roots)
	a.logPane = ui.NewLogWidget(a.mirror)

	if rec, err := stats.Open(appCfg.DataDir()); err == nil {
		a.usage = rec
	} else {
		a.mirror.Emitf(logview.LevelWarning, "usage statistics unavailable: %v", err)
	}

	return a, nil
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	abbrs, hotkeys := a.monitor.TriggerCounts()
	a.mirror.Emitf(logview.LevelInfo, "loaded %d folders, watching %d abbreviations and %d hotkeys",
		len(a.cfg.Folders), abbrs, hotkeys)

	// Create a channel for events
	a.events = make(chan tcell.Event)

	// Start event polling goroutine
	go func() {
		for {
			event := a.screen.PollEvent()
			a.events <- event
			if event == nil {
				break
			}
		}
	}()

	// Create a ticker for rendering and auto-save checks
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for !a.quit {
		select {
		case ev := <-a.events:
			if ev != nil {
				a.handleRawEvent(ev)
			}
		case <-ticker.C:
			a.render()

			// Auto-save every 5 seconds if dirty
			if a.dirty && time.Since(a.autoSave) > 5*time.Second {
				if err := a.Save(); err != nil {
					a.SetStatus("Failed to save: " + err.Error())
				}
			}
		}
	}

	return nil
}

// Close closes the application
func (a *App) Close() error {
	if a.usage != nil {
		a.usage.Close()
	}
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// Save writes every entity in the tree to the store.
func (a *App) Save() error {
	for _, e := range a.cfg.AllEntities() {
		if err := a.store.Persist(e); err != nil {
			return err
		}
	}
	a.dirty = false
	a.autoSave = time.Now()
	return nil
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.statusMsg = msg
	a.statusTime = time.Now()
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// Confirm blocks for a yes/no answer, running a nested event loop so the
// rest of the UI keeps rendering behind the prompt.
func (a *App) Confirm(title, message string) bool {
	a.confirm.Ask(title, message)
	for {
		a.render()
		ev := <-a.events
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if answered, yes := a.confirm.HandleKey(ev); answered {
				return yes
			}
		case *ui.FuncEvent:
			ev.Fn()
		case nil:
			return false
		}
	}
}

// Selection reports the nodes the tree currently selects.
func (a *App) Selection() []*editor.Node {
	return a.tree.Selection()
}

// Select rebuilds the rows and moves the selection to the given nodes.
func (a *App) Select(nodes ...*editor.Node) {
	a.tree.Rebuild()
	a.tree.Select(nodes...)
}

// EnterRenameMode opens the inline rename editor on n.
func (a *App) EnterRenameMode(n *editor.Node) {
	a.renameTarget = n
	a.rename = ui.NewRenameEditor(n.Display())
	a.rename.Start()
}

// ConfigAltered marks the session dirty and refreshes the derived state.
// A full reload also rebuilds the monitor's trigger index.
func (a *App) ConfigAltered(requiresFullReload bool) {
	a.dirty = true
	a.tree.Rebuild()
	if requiresFullReload {
		a.monitor.Reindex()
		a.mirror.Emitf(logview.LevelInfo, "configuration changed, triggers reindexed")
	}
}

// handleRawEvent processes raw input events
func (a *App) handleRawEvent(ev tcell.Event) {
	if fe, ok := ev.(*ui.FuncEvent); ok {
		fe.Fn()
		return
	}

	keyEv, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}

	// Handle rename editor input
	if a.rename != nil && a.rename.IsActive() {
		done, committed := a.rename.HandleKey(keyEv)
		if done {
			a.finishRename(committed)
		}
		return
	}

	// Handle command mode input
	if a.command.IsActive() {
		cmd, done := a.command.HandleKey(keyEv)
		if done {
			a.handleCommand(cmd)
		}
		return
	}

	// Handle search input
	if a.search.IsActive() {
		done, changed := a.search.HandleKey(keyEv)
		if changed {
			a.matches = search.Find(a.search.Query(), a.cfg)
			a.matchIdx = 0
			a.jumpToMatch()
		}
		if done {
			a.matches = nil
		}
		return
	}

	a.handleKeypress(keyEv)
}

// finishRename applies or discards the rename editor's text.
func (a *App) finishRename(committed bool) {
	target, text := a.renameTarget, a.rename.Text()
	a.rename = nil
	a.renameTarget = nil
	if !committed || target == nil {
		return
	}

	if err := a.sync.Rename(target, text); err != nil {
		a.screen.Beep()
		a.SetStatus(err.Error())
		return
	}
	a.SetStatus("Renamed to " + text)
}

// jumpToMatch moves the tree cursor to the current search match.
func (a *App) jumpToMatch() {
	if len(a.matches) == 0 {
		a.search.SetMatches(0, 0)
		return
	}
	if a.matchIdx >= len(a.matches) {
		a.matchIdx = 0
	}
	a.search.SetMatches(a.matchIdx+1, len(a.matches))
	if n := a.sync.NodeFor(a.matches[a.matchIdx].Entity); n != nil {
		a.tree.MoveCursorTo(n)
	}
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()

	height := a.screen.GetHeight()

	abbrs, hotkeys := a.monitor.TriggerCounts()
	header := fmt.Sprintf(" phraser  %d abbreviations, %d hotkeys ", abbrs, hotkeys)
	a.screen.DrawString(0, 0, header, a.screen.HeaderStyle())

	treeStartY := 1
	treeEndY := height - 2
	if a.logPane.IsVisible() {
		logTop := treeEndY - logHeight(height)
		a.logPane.Render(a.screen, logTop, treeEndY)
		treeEndY = logTop - 1
		a.screen.DrawString(0, treeEndY, "── log ──", a.screen.StatusStyle())
	}

	a.tree.Render(a.screen, treeStartY, treeEndY)

	// Overlay the inline rename editor on the cursor row.
	if a.rename != nil && a.rename.IsActive() {
		x, rowIdx := a.tree.CursorScreenPos()
		if rowIdx >= 0 && treeStartY+rowIdx < treeEndY {
			a.rename.Render(a.screen, x, treeStartY+rowIdx, a.screen.GetWidth()-x)
		}
	}

	if a.search.IsActive() {
		a.search.Render(a.screen, height-2)
	}
	if a.command.IsActive() {
		a.command.Render(a.screen, height-2)
	}

	statusLine := a.statusLine()
	a.screen.DrawString(0, height-1, statusLine, a.screen.StatusStyle())

	if a.confirm.IsActive() {
		a.confirm.Render(a.screen, height-1)
	}

	a.screen.Show()
}

func (a *App) statusLine() string {
	line := ""
	if a.statusMsg != "Ready" && time.Since(a.statusTime) <= 3*time.Second {
		line = a.statusMsg
	}
	if a.dirty {
		line += " (modified)"
	}
	return line
}

// logHeight reserves up to a third of the screen for the log pane.
func logHeight(screenHeight int) int {
	h := screenHeight / 3
	if h < 3 {
		h = 3
	}
	return h
}
