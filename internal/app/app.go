// Package app wires the editor together: the document registry, the
// caret navigator, both selection engines, the key dispatcher, and the
// overlay stack, all routed through one bubbletea model.
package app

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/encre/internal/blockevents"
	"github.com/zjrosen/encre/internal/caret"
	"github.com/zjrosen/encre/internal/clipboard"
	"github.com/zjrosen/encre/internal/config"
	"github.com/zjrosen/encre/internal/crossselect"
	"github.com/zjrosen/encre/internal/document"
	"github.com/zjrosen/encre/internal/flags"
	"github.com/zjrosen/encre/internal/keys"
	"github.com/zjrosen/encre/internal/log"
	"github.com/zjrosen/encre/internal/pubsub"
	"github.com/zjrosen/encre/internal/rectselect"
	"github.com/zjrosen/encre/internal/throttle"
	"github.com/zjrosen/encre/internal/toolbar"
	"github.com/zjrosen/encre/internal/tracing"
	"github.com/zjrosen/encre/internal/ui/blocksettings"
	"github.com/zjrosen/encre/internal/ui/editorview"
	"github.com/zjrosen/encre/internal/ui/help"
	"github.com/zjrosen/encre/internal/ui/logoverlay"
	"github.com/zjrosen/encre/internal/ui/overlay"
	"github.com/zjrosen/encre/internal/ui/preview"
	"github.com/zjrosen/encre/internal/ui/statusbar"
	"github.com/zjrosen/encre/internal/ui/styles"
	"github.com/zjrosen/encre/internal/ui/toaster"
	"github.com/zjrosen/encre/internal/ui/toolbox"
	"github.com/zjrosen/encre/internal/watcher"
)

// saveEchoWindow is how long after a save the watcher's change event for
// our own write is ignored.
const saveEchoWindow = 2 * time.Second

// saveResultMsg reports the outcome of an async document write.
type saveResultMsg struct {
	content string
	err     error
}

// reloadResultMsg carries the re-read document after a disk change.
type reloadResultMsg struct {
	content string
	err     error
}

// Model is the application root.
type Model struct {
	cfg   config.Config
	path  string
	debug bool

	reg    *document.Registry
	nav    *caret.Navigator
	editor *editorview.Model
	rect   *rectselect.Engine
	cross  *crossselect.Engine
	disp   *blockevents.Dispatcher
	bar    *toolbar.State
	texts  inputSelections
	gate   *throttle.Throttle
	keymap keys.EditorKeyMap
	fl     *flags.Registry

	toolbox  toolbox.Model
	settings blocksettings.Model
	status   statusbar.Model
	toast    toaster.Model
	helpView help.Model
	logView  logoverlay.Model
	preview  preview.Model

	width    int
	height   int
	dirty    bool
	showHelp bool

	// savedText is the serialization last written to or read from disk;
	// dirty tracking compares against it.
	savedText string
	lastSave  time.Time

	// openPanel and openTarget shadow the toolbar state so the panel
	// models are reset exactly once per menu open.
	openPanel  toolbar.Panel
	openTarget document.BlockID

	dragButton bool
	dragStart  time.Time
	hoverBlock int
	pending    *tea.MouseMsg

	stop            context.CancelFunc
	watcherHandle   *watcher.Watcher
	watcherListener *pubsub.ContinuousListener[watcher.Event]
	logListener     *log.LogListener
}

// New builds the application model around an already parsed registry.
// path is the document file; empty disables saving and watching.
// debug enables the log overlay (F2).
func New(reg *document.Registry, path string, cfg config.Config, debug bool) Model {
	reg.EnsureFocusable()
	nav := caret.New(reg)
	fl := flags.New(cfg.Flags)

	editor := editorview.New(reg, cfg.Editor.ColumnWidth)
	bar := toolbar.New()
	blocks := registryBlocks{reg: reg}
	texts := inputSelections{reg: reg}

	cross := crossselect.New(blocks, navCaret{nav: nav}, texts, bar, editor)
	rect := rectselect.New(rectselect.Config{
		Enabled:         fl.Enabled(flags.FlagRectSelect),
		ScrollZone:      cfg.Selection.ScrollZone,
		BaseScrollSpeed: cfg.Selection.BaseScrollSpeed,
		ReferenceRows:   cfg.Selection.ReferenceRows,
	}, blocks, editor, texts, bar)
	disp := blockevents.New(reg, nav, cross, bar, clipboard.System{}, editor, rect)

	ctx, cancel := context.WithCancel(context.Background())

	var (
		watcherHandle   *watcher.Watcher
		watcherListener *pubsub.ContinuousListener[watcher.Event]
	)
	if cfg.Editor.AutoReload && path != "" {
		if w, err := watcher.New(watcher.DefaultConfig(path)); err == nil {
			if err := w.Start(); err == nil {
				watcherHandle = w
				watcherListener = pubsub.NewContinuousListener(ctx, w.Broker())
			} else {
				_ = w.Stop()
			}
		}
		// The editor works without auto-reload; watcher init errors are
		// not fatal.
	}

	var logListener *log.LogListener
	if debug {
		logListener = log.NewListener(ctx)
	}

	name := "untitled"
	if path != "" {
		name = filepath.Base(path)
	}

	return Model{
		cfg:             cfg,
		path:            path,
		debug:           debug,
		reg:             reg,
		nav:             nav,
		editor:          editor,
		rect:            rect,
		cross:           cross,
		disp:            disp,
		bar:             bar,
		texts:           texts,
		gate:            throttle.New(cfg.Selection.ThrottleInterval()),
		keymap:          keys.DefaultEditorKeyMap(),
		fl:              fl,
		toolbox:         toolbox.New(),
		settings:        blocksettings.New(),
		status:          statusbar.New(name),
		toast:           toaster.New(),
		helpView:        help.New(),
		logView:         logoverlay.New(),
		preview:         preview.New(cfg.Editor.MarkdownStyle),
		savedText:       document.Serialize(reg),
		hoverBlock:      -1,
		stop:            cancel,
		watcherHandle:   watcherHandle,
		watcherListener: watcherListener,
		logListener:     logListener,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.MouseMsg:
		if m.logView.Visible() {
			var cmd tea.Cmd
			m.logView, cmd = m.logView.Update(msg)
			return m, cmd
		}
		if m.preview.Visible() {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case throttleFlushMsg:
		return m.handleThrottleFlush(msg)

	case scrollTickMsg:
		return m.handleScrollTick(msg)

	case toolbox.SelectedMsg:
		return m.handleToolboxSelected(msg)

	case toolbox.CancelMsg:
		m.bar.CloseAll()
		sync := m.syncMenus()
		return m, sync

	case blocksettings.ActionMsg:
		return m.handleBlockAction(msg)

	case blocksettings.CancelMsg:
		m.bar.CloseAll()
		sync := m.syncMenus()
		return m, sync

	case blockevents.CopyResultMsg:
		cmd := m.disp.HandleCopyResult(msg)
		if msg.Err == nil && msg.Cut {
			m.noteEdit()
		}
		return m, cmd

	case toaster.ShowMsg:
		m.toast = m.toast.Show(msg.Message, msg.Style)
		return m, toaster.ScheduleDismiss(toaster.DefaultDuration)

	case toaster.DismissMsg:
		m.toast = m.toast.Hide()
		return m, nil

	case logoverlay.CloseMsg:
		m.logView.Hide()
		return m, nil

	case preview.CloseMsg:
		m.preview.Hide()
		return m, nil

	case log.LogEvent:
		if m.logView.Visible() {
			m.logView.Refresh()
		}
		if m.logListener != nil {
			return m, m.logListener.Listen()
		}
		return m, nil

	case pubsub.Event[watcher.Event]:
		return m.handleWatcherEvent(msg)

	case saveResultMsg:
		return m.handleSaveResult(msg)

	case reloadResultMsg:
		return m.handleReload(msg)
	}

	return m, nil
}

// handleResize propagates the new terminal size to every component.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	m.editor.SetSize(msg.Width, m.editorHeight())
	m.status = m.status.SetWidth(msg.Width)
	m.toast = m.toast.SetSize(msg.Width, msg.Height)
	m.toolbox = m.toolbox.SetSize(msg.Width, msg.Height)
	m.settings = m.settings.SetSize(msg.Width, msg.Height)
	m.helpView = m.helpView.SetSize(msg.Width, msg.Height)
	m.logView.SetSize(msg.Width, msg.Height)
	m.preview.SetSize(msg.Width, msg.Height)
	return m
}

// editorHeight is the terminal height minus the status bar row.
func (m Model) editorHeight() int {
	if m.cfg.Editor.ShowStatusBar && m.height > 0 {
		return m.height - 1
	}
	return m.height
}

// handleKey routes a key press: global chords first, then the log
// overlay, the help screen, the open menu, and finally the dispatcher.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.debug && key.Matches(msg, m.keymap.LogOverlay) {
		m.logView.Toggle()
		return m, nil
	}
	if key.Matches(msg, m.keymap.Quit) {
		return m, tea.Quit
	}
	if m.logView.Visible() {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	if m.preview.Visible() {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	if key.Matches(msg, m.keymap.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		// Any other key dismisses the help screen.
		m.showHelp = false
		return m, nil
	}
	if key.Matches(msg, m.keymap.Save) {
		return m, m.saveCmd()
	}
	if key.Matches(msg, m.keymap.Preview) {
		if m.fl.Enabled(flags.FlagMarkdownPreview) {
			m.preview.Show(document.Serialize(m.reg))
		}
		return m, nil
	}

	if cmd, handled := m.routeMenuKey(msg); handled {
		return m, cmd
	}

	cmd := m.disp.HandleKey(msg)
	if mutatesDocument(m.keymap, msg) {
		m.noteEdit()
	}
	sync := m.syncMenus()
	return m, tea.Batch(cmd, sync)
}

// routeMenuKey feeds keys to the open panel. The toolbox owns every key
// while open because its filter input takes the typing; the settings
// menu owns only the focus-cycling keys. Shifted vertical arrows bypass
// both so block selection keeps working, and the dispatcher closes the
// panel as a side effect.
func (m *Model) routeMenuKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !m.bar.IsOpen() {
		return nil, false
	}
	if key.Matches(msg, m.keymap.SelectUp) || key.Matches(msg, m.keymap.SelectDown) {
		return nil, false
	}

	var cmd tea.Cmd
	switch m.bar.Current() {
	case toolbar.PanelToolbox:
		m.toolbox, cmd = m.toolbox.Update(msg)
	case toolbar.PanelSettings:
		if !m.bar.OwnsKey(msg) {
			return nil, false
		}
		m.settings, cmd = m.settings.Update(msg)
	default:
		return nil, false
	}
	return cmd, true
}

// syncMenus resets the panel models when the dispatcher flipped the
// toolbar state during this update. Reopening resets the toolbox filter
// even for the same target block.
func (m *Model) syncMenus() tea.Cmd {
	cur := m.bar.Current()
	if cur == m.openPanel && (cur == toolbar.PanelNone || m.bar.Target() == m.openTarget) {
		return nil
	}
	m.openPanel = cur
	m.openTarget = m.bar.Target()

	var cmd tea.Cmd
	switch cur {
	case toolbar.PanelToolbox:
		m.toolbox, cmd = m.toolbox.Open(m.bar.Target())
	case toolbar.PanelSettings:
		m.settings = m.settings.Open(m.bar.Target())
	}
	return cmd
}

// mutatesDocument reports whether a key can change the serialized
// document. Pure navigation and selection keys are excluded; tab is a
// candidate because it indents inside code blocks.
func mutatesDocument(km keys.EditorKeyMap, msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, km.Enter),
		key.Matches(msg, km.LineBreak),
		key.Matches(msg, km.Backspace),
		key.Matches(msg, km.Delete),
		key.Matches(msg, km.NextInput),
		key.Matches(msg, km.PrevInput):
		return true
	}
	return msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace
}

// noteEdit refreshes layout after a possible document change and
// re-evaluates the dirty flag against the last saved serialization.
func (m *Model) noteEdit() {
	m.editor.Invalidate()
	if !m.dirty && document.Serialize(m.reg) != m.savedText {
		m.dirty = true
	}
}

// handleToolboxSelected converts the target block to the chosen kind.
func (m Model) handleToolboxSelected(msg toolbox.SelectedMsg) (tea.Model, tea.Cmd) {
	m.bar.CloseAll()
	sync := m.syncMenus()

	idx := m.reg.IndexOf(msg.Block)
	if idx < 0 {
		return m, sync
	}
	b := m.reg.Block(idx)
	b.ConvertTo(msg.Kind)

	if b.Kind().HasInputs() {
		m.nav.SetToBlock(idx, caret.PosEnd)
	} else {
		m.nav.Clamp()
	}
	m.noteEdit()
	m.editor.ScrollBlockIntoView(idx)
	log.Info(log.CatUI, "block converted", "index", idx, "kind", msg.Kind)
	return m, sync
}

// handleBlockAction applies a settings menu action to its target block.
func (m Model) handleBlockAction(msg blocksettings.ActionMsg) (tea.Model, tea.Cmd) {
	m.bar.CloseAll()
	sync := m.syncMenus()

	idx := m.reg.IndexOf(msg.Block)
	if idx < 0 {
		return m, sync
	}

	switch msg.Action {
	case blocksettings.ActionMoveUp:
		if idx == 0 {
			return m, sync
		}
		m.reg.Move(idx, idx-1)
		m.trackBlock(idx - 1)

	case blocksettings.ActionMoveDown:
		if idx == m.reg.Len()-1 {
			return m, sync
		}
		m.reg.Move(idx, idx+1)
		m.trackBlock(idx + 1)

	case blocksettings.ActionDuplicate:
		m.reg.Insert(idx+1, m.reg.Block(idx).Clone())
		m.trackBlock(idx + 1)

	case blocksettings.ActionDelete:
		m.reg.Remove(idx)
		m.reg.EnsureNotEmpty()
		target := idx
		if target >= m.reg.Len() {
			target = m.reg.Len() - 1
		}
		m.trackBlock(target)
	}

	m.noteEdit()
	log.Info(log.CatUI, "block action applied", "index", idx, "action", int(msg.Action))
	return m, sync
}

// trackBlock moves focus to the block at idx and reveals it. Blocks
// that cannot hold the caret fall back to a clamp.
func (m *Model) trackBlock(idx int) {
	if !m.nav.SetToBlock(idx, caret.PosStart) {
		m.nav.Clamp()
	}
	m.editor.ScrollBlockIntoView(idx)
}

// saveCmd serializes the document now and writes it off the update loop.
func (m Model) saveCmd() tea.Cmd {
	if m.path == "" {
		return toaster.ShowCmd("No file to save to", toaster.StyleWarn)
	}
	content := document.Serialize(m.reg)
	path := m.path
	blocks := m.reg.Len()
	return func() tea.Msg {
		_, span := tracing.StartSpan(context.Background(), tracing.SpanDocumentSave)
		span.SetAttributes(
			attribute.String(tracing.AttrDocumentPath, path),
			attribute.Int(tracing.AttrBlockCount, blocks),
		)
		err := os.WriteFile(path, []byte(content), 0o644)
		tracing.EndSpan(span, err)
		if err != nil {
			return saveResultMsg{content: content, err: err}
		}
		return saveResultMsg{content: content}
	}
}

func (m Model) handleSaveResult(msg saveResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatDocument, "save failed", msg.err)
		return m, toaster.ShowCmd("Save failed: "+msg.err.Error(), toaster.StyleError)
	}
	m.dirty = false
	m.savedText = msg.content
	m.lastSave = time.Now()
	log.Info(log.CatDocument, "document saved", "path", m.path)
	return m, toaster.ShowCmd("Saved "+filepath.Base(m.path), toaster.StyleSuccess)
}

// handleWatcherEvent reacts to the document changing on disk. A clean
// buffer reloads; unsaved edits get a warning instead so they are never
// silently discarded.
func (m Model) handleWatcherEvent(ev pubsub.Event[watcher.Event]) (tea.Model, tea.Cmd) {
	var listen tea.Cmd
	if m.watcherListener != nil {
		listen = m.watcherListener.Listen()
	}

	switch ev.Payload.Kind {
	case watcher.FileChanged:
		if time.Since(m.lastSave) < saveEchoWindow {
			// Our own write coming back through the watcher.
			return m, listen
		}
		if m.dirty {
			return m, tea.Batch(
				toaster.ShowCmd("File changed on disk; save to overwrite", toaster.StyleWarn),
				listen,
			)
		}
		return m, tea.Batch(m.readFileCmd(), listen)

	case watcher.FileRemoved:
		return m, tea.Batch(
			toaster.ShowCmd("File removed on disk", toaster.StyleWarn),
			listen,
		)

	case watcher.WatchError:
		log.ErrorErr(log.CatWatcher, "watch error", ev.Payload.Err)
	}
	return m, listen
}

func (m Model) readFileCmd() tea.Cmd {
	path := m.path
	return func() tea.Msg {
		_, span := tracing.StartSpan(context.Background(), tracing.SpanDocumentReload)
		span.SetAttributes(attribute.String(tracing.AttrDocumentPath, path))
		data, err := os.ReadFile(path)
		tracing.EndSpan(span, err)
		if err != nil {
			return reloadResultMsg{err: err}
		}
		return reloadResultMsg{content: string(data)}
	}
}

// handleReload swaps the registry contents for the re-read document.
// Every collaborator holds the registry pointer, so the swap is done in
// place.
func (m Model) handleReload(msg reloadResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatDocument, "reload failed", msg.err)
		return m, toaster.ShowCmd("Reload failed: "+msg.err.Error(), toaster.StyleError)
	}

	m.rect.End()
	*m.reg = *document.ParseString(msg.content)
	m.cross.Clear(crossselect.ReasonCommand)
	m.reg.EnsureFocusable()
	m.nav.Clamp()
	m.savedText = document.Serialize(m.reg)
	m.dirty = false
	m.editor.Invalidate()
	log.Info(log.CatDocument, "document reloaded", "path", m.path, "blocks", m.reg.Len())
	return m, toaster.ShowCmd("Reloaded from disk", toaster.StyleInfo)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	m.editor.SetFocus(m.nav.BlockIndex(), m.nav.InputIndex())
	m.editor.SetCaretVisible(!m.reg.AnySelected() && !m.bar.IsOpen())
	view := m.editor.View()

	if r, ok := m.rect.Rect(); ok {
		scroll := m.editor.ScrollOffset()
		view = overlay.Frame(m.width, m.editor.ViewportHeight(),
			r.X1, r.Y1-scroll, r.X2, r.Y2-scroll, styles.RectStyle, view)
	}

	if m.cfg.Editor.ShowStatusBar {
		bar := m.status.
			SetDirty(m.dirty).
			SetCounts(m.reg.Len(), len(m.reg.SelectedIndices())).
			SetPosition(m.nav.BlockIndex(), m.nav.InputIndex())
		view += "\n" + bar.View()
	}

	view = m.overlayMenus(view)

	if m.preview.Visible() {
		view = m.preview.Overlay(view)
	}
	if m.toast.Visible() {
		view = m.toast.Overlay(view, m.width, m.height)
	}
	if m.showHelp {
		view = m.helpView.Overlay(view)
	}
	if m.debug && m.logView.Visible() {
		view = m.logView.Overlay(view)
	}

	return zone.Scan(view)
}

// overlayMenus draws the open panel anchored under its target block.
func (m Model) overlayMenus(bg string) string {
	if !m.bar.IsOpen() {
		return bg
	}
	x, y := m.menuAnchor()
	switch m.bar.Current() {
	case toolbar.PanelToolbox:
		return m.toolbox.SetAnchor(x, y).Overlay(bg)
	case toolbar.PanelSettings:
		return m.settings.SetAnchor(x, y).Overlay(bg)
	}
	return bg
}

// menuAnchor picks the viewport cell one row below the target block, at
// the content column's left edge.
func (m Model) menuAnchor() (x, y int) {
	left, _ := m.editor.ColumnBounds()
	idx := m.reg.IndexOf(m.bar.Target())
	if idx < 0 {
		return left, 0
	}
	_, bottom, ok := m.editor.BlockRowRange(idx)
	if !ok {
		return left, 0
	}
	return left, bottom - m.editor.ScrollOffset() + 1
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	if m.stop != nil {
		m.stop()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}
