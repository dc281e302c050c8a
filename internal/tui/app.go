package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/lp/internal/exporter"
	"github.com/nikbrunner/lp/internal/model"
	"github.com/nikbrunner/lp/internal/panel"
	"github.com/nikbrunner/lp/internal/picker"
	"github.com/nikbrunner/lp/internal/tui/layout"
)

// App is the main bubbletea model for the link admin panel. All link and
// group state lives in the panel; App adds cursors, input modes, and
// rendering on top.
type App struct {
	panel        *panel.Panel
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	exportDir    string
	importDir    string

	mode        Mode
	focusedPane Pane
	cursor      int // row index into the displayed link sequence
	groupCursor int // row index into the group catalog

	pending []*model.Link // working order during a reorder gesture

	search SearchState
	add    AddState
	files  ImportState

	// For gg command
	lastKeyWasG bool

	// A panel operation is in flight; mutating keys are ignored until
	// its message arrives.
	busy bool

	messageText string
	messageType MessageType

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Panel        *panel.Panel
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	ExportDir    string               // optional, defaults to ~/Downloads
	ImportDir    string               // optional, defaults to ExportDir
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutConfig := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutConfig = *params.LayoutConfig
	}

	exportDir := params.ExportDir
	if exportDir == "" {
		if path, err := exporter.DefaultExportPath(); err == nil {
			exportDir = filepath.Dir(path)
		}
	}
	importDir := params.ImportDir
	if importDir == "" {
		importDir = exportDir
	}

	return App{
		panel:        params.Panel,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutConfig,
		exportDir:    exportDir,
		importDir:    importDir,
		focusedPane:  PaneLinks,
		search:       NewSearchState(layoutConfig),
		add:          NewAddState(layoutConfig),
		width:        80,
		height:       24,
	}
}

// WithDimensions returns a copy with fixed terminal dimensions.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Messages delivered by panel commands.
type (
	groupsLoadedMsg struct{ err error }
	pageLoadedMsg   struct{ err error }
	opDoneMsg       struct {
		err  error
		info string // success message, "" = silent
	}
)

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.loadGroupsCmd()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case groupsLoadedMsg:
		a.busy = false
		if msg.err != nil {
			a.setMessage(MessageError, msg.err.Error())
		}
		if i := a.panel.SelectedIndex(); i >= 0 {
			a.groupCursor = i
		}
		a.clampCursors()
		return a, nil

	case pageLoadedMsg:
		a.busy = false
		if msg.err != nil {
			a.setMessage(MessageError, msg.err.Error())
		}
		a.clampCursors()
		return a, nil

	case opDoneMsg:
		a.busy = false
		if msg.err != nil {
			a.setMessage(MessageError, msg.err.Error())
		} else if msg.info != "" {
			a.setMessage(MessageSuccess, msg.info)
		}
		a.clampCursors()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// handleKey dispatches a key press to the handler for the current mode.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case ModeSearch:
		return a.handleSearchKey(msg)
	case ModeReorder:
		return a.handleReorderKey(msg)
	case ModeAdd:
		return a.handleAddKey(msg)
	case ModeConfirmDelete:
		return a.handleConfirmDeleteKey(msg)
	case ModeImport:
		return a.handleImportKey(msg)
	case ModeHelp:
		return a.handleHelpKey(msg)
	default:
		return a.handleNormalKey(msg)
	}
}

func (a App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.lastKeyWasG = false
			if a.focusedPane == PaneGroups {
				a.groupCursor = 0
			} else {
				a.cursor = 0
			}
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
		return a, nil

	case key.Matches(msg, a.keys.Left):
		a.focusedPane = PaneGroups
		return a, nil

	case key.Matches(msg, a.keys.Right):
		return a.openGroup()

	case key.Matches(msg, a.keys.Down):
		if a.focusedPane == PaneGroups {
			if a.groupCursor < len(a.panel.Groups())-1 {
				a.groupCursor++
			}
		} else if n := len(a.displayedLinks()); n > 0 && a.cursor < n-1 {
			a.cursor++
		}
		return a, nil

	case key.Matches(msg, a.keys.Up):
		if a.focusedPane == PaneGroups {
			if a.groupCursor > 0 {
				a.groupCursor--
			}
		} else if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case key.Matches(msg, a.keys.Bottom):
		if a.focusedPane == PaneGroups {
			if n := len(a.panel.Groups()); n > 0 {
				a.groupCursor = n - 1
			}
		} else if n := len(a.displayedLinks()); n > 0 {
			a.cursor = n - 1
		}
		return a, nil
	}

	if a.focusedPane != PaneLinks {
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.search.Input.SetValue(a.panel.Keyword())
		a.search.Input.Focus()
		return a, nil

	case key.Matches(msg, a.keys.Toggle):
		if links := a.displayedLinks(); a.cursor < len(links) {
			a.panel.Toggle(links[a.cursor].ID)
		}
		return a, nil

	case key.Matches(msg, a.keys.ToggleAll):
		a.panel.ToggleAll(!a.panel.AllSelected())
		return a, nil

	case key.Matches(msg, a.keys.NextActive):
		a.panel.Next()
		return a, nil

	case key.Matches(msg, a.keys.PrevActive):
		a.panel.Prev()
		return a, nil

	case key.Matches(msg, a.keys.YankURL):
		return a.yankURL()

	case key.Matches(msg, a.keys.MoveDown), key.Matches(msg, a.keys.MoveUp):
		return a.startReorder(msg)
	}

	if a.busy {
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.PrevPage):
		if a.panel.PageNum() > 1 {
			a.busy = true
			return a, a.changePageCmd(a.panel.PageNum() - 1)
		}

	case key.Matches(msg, a.keys.NextPage):
		if a.panel.PageNum()*a.panel.PageSize() < a.panel.Total() {
			a.busy = true
			return a, a.changePageCmd(a.panel.PageNum() + 1)
		}

	case key.Matches(msg, a.keys.Refresh):
		a.busy = true
		return a, a.loadGroupsCmd()

	case key.Matches(msg, a.keys.Add):
		if a.panel.SelectedGroup() == nil {
			a.setMessage(MessageWarning, "no group selected")
			return a, nil
		}
		a.mode = ModeAdd
		a.add.Reset()
		return a, nil

	case key.Matches(msg, a.keys.Delete):
		if a.panel.CheckedCount() == 0 {
			a.setMessage(MessageWarning, "no links selected")
			return a, nil
		}
		a.mode = ModeConfirmDelete
		return a, nil

	case key.Matches(msg, a.keys.Export):
		if a.panel.CheckedCount() == 0 {
			a.setMessage(MessageWarning, "no links selected")
			return a, nil
		}
		a.busy = true
		return a, a.exportCmd()

	case key.Matches(msg, a.keys.Import):
		files, err := picker.ListImportFiles(a.importDir)
		if err != nil {
			a.setMessage(MessageError, "list import files: "+err.Error())
			return a, nil
		}
		if len(files) == 0 {
			a.setMessage(MessageWarning, "no .yaml/.yml files in "+a.importDir)
			return a, nil
		}
		a.mode = ModeImport
		a.files = ImportState{Files: files}
		return a, nil
	}

	return a, nil
}

// openGroup applies the highlighted group and moves focus to the links.
func (a App) openGroup() (tea.Model, tea.Cmd) {
	if a.focusedPane == PaneLinks {
		return a, nil
	}
	a.focusedPane = PaneLinks
	a.cursor = 0
	if a.busy || len(a.panel.Groups()) == 0 || a.groupCursor == a.panel.SelectedIndex() {
		return a, nil
	}
	a.busy = true
	return a, a.selectGroupCmd(a.groupCursor)
}

// startReorder begins a reorder gesture over the displayed sequence and
// applies the first move.
func (a App) startReorder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	links := a.panel.View()
	if len(links) < 2 {
		return a, nil
	}
	a.mode = ModeReorder
	a.pending = make([]*model.Link, len(links))
	copy(a.pending, links)
	return a.handleReorderKey(msg)
}

func (a App) handleReorderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.MoveDown):
		if a.cursor < len(a.pending)-1 {
			a.pending[a.cursor], a.pending[a.cursor+1] = a.pending[a.cursor+1], a.pending[a.cursor]
			a.cursor++
		}
		return a, nil

	case key.Matches(msg, a.keys.MoveUp):
		if a.cursor > 0 {
			a.pending[a.cursor], a.pending[a.cursor-1] = a.pending[a.cursor-1], a.pending[a.cursor]
			a.cursor--
		}
		return a, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		seq := a.pending
		a.pending = nil
		a.mode = ModeNormal
		a.busy = true
		return a, a.reorderCmd(seq)

	case tea.KeyEsc:
		a.pending = nil
		a.mode = ModeNormal
		return a, nil
	}

	return a, nil
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.search.Reset()
		a.panel.SetKeyword("")
		a.mode = ModeNormal
		a.cursor = 0
		return a, nil

	case tea.KeyEnter:
		// Keyword stays applied until cleared or the page changes
		a.search.Input.Blur()
		a.mode = ModeNormal
		return a, nil
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	a.panel.SetKeyword(a.search.Input.Value())
	a.cursor = 0
	return a, cmd
}

func (a App) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		return a, nil

	case tea.KeyTab, tea.KeyShiftTab:
		a.add.NextField()
		return a, nil

	case tea.KeyEnter:
		name := a.add.NameInput.Value()
		url := a.add.URLInput.Value()
		if url == "" {
			a.setMessage(MessageWarning, "URL is required")
			return a, nil
		}
		if name == "" {
			name = url
		}
		a.mode = ModeNormal
		a.busy = true
		return a, a.createCmd(name, url)
	}

	var cmd tea.Cmd
	if a.add.Focus == 0 {
		a.add.NameInput, cmd = a.add.NameInput.Update(msg)
	} else {
		a.add.URLInput, cmd = a.add.URLInput.Update(msg)
	}
	return a, cmd
}

func (a App) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		a.mode = ModeNormal
		a.busy = true
		return a, a.deleteCmd()
	case tea.KeyEsc:
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) handleImportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.files.Reset()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		path := a.files.Files[a.files.Cursor]
		a.files.Reset()
		a.mode = ModeNormal
		a.busy = true
		return a, a.importCmd(path)
	}

	switch {
	case key.Matches(msg, a.keys.Down):
		if a.files.Cursor < len(a.files.Files)-1 {
			a.files.Cursor++
		}
	case key.Matches(msg, a.keys.Up):
		if a.files.Cursor > 0 {
			a.files.Cursor--
		}
	}
	return a, nil
}

func (a App) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc || key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Quit) {
		a.mode = ModeNormal
	}
	return a, nil
}

// yankURL copies the navigator's link, or the cursor row, to the clipboard.
func (a App) yankURL() (tea.Model, tea.Cmd) {
	link := a.panel.Active()
	if link == nil {
		if links := a.displayedLinks(); a.cursor < len(links) {
			link = links[a.cursor]
		}
	}
	if link == nil {
		return a, nil
	}
	if err := clipboard.WriteAll(link.URL); err != nil {
		a.setMessage(MessageError, "clipboard: "+err.Error())
		return a, nil
	}
	a.setMessage(MessageSuccess, "copied "+link.URL)
	return a, nil
}

func (a App) loadGroupsCmd() tea.Cmd {
	p := a.panel
	return func() tea.Msg {
		return groupsLoadedMsg{err: p.LoadGroups(context.Background())}
	}
}

func (a App) selectGroupCmd(i int) tea.Cmd {
	p := a.panel
	return func() tea.Msg {
		return pageLoadedMsg{err: p.Select(context.Background(), i)}
	}
}

func (a App) changePageCmd(page int) tea.Cmd {
	p := a.panel
	size := a.panel.PageSize()
	return func() tea.Msg {
		return pageLoadedMsg{err: p.ChangePage(context.Background(), page, size)}
	}
}

func (a App) reorderCmd(seq []*model.Link) tea.Cmd {
	p := a.panel
	return func() tea.Msg {
		if err := p.Reorder(context.Background(), seq); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{info: fmt.Sprintf("reordered %d links", len(seq))}
	}
}

func (a App) deleteCmd() tea.Cmd {
	p := a.panel
	count := a.panel.CheckedCount()
	return func() tea.Msg {
		if err := p.DeleteChecked(context.Background()); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{info: fmt.Sprintf("deleting %d links", count)}
	}
}

func (a App) exportCmd() tea.Cmd {
	p := a.panel
	path := filepath.Join(a.exportDir, exporter.ExportFileName)
	count := a.panel.CheckedCount()
	return func() tea.Msg {
		if err := p.ExportChecked(path); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{info: fmt.Sprintf("exported %d links to %s", count, path)}
	}
}

func (a App) importCmd(path string) tea.Cmd {
	p := a.panel
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return opDoneMsg{err: err}
		}
		defer f.Close()

		n, err := p.Import(context.Background(), f)
		if err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{info: fmt.Sprintf("imported %d links", n)}
	}
}

func (a App) createCmd(name, url string) tea.Cmd {
	p := a.panel
	return func() tea.Msg {
		link := model.NewLink(model.NewLinkParams{Name: name, URL: url})
		if err := p.CreateAndAssign(context.Background(), link); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{info: "added " + name}
	}
}

// clampCursors keeps both cursors inside their lists after a reload.
func (a *App) clampCursors() {
	if n := len(a.displayedLinks()); a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	if n := len(a.panel.Groups()); a.groupCursor >= n {
		a.groupCursor = n - 1
	}
	if a.groupCursor < 0 {
		a.groupCursor = 0
	}
}

func (a *App) setMessage(mt MessageType, text string) {
	a.messageType = mt
	a.messageText = text
}
