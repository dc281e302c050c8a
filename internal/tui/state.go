package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/lp/internal/tui/layout"
)

// Mode is the current input mode of the app.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeReorder
	ModeAdd
	ModeConfirmDelete
	ModeImport
	ModeHelp
)

// Pane identifies which pane has keyboard focus.
type Pane int

const (
	PaneGroups Pane = iota
	PaneLinks
)

// MessageType categorizes the status bar message.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// SearchState holds the inline page-scoped search input.
type SearchState struct {
	Input textinput.Model
}

// NewSearchState creates a SearchState with an initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Placeholder = "Search page..."
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth
	return SearchState{Input: input}
}

// Reset clears the search input.
func (s *SearchState) Reset() {
	s.Input.Reset()
}

// AddState holds state for the create-link modal.
type AddState struct {
	NameInput textinput.Model
	URLInput  textinput.Model
	Focus     int // 0 = name, 1 = url
}

// NewAddState creates an AddState with initialized inputs.
func NewAddState(cfg layout.LayoutConfig) AddState {
	nameInput := textinput.New()
	nameInput.Placeholder = "Name"
	nameInput.CharLimit = cfg.Input.NameCharLimit
	nameInput.Width = cfg.Input.StandardWidth

	urlInput := textinput.New()
	urlInput.Placeholder = "https://..."
	urlInput.CharLimit = cfg.Input.URLCharLimit
	urlInput.Width = cfg.Input.StandardWidth

	return AddState{
		NameInput: nameInput,
		URLInput:  urlInput,
	}
}

// Reset clears the inputs and focuses the name field.
func (s *AddState) Reset() {
	s.NameInput.Reset()
	s.URLInput.Reset()
	s.Focus = 0
	s.NameInput.Focus()
	s.URLInput.Blur()
}

// NextField moves focus to the other input.
func (s *AddState) NextField() {
	if s.Focus == 0 {
		s.Focus = 1
		s.NameInput.Blur()
		s.URLInput.Focus()
	} else {
		s.Focus = 0
		s.URLInput.Blur()
		s.NameInput.Focus()
	}
}

// ImportState holds the import file picker list.
type ImportState struct {
	Files  []string
	Cursor int
}

// Reset clears the picker state.
func (s *ImportState) Reset() {
	s.Files = nil
	s.Cursor = 0
}
