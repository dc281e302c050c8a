package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + header (1) + pane borders (2) + status bar (3) = 7
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// GroupsWidthPercent is the share of the terminal width given to the
	// group catalog pane.
	GroupsWidthPercent int

	// MinGroupsWidth is the minimum width of the group pane.
	MinGroupsWidth int

	// TwoPaneWidthOffset is subtracted from the terminal width before the
	// link pane takes the remainder. Accounts for borders and spacing.
	TwoPaneWidthOffset int

	// MinLinksWidth is the minimum width of the link pane.
	MinLinksWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	// Accounts for pane border/padding on each side.
	ContentPadding int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// LargeWidthPercent is used for modals needing more space.
	LargeWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// PickerMaxVisible: max files shown in the import file picker.
	PickerMaxVisible int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	// Character limits
	NameCharLimit   int
	URLCharLimit    int
	SearchCharLimit int

	// Display widths
	StandardWidth int // Used for name and URL inputs
	SearchWidth   int // Used for the inline search input (narrower)
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:    7, // app padding (1) + header (1) + pane borders (2) + status bar (3)
			MinHeight:          5,
			GroupsWidthPercent: 28,
			MinGroupsWidth:     18,
			TwoPaneWidthOffset: 6,
			MinLinksWidth:      30,
			ContentPadding:     4,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  40,
			LargeWidthPercent:    50,
			MinWidth:             40,
			MaxWidth:             70,
			PickerMaxVisible:     8,
			HelpLeftColumnWidth:  18,
			HelpRightColumnWidth: 22,
		},
		Input: InputConfig{
			NameCharLimit:   100,
			URLCharLimit:    500,
			SearchCharLimit: 100,
			StandardWidth:   40,
			SearchWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
