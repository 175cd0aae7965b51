package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Tree view colors
	TreeNormalText   tcell.Color
	TreeSelectedItem tcell.Color
	TreeFolder       tcell.Color
	TreeScript       tcell.Color

	// Log widget colors
	LogNormal   tcell.Color
	LogElevated tcell.Color

	// Editor colors
	EditorText   tcell.Color
	EditorCursor tcell.Color

	// Command line colors
	CommandPrompt tcell.Color
	CommandText   tcell.Color

	// Status line colors
	StatusMode     tcell.Color
	StatusMessage  tcell.Color
	StatusModified tcell.Color

	// Header colors
	HeaderTitle tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			TreeNormalText:   tcell.ColorDefault,
			TreeSelectedItem: tcell.ColorDefault,
			TreeFolder:       tcell.ColorDefault,
			TreeScript:       tcell.ColorDefault,
			LogNormal:        tcell.ColorDefault,
			LogElevated:      tcell.ColorRed,
			EditorText:       tcell.ColorDefault,
			EditorCursor:     tcell.ColorDefault,
			CommandPrompt:    tcell.ColorDefault,
			CommandText:      tcell.ColorDefault,
			StatusMode:       tcell.ColorDefault,
			StatusMessage:    tcell.ColorDefault,
			StatusModified:   tcell.ColorYellow,
			HeaderTitle:      tcell.ColorDefault,
		},
	}
}

// Dark returns a high-contrast dark theme
func Dark() *Theme {
	return &Theme{
		Name: "dark",
		Colors: Colors{
			TreeNormalText:   HexToColor("#c0caf5"),
			TreeSelectedItem: HexToColor("#7aa2f7"),
			TreeFolder:       HexToColor("#e0af68"),
			TreeScript:       HexToColor("#9ece6a"),
			LogNormal:        HexToColor("#a9b1d6"),
			LogElevated:      HexToColor("#f7768e"),
			EditorText:       HexToColor("#c0caf5"),
			EditorCursor:     HexToColor("#7aa2f7"),
			CommandPrompt:    HexToColor("#7aa2f7"),
			CommandText:      HexToColor("#c0caf5"),
			StatusMode:       HexToColor("#7aa2f7"),
			StatusMessage:    HexToColor("#a9b1d6"),
			StatusModified:   HexToColor("#e0af68"),
			HeaderTitle:      HexToColor("#7aa2f7"),
		},
	}
}

// ByName returns the named theme, falling back to Default
func ByName(name string) *Theme {
	switch name {
	case "dark":
		return Dark()
	default:
		return Default()
	}
}
