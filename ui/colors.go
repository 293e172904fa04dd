package ui

import "github.com/gdamore/tcell/v2"

// Colors defines the Nord-inspired palette for the replay browser chrome.
var Colors = struct {
	Label       tcell.Color // Light gray for labels
	Hint        tcell.Color // Dim gray for hints
	ButtonFocus tcell.Color // Selected list row
	ButtonText  tcell.Color // Selected list row text
	Accent      tcell.Color // Headings
}{
	Label:       tcell.PaletteColor(250),
	Hint:        tcell.PaletteColor(245),
	ButtonFocus: tcell.PaletteColor(109),
	ButtonText:  tcell.PaletteColor(255),
	Accent:      tcell.PaletteColor(109),
}
