// Package tui: keyboard binding configuration.
package tui

// Keymap defines the keyboard shortcuts for the watch screen.
type Keymap struct {
	Quit  string
	Rerun string
}

// defaultKeymap returns the default watch key bindings.
func defaultKeymap() Keymap {
	return Keymap{
		Quit:  "q",
		Rerun: "r",
	}
}
