package app

// Key binding constants used by the screens.
const (
	KeyQuit      = "q"
	KeyCtrlC     = "ctrl+c"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyJ         = "j"
	KeyK         = "k"
	KeyEnter     = "enter"
	KeyEsc       = "esc"
	KeyBackspace = "backspace"
	KeyTab       = "tab"
	KeyShiftTab  = "shift+tab"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeySave      = "ctrl+s"
	KeyNew       = "n"
	KeyEdit      = "e"
	KeyDelete    = "d"
	KeyConfirm   = "y"
	KeyCancel    = "n"
)
