package tui

// Key binding constants used in handleKey.
const (
	KeyQuit       = "q"
	KeyQuitUpper  = "Q"
	KeyCtrlC      = "ctrl+c"
	KeySpace      = " "
	KeyPause      = "p"
	KeyAnalyze    = "enter"
	KeyLanguage   = "l"
	KeyReset      = "x"
	KeyScrollDown = "j"
	KeyScrollUp   = "k"
	KeyArrowDown  = "down"
	KeyArrowUp    = "up"
)
