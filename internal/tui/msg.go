package tui

// MsgReflection delivers the result of a reflection request.
type MsgReflection struct {
	Text string
}

// MsgReload is sent when the progress slot was rewritten by another process.
type MsgReload struct{}

// MsgError reports a failure to show in the message line.
type MsgError struct {
	Msg string
}

// MsgInfo reports a status line.
type MsgInfo struct {
	Msg string
}
