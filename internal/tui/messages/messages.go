package messages

import "time"

// TickMsg is the idle heartbeat. It changes nothing.
type TickMsg time.Time

// DirChangedMsg reports that the contents of Dir changed on disk.
type DirChangedMsg struct {
	Dir  string
	Path string
}

// ErrorMsg carries a failure to show in the status line.
type ErrorMsg struct {
	Err error
}
