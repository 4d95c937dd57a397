package common

import "rime/internal/navigator"

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Snapshot() navigator.View
	StatusView() string
	HelpView() string
	Size() (width, height int)
}
