package app

import "time"

// TickMsg triggers a preview redraw.
type TickMsg time.Time

// SavedMsg reports the outcome of a file export.
type SavedMsg struct {
	What string
	Path string
	Err  error
}

// ScanErrorMsg reports head errors.
type ScanErrorMsg struct {
	Err error
}
