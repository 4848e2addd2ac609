package export

import "errors"

var (
	// ErrNoPlan is returned when an export is requested with no plan held.
	ErrNoPlan = errors.New("no study plan to export")

	// ErrClipboard indicates the host clipboard rejected the write.
	ErrClipboard = errors.New("clipboard unavailable")
)
