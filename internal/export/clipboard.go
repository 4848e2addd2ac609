package export

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Clipboard writes text to the host clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard uses the platform clipboard (pbcopy, xclip, xsel,
// wl-copy or the Windows API).
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility found", ErrClipboard)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	return nil
}
