package utils

import (
	"io"

	"github.com/maksimkurb/cgproxy/src/internal/log"
)

// CloseOrWarn closes c and logs a warning if that fails.
func CloseOrWarn(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warnf("Failed to close file: %v", err)
	}
}
