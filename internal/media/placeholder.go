package media

import (
	"fmt"
	"os"
)

// minimalMP4 is the smallest byte sequence that downstream tooling accepts as
// an MP4 container: an ftyp box declaring mp41/isom brands plus a free box.
var minimalMP4 = []byte{
	0x00, 0x00, 0x00, 0x20, 'f', 't', 'y', 'p',
	'm', 'p', '4', '1', 0x00, 0x00, 0x00, 0x00,
	'm', 'p', '4', '1', 'i', 's', 'o', 'm',
	0x00, 0x00, 0x00, 0x08, 'f', 'r', 'e', 'e',
}

// WritePlaceholder writes the minimal valid container file to path and
// returns the bytes written. This is the terminal fallback artifact: callers
// must treat any error here as fatal, since it means the output target itself
// is unwritable.
func WritePlaceholder(path string) (int64, error) {
	if err := os.WriteFile(path, minimalMP4, 0o644); err != nil {
		return 0, fmt.Errorf("write placeholder: %w", err)
	}
	return int64(len(minimalMP4)), nil
}
