package machine

import (
	"fmt"
	"io"

	"github.com/wordvm/um32/pkg/word"
)

// Load reads big-endian words from image into a freshly allocated segment 0
// of the machine. Because m.Mem has not yet allocated anything, the
// ordinary allocation path is guaranteed to hand back identifier 0 here.
//
// Any short read is fatal: a truncated program image leaves the machine
// without a complete segment 0 to execute.
func (m *Machine) Load(image io.Reader, words uint32) error {
	id := m.Mem.Allocate(words)
	for offset := uint32(0); offset < words; offset++ {
		w, err := word.ReadWord(image)
		if err != nil {
			return fmt.Errorf("machine: loading word %d of %d: %w", offset, words, err)
		}
		if err := m.Mem.Write(id, offset, w); err != nil {
			return fmt.Errorf("machine: loading word %d of %d: %w", offset, words, err)
		}
	}
	return nil
}
