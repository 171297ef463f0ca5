package sampling

import (
	"encoding/binary"
	"fmt"
)

// DefaultMaxPolls is the default number of status polls a PollingSource
// performs for a single word before declaring the device unavailable.
const DefaultMaxPolls = 1 << 20

// Device is a register-level true random number generator, such as the
// RNG peripheral of a microcontroller: a status flag signals that a fresh
// 32-bit word can be read from the data register.
type Device interface {
	// DataReady reports whether a fresh word is available.
	DataReady() bool
	// ReadWord returns the available word and consumes it.
	ReadWord() uint32
}

// PollingSource adapts a Device into a PRNG. Each word is acquired by
// busy-polling the device status, at most MaxPolls times.
type PollingSource struct {
	dev      Device
	maxPolls int
	word     [4]byte
}

// NewPollingSource creates a PollingSource reading from dev.
// A non-positive maxPolls selects DefaultMaxPolls.
func NewPollingSource(dev Device, maxPolls int) *PollingSource {
	if maxPolls <= 0 {
		maxPolls = DefaultMaxPolls
	}
	return &PollingSource{dev: dev, maxPolls: maxPolls}
}

// Read fills p with device words, serialized little-endian. It returns
// ErrEntropyUnavailable if the device does not become ready in time.
func (s *PollingSource) Read(p []byte) (n int, err error) {

	defer func() { s.word = [4]byte{} }()

	for n < len(p) {

		var w uint32
		if w, err = s.readWord(); err != nil {
			return
		}

		binary.LittleEndian.PutUint32(s.word[:], w)
		n += copy(p[n:], s.word[:])
	}

	return
}

func (s *PollingSource) readWord() (uint32, error) {
	for i := 0; i < s.maxPolls; i++ {
		if s.dev.DataReady() {
			return s.dev.ReadWord(), nil
		}
	}
	return 0, fmt.Errorf("sampling: device not ready after %d polls: %w", s.maxPolls, ErrEntropyUnavailable)
}
