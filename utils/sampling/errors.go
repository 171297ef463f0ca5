package sampling

import (
	"errors"
)

// ErrEntropyUnavailable is returned when an entropy source fails to deliver
// the requested bytes. It must abort the calling cryptographic operation:
// there is no fallback to a weaker source.
var ErrEntropyUnavailable = errors.New("entropy source unavailable")
