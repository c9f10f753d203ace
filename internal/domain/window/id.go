// Package window holds the value types exchanged between the host API, the
// coordinator and the platform adapters.
package window

import (
	"errors"
	"strconv"
)

// ID identifies a window for the lifetime of the process. Zero is never
// allocated.
type ID uint32

// ErrIDExhausted is returned when no further window id can be allocated.
var ErrIDExhausted = errors.New("window id space exhausted")

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
