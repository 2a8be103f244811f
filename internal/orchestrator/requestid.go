package orchestrator

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

var requestSeq atomic.Uint64

// NewRequestID assigns a monotonic counter plus a random suffix (spec
// §4.10), so request ids sort roughly chronologically while still
// being globally unique across process restarts.
func NewRequestID() string {
	seq := requestSeq.Add(1)
	return fmt.Sprintf("req-%d-%s", seq, uuid.NewString()[:8])
}
