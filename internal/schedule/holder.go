package schedule

import (
	"fmt"
	"sync/atomic"
)

// Holder publishes the current index to concurrent readers. A rebuild
// produces a new index and swaps it in whole; readers keep using the snapshot
// they loaded.
type Holder struct {
	current atomic.Pointer[Index]
}

// NewHolder returns a holder publishing ix, which may be nil.
func NewHolder(ix *Index) *Holder {
	h := &Holder{}
	if ix != nil {
		h.current.Store(ix)
	}
	return h
}

// Load returns the current snapshot, nil before the first successful build.
func (h *Holder) Load() *Index {
	return h.current.Load()
}

// Swap publishes ix and returns the previous snapshot.
func (h *Holder) Swap(ix *Index) *Index {
	return h.current.Swap(ix)
}

// Rebuild runs build and publishes its result. On error the current snapshot
// stays in place.
func (h *Holder) Rebuild(build func() (*Index, error)) error {
	ix, err := build()
	if err != nil {
		return fmt.Errorf("rebuilding schedule: %w", err)
	}
	h.current.Store(ix)
	return nil
}
