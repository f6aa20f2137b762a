package runtime

import (
	"fmt"
	"sync"
)

// Captures is a shared, type-erased cell of private state for native
// closures. Cloning a closure copies the handle, not the payload, so every
// copy observes the same state.
type Captures struct {
	cell *captureCell
}

type captureCell struct {
	mu       sync.Mutex
	borrowed bool
	payload  any
}

// NewCaptures allocates a fresh cell holding the payload.
func NewCaptures(payload any) Captures {
	return Captures{cell: &captureCell{payload: payload}}
}

// IsZero reports whether the handle carries no cell.
func (c Captures) IsZero() bool { return c.cell == nil }

// Borrow grants exclusive access to the payload. A second borrow while one
// is outstanding is a program bug and panics rather than deadlocking.
func (c Captures) Borrow() *CaptureRef {
	if c.cell == nil {
		panic("runtime: borrow of empty captures")
	}
	c.cell.mu.Lock()
	if c.cell.borrowed {
		c.cell.mu.Unlock()
		panic("runtime: captures already borrowed")
	}
	c.cell.borrowed = true
	c.cell.mu.Unlock()
	return &CaptureRef{cell: c.cell}
}

// BorrowMut is Borrow under its mutating name. Both grants are exclusive;
// the split exists so call sites document intent.
func (c Captures) BorrowMut() *CaptureRef {
	return c.Borrow()
}

// With borrows the cell for the duration of fn and releases it afterwards,
// including on panic.
func (c Captures) With(fn func(payload any) error) error {
	ref := c.Borrow()
	defer ref.Release()
	return fn(ref.Get())
}

// CaptureRef is an outstanding borrow. Release it exactly once.
type CaptureRef struct {
	cell     *captureCell
	released bool
}

// Get returns the payload. Calling Get after Release panics.
func (r *CaptureRef) Get() any {
	if r == nil || r.released {
		panic("runtime: use of released capture borrow")
	}
	return r.cell.payload
}

// Set replaces the payload.
func (r *CaptureRef) Set(payload any) {
	if r == nil || r.released {
		panic("runtime: use of released capture borrow")
	}
	r.cell.payload = payload
}

// Release ends the borrow. Releasing twice panics.
func (r *CaptureRef) Release() {
	if r == nil || r.released {
		panic("runtime: double release of capture borrow")
	}
	r.cell.mu.Lock()
	r.cell.borrowed = false
	r.cell.mu.Unlock()
	r.released = true
}

// CapturesAs fetches the payload under a short borrow and asserts its type.
func CapturesAs[T any](c Captures) (T, error) {
	var out T
	err := c.With(func(payload any) error {
		typed, ok := payload.(T)
		if !ok {
			return fmt.Errorf("captures payload is %T, not %T", payload, out)
		}
		out = typed
		return nil
	})
	return out, err
}
