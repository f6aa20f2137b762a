package runtime

import "testing"

type counterState struct {
	hits int
}

func TestCapturesSharedAcrossCopies(t *testing.T) {
	captures := NewCaptures(&counterState{})
	clone := captures

	ref := clone.BorrowMut()
	ref.Get().(*counterState).hits++
	ref.Release()

	ref = captures.Borrow()
	defer ref.Release()
	if got := ref.Get().(*counterState).hits; got != 1 {
		t.Fatalf("expected shared state hits=1, got %d", got)
	}
}

func TestCapturesBorrowConflictPanics(t *testing.T) {
	captures := NewCaptures(&counterState{})
	ref := captures.Borrow()
	defer ref.Release()

	defer func() {
		if recover() == nil {
			t.Fatal("expected second borrow to panic")
		}
	}()
	captures.Borrow()
}

func TestCapturesReleaseThenReborrow(t *testing.T) {
	captures := NewCaptures("state")
	ref := captures.Borrow()
	ref.Release()

	ref = captures.Borrow()
	if ref.Get().(string) != "state" {
		t.Fatal("payload lost across borrows")
	}
	ref.Release()
}

func TestCapturesDoubleReleasePanics(t *testing.T) {
	captures := NewCaptures(nil)
	ref := captures.Borrow()
	ref.Release()

	defer func() {
		if recover() == nil {
			t.Fatal("expected double release to panic")
		}
	}()
	ref.Release()
}

func TestCapturesWithReleasesOnPanic(t *testing.T) {
	captures := NewCaptures(&counterState{})
	func() {
		defer func() { recover() }()
		_ = captures.With(func(any) error {
			panic("boom")
		})
	}()

	ref := captures.Borrow()
	ref.Release()
}

func TestCapturesAs(t *testing.T) {
	captures := NewCaptures(&counterState{hits: 3})
	state, err := CapturesAs[*counterState](captures)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.hits != 3 {
		t.Fatalf("expected hits=3, got %d", state.hits)
	}

	if _, err := CapturesAs[string](captures); err == nil {
		t.Fatal("expected type mismatch error")
	}
}
