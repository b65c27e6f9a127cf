package vfs

import (
	"math"
	"testing"
)

// Helper resource for registry tests; behavior never runs here.
type inertResource struct {
	DefaultResource
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if reg.Len() != 0 {
		t.Errorf("Expected 0 bound identifiers, got %d", reg.Len())
	}
	if _, ok := reg.Resolve(RootInode); ok {
		t.Error("Expected root to be unbound on a fresh registry")
	}
}

func TestRegisterAllocatesIncreasingIdentifiers(t *testing.T) {
	reg := NewRegistry()

	var last Inode
	for i := 0; i < 100; i++ {
		ino := reg.Register(&inertResource{})
		if ino == RootInode {
			t.Fatalf("Register returned the reserved root identifier at iteration %d", i)
		}
		if ino <= last {
			t.Fatalf("Register returned %d after %d, identifiers must be strictly increasing", ino, last)
		}
		last = ino
	}

	if reg.Len() != 100 {
		t.Errorf("Expected 100 bound identifiers, got %d", reg.Len())
	}
}

func TestRegisterStartsAboveRoot(t *testing.T) {
	reg := NewRegistry()

	ino := reg.Register(&inertResource{})
	if ino != RootInode+1 {
		t.Errorf("Expected first identifier %d, got %d", RootInode+1, ino)
	}
}

func TestResolve(t *testing.T) {
	reg := NewRegistry()
	res := &inertResource{}
	ino := reg.Register(res)

	// Resolve a bound identifier
	got, ok := reg.Resolve(ino)
	if !ok {
		t.Fatal("Resolve failed for a bound identifier")
	}
	if got != res {
		t.Error("Resolve returned a different resource than was registered")
	}

	// Resolve an unbound identifier
	if _, ok := reg.Resolve(ino + 1); ok {
		t.Error("Resolve succeeded for an unbound identifier")
	}
}

func TestUnregister(t *testing.T) {
	reg := NewRegistry()
	res := &inertResource{}
	ino := reg.Register(res)

	// Unregister returns the bound resource
	got, ok := reg.Unregister(ino)
	if !ok {
		t.Fatal("Unregister failed for a bound identifier")
	}
	if got != res {
		t.Error("Unregister returned a different resource than was registered")
	}

	// The identifier is gone
	if _, ok := reg.Resolve(ino); ok {
		t.Error("Resolve succeeded after Unregister")
	}

	// Unregistering again reports absence
	if _, ok := reg.Unregister(ino); ok {
		t.Error("Unregister succeeded twice for the same identifier")
	}

	// The identifier is never handed out again
	next := reg.Register(&inertResource{})
	if next == ino {
		t.Errorf("Register reused identifier %d after Unregister", ino)
	}
}

func TestSetRoot(t *testing.T) {
	reg := NewRegistry()
	first := &inertResource{}
	second := &inertResource{}

	// First bind reports no previous resource
	if prev, ok := reg.SetRoot(first); ok {
		t.Errorf("Expected no previous root, got %v", prev)
	}

	got, ok := reg.Resolve(RootInode)
	if !ok {
		t.Fatal("Resolve failed for the root after SetRoot")
	}
	if got != first {
		t.Error("Resolve returned a different resource than was bound as root")
	}

	// Rebinding returns the previous root, which signals double initialization
	prev, ok := reg.SetRoot(second)
	if !ok {
		t.Fatal("Expected the previous root to be returned on rebind")
	}
	if prev != first {
		t.Error("SetRoot returned a different resource than the previous root")
	}
}

func TestTryRegisterExhaustion(t *testing.T) {
	reg := NewRegistry()
	reg.next = math.MaxUint64

	if _, ok := reg.TryRegister(&inertResource{}); ok {
		t.Error("TryRegister succeeded with an exhausted identifier counter")
	}
	if reg.Len() != 0 {
		t.Error("TryRegister bound a resource despite reporting exhaustion")
	}
}

func TestRegisterExhaustionPanics(t *testing.T) {
	reg := NewRegistry()
	reg.next = math.MaxUint64

	defer func() {
		if recover() == nil {
			t.Error("Register did not panic with an exhausted identifier counter")
		}
	}()
	reg.Register(&inertResource{})
}

func TestBorrowMarksCellBusy(t *testing.T) {
	reg := NewRegistry()
	ino := reg.Register(&inertResource{})

	c, ok := reg.borrow(ino)
	if !ok {
		t.Fatal("borrow failed for a bound identifier")
	}
	if !c.busy {
		t.Error("borrow did not mark the cell busy")
	}

	c.release()
	if c.busy {
		t.Error("release did not clear the busy flag")
	}

	// Borrowing works again after release
	if _, ok := reg.borrow(ino); !ok {
		t.Error("borrow failed after release")
	}
}

func TestDoubleBorrowPanics(t *testing.T) {
	reg := NewRegistry()
	ino := reg.Register(&inertResource{})

	if _, ok := reg.borrow(ino); !ok {
		t.Fatal("borrow failed for a bound identifier")
	}

	defer func() {
		if recover() == nil {
			t.Error("borrowing a busy cell did not panic")
		}
	}()
	reg.borrow(ino)
}
