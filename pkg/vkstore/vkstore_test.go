package vkstore

import (
	"testing"

	"github.com/ccoin/shieldpool/pkg/bn254field"
)

func validIC(n int) []bn254field.G1 {
	ic := make([]bn254field.G1, n)
	for i := range ic {
		ic[i] = bn254field.G1Generator()
	}
	return ic
}

func TestSetVKRejectsWrongArity(t *testing.T) {
	s := New()
	g1, g2 := bn254field.G1Generator(), bn254field.G2Generator()
	err := s.SetVK(g1, g2, g2, g2, validIC(PublicInputArity))
	if err != ErrArityMismatch {
		t.Fatalf("want ErrArityMismatch, got %v", err)
	}
}

func TestSetVKRejectsPointAtInfinity(t *testing.T) {
	s := New()
	g1, g2 := bn254field.G1Generator(), bn254field.G2Generator()
	ic := validIC(PublicInputArity + 1)

	if err := s.SetVK(bn254field.G1{}, g2, g2, g2, ic); err != bn254field.ErrPointAtInfinity {
		t.Fatalf("want ErrPointAtInfinity for alpha, got %v", err)
	}
	if err := s.SetVK(g1, bn254field.G2{}, g2, g2, ic); err != bn254field.ErrPointAtInfinity {
		t.Fatalf("want ErrPointAtInfinity for beta, got %v", err)
	}
	tamperedIC := validIC(PublicInputArity + 1)
	tamperedIC[1] = bn254field.G1{}
	if err := s.SetVK(g1, g2, g2, g2, tamperedIC); err != bn254field.ErrPointAtInfinity {
		t.Fatalf("want ErrPointAtInfinity for an IC entry, got %v", err)
	}
}

func TestSetVKThenLockThenReject(t *testing.T) {
	s := New()
	g1, g2 := bn254field.G1Generator(), bn254field.G2Generator()
	ic := validIC(PublicInputArity + 1)

	if err := s.SetVK(g1, g2, g2, g2, ic); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Configured() {
		t.Fatal("store should be configured after SetVK")
	}
	if s.Locked() {
		t.Fatal("store should not be locked yet")
	}

	if err := s.LockVK(); err != nil {
		t.Fatalf("unexpected error locking: %v", err)
	}
	if !s.Locked() {
		t.Fatal("store should be locked")
	}

	if err := s.SetVK(g1, g2, g2, g2, ic); err != ErrLocked {
		t.Fatalf("want ErrLocked, got %v", err)
	}
	if err := s.LockVK(); err != ErrAlreadyLocked {
		t.Fatalf("want ErrAlreadyLocked, got %v", err)
	}
}

func TestLockVKRequiresConfigured(t *testing.T) {
	s := New()
	if err := s.LockVK(); err != ErrNotConfigured {
		t.Fatalf("want ErrNotConfigured, got %v", err)
	}
}

func TestReSetWhileUnlockedPermitted(t *testing.T) {
	s := New()
	g1, g2 := bn254field.G1Generator(), bn254field.G2Generator()
	ic := validIC(PublicInputArity + 1)
	if err := s.SetVK(g1, g2, g2, g2, ic); err != nil {
		t.Fatal(err)
	}
	if err := s.SetVK(g1, g2, g2, g2, ic); err != nil {
		t.Fatalf("re-set while unlocked should be permitted: %v", err)
	}
}

func TestGetReturnsIndependentCopy(t *testing.T) {
	s := New()
	g1, g2 := bn254field.G1Generator(), bn254field.G2Generator()
	ic := validIC(PublicInputArity + 1)
	if err := s.SetVK(g1, g2, g2, g2, ic); err != nil {
		t.Fatal(err)
	}

	vk := s.Get()
	vk.Configured = false
	vk.Locked = true

	fresh := s.Get()
	if !fresh.Configured || fresh.Locked {
		t.Fatal("mutating a Get() copy must not affect the store")
	}
}
