// Package vkstore implements the typed, validated, lockable
// verification-key store (spec.md §4.3): a pure data structure with no
// authorization logic of its own — callers (internal/pool) enforce the
// owner-only gating and the pool's serialization discipline.
package vkstore

import (
	"errors"

	"github.com/ccoin/shieldpool/pkg/bn254field"
)

// PublicInputArity is the fixed number of public inputs for a Spend
// redemption proof (spec.md §6: root, tag, recipient, amount, relayer,
// relayer_fee). The IC vector must therefore have PublicInputArity+1
// entries.
const PublicInputArity = 6

// Errors returned by Store operations; names follow spec.md §7's taxonomy.
var (
	ErrArityMismatch = errors.New("vkstore: IC vector arity does not match the public-input count")
	ErrLocked        = errors.New("vkstore: verification key is locked")
	ErrAlreadyLocked = errors.New("vkstore: verification key is already locked")
	ErrNotConfigured = errors.New("vkstore: verification key is not configured")
)

// VerifyingKey holds the Groth16 verification key material: α∈G1,
// β,γ,δ∈G2, and the IC vector of G1 points (spec.md §3 "Verification
// key").
type VerifyingKey struct {
	Alpha bn254field.G1
	Beta  bn254field.G2
	Gamma bn254field.G2
	Delta bn254field.G2
	IC    []bn254field.G1

	Configured bool
	Locked     bool
}

// Store is the per-pool verification-key store.
type Store struct {
	vk VerifyingKey
}

// New returns an empty, unconfigured store.
func New() *Store {
	return &Store{}
}

// SetVK validates and installs a new verification key. It fails with
// ErrLocked once LockVK has succeeded, and with ErrArityMismatch unless
// len(ic) == PublicInputArity+1 (spec.md §4.3). Every point is validated
// (on-curve, non-identity) per §4.1 before installation, so a malformed
// key is rejected atomically: either every point is good and the key is
// installed, or none of it is. Re-setting while
// unconfigured-or-configured-but-unlocked is permitted (the
// `Empty → Configured ⇄ Configured` transitions of the state machine).
func (s *Store) SetVK(alpha bn254field.G1, beta, gamma, delta bn254field.G2, ic []bn254field.G1) error {
	if s.vk.Locked {
		return ErrLocked
	}
	if len(ic) != PublicInputArity+1 {
		return ErrArityMismatch
	}

	if err := bn254field.ValidateG1(alpha); err != nil {
		return err
	}
	if err := bn254field.ValidateG2(beta); err != nil {
		return err
	}
	if err := bn254field.ValidateG2(gamma); err != nil {
		return err
	}
	if err := bn254field.ValidateG2(delta); err != nil {
		return err
	}
	for _, p := range ic {
		if err := bn254field.ValidateG1(p); err != nil {
			return err
		}
	}

	s.vk = VerifyingKey{
		Alpha:      alpha,
		Beta:       beta,
		Gamma:      gamma,
		Delta:      delta,
		IC:         append([]bn254field.G1(nil), ic...),
		Configured: true,
		Locked:     false,
	}
	return nil
}

// LockVK makes the current verification key immutable. It requires the
// key to be configured and fails with ErrAlreadyLocked if already locked
// (spec.md I6: locked=true is terminal).
func (s *Store) LockVK() error {
	if s.vk.Locked {
		return ErrAlreadyLocked
	}
	if !s.vk.Configured {
		return ErrNotConfigured
	}
	s.vk.Locked = true
	return nil
}

// Get returns a copy of the current verification key; mutating it has
// no effect on the store.
func (s *Store) Get() VerifyingKey {
	vk := s.vk
	vk.IC = append([]bn254field.G1(nil), s.vk.IC...)
	return vk
}

// Configured reports whether a verification key has ever been set.
func (s *Store) Configured() bool {
	return s.vk.Configured
}

// Locked reports whether the verification key is immutable.
func (s *Store) Locked() bool {
	return s.vk.Locked
}
