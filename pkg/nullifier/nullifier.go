// Package nullifier implements the at-most-once presence registry for
// spent-note tags (spec.md §4.5). It is grounded on the teacher's
// internal/zkp.NullifierSet, collapsed to the spec's simpler semantics:
// no block-height/tx-hash bookkeeping lives here — that belongs to the
// event log, not the core presence set.
package nullifier

import (
	"errors"
	"sync"
)

// ErrSpent is returned by TryInsert when the tag is already present.
var ErrSpent = errors.New("nullifier: tag already spent")

// Tag is an opaque 32-byte nullifier value. Byte-for-byte equality is
// the only semantics the registry imposes (spec.md §4.5).
type Tag [32]byte

// Registry is a flat presence set keyed by tag, realized as a map
// rather than a heap graph per spec.md §9's design note.
type Registry struct {
	mu   sync.Mutex
	seen map[Tag]struct{}
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{seen: make(map[Tag]struct{})}
}

// TryInsert atomically inserts tag iff absent, returning ErrSpent without
// mutating state if it is already present (spec.md I4, the round-trip
// property "inserting twice returns NullifierSpent without mutation").
func (r *Registry) TryInsert(tag Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.seen[tag]; exists {
		return ErrSpent
	}
	r.seen[tag] = struct{}{}
	return nil
}

// Remove undoes a TryInsert. Callers use it to roll back a nullifier
// mark when a later step of the same state transition fails, so the
// mark never becomes visible without the rest of the transition's
// effects (spec.md §4.6 Spend step 8: "abort on failure, undoing step
// 7").
func (r *Registry) Remove(tag Tag) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.seen, tag)
}

// IsPresent reports whether tag has been inserted. Per spec.md §4.5,
// this is a pre-screening lookup for off-chain collaborators and is not
// authoritative against a concurrent TryInsert.
func (r *Registry) IsPresent(tag Tag) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.seen[tag]
	return exists
}

// Len returns the number of spent tags recorded.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}
