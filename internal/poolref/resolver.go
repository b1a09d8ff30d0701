package poolref

import (
	"golang.org/x/crypto/sha3"

	"github.com/ccoin/shieldpool/internal/pool"
)

// SeedResolver derives a pool.Handle deterministically from a seed
// tuple via Keccak-256, grounded on the teacher's address-derivation
// convention in pkg/common (hashing concatenated components rather than
// allocating sequential IDs). Real on-chain account allocation is out
// of scope (spec.md §1 Non-goals); this is the in-process stand-in.
type SeedResolver struct{}

// Resolve hashes the concatenation of seeds into a stable 32-byte handle.
func (SeedResolver) Resolve(seeds ...[]byte) (pool.Handle, error) {
	h := sha3.NewLegacyKeccak256()
	for _, s := range seeds {
		h.Write(s)
	}
	var out pool.Handle
	copy(out[:], h.Sum(nil))
	return out, nil
}
