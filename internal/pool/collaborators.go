package pool

import (
	"context"

	"github.com/ccoin/shieldpool/pkg/groth16verifier"
)

// Handle is a stable 32-byte address-like handle resolved by an
// AddressResolver (spec.md §6): pool, accumulator, VK store, vault, and
// per-tag nullifier records are each addressed this way.
type Handle [32]byte

// Vault is the token-vault collaborator (spec.md §6): two synchronous,
// side-effecting operations whose failures the dispatcher reacts to by
// surfacing ErrVaultTransferFailed and undoing the current transition's
// prior state changes.
type Vault interface {
	TransferIn(ctx context.Context, pool Handle, from Handle, amount uint64) error
	TransferOut(ctx context.Context, pool Handle, to Handle, amount uint64) error
}

// AddressResolver maps a seed tuple to a stable handle (spec.md §6). The
// core only ever consumes this resolver; handle lifecycle/allocation is
// the host's responsibility.
type AddressResolver interface {
	Resolve(seeds ...[]byte) (Handle, error)
}

// Pairer is the host pairing-precompile collaborator; re-exported here
// so callers configuring an Engine only need to import this package.
type Pairer = groth16verifier.Pairer

// EventSink receives every event a successful transition emits (spec.md
// §6). Emitted events exist only for success cases — no event is ever
// emitted for a failed transition.
type EventSink interface {
	Emit(event Event)
}
