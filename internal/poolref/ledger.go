// Package poolref provides in-process reference implementations of the
// collaborator interfaces internal/pool injects (spec.md §6): a vault,
// an address resolver, and (via pkg/groth16verifier.LocalPairer) the
// pairing precompile. The real blockchain host, relayer network, and
// token vault are explicitly out of scope (spec.md §1 Non-goals); these
// stand in for them in tests and single-process deployments.
package poolref

import (
	"context"
	"errors"
	"sync"

	"github.com/ccoin/shieldpool/internal/pool"
)

// Errors returned by LedgerVault.
var (
	ErrInsufficientBalance = errors.New("poolref: insufficient balance")
)

// LedgerVault is an in-memory balance ledger keyed by (vault, holder)
// pair, grounded on the teacher's economics.Treasury balance-tracking
// pattern (single mutex-guarded balance plus a transaction history),
// simplified to the two operations pool.Vault requires.
type LedgerVault struct {
	mu       sync.Mutex
	balances map[pool.Handle]map[pool.Handle]uint64
	history  []LedgerEntry
}

// LedgerEntry records one completed transfer, mirroring the teacher's
// TreasuryTx bookkeeping.
type LedgerEntry struct {
	Vault     pool.Handle
	Holder    pool.Handle
	Delta     int64
	Direction string
}

// NewLedgerVault returns an empty ledger.
func NewLedgerVault() *LedgerVault {
	return &LedgerVault{balances: make(map[pool.Handle]map[pool.Handle]uint64)}
}

// Credit seeds a holder's balance within a vault, for test setup and for
// depositors who acquired balance outside the pool (e.g. a prior mint).
func (l *LedgerVault) Credit(vault, holder pool.Handle, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.creditLocked(vault, holder, amount)
}

func (l *LedgerVault) creditLocked(vault, holder pool.Handle, amount uint64) {
	holders, ok := l.balances[vault]
	if !ok {
		holders = make(map[pool.Handle]uint64)
		l.balances[vault] = holders
	}
	holders[holder] += amount
}

// Balance returns holder's balance within vault.
func (l *LedgerVault) Balance(vault, holder pool.Handle) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[vault][holder]
}

// TransferIn moves amount from holder `from` into the pool's vault
// balance (pool.Vault).
func (l *LedgerVault) TransferIn(_ context.Context, vault, from pool.Handle, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	holders := l.balances[vault]
	if holders == nil || holders[from] < amount {
		return ErrInsufficientBalance
	}
	holders[from] -= amount
	l.creditLocked(vault, vault, amount)
	l.history = append(l.history, LedgerEntry{Vault: vault, Holder: from, Delta: int64(amount), Direction: "in"})
	return nil
}

// TransferOut moves amount out of the pool's vault balance to `to`
// (pool.Vault).
func (l *LedgerVault) TransferOut(_ context.Context, vault, to pool.Handle, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	holders := l.balances[vault]
	if holders == nil || holders[vault] < amount {
		return ErrInsufficientBalance
	}
	holders[vault] -= amount
	l.creditLocked(vault, to, amount)
	l.history = append(l.history, LedgerEntry{Vault: vault, Holder: to, Delta: int64(amount), Direction: "out"})
	return nil
}
