// Package pool implements the shielded-pool dispatcher (spec.md §5): a
// single per-pool mutex serializes every Append, Spend, and admin
// transition so each either commits every effect or none, grounded on the
// teacher's internal/zkp.ShieldedPool.ProcessTransaction critical section.
package pool

import (
	"context"
	"sync"
	"time"

	"github.com/ccoin/shieldpool/pkg/bn254field"
	"github.com/ccoin/shieldpool/pkg/groth16verifier"
	"github.com/ccoin/shieldpool/pkg/merkle"
	"github.com/ccoin/shieldpool/pkg/nullifier"
	"github.com/ccoin/shieldpool/pkg/vkstore"
)

// Engine bundles one pool's accumulator, verification-key store,
// nullifier registry, and descriptor behind a single mutex, plus the
// four injected collaborators of spec.md §6.
type Engine struct {
	mu sync.Mutex

	self Handle
	desc Descriptor

	tree   *merkle.Tree
	vk     *vkstore.Store
	nulls  *nullifier.Registry

	vault    Vault
	resolver AddressResolver
	pairer   Pairer
	sink     EventSink

	initialized bool

	now func() int64
}

// NewEngine wires the collaborators for a not-yet-initialized pool.
// Initialize must be called before Append or Spend.
func NewEngine(self Handle, vault Vault, resolver AddressResolver, pairer Pairer, sink EventSink) *Engine {
	return &Engine{
		self:     self,
		vk:       vkstore.New(),
		nulls:    nullifier.New(),
		vault:    vault,
		resolver: resolver,
		pairer:   pairer,
		sink:     sink,
		now:      func() int64 { return time.Now().Unix() },
	}
}

// Descriptor returns a copy of the pool's current observable state.
func (e *Engine) Descriptor() Descriptor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.desc
}

// Initialize is the one-shot constructor transition (spec.md §4.7): it
// allocates the accumulator at the requested depth/history and installs
// the initial owner. It fails with ErrAlreadyInitialized on any
// subsequent call.
func (e *Engine) Initialize(depth, historySize int, tokenIdentity, owner Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return ErrAlreadyInitialized
	}
	if depth < merkle.MinDepth || depth > merkle.MaxDepth {
		return ErrInvalidDepth
	}
	if historySize < merkle.MinHistory || historySize > merkle.MaxHistory {
		return ErrInvalidHistorySize
	}

	tree, err := merkle.New(depth, historySize)
	if err != nil {
		return err
	}

	vaultHandle, err := e.resolver.Resolve([]byte("vault"), e.self[:], tokenIdentity[:])
	if err != nil {
		return err
	}

	e.tree = tree
	e.desc = Descriptor{
		Owner:         owner,
		TokenIdentity: tokenIdentity,
		VaultHandle:   vaultHandle,
		TreeDepth:     depth,
		HistorySize:   historySize,
		SchemaVersion: currentSchemaVersion,
		MaxDeposit:    ^uint64(0) >> 1,
	}
	e.initialized = true

	e.emit(PoolInitialized{
		Pool:        e.self,
		Owner:       owner,
		Token:       tokenIdentity,
		TreeDepth:   depth,
		HistorySize: historySize,
		Timestamp:   e.now(),
	})
	return nil
}

// Append performs a shielded deposit (spec.md §4.6 Append): it checks
// pause state, amount bounds, commitment validity, and that the cumulative
// deposit total cannot overflow; moves funds into
// the vault; appends the commitment to the accumulator, rolling back the
// vault transfer if that fails; and only then advances the descriptor's
// counters and emits Deposited.
func (e *Engine) Append(ctx context.Context, from Handle, amount uint64, commitment merkle.Leaf) (uint64, merkle.Leaf, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var zero merkle.Leaf
	var zeroRoot merkle.Leaf

	if !e.initialized {
		return 0, zeroRoot, ErrNotAuthorized
	}
	if e.desc.Paused {
		return 0, zeroRoot, ErrPoolPaused
	}
	if amount == 0 {
		return 0, zeroRoot, ErrInvalidAmount
	}
	if e.desc.MaxDeposit != 0 && amount > e.desc.MaxDeposit {
		return 0, zeroRoot, ErrInvalidAmount
	}
	if commitment == zero {
		return 0, zeroRoot, ErrInvalidCommitment
	}
	if !bn254field.InField(bn254field.Scalar(commitment)) {
		return 0, zeroRoot, ErrFieldRangeViolation
	}
	newDeposited, ok := addChecked(e.desc.CumulativeDeposited, amount)
	if !ok {
		return 0, zeroRoot, ErrArithmeticOverflow
	}

	if err := e.vault.TransferIn(ctx, e.desc.VaultHandle, from, amount); err != nil {
		return 0, zeroRoot, ErrVaultTransferFailed
	}

	leafIndex, root, err := e.tree.Append(commitment)
	if err != nil {
		// Roll back the transfer the caller already funded.
		_ = e.vault.TransferOut(ctx, e.desc.VaultHandle, from, amount)
		if err == merkle.ErrAccumulatorFull {
			return 0, zeroRoot, ErrAccumulatorFull
		}
		return 0, zeroRoot, err
	}

	e.desc.CumulativeDeposited = newDeposited
	e.desc.DepositCount++

	e.emit(Deposited{
		Pool:       e.self,
		Commitment: commitment,
		LeafIndex:  leafIndex,
		Amount:     amount,
		Timestamp:  e.now(),
	})

	return leafIndex, root, nil
}

// SpendRequest bundles the arguments to Spend: the proof, its six public
// inputs in the fixed order root, tag, recipient, amount, relayer,
// relayer_fee (spec.md §6), and the relayer handle paying the submission
// cost (the zero Handle when self-submitted).
type SpendRequest struct {
	Proof        groth16verifier.Proof
	Root         bn254field.Scalar
	Tag          nullifier.Tag
	Recipient    Handle
	Amount       uint64
	Relayer      Handle
	RelayerFee   uint64
}

// Spend performs a shielded redemption (spec.md §4.6 Spend): pause and
// VK-configured gates, field-range and fee/amount checks, root freshness,
// pairing verification, nullifier insertion, and finally the vault
// payout. A failed payout undoes the nullifier insertion and any part of
// the payout that already succeeded, so the transition as a whole either
// commits every effect or none.
func (e *Engine) Spend(ctx context.Context, req SpendRequest) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return ErrNotAuthorized
	}
	if e.desc.Paused {
		return ErrPoolPaused
	}
	if !e.vk.Configured() {
		return ErrVKNotConfigured
	}

	publicInputs, err := req.publicInputScalars()
	if err != nil {
		return err
	}
	for _, in := range publicInputs {
		if !bn254field.InField(in) {
			return ErrFieldRangeViolation
		}
	}

	if req.Amount == 0 {
		return ErrInvalidAmount
	}
	if req.RelayerFee > req.Amount {
		return ErrFeeExceedsAmount
	}

	var rootLeaf merkle.Leaf
	copy(rootLeaf[:], req.Root[:])
	if !e.tree.IsFresh(rootLeaf) {
		return ErrUnknownRoot
	}

	vk := e.vk.Get()
	if err := groth16verifier.Verify(ctx, e.pairer, req.Proof, &vk, publicInputs); err != nil {
		if err == vkstore.ErrArityMismatch {
			return ErrVKArityMismatch
		}
		if err == groth16verifier.ErrProofRejected {
			return ErrProofRejected
		}
		return mapPointError(err)
	}

	newRedeemed, ok := addChecked(e.desc.CumulativeRedeemed, req.Amount)
	if !ok {
		return ErrArithmeticOverflow
	}

	if err := e.nulls.TryInsert(req.Tag); err != nil {
		return ErrNullifierSpent
	}

	payout := req.Amount - req.RelayerFee
	if payout > 0 {
		if err := e.vault.TransferOut(ctx, e.desc.VaultHandle, req.Recipient, payout); err != nil {
			e.nulls.Remove(req.Tag)
			return ErrVaultTransferFailed
		}
	}
	if req.RelayerFee > 0 {
		if err := e.vault.TransferOut(ctx, e.desc.VaultHandle, req.Relayer, req.RelayerFee); err != nil {
			if payout > 0 {
				_ = e.vault.TransferIn(ctx, e.desc.VaultHandle, req.Recipient, payout)
			}
			e.nulls.Remove(req.Tag)
			return ErrVaultTransferFailed
		}
	}

	e.desc.CumulativeRedeemed = newRedeemed
	e.desc.RedemptionCount++

	e.emit(Redeemed{
		Pool:       e.self,
		Tag:        req.Tag,
		Recipient:  req.Recipient,
		Amount:     req.Amount,
		Relayer:    req.Relayer,
		RelayerFee: req.RelayerFee,
		Timestamp:  e.now(),
	})
	return nil
}

// publicInputScalars assembles the six public inputs in the fixed wire
// order root, tag, recipient, amount, relayer, relayer_fee (spec.md §6).
func (req SpendRequest) publicInputScalars() ([]bn254field.Scalar, error) {
	var recipient, relayer bn254field.Scalar
	copy(recipient[:], req.Recipient[:])
	copy(relayer[:], req.Relayer[:])

	return []bn254field.Scalar{
		req.Root,
		bn254field.Scalar(req.Tag),
		recipient,
		amountScalar(req.Amount),
		relayer,
		amountScalar(req.RelayerFee),
	}, nil
}

// amountScalar big-endian encodes a uint64 amount into the low 8 bytes
// of a 32-byte field element.
func amountScalar(v uint64) bn254field.Scalar {
	var s bn254field.Scalar
	for i := 0; i < 8; i++ {
		s[bn254field.ScalarSize-1-i] = byte(v >> (8 * i))
	}
	return s
}

// SetVerificationKey is the owner-gated wrapper around vkstore.SetVK
// (spec.md §4.3, §4.7).
func (e *Engine) SetVerificationKey(caller Handle, alpha bn254field.G1, beta, gamma, delta bn254field.G2, ic []bn254field.G1) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.desc.Owner {
		return ErrNotAuthorized
	}
	if err := e.vk.SetVK(alpha, beta, gamma, delta, ic); err != nil {
		switch err {
		case vkstore.ErrLocked:
			return ErrVKLocked
		case vkstore.ErrArityMismatch:
			return ErrVKArityMismatch
		default:
			return mapPointError(err)
		}
	}
	e.desc.VKConfigured = true

	e.emit(VerificationKeyChanged{Pool: e.self, Locked: false, Timestamp: e.now()})
	return nil
}

// LockVerificationKey makes the current key permanently immutable
// (spec.md I6).
func (e *Engine) LockVerificationKey(caller Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.desc.Owner {
		return ErrNotAuthorized
	}
	if err := e.vk.LockVK(); err != nil {
		switch err {
		case vkstore.ErrAlreadyLocked:
			return ErrAlreadyLocked
		case vkstore.ErrNotConfigured:
			return ErrVKNotConfigured
		default:
			return err
		}
	}
	e.desc.VKLocked = true

	e.emit(VerificationKeyChanged{Pool: e.self, Locked: true, Timestamp: e.now()})
	return nil
}

// Pause and Unpause are owner-only toggles (spec.md §4.7).
func (e *Engine) Pause(caller Handle) error  { return e.setPaused(caller, true) }
func (e *Engine) Unpause(caller Handle) error { return e.setPaused(caller, false) }

func (e *Engine) setPaused(caller Handle, paused bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.desc.Owner {
		return ErrNotAuthorized
	}
	e.desc.Paused = paused
	e.emit(PausedStateChanged{Pool: e.self, Paused: paused, Timestamp: e.now()})
	return nil
}

// ProposeOwnerTransfer begins the two-step ownership handshake (spec.md
// §4.7): only the current owner may nominate a pending owner.
func (e *Engine) ProposeOwnerTransfer(caller, pending Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.desc.Owner {
		return ErrNotAuthorized
	}
	e.desc.PendingOwner = &pending

	e.emit(OwnerTransferProposed{Pool: e.self, Current: e.desc.Owner, Pending: pending, Timestamp: e.now()})
	return nil
}

// AcceptOwnerTransfer completes the handshake; only the nominated
// pending owner may call it (spec.md I7).
func (e *Engine) AcceptOwnerTransfer(caller Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.desc.PendingOwner == nil || caller != *e.desc.PendingOwner {
		return ErrNotPendingOwner
	}
	old := e.desc.Owner
	e.desc.Owner = caller
	e.desc.PendingOwner = nil

	e.emit(OwnerTransferAccepted{Pool: e.self, Old: old, New: caller, Timestamp: e.now()})
	return nil
}

// SetMaxDeposit adjusts the per-deposit ceiling (SPEC_FULL.md §4.7); zero
// disables the ceiling.
func (e *Engine) SetMaxDeposit(caller Handle, max uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.desc.Owner {
		return ErrNotAuthorized
	}
	e.desc.MaxDeposit = max
	return nil
}

func (e *Engine) emit(ev Event) {
	if e.sink != nil {
		e.sink.Emit(ev)
	}
}

func addChecked(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}
