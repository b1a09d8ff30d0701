package pool

import (
	"errors"

	"github.com/ccoin/shieldpool/pkg/bn254field"
)

// Error taxonomy, spec.md §7. Every transition either commits every
// effect or none; these sentinels are the stable identifiers returned to
// callers. No error carries proof, tag, or other caller-supplied secret
// bytes beyond what the caller already provided, per the propagation
// policy.
var (
	// Input shape
	ErrFieldRangeViolation  = errors.New("pool: field element out of range")
	ErrInvalidPointEncoding = errors.New("pool: invalid point encoding")
	ErrPointNotOnCurve      = errors.New("pool: point not on curve")
	ErrPointAtInfinity      = errors.New("pool: point at infinity")
	ErrVKArityMismatch      = errors.New("pool: verification key IC arity mismatch")
	ErrInvalidCommitment    = errors.New("pool: invalid commitment")
	ErrInvalidAmount        = errors.New("pool: invalid amount")
	ErrFeeExceedsAmount     = errors.New("pool: relayer fee exceeds amount")

	// State gates
	ErrPoolPaused       = errors.New("pool: paused")
	ErrVKNotConfigured  = errors.New("pool: verification key not configured")
	ErrVKLocked         = errors.New("pool: verification key is locked")
	ErrAlreadyLocked    = errors.New("pool: verification key already locked")
	ErrAlreadyInitialized = errors.New("pool: already initialized")
	ErrNotAuthorized    = errors.New("pool: caller not authorized")
	ErrNotPendingOwner  = errors.New("pool: caller is not the pending owner")

	// Core rejections
	ErrUnknownRoot    = errors.New("pool: root is not a fresh accumulator root")
	ErrProofRejected  = errors.New("pool: proof rejected")
	ErrNullifierSpent = errors.New("pool: nullifier already spent")
	ErrAccumulatorFull = errors.New("pool: accumulator full")

	// Collaborator failures
	ErrVaultTransferFailed = errors.New("pool: vault transfer failed")
	ErrArithmeticOverflow  = errors.New("pool: arithmetic overflow")

	// Depth/history construction bounds, not part of the steady-state
	// taxonomy but surfaced by Initialize.
	ErrInvalidDepth       = errors.New("pool: tree depth out of bounds")
	ErrInvalidHistorySize = errors.New("pool: history size out of bounds")
)

// mapPointError translates a bn254field point-validation error into this
// package's own sentinel of the same meaning, so callers never see
// bn254field's sentinels directly. Non-point errors pass through
// unchanged.
func mapPointError(err error) error {
	switch err {
	case bn254field.ErrFieldRangeViolation:
		return ErrFieldRangeViolation
	case bn254field.ErrInvalidPointEncoding:
		return ErrInvalidPointEncoding
	case bn254field.ErrPointNotOnCurve:
		return ErrPointNotOnCurve
	case bn254field.ErrPointAtInfinity:
		return ErrPointAtInfinity
	default:
		return err
	}
}
