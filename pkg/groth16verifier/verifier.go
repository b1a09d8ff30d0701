// Package groth16verifier implements Groth16 proof verification over BN254
// for a fixed public-input arity (spec.md §4.2): it assembles the pairing
// identity e(-A,B)·e(α,β)·e(vk_x,γ)·e(C,δ)=1 and delegates the final
// multi-pairing product check to an injected Pairer — the "host
// precompile" collaborator of spec.md §6. LocalPairer backs that
// collaborator in-process via gnark-crypto's bn254.PairingCheck.
package groth16verifier

import (
	"context"
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/ccoin/shieldpool/pkg/bn254field"
	"github.com/ccoin/shieldpool/pkg/vkstore"
)

// ErrProofRejected is returned when the pairing identity does not hold.
var ErrProofRejected = errors.New("groth16verifier: proof rejected")

// Proof is a Groth16 proof (A, B, C).
type Proof struct {
	A bn254field.G1
	B bn254field.G2
	C bn254field.G1
}

// Pairer is the host pairing precompile collaborator of spec.md §6:
// a pure function over validated, uncompressed point encodings returning
// whether the product of pairings equals the identity in the target
// group.
type Pairer interface {
	MultiPair(ctx context.Context, g1 []bn254field.G1, g2 []bn254field.G2) (bool, error)
}

// LocalPairer backs Pairer in-process using gnark-crypto's bn254 package,
// for deployments (such as this one) where no separate host runtime
// exists to provide the precompile.
type LocalPairer struct{}

// MultiPair returns whether ∏ e(g1[i], g2[i]) equals the identity.
func (LocalPairer) MultiPair(_ context.Context, g1 []bn254field.G1, g2 []bn254field.G2) (bool, error) {
	a := make([]bn254.G1Affine, len(g1))
	for i, p := range g1 {
		a[i] = p.P
	}
	b := make([]bn254.G2Affine, len(g2))
	for i, p := range g2 {
		b[i] = p.P
	}
	return bn254.PairingCheck(a, b)
}

// Verify checks the Groth16 pairing identity
//
//	e(-A, B) · e(α, β) · e(vk_x, γ) · e(C, δ) = 1
//
// against vk and publicInputs, per spec.md §4.2. publicInputs must already
// be in-field (callers validate per-input range before calling Verify, per
// §4.6 step 3, which runs before this — the more expensive — check).
// Determinism: for equal inputs Verify returns identical results; every
// branch below decides on public byte strings only.
func Verify(ctx context.Context, pairer Pairer, proof Proof, vk *vkstore.VerifyingKey, publicInputs []bn254field.Scalar) error {
	if !vk.Configured {
		return vkstore.ErrNotConfigured
	}
	if len(vk.IC) != len(publicInputs)+1 {
		return vkstore.ErrArityMismatch
	}

	if err := bn254field.ValidateG1(proof.A); err != nil {
		return err
	}
	if err := bn254field.ValidateG2(proof.B); err != nil {
		return err
	}
	if err := bn254field.ValidateG1(proof.C); err != nil {
		return err
	}

	vkX, err := bn254field.ICEval(vk.IC, publicInputs)
	if err != nil {
		return err
	}

	negA := bn254field.NegG1(proof.A)

	g1Points := []bn254field.G1{negA, vk.Alpha, vkX, proof.C}
	g2Points := []bn254field.G2{proof.B, vk.Beta, vk.Gamma, vk.Delta}

	ok, err := pairer.MultiPair(ctx, g1Points, g2Points)
	if err != nil {
		return ErrProofRejected
	}
	if !ok {
		return ErrProofRejected
	}
	return nil
}
