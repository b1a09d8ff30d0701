package groth16verifier

import (
	"context"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/ccoin/shieldpool/pkg/bn254field"
	"github.com/ccoin/shieldpool/pkg/vkstore"
)

// buildValidFixture constructs a Groth16-shaped instance that satisfies
// the pairing identity for zero public inputs, with every point a
// non-identity curve point (beta=gamma=delta=G2 generator, alpha=IC[0]=C=G1
// generator): e(-A,B)*e(alpha,beta)*e(vk_x,gamma)*e(C,delta) collapses,
// since B=beta=gamma=delta, to e(-A + alpha+vk_x+C, beta) = e(-3g+3g,beta)
// = 1 once A = 3*alpha.
func buildValidFixture() (Proof, *vkstore.VerifyingKey) {
	_, _, g1Gen, g2Gen := bn254.Generators()

	var threeG1 bn254.G1Affine
	threeG1.ScalarMultiplication(&g1Gen, big.NewInt(3))

	proof := Proof{
		A: bn254field.G1{P: threeG1},
		B: bn254field.G2{P: g2Gen},
		C: bn254field.G1{P: g1Gen},
	}

	vk := &vkstore.VerifyingKey{
		Alpha:      bn254field.G1{P: g1Gen},
		Beta:       bn254field.G2{P: g2Gen},
		Gamma:      bn254field.G2{P: g2Gen},
		Delta:      bn254field.G2{P: g2Gen},
		IC:         []bn254field.G1{{P: g1Gen}},
		Configured: true,
	}
	return proof, vk
}

func TestVerifyAcceptsTrivialIdentity(t *testing.T) {
	proof, vk := buildValidFixture()
	if err := Verify(context.Background(), LocalPairer{}, proof, vk, nil); err != nil {
		t.Fatalf("expected acceptance, got %v", err)
	}
}

func TestVerifyRejectsWhenNotConfigured(t *testing.T) {
	proof, vk := buildValidFixture()
	vk.Configured = false
	if err := Verify(context.Background(), LocalPairer{}, proof, vk, nil); err != vkstore.ErrNotConfigured {
		t.Fatalf("want ErrNotConfigured, got %v", err)
	}
}

func TestVerifyRejectsArityMismatch(t *testing.T) {
	proof, vk := buildValidFixture()
	in := make([]bn254field.Scalar, 1)
	if err := Verify(context.Background(), LocalPairer{}, proof, vk, in); err != vkstore.ErrArityMismatch {
		t.Fatalf("want ErrArityMismatch, got %v", err)
	}
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	proof, vk := buildValidFixture()

	// Perturb A by adding the generator again; the identity no longer holds.
	_, _, g1Gen, _ := bn254.Generators()
	var tampered bn254.G1Affine
	tampered.Add(&proof.A.P, &g1Gen)
	proof.A = bn254field.G1{P: tampered}

	if err := Verify(context.Background(), LocalPairer{}, proof, vk, nil); err != ErrProofRejected {
		t.Fatalf("want ErrProofRejected, got %v", err)
	}
}

func TestVerifyRejectsPointAtInfinity(t *testing.T) {
	proof, vk := buildValidFixture()
	proof.C = bn254field.G1{}
	if err := Verify(context.Background(), LocalPairer{}, proof, vk, nil); err != bn254field.ErrPointAtInfinity {
		t.Fatalf("want ErrPointAtInfinity, got %v", err)
	}
}

func TestVerifyIsDeterministic(t *testing.T) {
	proof, vk := buildValidFixture()
	err1 := Verify(context.Background(), LocalPairer{}, proof, vk, nil)
	err2 := Verify(context.Background(), LocalPairer{}, proof, vk, nil)
	if err1 != err2 {
		t.Fatalf("verification must be deterministic: %v vs %v", err1, err2)
	}
}
