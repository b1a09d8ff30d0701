package bn254field

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

func TestInFieldRejectsModulusAndAbove(t *testing.T) {
	var s Scalar
	modBytes := fr.Modulus().Bytes()
	copy(s[ScalarSize-len(modBytes):], modBytes)
	if InField(s) {
		t.Fatal("the modulus itself must not be in-field")
	}
}

func TestInFieldAcceptsZero(t *testing.T) {
	var s Scalar
	if !InField(s) {
		t.Fatal("zero must be a valid field element")
	}
}

func TestScalarFromBytesRejectsWrongLength(t *testing.T) {
	if _, err := ScalarFromBytes(make([]byte, 31)); err != ErrInvalidPointEncoding {
		t.Fatalf("want ErrInvalidPointEncoding, got %v", err)
	}
}

func TestValidG1RejectsWrongLength(t *testing.T) {
	if _, err := ValidG1(make([]byte, 63)); err != ErrInvalidPointEncoding {
		t.Fatalf("want ErrInvalidPointEncoding, got %v", err)
	}
}

func TestValidG1RejectsInfinity(t *testing.T) {
	if _, err := ValidG1(make([]byte, G1Size)); err != ErrPointAtInfinity {
		t.Fatalf("want ErrPointAtInfinity, got %v", err)
	}
}

func TestValidG1AcceptsGenerator(t *testing.T) {
	_, _, g1Gen, _ := bn254.Generators()
	b := g1Gen.Marshal()
	g, err := ValidG1(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.P.Equal(&g1Gen) {
		t.Fatal("decoded point does not match generator")
	}
}

func TestValidateG1RejectsInfinity(t *testing.T) {
	if err := ValidateG1(G1{}); err != ErrPointAtInfinity {
		t.Fatalf("want ErrPointAtInfinity, got %v", err)
	}
}

func TestValidateG1AcceptsGenerator(t *testing.T) {
	if err := ValidateG1(G1Generator()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateG2RejectsInfinity(t *testing.T) {
	if err := ValidateG2(G2{}); err != ErrPointAtInfinity {
		t.Fatalf("want ErrPointAtInfinity, got %v", err)
	}
}

func TestValidateG2AcceptsGenerator(t *testing.T) {
	if err := ValidateG2(G2Generator()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNegG1RoundTrips(t *testing.T) {
	_, _, g1Gen, _ := bn254.Generators()
	g := G1{P: g1Gen}
	neg := NegG1(g)

	var sum bn254.G1Affine
	sum.Add(&g.P, &neg.P)
	if !sum.IsInfinity() {
		t.Fatal("g + (-g) must be the identity")
	}
}

func TestICEvalRejectsArityMismatch(t *testing.T) {
	_, err := ICEval(make([]G1, 2), make([]Scalar, 2))
	if err == nil {
		t.Fatal("expected an arity mismatch error")
	}
}

func TestICEvalMatchesManualAccumulation(t *testing.T) {
	_, _, g1Gen, _ := bn254.Generators()

	ic := []G1{{P: g1Gen}, {P: g1Gen}}
	var in Scalar
	in[ScalarSize-1] = 3

	got, err := ICEval(ic, []Scalar{in})
	if err != nil {
		t.Fatal(err)
	}

	var want bn254.G1Affine
	want.ScalarMultiplication(&g1Gen, in.BigInt())
	want.Add(&want, &g1Gen)

	if !got.P.Equal(&want) {
		t.Fatal("ICEval result does not match manual ic[0] + input*ic[1]")
	}
}
