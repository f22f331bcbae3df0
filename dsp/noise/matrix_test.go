package noise

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"
)

const matTol = 1e-9

func TestFixHermitianProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 5; trial++ {
		m := fixHermitian(matRandom(rng))

		adj := matAdjoint(m)
		for i := range m {
			for j := range m[i] {
				if cmplx.Abs(m[i][j]-adj[i][j]) > matTol {
					t.Fatalf("trial %d: not Hermitian at (%d,%d): %v != %v", trial, i, j, m[i][j], adj[i][j])
				}
			}
		}

		if tr := cmplx.Abs(matTrace(m)); tr > matTol {
			t.Fatalf("trial %d: trace = %g, want 0", trial, tr)
		}
		if norm := matFrobenius(m); math.Abs(norm-1) > matTol {
			t.Fatalf("trial %d: Frobenius norm = %g, want 1", trial, norm)
		}
	}
}

func TestFixUnitaryProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 5; trial++ {
		u := fixUnitary(matRandom(rng))

		// U^H U must be the identity.
		prod := matMul(matAdjoint(u), u)
		for i := range prod {
			for j := range prod[i] {
				want := complex128(0)
				if i == j {
					want = 1
				}
				if cmplx.Abs(prod[i][j]-want) > 1e-6 {
					t.Fatalf("trial %d: (U^H U)[%d][%d] = %v, want %v", trial, i, j, prod[i][j], want)
				}
			}
		}
	}
}

func TestFixUnitaryNearUnitaryInput(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	u := fixUnitary(matRandom(rng))

	// Perturb slightly, as the drift dynamics do between re-projections.
	perturbed := matAddScaled(u, matRandom(rng), complex(1e-3, 0))
	fixed := fixUnitary(perturbed)

	prod := matMul(matAdjoint(fixed), fixed)
	for i := range prod {
		want := complex128(1)
		if cmplx.Abs(prod[i][i]-want) > 1e-9 {
			t.Fatalf("diagonal (U^H U)[%d][%d] = %v, want 1", i, i, prod[i][i])
		}
	}
}

func TestMatInvert(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	m := matRandom(rng)
	inv, ok := matInvert(m)
	if !ok {
		t.Fatal("matInvert() reported singular input")
	}

	prod := matMul(m, inv)
	for i := range prod {
		for j := range prod[i] {
			want := complex128(0)
			if i == j {
				want = 1
			}
			if cmplx.Abs(prod[i][j]-want) > 1e-8 {
				t.Fatalf("(M M^-1)[%d][%d] = %v, want %v", i, j, prod[i][j], want)
			}
		}
	}
}

func TestMatInvertSingular(t *testing.T) {
	var m cmat
	if _, ok := matInvert(m); ok {
		t.Fatal("matInvert() accepted a singular matrix")
	}
}

func TestCommutatorAntisymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	a := matRandom(rng)
	b := matRandom(rng)

	ab := commutator(a, b)
	ba := commutator(b, a)
	for i := range ab {
		for j := range ab[i] {
			if cmplx.Abs(ab[i][j]+ba[i][j]) > matTol {
				t.Fatalf("[a,b] != -[b,a] at (%d,%d)", i, j)
			}
		}
	}
}

func TestEvolvePreservesHermiticity(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	p := newParams(rng)
	p.evolve(0.01)

	// The commutator of Hermitian matrices times i*dt stays Hermitian, so a
	// single small step should leave the chain nearly self-adjoint.
	for k := range p.herm {
		adj := matAdjoint(p.herm[k])
		for i := range adj {
			for j := range adj[i] {
				if cmplx.Abs(p.herm[k][i][j]-adj[i][j]) > 1e-6 {
					t.Fatalf("herm[%d] lost Hermiticity at (%d,%d)", k, i, j)
				}
			}
		}
	}
}
