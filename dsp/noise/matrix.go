package noise

import (
	"math"
	"math/cmplx"
	"math/rand"
)

// BankSize is the number of oscillators per channel and the dimension of the
// mixing matrices.
const BankSize = 7

const chainLen = 3

// cmat is a BankSize x BankSize complex matrix in row-major order.
type cmat [BankSize][BankSize]complex128

func matIdentity() cmat {
	var m cmat
	for i := range m {
		m[i][i] = 1
	}
	return m
}

func matRandom(rng *rand.Rand) cmat {
	var m cmat
	for i := range m {
		for j := range m[i] {
			m[i][j] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
		}
	}
	return m
}

func matMul(a, b cmat) cmat {
	var out cmat
	for i := 0; i < BankSize; i++ {
		for k := 0; k < BankSize; k++ {
			if a[i][k] == 0 {
				continue
			}
			aik := a[i][k]
			for j := 0; j < BankSize; j++ {
				out[i][j] += aik * b[k][j]
			}
		}
	}
	return out
}

func matAdjoint(m cmat) cmat {
	var out cmat
	for i := range m {
		for j := range m[i] {
			out[j][i] = cmplx.Conj(m[i][j])
		}
	}
	return out
}

// matAddScaled returns a + s*b.
func matAddScaled(a, b cmat, s complex128) cmat {
	for i := range a {
		for j := range a[i] {
			a[i][j] += s * b[i][j]
		}
	}
	return a
}

// commutator returns a*b - b*a.
func commutator(a, b cmat) cmat {
	ab := matMul(a, b)
	ba := matMul(b, a)
	for i := range ab {
		for j := range ab[i] {
			ab[i][j] -= ba[i][j]
		}
	}
	return ab
}

func matTrace(m cmat) complex128 {
	var t complex128
	for i := range m {
		t += m[i][i]
	}
	return t
}

func matFrobenius(m cmat) float64 {
	sum := 0.0
	for i := range m {
		for j := range m[i] {
			re, im := real(m[i][j]), imag(m[i][j])
			sum += re*re + im*im
		}
	}
	return math.Sqrt(sum)
}

// fixHermitian projects m onto the traceless Hermitian matrices with unit
// Frobenius norm. This is the re-projection applied periodically to keep the
// drift dynamics from blowing up or decaying.
func fixHermitian(m cmat) cmat {
	adj := matAdjoint(m)
	for i := range m {
		for j := range m[i] {
			m[i][j] = (m[i][j] + adj[i][j]) / 2
		}
	}

	shift := matTrace(m) / complex(BankSize, 0)
	for i := range m {
		m[i][i] -= shift
	}

	norm := matFrobenius(m)
	if norm == 0 {
		return m
	}
	for i := range m {
		for j := range m[i] {
			m[i][j] /= complex(norm, 0)
		}
	}
	return m
}

const (
	polarMaxIter = 24
	polarTol     = 1e-12
)

// fixUnitary projects m onto the unitary matrices via the Newton iteration
// for the polar factor: U <- (U + (U^H)^-1) / 2. The iteration converges
// quadratically for matrices near unitarity, which is the regime the drift
// dynamics keep us in between re-projections.
func fixUnitary(m cmat) cmat {
	u := m
	for iter := 0; iter < polarMaxIter; iter++ {
		inv, ok := matInvert(matAdjoint(u))
		if !ok {
			return u
		}
		delta := 0.0
		for i := range u {
			for j := range u[i] {
				next := (u[i][j] + inv[i][j]) / 2
				if d := cmplx.Abs(next - u[i][j]); d > delta {
					delta = d
				}
				u[i][j] = next
			}
		}
		if delta < polarTol {
			break
		}
	}
	return u
}

// matInvert computes the inverse by Gauss-Jordan elimination with partial
// pivoting. Returns false for singular input.
func matInvert(m cmat) (cmat, bool) {
	inv := matIdentity()
	for col := 0; col < BankSize; col++ {
		pivot := col
		best := cmplx.Abs(m[col][col])
		for row := col + 1; row < BankSize; row++ {
			if a := cmplx.Abs(m[row][col]); a > best {
				best = a
				pivot = row
			}
		}
		if best == 0 {
			return inv, false
		}
		if pivot != col {
			m[col], m[pivot] = m[pivot], m[col]
			inv[col], inv[pivot] = inv[pivot], inv[col]
		}

		scale := m[col][col]
		for j := 0; j < BankSize; j++ {
			m[col][j] /= scale
			inv[col][j] /= scale
		}
		for row := 0; row < BankSize; row++ {
			if row == col || m[row][col] == 0 {
				continue
			}
			factor := m[row][col]
			for j := 0; j < BankSize; j++ {
				m[row][j] -= factor * m[col][j]
				inv[row][j] -= factor * inv[col][j]
			}
		}
	}
	return inv, true
}
