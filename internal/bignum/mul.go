package bignum

import "sync/atomic"

const (
	// DefaultKaratsubaThreshold is the operand size, in limbs of the shorter
	// factor, from which multiplication switches to Karatsuba.
	DefaultKaratsubaThreshold = 100

	// MinKaratsubaThreshold is the smallest accepted threshold. Below it the
	// Karatsuba split would produce an empty low half.
	MinKaratsubaThreshold = 2
)

var karatsubaThreshold atomic.Int64

// KaratsubaThreshold returns the limb count at which Mul switches from the
// schoolbook convolution to Karatsuba.
func KaratsubaThreshold() int {
	if t := karatsubaThreshold.Load(); t > 0 {
		return int(t)
	}
	return DefaultKaratsubaThreshold
}

// SetKaratsubaThreshold changes the process-wide multiplication threshold and
// returns the previous value. n <= 0 restores the default; positive values
// below MinKaratsubaThreshold are raised to it.
//
// The threshold is read once per top-level multiplication, so changing it
// while multiplications run affects only the ones started afterwards.
func SetKaratsubaThreshold(n int) int {
	prev := KaratsubaThreshold()
	switch {
	case n <= 0:
		karatsubaThreshold.Store(0)
	case n < MinKaratsubaThreshold:
		karatsubaThreshold.Store(MinKaratsubaThreshold)
	default:
		karatsubaThreshold.Store(int64(n))
	}
	return prev
}

// MulAssign sets z = z * x and returns z.
func (z *Nat[L]) MulAssign(x Nat[L]) *Nat[L] {
	z.limbs = mulLimbs(z.limbs, x.limbs, KaratsubaThreshold())
	z.shrink()
	return z
}

// Mul returns x * y.
func (x Nat[L]) Mul(y Nat[L]) Nat[L] {
	return Nat[L]{limbs: mulLimbs(x.limbs, y.limbs, KaratsubaThreshold())}
}

// mulLimbs multiplies two normalized limb sequences and returns a newly
// allocated, normalized product. Neither input is modified.
//
// Parameters:
//   - a, b: the factors, in any order.
//   - threshold: the length of the shorter factor from which Karatsuba is used.
//
// Returns:
//   - []L: the product, or nil if either factor is zero.
func mulLimbs[L Limb](a, b []L, threshold int) []L {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return nil
	}
	if len(b) < threshold {
		return convolve(a, b)
	}
	return karatsuba(a, b, threshold)
}

// convolve is the schoolbook product. Column k of the result is the sum of
// a[i]*b[k-i]; instead of adding each partial product row in a separate pass,
// the column is accumulated directly: the low half of every limb product goes
// into cur (column k), the high half into next (column k+1), and overflow out
// of next is counted in carry (column k+2 and up).
func convolve[L Limb](a, b []L) []L {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	w := limbWidth[L]()
	n := len(a) + len(b)
	z := make([]L, n, n+1)

	var cur, next L
	var carry uint64
	for k := 0; k < n-1; k++ {
		lo := max(0, k-len(b)+1)
		hi := min(k, len(a)-1)
		for i := lo; i <= hi; i++ {
			ph, pl := mulAddWWW(a[i], b[k-i], 0)
			var c L
			cur, c = addWW(cur, pl, 0)
			next, c = addWW(next, ph, c)
			carry += uint64(c)
		}
		z[k] = cur
		cur, next = next, L(carry)
		carry >>= w
	}
	z[n-1] = cur
	return norm(z)
}

// karatsuba multiplies a by b where len(a) >= len(b) >= 2. Both factors are
// split at half the length of b:
//
//	a = a1*B^h + a0, b = b1*B^h + b0
//	z0 = a0*b0, z2 = a1*b1, z1 = (a0+a1)(b0+b1) - z0 - z2
//	a*b = z2*B^2h + z1*B^h + z0
//
// The three sub-products go back through mulLimbs so small halves end up in
// the schoolbook path.
func karatsuba[L Limb](a, b []L, threshold int) []L {
	h := len(b) / 2
	a0, a1 := norm(a[:h]), a[h:]
	b0, b1 := norm(b[:h]), b[h:]

	z0 := mulLimbs(a0, b0, threshold)
	z2 := mulLimbs(a1, b1, threshold)
	z1 := mulLimbs(addVec(a0, a1), addVec(b0, b1), threshold)
	subLimbs(z1, z0, 0)
	subLimbs(z1, z2, 0)
	z1 = norm(z1)

	z := make([]L, len(a)+len(b), len(a)+len(b)+1)
	copy(z, z0)
	addLimbs(z, z1, h)
	addLimbs(z, z2, 2*h)
	return norm(z)
}
