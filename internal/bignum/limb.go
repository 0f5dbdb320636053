package bignum

import "math/bits"

// Limb is the set of unsigned integer types usable as a single digit of a Nat.
type Limb interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// limbWidth returns the number of bits in L.
func limbWidth[L Limb]() uint {
	return uint(bits.Len64(uint64(^L(0))))
}

// addWW returns x + y + carry and the carry out. carry must be 0 or 1.
func addWW[L Limb](x, y, carry L) (sum, carryOut L) {
	if limbWidth[L]() == 64 {
		s, c := bits.Add64(uint64(x), uint64(y), uint64(carry))
		return L(s), L(c)
	}
	s := uint64(x) + uint64(y) + uint64(carry)
	return L(s), L(s >> limbWidth[L]())
}

// subWW returns x - y - borrow and the borrow out. borrow must be 0 or 1.
func subWW[L Limb](x, y, borrow L) (diff, borrowOut L) {
	if limbWidth[L]() == 64 {
		d, b := bits.Sub64(uint64(x), uint64(y), uint64(borrow))
		return L(d), L(b)
	}
	d := uint64(x) - uint64(y) - uint64(borrow)
	return L(d), L(d >> 63)
}

// mulAddWWW returns the double-width value x*y + c as (hi, lo).
// The result never overflows two limbs.
func mulAddWWW[L Limb](x, y, c L) (hi, lo L) {
	w := limbWidth[L]()
	if w == 64 {
		h, l := bits.Mul64(uint64(x), uint64(y))
		l, cc := bits.Add64(l, uint64(c), 0)
		return L(h + cc), L(l)
	}
	p := uint64(x)*uint64(y) + uint64(c)
	return L(p >> w), L(p)
}

// divWW returns the quotient and remainder of (hi, lo) / d. It requires hi < d.
func divWW[L Limb](hi, lo, d L) (q, r L) {
	w := limbWidth[L]()
	if w == 64 {
		qq, rr := bits.Div64(uint64(hi), uint64(lo), uint64(d))
		return L(qq), L(rr)
	}
	n := uint64(hi)<<w | uint64(lo)
	return L(n / uint64(d)), L(n % uint64(d))
}

// norm trims trailing zero limbs.
func norm[L Limb](z []L) []L {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	return z[:i]
}

// grow extends z to length n, zeroing the new limbs. Existing limbs are kept.
func grow[L Limb](z []L, n int) []L {
	if n <= len(z) {
		return z
	}
	if n <= cap(z) {
		old := len(z)
		z = z[:n]
		clear(z[old:])
		return z
	}
	t := make([]L, n, n+1)
	copy(t, z)
	return t
}
