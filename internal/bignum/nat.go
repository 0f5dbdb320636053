package bignum

import (
	"fmt"
	"math/big"
	"slices"
)

// Nat is an unsigned integer of arbitrary size stored as limbs of type L,
// least significant first. The zero value is 0.
type Nat[L Limb] struct {
	limbs []L
}

// NewNat returns a Nat holding the single limb v.
func NewNat[L Limb](v L) Nat[L] {
	if v == 0 {
		return Nat[L]{}
	}
	return Nat[L]{limbs: []L{v}}
}

// NatFromUint64 returns a Nat holding v, split into as many limbs as needed.
func NatFromUint64[L Limb](v uint64) Nat[L] {
	var z Nat[L]
	w := limbWidth[L]()
	for v != 0 {
		z.limbs = append(z.limbs, L(v))
		v >>= w
	}
	return z
}

// NatFromLimbs returns a Nat built from a copy of limbs (least significant
// first). Trailing zero limbs are dropped.
func NatFromLimbs[L Limb](limbs []L) Nat[L] {
	return Nat[L]{limbs: slices.Clone(norm(limbs))}
}

// NatFromBig converts the magnitude of v. The sign of v is ignored.
func NatFromBig[L Limb](v *big.Int) Nat[L] {
	if v == nil {
		return Nat[L]{}
	}
	buf := v.Bytes()
	per := int(limbWidth[L]() / 8)
	z := Nat[L]{limbs: make([]L, (len(buf)+per-1)/per)}
	for i := range buf {
		b := buf[len(buf)-1-i]
		z.limbs[i/per] |= L(b) << (8 * uint(i%per))
	}
	z.shrink()
	return z
}

// Big returns x as a *big.Int.
func (x Nat[L]) Big() *big.Int {
	per := int(limbWidth[L]() / 8)
	buf := make([]byte, len(x.limbs)*per)
	for i, l := range x.limbs {
		v := uint64(l)
		off := len(buf) - (i+1)*per
		for j := per - 1; j >= 0; j-- {
			buf[off+j] = byte(v)
			v >>= 8
		}
	}
	return new(big.Int).SetBytes(buf)
}

// Clone returns a deep copy of x.
func (x Nat[L]) Clone() Nat[L] {
	if len(x.limbs) == 0 {
		return Nat[L]{}
	}
	z := make([]L, len(x.limbs), len(x.limbs)+1)
	copy(z, x.limbs)
	return Nat[L]{limbs: z}
}

// Set makes z a deep copy of x and returns z.
func (z *Nat[L]) Set(x Nat[L]) *Nat[L] {
	z.limbs = append(z.limbs[:0], x.limbs...)
	return z
}

// Limbs returns a copy of the limb sequence, least significant first.
func (x Nat[L]) Limbs() []L {
	return slices.Clone(x.limbs)
}

// Len returns the number of limbs.
func (x Nat[L]) Len() int { return len(x.limbs) }

// IsZero reports whether x == 0.
func (x Nat[L]) IsZero() bool { return len(x.limbs) == 0 }

// Uint64 returns the low 64 bits of x and whether x fits in a uint64.
func (x Nat[L]) Uint64() (uint64, bool) {
	w := limbWidth[L]()
	var v uint64
	for i, l := range x.limbs {
		if uint(i)*w >= 64 {
			return v, false
		}
		v |= uint64(l) << (uint(i) * w)
	}
	return v, true
}

// Shrink drops trailing zero limbs left behind by SetBit.
func (z *Nat[L]) Shrink() *Nat[L] {
	z.shrink()
	return z
}

func (z *Nat[L]) shrink() {
	z.limbs = norm(z.limbs)
	if len(z.limbs) == 0 {
		z.limbs = nil
	}
}

// Cmp compares x and y and returns -1, 0 or +1.
// Both operands must be canonical.
func (x Nat[L]) Cmp(y Nat[L]) int {
	return cmpLimbs(x.limbs, y.limbs)
}

// Equal reports whether x and y hold the same limbs.
func (x Nat[L]) Equal(y Nat[L]) bool {
	return slices.Equal(x.limbs, y.limbs)
}

// Dump renders the raw limbs for debugging, least significant first, e.g.
// "u32[0x1 0xffffffff]".
func (x Nat[L]) Dump() string {
	w := limbWidth[L]()
	s := fmt.Sprintf("u%d[", w)
	for i, l := range x.limbs {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%#x", uint64(l))
	}
	return s + "]"
}
