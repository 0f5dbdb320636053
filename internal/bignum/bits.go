package bignum

import "math/bits"

// Bit reports whether bit i of x is set. Bits beyond the last limb are zero.
func (x Nat[L]) Bit(i uint) bool {
	w := limbWidth[L]()
	k := i / w
	if k >= uint(len(x.limbs)) {
		return false
	}
	return x.limbs[k]>>(i%w)&1 == 1
}

// SetBit sets bit i of z to b and returns z. The limb sequence grows with
// zero limbs to reach bit i. Clearing a bit may leave trailing zero limbs;
// call Shrink before handing z to other operations.
func (z *Nat[L]) SetBit(i uint, b bool) *Nat[L] {
	w := limbWidth[L]()
	k := int(i / w)
	m := L(1) << (i % w)
	z.limbs = grow(z.limbs, k+1)
	if b {
		z.limbs[k] |= m
	} else {
		z.limbs[k] &^= m
	}
	return z
}

// BitLen returns the length of x in bits. BitLen of 0 is 0.
func (x Nat[L]) BitLen() int {
	if len(x.limbs) == 0 {
		return 0
	}
	top := x.limbs[len(x.limbs)-1]
	return (len(x.limbs)-1)*int(limbWidth[L]()) + bits.Len64(uint64(top))
}

// LshAssign sets z = z << k and returns z.
//
// k splits into a whole-limb offset and a bit offset inside a limb. Every
// destination limb is rebuilt from the two source limbs it straddles, walking
// from the most significant destination limb down so that source limbs are
// read before they are overwritten.
func (z *Nat[L]) LshAssign(k uint) *Nat[L] {
	n := len(z.limbs)
	if n == 0 || k == 0 {
		return z
	}
	w := limbWidth[L]()
	ls, bs := int(k/w), k%w
	out := n + ls + 1
	z.limbs = grow(z.limbs, out)
	src := func(j int) L {
		if j < 0 || j >= n {
			return 0
		}
		return z.limbs[j]
	}
	for i := out - 1; i >= ls; i-- {
		j := i - ls
		if bs == 0 {
			z.limbs[i] = src(j)
		} else {
			z.limbs[i] = src(j)<<bs | src(j-1)>>(w-bs)
		}
	}
	clear(z.limbs[:ls])
	z.shrink()
	return z
}

// Lsh returns x << k.
func (x Nat[L]) Lsh(k uint) Nat[L] {
	z := x.Clone()
	z.LshAssign(k)
	return z
}
