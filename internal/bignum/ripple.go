package bignum

// addLimbs adds src into dst starting at limb offset shift and returns whether
// a carry escaped the top of dst. After the overlap region the carry keeps
// rippling through the higher limbs of dst. len(dst) must be at least
// len(src)+shift.
func addLimbs[L Limb](dst, src []L, shift int) bool {
	var c L
	for i, s := range src {
		dst[shift+i], c = addWW(dst[shift+i], s, c)
	}
	for j := shift + len(src); c != 0 && j < len(dst); j++ {
		dst[j], c = addWW(dst[j], 0, c)
	}
	return c != 0
}

// subLimbs subtracts src from dst starting at limb offset shift and returns
// whether a borrow escaped the top of dst.
func subLimbs[L Limb](dst, src []L, shift int) bool {
	var b L
	for i, s := range src {
		dst[shift+i], b = subWW(dst[shift+i], s, b)
	}
	for j := shift + len(src); b != 0 && j < len(dst); j++ {
		dst[j], b = subWW(dst[j], 0, b)
	}
	return b != 0
}

// cmpLimbs compares two canonical limb sequences.
func cmpLimbs[L Limb](x, y []L) int {
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// addVec returns x + y in a newly allocated, normalized slice.
func addVec[L Limb](x, y []L) []L {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make([]L, len(x), len(x)+1)
	copy(z, x)
	if addLimbs(z, y, 0) {
		z = append(z, 1)
	}
	return norm(z)
}

// AddAssign sets z = z + x and returns z.
func (z *Nat[L]) AddAssign(x Nat[L]) *Nat[L] {
	// Grow before rippling so the carry pass never sees a partial resize.
	z.limbs = grow(z.limbs, len(x.limbs))
	if addLimbs(z.limbs, x.limbs, 0) {
		z.limbs = append(z.limbs, 1)
	}
	z.shrink()
	return z
}

// SubAssign sets z = z - x and returns z.
// It panics with ErrUnderflow if x > z; z is then left in an unspecified state.
func (z *Nat[L]) SubAssign(x Nat[L]) *Nat[L] {
	if len(x.limbs) > len(z.limbs) {
		panic(ErrUnderflow)
	}
	if subLimbs(z.limbs, x.limbs, 0) {
		panic(ErrUnderflow)
	}
	z.shrink()
	return z
}

// Add returns x + y.
func (x Nat[L]) Add(y Nat[L]) Nat[L] {
	z := x.Clone()
	z.AddAssign(y)
	return z
}

// Sub returns x - y. It panics with ErrUnderflow if y > x.
func (x Nat[L]) Sub(y Nat[L]) Nat[L] {
	z := x.Clone()
	z.SubAssign(y)
	return z
}

// AddUint64 returns x + v.
func (x Nat[L]) AddUint64(v uint64) Nat[L] {
	return x.Add(NatFromUint64[L](v))
}
