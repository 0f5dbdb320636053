package bignum

// QuotRem returns the quotient and remainder of x / d.
// It panics with ErrDivisionByZero if d == 0.
//
// Single-limb divisors use short division, one limb at a time. Wider divisors
// use restoring binary long division from the top bit of x downward; division
// only serves decimal conversion and diagnostics, so the quadratic bit-serial
// cost is accepted.
func (x Nat[L]) QuotRem(d Nat[L]) (q, r Nat[L]) {
	switch {
	case len(d.limbs) == 0:
		panic(ErrDivisionByZero)
	case x.Cmp(d) < 0:
		return Nat[L]{}, x.Clone()
	case len(d.limbs) == 1:
		ql, rl := x.quotRemLimb(d.limbs[0])
		return ql, NewNat(rl)
	}
	return x.quotRemBits(d)
}

// DivMod is QuotRem with the zero-divisor precondition reported as an error.
func (x Nat[L]) DivMod(d Nat[L]) (q, r Nat[L], err error) {
	if d.IsZero() {
		return Nat[L]{}, Nat[L]{}, ErrDivisionByZero
	}
	q, r = x.QuotRem(d)
	return q, r, nil
}

// quotRemBits is restoring division: shift the running remainder left by one
// bit, bring in the next bit of x, and subtract d whenever the remainder
// reaches it, setting the matching quotient bit.
func (x Nat[L]) quotRemBits(d Nat[L]) (q, r Nat[L]) {
	if len(d.limbs) == 0 {
		panic(ErrDivisionByZero)
	}
	q.limbs = make([]L, len(x.limbs))
	r.limbs = make([]L, 0, len(d.limbs)+1)
	for i := x.BitLen() - 1; i >= 0; i-- {
		r.shiftInBit(x.Bit(uint(i)))
		if r.Cmp(d) >= 0 {
			r.SubAssign(d)
			q.SetBit(uint(i), true)
		}
	}
	q.shrink()
	r.shrink()
	return q, r
}

// quotRemLimb divides x by the single non-zero limb d.
func (x Nat[L]) quotRemLimb(d L) (Nat[L], L) {
	q := make([]L, len(x.limbs))
	var r L
	for i := len(x.limbs) - 1; i >= 0; i-- {
		q[i], r = divWW(r, x.limbs[i], d)
	}
	return Nat[L]{limbs: norm(q)}, r
}

// shiftInBit sets z = z<<1 | b, keeping z canonical.
func (z *Nat[L]) shiftInBit(b bool) {
	w := limbWidth[L]()
	var c L
	if b {
		c = 1
	}
	for i, l := range z.limbs {
		z.limbs[i] = l<<1 | c
		c = l >> (w - 1)
	}
	if c != 0 {
		z.limbs = append(z.limbs, c)
	}
}
