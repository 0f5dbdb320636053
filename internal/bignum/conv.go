package bignum

import (
	"fmt"
	"strconv"
	"strings"
)

// decimalGroup returns the largest power of ten that fits in one limb of L
// and its number of digits.
func decimalGroup[L Limb]() (L, int) {
	digits := []int{8: 2, 16: 4, 32: 9, 64: 19}[limbWidth[L]()]
	return L(pow10[digits]), digits
}

var pow10 = [...]uint64{
	1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000,
	1_000_000_000, 10_000_000_000, 100_000_000_000, 1_000_000_000_000,
	10_000_000_000_000, 100_000_000_000_000, 1_000_000_000_000_000,
	10_000_000_000_000_000, 100_000_000_000_000_000, 1_000_000_000_000_000_000,
	10_000_000_000_000_000_000,
}

// String renders x in decimal.
func (x Nat[L]) String() string {
	if len(x.limbs) == 0 {
		return "0"
	}
	base, digits := decimalGroup[L]()
	d := NewNat(base)

	// Groups come out least significant first.
	var groups []uint64
	for cur := x; !cur.IsZero(); {
		var r Nat[L]
		cur, r = cur.QuotRem(d)
		v, _ := r.Uint64()
		groups = append(groups, v)
	}

	var sb strings.Builder
	sb.Grow(len(groups) * digits)
	sb.WriteString(strconv.FormatUint(groups[len(groups)-1], 10))
	for i := len(groups) - 2; i >= 0; i-- {
		s := strconv.FormatUint(groups[i], 10)
		sb.WriteString(strings.Repeat("0", digits-len(s)))
		sb.WriteString(s)
	}
	return sb.String()
}

// hex renders x in base 16 without prefix.
func (x Nat[L]) hex() string {
	if len(x.limbs) == 0 {
		return "0"
	}
	w := int(limbWidth[L]() / 4)
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(x.limbs[len(x.limbs)-1]), 16))
	for i := len(x.limbs) - 2; i >= 0; i-- {
		s := strconv.FormatUint(uint64(x.limbs[i]), 16)
		sb.WriteString(strings.Repeat("0", w-len(s)))
		sb.WriteString(s)
	}
	return sb.String()
}

// Format implements fmt.Formatter. It supports %d, %s and %v (decimal) and
// %x (hexadecimal; %#x adds the 0x prefix).
func (x Nat[L]) Format(f fmt.State, verb rune) {
	switch verb {
	case 'd', 's', 'v':
		fmt.Fprint(f, x.String())
	case 'x':
		if f.Flag('#') {
			fmt.Fprint(f, "0x")
		}
		fmt.Fprint(f, x.hex())
	default:
		fmt.Fprintf(f, "%%!%c(bignum.Nat=%s)", verb, x.String())
	}
}

// ParseNat reads a decimal string, folding it left to right as
// acc = acc*10 + digit. Characters other than '0'..'9' are skipped, so
// "1_000", "1,000" and "1 000" all parse as 1000 and an input without digits
// parses as 0. Use ParseNatStrict to reject such input.
func ParseNat[L Limb](s string) Nat[L] {
	var z Nat[L]
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			continue
		}
		z.mulAddLimb(10, L(c-'0'))
	}
	return z
}

// ParseNatStrict is ParseNat for input that must consist of decimal digits
// only. The returned error wraps ErrInvalidDigit.
func ParseNatStrict[L Limb](s string) (Nat[L], error) {
	if s == "" {
		return Nat[L]{}, fmt.Errorf("%w: empty input", ErrInvalidDigit)
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < '0' || c > '9' {
			return Nat[L]{}, fmt.Errorf("%w: %q at offset %d", ErrInvalidDigit, c, i)
		}
	}
	return ParseNat[L](s), nil
}

// mulAddLimb sets z = z*m + a in place.
func (z *Nat[L]) mulAddLimb(m, a L) {
	c := a
	for i, l := range z.limbs {
		c, z.limbs[i] = mulAddWWW(l, m, c)
	}
	if c != 0 {
		z.limbs = append(z.limbs, c)
	}
}
