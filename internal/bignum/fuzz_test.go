package bignum

import (
	"math/big"
	"testing"
)

func FuzzParseRoundTrip(f *testing.F) {
	for _, seed := range []string{"0", "1", "255", "18446744073709551616", "1_000", "12x34"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		x := ParseNat[uint32](s)
		assertCanonical(t, x)
		if y := ParseNat[uint32](x.String()); !y.Equal(x) {
			t.Fatalf("round-trip of %q: %s != %s", s, y, x)
		}
		if got := ParseNat[uint8](s); got.Big().Cmp(x.Big()) != 0 {
			t.Fatalf("u8 and u32 parse of %q disagree", s)
		}
	})
}

func FuzzMulAgainstBig(f *testing.F) {
	f.Add([]byte{1}, []byte{2})
	f.Add([]byte{0xff, 0xff, 0xff}, []byte{0xff})
	f.Fuzz(func(t *testing.T, a, b []byte) {
		x := NatFromBig[uint16](new(big.Int).SetBytes(a))
		y := NatFromBig[uint16](new(big.Int).SetBytes(b))
		want := new(big.Int).Mul(x.Big(), y.Big())
		for _, th := range []int{MinKaratsubaThreshold, 4, DefaultKaratsubaThreshold} {
			got := Nat[uint16]{limbs: mulLimbs(x.limbs, y.limbs, th)}
			if got.Big().Cmp(want) != 0 {
				t.Fatalf("threshold %d: %s*%s = %s, want %s", th, x, y, got, want)
			}
		}
	})
}
