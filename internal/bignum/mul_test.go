package bignum

import (
	"fmt"
	"math/big"
	"math/rand/v2"
	"testing"
)

func TestMultiplyPowerOfTwo(t *testing.T) {
	t.Parallel()
	const (
		p128 = "340282366920938463463374607431768211456"
		p129 = "680564733841876926926749214863536422912"
	)
	t.Run("u8", func(t *testing.T) { t.Parallel(); checkPowerOfTwo[uint8](t, p128, p129) })
	t.Run("u16", func(t *testing.T) { t.Parallel(); checkPowerOfTwo[uint16](t, p128, p129) })
	t.Run("u32", func(t *testing.T) { t.Parallel(); checkPowerOfTwo[uint32](t, p128, p129) })
	t.Run("u64", func(t *testing.T) { t.Parallel(); checkPowerOfTwo[uint64](t, p128, p129) })
}

func checkPowerOfTwo[L Limb](t *testing.T, p128, p129 string) {
	t.Helper()
	a := ParseNat[L](p128)
	two := ParseNat[L]("2")
	want := ParseNat[L](p129)

	paths := map[string][]L{
		"schoolbook":    convolve(a.limbs, two.limbs),
		"dispatch":      mulLimbs(a.limbs, two.limbs, DefaultKaratsubaThreshold),
		"min threshold": mulLimbs(a.limbs, two.limbs, MinKaratsubaThreshold),
		// A zero-padded factor lets Karatsuba split a one-limb value.
		"karatsuba": karatsuba(a.limbs, []L{2, 0}, MinKaratsubaThreshold),
		"public":    a.Mul(two).limbs,
	}
	for name, got := range paths {
		if cmpLimbs(got, want.limbs) != 0 {
			t.Errorf("%s: 2^128*2 = %s, want %s", name, Nat[L]{limbs: got}, p129)
		}
	}
}

func TestMulPathsAgreeAroundThreshold(t *testing.T) {
	t.Parallel()
	t.Run("u8", func(t *testing.T) { t.Parallel(); checkPathsAgree[uint8](t) })
	t.Run("u32", func(t *testing.T) { t.Parallel(); checkPathsAgree[uint32](t) })
	t.Run("u64", func(t *testing.T) { t.Parallel(); checkPathsAgree[uint64](t) })
}

func checkPathsAgree[L Limb](t *testing.T) {
	t.Helper()
	r := rand.New(rand.NewPCG(1, uint64(limbWidth[L]())))
	th := DefaultKaratsubaThreshold
	for _, n := range []int{th - 1, th, th + 1} {
		for _, m := range []int{n, n + 37, 3 * n} {
			a, b := randNat[L](r, m), randNat[L](r, n)
			school := convolve(a.limbs, b.limbs)
			dispatch := mulLimbs(a.limbs, b.limbs, th)
			want := new(big.Int).Mul(a.Big(), b.Big())
			if cmpLimbs(school, dispatch) != 0 {
				t.Fatalf("%dx%d limbs: schoolbook and dispatch disagree", m, n)
			}
			if got := (Nat[L]{limbs: dispatch}).Big(); got.Cmp(want) != 0 {
				t.Fatalf("%dx%d limbs: product differs from math/big", m, n)
			}
		}
	}
}

func TestKaratsubaSmallThresholds(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(7, 11))
	for _, th := range []int{2, 3, 5, 8} {
		for n := 1; n <= 40; n += 3 {
			a, b := randNat[uint16](r, n+r.IntN(20)), randNat[uint16](r, n)
			got := Nat[uint16]{limbs: mulLimbs(a.limbs, b.limbs, th)}
			assertCanonical(t, got)
			want := new(big.Int).Mul(a.Big(), b.Big())
			if got.Big().Cmp(want) != 0 {
				t.Fatalf("threshold %d, %d limbs: got %s, want %s", th, n, got, want)
			}
		}
	}
}

func TestMulByZero(t *testing.T) {
	t.Parallel()
	x := ParseNat[uint32]("99999999999999999999")
	if got := x.Mul(Nat[uint32]{}); !got.IsZero() {
		t.Errorf("x*0 = %s", got.Dump())
	}
	var z Nat[uint32]
	z.MulAssign(x)
	if !z.IsZero() {
		t.Errorf("0*x = %s", z.Dump())
	}
}

func TestMulAssignSelf(t *testing.T) {
	t.Parallel()
	x := ParseNat[uint64]("18446744073709551616")
	x.MulAssign(x)
	if got := x.String(); got != "340282366920938463463374607431768211456" {
		t.Errorf("(2^64)^2 = %s", got)
	}
}

// TestRepeatedMultiplyMatchesBig runs a product chain long enough to cross
// the Karatsuba threshold for every width.
func TestRepeatedMultiplyMatchesBig(t *testing.T) {
	t.Parallel()
	for _, w := range []int{8, 16, 32, 64} {
		t.Run(fmt.Sprintf("u%d", w), func(t *testing.T) {
			t.Parallel()
			switch w {
			case 8:
				checkProductChain[uint8](t)
			case 16:
				checkProductChain[uint16](t)
			case 32:
				checkProductChain[uint32](t)
			default:
				checkProductChain[uint64](t)
			}
		})
	}
}

func checkProductChain[L Limb](t *testing.T) {
	t.Helper()
	const f = "12345678901234567890123456789"
	x, y := ParseNat[L](f), ParseNat[L](f)
	want, factor := bigFromString(t, f), bigFromString(t, f)
	for i := 0; i < 60; i++ {
		x.MulAssign(y)
		want.Mul(want, factor)
		if x.Big().Cmp(want) != 0 {
			t.Fatalf("step %d: product chain diverged from math/big", i)
		}
	}
}

// Not parallel: mutates the process-wide threshold.
func TestSetKaratsubaThreshold(t *testing.T) {
	defer SetKaratsubaThreshold(0)

	if got := KaratsubaThreshold(); got != DefaultKaratsubaThreshold {
		t.Fatalf("default threshold = %d", got)
	}
	if prev := SetKaratsubaThreshold(32); prev != DefaultKaratsubaThreshold {
		t.Errorf("previous threshold = %d", prev)
	}
	if got := KaratsubaThreshold(); got != 32 {
		t.Errorf("threshold = %d, want 32", got)
	}
	SetKaratsubaThreshold(1)
	if got := KaratsubaThreshold(); got != MinKaratsubaThreshold {
		t.Errorf("threshold = %d, want clamp to %d", got, MinKaratsubaThreshold)
	}
	SetKaratsubaThreshold(-5)
	if got := KaratsubaThreshold(); got != DefaultKaratsubaThreshold {
		t.Errorf("threshold = %d, want default", got)
	}
}
