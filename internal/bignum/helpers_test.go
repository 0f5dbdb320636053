package bignum

import (
	"errors"
	"math/big"
	"math/rand/v2"
	"testing"
)

// natFromWords truncates every word to one limb of L.
func natFromWords[L Limb](words []uint64) Nat[L] {
	limbs := make([]L, len(words))
	for i, w := range words {
		limbs[i] = L(w)
	}
	return NatFromLimbs(limbs)
}

// randNat returns a value with exactly n limbs.
func randNat[L Limb](r *rand.Rand, n int) Nat[L] {
	limbs := make([]L, n)
	for i := range limbs {
		limbs[i] = L(r.Uint64())
	}
	if n > 0 && limbs[n-1] == 0 {
		limbs[n-1] = 1
	}
	return NatFromLimbs(limbs)
}

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad decimal %q", s)
	}
	return v
}

// expectPanic runs f and checks that it panics with an error matching want.
func expectPanic(t *testing.T, want error, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %v", want)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, want) {
			t.Fatalf("panic value = %v, want %v", r, want)
		}
	}()
	f()
}

func assertCanonical[L Limb](t *testing.T, x Nat[L]) {
	t.Helper()
	if n := len(x.limbs); n > 0 && x.limbs[n-1] == 0 {
		t.Fatalf("value %s is not canonical: %s", x, x.Dump())
	}
}
