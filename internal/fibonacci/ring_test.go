package fibonacci

import (
	"context"
	"errors"
	"testing"

	"github.com/agbru/fibnum/internal/bignum"
)

type nat64 = bignum.Nat[uint64]

func TestGoldenPowers(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		a, b uint64
	}{
		{0, 1, 0},
		{1, 0, 1},
		{2, 1, 1},
		{3, 1, 2},
		{10, 34, 55},
		{20, 4181, 6765},
	}
	for _, tt := range tests {
		got := Golden[nat64]().Pow(tt.n)
		want := ZPhi[nat64]{A: bignum.NewNat[uint64](tt.a), B: bignum.NewNat[uint64](tt.b)}
		if !got.Equal(want) {
			t.Errorf("φ^%d = %s, want %s", tt.n, got, want)
		}
	}
}

func TestGoldenSquareIsGoldenPlusOne(t *testing.T) {
	t.Parallel()
	phi := Golden[nat64]()
	want := ZPhi[nat64]{A: bignum.NewNat[uint64](1), B: bignum.NewNat[uint64](1)}
	if got := phi.Square(); !got.Equal(want) {
		t.Errorf("φ² = %s, want %s", got, want)
	}
	other := Golden[nat64]()
	if got := phi.Mul(&other); !got.Equal(want) {
		t.Errorf("φ·φ = %s, want %s", got, want)
	}
}

func TestIdentityIsNeutral(t *testing.T) {
	t.Parallel()
	one := Identity[nat64]()
	x := ZPhi[nat64]{A: bignum.NewNat[uint64](7), B: bignum.NewNat[uint64](11)}
	if got := one.Mul(&x); !got.Equal(x) {
		t.Errorf("1·x = %s, want %s", got, x)
	}
	if got := x.Pow(1); !got.Equal(x) {
		t.Errorf("x^1 = %s, want %s", got, x)
	}
	if got := x.Pow(0); !got.Equal(one) {
		t.Errorf("x^0 = %s, want 1", got)
	}
}

func TestPowMatchesRepeatedMul(t *testing.T) {
	t.Parallel()
	x := ZPhi[BigInt]{A: BigInt{}.AddUint64(3), B: BigInt{}.AddUint64(2)}
	acc := Identity[BigInt]()
	for n := uint64(0); n < 40; n++ {
		if got := x.Pow(n); !got.Equal(acc) {
			t.Fatalf("x^%d = %s, want %s", n, got, acc)
		}
		acc = acc.Mul(&x)
	}
}

func TestRingAgreesWithFastDoubling(t *testing.T) {
	t.Parallel()
	for _, n := range []uint64{1, 2, 31, 64, 100, 255, 1000, 4097} {
		ring := FibonacciByRing[bignum.Nat[uint16]](n)
		fd := FastDoubling[bignum.Nat[uint16]](n)
		if !ring.Equal(fd) {
			t.Errorf("n=%d: ring %s != doubling %s", n, ring, fd)
		}
	}
}

func TestPowContextCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Golden[nat64]().PowContext(ctx, 1<<20, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

// countingInt counts multiplications so tests can tell Mul from Square.
type countingInt struct {
	BigInt
	muls *int
}

func (x countingInt) wrap(v BigInt) countingInt { return countingInt{v, x.muls} }

func (x countingInt) Add(y countingInt) countingInt { return x.wrap(x.BigInt.Add(y.BigInt)) }
func (x countingInt) Sub(y countingInt) countingInt { return x.wrap(x.BigInt.Sub(y.BigInt)) }
func (x countingInt) Lsh(k uint) countingInt        { return x.wrap(x.BigInt.Lsh(k)) }
func (x countingInt) Cmp(y countingInt) int         { return x.BigInt.Cmp(y.BigInt) }

func (x countingInt) AddUint64(v uint64) countingInt { return x.wrap(x.BigInt.AddUint64(v)) }

func (x countingInt) Mul(y countingInt) countingInt {
	if x.muls != nil {
		*x.muls++
	}
	return x.wrap(x.BigInt.Mul(y.BigInt))
}

func TestMulSameElementSquares(t *testing.T) {
	t.Parallel()
	var muls int
	c := countingInt{muls: &muls}
	x := ZPhi[countingInt]{A: c.AddUint64(2), B: c.AddUint64(5)}
	y := ZPhi[countingInt]{A: c.AddUint64(2), B: c.AddUint64(5)}

	sq := x.Mul(&x)
	if muls != 3 {
		t.Errorf("x.Mul(&x) used %d multiplications, want 3", muls)
	}
	muls = 0
	prod := x.Mul(&y)
	if muls != 4 {
		t.Errorf("x.Mul(&y) used %d multiplications, want 4", muls)
	}
	if !sq.Equal(prod) {
		t.Errorf("square %s != product %s", sq, prod)
	}
	// (2 + 5φ)² = 29 + 45φ
	if sq.A.Int().Int64() != 29 || sq.B.Int().Int64() != 45 {
		t.Errorf("(2+5φ)² = %s", sq)
	}
}
