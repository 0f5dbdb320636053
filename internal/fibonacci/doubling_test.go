package fibonacci

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/agbru/fibnum/internal/bignum"
)

var knownFibonacci = []struct {
	n    uint64
	want string
}{
	{1, "1"},
	{2, "1"},
	{3, "2"},
	{5, "5"},
	{10, "55"},
	{50, "12586269025"},
	{93, "12200160415121876738"},
	{100, "354224848179261915075"},
}

func TestFastDoublingKnownValues(t *testing.T) {
	t.Parallel()
	for _, tt := range knownFibonacci {
		results := map[string]string{
			"u8":       FastDoubling[bignum.Nat[uint8]](tt.n).String(),
			"u16":      FastDoubling[bignum.Nat[uint16]](tt.n).String(),
			"u32":      FastDoubling[bignum.Nat[uint32]](tt.n).String(),
			"u64":      FastDoubling[bignum.Nat[uint64]](tt.n).String(),
			"math/big": FastDoubling[BigInt](tt.n).String(),
			"ring u32": FibonacciByRing[bignum.Nat[uint32]](tt.n).String(),
			"ring big": FibonacciByRing[BigInt](tt.n).String(),
		}
		if tt.n <= MaxFibUint64 {
			results["native"] = new(big.Int).SetUint64(FastDoubling[Native[uint64]](tt.n).V).String()
		}
		for name, got := range results {
			if got != tt.want {
				t.Errorf("%s: F(%d) = %s, want %s", name, tt.n, got, tt.want)
			}
		}
	}
}

func TestFastDoublingZero(t *testing.T) {
	t.Parallel()
	if got := FastDoubling[bignum.Nat[uint64]](0); !got.IsZero() {
		t.Errorf("F(0) = %s, want 0", got)
	}
	if got := FastDoubling[Native[uint8]](0); got.V != 0 {
		t.Errorf("native F(0) = %d, want 0", got.V)
	}
	if got := FastDoubling[BigInt](0); got.Int().Sign() != 0 {
		t.Errorf("math/big F(0) = %s, want 0", got)
	}
}

// TestF10BothAlgorithms pins the shared scenario of both algorithms.
func TestF10BothAlgorithms(t *testing.T) {
	t.Parallel()
	want := bignum.NewNat[uint64](55)
	if got := FastDoubling[bignum.Nat[uint64]](10); !got.Equal(want) {
		t.Errorf("fast doubling F(10) = %s", got)
	}
	if got := Golden[bignum.Nat[uint64]]().Pow(10).B; !got.Equal(want) {
		t.Errorf("ring F(10) = %s", got)
	}
}

func TestNativeWrapsLikeModularArithmetic(t *testing.T) {
	t.Parallel()
	// F(13) = 233 fits in a uint8; F(14) = 377 wraps to 121.
	if got := FastDoubling[Native[uint8]](13).V; got != 233 {
		t.Errorf("F(13) = %d", got)
	}
	if got := FastDoubling[Native[uint8]](14).V; got != 377%256 {
		t.Errorf("F(14) mod 256 = %d", got)
	}
}

func TestFastDoublingContextCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FastDoublingContext[bignum.Nat[uint64]](ctx, 1_000_000, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestFastDoublingContextProgress(t *testing.T) {
	t.Parallel()
	var reports []float64
	_, err := FastDoublingContext[bignum.Nat[uint32]](context.Background(), 100_000, func(p float64) {
		reports = append(reports, p)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) < 2 {
		t.Fatalf("got %d progress reports", len(reports))
	}
	for i := 1; i < len(reports); i++ {
		if reports[i] < reports[i-1] {
			t.Fatalf("progress went backwards: %v", reports)
		}
	}
	if last := reports[len(reports)-1]; last != 1.0 {
		t.Errorf("final progress = %v, want 1.0", last)
	}
}
