package calibration

import (
	"context"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/agbru/fibnum/internal/bignum"
	"github.com/agbru/fibnum/internal/config"
)

func TestGenerateCandidateSizes(t *testing.T) {
	t.Parallel()
	for _, bits := range LimbWidths {
		sizes := GenerateCandidateSizes(bits)
		if len(sizes) < 4 {
			t.Fatalf("u%d: only %d sizes", bits, len(sizes))
		}
		if !slices.IsSorted(sizes) {
			t.Errorf("u%d: sizes not ascending: %v", bits, sizes)
		}
		est := config.EstimateKaratsubaThreshold(bits)
		if sizes[0] > est || sizes[len(sizes)-1] < est {
			t.Errorf("u%d: sizes %v do not bracket the estimate %d", bits, sizes, est)
		}
		if sizes[0] < minCandidateSize {
			t.Errorf("u%d: first size %d below %d", bits, sizes[0], minCandidateSize)
		}
	}
}

func TestPickCrossover(t *testing.T) {
	t.Parallel()
	win := func(n int) Sample { return Sample{Limbs: n, Schoolbook: 2 * time.Millisecond, Karatsuba: time.Millisecond} }
	lose := func(n int) Sample { return Sample{Limbs: n, Schoolbook: time.Millisecond, Karatsuba: 2 * time.Millisecond} }

	tests := []struct {
		name    string
		samples []Sample
		want    int
	}{
		{"empty uses the estimate", nil, config.EstimateKaratsubaThreshold(64)},
		{"karatsuba always wins", []Sample{win(8), win(16), win(32)}, 8},
		{"karatsuba never wins", []Sample{lose(8), lose(16), lose(32)}, 33},
		{"clean crossover", []Sample{lose(8), lose(16), win(32), win(64)}, 32},
		{"noise below the crossover", []Sample{lose(8), win(16), lose(32), win(64), win(128)}, 64},
		{"tie is not a win", []Sample{lose(8), {Limbs: 16, Schoolbook: time.Millisecond, Karatsuba: time.Millisecond}, win(32)}, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := PickCrossover(tt.samples, 64); got != tt.want {
				t.Errorf("PickCrossover() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeasureRestoresThreshold(t *testing.T) {
	prev := bignum.SetKaratsubaThreshold(77)
	defer bignum.SetKaratsubaThreshold(prev)

	rng := rand.New(rand.NewPCG(1, 2))
	for _, bits := range LimbWidths {
		samples, err := Measure(context.Background(), bits, []int{8, 12}, 1, rng)
		if err != nil {
			t.Fatalf("u%d: Measure() error = %v", bits, err)
		}
		if len(samples) != 2 || samples[0].Limbs != 8 || samples[1].Limbs != 12 {
			t.Errorf("u%d: samples = %+v", bits, samples)
		}
		if got := bignum.KaratsubaThreshold(); got != 77 {
			t.Errorf("u%d: threshold after Measure = %d, want 77", bits, got)
		}
	}
}

func TestMeasureCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	samples, err := Measure(ctx, 64, []int{8, 16}, 1, rand.New(rand.NewPCG(1, 2)))
	if err == nil {
		t.Fatal("Measure() on a canceled context should fail")
	}
	if len(samples) != 0 {
		t.Errorf("samples = %v, want none", samples)
	}
}

func TestRandomNatHasExactLength(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(3, 4))
	for _, n := range []int{1, 8, 33} {
		if got := randomNat[uint8](rng, n).Len(); got != n {
			t.Errorf("randomNat(%d).Len() = %d", n, got)
		}
	}
}
