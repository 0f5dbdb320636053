package calibration

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/agbru/fibnum/internal/bignum"
	"github.com/agbru/fibnum/internal/config"
)

const (
	// minCandidateSize is the smallest operand, in limbs, that is measured.
	minCandidateSize = 8
	// defaultRounds is the number of timed multiplications per point. The
	// fastest one is kept.
	defaultRounds = 5
)

// Sample is one measured operand size.
type Sample struct {
	Limbs      int
	Schoolbook time.Duration
	Karatsuba  time.Duration
}

// KaratsubaWins reports whether one Karatsuba split beat the schoolbook
// product at this size.
func (s Sample) KaratsubaWins() bool {
	return s.Karatsuba < s.Schoolbook
}

// GenerateCandidateSizes returns the operand sizes, in limbs, measured for a
// limb width. They grow by a quarter from a quarter of the estimated
// crossover up to four times it.
func GenerateCandidateSizes(limbBits int) []int {
	est := config.EstimateKaratsubaThreshold(limbBits)
	lo := max(est/4, minCandidateSize)
	hi := est * 4
	var sizes []int
	for n := lo; n <= hi; n += max(n/4, 1) {
		sizes = append(sizes, n)
	}
	return sizes
}

// measureWidth times, for each size, a full schoolbook product against a
// product that splits once with Karatsuba and falls back to schoolbook for
// the halves. It changes the process-wide threshold and restores it.
func measureWidth[L bignum.Limb](ctx context.Context, sizes []int, rounds int, rng *rand.Rand) ([]Sample, error) {
	prev := bignum.SetKaratsubaThreshold(0)
	defer bignum.SetKaratsubaThreshold(prev)

	samples := make([]Sample, 0, len(sizes))
	for _, n := range sizes {
		if err := ctx.Err(); err != nil {
			return samples, err
		}
		x, y := randomNat[L](rng, n), randomNat[L](rng, n)

		bignum.SetKaratsubaThreshold(n + 1)
		school := bestOf(rounds, x, y)
		bignum.SetKaratsubaThreshold(n)
		kara := bestOf(rounds, x, y)

		samples = append(samples, Sample{Limbs: n, Schoolbook: school, Karatsuba: kara})
	}
	return samples, nil
}

var sink any

func bestOf[L bignum.Limb](rounds int, x, y bignum.Nat[L]) time.Duration {
	best := time.Duration(-1)
	for range max(rounds, 1) {
		start := time.Now()
		p := x.Mul(y)
		d := time.Since(start)
		sink = p
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

// randomNat returns a number of exactly n limbs.
func randomNat[L bignum.Limb](rng *rand.Rand, n int) bignum.Nat[L] {
	limbs := make([]L, n)
	for i := range limbs {
		limbs[i] = L(rng.Uint64())
	}
	limbs[n-1] |= 1
	return bignum.NatFromLimbs(limbs)
}

// PickCrossover returns the smallest measured size from which Karatsuba wins
// at every larger size. When Karatsuba never wins the largest size plus one
// is returned, and when samples is empty the estimate for limbBits.
func PickCrossover(samples []Sample, limbBits int) int {
	if len(samples) == 0 {
		return config.EstimateKaratsubaThreshold(limbBits)
	}
	crossover := samples[len(samples)-1].Limbs + 1
	for i := len(samples) - 1; i >= 0; i-- {
		if !samples[i].KaratsubaWins() {
			break
		}
		crossover = samples[i].Limbs
	}
	return max(crossover, bignum.MinKaratsubaThreshold)
}

// Measure runs the crossover measurement for one limb width.
func Measure(ctx context.Context, limbBits int, sizes []int, rounds int, rng *rand.Rand) ([]Sample, error) {
	switch limbBits {
	case 8:
		return measureWidth[uint8](ctx, sizes, rounds, rng)
	case 16:
		return measureWidth[uint16](ctx, sizes, rounds, rng)
	case 32:
		return measureWidth[uint32](ctx, sizes, rounds, rng)
	default:
		return measureWidth[uint64](ctx, sizes, rounds, rng)
	}
}
