package config

import "github.com/agbru/fibnum/internal/bignum"

// Karatsuba threshold resolution chain (highest priority first):
//   1. -karatsuba flag
//   2. FIBNUM_KARATSUBA
//   3. Cached calibration profile (~/.fibnum_calibration.json)
//   4. Per-width estimate (this file)

// maxEstimatedThreshold caps the estimate for narrow limbs.
const maxEstimatedThreshold = 400

// ApplyAdaptiveThresholds fills a zero KaratsubaThreshold with the estimate
// for the configured limb width. A non-zero value is kept.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.KaratsubaThreshold == 0 {
		cfg.KaratsubaThreshold = EstimateKaratsubaThreshold(cfg.LimbBits)
	}
	return cfg
}

// EstimateKaratsubaThreshold returns a crossover, in limbs, for limbBits
// without running benchmarks. It scales the 64-bit default so the crossover
// stays near the same operand size in bits.
func EstimateKaratsubaThreshold(limbBits int) int {
	if limbBits <= 0 || limbBits >= 64 {
		return bignum.DefaultKaratsubaThreshold
	}
	return min(bignum.DefaultKaratsubaThreshold*64/limbBits, maxEstimatedThreshold)
}
