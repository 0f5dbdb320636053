package orchestration

import (
	"slices"

	"github.com/agbru/fibnum/internal/config"
	"github.com/agbru/fibnum/internal/fibonacci"
)

// ReferenceCalculatorName is the math/big calculator used for cross-checks.
const ReferenceCalculatorName = "reference"

// GetCalculatorsToRun resolves the -algo selection against factory.
//
//   - "auto" selects the fast-doubling calculator of the configured limb
//     width.
//   - "all" selects every registered calculator, in name order, except
//     "native" when F(n) does not fit in 64 bits.
//   - Otherwise each listed name is looked up.
//
// With CrossCheck the reference calculator is appended unless already
// selected, so that comparing results verifies the run.
//
// Returns:
//   - []fibonacci.Calculator: The calculators to execute.
//   - error: The lookup error of an unknown name.
func GetCalculatorsToRun(cfg config.AppConfig, factory fibonacci.CalculatorFactory) ([]fibonacci.Calculator, error) {
	var names []string
	switch cfg.Algo {
	case config.AlgoAuto:
		names = []string{fibonacci.DoublingCalculatorName(cfg.LimbBits)}
	case config.AlgoAll:
		for _, name := range factory.List() {
			if name == "native" && cfg.N > fibonacci.MaxFibUint64 {
				continue
			}
			names = append(names, name)
		}
	default:
		names = cfg.AlgoNames()
	}
	if cfg.CrossCheck && !slices.Contains(names, ReferenceCalculatorName) {
		names = append(names, ReferenceCalculatorName)
	}

	calculators := make([]fibonacci.Calculator, 0, len(names))
	for _, name := range names {
		calc, err := factory.Get(name)
		if err != nil {
			return nil, err
		}
		calculators = append(calculators, calc)
	}
	return calculators, nil
}
