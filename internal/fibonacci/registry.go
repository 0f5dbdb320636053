package fibonacci

import (
	"fmt"
	"sort"
	"sync"
)

// CalculatorFactory creates and caches calculators by name.
type CalculatorFactory interface {
	// Get returns the cached calculator registered under name.
	Get(name string) (Calculator, error)
	// List returns the registered names, sorted.
	List() []string
	// GetAll returns every registered calculator, keyed by name.
	GetAll() map[string]Calculator
}

// DefaultFactory is a thread-safe registry of calculator constructors.
type DefaultFactory struct {
	mu          sync.RWMutex
	creators    map[string]func() coreCalculator
	calculators map[string]Calculator
}

// NewDefaultFactory returns a factory with the built-in calculators:
//
//   - "doubling-u8", "doubling-u16", "doubling-u32", "doubling-u64":
//     fast doubling over multi-limb integers of that limb width.
//   - "zphi-u64": golden-ratio ring exponentiation over 64-bit limbs.
//   - "reference": fast doubling over math/big.
//   - "native": fast doubling over uint64, for n <= 93.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators:    make(map[string]func() coreCalculator),
		calculators: make(map[string]Calculator),
	}
	f.Register("doubling-u8", func() coreCalculator { return &DoublingCalculator[uint8]{} })
	f.Register("doubling-u16", func() coreCalculator { return &DoublingCalculator[uint16]{} })
	f.Register("doubling-u32", func() coreCalculator { return &DoublingCalculator[uint32]{} })
	f.Register("doubling-u64", func() coreCalculator { return &DoublingCalculator[uint64]{} })
	f.Register("zphi-u64", func() coreCalculator { return &RingCalculator[uint64]{} })
	f.Register("reference", func() coreCalculator { return &ReferenceCalculator{} })
	f.Register("native", func() coreCalculator { return &NativeCalculator{} })
	return f
}

// Register adds or replaces a calculator constructor. Constructors run
// lazily, on the first Get.
func (f *DefaultFactory) Register(name string, creator func() coreCalculator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
	delete(f.calculators, name)
}

// Get returns the calculator registered under name, creating it on first use.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	calc, ok := f.calculators[name]
	f.mu.RUnlock()
	if ok {
		return calc, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if calc, ok := f.calculators[name]; ok {
		return calc, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown calculator: %s", name)
	}
	calc = NewCalculator(creator())
	f.calculators[name] = calc
	return calc, nil
}

// Has reports whether name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.creators[name]
	return ok
}

// List returns the registered names in alphabetical order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll instantiates every registered calculator and returns a copy of the
// cache.
func (f *DefaultFactory) GetAll() map[string]Calculator {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, creator := range f.creators {
		if _, ok := f.calculators[name]; !ok {
			f.calculators[name] = NewCalculator(creator())
		}
	}
	all := make(map[string]Calculator, len(f.calculators))
	for name, calc := range f.calculators {
		all[name] = calc
	}
	return all
}

// DoublingCalculatorName returns the registry name of the fast-doubling
// calculator for a limb width, e.g. "doubling-u32".
func DoublingCalculatorName(limbBits int) string {
	return fmt.Sprintf("doubling-u%d", limbBits)
}

// ValidLimbWidth reports whether bits is a supported limb width.
func ValidLimbWidth(bits int) bool {
	switch bits {
	case 8, 16, 32, 64:
		return true
	}
	return false
}

var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide factory.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}

// RegisterCalculator registers a calculator in the global factory. Optional
// backends call it from init.
func RegisterCalculator(name string, creator func() coreCalculator) {
	globalFactory.Register(name, creator)
}
