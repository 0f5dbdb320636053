package progress

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// ProgressObserver receives progress notifications.
type ProgressObserver interface {
	// Update is called when the progress of calculator calcIndex changes.
	Update(calcIndex int, progress float64)
}

// ProgressSubject fans progress notifications out to registered observers.
// It is safe for concurrent use.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject returns a subject with no observers.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer. Nil observers are ignored.
func (s *ProgressSubject) Register(o ProgressObserver) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Unregister removes an observer if present.
func (s *ProgressSubject) Unregister(o ProgressObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.observers {
		if existing == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify calls every observer in registration order.
func (s *ProgressSubject) Notify(calcIndex int, progress float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.Update(calcIndex, progress)
	}
}

// ObserverCount returns the number of registered observers.
func (s *ProgressSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// AsProgressCallback binds the subject to one calculator index.
func (s *ProgressSubject) AsProgressCallback(calcIndex int) ProgressCallback {
	return func(progress float64) {
		s.Notify(calcIndex, progress)
	}
}

// Freeze snapshots the current observers and returns a callback bound to
// calcIndex that notifies only them, without taking the subject's lock.
// Observers registered after Freeze are not notified.
func (s *ProgressSubject) Freeze(calcIndex int) ProgressCallback {
	s.mu.RLock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	return func(progress float64) {
		for _, o := range snapshot {
			o.Update(calcIndex, progress)
		}
	}
}

// ChannelObserver forwards updates to a channel without ever blocking the
// calculation: when the channel is full the update is dropped.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver returns an observer writing to ch. A nil channel
// discards every update.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Update implements ProgressObserver.
func (o *ChannelObserver) Update(calcIndex int, progress float64) {
	if o.ch == nil {
		return
	}
	select {
	case o.ch <- ProgressUpdate{CalculatorIndex: calcIndex, Value: min(progress, 1.0)}:
	default:
	}
}

// LoggingObserver logs progress at debug level through zerolog, at most once
// per threshold step for each calculator.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64

	mu      sync.Mutex
	lastLog map[int]float64
}

// NewLoggingObserver returns a throttled logging observer. A threshold <= 0
// defaults to 10%.
func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	if threshold <= 0 {
		threshold = 0.1
	}
	return &LoggingObserver{
		logger:    logger,
		threshold: threshold,
		lastLog:   make(map[int]float64),
	}
}

// Update implements ProgressObserver.
func (o *LoggingObserver) Update(calcIndex int, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	last, seen := o.lastLog[calcIndex]
	if seen && progress < 1.0 && progress-last < o.threshold {
		return
	}
	o.logger.Debug().
		Int("calculator", calcIndex).
		Float64("progress", progress).
		Str("percent", fmt.Sprintf("%.1f%%", progress*100)).
		Msg("calculation progress")
	o.lastLog[calcIndex] = progress
}

// MetricsObserver exports progress to a prometheus gauge labelled by
// calculator index.
type MetricsObserver struct {
	gauge *prometheus.GaugeVec
}

// NewMetricsObserver returns an observer updating gauge, which must have a
// single "calculator_index" label.
func NewMetricsObserver(gauge *prometheus.GaugeVec) *MetricsObserver {
	return &MetricsObserver{gauge: gauge}
}

// Update implements ProgressObserver.
func (o *MetricsObserver) Update(calcIndex int, progress float64) {
	o.gauge.WithLabelValues(strconv.Itoa(calcIndex)).Set(progress)
}

// NoOpObserver ignores every update.
type NoOpObserver struct{}

// NewNoOpObserver returns a NoOpObserver.
func NewNoOpObserver() NoOpObserver { return NoOpObserver{} }

// Update implements ProgressObserver.
func (NoOpObserver) Update(int, float64) {}
