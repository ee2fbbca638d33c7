// Package metrics
package metrics

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"gkfreq/internal/collector/cpu"
	"gkfreq/internal/domain"
	"gkfreq/internal/logger"
	"gkfreq/internal/system"
)

// Sampler owns the per-cpu slot table and produces the panel payloads on
// every tick.
type Sampler struct {
	collector *cpu.Collector
	counters  system.CounterSource
	log       logger.Logger

	settings atomic.Pointer[domain.Settings]

	mu     sync.Mutex
	slots  []domain.CoreSlot
	layout []int
	usage  *cpu.UsageCalculator
	last   []domain.SlotPayload
}

// NewSampler builds a sampler for slots cpus. counters may be nil, in which
// case usage is never reported.
func NewSampler(slots int, collector *cpu.Collector, counters system.CounterSource, log logger.Logger, settings domain.Settings) (*Sampler, error) {
	if slots < 1 {
		return nil, fmt.Errorf("sampler: slot count must be positive, got %d", slots)
	}
	if collector == nil {
		return nil, fmt.Errorf("sampler: collector is required")
	}

	s := &Sampler{
		collector: collector,
		counters:  counters,
		log:       log,
		slots:     make([]domain.CoreSlot, slots),
		usage:     cpu.NewUsageCalculator(slots),
	}

	for i := range s.slots {
		s.slots[i].Index = i
	}

	s.settings.Store(&settings)

	return s, nil
}

func (s *Sampler) Slots() int {
	return len(s.slots)
}

// Configure replaces the settings. The next tick picks them up.
func (s *Sampler) Configure(settings domain.Settings) {
	s.settings.Store(&settings)
}

func (s *Sampler) Settings() domain.Settings {
	return *s.settings.Load()
}

// Rebuild re-evaluates which cpus are online and lays out one panel line
// per online cpu. Previous labels are dropped.
func (s *Sampler) Rebuild() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.layout = s.layout[:0]

	for i := range s.slots {
		slot := &s.slots[i]
		slot.Online = s.collector.Online(i)
		slot.Text = ""
		slot.HasFrequency = false
		slot.LastFrequencyKHz = 0

		if slot.Online {
			s.layout = append(s.layout, i)
		}
	}

	s.last = nil

	s.log.Debug("sampler: layout rebuilt", "slots", len(s.slots), "online", len(s.layout))

	return len(s.layout)
}

// Layout returns the cpu ids that currently have a panel line.
func (s *Sampler) Layout() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]int(nil), s.layout...)
}

func (s *Sampler) Tick(ctx context.Context) []domain.SlotPayload {
	settings := s.Settings()

	s.mu.Lock()
	defer s.mu.Unlock()

	var counters []domain.UsageSnapshot
	if settings.ShowUsage && s.counters != nil {
		var err error
		counters, err = s.counters.CPUCounters(ctx)
		if err != nil {
			s.log.Debug("sampler: usage counters unavailable", "error", err)
		}
	}

	payloads := make([]domain.SlotPayload, 0, len(s.layout))

	for _, idx := range s.layout {
		slot := &s.slots[idx]

		if khz, text, ok := s.collector.CollectFreq(idx, settings.TextFormat); ok {
			slot.LastFrequencyKHz = khz
			slot.HasFrequency = true
			slot.Text = text
		}

		payload := domain.SlotPayload{Index: idx, Text: slot.Text}

		// The counter source numbers the aggregate line 0, so cpu idx is idx+1.
		if settings.ShowUsage && idx+1 < len(counters) && s.collector.Online(idx) {
			payload.Usage = s.usage.Compute(idx, counters[idx+1])
			payload.HasUsage = true
		}

		payloads = append(payloads, payload)
	}

	s.last = payloads

	return append([]domain.SlotPayload(nil), payloads...)
}

// Snapshot returns the payloads of the last tick.
func (s *Sampler) Snapshot() []domain.SlotPayload {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.SlotPayload(nil), s.last...)
}

// Slot returns a copy of the state kept for cpu.
func (s *Sampler) Slot(cpu int) (domain.CoreSlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cpu < 0 || cpu >= len(s.slots) {
		return domain.CoreSlot{}, false
	}

	slot := s.slots[cpu]
	slot.Usage, _ = s.usage.Previous(cpu)
	return slot, true
}
