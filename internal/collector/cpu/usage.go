package cpu

import "gkfreq/internal/domain"

// UsageCalculator turns consecutive cumulative counter snapshots into a
// busy percentage per cpu. It keeps one previous snapshot per slot.
type UsageCalculator struct {
	prev []domain.UsageSnapshot
}

func NewUsageCalculator(slots int) *UsageCalculator {
	return &UsageCalculator{prev: make([]domain.UsageSnapshot, max(slots, 0))}
}

func (u *UsageCalculator) Slots() int {
	return len(u.prev)
}

// Compute returns 0..100 and stores cur as the new baseline for cpu.
func (u *UsageCalculator) Compute(cpu int, cur domain.UsageSnapshot) int {
	if cpu < 0 || cpu >= len(u.prev) {
		return 0
	}

	prev := u.prev[cpu]
	u.prev[cpu] = cur

	return usagePercent(prev, cur)
}

// Previous returns the stored baseline for cpu.
func (u *UsageCalculator) Previous(cpu int) (domain.UsageSnapshot, bool) {
	if cpu < 0 || cpu >= len(u.prev) {
		return domain.UsageSnapshot{}, false
	}
	return u.prev[cpu], true
}

func usagePercent(prev, cur domain.UsageSnapshot) int {
	idle := deltaCounter(cur.Idle, prev.Idle)
	busy := deltaCounter(cur.User, prev.User) +
		deltaCounter(cur.Nice, prev.Nice) +
		deltaCounter(cur.Sys, prev.Sys)

	return int(100 * busy / max(1, busy+idle))
}

// deltaCounter treats a counter that went backwards as no progress.
func deltaCounter(cur, prev uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}
