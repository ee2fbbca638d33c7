package system

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"

	"gkfreq/internal/domain"
)

// userHZ converts gopsutil's seconds back into kernel ticks.
const userHZ = 100

type GopsutilSource struct{}

func NewGopsutilSource() *GopsutilSource {
	return &GopsutilSource{}
}

func (s *GopsutilSource) CPUCounters(ctx context.Context) ([]domain.UsageSnapshot, error) {
	total, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("cpu times: %w", err)
	}
	if len(total) == 0 {
		return nil, fmt.Errorf("cpu times: empty aggregate")
	}

	perCPU, err := cpu.TimesWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("per-cpu times: %w", err)
	}

	return countersFromTimes(total[0], perCPU), nil
}

// countersFromTimes lays gopsutil times out like /proc/stat: aggregate at 0,
// "cpuN" at N+1, zero entries for ids with no times.
func countersFromTimes(total cpu.TimesStat, perCPU []cpu.TimesStat) []domain.UsageSnapshot {
	result := []domain.UsageSnapshot{toSnapshot(total)}

	for _, t := range perCPU {
		id, err := strconv.Atoi(strings.TrimPrefix(t.CPU, "cpu"))
		if err != nil || id < 0 {
			continue
		}

		for len(result) <= id+1 {
			result = append(result, domain.UsageSnapshot{})
		}
		result[id+1] = toSnapshot(t)
	}

	return result
}

func toSnapshot(t cpu.TimesStat) domain.UsageSnapshot {
	return domain.UsageSnapshot{
		User: toTicks(t.User),
		Nice: toTicks(t.Nice),
		Sys:  toTicks(t.System),
		Idle: toTicks(t.Idle),
	}
}

func toTicks(seconds float64) uint64 {
	if seconds <= 0 {
		return 0
	}
	return uint64(seconds*userHZ + 0.5)
}
