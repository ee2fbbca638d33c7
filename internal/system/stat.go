package system

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gkfreq/internal/domain"
)

// CounterSource yields cumulative cpu counters. Element 0 is the aggregate
// "cpu" line, element i+1 belongs to cpu i.
type CounterSource interface {
	CPUCounters(ctx context.Context) ([]domain.UsageSnapshot, error)
}

type ProcStatSource struct {
	r *SystemReader
}

func NewProcStatSource(r *SystemReader) *ProcStatSource {
	return &ProcStatSource{r: r}
}

func (s *ProcStatSource) CPUCounters(ctx context.Context) ([]domain.UsageSnapshot, error) {
	data, err := os.ReadFile(s.r.path("proc", "stat"))
	if err != nil {
		return nil, fmt.Errorf("read /proc/stat: %w", err)
	}

	return ParseProcStat(string(data))
}

// ParseProcStat turns the cpu lines of /proc/stat into counters. CPUs that
// are offline have no line; their entries are left zero so indices stay
// aligned with cpu ids.
func ParseProcStat(data string) ([]domain.UsageSnapshot, error) {
	var result []domain.UsageSnapshot
	seenAggregate := false

	for line := range strings.SplitSeq(data, "\n") {
		line = strings.TrimSpace(line)

		if !strings.HasPrefix(line, "cpu") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}

		slot := 0
		if fields[0] != "cpu" {
			id, err := strconv.Atoi(strings.TrimPrefix(fields[0], "cpu"))
			if err != nil || id < 0 {
				continue
			}
			slot = id + 1
		} else {
			seenAggregate = true
		}

		user, _ := strconv.ParseUint(fields[1], 10, 64)
		nice, _ := strconv.ParseUint(fields[2], 10, 64)
		sys, _ := strconv.ParseUint(fields[3], 10, 64)
		idle, _ := strconv.ParseUint(fields[4], 10, 64)

		for len(result) <= slot {
			result = append(result, domain.UsageSnapshot{})
		}

		result[slot] = domain.UsageSnapshot{
			User: user,
			Nice: nice,
			Sys:  sys,
			Idle: idle,
		}
	}

	if !seenAggregate {
		return nil, fmt.Errorf("parse /proc/stat: no aggregate cpu line")
	}

	return result, nil
}
