package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gkfreq/internal/logger"
)

type stubReader struct {
	online map[int]bool
	freq   map[int]int
}

func (s stubReader) IsCPUOnline(cpu int) bool { return s.online[cpu] }

func (s stubReader) CPUFreqKHz(cpu int) (int, bool) {
	khz, ok := s.freq[cpu]
	return khz, ok
}

func TestCollectorCollectFreq(t *testing.T) {
	c := NewCollector(stubReader{
		online: map[int]bool{0: true},
		freq:   map[int]int{0: 2400000},
	}, logger.Nop())

	khz, text, ok := c.CollectFreq(0, "$L: $M")
	assert.True(t, ok)
	assert.Equal(t, 2400000, khz)
	assert.Equal(t, "CPU0: 2400 MHz", text)

	_, _, ok = c.CollectFreq(1, "$L: $M")
	assert.False(t, ok)

	assert.True(t, c.Online(0))
	assert.False(t, c.Online(1))
}
