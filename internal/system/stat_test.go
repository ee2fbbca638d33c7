package system

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gkfreq/internal/domain"
	"gkfreq/internal/logger"
)

const procStat = `cpu  10132153 290696 3084719 46828483 16683 0 25195 0 0 0
cpu0 1393280 32966 572056 13343292 6130 0 17875 0 0 0
cpu1 1335953 29540 523290 13398123 3766 0 3462 0 0 0
cpu3 1000 20 300 4000 0 0 0 0 0 0
intr 1462898 0 0 0
ctxt 2385940
`

func TestParseProcStat(t *testing.T) {
	got, err := ParseProcStat(procStat)
	require.NoError(t, err)
	require.Len(t, got, 5)

	assert.Equal(t, domain.UsageSnapshot{User: 10132153, Nice: 290696, Sys: 3084719, Idle: 46828483}, got[0])
	assert.Equal(t, domain.UsageSnapshot{User: 1393280, Nice: 32966, Sys: 572056, Idle: 13343292}, got[1])
	assert.Equal(t, domain.UsageSnapshot{User: 1335953, Nice: 29540, Sys: 523290, Idle: 13398123}, got[2])
	assert.Equal(t, domain.UsageSnapshot{}, got[3], "offline cpu2 keeps a zero entry")
	assert.Equal(t, domain.UsageSnapshot{User: 1000, Nice: 20, Sys: 300, Idle: 4000}, got[4])
}

func TestParseProcStatWithoutAggregate(t *testing.T) {
	_, err := ParseProcStat("cpu0 1 2 3 4\n")
	assert.Error(t, err)

	_, err = ParseProcStat("")
	assert.Error(t, err)
}

func TestProcStatSource(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "proc/stat", procStat)

	src := NewProcStatSource(NewReader(root, logger.Nop()))

	got, err := src.CPUCounters(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 5)

	missing := NewProcStatSource(NewReader(t.TempDir(), logger.Nop()))
	_, err = missing.CPUCounters(context.Background())
	assert.Error(t, err)
}

func TestToTicks(t *testing.T) {
	assert.Equal(t, uint64(0), toTicks(-1))
	assert.Equal(t, uint64(1234), toTicks(12.34))
	assert.Equal(t, uint64(100), toTicks(1))
}
