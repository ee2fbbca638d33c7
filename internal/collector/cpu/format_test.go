package cpu

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFreq(t *testing.T) {
	tests := []struct {
		name string
		cpu  int
		khz  int
		tmpl string
		want string
	}{
		{name: "label and mhz", cpu: 3, khz: 2400000, tmpl: "$L: $M", want: "CPU3: 2400 MHz"},
		{name: "bare ghz", cpu: 0, khz: 3500000, tmpl: "$g GHz", want: "3.50 GHz"},
		{name: "ghz with unit", cpu: 1, khz: 800000, tmpl: "$N $G", want: "1 0.80 GHz"},
		{name: "bare mhz truncates", cpu: 2, khz: 1999999, tmpl: "$m", want: "1999"},
		{name: "dollar escape", cpu: 0, khz: 1000000, tmpl: "$$$m$$", want: "$1000$"},
		{name: "unknown token is literal", cpu: 7, khz: 1000000, tmpl: "$L: $F", want: "CPU7: F"},
		{name: "trailing dollar", cpu: 0, khz: 1000000, tmpl: "cost $", want: "cost $"},
		{name: "literal only", cpu: 0, khz: 1000000, tmpl: "freq", want: "freq"},
		{name: "empty template", cpu: 0, khz: 1000000, tmpl: "", want: ""},
		{name: "bare ghz rounds half up", cpu: 0, khz: 2345000, tmpl: "$g", want: "2.35"},
		{name: "ghz unit rounds half up", cpu: 0, khz: 2345000, tmpl: "$G", want: "2.35 GHz"},
		{name: "sub ghz rounds half up", cpu: 0, khz: 115000, tmpl: "$g", want: "0.12"},
		{name: "multi digit cpu", cpu: 31, khz: 4200000, tmpl: "$L", want: "CPU31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFreq(tt.cpu, tt.khz, tt.tmpl))
		})
	}
}

func TestFormatFreqGHzSinglePrecision(t *testing.T) {
	for khz := 100000; khz <= 6000000; khz += 1000 {
		want := fmt.Sprintf("%.2f", float64(float32(float32(khz)*float32(0.000001))))
		require.Equal(t, want, FormatFreq(0, khz, "$g"), "khz %d", khz)
	}
}

func TestFormatFreqUnknownFrequency(t *testing.T) {
	for _, tmpl := range []string{"", "$L: $G", "$$", "plain text that is long enough to overflow"} {
		assert.Equal(t, "N/A", FormatFreq(5, -1, tmpl), tmpl)
	}
	assert.Equal(t, "N/A", FormatFreq(0, -2400000, "$M"))
}

func TestFormatFreqDollarEscapeAnywhere(t *testing.T) {
	for _, tmpl := range []string{"$$", "a$$", "$$b", "a$$b", " $$ "} {
		got := FormatFreq(0, 1000000, tmpl)
		assert.Equal(t, strings.ReplaceAll(tmpl, "$$", "$"), got, tmpl)
	}
}

func TestAppendFreqBounded(t *testing.T) {
	tmpl := strings.Repeat("$L $G ", 20)

	for size := 0; size <= 40; size++ {
		got := AppendFreq(nil, size, 12, 3456789, tmpl)
		assert.LessOrEqual(t, len(got), max(size-1, 0), "size %d", size)
	}

	full := FormatFreq(12, 3456789, tmpl)
	assert.Len(t, full, DefaultBufferSize-1)
	assert.True(t, strings.HasPrefix(full, "CPU12 3.46 GHz CPU12 3.46 GHz"))
}

func TestAppendFreqKeepsPrefix(t *testing.T) {
	got := AppendFreq([]byte("> "), 8, 1, 1000000, "$L: $M")
	assert.Equal(t, "> CPU1: ", string(got)[:8])
	assert.Len(t, got, 2+7)
}

func TestAppendFreqTruncatesExpansion(t *testing.T) {
	got := AppendFreq(nil, 6, 3, 2400000, "$M")
	assert.Equal(t, "2400 ", string(got))
}

func TestAppendFreqDoesNotSplitRunes(t *testing.T) {
	// "é" is two bytes; a 4 byte bound leaves room for "ab" plus half of it.
	got := AppendFreq(nil, 4, 0, 1000000, "abéé")
	assert.Equal(t, "ab", string(got))
}

func TestFormatFreqInto(t *testing.T) {
	buf := make([]byte, 10)
	for i := range buf {
		buf[i] = 'x'
	}

	n := FormatFreqInto(buf, 3, 2400000, "$L: $M")
	require.Equal(t, 9, n)
	assert.Equal(t, "CPU3: 240", string(buf[:n]))
	assert.Equal(t, byte(0), buf[n])

	small := make([]byte, 1)
	assert.Equal(t, 0, FormatFreqInto(small, 0, 1000000, "$L"))
	assert.Equal(t, byte(0), small[0])

	assert.Equal(t, 0, FormatFreqInto(nil, 0, 1000000, "$L"))
}

func TestFormatFreqIntoUnknown(t *testing.T) {
	buf := make([]byte, DefaultBufferSize)
	n := FormatFreqInto(buf, 0, -1, "$L")
	assert.Equal(t, "N/A", string(buf[:n]))
	assert.Equal(t, byte(0), buf[n])
}
