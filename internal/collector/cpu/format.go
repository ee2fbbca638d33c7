package cpu

import (
	"strconv"
	"unicode/utf8"
)

// DefaultBufferSize matches the fixed label buffer of the panel, including
// the terminating NUL.
const DefaultBufferSize = 32

const notAvailable = "N/A"

// FormatHelp documents the substitution tokens understood by FormatFreq.
var FormatHelp = []string{
	"Substitution variables for the format string for label:",
	"\t$L    the CPU label",
	"\t$N    the CPU id",
	"\t$M    the CPU frequency, in MHz",
	"\t$m    the CPU frequency, in MHz, without 'MHz' string",
	"\t$G    the CPU frequency, in GHz",
	"\t$g    the CPU frequency, in GHz, without 'GHz' string",
	"\t$$    $ symbol",
}

// FormatFreq renders khz for cpu using tmpl, bounded by DefaultBufferSize.
func FormatFreq(cpu, khz int, tmpl string) string {
	return string(AppendFreq(make([]byte, 0, DefaultBufferSize), DefaultBufferSize, cpu, khz, tmpl))
}

// FormatFreqInto writes the rendered label into buf followed by a NUL and
// returns the label length. Nothing is written when buf is empty.
func FormatFreqInto(buf []byte, cpu, khz int, tmpl string) int {
	if len(buf) == 0 {
		return 0
	}

	out := AppendFreq(buf[:0], len(buf), cpu, khz, tmpl)
	n := len(out)
	buf[n] = 0
	return n
}

// AppendFreq appends the rendered label to dst. At most size-1 bytes are
// appended so a C-style terminator always fits. A negative khz renders
// as "N/A".
func AppendFreq(dst []byte, size, cpu, khz int, tmpl string) []byte {
	if size <= 0 {
		return dst
	}
	limit := len(dst) + size - 1

	if khz < 0 {
		return appendBounded(dst, limit, notAvailable)
	}

	var scratch [32]byte

	for i := 0; i < len(tmpl) && len(dst) < limit; i++ {
		c := tmpl[i]
		if c != '$' {
			dst = append(dst, c)
			continue
		}

		i++
		if i >= len(tmpl) {
			dst = append(dst, '$')
			break
		}

		var exp []byte
		switch tmpl[i] {
		case 'L':
			exp = strconv.AppendInt(append(scratch[:0], "CPU"...), int64(cpu), 10)
		case 'N':
			exp = strconv.AppendInt(scratch[:0], int64(cpu), 10)
		case 'M':
			exp = append(strconv.AppendInt(scratch[:0], int64(khz/1000), 10), " MHz"...)
		case 'm':
			exp = strconv.AppendInt(scratch[:0], int64(khz/1000), 10)
		case 'G':
			exp = append(appendGHz(scratch[:0], khz), " GHz"...)
		case 'g':
			exp = appendGHz(scratch[:0], khz)
		default:
			dst = append(dst, tmpl[i])
			continue
		}

		dst = appendBounded(dst, limit, string(exp))
	}

	return trimPartialRune(dst, limit)
}

// appendGHz scales in single precision; 2.345 GHz prints as 2.35.
func appendGHz(dst []byte, khz int) []byte {
	ghz := float32(float32(khz) * float32(1e-6))
	return strconv.AppendFloat(dst, float64(ghz), 'f', 2, 64)
}

func appendBounded(dst []byte, limit int, s string) []byte {
	if room := limit - len(dst); len(s) > room {
		s = s[:max(room, 0)]
	}
	return append(dst, s...)
}

// trimPartialRune drops a multi-byte sequence cut by the bound.
func trimPartialRune(dst []byte, limit int) []byte {
	if len(dst) < limit {
		return dst
	}

	for back := 1; back <= utf8.UTFMax && back <= len(dst); back++ {
		start := len(dst) - back
		if !utf8.RuneStart(dst[start]) {
			continue
		}
		if !utf8.FullRune(dst[start:]) {
			return dst[:start]
		}
		break
	}

	return dst
}
