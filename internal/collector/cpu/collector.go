// Package cpu
package cpu

import "gkfreq/internal/logger"

// FreqReader is the part of the system reader the collector needs.
type FreqReader interface {
	IsCPUOnline(cpu int) bool
	CPUFreqKHz(cpu int) (int, bool)
}

// Collector reads and labels the frequency of single cpus.
type Collector struct {
	reader FreqReader
	log    logger.Logger
}

func NewCollector(reader FreqReader, log logger.Logger) *Collector {
	return &Collector{reader: reader, log: log}
}

func (c *Collector) Online(cpu int) bool {
	return c.reader.IsCPUOnline(cpu)
}

// CollectFreq reads the current frequency of cpu and renders it with tmpl.
// ok is false when no value could be read this time.
func (c *Collector) CollectFreq(cpu int, tmpl string) (khz int, text string, ok bool) {
	khz, ok = c.reader.CPUFreqKHz(cpu)
	if !ok {
		return 0, "", false
	}

	return khz, FormatFreq(cpu, khz, tmpl), true
}
