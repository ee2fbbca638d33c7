// Package domain
package domain

// UsageSnapshot holds cumulative per-CPU tick counters as reported by the
// kernel since boot.
type UsageSnapshot struct {
	User uint64 `json:"user"`
	Nice uint64 `json:"nice"`
	Sys  uint64 `json:"sys"`
	Idle uint64 `json:"idle"`
}

type CoreSlot struct {
	Index            int
	Online           bool
	LastFrequencyKHz int
	HasFrequency     bool
	Text             string

	// Usage is the counter baseline for the next usage delta.
	Usage UsageSnapshot
}

// SlotPayload is what the panel draws for one CPU on one tick.
type SlotPayload struct {
	Index    int    `json:"index"`
	Text     string `json:"text"`
	Usage    int    `json:"usage"`
	HasUsage bool   `json:"has_usage"`
}
