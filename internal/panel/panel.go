// Package panel draws sampler payloads as a fixed-width text panel, one
// line per cpu.
package panel

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"gkfreq/internal/domain"
)

const (
	DefaultWidth = 24

	// scrollGap separates the end of a scrolling label from its next loop.
	scrollGap = "   "

	usageColumn = 5
	clearScreen = "\x1b[H\x1b[2J"
)

type Panel struct {
	width  int
	clear  bool
	scroll map[int]int
}

// New returns a panel width cells wide. clear makes every frame start by
// homing the cursor and clearing the screen.
func New(width int, clear bool) *Panel {
	if width < 1 {
		width = DefaultWidth
	}
	return &Panel{width: width, clear: clear, scroll: make(map[int]int)}
}

func (p *Panel) Width() int {
	return p.width
}

// Draw writes one frame.
func (p *Panel) Draw(w io.Writer, payloads []domain.SlotPayload) error {
	bw := bufio.NewWriter(w)

	if p.clear {
		bw.WriteString(clearScreen)
	}

	for _, payload := range payloads {
		bw.WriteString(p.Line(payload))
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// Line lays out a single payload. Labels that fit are centered; labels that
// don't advance one position per call and wrap around.
func (p *Panel) Line(payload domain.SlotPayload) string {
	avail := p.width
	suffix := ""
	if payload.HasUsage {
		suffix = fmt.Sprintf("%*d%%", usageColumn-1, payload.Usage)
		avail = max(p.width-usageColumn, 1)
	}

	text := payload.Text
	textWidth := runewidth.StringWidth(text)

	if textWidth <= avail {
		delete(p.scroll, payload.Index)
		left := (avail - textWidth) / 2
		return strings.Repeat(" ", left) + runewidth.FillRight(text, avail-left) + suffix
	}

	loop := []rune(text + scrollGap)
	offset := p.scroll[payload.Index] % len(loop)
	p.scroll[payload.Index] = offset + 1

	window := string(loop[offset:]) + string(loop)
	return runewidth.FillRight(runewidth.Truncate(window, avail, ""), avail) + suffix
}
