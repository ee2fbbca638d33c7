package domain

import "strings"

const DefaultTextFormat = "$L: $G"

// Settings is the user-editable part of the panel. It is passed by value;
// changing it means building a new one and handing it to the sampler.
type Settings struct {
	TextFormat string `json:"text_format"`
	ShowUsage  bool   `json:"show_usage"`
}

func DefaultSettings() Settings {
	return Settings{TextFormat: DefaultTextFormat}
}

func (s Settings) WithTextFormat(format string) Settings {
	s.TextFormat = normalizeFormat(format)
	return s
}

func (s Settings) WithShowUsage(show bool) Settings {
	s.ShowUsage = show
	return s
}

// normalizeFormat keeps only the first line; the settings file is line based.
func normalizeFormat(format string) string {
	if i := strings.IndexAny(format, "\r\n"); i >= 0 {
		format = format[:i]
	}
	return format
}
