// Package system
package system

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gkfreq/internal/logger"
)

type SystemReader struct {
	root string
	log  logger.Logger
}

// NewReader returns a reader resolving every kernel path under root.
// Pass "/" for the live system.
func NewReader(root string, log logger.Logger) *SystemReader {
	if root == "" {
		root = "/"
	}
	return &SystemReader{root: root, log: log}
}

func (r *SystemReader) path(elem ...string) string {
	return filepath.Join(append([]string{r.root}, elem...)...)
}

// readInt parses the first whitespace-delimited token of a file.
func (r *SystemReader) readInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, strconv.ErrSyntax
	}

	return strconv.Atoi(fields[0])
}
