package settings

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gkfreq/internal/domain"
	"gkfreq/internal/logger"
)

// FileStore keeps settings as "gkfreq <key> <value>" lines, the layout
// GKrellM uses for plugin config.
type FileStore struct {
	path string
	log  logger.Logger
}

func NewFileStore(path string, log logger.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load(ctx context.Context) (domain.Settings, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.log.Debug("settings: no settings file, using defaults", "path", f.path)
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.DefaultSettings(), fmt.Errorf("failed to open settings: %w", err)
	}
	defer file.Close()

	s, err := Decode(file, f.log)
	if err != nil {
		return domain.DefaultSettings(), fmt.Errorf("failed to read settings: %w", err)
	}

	return s, nil
}

// Save writes to a temp file next to the target and renames it over.
func (f *FileStore) Save(ctx context.Context, s domain.Settings) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*")
	if err != nil {
		return fmt.Errorf("failed to create temp settings: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, s); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace settings: %w", err)
	}

	f.log.Debug("settings: saved", "path", f.path)
	return nil
}

func (f *FileStore) Close() error {
	return nil
}

func Encode(w io.Writer, s domain.Settings) error {
	values := encode(s)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s %s %s\n", Keyword, k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads settings lines. Lines for other keywords are skipped; a
// text_format line without a value yields the default template.
func Decode(r io.Reader, log logger.Logger) (domain.Settings, error) {
	s := domain.DefaultSettings()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		rest, ok := strings.CutPrefix(line, Keyword+" ")
		if !ok {
			continue
		}

		key, value := ParseLine(rest)
		if key == "" {
			log.Warn("settings: malformed line", "line", line)
			s = s.WithTextFormat(domain.DefaultTextFormat)
			continue
		}

		s = apply(s, key, value, log)
	}

	return s, scanner.Err()
}

// ParseLine splits the part after the keyword into key and value. The value
// starts after the single blank that follows the key and is kept verbatim,
// so templates with leading or trailing spaces survive a save/load cycle.
func ParseLine(arg string) (key, value string) {
	arg = strings.TrimLeft(arg, " \t")

	i := strings.IndexAny(arg, " \t")
	if i < 0 {
		return arg, ""
	}

	return arg[:i], arg[i+1:]
}
