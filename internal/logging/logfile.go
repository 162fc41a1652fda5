package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	logFilePrefix = "readerops-"
	logFileSuffix = ".log"
)

// Options selects where and how a CLI run logs.
type Options struct {
	Format        string // human (default), text, json
	Level         string // DEBUG, INFO (default), WARN, ERROR
	Output        string // "-" for stderr (default), "none", "auto", or a file path
	Dir           string // directory for "auto" and relative paths
	RetentionDays int    // prune auto-named files older than this; 0 keeps all
}

// Sink is an opened log destination with the Logger that writes to it.
type Sink struct {
	Path   string // empty unless logging to a file
	Logger Logger
	file   *os.File
}

// Open resolves opts into a Sink.
//
// Output behavior:
//   - "" or "-": stderr
//   - "none": discard
//   - "auto": a new timestamped file in Dir, pruning old ones first
//   - path: absolute, or relative to Dir
func Open(opts Options) (*Sink, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	s := &Sink{}
	var w io.Writer
	switch strings.ToLower(opts.Output) {
	case "", "-":
		w = os.Stderr
	case "none":
		w = io.Discard
	case "auto":
		if err := PruneLogFiles(opts.Dir, opts.RetentionDays, time.Now()); err != nil {
			return nil, err
		}
		s.Path = filepath.Join(opts.Dir, LogFilename(time.Now().UTC()))
	default:
		s.Path = opts.Output
		if !filepath.IsAbs(s.Path) {
			s.Path = filepath.Join(opts.Dir, s.Path)
		}
	}
	if s.Path != "" {
		if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file %q: %w", s.Path, err)
		}
		s.file = f
		w = f
	}
	l, err := NewWithWriter(opts.Format, level, w)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Logger = l
	return s, nil
}

// Close releases the log file, if any.
func (s *Sink) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// LogFilename returns readerops-YYYYMMDD-HHMMSS-mmm.log for t.
func LogFilename(t time.Time) string {
	return fmt.Sprintf("%s%s-%03d%s", logFilePrefix, t.Format("20060102-150405"), t.Nanosecond()/1_000_000, logFileSuffix)
}

// PruneLogFiles removes readerops-*.log files in dir last modified more
// than retentionDays before now. A missing dir is not an error.
func PruneLogFiles(dir string, retentionDays int, now time.Time) error {
	if retentionDays <= 0 || dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading log directory %q: %w", dir, err)
	}
	cutoff := now.AddDate(0, 0, -retentionDays)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, logFileSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		_ = os.Remove(filepath.Join(dir, name))
	}
	return nil
}
