package crashdump

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
)

const (
	// Extension is the file name suffix of dump files.
	Extension = ".dump.json"

	dirPermissions  = 0o700
	filePermissions = 0o600

	// timestampLayout keeps IDs sortable and free of path-hostile characters.
	timestampLayout = "20060102T150405.000000000Z"

	defaultLabel = "guard"
)

// Writer writes dump documents into a directory.
type Writer struct {
	dir     string
	version string
	pid     int
	seq     atomic.Uint64
	now     func() time.Time
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithVersion sets the version recorded in dump metadata.
func WithVersion(version string) WriterOption {
	return func(w *Writer) { w.version = version }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) WriterOption {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// NewWriter creates a Writer for dir. An empty dir selects DefaultDir().
func NewWriter(dir string, opts ...WriterOption) *Writer {
	if dir == "" {
		dir = DefaultDir()
	}

	w := &Writer{
		dir:     dir,
		version: "dev",
		pid:     os.Getpid(),
		now:     time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}

	return w
}

// DefaultDir returns the dump directory used when none is configured.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), "faultline", "dumps")
}

// Dir returns the directory dumps are written to.
func (w *Writer) Dir() string {
	return w.dir
}

// NewCrashInfo returns a document pre-filled with identity, runtime and host metadata.
func (w *Writer) NewCrashInfo(label string) *CrashInfo {
	now := w.now().UTC()

	info := &CrashInfo{
		ID:            w.newID(label, now),
		FormatVersion: FormatVersion,
		Timestamp:     now,
		Label:         label,
		Runtime: RuntimeInfo{
			GOOS:         runtime.GOOS,
			GOARCH:       runtime.GOARCH,
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			NumCPU:       runtime.NumCPU(),
			PID:          w.pid,
		},
		Metadata: DumpMetadata{
			Version: w.version,
		},
	}

	if host, err := os.Hostname(); err == nil {
		info.Metadata.Hostname = host
	}

	if u, err := user.Current(); err == nil {
		info.Metadata.User = u.Username
	}

	if wd, err := os.Getwd(); err == nil {
		info.Metadata.WorkingDir = wd
	}

	return info
}

// Write stores info as a new dump file and returns its path. Existing files are never
// overwritten.
func (w *Writer) Write(info *CrashInfo) (string, error) {
	if info == nil {
		return "", errors.New("crash info cannot be nil")
	}

	if info.ID == "" {
		info.ID = w.newID(info.Label, w.now().UTC())
	}

	if err := os.MkdirAll(w.dir, dirPermissions); err != nil {
		return "", errors.Wrap(err, "failed to create dump directory")
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal crash info")
	}

	path := filepath.Join(w.dir, info.ID+Extension)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePermissions)
	if err != nil {
		return "", errors.Wrap(err, "failed to create dump file")
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)

		return "", errors.Wrap(err, "failed to write dump file")
	}

	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, "failed to close dump file")
	}

	return path, nil
}

// newID builds a dump ID from the file-name-safe form of label. The label itself is stored
// unchanged so filters match what the guard was given.
func (w *Writer) newID(label string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%d-%d", SanitizeLabel(label), at.Format(timestampLayout), w.pid, w.seq.Add(1))
}

// SanitizeLabel maps a guard label onto a file-name-safe token.
func SanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return defaultLabel
	}

	var b strings.Builder

	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return b.String()
}
