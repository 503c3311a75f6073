package crashdump

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

const summaryValueLength = 80

var (
	// ErrDumpNotFound is returned when no dump has the requested ID.
	ErrDumpNotFound = errors.New("dump not found")

	// ErrIncompatibleFormat is returned for dumps written with another major format version.
	ErrIncompatibleFormat = errors.New("incompatible dump format")

	// ErrInvalidID is returned for IDs that cannot name a dump file.
	ErrInvalidID = errors.New("invalid dump id")
)

// Store reads and manages the dumps of one directory.
type Store struct {
	dir string
}

// NewStore creates a Store for dir. An empty dir selects DefaultDir().
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}

	return &Store{dir: dir}
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// List returns summaries of all readable dumps, newest first.
func (s *Store) List() ([]DumpSummary, error) {
	if _, err := os.Stat(s.dir); err != nil {
		if os.IsNotExist(err) {
			return []DumpSummary{}, nil
		}

		return nil, errors.Wrap(err, "failed to stat dump directory")
	}

	names, err := doublestar.Glob(os.DirFS(s.dir), "*"+Extension, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan dump directory")
	}

	summaries := make([]DumpSummary, 0, len(names))

	for _, name := range names {
		summary, err := s.summarize(name)
		if err != nil {
			// Not a dump we can read; leave it alone.
			continue
		}

		summaries = append(summaries, summary)
	}

	slices.SortFunc(summaries, func(a, b DumpSummary) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}

		return strings.Compare(b.ID, a.ID)
	})

	return summaries, nil
}

// Find returns the summaries passing f, newest first.
func (s *Store) Find(f Filter) ([]DumpSummary, error) {
	summaries, err := s.List()
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(summaries, func(sum DumpSummary) bool { return !f.Match(sum) }), nil
}

// Get loads the dump with the given ID.
func (s *Store) Get(id string) (*CrashInfo, error) {
	path, err := s.pathFor(id)
	if err != nil {
		return nil, err
	}

	info, err := readInfo(path)
	if err != nil {
		return nil, err
	}

	if err := checkFormat(info.FormatVersion); err != nil {
		return nil, errors.Wrapf(err, "dump %s", id)
	}

	return info, nil
}

// Remove deletes the dump with the given ID.
func (s *Store) Remove(id string) error {
	path, err := s.pathFor(id)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(ErrDumpNotFound, id)
		}

		return errors.Wrap(err, "failed to remove dump")
	}

	return nil
}

// PruneOptions selects dumps to delete. Zero values disable the corresponding limit.
type PruneOptions struct {
	// MaxDumps keeps at most this many of the newest dumps.
	MaxDumps int

	// MaxAge deletes dumps older than this.
	MaxAge time.Duration

	// Now is the reference time for MaxAge. Default: time.Now().
	Now time.Time

	// DryRun reports what would be deleted without deleting.
	DryRun bool

	// Filter restricts pruning to matching dumps. Limits count matching dumps only.
	Filter Filter
}

// Prune deletes dumps exceeding the limits in opts and returns the deleted summaries.
func (s *Store) Prune(opts PruneOptions) ([]DumpSummary, error) {
	summaries, err := s.Find(opts.Filter)
	if err != nil {
		return nil, err
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	var pruned []DumpSummary

	for i, summary := range summaries {
		tooMany := opts.MaxDumps > 0 && i >= opts.MaxDumps
		tooOld := opts.MaxAge > 0 && now.Sub(summary.Timestamp) > opts.MaxAge

		if !tooMany && !tooOld {
			continue
		}

		if !opts.DryRun {
			if err := os.Remove(summary.FilePath); err != nil && !os.IsNotExist(err) {
				return pruned, errors.Wrapf(err, "failed to prune dump %s", summary.ID)
			}
		}

		pruned = append(pruned, summary)
	}

	return pruned, nil
}

func (s *Store) summarize(name string) (DumpSummary, error) {
	path := filepath.Join(s.dir, name)

	stat, err := os.Stat(path)
	if err != nil {
		return DumpSummary{}, errors.Wrap(err, "failed to stat dump")
	}

	info, err := readInfo(path)
	if err != nil {
		return DumpSummary{}, err
	}

	return DumpSummary{
		ID:         info.ID,
		Timestamp:  info.Timestamp,
		Label:      info.Label,
		FaultKind:  info.FaultKind,
		PanicValue: shorten(info.PanicValue, summaryValueLength),
		FilePath:   path,
		Size:       stat.Size(),
	}, nil
}

func (s *Store) pathFor(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", errors.Wrap(ErrInvalidID, id)
	}

	return filepath.Join(s.dir, strings.TrimSuffix(id, Extension)+Extension), nil
}

func readInfo(path string) (*CrashInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(ErrDumpNotFound, filepath.Base(path))
		}

		return nil, errors.Wrap(err, "failed to read dump")
	}

	var info CrashInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, errors.Wrap(err, "failed to decode dump")
	}

	return &info, nil
}

func checkFormat(version string) error {
	got, err := semver.NewVersion(version)
	if err != nil {
		return errors.Wrapf(ErrIncompatibleFormat, "unparsable version %q", version)
	}

	current := semver.MustParse(FormatVersion)
	if got.Major() != current.Major() {
		return errors.Wrapf(ErrIncompatibleFormat, "version %s, supported %d.x", got, current.Major())
	}

	return nil
}

func shorten(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit-1]) + "…"
}
