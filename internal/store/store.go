// Package store keeps the three markdown views of the workout log in step:
// the all-time master document, one document per calendar month and the
// rolling recent digest.
//
// Each operation reads a document fully, transforms it in memory and writes
// it back with write-then-rename. There is no locking and no transaction
// across documents: a failure after the master write leaves the views out of
// step and is reported as a PartialWriteError.
package store

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aidanlsb/ironlog/internal/atomicfile"
	"github.com/aidanlsb/ironlog/internal/dates"
	"github.com/aidanlsb/ironlog/internal/digest"
	"github.com/aidanlsb/ironlog/internal/logdoc"
)

// Document names used in logs and errors.
const (
	DocMaster  = "master"
	DocMonthly = "monthly"
	DocRecent  = "recent"
)

// Defaults for Config fields left empty.
const (
	DefaultMasterFile  = "workout_db.md"
	DefaultLogsDir     = "logs"
	DefaultRecentFile  = "recent_workouts.md"
	DefaultMasterTitle = "Iron Secretary Workout Log"
	monthlyTitlePrefix = "Workout Log - "
)

// Config locates the documents. Relative file names resolve against DataDir.
type Config struct {
	DataDir     string
	MasterFile  string
	LogsDir     string
	RecentFile  string
	MasterTitle string
	RecentLimit int
}

func (c Config) withDefaults() Config {
	if c.MasterFile == "" {
		c.MasterFile = DefaultMasterFile
	}
	if c.LogsDir == "" {
		c.LogsDir = DefaultLogsDir
	}
	if c.RecentFile == "" {
		c.RecentFile = DefaultRecentFile
	}
	if c.MasterTitle == "" {
		c.MasterTitle = DefaultMasterTitle
	}
	if c.RecentLimit <= 0 {
		c.RecentLimit = digest.DefaultLimit
	}
	return c
}

func (c Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// Store applies saves and overwrites to the three documents.
type Store struct {
	cfg    Config
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecentLimit overrides the number of dates the digest keeps.
func WithRecentLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.cfg.RecentLimit = n
		}
	}
}

// New returns a Store for cfg, creating the data directory if needed.
func New(cfg Config, opts ...Option) (*Store, error) {
	if strings.TrimSpace(cfg.DataDir) == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	s := &Store{
		cfg:    cfg.withDefaults(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := os.MkdirAll(s.cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return s, nil
}

// Config returns the effective configuration.
func (s *Store) Config() Config {
	return s.cfg
}

// MasterPath returns the master document path.
func (s *Store) MasterPath() string {
	return s.cfg.resolve(s.cfg.MasterFile)
}

// RecentPath returns the digest document path.
func (s *Store) RecentPath() string {
	return s.cfg.resolve(s.cfg.RecentFile)
}

// LogsDir returns the directory holding monthly documents.
func (s *Store) LogsDir() string {
	return s.cfg.resolve(s.cfg.LogsDir)
}

// MonthlyPath returns the monthly document path for date.
func (s *Store) MonthlyPath(date string) (string, error) {
	month, err := dates.MonthKey(date)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.LogsDir(), month+".md"), nil
}

// MonthlyTitle returns the title text of the monthly document for month (YYYY-MM).
func MonthlyTitle(month string) string {
	return monthlyTitlePrefix + month
}

// MonthlyPaths lists existing monthly documents, oldest month first.
func (s *Store) MonthlyPaths() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.LogsDir(), "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// Exists reports whether the master document has a section for date.
func (s *Store) Exists(date string) (bool, error) {
	if !dates.IsValidDate(date) {
		return false, fmt.Errorf("%w: %q", dates.ErrInvalidDate, date)
	}
	content, ok, err := atomicfile.ReadString(s.MasterPath())
	if err != nil {
		return false, &DocumentError{Document: DocMaster, Path: s.MasterPath(), Err: err}
	}
	if !ok {
		return false, nil
	}
	return logdoc.HeaderIndex(logdoc.SplitLines(content), date) >= 0, nil
}

// Master loads the master document. A missing file yields an empty titled document.
func (s *Store) Master() (*logdoc.Document, error) {
	return s.load(DocMaster, s.MasterPath(), s.cfg.MasterTitle)
}

// Monthly loads the monthly document for month (YYYY-MM).
func (s *Store) Monthly(month string) (*logdoc.Document, error) {
	path := filepath.Join(s.LogsDir(), month+".md")
	return s.load(DocMonthly, path, MonthlyTitle(month))
}

// Recent returns the digest entries, newest first.
func (s *Store) Recent() ([]digest.Entry, error) {
	content, _, err := atomicfile.ReadString(s.RecentPath())
	if err != nil {
		return nil, &DocumentError{Document: DocRecent, Path: s.RecentPath(), Err: err}
	}
	return digest.Parse(content), nil
}

func (s *Store) load(name, path, title string) (*logdoc.Document, error) {
	content, ok, err := atomicfile.ReadString(path)
	if err != nil {
		return nil, &DocumentError{Document: name, Path: path, Err: err}
	}
	if !ok {
		return logdoc.New(title), nil
	}
	return logdoc.Parse(content), nil
}
