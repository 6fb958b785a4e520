package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aidanlsb/ironlog/internal/atomicfile"
	"github.com/aidanlsb/ironlog/internal/dates"
	"github.com/aidanlsb/ironlog/internal/digest"
	"github.com/aidanlsb/ironlog/internal/logdoc"
)

// Op is a write operation applied to every document.
type Op string

const (
	OpSave      Op = "save"
	OpOverwrite Op = "overwrite"
)

// Save appends content to date's section in the master and monthly
// documents, inserting the section in chronological order when it is new,
// then rebuilds the digest.
func (s *Store) Save(date, content string) error {
	return s.apply(OpSave, date, content)
}

// Overwrite replaces date's section in the master and monthly documents,
// then rebuilds the digest.
func (s *Store) Overwrite(date, content string) error {
	return s.apply(OpOverwrite, date, content)
}

// Apply runs op for date. It lets callers pick the operation at runtime.
func (s *Store) Apply(op Op, date, content string) error {
	switch op {
	case OpSave, OpOverwrite:
		return s.apply(op, date, content)
	default:
		return fmt.Errorf("unknown operation %q", op)
	}
}

type target struct {
	name  string
	path  string
	title string
}

func (s *Store) apply(op Op, date, content string) error {
	if !dates.IsValidDate(date) {
		return fmt.Errorf("%w: %q", dates.ErrInvalidDate, date)
	}
	month, err := dates.MonthKey(date)
	if err != nil {
		return err
	}

	targets := []target{
		{name: DocMaster, path: s.MasterPath(), title: s.cfg.MasterTitle},
		{name: DocMonthly, path: filepath.Join(s.LogsDir(), month+".md"), title: MonthlyTitle(month)},
	}

	var written []string
	var failures []*DocumentError
	// The digest mirrors the full section as stored, not just this call's block.
	sectionBody := ""
	haveBody := false

	for _, t := range targets {
		body, err := s.writeDocument(op, t, date, content)
		if err != nil {
			s.logger.Warn("document write failed", "op", op, "doc", t.name, "path", t.path, "date", date, "error", err)
			failures = append(failures, &DocumentError{Document: t.name, Path: t.path, Err: err})
			continue
		}
		s.logger.Debug("document written", "op", op, "doc", t.name, "path", t.path, "date", date)
		written = append(written, t.name)
		if !haveBody {
			sectionBody, haveBody = body, true
		}
	}

	if !haveBody {
		sectionBody = content
	}
	if err := s.rebuildDigest(date, sectionBody); err != nil {
		s.logger.Warn("digest rebuild failed", "op", op, "path", s.RecentPath(), "date", date, "error", err)
		failures = append(failures, &DocumentError{Document: DocRecent, Path: s.RecentPath(), Err: err})
	} else {
		s.logger.Debug("digest rebuilt", "path", s.RecentPath(), "date", date)
		written = append(written, DocRecent)
	}

	if len(failures) == 0 {
		return nil
	}
	return &PartialWriteError{Op: op, Date: date, Written: written, Failures: failures}
}

// writeDocument applies op to one document and returns the resulting
// section body for date.
func (s *Store) writeDocument(op Op, t target, date, content string) (string, error) {
	existing, ok, err := atomicfile.ReadString(t.path)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}

	doc := logdoc.New(t.title)
	if ok {
		doc = logdoc.Parse(existing)
	}

	switch op {
	case OpOverwrite:
		err = doc.Overwrite(date, content)
	default:
		err = doc.Save(date, content)
	}
	if err != nil {
		return "", err
	}

	if err := atomicfile.WriteString(t.path, doc.String()); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}

	return strings.Join(doc.Section(date).Body, "\n"), nil
}

func (s *Store) rebuildDigest(date, body string) error {
	existing, _, err := atomicfile.ReadString(s.RecentPath())
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	out, err := digest.Build(existing, date, body, s.cfg.RecentLimit)
	if err != nil {
		return err
	}
	if err := atomicfile.WriteString(s.RecentPath(), out); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
