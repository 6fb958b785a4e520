package check

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/aidanlsb/ironlog/internal/atomicfile"
	"github.com/aidanlsb/ironlog/internal/digest"
	"github.com/aidanlsb/ironlog/internal/store"
)

// Report is the result of checking every document of a store.
type Report struct {
	Files  []string `json:"files"`
	Issues []Issue  `json:"issues"`
}

// ErrorCount returns the number of error-level issues.
func (r *Report) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Level == LevelError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-level issues.
func (r *Report) WarningCount() int {
	return len(r.Issues) - r.ErrorCount()
}

// Run validates the master, monthly and digest documents of st. Missing
// documents are skipped. The digest is also compared with the newest dates
// of the master document.
func Run(st *store.Store) (*Report, error) {
	cfg := st.Config()
	report := &Report{}

	masterEntries, err := report.validateFile(Document{
		Kind:  KindMaster,
		Path:  st.MasterPath(),
		Title: cfg.MasterTitle,
	})
	if err != nil {
		return nil, err
	}

	monthly, err := st.MonthlyPaths()
	if err != nil {
		return nil, err
	}
	for _, path := range monthly {
		month := strings.TrimSuffix(filepath.Base(path), ".md")
		if _, err := report.validateFile(Document{
			Kind:  KindMonthly,
			Path:  path,
			Title: store.MonthlyTitle(month),
			Month: month,
		}); err != nil {
			return nil, err
		}
	}

	recentEntries, err := report.validateFile(Document{
		Kind:  KindDigest,
		Path:  st.RecentPath(),
		Title: strings.TrimPrefix(digest.Title, "# "),
		Limit: cfg.RecentLimit,
	})
	if err != nil {
		return nil, err
	}

	if masterEntries != nil && recentEntries != nil {
		report.compareDigest(st.RecentPath(), masterEntries, recentEntries, cfg.RecentLimit)
	}
	return report, nil
}

// validateFile returns nil entries when the file does not exist.
func (r *Report) validateFile(doc Document) ([]Entry, error) {
	content, ok, err := atomicfile.ReadString(doc.Path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	r.Files = append(r.Files, doc.Path)

	issues, entries, err := Validate(doc, []byte(content))
	if err != nil {
		return nil, err
	}
	r.Issues = append(r.Issues, issues...)
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// compareDigest warns about the newest master dates missing from the digest.
func (r *Report) compareDigest(path string, master, recent []Entry, limit int) {
	inDigest := make(map[string]bool, len(recent))
	for _, e := range recent {
		inDigest[e.Date] = true
	}

	newest := sortedDates(master)
	if len(newest) > limit {
		newest = newest[:limit]
	}
	for _, date := range newest {
		if !inDigest[date] {
			r.Issues = append(r.Issues, Issue{
				Level:    LevelWarning,
				Type:     IssueDigestStale,
				FilePath: path,
				Date:     date,
				Message:  "Master has " + date + " but the digest does not",
			})
		}
	}
}

func sortedDates(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}
