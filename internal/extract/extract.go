// Package extract splits free-form multi-day text into per-date chunks.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aidanlsb/ironlog/internal/dates"
)

// recognizer finds a date in a line. Patterns with two groups are month/day
// in the current year; three groups are year/month/day.
type recognizer struct {
	name    string
	pattern *regexp.Regexp
}

// recognizers are tried in priority order.
var recognizers = []recognizer{
	{name: "slash", pattern: regexp.MustCompile(`(\d{1,2})/(\d{1,2})`)},
	{name: "korean", pattern: regexp.MustCompile(`(\d{1,2})월\s*(\d{1,2})일`)},
	{name: "iso", pattern: regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)},
}

// Extractor splits text into date chunks. The zero value uses time.Now.
type Extractor struct {
	// Now supplies the year for month/day patterns.
	Now func() time.Time
}

// New returns an Extractor using the given clock. A nil clock means time.Now.
func New(now func() time.Time) *Extractor {
	return &Extractor{Now: now}
}

// Parse walks text line by line. A line holding a date starts a new chunk
// (and belongs to it); following lines accumulate until the next date line.
// Lines before the first date are dropped. Returned keys are YYYY-MM-DD; when
// a date appears twice the later chunk wins.
//
// Month/day dates always resolve to the current year, even when that puts
// "12/31" typed in January into the future.
func (e *Extractor) Parse(text string) map[string]string {
	year := e.now().Year()
	logs := map[string]string{}

	current := ""
	var buf []string
	flush := func() {
		if current != "" {
			logs[current] = strings.TrimSpace(strings.Join(buf, "\n"))
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if date, ok := findDate(line, year); ok {
			flush()
			current = date
			buf = []string{line}
			continue
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()

	return logs
}

// Parse splits text using the current clock.
func Parse(text string) map[string]string {
	return (&Extractor{}).Parse(text)
}

func (e *Extractor) now() time.Time {
	if e == nil || e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// findDate returns the date of the first recognizer whose first match is a
// real calendar date. A match like "13/45" falls through to the next pattern.
func findDate(line string, year int) (string, bool) {
	for _, r := range recognizers {
		m := r.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		nums := make([]int, 0, 3)
		for _, g := range m[1:] {
			n, err := strconv.Atoi(g)
			if err != nil {
				break
			}
			nums = append(nums, n)
		}
		var key string
		var ok bool
		switch len(nums) {
		case 2:
			key, ok = dates.FromParts(year, nums[0], nums[1])
		case 3:
			key, ok = dates.FromParts(nums[0], nums[1], nums[2])
		}
		if ok {
			return key, true
		}
	}
	return "", false
}

// Dates returns the keys of logs in ascending order.
func Dates(logs map[string]string) []string {
	keys := make([]string, 0, len(logs))
	for k := range logs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Earliest returns the oldest date in logs.
func Earliest(logs map[string]string) (string, bool) {
	keys := Dates(logs)
	if len(keys) == 0 {
		return "", false
	}
	return keys[0], true
}
