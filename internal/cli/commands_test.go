package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aidanlsb/ironlog/internal/testutil"
)

func TestSaveWritesAllDocuments(t *testing.T) {
	d := testutil.NewDataDir(t).Build()

	res := runCLI(t, d.Path, "", "save", "2026-02-10", "squat", "5x5", "100kg")
	if res.err != nil {
		t.Fatalf("save: %v\n%s", res.err, res.stderr)
	}
	if !strings.Contains(res.stdout, "Added") {
		t.Errorf("expected Added in output, got:\n%s", res.stdout)
	}

	d.AssertFileContains(testutil.MasterFile, "## 2026-02-10 (Tuesday)\nsquat 5x5 100kg")
	d.AssertFileContains(testutil.MonthlyFile("2026-02"), "# Workout Log - 2026-02")
	d.AssertFileContains(testutil.MonthlyFile("2026-02"), "squat 5x5 100kg")
	d.AssertFileContains(testutil.RecentFile, "# Recent Workouts (Last 7 Days)")
}

func TestSaveReportsAppend(t *testing.T) {
	d := testutil.NewDataDir(t).Build()

	if res := runCLI(t, d.Path, "", "save", "2/10", "squat"); res.err != nil {
		t.Fatalf("first save: %v", res.err)
	}
	res := runCLI(t, d.Path, "", "--json", "save", "2/10", "bench")
	if res.err != nil {
		t.Fatalf("second save: %v", res.err)
	}

	var got writeResult
	resp := decodeResponse(t, res.stdout, &got)
	if !resp.OK {
		t.Fatalf("expected ok=true; out=%s", res.stdout)
	}
	if got.Date != "2026-02-10" || got.Action != actionAppended {
		t.Errorf("got %+v, want 2026-02-10 appended", got)
	}
	if len(got.Files) != 3 {
		t.Errorf("expected 3 files, got %v", got.Files)
	}
	d.AssertFileContains(testutil.MasterFile, "squat\n\nbench")
}

func TestSaveFromStdin(t *testing.T) {
	d := testutil.NewDataDir(t).Build()

	res := runCLI(t, d.Path, "squat 5x5\nbench 3x8\n", "save", "yesterday", "--stdin")
	if res.err != nil {
		t.Fatalf("save: %v", res.err)
	}
	d.AssertFileContains(testutil.MasterFile, "## 2026-02-13 (Friday)\nsquat 5x5\nbench 3x8\n")
}

func TestSaveInvalidDateJSON(t *testing.T) {
	d := testutil.NewDataDir(t).Build()

	res := runCLI(t, d.Path, "", "--json", "save", "2026-02-30", "squat")
	if res.err == nil {
		t.Fatal("expected an error for an invalid date")
	}
	if !errors.Is(res.err, errReported) {
		t.Errorf("expected errReported, got %v", res.err)
	}

	resp := decodeResponse(t, res.stdout, nil)
	if resp.OK || resp.Error == nil {
		t.Fatalf("expected an error response; out=%s", res.stdout)
	}
	if resp.Error.Code != ErrInvalidDate {
		t.Errorf("code = %q, want %q", resp.Error.Code, ErrInvalidDate)
	}
	d.AssertFileNotExists(testutil.MasterFile)
}

func TestSaveMissingText(t *testing.T) {
	d := testutil.NewDataDir(t).Build()

	res := runCLI(t, d.Path, "", "--json", "save", "2026-02-10")
	if res.err == nil {
		t.Fatal("expected an error without text")
	}
	resp := decodeResponse(t, res.stdout, nil)
	if resp.Error == nil || resp.Error.Code != ErrMissingArgument {
		t.Errorf("expected %s; out=%s", ErrMissingArgument, res.stdout)
	}
}

func TestOverwriteReplacesSection(t *testing.T) {
	d := testutil.NewDataDir(t).Build()

	for _, args := range [][]string{
		{"save", "2026-02-10", "squat"},
		{"save", "2026-02-11", "rest"},
		{"overwrite", "2026-02-10", "deadlift"},
	} {
		if res := runCLI(t, d.Path, "", args...); res.err != nil {
			t.Fatalf("%v: %v", args, res.err)
		}
	}

	d.AssertFileNotContains(testutil.MasterFile, "squat")
	d.AssertFileContains(testutil.MasterFile, "## 2026-02-10 (Tuesday)\ndeadlift")
	d.AssertBefore(testutil.MasterFile, "## 2026-02-11", "## 2026-02-10")
	d.AssertFileNotContains(testutil.RecentFile, "squat")
}

func TestExistsCommand(t *testing.T) {
	d := testutil.NewDataDir(t).Build()

	check := func(date string, want bool) {
		t.Helper()
		res := runCLI(t, d.Path, "", "--json", "exists", date)
		if res.err != nil {
			t.Fatalf("exists %s: %v", date, res.err)
		}
		var got struct {
			Date   string `json:"date"`
			Exists bool   `json:"exists"`
		}
		decodeResponse(t, res.stdout, &got)
		if got.Exists != want {
			t.Errorf("exists %s = %v, want %v", date, got.Exists, want)
		}
	}

	check("2026-02-10", false)
	if res := runCLI(t, d.Path, "", "save", "2026-02-10", "squat"); res.err != nil {
		t.Fatalf("save: %v", res.err)
	}
	check("2026-02-10", true)
	check("2026-02-11", false)
}

const bulkText = `notes before any date
2/10 squat
5x5 100kg
2월 12일 bench
2026-2-9 rest`

func TestParseJSON(t *testing.T) {
	d := testutil.NewDataDir(t).Build()

	res := runCLI(t, d.Path, bulkText, "--json", "parse", "--stdin")
	if res.err != nil {
		t.Fatalf("parse: %v", res.err)
	}

	var got struct {
		Entries []parsedEntry `json:"entries"`
	}
	resp := decodeResponse(t, res.stdout, &got)
	if resp.Meta == nil || resp.Meta.Count != 3 {
		t.Errorf("expected meta count 3; out=%s", res.stdout)
	}
	want := []parsedEntry{
		{Date: "2026-02-09", Content: "2026-2-9 rest"},
		{Date: "2026-02-10", Content: "2/10 squat\n5x5 100kg"},
		{Date: "2026-02-12", Content: "2월 12일 bench"},
	}
	if len(got.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(got.Entries), len(want), got.Entries)
	}
	for i := range want {
		if got.Entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got.Entries[i], want[i])
		}
	}
	d.AssertFileNotExists(testutil.MasterFile)
}

func TestParseYAML(t *testing.T) {
	res := runCLI(t, t.TempDir(), "", "parse", "--yaml", "2/10 squat", "5x5")
	if res.err != nil {
		t.Fatalf("parse: %v", res.err)
	}
	if !strings.Contains(res.stdout, "- date: \"2026-02-10\"") {
		t.Errorf("expected a YAML list item, got:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, "content: |-") {
		t.Errorf("expected a block scalar for multi-line content, got:\n%s", res.stdout)
	}
}

func TestParseSave(t *testing.T) {
	d := testutil.NewDataDir(t).Build()
	if res := runCLI(t, d.Path, "", "save", "2026-02-10", "morning run"); res.err != nil {
		t.Fatalf("save: %v", res.err)
	}

	res := runCLI(t, d.Path, bulkText, "--json", "parse", "--stdin", "--save")
	if res.err != nil {
		t.Fatalf("parse --save: %v", res.err)
	}

	var got struct {
		Entries []parsedEntry `json:"entries"`
	}
	decodeResponse(t, res.stdout, &got)
	saved := map[string]string{}
	for _, e := range got.Entries {
		saved[e.Date] = e.Saved
	}
	if saved["2026-02-10"] != actionAppended || saved["2026-02-09"] != actionInserted {
		t.Errorf("unexpected actions: %v", saved)
	}

	d.AssertFileContains(testutil.MasterFile, "morning run\n\n2/10 squat\n5x5 100kg")
	d.AssertBefore(testutil.MasterFile, "## 2026-02-12", "## 2026-02-10")
	d.AssertBefore(testutil.MasterFile, "## 2026-02-10", "## 2026-02-09")
}

func TestRecentRaw(t *testing.T) {
	d := testutil.NewDataDir(t).Build()

	res := runCLI(t, d.Path, "", "recent", "--raw")
	if res.err != nil {
		t.Fatalf("recent: %v", res.err)
	}
	if !strings.Contains(res.stdout, "No workouts saved yet") {
		t.Errorf("expected empty message, got:\n%s", res.stdout)
	}

	if res := runCLI(t, d.Path, "", "save", "2026-02-10", "squat"); res.err != nil {
		t.Fatalf("save: %v", res.err)
	}
	res = runCLI(t, d.Path, "", "recent", "--raw")
	if res.err != nil {
		t.Fatalf("recent: %v", res.err)
	}
	if res.stdout != d.ReadFile(testutil.RecentFile) {
		t.Errorf("recent --raw should print the digest unchanged, got:\n%s", res.stdout)
	}
}

func TestRecentJSON(t *testing.T) {
	d := testutil.NewDataDir(t).Build()
	for _, date := range []string{"2026-02-09", "2026-02-11", "2026-02-10"} {
		if res := runCLI(t, d.Path, "", "save", date, "entry "+date); res.err != nil {
			t.Fatalf("save %s: %v", date, res.err)
		}
	}

	res := runCLI(t, d.Path, "", "--json", "recent")
	if res.err != nil {
		t.Fatalf("recent: %v", res.err)
	}
	var got struct {
		Entries []map[string]string `json:"entries"`
	}
	decodeResponse(t, res.stdout, &got)
	var order []string
	for _, e := range got.Entries {
		order = append(order, e["date"])
	}
	if strings.Join(order, ",") != "2026-02-11,2026-02-10,2026-02-09" {
		t.Errorf("digest order = %v", order)
	}
}

func TestCheckCleanAndBroken(t *testing.T) {
	d := testutil.NewDataDir(t).Build()
	if res := runCLI(t, d.Path, "", "save", "2026-02-10", "squat"); res.err != nil {
		t.Fatalf("save: %v", res.err)
	}

	res := runCLI(t, d.Path, "", "check")
	if res.err != nil {
		t.Fatalf("check on a clean log: %v\n%s", res.err, res.stdout)
	}
	if !strings.Contains(res.stdout, "No issues found") {
		t.Errorf("expected a clean report, got:\n%s", res.stdout)
	}

	d.WriteFile(testutil.MasterFile, "# Iron Secretary Workout Log\n\n## 2026-02-09 (Monday)\nrest\n\n## 2026-02-10 (Tuesday)\nsquat\n")

	res = runCLI(t, d.Path, "", "check")
	if res.err == nil {
		t.Fatalf("expected check to fail on an out of order master, got:\n%s", res.stdout)
	}

	res = runCLI(t, d.Path, "", "--json", "check")
	if res.err != nil {
		t.Fatalf("check --json reports issues as data: %v", res.err)
	}
	var got struct {
		Errors int `json:"errors"`
	}
	resp := decodeResponse(t, res.stdout, &got)
	if got.Errors == 0 {
		t.Errorf("expected errors in the report; out=%s", res.stdout)
	}
	stale := false
	for _, w := range resp.Warnings {
		if w.Code == WarnDigestStale && w.Date == "2026-02-09" {
			stale = true
		}
	}
	if !stale {
		t.Errorf("expected a %s warning for 2026-02-09; out=%s", WarnDigestStale, res.stdout)
	}
}

func TestInitWritesConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "ironlog", "config.toml")
	dataDir := filepath.Join(dir, "data")

	res := runCLIWithConfig(t, configPath, dataDir, "", "init")
	if res.err != nil {
		t.Fatalf("init: %v", res.err)
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), dataDir) {
		t.Errorf("expected data_dir in config, got:\n%s", data)
	}
	if _, err := os.Stat(dataDir); err != nil {
		t.Errorf("expected data dir to be created: %v", err)
	}

	res = runCLIWithConfig(t, configPath, "", "", "--json", "init")
	if res.err != nil {
		t.Fatalf("second init: %v", res.err)
	}
	var got struct {
		Created bool `json:"created"`
	}
	decodeResponse(t, res.stdout, &got)
	if got.Created {
		t.Error("init without --force must not replace an existing config")
	}

	// The written config is picked up without --data-dir.
	if res := runCLIWithConfig(t, configPath, "", "", "save", "2026-02-10", "squat"); res.err != nil {
		t.Fatalf("save with written config: %v", res.err)
	}
	if _, err := os.Stat(filepath.Join(dataDir, testutil.MasterFile)); err != nil {
		t.Errorf("expected master in configured data dir: %v", err)
	}
}

func TestInvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("recent_limit = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := runCLIWithConfig(t, configPath, t.TempDir(), "", "--json", "exists", "2026-02-10")
	if res.err == nil {
		t.Fatal("expected an error for an invalid config")
	}
	resp := decodeResponse(t, res.stdout, nil)
	if resp.Error == nil || resp.Error.Code != ErrConfigInvalid {
		t.Errorf("expected %s; out=%s", ErrConfigInvalid, res.stdout)
	}
}
