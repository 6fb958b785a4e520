package ui

import (
	"strings"
	"testing"
)

func TestTableAlignsWideCharacters(t *testing.T) {
	tbl := NewTable(2)
	tbl.AddRow("가슴", "bench")
	tbl.AddRow("legs", "squat")

	lines := strings.Split(strings.TrimRight(tbl.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	// "가슴" is four cells wide, so both rows put the second column at cell 6.
	if lines[0] != "가슴  bench" || lines[1] != "legs  squat" {
		t.Fatalf("table = %q", lines)
	}
}

func TestTableTruncatesLastColumn(t *testing.T) {
	tbl := NewTable(2)
	tbl.SetMaxWidth(12)
	tbl.AddRow("2026-02-10", "a long line of text")
	got := strings.TrimRight(tbl.String(), "\n")
	// The date column plus padding leaves no room, so only the marker remains.
	if got != "2026-02-10  …" {
		t.Fatalf("table = %q", got)
	}

	tbl = NewTable(2)
	tbl.SetMaxWidth(18)
	tbl.AddRow("a", "abcdefghijklmnopqrstuvwxyz")
	got = strings.TrimRight(tbl.String(), "\n")
	if got != "a  abcdefghijklmn…" {
		t.Fatalf("table = %q", got)
	}
}

func TestTableEmpty(t *testing.T) {
	if got := NewTable(3).String(); got != "" {
		t.Fatalf("empty table = %q", got)
	}
}

func TestCheckbox(t *testing.T) {
	if got := Checkbox(true, "Chest"); !strings.HasSuffix(got, " Chest") || !strings.Contains(got, SymbolChecked) {
		t.Fatalf("checked = %q", got)
	}
	if got := Checkbox(false, "Chest"); !strings.Contains(got, SymbolBlank) {
		t.Fatalf("unchecked = %q", got)
	}
}
