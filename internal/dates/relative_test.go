package dates

import (
	"testing"
	"time"
)

func TestNormalizeRelativeDateKeyword(t *testing.T) {
	if got, ok := NormalizeRelativeDateKeyword(" today "); !ok || got != "today" {
		t.Fatalf("NormalizeRelativeDateKeyword(today) = %q, %v", got, ok)
	}
	if got, ok := NormalizeRelativeDateKeyword("어제"); !ok || got != "어제" {
		t.Fatalf("NormalizeRelativeDateKeyword(어제) = %q, %v", got, ok)
	}
	if _, ok := NormalizeRelativeDateKeyword("this-week"); ok {
		t.Fatalf("expected this-week to be rejected")
	}
}

func TestResolveRelativeDateKeyword(t *testing.T) {
	now := time.Date(2026, time.March, 1, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		keyword string
		want    string
	}{
		{"today", "2026-03-01"},
		{"tomorrow", "2026-03-02"},
		{"yesterday", "2026-02-28"},
		{"오늘", "2026-03-01"},
		{"어제", "2026-02-28"},
		{"내일", "2026-03-02"},
	}
	for _, tt := range tests {
		res, ok := ResolveRelativeDateKeyword(tt.keyword, now)
		if !ok {
			t.Fatalf("expected %q to resolve", tt.keyword)
		}
		if got := Format(res.Date); got != tt.want {
			t.Errorf("%s resolved to %s, want %s", tt.keyword, got, tt.want)
		}
	}
}
