package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aidanlsb/ironlog/internal/dates"
)

type call struct {
	op      string
	date    string
	content string
}

type fakeLogs struct {
	existing map[string]bool
	calls    []call
	failNext error
}

func (f *fakeLogs) Exists(date string) (bool, error) {
	return f.existing[date], nil
}

func (f *fakeLogs) Save(date, content string) error {
	return f.record("save", date, content)
}

func (f *fakeLogs) Overwrite(date, content string) error {
	return f.record("overwrite", date, content)
}

func (f *fakeLogs) record(op, date, content string) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	f.calls = append(f.calls, call{op, date, content})
	return nil
}

var testNow = time.Date(2026, time.February, 14, 13, 41, 17, 0, time.UTC)

func newTestMachine(logs *fakeLogs, opts ...Option) *Machine {
	opts = append([]Option{
		WithClock(func() time.Time { return testNow }),
		WithCatalog(NewCatalog([]string{"Chest", "Back", "Legs"})),
	}, opts...)
	return NewMachine(logs, NewMemoryStore(), opts...)
}

func mustHandle(t *testing.T, m *Machine, id string, ev Event) Session {
	t.Helper()
	s, err := m.Handle(id, ev)
	if err != nil {
		t.Fatalf("Handle(%s): %v", ev, err)
	}
	return s
}

func TestCaptureNewDate(t *testing.T) {
	logs := &fakeLogs{}
	m := newTestMachine(logs)

	s, err := m.Start("chat-1", "", "2/10 upper\nbench 60kg\n2/9 lower")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.State != StateSelectingAreas || s.Date != "2026-02-09" {
		t.Fatalf("Start = %+v, want earliest date 2026-02-09", s)
	}

	mustHandle(t, m, "chat-1", ToggleArea("chest"))
	mustHandle(t, m, "chat-1", ToggleArea("legs"))
	mustHandle(t, m, "chat-1", ToggleArea("back"))
	s = mustHandle(t, m, "chat-1", ToggleArea("legs"))
	if strings.Join(s.Areas, ",") != "chest,back" {
		t.Fatalf("areas = %v", s.Areas)
	}

	s = mustHandle(t, m, "chat-1", FinishAreas())
	if s.State != StateConfirmingDate {
		t.Fatalf("state = %s", s.State)
	}

	s = mustHandle(t, m, "chat-1", ConfirmSave())
	if s.State != StateDone || s.Outcome != OutcomeSaved {
		t.Fatalf("final = %+v", s)
	}
	if len(logs.calls) != 1 || logs.calls[0].op != "save" || logs.calls[0].date != "2026-02-09" {
		t.Fatalf("calls = %+v", logs.calls)
	}
	want := "### [13:41:17] 운동 부위: Chest, Back\n\n### 운동 종목\n2/10 upper\nbench 60kg\n2/9 lower"
	if logs.calls[0].content != want {
		t.Fatalf("content = %q, want %q", logs.calls[0].content, want)
	}

	if _, err := m.Get("chat-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("finished session should be removed, got %v", err)
	}
}

func TestCaptureDefaultsToToday(t *testing.T) {
	m := newTestMachine(&fakeLogs{})
	s, err := m.Start("c", "", "no date here")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Date != "2026-02-14" {
		t.Fatalf("date = %s, want today", s.Date)
	}
}

func TestCaptureConflictResolution(t *testing.T) {
	tests := []struct {
		name    string
		choice  Event
		op      string
		outcome Outcome
	}{
		{"append", ChooseAppend(), "save", OutcomeAppended},
		{"overwrite", ChooseOverwrite(), "overwrite", OutcomeOverwritten},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := &fakeLogs{existing: map[string]bool{"2026-02-10": true}}
			m := newTestMachine(logs)
			if _, err := m.Start("c", "", "2/10 chest"); err != nil {
				t.Fatalf("Start: %v", err)
			}
			mustHandle(t, m, "c", FinishAreas())
			s := mustHandle(t, m, "c", ConfirmSave())
			if s.State != StateResolvingConflict {
				t.Fatalf("state = %s, want conflict", s.State)
			}
			if len(logs.calls) != 0 {
				t.Fatalf("nothing should be written before the conflict is resolved")
			}
			s = mustHandle(t, m, "c", tt.choice)
			if s.Outcome != tt.outcome || len(logs.calls) != 1 || logs.calls[0].op != tt.op {
				t.Fatalf("outcome = %s, calls = %+v", s.Outcome, logs.calls)
			}
		})
	}
}

func TestCaptureCancelFromConflict(t *testing.T) {
	logs := &fakeLogs{existing: map[string]bool{"2026-02-10": true}}
	m := newTestMachine(logs)
	if _, err := m.Start("c", "", "2/10"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	mustHandle(t, m, "c", FinishAreas())
	mustHandle(t, m, "c", ConfirmSave())
	s := mustHandle(t, m, "c", Cancel())
	if s.State != StateCancelled || s.Outcome != OutcomeCancelled {
		t.Fatalf("final = %+v", s)
	}
	if len(logs.calls) != 0 {
		t.Fatalf("cancel must not write, calls = %+v", logs.calls)
	}
	if _, err := m.Handle("c", ConfirmSave()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after cancel, got %v", err)
	}
}

func TestCaptureEditDate(t *testing.T) {
	logs := &fakeLogs{}
	m := newTestMachine(logs)
	if _, err := m.Start("c", "", "2/10"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	mustHandle(t, m, "c", FinishAreas())
	s := mustHandle(t, m, "c", EditDate())
	if s.State != StateEditingDate {
		t.Fatalf("state = %s", s.State)
	}

	for _, bad := range []string{"", "someday", "2/30"} {
		s, err := m.Handle("c", SubmitDate(bad))
		if !errors.Is(err, dates.ErrInvalidDate) {
			t.Fatalf("SubmitDate(%q) err = %v, want ErrInvalidDate", bad, err)
		}
		if s.State != StateEditingDate {
			t.Fatalf("invalid date should keep editing, state = %s", s.State)
		}
	}

	s = mustHandle(t, m, "c", SubmitDate("어제"))
	if s.State != StateConfirmingDate || s.Date != "2026-02-13" {
		t.Fatalf("after submit = %+v", s)
	}
	s = mustHandle(t, m, "c", EditDate())
	s = mustHandle(t, m, "c", SubmitDate("2026-01-05"))
	if s.Date != "2026-01-05" {
		t.Fatalf("date = %s", s.Date)
	}
	mustHandle(t, m, "c", ConfirmSave())
	if logs.calls[0].date != "2026-01-05" {
		t.Fatalf("saved under %s", logs.calls[0].date)
	}
}

func TestCaptureRejectsInvalidEvents(t *testing.T) {
	m := newTestMachine(&fakeLogs{})
	if _, err := m.Start("c", "", "2/10"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	invalid := []Event{ConfirmSave(), ChooseAppend(), SubmitDate("2/1"), ToggleArea("arms")}
	for _, ev := range invalid {
		s, err := m.Handle("c", ev)
		if !errors.Is(err, ErrInvalidEvent) {
			t.Fatalf("Handle(%s) err = %v, want ErrInvalidEvent", ev, err)
		}
		if s.State != StateSelectingAreas {
			t.Fatalf("state changed to %s", s.State)
		}
	}
}

func TestCaptureWriteFailureKeepsState(t *testing.T) {
	writeErr := errors.New("disk full")
	logs := &fakeLogs{failNext: writeErr}
	m := newTestMachine(logs)
	if _, err := m.Start("c", "", "2/10"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	mustHandle(t, m, "c", FinishAreas())
	if _, err := m.Handle("c", ConfirmSave()); !errors.Is(err, writeErr) {
		t.Fatalf("expected write error, got %v", err)
	}
	stored, err := m.Get("c")
	if err != nil || stored.State != StateConfirmingDate {
		t.Fatalf("stored = %+v, %v", stored, err)
	}
	s := mustHandle(t, m, "c", ConfirmSave())
	if s.Outcome != OutcomeSaved {
		t.Fatalf("retry outcome = %s", s.Outcome)
	}
}

func TestAllowedUser(t *testing.T) {
	m := newTestMachine(&fakeLogs{}, WithAllowedUser("42"))
	if _, err := m.Start("c", "7", "2/10"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := m.Start("c", "42", "2/10"); err != nil {
		t.Fatalf("allowed user rejected: %v", err)
	}
}

func TestSessionsAreIndependentValues(t *testing.T) {
	m := newTestMachine(&fakeLogs{})
	if _, err := m.Start("c", "", "2/10"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	first := mustHandle(t, m, "c", ToggleArea("chest"))
	second := mustHandle(t, m, "c", ToggleArea("back"))
	if len(first.Areas) != 1 || len(second.Areas) != 2 {
		t.Fatalf("earlier session value was mutated: %v / %v", first.Areas, second.Areas)
	}
}
