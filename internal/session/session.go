// Package session drives a capture conversation: pick body-part areas,
// confirm or correct the date, resolve a conflict with an existing entry,
// then hand the composed entry to the log store.
//
// Sessions are plain values. Every transition returns a new Session and the
// Machine persists it by id, so no per-chat global state is needed.
package session

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// State is a step of the capture conversation.
type State string

const (
	StateSelectingAreas    State = "selecting_areas"
	StateConfirmingDate    State = "confirming_date"
	StateEditingDate       State = "editing_date"
	StateResolvingConflict State = "resolving_conflict"
	StateDone              State = "done"
	StateCancelled         State = "cancelled"
)

// Terminal reports whether no further events are accepted.
func (s State) Terminal() bool {
	return s == StateDone || s == StateCancelled
}

// Outcome records how a finished session changed the log.
type Outcome string

const (
	OutcomeNone        Outcome = ""
	OutcomeSaved       Outcome = "saved"
	OutcomeAppended    Outcome = "appended"
	OutcomeOverwritten Outcome = "overwritten"
	OutcomeCancelled   Outcome = "cancelled"
)

// EventKind names a user action.
type EventKind string

const (
	EventToggleArea  EventKind = "toggle_area"
	EventFinishAreas EventKind = "finish_areas"
	EventConfirmSave EventKind = "confirm_save"
	EventEditDate    EventKind = "edit_date"
	EventSubmitDate  EventKind = "submit_date"
	EventAppend      EventKind = "append"
	EventOverwrite   EventKind = "overwrite"
	EventCancel      EventKind = "cancel"
)

// Event is a user action with its optional argument (area id, date text).
type Event struct {
	Kind  EventKind
	Value string
}

// ToggleArea selects or deselects an area by id.
func ToggleArea(id string) Event { return Event{Kind: EventToggleArea, Value: id} }

// FinishAreas ends area selection.
func FinishAreas() Event { return Event{Kind: EventFinishAreas} }

// ConfirmSave accepts the proposed date.
func ConfirmSave() Event { return Event{Kind: EventConfirmSave} }

// EditDate asks to correct the proposed date.
func EditDate() Event { return Event{Kind: EventEditDate} }

// SubmitDate supplies a corrected date (YYYY-MM-DD, M/D, 오늘, 어제).
func SubmitDate(text string) Event { return Event{Kind: EventSubmitDate, Value: text} }

// ChooseAppend resolves a conflict by appending to the existing entry.
func ChooseAppend() Event { return Event{Kind: EventAppend} }

// ChooseOverwrite resolves a conflict by replacing the existing entry.
func ChooseOverwrite() Event { return Event{Kind: EventOverwrite} }

// Cancel abandons the session from any non-terminal state.
func Cancel() Event { return Event{Kind: EventCancel} }

func (e Event) String() string {
	return strings.TrimSpace(string(e.Kind) + " " + e.Value)
}

var (
	// ErrNotFound is returned when no session is stored under an id.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidEvent is returned when an event is not accepted in the current state.
	ErrInvalidEvent = errors.New("event not valid in current state")
	// ErrClosed is returned for events sent to a finished session.
	ErrClosed = errors.New("session already finished")
	// ErrUnauthorized is returned when a user other than the allowed one starts a session.
	ErrUnauthorized = errors.New("user not allowed")
)

// Session is the payload carried through the conversation.
type Session struct {
	ID        string    `yaml:"id"`
	User      string    `yaml:"user,omitempty"`
	State     State     `yaml:"state"`
	Text      string    `yaml:"text"`
	Date      string    `yaml:"date"`
	Areas     []string  `yaml:"areas,omitempty"`
	Outcome   Outcome   `yaml:"outcome,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// with returns a copy of s that shares nothing mutable with it.
func (s Session) with(fn func(*Session)) Session {
	next := s
	next.Areas = slices.Clone(s.Areas)
	fn(&next)
	return next
}

// HasArea reports whether area id is selected.
func (s Session) HasArea(id string) bool {
	return slices.Contains(s.Areas, id)
}

// Compose renders the block written to the log for a finished capture.
func Compose(at time.Time, areaLabels []string, text string) string {
	return fmt.Sprintf("### [%s] 운동 부위: %s\n\n### 운동 종목\n%s",
		at.Format("15:04:05"), strings.Join(areaLabels, ", "), text)
}
