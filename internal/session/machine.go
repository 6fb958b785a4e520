package session

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aidanlsb/ironlog/internal/dates"
	"github.com/aidanlsb/ironlog/internal/extract"
)

// LogStore is the part of the log store a capture needs.
type LogStore interface {
	Exists(date string) (bool, error)
	Save(date, content string) error
	Overwrite(date, content string) error
}

// Machine applies events to persisted sessions.
type Machine struct {
	logs        LogStore
	sessions    Store
	catalog     *Catalog
	now         func() time.Time
	allowedUser string
	logger      *slog.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock sets the clock used for default dates, timestamps and M/D years.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		if now != nil {
			m.now = now
		}
	}
}

// WithCatalog sets the selectable areas.
func WithCatalog(c *Catalog) Option {
	return func(m *Machine) {
		if c != nil {
			m.catalog = c
		}
	}
}

// WithAllowedUser restricts Start to one user id. Empty allows everyone.
func WithAllowedUser(user string) Option {
	return func(m *Machine) {
		m.allowedUser = strings.TrimSpace(user)
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMachine returns a Machine writing to logs and persisting into sessions.
func NewMachine(logs LogStore, sessions Store, opts ...Option) *Machine {
	m := &Machine{
		logs:     logs,
		sessions: sessions,
		catalog:  NewCatalog(DefaultAreas),
		now:      time.Now,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Catalog returns the selectable areas.
func (m *Machine) Catalog() *Catalog {
	return m.catalog
}

// Start opens a session for text. The proposed date is the earliest date
// mentioned in the text, or today.
func (m *Machine) Start(id, user, text string) (Session, error) {
	if m.allowedUser != "" && user != m.allowedUser {
		m.logger.Warn("capture refused", "session", id, "user", user)
		return Session{}, fmt.Errorf("%w: %s", ErrUnauthorized, user)
	}

	now := m.now()
	date, ok := extract.Earliest(extract.New(m.now).Parse(text))
	if !ok {
		date = dates.Format(now)
	}

	s := Session{
		ID:        id,
		User:      user,
		State:     StateSelectingAreas,
		Text:      text,
		Date:      date,
		UpdatedAt: now,
	}
	if err := m.sessions.Put(s); err != nil {
		return Session{}, fmt.Errorf("failed to store session: %w", err)
	}
	m.logger.Debug("capture started", "session", id, "date", date)
	return s, nil
}

// Get returns the stored session for id.
func (m *Machine) Get(id string) (Session, error) {
	return m.sessions.Get(id)
}

// Handle applies ev to the session stored under id and persists the result.
// Finished sessions are removed from the store and returned one last time.
// On error the stored session is left unchanged.
func (m *Machine) Handle(id string, ev Event) (Session, error) {
	s, err := m.sessions.Get(id)
	if err != nil {
		return Session{}, err
	}
	if s.State.Terminal() {
		return s, ErrClosed
	}

	next, err := m.transition(s, ev)
	if err != nil {
		return s, err
	}
	next.UpdatedAt = m.now()

	m.logger.Debug("capture transition", "session", id, "event", ev.String(), "from", s.State, "to", next.State)

	if next.State.Terminal() {
		if err := m.sessions.Delete(id); err != nil {
			return next, fmt.Errorf("failed to remove session: %w", err)
		}
		return next, nil
	}
	if err := m.sessions.Put(next); err != nil {
		return s, fmt.Errorf("failed to store session: %w", err)
	}
	return next, nil
}

func (m *Machine) transition(s Session, ev Event) (Session, error) {
	if ev.Kind == EventCancel {
		return s.with(func(n *Session) {
			n.State = StateCancelled
			n.Outcome = OutcomeCancelled
		}), nil
	}

	switch s.State {
	case StateSelectingAreas:
		switch ev.Kind {
		case EventToggleArea:
			if _, ok := m.catalog.Lookup(ev.Value); !ok {
				return s, fmt.Errorf("%w: unknown area %q", ErrInvalidEvent, ev.Value)
			}
			return s.with(func(n *Session) { n.Areas = toggle(n.Areas, ev.Value) }), nil
		case EventFinishAreas:
			return s.with(func(n *Session) { n.State = StateConfirmingDate }), nil
		}

	case StateConfirmingDate:
		switch ev.Kind {
		case EventConfirmSave:
			exists, err := m.logs.Exists(s.Date)
			if err != nil {
				return s, err
			}
			if exists {
				return s.with(func(n *Session) { n.State = StateResolvingConflict }), nil
			}
			return m.commit(s, OutcomeSaved)
		case EventEditDate:
			return s.with(func(n *Session) { n.State = StateEditingDate }), nil
		}

	case StateEditingDate:
		if ev.Kind == EventSubmitDate {
			if strings.TrimSpace(ev.Value) == "" {
				return s, fmt.Errorf("%w: empty", dates.ErrInvalidDate)
			}
			date, err := dates.NormalizeDateArg(ev.Value, m.now())
			if err != nil {
				return s, err
			}
			return s.with(func(n *Session) {
				n.Date = date
				n.State = StateConfirmingDate
			}), nil
		}

	case StateResolvingConflict:
		switch ev.Kind {
		case EventAppend:
			return m.commit(s, OutcomeAppended)
		case EventOverwrite:
			return m.commit(s, OutcomeOverwritten)
		}
	}

	return s, fmt.Errorf("%w: %s in %s", ErrInvalidEvent, ev.Kind, s.State)
}

func (m *Machine) commit(s Session, outcome Outcome) (Session, error) {
	content := Compose(m.now(), m.catalog.Labels(s.Areas), s.Text)

	var err error
	if outcome == OutcomeOverwritten {
		err = m.logs.Overwrite(s.Date, content)
	} else {
		err = m.logs.Save(s.Date, content)
	}
	if err != nil {
		return s, err
	}

	m.logger.Info("capture saved", "session", s.ID, "date", s.Date, "outcome", outcome)
	return s.with(func(n *Session) {
		n.State = StateDone
		n.Outcome = outcome
	}), nil
}

func toggle(ids []string, id string) []string {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}
