// Package session is the single owner of a tracking session's state: the entry
// log, the target, the weekly target and the countdown timer.
//
// A Session is not safe for concurrent use. Every call, including timer ticks,
// must come from the goroutine that drives the session (the TUI update loop or
// the countdown loop of `durok start --no-ui`).
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/balkashynov/durok/internal/db"
	"github.com/balkashynov/durok/internal/logging"
	"github.com/balkashynov/durok/internal/models"
	"github.com/balkashynov/durok/internal/parser"
	"github.com/balkashynov/durok/internal/tracker"
)

// EntryRepository stores the session's entries
type EntryRepository interface {
	Create(entry *models.Entry) error
	Get(id uint) (*models.Entry, error)
	Save(entry *models.Entry) error
	Delete(id uint) error
	List() ([]models.Entry, error)
	Count() (int64, error)
}

// Options configures a new Session. Zero values fall back to defaults.
type Options struct {
	Strategy          parser.Strategy
	Target            parser.Input
	WeeklyTargetHours string
	Clock             tracker.Clock
	Logger            *slog.Logger
	Now               func() time.Time
}

// Session is a single tracking session
type Session struct {
	ID string

	entries  EntryRepository
	strategy parser.Strategy

	target            parser.Input
	weeklyTargetHours string

	timer *tracker.Timer
	log   *slog.Logger
	now   func() time.Time
}

// New creates a session on the given entry log. An empty log gets one empty
// entry, since a session always shows at least one.
func New(entries EntryRepository, opts Options) (*Session, error) {
	s := &Session{
		ID:                uuid.NewString(),
		entries:           entries,
		strategy:          opts.Strategy,
		weeklyTargetHours: tracker.DefaultWeeklyTargetHours,
		log:               opts.Logger,
		now:               opts.Now,
	}
	if s.strategy == nil {
		s.strategy = parser.FreeText{}
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.WeeklyTargetHours != "" {
		s.weeklyTargetHours = parser.SanitizeDigits(opts.WeeklyTargetHours)
	}
	s.log = s.log.With("session", s.ID)
	s.setTarget(opts.Target)

	s.timer = tracker.NewTimer(opts.Clock)
	s.timer.OnExpire(func() {
		s.log.Info("countdown finished")
	})

	count, err := entries.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if _, err := s.AddEntry(); err != nil {
			return nil, err
		}
	}

	s.log.Info("session started", "mode", s.strategy.Name())
	return s, nil
}

// Strategy returns the input strategy used to read durations
func (s *Session) Strategy() parser.Strategy {
	return s.strategy
}

// Entries returns the entry log in insertion order
func (s *Session) Entries() ([]models.Entry, error) {
	return s.entries.List()
}

// AddEntry appends an empty entry attributed to now
func (s *Session) AddEntry() (*models.Entry, error) {
	entry := &models.Entry{CreatedAt: s.now()}
	if err := s.entries.Create(entry); err != nil {
		return nil, err
	}
	s.log.Debug("entry added", "id", entry.ID)
	return entry, nil
}

// RemoveEntry deletes an entry. It is a no-op for unknown ids and for the last
// remaining entry; removed reports whether anything was deleted.
func (s *Session) RemoveEntry(id uint) (removed bool, err error) {
	count, err := s.entries.Count()
	if err != nil {
		return false, err
	}
	if count <= 1 {
		return false, nil
	}

	if err := s.entries.Delete(id); err != nil {
		if errors.Is(err, db.ErrEntryNotFound) {
			return false, nil
		}
		return false, err
	}
	s.log.Debug("entry removed", "id", id)
	return true, nil
}

// EditEntryText replaces an entry's free-text duration
func (s *Session) EditEntryText(id uint, text string) error {
	return s.updateEntry(id, func(e *models.Entry) {
		e.Text = text
	})
}

// EditEntryFields replaces an entry's hour and minute fields, keeping digits only
func (s *Session) EditEntryFields(id uint, hours, minutes string) error {
	return s.updateEntry(id, func(e *models.Entry) {
		e.Hours = parser.SanitizeDigits(hours)
		e.Minutes = parser.SanitizeDigits(minutes)
	})
}

// EditEntryDate changes the date an entry is attributed to
func (s *Session) EditEntryDate(id uint, date time.Time) error {
	return s.updateEntry(id, func(e *models.Entry) {
		e.CreatedAt = date
	})
}

// updateEntry applies fn to an entry and saves it; unknown ids are ignored
func (s *Session) updateEntry(id uint, fn func(*models.Entry)) error {
	entry, err := s.entries.Get(id)
	if errors.Is(err, db.ErrEntryNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	fn(entry)
	if err := s.entries.Save(entry); err != nil {
		return err
	}
	s.log.Debug("entry edited", "id", id, "minutes", s.strategy.Minutes(entry.Input()))
	return nil
}

// Target returns the current target input
func (s *Session) Target() parser.Input {
	return s.target
}

// SetTargetText sets the target as free text
func (s *Session) SetTargetText(text string) {
	s.setTarget(parser.Input{Text: text})
}

// SetTargetFields sets the target as hours and minutes, keeping digits only
func (s *Session) SetTargetFields(hours, minutes string) {
	s.setTarget(parser.Input{Hours: hours, Minutes: minutes})
}

func (s *Session) setTarget(in parser.Input) {
	s.target = parser.Input{
		Text:    in.Text,
		Hours:   parser.SanitizeDigits(in.Hours),
		Minutes: parser.SanitizeDigits(in.Minutes),
	}
	s.log.Debug("target set", "minutes", s.strategy.Minutes(s.target))
}

// WeeklyTargetHours returns the weekly target as a digit string
func (s *Session) WeeklyTargetHours() string {
	return s.weeklyTargetHours
}

// SetWeeklyTargetHours sets the weekly target, keeping digits only
func (s *Session) SetWeeklyTargetHours(hours string) {
	s.weeklyTargetHours = parser.SanitizeDigits(hours)
	s.log.Debug("weekly target set", "hours", s.weeklyTargetHours)
}

// Totals sums the committed entries against the target
func (s *Session) Totals() (tracker.Totals, error) {
	entries, err := s.entries.List()
	if err != nil {
		return tracker.Totals{}, err
	}

	inputs := make([]parser.Input, 0, len(entries))
	for _, entry := range entries {
		inputs = append(inputs, entry.Input())
	}
	return tracker.ComputeTotals(s.strategy, inputs, s.target), nil
}

// DisplayedTotalMinutes is the committed total plus whole minutes accrued by a
// running or paused timer that are not yet converted into an entry
func (s *Session) DisplayedTotalMinutes() (int, error) {
	totals, err := s.Totals()
	if err != nil {
		return 0, err
	}
	return s.timer.DisplayTotal(totals.TotalMinutes), nil
}

// Now returns the current time from the session clock
func (s *Session) Now() time.Time {
	return s.now()
}

// Week aggregates the entries of the current calendar week
func (s *Session) Week() (tracker.WeekSummary, error) {
	entries, err := s.entries.List()
	if err != nil {
		return tracker.WeekSummary{}, err
	}

	dated := make([]tracker.DatedInput, 0, len(entries))
	for _, entry := range entries {
		dated = append(dated, tracker.DatedInput{Input: entry.Input(), Date: entry.CreatedAt})
	}
	return tracker.Week(s.strategy, dated, s.weeklyTargetHours, s.now()), nil
}

// TimerState returns the countdown state
func (s *Session) TimerState() tracker.State {
	return s.timer.State()
}

// RemainingSeconds returns the seconds left on the countdown
func (s *Session) RemainingSeconds() int {
	return s.timer.RemainingSeconds()
}

// AccruedMinutes returns the whole minutes of the current unconverted interval
func (s *Session) AccruedMinutes() int {
	return s.timer.AccruedMinutes()
}

// Start begins a countdown of the remaining minutes. It is ignored unless the
// timer is stopped and there is time remaining.
func (s *Session) Start() (bool, error) {
	if s.timer.State() != tracker.Stopped {
		return false, nil
	}

	totals, err := s.Totals()
	if err != nil {
		return false, err
	}
	if !s.timer.Start(totals.RemainingMinutes) {
		return false, nil
	}

	s.log.Info("timer started", "remaining_minutes", totals.RemainingMinutes)
	return true, nil
}

// Tick advances a running countdown by one second
func (s *Session) Tick() {
	s.timer.Tick()
}

// Pause pauses a running countdown and logs the whole elapsed minutes as a new
// entry. The entry is nil when less than a minute accrued or the timer was not running.
// When the entry cannot be stored the timer keeps running and nothing is converted.
func (s *Session) Pause() (*models.Entry, error) {
	if s.timer.State() != tracker.Running {
		return nil, nil
	}

	var entry *models.Entry
	if minutes := s.timer.AccruedMinutes(); minutes > 0 {
		entry = &models.Entry{CreatedAt: s.now()}
		entry.SetInput(s.strategy.Render(minutes))
		if err := s.entries.Create(entry); err != nil {
			return nil, fmt.Errorf("failed to log accrued time: %w", err)
		}
	}

	accrual, _ := s.timer.Pause()
	if entry == nil {
		s.log.Info("timer paused", "accrued_minutes", 0)
		return nil, nil
	}

	s.log.Info("timer paused",
		"accrued_minutes", accrual.Minutes,
		"leftover_seconds", accrual.LeftoverSeconds,
		"entry", entry.ID)
	return entry, nil
}

// Resume continues a paused countdown
func (s *Session) Resume() bool {
	if !s.timer.Resume() {
		return false
	}
	s.log.Info("timer resumed", "remaining_seconds", s.timer.RemainingSeconds())
	return true
}

// Reset stops the countdown. Entries already logged by pauses are kept.
func (s *Session) Reset() {
	s.timer.Reset()
	s.log.Info("timer reset")
}
