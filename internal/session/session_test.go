package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/durok/internal/db"
	"github.com/balkashynov/durok/internal/models"
	"github.com/balkashynov/durok/internal/parser"
	"github.com/balkashynov/durok/internal/tracker"
)

// Wednesday
var testNow = time.Date(2026, 10, 21, 14, 30, 0, 0, time.Local)

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()

	conn, err := db.Open()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	s, err := New(db.NewEntryStore(conn), opts)
	require.NoError(t, err)
	return s
}

func tickN(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

func TestNew_StartsWithOneEmptyEntry(t *testing.T) {
	s := newTestSession(t, Options{})

	entries, err := s.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "", entries[0].Text)
	assert.True(t, entries[0].CreatedAt.Equal(testNow))

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "40", s.WeeklyTargetHours())
	assert.Equal(t, tracker.Stopped, s.TimerState())
	assert.Equal(t, parser.ModeText, s.Strategy().Name())
}

func TestTotals_SumAgainstTarget(t *testing.T) {
	s := newTestSession(t, Options{Target: parser.Input{Text: "4h"}})

	entries, err := s.Entries()
	require.NoError(t, err)
	require.NoError(t, s.EditEntryText(entries[0].ID, "1h"))

	second, err := s.AddEntry()
	require.NoError(t, err)
	require.NoError(t, s.EditEntryText(second.ID, "2h 30m"))

	totals, err := s.Totals()
	require.NoError(t, err)
	assert.Equal(t, 210, totals.TotalMinutes)
	assert.Equal(t, 240, totals.TargetMinutes)
	assert.Equal(t, 30, totals.RemainingMinutes)
	assert.Equal(t, "0h 30m remaining", totals.RemainingText())
}

func TestRemoveEntry_KeepsLastEntry(t *testing.T) {
	s := newTestSession(t, Options{})

	entries, err := s.Entries()
	require.NoError(t, err)

	removed, err := s.RemoveEntry(entries[0].ID)
	require.NoError(t, err)
	assert.False(t, removed)

	after, err := s.Entries()
	require.NoError(t, err)
	assert.Len(t, after, 1)
}

func TestRemoveEntry_UnknownIDIsNoop(t *testing.T) {
	s := newTestSession(t, Options{})
	_, err := s.AddEntry()
	require.NoError(t, err)

	removed, err := s.RemoveEntry(999)
	require.NoError(t, err)
	assert.False(t, removed)

	entries, err := s.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRemoveEntry_IDsNeverReused(t *testing.T) {
	s := newTestSession(t, Options{})

	second, err := s.AddEntry()
	require.NoError(t, err)

	removed, err := s.RemoveEntry(second.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	third, err := s.AddEntry()
	require.NoError(t, err)
	assert.Greater(t, third.ID, second.ID)
}

func TestEditEntry_UnknownIDIsNoop(t *testing.T) {
	s := newTestSession(t, Options{})

	assert.NoError(t, s.EditEntryText(42, "1h"))
	assert.NoError(t, s.EditEntryFields(42, "1", "0"))
	assert.NoError(t, s.EditEntryDate(42, testNow))

	totals, err := s.Totals()
	require.NoError(t, err)
	assert.Equal(t, 0, totals.TotalMinutes)
}

func TestEditEntryFields_Sanitizes(t *testing.T) {
	s := newTestSession(t, Options{Strategy: parser.Structured{}})

	entries, err := s.Entries()
	require.NoError(t, err)
	require.NoError(t, s.EditEntryFields(entries[0].ID, "1a", "-30"))

	entries, err = s.Entries()
	require.NoError(t, err)
	assert.Equal(t, "1", entries[0].Hours)
	assert.Equal(t, "30", entries[0].Minutes)

	totals, err := s.Totals()
	require.NoError(t, err)
	assert.Equal(t, 90, totals.TotalMinutes)
}

func TestTargetAndWeeklySetters_Sanitize(t *testing.T) {
	s := newTestSession(t, Options{})

	s.SetTargetFields("x2", "15m")
	assert.Equal(t, parser.Input{Hours: "2", Minutes: "15"}, s.Target())

	s.SetTargetText("3h")
	assert.Equal(t, parser.Input{Text: "3h"}, s.Target())

	s.SetWeeklyTargetHours("3 5h")
	assert.Equal(t, "35", s.WeeklyTargetHours())
}

func TestStart_RequiresRemainingTime(t *testing.T) {
	s := newTestSession(t, Options{})

	started, err := s.Start()
	require.NoError(t, err)
	assert.False(t, started, "no target means nothing to count down")

	s.SetTargetText("1h")
	entries, err := s.Entries()
	require.NoError(t, err)
	require.NoError(t, s.EditEntryText(entries[0].ID, "2h"))

	started, err = s.Start()
	require.NoError(t, err)
	assert.False(t, started, "exceeded target")
}

func TestPauseResume_LogsWholeMinutes(t *testing.T) {
	s := newTestSession(t, Options{Target: parser.Input{Text: "10m"}})

	started, err := s.Start()
	require.NoError(t, err)
	require.True(t, started)
	assert.Equal(t, 600, s.RemainingSeconds())

	tickN(s, 65)
	assert.Equal(t, 1, s.AccruedMinutes())
	display, err := s.DisplayedTotalMinutes()
	require.NoError(t, err)
	assert.Equal(t, 1, display)

	entry, err := s.Pause()
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "0h 1m", entry.Text)
	assert.True(t, entry.CreatedAt.Equal(testNow))
	assert.Equal(t, tracker.Paused, s.TimerState())

	// The 5 second leftover carries into the next interval
	require.True(t, s.Resume())
	tickN(s, 60)
	entry, err = s.Pause()
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 1, parser.ParseDuration(entry.Text))

	entries, err := s.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	totals, err := s.Totals()
	require.NoError(t, err)
	assert.Equal(t, 2, totals.TotalMinutes)
	assert.Equal(t, 8, totals.RemainingMinutes)
	assert.Equal(t, 475, s.RemainingSeconds())
}

func TestPause_UnderAMinuteLogsNothing(t *testing.T) {
	s := newTestSession(t, Options{Target: parser.Input{Text: "5m"}})

	_, err := s.Start()
	require.NoError(t, err)
	tickN(s, 59)

	entry, err := s.Pause()
	require.NoError(t, err)
	assert.Nil(t, entry)

	entries, err := s.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPause_StructuredModeRendersFields(t *testing.T) {
	s := newTestSession(t, Options{
		Strategy: parser.Structured{},
		Target:   parser.Input{Hours: "2"},
	})

	_, err := s.Start()
	require.NoError(t, err)
	tickN(s, 90*60)

	entry, err := s.Pause()
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "1", entry.Hours)
	assert.Equal(t, "30", entry.Minutes)
	assert.Equal(t, "", entry.Text)
}

// failingStore rejects new entries while failCreate is set
type failingStore struct {
	*db.EntryStore
	failCreate bool
}

func (f *failingStore) Create(entry *models.Entry) error {
	if f.failCreate {
		return errors.New("disk full")
	}
	return f.EntryStore.Create(entry)
}

func TestPause_StoreFailureKeepsAccruedTime(t *testing.T) {
	conn, err := db.Open()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})

	store := &failingStore{EntryStore: db.NewEntryStore(conn)}
	s, err := New(store, Options{
		Target: parser.Input{Text: "10m"},
		Now:    func() time.Time { return testNow },
	})
	require.NoError(t, err)

	_, err = s.Start()
	require.NoError(t, err)
	tickN(s, 90)

	store.failCreate = true
	entry, err := s.Pause()
	assert.Error(t, err)
	assert.Nil(t, entry)
	assert.Equal(t, tracker.Running, s.TimerState())
	assert.Equal(t, 1, s.AccruedMinutes())

	store.failCreate = false
	entry, err = s.Pause()
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "0h 1m", entry.Text)

	totals, err := s.Totals()
	require.NoError(t, err)
	assert.Equal(t, 1, totals.TotalMinutes)
}

func TestPause_NotRunningIsNoop(t *testing.T) {
	s := newTestSession(t, Options{})

	entry, err := s.Pause()
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.False(t, s.Resume())
}

func TestCountdown_ConservesElapsedTime(t *testing.T) {
	s := newTestSession(t, Options{Target: parser.Input{Text: "1h"}})

	_, err := s.Start()
	require.NoError(t, err)

	runs := []int{61, 7, 59, 130, 1, 45, 300, 18}
	ticked := 0
	for i, n := range runs {
		if i > 0 {
			require.True(t, s.Resume())
		}
		tickN(s, n)
		ticked += n
		_, err := s.Pause()
		require.NoError(t, err)
	}

	totals, err := s.Totals()
	require.NoError(t, err)
	assert.Equal(t, ticked/60, totals.TotalMinutes)
	assert.Equal(t, 3600-ticked, s.RemainingSeconds())
}

func TestCountdown_AutoStopsWithoutLogging(t *testing.T) {
	s := newTestSession(t, Options{Target: parser.Input{Text: "2m"}})

	_, err := s.Start()
	require.NoError(t, err)
	tickN(s, 120)

	assert.Equal(t, tracker.Stopped, s.TimerState())
	assert.Equal(t, 0, s.RemainingSeconds())

	entries, err := s.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReset_KeepsLoggedEntries(t *testing.T) {
	s := newTestSession(t, Options{Target: parser.Input{Text: "10m"}})

	_, err := s.Start()
	require.NoError(t, err)
	tickN(s, 120)
	_, err = s.Pause()
	require.NoError(t, err)

	s.Reset()
	assert.Equal(t, tracker.Stopped, s.TimerState())
	assert.Equal(t, 0, s.RemainingSeconds())

	totals, err := s.Totals()
	require.NoError(t, err)
	assert.Equal(t, 2, totals.TotalMinutes)
}

func TestWeek_UsesEntryDates(t *testing.T) {
	s := newTestSession(t, Options{WeeklyTargetHours: "8"})

	entries, err := s.Entries()
	require.NoError(t, err)
	first := entries[0].ID
	require.NoError(t, s.EditEntryText(first, "2h"))

	monday, err := s.AddEntry()
	require.NoError(t, err)
	require.NoError(t, s.EditEntryText(monday.ID, "1h 30m"))
	require.NoError(t, s.EditEntryDate(monday.ID, testNow.AddDate(0, 0, -2)))

	lastWeek, err := s.AddEntry()
	require.NoError(t, err)
	require.NoError(t, s.EditEntryText(lastWeek.ID, "5h"))
	require.NoError(t, s.EditEntryDate(lastWeek.ID, testNow.AddDate(0, 0, -7)))

	week, err := s.Week()
	require.NoError(t, err)
	assert.Equal(t, 90, week.Days[0].Minutes)
	assert.Equal(t, 120, week.Days[2].Minutes)
	assert.Equal(t, 210, week.TotalMinutes)
	assert.Equal(t, 480, week.TargetMinutes)
	assert.Equal(t, 270, week.RemainingWeeklyMinutes)
}
