package tracker

import "time"

// State represents the countdown timer state
type State int

const (
	Stopped State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Accrual is the whole-minute conversion produced by a pause
type Accrual struct {
	Minutes         int
	LeftoverSeconds int
}

// Timer counts down toward a target and converts elapsed time into whole minutes.
//
// Elapsed time is measured against a baseline: the remaining seconds at the start of
// the current accrual interval. Pausing converts whole elapsed minutes and folds the
// sub-minute leftover back into the baseline, so nothing is lost across cycles.
//
// Timer is not safe for concurrent use. Ticks from the Clock must be delivered on the
// same goroutine that drives the transitions (see LoopClock).
type Timer struct {
	clock Clock

	state            State
	remainingSeconds int
	baselineSeconds  int

	// cancelTick is non-nil only while Running
	cancelTick func()
	generation uint64

	onExpire func()
}

// NewTimer creates a stopped timer. A nil clock means ticks only arrive through Tick.
func NewTimer(clock Clock) *Timer {
	return &Timer{clock: clock}
}

// OnExpire registers fn to run when the countdown reaches zero
func (t *Timer) OnExpire(fn func()) {
	t.onExpire = fn
}

// State returns the current state
func (t *Timer) State() State {
	return t.state
}

// RemainingSeconds returns the seconds left on the countdown
func (t *Timer) RemainingSeconds() int {
	return t.remainingSeconds
}

// BaselineSeconds returns the remaining seconds at the start of the current accrual interval
func (t *Timer) BaselineSeconds() int {
	return t.baselineSeconds
}

// ElapsedSeconds returns the seconds accrued in the current, not yet converted interval
func (t *Timer) ElapsedSeconds() int {
	if t.state == Stopped {
		return 0
	}
	return t.baselineSeconds - t.remainingSeconds
}

// AccruedMinutes returns the whole minutes of the current interval
func (t *Timer) AccruedMinutes() int {
	return t.ElapsedSeconds() / 60
}

// DisplayTotal adds the live accrued minutes on top of the committed total
func (t *Timer) DisplayTotal(committedMinutes int) int {
	return committedMinutes + t.AccruedMinutes()
}

// Start begins a countdown of remainingMinutes. It is ignored unless the timer is
// stopped and remainingMinutes is positive.
func (t *Timer) Start(remainingMinutes int) bool {
	if t.state != Stopped || remainingMinutes <= 0 {
		return false
	}

	startSeconds := remainingMinutes * 60
	t.remainingSeconds = startSeconds
	t.baselineSeconds = startSeconds
	t.state = Running
	t.arm()
	return true
}

// Tick advances a running countdown by one second
func (t *Timer) Tick() {
	t.tick(t.generation)
}

func (t *Timer) tick(generation uint64) {
	// Ticks from a cancelled source must not decrement
	if generation != t.generation || t.state != Running {
		return
	}

	if t.remainingSeconds > 0 {
		t.remainingSeconds--
	}

	if t.remainingSeconds == 0 {
		t.state = Stopped
		t.disarm()
		if t.onExpire != nil {
			t.onExpire()
		}
	}
}

// Pause stops the countdown and converts whole elapsed minutes. ok is false when
// the timer was not running. Accrual.Minutes is 0 when less than a minute elapsed,
// in which case the baseline is left alone.
func (t *Timer) Pause() (accrual Accrual, ok bool) {
	if t.state != Running {
		return Accrual{}, false
	}

	elapsed := t.baselineSeconds - t.remainingSeconds
	if whole := elapsed / 60; whole > 0 {
		leftover := elapsed % 60
		t.baselineSeconds = t.remainingSeconds + leftover
		accrual = Accrual{Minutes: whole, LeftoverSeconds: leftover}
	}

	t.state = Paused
	t.disarm()
	return accrual, true
}

// Resume continues a paused countdown from where it left off
func (t *Timer) Resume() bool {
	if t.state != Paused {
		return false
	}
	t.state = Running
	t.arm()
	return true
}

// Reset stops the timer and clears the countdown from any state
func (t *Timer) Reset() {
	t.disarm()
	t.state = Stopped
	t.remainingSeconds = 0
	t.baselineSeconds = 0
}

// arm cancels any previous tick source before arming a new one
func (t *Timer) arm() {
	t.disarm()
	if t.clock == nil {
		return
	}
	generation := t.generation
	t.cancelTick = t.clock.Every(time.Second, func() {
		t.tick(generation)
	})
}

func (t *Timer) disarm() {
	if t.cancelTick != nil {
		t.cancelTick()
		t.cancelTick = nil
	}
	t.generation++
}
