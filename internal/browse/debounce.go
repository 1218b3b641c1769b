package browse

import "time"

// DefaultDebounce is the quiet period before typed text becomes the search term.
const DefaultDebounce = 100 * time.Millisecond

// Clock tells the debouncer what time it is.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Pending describes the timer a keystroke started. The caller fires it by
// calling Expire(Seq) once Delay has elapsed.
type Pending struct {
	Seq   uint64
	Delay time.Duration
}

// Debouncer turns a stream of raw input values into committed search terms.
// Each Input restarts the commit timer; only the newest timer can commit.
type Debouncer struct {
	delay time.Duration
	clock Clock

	raw       string
	committed string
	seq       uint64
	deadline  time.Time
}

// NewDebouncer returns a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration, clock Clock) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Debouncer{delay: delay, clock: clock}
}

// Input records a new raw value and restarts the timer.
func (d *Debouncer) Input(value string) Pending {
	d.raw = value
	d.seq++
	d.deadline = d.clock.Now().Add(d.delay)
	return Pending{Seq: d.seq, Delay: d.delay}
}

// Expire fires the timer seq. It commits the raw value when seq is the newest
// timer, its deadline has passed, and the value differs from the committed term.
func (d *Debouncer) Expire(seq uint64) (string, bool) {
	if seq != d.seq {
		return "", false
	}
	if d.clock.Now().Before(d.deadline) {
		return "", false
	}
	return d.commit()
}

// Flush commits the raw value immediately and cancels any pending timer.
func (d *Debouncer) Flush() (string, bool) {
	d.seq++
	return d.commit()
}

func (d *Debouncer) commit() (string, bool) {
	if d.raw == d.committed {
		return "", false
	}
	d.committed = d.raw
	return d.committed, true
}

// Raw returns the value as typed.
func (d *Debouncer) Raw() string { return d.raw }

// Committed returns the last committed search term.
func (d *Debouncer) Committed() string { return d.committed }

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration { return d.delay }
