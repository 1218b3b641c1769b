package browse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestDebouncer() (*Debouncer, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 2, 8, 12, 0, 0, 0, time.UTC)}
	return NewDebouncer(100*time.Millisecond, clock), clock
}

func TestDebouncer_CommitsAfterQuietPeriod(t *testing.T) {
	d, clock := newTestDebouncer()

	p := d.Input("b")
	assert.Equal(t, "b", d.Raw())
	assert.Equal(t, "", d.Committed())
	assert.Equal(t, 100*time.Millisecond, p.Delay)

	clock.Advance(100 * time.Millisecond)
	term, ok := d.Expire(p.Seq)
	require.True(t, ok)
	assert.Equal(t, "b", term)
	assert.Equal(t, "b", d.Committed())
}

func TestDebouncer_OnlyLatestKeystrokeCommits(t *testing.T) {
	d, clock := newTestDebouncer()

	var timers []Pending
	for _, v := range []string{"b", "ba", "bat", "batm", "batma", "batman"} {
		timers = append(timers, d.Input(v))
		clock.Advance(30 * time.Millisecond)
	}
	clock.Advance(100 * time.Millisecond)

	commits := 0
	var last string
	for _, p := range timers {
		if term, ok := d.Expire(p.Seq); ok {
			commits++
			last = term
		}
	}
	assert.Equal(t, 1, commits)
	assert.Equal(t, "batman", last)
}

func TestDebouncer_EarlyExpireDoesNotCommit(t *testing.T) {
	d, clock := newTestDebouncer()

	p := d.Input("dune")
	clock.Advance(50 * time.Millisecond)
	_, ok := d.Expire(p.Seq)
	assert.False(t, ok)

	clock.Advance(50 * time.Millisecond)
	term, ok := d.Expire(p.Seq)
	assert.True(t, ok)
	assert.Equal(t, "dune", term)
}

func TestDebouncer_UnchangedValueDoesNotCommit(t *testing.T) {
	d, clock := newTestDebouncer()

	p := d.Input("up")
	clock.Advance(time.Second)
	_, ok := d.Expire(p.Seq)
	require.True(t, ok)

	// Type and erase within the window: nothing new to search for.
	d.Input("upx")
	p = d.Input("up")
	clock.Advance(time.Second)
	_, ok = d.Expire(p.Seq)
	assert.False(t, ok)
}

func TestDebouncer_FlushCommitsAndCancels(t *testing.T) {
	d, clock := newTestDebouncer()

	p := d.Input("heat")
	term, ok := d.Flush()
	require.True(t, ok)
	assert.Equal(t, "heat", term)

	clock.Advance(time.Second)
	_, ok = d.Expire(p.Seq)
	assert.False(t, ok, "flushed timer must not commit again")

	_, ok = d.Flush()
	assert.False(t, ok)
}

func TestDebouncer_Defaults(t *testing.T) {
	d := NewDebouncer(0, nil)
	assert.Equal(t, DefaultDebounce, d.Delay())
}
