package search

import "time"

// DebounceDelay is the quiet period before a query is committed.
const DebounceDelay = 500 * time.Millisecond

// Pending is a value waiting for its quiet period to elapse.
type Pending struct {
	Gen   uint64
	Value string
}

// Debouncer is a trailing-edge debounce expressed as generations: every
// Schedule supersedes the previous one and only the newest Pending is ever
// Ready. The caller owns the timer (a tea.Tick in the UI) and asks Ready
// when it fires. The zero value uses DebounceDelay.
type Debouncer struct {
	delay   time.Duration
	gen     uint64
	stopped bool
}

// NewDebouncer returns a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) Debouncer {
	return Debouncer{delay: delay}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	if d.delay <= 0 {
		return DebounceDelay
	}
	return d.delay
}

// Schedule starts a new quiet period for value.
func (d *Debouncer) Schedule(value string) Pending {
	d.gen++
	return Pending{Gen: d.gen, Value: value}
}

// Ready reports whether p is still the newest pending value.
func (d *Debouncer) Ready(p Pending) bool {
	return !d.stopped && p.Gen == d.gen
}

// Stop cancels whatever is pending. Nothing is Ready after Stop.
func (d *Debouncer) Stop() {
	d.stopped = true
	d.gen++
}
