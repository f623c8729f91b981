package gpio

import (
	"sync"
	"time"
)

// Debounced only reports a new level once the input held it for the whole window
type Debounced struct {
	in     Reader
	window time.Duration
	now    func() time.Time

	stable    Level
	candidate Level
	since     time.Time
}

func Debounce(in Reader, window time.Duration) *Debounced {
	return newDebounced(in, window, time.Now)
}

func newDebounced(in Reader, window time.Duration, now func() time.Time) *Debounced {
	return &Debounced{
		in:        in,
		window:    window,
		now:       now,
		stable:    High,
		candidate: High,
	}
}

func (d *Debounced) Read() Level {
	lvl := d.in.Read()
	now := d.now()

	if lvl != d.candidate {
		d.candidate = lvl
		d.since = now
	}
	if d.candidate != d.stable && now.Sub(d.since) >= d.window {
		d.stable = d.candidate
	}

	return d.stable
}

// Virtual is a momentary button pressed from software, the simulator
// maps keystrokes to it since a terminal reports no key releases.
// Presses queue up, each one is Low for the hold duration followed by
// a single High read, so every press is its own falling edge.
type Virtual struct {
	hold time.Duration
	now  func() time.Time

	mu      sync.Mutex
	queued  int
	pressed time.Time
}

// key repeat beyond this is dropped
const maxQueued = 4

func NewVirtual(hold time.Duration) *Virtual {
	return &Virtual{hold: hold, now: time.Now}
}

// Press queues a press, it starts on the next Read once the previous one was released
func (v *Virtual) Press() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.queued < maxQueued {
		v.queued++
	}
}

func (v *Virtual) Read() Level {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.now()
	if !v.pressed.IsZero() {
		if now.Sub(v.pressed) < v.hold {
			return Low
		}
		v.pressed = time.Time{}
		return High
	}

	if v.queued > 0 {
		v.queued--
		v.pressed = now
		return Low
	}
	return High
}
