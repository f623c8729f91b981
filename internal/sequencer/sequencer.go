// sequencer steps melodies one note at a time without ever blocking,
// it is driven by the player's tick and a monotonic clock
package sequencer

import (
	"time"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/melody"
)

// Tone starts a square wave at the given pitch, melody.Rest stops it
type Tone interface {
	SetTone(p melody.Pitch)
}

// Source is a melody source advanced once per tick
type Source interface {
	// Step emits at most one tone change if the current note has run out
	Step(now time.Time, enabled bool)
	// Reset rewinds to the first note, which fires on the next Step
	Reset(now time.Time)
	// Resume drops the pending wait but keeps the position
	Resume(now time.Time)
}

// Fixed plays a melody.Melody in a loop
type Fixed struct {
	tone   Tone
	melody melody.Melody
	base   time.Duration

	index   int
	started time.Time
	planned time.Duration
}

func NewFixed(tone Tone, m melody.Melody, base time.Duration) *Fixed {
	return &Fixed{
		tone:   tone,
		melody: m,
		base:   base,
	}
}

func (f *Fixed) Step(now time.Time, enabled bool) {
	if now.Sub(f.started) < f.planned {
		return
	}
	f.started = now

	if f.index >= len(f.melody.Notes) {
		f.index = 0
		f.planned = f.melody.Pause
		f.tone.SetTone(melody.Rest)
		return
	}

	n := f.melody.Notes[f.index]
	sound(f.tone, n.Pitch, enabled)
	f.planned = n.Duration(f.base)
	f.index++
}

func (f *Fixed) Reset(now time.Time) {
	f.index = 0
	f.started = now
	f.planned = 0
}

func (f *Fixed) Resume(now time.Time) {
	f.started = now
	f.planned = 0
}

// Index is the position of the next note to play
func (f *Fixed) Index() int {
	return f.index
}

func sound(t Tone, p melody.Pitch, enabled bool) {
	if !enabled {
		p = melody.Rest
	}
	t.SetTone(p)
}
