// melody holds the note tables played by the buzzer
package melody

import "time"

// Pitch is a tone frequency in Hz, Rest is silence
type Pitch uint32

// Rest stops the buzzer
const Rest Pitch = 0

// D dorian, plus the fixed beeper tone
const (
	D4 Pitch = 294
	E4 Pitch = 330
	F4 Pitch = 349
	G4 Pitch = 392
	A4 Pitch = 440
	B4 Pitch = 494
	C5 Pitch = 523
	D5 Pitch = 587
	F5 Pitch = 698

	Beep Pitch = 2000
)

// BaseTempo is the length of a whole note
const BaseTempo = 1800 * time.Millisecond

// Duration divisors, a larger divisor is a shorter note
const (
	Half    = 2
	Quarter = 4
	Eighth  = 8
)

// Note is a pitch (or Rest) held for BaseTempo / Divisor
type Note struct {
	Pitch   Pitch
	Divisor int
}

// Duration returns how long the note lasts for the given whole note length
func (n Note) Duration(base time.Duration) time.Duration {
	return base / time.Duration(n.Divisor)
}

// Melody is a fixed note sequence repeated after Pause
type Melody struct {
	Name  string
	Notes []Note
	Pause time.Duration
}

// Contains reports whether p is a pitch of the melody, Rest always is
func (m Melody) Contains(p Pitch) bool {
	if p == Rest {
		return true
	}
	for _, n := range m.Notes {
		if n.Pitch == p {
			return true
		}
	}
	return false
}
