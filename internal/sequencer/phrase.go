package sequencer

import (
	"time"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/melody"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("main.sequencer")

const (
	minPhraseLen = 4
	maxPhraseLen = 6
	maxStep      = 2

	minPause  = 500 * time.Millisecond
	pauseSpan = 400 // ms, pauses fall in [minPause, minPause+pauseSpan)
)

// Phrase improvises short runs of notes over a palette.
// Each phrase walks in one direction for 4-6 notes, then rests.
type Phrase struct {
	tone    Tone
	rnd     Rand
	palette []melody.Pitch
	tonic   melody.Pitch
	base    time.Duration

	degree    int
	played    int
	length    int
	direction int
	paused    bool

	started time.Time
	planned time.Duration
}

// NewPhrase expects a non-empty palette, tonic is used for cadences
func NewPhrase(tone Tone, palette []melody.Pitch, tonic melody.Pitch, base time.Duration, rnd Rand) *Phrase {
	p := &Phrase{
		tone:    tone,
		rnd:     rnd,
		palette: palette,
		tonic:   tonic,
		base:    base,
	}
	p.Reset(time.Time{})
	return p
}

func (p *Phrase) Step(now time.Time, enabled bool) {
	if now.Sub(p.started) < p.planned {
		return
	}

	if p.paused {
		p.begin()
	} else if p.played >= p.length {
		p.rest(now)
		return
	}

	p.play(now, enabled)
}

func (p *Phrase) Reset(now time.Time) {
	p.degree = 0
	p.played = 0
	p.length = 0
	p.direction = 1
	p.paused = true
	p.started = now
	p.planned = 0
}

func (p *Phrase) Resume(now time.Time) {
	p.started = now
	p.planned = 0
}

// begin draws the shape of the next phrase
func (p *Phrase) begin() {
	p.direction = 1
	if p.rnd.Intn(2) == 0 {
		p.direction = -1
	}
	p.length = minPhraseLen + p.rnd.Intn(maxPhraseLen-minPhraseLen+1)
	p.degree = p.rnd.Intn(len(p.palette))
	p.played = 0
	p.paused = false
	logger.Tracef("phrase: %d notes from degree %d, direction %+d", p.length, p.degree, p.direction)
}

func (p *Phrase) rest(now time.Time) {
	p.tone.SetTone(melody.Rest)
	p.paused = true
	p.started = now
	p.planned = minPause + time.Duration(p.rnd.Intn(pauseSpan))*time.Millisecond
}

func (p *Phrase) play(now time.Time, enabled bool) {
	p.degree = clamp(p.degree+p.rnd.Intn(maxStep+1)*p.direction, 0, len(p.palette)-1)
	n := melody.Note{Pitch: p.palette[p.degree], Divisor: melody.Quarter}
	if p.rnd.Intn(3) == 0 {
		n.Divisor = melody.Half
	}

	p.played++
	if p.played == p.length && p.rnd.Intn(3) == 0 {
		n = melody.Note{Pitch: p.tonic, Divisor: melody.Half}
	}

	sound(p.tone, n.Pitch, enabled)
	p.started = now
	p.planned = n.Duration(p.base)
}

// Degree is the current palette index
func (p *Phrase) Degree() int {
	return p.degree
}

// Length is the number of notes in the current phrase
func (p *Phrase) Length() int {
	return p.length
}

// Paused reports whether the generator is resting between phrases
func (p *Phrase) Paused() bool {
	return p.paused
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
