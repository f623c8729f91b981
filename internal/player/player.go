// player owns the control loop: it polls the buttons, switches modes,
// and steps the melody source of the current mode once per tick
package player

import (
	"context"
	"time"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/gpio"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/melody"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/sequencer"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("main.player")

// Status is a snapshot of the player for diagnostics
type Status struct {
	Profile Profile
	Mode    Mode
	Enabled bool
	// Pressed is the mode button state, only tracked by the beeper
	Pressed bool
}

type Options struct {
	Profile Profile
	Tone    sequencer.Tone
	Mode    gpio.Reader
	// Power is ignored unless the profile has a power button
	Power gpio.Reader
	// Sources maps every playable mode to its melody source
	Sources map[Mode]sequencer.Source
	// Notify is called from the control loop after every change, it must not block
	Notify func(Status)
}

type Player struct {
	profile Profile
	tone    sequencer.Tone
	modeBtn gpio.Reader
	power   gpio.Reader
	sources map[Mode]sequencer.Source
	notify  func(Status)

	mode      Mode
	enabled   bool
	lastMode  gpio.Level
	lastPower gpio.Level
}

func New(o Options) *Player {
	p := &Player{
		profile:   o.Profile,
		tone:      o.Tone,
		modeBtn:   o.Mode,
		sources:   o.Sources,
		notify:    o.Notify,
		mode:      Off,
		enabled:   true,
		lastMode:  gpio.High,
		lastPower: gpio.High,
	}
	if o.Profile.hasPower() {
		p.power = o.Power
	}
	if p.sources == nil {
		p.sources = map[Mode]sequencer.Source{}
	}
	return p
}

// Run ticks every interval until ctx is done, then silences the buzzer.
// Canceling the context is the normal way to stop, so it returns nil.
func (p *Player) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	defer p.tone.SetTone(melody.Rest)

	logger.Infof("player started, profile: %v", p.profile)
	p.Tick(time.Now())
	for {
		select {
		case <-ctx.Done():
			logger.Debugf("player stopped")
			return nil
		case now := <-t.C:
			p.Tick(now)
		}
	}
}

// Tick handles button edges and steps the current source
func (p *Player) Tick(now time.Time) {
	lvl := p.modeBtn.Read()
	if p.profile == Beeper {
		p.beep(lvl)
		return
	}

	if falling(p.lastMode, lvl) {
		p.advance(now)
	}
	p.lastMode = lvl

	if p.power != nil {
		lvl := p.power.Read()
		if falling(p.lastPower, lvl) {
			p.toggle(now)
		}
		p.lastPower = lvl
	}

	if !p.enabled {
		p.tone.SetTone(melody.Rest)
		return
	}

	if src := p.sources[p.mode]; src != nil {
		src.Step(now, p.enabled)
	}
}

func (p *Player) Status() Status {
	return Status{
		Profile: p.profile,
		Mode:    p.mode,
		Enabled: p.enabled,
		Pressed: p.lastMode == gpio.Low,
	}
}

func (p *Player) Mode() Mode {
	return p.mode
}

func (p *Player) Enabled() bool {
	return p.enabled
}

func (p *Player) beep(lvl gpio.Level) {
	if lvl != p.lastMode {
		logger.Infof("button: %v", lvl)
		p.lastMode = lvl
		p.changed()
	}

	if lvl == gpio.Low {
		p.tone.SetTone(melody.Beep)
	} else {
		p.tone.SetTone(melody.Rest)
	}
}

// advance moves to the next mode and rewinds every source,
// so the new mode starts on its first note in this very tick
func (p *Player) advance(now time.Time) {
	prev := p.mode
	p.mode = p.profile.next(p.mode)
	logger.Infof("mode: %v -> %v", prev, p.mode)

	for _, src := range p.sources {
		src.Reset(now)
	}
	if p.sources[p.mode] == nil {
		p.tone.SetTone(melody.Rest)
	}

	p.changed()
}

func (p *Player) toggle(now time.Time) {
	p.enabled = !p.enabled
	if p.enabled {
		logger.Infof("sound: enabled")
		if src := p.sources[p.mode]; src != nil {
			src.Resume(now)
		}
	} else {
		logger.Infof("sound: disabled")
		p.tone.SetTone(melody.Rest)
	}

	p.changed()
}

func (p *Player) changed() {
	if p.notify != nil {
		p.notify(p.Status())
	}
}

// falling reports a released -> pressed transition
func falling(prev, cur gpio.Level) bool {
	return prev == gpio.High && cur == gpio.Low
}
