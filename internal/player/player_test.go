package player

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/gpio"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/melody"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/sequencer"
	"github.com/juju/loggo"
)

type button struct {
	level gpio.Level
}

func (b *button) Read() gpio.Level { return b.level }

type tone struct {
	calls []melody.Pitch
	check func(melody.Pitch)
}

func (t *tone) SetTone(p melody.Pitch) {
	if t.check != nil {
		t.check(p)
	}
	t.calls = append(t.calls, p)
}

func (t *tone) last() melody.Pitch {
	if len(t.calls) == 0 {
		return melody.Rest
	}
	return t.calls[len(t.calls)-1]
}

var t0 = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

type rig struct {
	t     *testing.T
	p     *Player
	tone  *tone
	mode  *button
	power *button
	now   time.Time
}

func newRig(t *testing.T, profile Profile) *rig {
	r := &rig{
		t:     t,
		tone:  &tone{},
		mode:  &button{level: gpio.High},
		power: &button{level: gpio.High},
		now:   t0,
	}
	r.p = New(Options{
		Profile: profile,
		Tone:    r.tone,
		Mode:    r.mode,
		Power:   r.power,
		Sources: Sources(profile, r.tone, melody.BaseTempo, rand.New(rand.NewSource(1))),
	})
	return r
}

func (r *rig) tick(d time.Duration) {
	r.now = r.now.Add(d)
	r.p.Tick(r.now)
}

// press holds b down for one tick and releases it on the next
func (r *rig) press(b *button) {
	b.level = gpio.Low
	r.tick(10 * time.Millisecond)
	b.level = gpio.High
	r.tick(10 * time.Millisecond)
}

func TestCycleProfile(t *testing.T) {
	r := newRig(t, Cycle)
	r.tick(0)
	if r.p.Mode() != Off {
		t.Fatalf("initial mode: %v", r.p.Mode())
	}

	for _, want := range []Mode{Scale, Pattern, Off, Scale, Pattern, Off} {
		r.press(r.mode)
		if r.p.Mode() != want {
			t.Fatalf("got %v, want %v", r.p.Mode(), want)
		}
	}
}

func TestImprovProfile(t *testing.T) {
	r := newRig(t, Improvise)
	r.tick(0)

	for _, want := range []Mode{Scale, Pattern, Improv, Scale, Pattern, Improv, Scale} {
		r.press(r.mode)
		if r.p.Mode() != want {
			t.Fatalf("got %v, want %v", r.p.Mode(), want)
		}
	}
}

func TestHeldButtonIsOnePress(t *testing.T) {
	r := newRig(t, Cycle)
	r.mode.level = gpio.Low
	for i := 0; i < 10; i++ {
		r.tick(10 * time.Millisecond)
	}
	if r.p.Mode() != Scale {
		t.Fatalf("a held button should advance once, mode %v", r.p.Mode())
	}
}

func TestModeChangeStartsImmediately(t *testing.T) {
	r := newRig(t, Improvise)
	r.tick(0)
	if len(r.tone.calls) != 0 {
		t.Fatalf("off should not touch the buzzer, got %v", r.tone.calls)
	}

	r.mode.level = gpio.Low
	r.tick(10 * time.Millisecond)
	if r.tone.last() != melody.Scale.Notes[0].Pitch {
		t.Fatalf("first scale note should play on the press tick, got %v", r.tone.calls)
	}
	r.mode.level = gpio.High
	r.tick(100 * time.Millisecond)

	// mid-note press switches at once to the pattern's first note
	r.mode.level = gpio.Low
	r.tick(10 * time.Millisecond)
	if r.tone.last() != melody.Pattern.Notes[0].Pitch {
		t.Fatalf("first pattern note should play on the press tick, got %v", r.tone.calls)
	}
	r.mode.level = gpio.High

	// let the pattern run a while, then cycle back around to the scale
	for i := 0; i < 100; i++ {
		r.tick(10 * time.Millisecond)
	}
	r.press(r.mode)
	if r.p.Mode() != Improv {
		t.Fatalf("mode %v", r.p.Mode())
	}
	r.mode.level = gpio.Low
	r.tick(10 * time.Millisecond)
	if r.p.Mode() != Scale || r.tone.last() != melody.Scale.Notes[0].Pitch {
		t.Fatalf("scale should restart from its first note, got %v %v", r.p.Mode(), r.tone.last())
	}
}

func TestCycleOffSilences(t *testing.T) {
	r := newRig(t, Cycle)
	r.press(r.mode)
	r.press(r.mode)
	if r.p.Mode() != Pattern {
		t.Fatalf("mode %v", r.p.Mode())
	}

	r.mode.level = gpio.Low
	r.tick(10 * time.Millisecond)
	if r.p.Mode() != Off || r.tone.last() != melody.Rest {
		t.Fatalf("switching off should silence, got %v %v", r.p.Mode(), r.tone.last())
	}

	n := len(r.tone.calls)
	for i := 0; i < 50; i++ {
		r.tick(100 * time.Millisecond)
	}
	if len(r.tone.calls) != n {
		t.Errorf("off should stay quiet, got %v", r.tone.calls[n:])
	}
}

func TestPowerToggle(t *testing.T) {
	r := newRig(t, Improvise)
	r.mode.level = gpio.Low
	r.tick(0)
	r.mode.level = gpio.High
	if r.tone.last() != melody.Scale.Notes[0].Pitch {
		t.Fatalf("got %v", r.tone.calls)
	}

	r.power.level = gpio.Low
	r.tick(100 * time.Millisecond)
	if r.p.Enabled() {
		t.Fatal("power press should disable sound")
	}
	if r.tone.last() != melody.Rest {
		t.Fatalf("disabling should silence at once, got %v", r.tone.last())
	}
	r.power.level = gpio.High

	for i := 0; i < 100; i++ {
		r.tick(10 * time.Millisecond)
		if r.tone.last() != melody.Rest {
			t.Fatalf("disabled player played %v", r.tone.last())
		}
	}

	// the position was kept while silent
	r.power.level = gpio.Low
	r.tick(10 * time.Millisecond)
	if !r.p.Enabled() {
		t.Fatal("second power press should enable sound")
	}
	if r.tone.last() != melody.Scale.Notes[1].Pitch {
		t.Fatalf("resume should play the next note at once, got %v", r.tone.last())
	}
}

func TestResumeIsPrompt(t *testing.T) {
	r := newRig(t, Improvise)
	r.mode.level = gpio.Low
	r.tick(0)
	r.mode.level = gpio.High

	r.press(r.power)
	// re-enable 50ms into a 450ms note
	r.power.level = gpio.Low
	r.tick(30 * time.Millisecond)
	if r.tone.last() != melody.Scale.Notes[1].Pitch {
		t.Fatalf("got %v, want %v", r.tone.last(), melody.Scale.Notes[1].Pitch)
	}
}

func TestCycleIgnoresPower(t *testing.T) {
	r := newRig(t, Cycle)
	r.press(r.mode)
	r.press(r.power)
	if !r.p.Enabled() {
		t.Fatal("cycle profile has no power button")
	}
}

func TestBeeper(t *testing.T) {
	r := newRig(t, Beeper)
	var seen []Status
	r.p.notify = func(s Status) { seen = append(seen, s) }

	r.tick(0)
	if r.tone.last() != melody.Rest {
		t.Fatalf("released beeper: %v", r.tone.last())
	}

	r.mode.level = gpio.Low
	r.tick(50 * time.Millisecond)
	r.tick(50 * time.Millisecond)
	if r.tone.last() != melody.Beep {
		t.Fatalf("held beeper: %v", r.tone.last())
	}
	if !r.p.Status().Pressed {
		t.Error("status should report the button pressed")
	}

	r.mode.level = gpio.High
	r.tick(50 * time.Millisecond)
	if r.tone.last() != melody.Rest {
		t.Fatalf("released beeper: %v", r.tone.last())
	}
	if r.p.Mode() != Off {
		t.Errorf("beeper never changes mode, got %v", r.p.Mode())
	}
	if len(seen) != 2 || !seen[0].Pressed || seen[1].Pressed {
		t.Errorf("notifications: %+v", seen)
	}
}

func TestOutputAlwaysInTable(t *testing.T) {
	r := newRig(t, Improvise)
	palette := melody.Melody{Notes: []melody.Note{{Pitch: melody.Tonic}}}
	for _, p := range melody.Palette {
		palette.Notes = append(palette.Notes, melody.Note{Pitch: p})
	}
	r.tone.check = func(p melody.Pitch) {
		var m melody.Melody
		switch r.p.Mode() {
		case Scale:
			m = melody.Scale
		case Pattern:
			m = melody.Pattern
		case Improv:
			m = palette
		}
		if !m.Contains(p) {
			t.Fatalf("mode %v played %v", r.p.Mode(), p)
		}
	}

	rnd := rand.New(rand.NewSource(5))
	for i := 0; i < 20000; i++ {
		r.mode.level = gpio.High
		r.power.level = gpio.High
		switch rnd.Intn(200) {
		case 0:
			r.mode.level = gpio.Low
		case 1:
			r.power.level = gpio.Low
		}
		r.tick(time.Duration(10+rnd.Intn(30)) * time.Millisecond)
	}
}

func TestNotifyAndLog(t *testing.T) {
	tw := &loggo.TestWriter{}
	if err := loggo.RegisterWriter("player-test", tw); err != nil {
		t.Fatal(err)
	}
	defer loggo.RemoveWriter("player-test")
	level := logger.LogLevel()
	logger.SetLogLevel(loggo.INFO)
	defer logger.SetLogLevel(level)

	r := newRig(t, Improvise)
	var seen []Status
	r.p.notify = func(s Status) { seen = append(seen, s) }

	r.press(r.mode)
	r.press(r.power)

	if len(seen) != 2 {
		t.Fatalf("got %d notifications, want 2", len(seen))
	}
	if seen[0].Mode != Scale || !seen[0].Enabled {
		t.Errorf("first notification: %+v", seen[0])
	}
	if seen[1].Mode != Scale || seen[1].Enabled {
		t.Errorf("second notification: %+v", seen[1])
	}

	var msgs []string
	for _, e := range tw.Log() {
		if e.Module == "main.player" {
			msgs = append(msgs, e.Message)
		}
	}
	want := []string{"mode: Off -> Scale", "sound: disabled"}
	if len(msgs) != len(want) {
		t.Fatalf("log: %q", msgs)
	}
	for i := range want {
		if msgs[i] != want[i] {
			t.Errorf("log line %d: got %q, want %q", i, msgs[i], want[i])
		}
	}
}

func TestRunSilencesOnCancel(t *testing.T) {
	r := newRig(t, Improvise)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.p.Run(ctx, time.Hour); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(r.tone.calls) == 0 || r.tone.last() != melody.Rest {
		t.Errorf("run should silence the buzzer on exit, got %v", r.tone.calls)
	}
}

func TestParseProfile(t *testing.T) {
	for _, p := range []Profile{Beeper, Cycle, Improvise} {
		got, err := ParseProfile(p.String())
		if err != nil || got != p {
			t.Errorf("%v: got %v, %v", p, got, err)
		}
	}
	if _, err := ParseProfile("disco"); err == nil {
		t.Error("expected an error for an unknown profile")
	}
}

func TestModeStringPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an unknown mode")
		}
	}()
	_ = Mode(42).String()
}

func TestSources(t *testing.T) {
	srcs := Sources(Improvise, &tone{}, melody.BaseTempo, rand.New(rand.NewSource(1)))
	if len(srcs) != 3 {
		t.Fatalf("got %d sources", len(srcs))
	}
	if _, ok := srcs[Improv].(*sequencer.Phrase); !ok {
		t.Errorf("improv source is %T", srcs[Improv])
	}
	if len(Sources(Beeper, &tone{}, melody.BaseTempo, nil)) != 0 {
		t.Error("beeper has no sources")
	}
}

func TestImprovRestartsAfterLeaving(t *testing.T) {
	r := newRig(t, Improvise)
	phrase := r.p.sources[Improv].(*sequencer.Phrase)
	inPalette := func(p melody.Pitch) bool {
		for _, q := range melody.Palette {
			if p == q {
				return true
			}
		}
		return false
	}

	r.press(r.mode)
	r.press(r.mode)
	r.mode.level = gpio.Low
	r.tick(10 * time.Millisecond)
	r.mode.level = gpio.High
	if r.p.Mode() != Improv || phrase.Paused() || !inPalette(r.tone.last()) {
		t.Fatalf("improv should start a phrase on the press tick: %v paused=%v %v", r.p.Mode(), phrase.Paused(), r.tone.last())
	}
	r.tick(10 * time.Millisecond)
	if phrase.Paused() {
		t.Fatal("expected to be in the middle of a phrase")
	}

	// leave mid-phrase
	r.press(r.mode)
	if r.p.Mode() != Scale {
		t.Fatalf("mode %v", r.p.Mode())
	}
	if !phrase.Paused() || phrase.Degree() != 0 {
		t.Fatalf("leaving improv should reset the phrase: paused=%v degree=%d", phrase.Paused(), phrase.Degree())
	}

	r.press(r.mode)
	r.mode.level = gpio.Low
	n := len(r.tone.calls)
	r.tick(10 * time.Millisecond)
	if r.p.Mode() != Improv {
		t.Fatalf("mode %v", r.p.Mode())
	}
	if len(r.tone.calls) == n || !inPalette(r.tone.last()) || phrase.Paused() {
		t.Fatalf("returning to improv should play at once, got %v", r.tone.calls[n:])
	}
}
