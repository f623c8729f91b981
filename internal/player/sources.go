package player

import (
	"time"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/melody"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/sequencer"
)

// Sources builds the melody source of every mode the profile can play
func Sources(p Profile, tone sequencer.Tone, base time.Duration, rnd sequencer.Rand) map[Mode]sequencer.Source {
	srcs := map[Mode]sequencer.Source{}
	for _, m := range p.Modes() {
		switch m {
		case Scale:
			srcs[m] = sequencer.NewFixed(tone, melody.Scale, base)
		case Pattern:
			srcs[m] = sequencer.NewFixed(tone, melody.Pattern, base)
		case Improv:
			srcs[m] = sequencer.NewPhrase(tone, melody.Palette, melody.Tonic, base, rnd)
		}
	}
	return srcs
}
