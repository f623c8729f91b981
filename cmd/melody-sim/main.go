package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/buzzer"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/config"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/gpio"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/hostaudio"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/input"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/logwriter"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/player"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/sequencer"
	"github.com/juju/loggo"
	"golang.org/x/sync/errgroup"
)

var logger = loggo.GetLogger("melody-sim")

// a terminal reports key presses only, so every key is a short press
const pressHold = 80 * time.Millisecond

const help = "m / right arrow: mode button, p / space: power button, q: quit"

// melody-sim runs the player on a desktop: the keyboard stands in for the
// buttons and the sound card for the buzzer
func main() {
	cfg := config.Get()
	if err := logwriter.Setup(nil, cfg.StatePath, cfg.LogConfig); err != nil {
		fmt.Fprintf(os.Stderr, "logwriter setup failed: %v\n", err)
		os.Exit(1)
	}

	profile, err := player.ParseProfile(cfg.Profile)
	if err != nil {
		logger.Criticalf("%v", err)
		os.Exit(1)
	}

	var tone sequencer.Tone = &buzzer.Logger{}
	speaker, err := hostaudio.New()
	if err != nil {
		logger.Warningf("no sound card, logging tones instead: %v", err)
	} else {
		defer speaker.Close()
		tone = speaker
	}

	ctx, exit := context.WithCancel(context.Background())
	defer exit()

	in, err := input.New(ctx)
	if err != nil {
		logger.Criticalf("tty open error: %v", err)
		os.Exit(1)
	}
	defer in.Close()

	modeBtn := gpio.NewVirtual(pressHold)
	powerBtn := gpio.NewVirtual(pressHold)
	p := player.New(player.Options{
		Profile: profile,
		Tone:    tone,
		Mode:    modeBtn,
		Power:   powerBtn,
		Sources: player.Sources(profile, tone, cfg.BaseTempo, sequencer.NewRand()),
	})

	fmt.Println(help)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.Run(ctx, cfg.Tick)
	})
	g.Go(func() error {
		defer exit()
		for {
			r, err := in.ReadRune()
			if err != nil {
				return fmt.Errorf("tty read failed: %w", err)
			}

			switch r {
			case 'm', input.KeyArrowRight, input.KeyEnter:
				modeBtn.Press()
			case 'p', input.KeySpace:
				powerBtn.Press()
			case 'q', input.KeyEscape, input.KeyInterrupt, input.KeyEndTransmission:
				return nil
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Criticalf("exiting: %v", err)
	}
}
