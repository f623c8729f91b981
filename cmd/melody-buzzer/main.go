package main

import (
	"context"
	"os"
	"time"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/config"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/display"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/gpio"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/player"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/sequencer"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/telegram"
	"github.com/juju/loggo"
	"golang.org/x/sync/errgroup"
)

type app struct {
	ctx  context.Context
	exit context.CancelFunc
	cfg  *config.Config
	bot  *telegram.Bot

	tone     sequencer.Tone
	modeBtn  gpio.Reader
	powerBtn gpio.Reader
	screen   *display.Screen
	status   chan player.Status
	player   *player.Player
}

var logger = loggo.GetLogger("melody-buzzer")

func main() {
	cfg := config.Get()
	ctx, exit := context.WithCancel(context.Background())
	a := &app{
		ctx:    ctx,
		exit:   exit,
		cfg:    cfg,
		status: make(chan player.Status, 1),
	}

	// logging sends messages to telegram, so it depends on it
	a.setupTelegram()
	a.setupLogging()
	a.handleSignals()

	a.setupTone()
	a.setupButtons()
	a.setupScreen()
	a.setupPlayer()

	g, ctx := errgroup.WithContext(a.ctx)
	g.Go(func() error {
		// the player is the only owner of the buzzer and the melody state
		defer a.exit()
		return a.player.Run(ctx, cfg.Tick)
	})
	if a.screen != nil {
		g.Go(func() error {
			a.screenLoop(ctx)
			return nil
		})
		g.Go(func() error {
			a.screen.HandleScreenSaver(ctx)
			return nil
		})
	}

	// canceling the context is the normal way to exit
	if err := g.Wait(); err != nil {
		logger.Criticalf("exiting: %v", err)
		os.Exit(1)
	}
	a.onShutdown()
	time.Sleep(250 * time.Millisecond)
	os.Exit(0)
}
