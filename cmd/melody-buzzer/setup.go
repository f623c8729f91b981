package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/buzzer"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/display"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/gpio"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/logwriter"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/player"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/sequencer"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/telegram"
)

func (a *app) handleSignals() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		s := <-c
		// exit unconditionally on any signal
		logger.Warningf("Got signal: %s, exiting cleanly", s)
		a.exit()
	}()
}

func (a *app) setupTelegram() {
	if a.cfg.TelegramToken == "" {
		return
	}

	bot, err := telegram.New(a.ctx, a.cfg.TelegramToken, a.cfg.TelegramChannelID)
	if err != nil {
		// logging is not set up yet
		fmt.Fprintf(os.Stderr, "telegram disabled: %v\n", err)
		return
	}
	a.bot = bot
	_ = a.bot.Send("melody-buzzer start @ "+time.Now().Format(time.RFC3339), true)
}

func (a *app) setupLogging() {
	var bot logwriter.Sender
	if a.bot != nil {
		bot = a.bot
	}

	if err := logwriter.Setup(bot, a.cfg.StatePath, a.cfg.LogConfig); err != nil {
		panic("logwriter setup failed, impossible: " + err.Error())
	}
}

func (a *app) setupTone() {
	switch a.cfg.ToneBackend {
	case "sysfs":
		b := buzzer.New(a.cfg.PWMChip, a.cfg.PWMChannel)
		if err := b.Setup(); err != nil {
			logger.Warningf("buzzer setup error: %v", err)
		}
		a.tone = b
	case "periph":
		p, err := buzzer.OpenPWM(a.cfg.TonePin)
		if err != nil {
			logger.Criticalf("failed to open tone pin: %v", err)
			os.Exit(1)
		}
		a.tone = p
	default:
		a.tone = &buzzer.Logger{}
	}
}

func (a *app) setupButtons() {
	var err error
	if a.modeBtn, err = a.openButton(a.cfg.ModePin); err != nil {
		logger.Criticalf("failed to open mode button: %v", err)
		os.Exit(1)
	}

	if a.cfg.Profile != "improv" {
		return
	}
	if a.powerBtn, err = a.openButton(a.cfg.PowerPin); err != nil {
		logger.Criticalf("failed to open power button: %v", err)
		os.Exit(1)
	}
}

func (a *app) openButton(name string) (gpio.Reader, error) {
	var in gpio.Reader
	switch a.cfg.GPIOBackend {
	case "periph":
		p, err := gpio.OpenPeriph(name)
		if err != nil {
			return nil, err
		}
		in = p
	default:
		p := gpio.NewPin(a.cfg.GPIOBase, name)
		if err := p.Setup(); err != nil {
			return nil, err
		}
		in = p
	}

	return gpio.Debounce(in, a.cfg.Debounce), nil
}

func (a *app) setupScreen() {
	if !a.cfg.Display {
		return
	}

	screen, err := display.NewScreen()
	if err != nil {
		// the screen is optional, keep playing without it
		logger.Warningf("screen disabled: %v", err)
		return
	}
	a.screen = screen
}

func (a *app) setupPlayer() {
	profile, err := player.ParseProfile(a.cfg.Profile)
	if err != nil {
		logger.Criticalf("%v", err)
		os.Exit(1)
	}

	srcs := player.Sources(profile, a.tone, a.cfg.BaseTempo, sequencer.NewRand())
	a.player = player.New(player.Options{
		Profile: profile,
		Tone:    a.tone,
		Mode:    a.modeBtn,
		Power:   a.powerBtn,
		Sources: srcs,
		Notify:  a.notify,
	})
	a.onBootup()
}
