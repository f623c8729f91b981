package main

import (
	"context"
	"strings"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/player"
)

// notify runs on the player's loop, it drops the update when the screen lags behind
func (a *app) notify(s player.Status) {
	if a.screen == nil {
		return
	}

	select {
	case a.status <- s:
	default:
		select {
		case <-a.status:
		default:
		}
		a.status <- s
	}
}

func (a *app) screenLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-a.status:
			if err := a.screen.Show(statusLines(s)); err != nil {
				logger.Warningf("screen draw failed: %v", err)
			}
		}
	}
}

func statusLines(s player.Status) []string {
	lines := []string{"MELODY-" + strings.ToUpper(s.Profile.String())}

	if s.Profile == player.Beeper {
		if s.Pressed {
			return append(lines, "", "BEEP")
		}
		return append(lines, "", "-")
	}

	lines = append(lines, "mode: "+s.Mode.String())
	if s.Enabled {
		lines = append(lines, "sound: on")
	} else {
		lines = append(lines, "sound: off")
	}

	return append(lines, "(press to switch)")
}

func (a *app) onBootup() {
	logger.Infof("profile %v, tone %v, buttons %v", a.cfg.Profile, a.cfg.ToneBackend, a.cfg.GPIOBackend)
	if a.screen != nil {
		a.notify(a.player.Status())
	}
}

func (a *app) onShutdown() {
	if a.screen != nil {
		if err := a.screen.Close(); err != nil {
			logger.Debugf("screen close failed: %v", err)
		}
	}
}
