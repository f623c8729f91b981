package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/buzzer"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/melody"
)

// plays every note of a melody once, blocking, to check the wiring
func main() {
	// http://blog.oddbit.com/post/2017-09-26-some-notes-on-pwm-on-the-raspberry-pi/
	// echo 0 > /sys/class/pwm/pwmchip0/export
	chip := flag.String("chip", buzzer.Chip, "sysfs pwm chip")
	channel := flag.Int("channel", 0, "pwm channel of the chip")
	name := flag.String("melody", "scale", "scale or pattern")
	flag.Parse()

	m := melody.Scale
	if *name == "pattern" {
		m = melody.Pattern
	}

	b := buzzer.New(*chip, *channel)
	if err := b.Setup(); err != nil {
		fmt.Printf("err: %v\n", err)
		os.Exit(1)
	}
	defer b.SetTone(melody.Rest)

	for i, n := range m.Notes {
		fmt.Printf("%2d: %4d Hz 1/%d\n", i, n.Pitch, n.Divisor)
		b.SetTone(n.Pitch)
		<-time.After(n.Duration(melody.BaseTempo))
	}
}
