// buzzer uses the linux pwm driver to generate tones for a piezzo buzzer
// more info: blog.oddbit.com/post/2017-09-26-some-notes-on-pwm-on-the-raspberry-pi
package buzzer

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/file"
	"code.sztanpet.net/zvpsz/melody-buzzer/internal/melody"
	"github.com/juju/loggo"
)

// Chip is the default pwm chip of the board
const Chip = "/sys/class/pwm/pwmchip0"

var logger = loggo.GetLogger("main.buzzer")

// Buzzer drives one channel of a sysfs pwm chip.
// Not safe for concurrent use, the player owns it.
type Buzzer struct {
	chip    string
	channel string

	exported bool
	current  melody.Pitch
}

func New(chip string, channel int) *Buzzer {
	return &Buzzer{
		chip:    chip,
		channel: strconv.Itoa(channel),
	}
}

// Setup exports the channel and makes sure it is silent
func (b *Buzzer) Setup() error {
	if err := b.ensureExported(); err != nil {
		return err
	}

	return b.write("enable", "0")
}

// SetTone switches the square wave to p, melody.Rest disables the output.
// Failures are logged and the channel is re-exported on the next call.
func (b *Buzzer) SetTone(p melody.Pitch) {
	if b.exported && p == b.current {
		return
	}

	if err := b.ensureExported(); err != nil {
		logger.Warningf("buzzer export failed: %v", err)
		return
	}

	if p == melody.Rest {
		b.disable()
		b.current = melody.Rest
		return
	}

	if err := b.configure(p); err != nil {
		logger.Warningf("buzzer could not play %d Hz: %v", p, err)
		b.unexport()
		return
	}

	b.enable()
	b.current = p
}

// configure sets a 50% duty cycle square wave of frequency p.
// The duty cycle may never exceed the period, so it goes to 0 first.
func (b *Buzzer) configure(p melody.Pitch) error {
	period := int64(time.Second) / int64(p)

	if err := b.write("duty_cycle", "0"); err != nil {
		return err
	}
	if err := b.write("period", strconv.FormatInt(period, 10)); err != nil {
		return err
	}
	return b.write("duty_cycle", strconv.FormatInt(period/2, 10))
}

func (b *Buzzer) ensureExported() error {
	// echo 0 > /sys/class/pwm/pwmchip0/export
	// 440hz
	// echo 1136363 > /sys/class/pwm/pwmchip0/pwm0/duty_cycle
	// echo 2272727 > /sys/class/pwm/pwmchip0/pwm0/period

	if b.exported {
		return nil
	}

	// already exported?
	if !file.Exists(b.port()) {
		if err := write(b.chip+"/export", b.channel); err != nil {
			return fmt.Errorf("export %v: %v", b.port(), err)
		}
	}
	b.exported = true

	if err := b.write("polarity", "normal"); err != nil {
		logger.Debugf("could not set polarity of %v: %v", b.port(), err)
	}

	return nil
}

func (b *Buzzer) unexport() {
	_ = write(b.chip+"/unexport", b.channel)
	b.exported = false
	b.current = melody.Rest
}

func (b *Buzzer) enable() {
	if err := b.write("enable", "1"); err != nil {
		logger.Warningf("buzzer enable failed: %v", err)
		b.unexport()
	}
}

func (b *Buzzer) disable() {
	if err := b.write("enable", "0"); err != nil {
		logger.Warningf("buzzer disable failed: %v", err)
		b.unexport()
	}
}

func (b *Buzzer) port() string {
	return b.chip + "/pwm" + b.channel
}

func (b *Buzzer) write(attr, value string) error {
	return write(b.port()+"/"+attr, value)
}

func write(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := f.WriteString(value)
	if err != nil {
		return err
	}

	if n < len(value) {
		return io.ErrShortWrite
	}

	return nil
}

// Logger is a Tone for boards without a buzzer, it only logs changes
type Logger struct {
	current melody.Pitch
}

func (l *Logger) SetTone(p melody.Pitch) {
	if p == l.current {
		return
	}
	l.current = p

	if p == melody.Rest {
		logger.Debugf("tone: off")
		return
	}
	logger.Debugf("tone: %d Hz", p)
}

// Current is the last pitch set
func (l *Logger) Current() melody.Pitch {
	return l.current
}
