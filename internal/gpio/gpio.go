package gpio

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/file"
	"github.com/juju/loggo"
)

// Base is where the kernel exposes the sysfs gpio interface.
// Pin numbering on the orangepi pc plus:
// (position of letter in alphabet - 1) * 32 + pin number, PA19 => 19
const Base = "/sys/class/gpio"

var logger = loggo.GetLogger("main.gpio")

// Level is the logical level of a pin, buttons are wired active-low
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l == High {
		return "High"
	}
	return "Low"
}

// Reader reports the current level of an input
type Reader interface {
	Read() Level
}

type dir string

const in dir = "in"

// Pin is a sysfs gpio configured as an input with the board's pull-up
type Pin struct {
	base string
	pin  string
}

func NewPin(base, pin string) *Pin {
	return &Pin{base: base, pin: pin}
}

func (p *Pin) String() string {
	return "GPIO PIN: " + p.pin
}

// Setup exports the pin and switches it to input
func (p *Pin) Setup() error {
	if err := p.export(); err != nil {
		return err
	}
	return p.direction(in)
}

// Read returns High when the value can not be read, that is a released button
func (p *Pin) Read() Level {
	b, err := ioutil.ReadFile(p.path("value"))
	if err != nil {
		logger.Tracef("%v read failed: %v", p, err)
		return High
	}

	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '0' {
		return Low
	}
	return High
}

func (p *Pin) export() error {
	if file.Exists(p.base + "/gpio" + p.pin) {
		return nil // already exported
	}

	if err := write(p.base+"/export", p.pin); err != nil {
		return fmt.Errorf("Failed to export: %v %v", p, err)
	}

	return nil
}

func (p *Pin) direction(d dir) error {
	if err := write(p.path("direction"), string(d)); err != nil {
		return fmt.Errorf("Failed to set direction '%v': %v %v", d, p, err)
	}

	return nil
}

func (p *Pin) path(attr string) string {
	return p.base + "/gpio" + p.pin + "/" + attr
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
