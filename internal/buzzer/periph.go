package buzzer

import (
	"fmt"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/melody"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/host"
)

// PWM drives the buzzer through a pin with hardware pwm support
type PWM struct {
	pin     gpio.PinOut
	current melody.Pitch
}

// OpenPWM looks up a pwm capable pin by name, e.g. "GPIO13"
func OpenPWM(name string) (*PWM, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init failed: %v", err)
	}

	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("could not find tone pin %q", name)
	}

	if err := p.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("could not silence %v: %v", p, err)
	}

	return &PWM{pin: p}, nil
}

func (t *PWM) SetTone(p melody.Pitch) {
	if p == t.current {
		return
	}

	var err error
	if p == melody.Rest {
		err = t.pin.Out(gpio.Low)
	} else {
		err = t.pin.PWM(gpio.DutyHalf, physic.Frequency(p)*physic.Hertz)
	}
	if err != nil {
		logger.Warningf("pwm %v could not play %d Hz: %v", t.pin, p, err)
		return
	}

	t.current = p
}
