package gpio

import (
	"fmt"

	pgpio "periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

// PeriphPin is an input opened through periph's pin registry,
// it enables the SoC's internal pull-up so no external resistor is needed
type PeriphPin struct {
	pin pgpio.PinIn
}

// OpenPeriph looks up the pin by name ("GPIO19", "PA19", "19")
func OpenPeriph(name string) (*PeriphPin, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init failed: %v", err)
	}

	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("could not find pin %q", name)
	}

	if err := p.In(pgpio.PullUp, pgpio.NoEdge); err != nil {
		return nil, fmt.Errorf("could not configure %v as input: %v", p, err)
	}

	return &PeriphPin{pin: p}, nil
}

func (p *PeriphPin) Read() Level {
	return Level(p.pin.Read() == pgpio.High)
}

func (p *PeriphPin) String() string {
	return p.pin.String()
}
