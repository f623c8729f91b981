package player

import (
	"fmt"
	"strconv"
)

type Mode int

const (
	Off Mode = iota
	Scale
	Pattern
	Improv
)

func (m Mode) String() string {
	switch m {
	case Off:
		return "Off"
	case Scale:
		return "Scale"
	case Pattern:
		return "Pattern"
	case Improv:
		return "Improv"
	default:
		panic("unknown mode " + strconv.Itoa(int(m)))
	}
}

// Profile selects which variant of the device the player behaves as
type Profile int

const (
	// Beeper sounds a fixed tone while the mode button is held
	Beeper Profile = iota
	// Cycle has two melodies and Off is part of the cycle
	Cycle
	// Improvise has three melodies, a power button, and never returns to Off
	Improvise
)

func ParseProfile(s string) (Profile, error) {
	switch s {
	case "beeper":
		return Beeper, nil
	case "cycle":
		return Cycle, nil
	case "improv":
		return Improvise, nil
	}
	return 0, fmt.Errorf("unknown profile %q", s)
}

func (p Profile) String() string {
	switch p {
	case Beeper:
		return "beeper"
	case Cycle:
		return "cycle"
	case Improvise:
		return "improv"
	default:
		panic("unknown profile " + strconv.Itoa(int(p)))
	}
}

/*
beeper:
  - mode button held -> beep, released -> silence
cycle, default: Off
  - mode press: Off -> Scale -> Pattern -> Off
improv, default: Off
  - mode press: Off -> Scale -> Pattern -> Improv -> Scale
  - power press: toggle sound
*/
func (p Profile) next(m Mode) Mode {
	switch p {
	case Cycle:
		if m >= Pattern {
			return Off
		}
		return m + 1
	case Improvise:
		if m >= Improv {
			return Scale
		}
		return m + 1
	}
	return m
}

// Modes lists the modes a profile can play
func (p Profile) Modes() []Mode {
	switch p {
	case Cycle:
		return []Mode{Scale, Pattern}
	case Improvise:
		return []Mode{Scale, Pattern, Improv}
	}
	return nil
}

func (p Profile) hasPower() bool {
	return p == Improvise
}
