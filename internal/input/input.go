package input

import (
	"context"
	"fmt"

	"github.com/mattn/go-tty"
)

type Input struct {
	ctx context.Context
	tty *tty.TTY
}

const (
	KeyArrowLeft       = '\x02'
	KeyArrowRight      = '\x06'
	KeyArrowUp         = '\x10'
	KeyArrowDown       = '\x0e'
	KeySpace           = ' '
	KeyEnter           = '\r'
	KeyInterrupt       = '\x03'
	KeyEndTransmission = '\x04'
	KeyEscape          = '\x1b'
	ignoreKey          = '\000'
)

func New(ctx context.Context) (*Input, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}

	return &Input{
		ctx: ctx,
		tty: t,
	}, nil
}

func (i *Input) Close() error {
	return i.tty.Close()
}

// ReadRune reads input from the active tty and deals with escape sequences,
// returns KeyEndTransmission once ctx is done
func (i *Input) ReadRune() (r rune, err error) {
	for {
		select {
		case <-i.ctx.Done():
			return KeyEndTransmission, nil
		default:
		}

		r, err = i.tty.ReadRune()
		if err != nil {
			return r, err
		}

		if r == KeyEscape {
			r, err = i.escape()
			if err != nil {
				return r, err
			}
		}

		if r != ignoreKey {
			return r, nil
		}
	}
}

// escape parses the rest of an escape sequence
func (i *Input) escape() (rune, error) {
	// not buffered anything? just a pure escape
	if !i.tty.Buffered() {
		return KeyEscape, nil
	}

	r, err := i.tty.ReadRune()
	if err != nil {
		return r, err
	}
	if r != '[' {
		return r, fmt.Errorf("Unexpected escape sequence: %q", r)
	}

	r, err = i.tty.ReadRune()
	if err != nil {
		return r, err
	}

	return arrow(r), nil
}

func arrow(r rune) rune {
	switch r {
	case 'D':
		return KeyArrowLeft
	case 'C':
		return KeyArrowRight
	case 'A':
		return KeyArrowUp
	case 'B':
		return KeyArrowDown
	}
	return ignoreKey
}
