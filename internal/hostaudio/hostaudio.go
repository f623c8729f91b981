// hostaudio plays the buzzer's square wave on the sound card of a desktop,
// it lets the melodies be tried out without the board
package hostaudio

import (
	"encoding/binary"
	"sync/atomic"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/melody"
	"github.com/hajimehoshi/oto/v2"
)

const (
	sampleRate   = 44100
	channelCount = 1
	// oto.FormatSignedInt16LE
	format = 2

	// a square wave at full scale is unpleasant
	amplitude = 6000
)

// Speaker is a sequencer.Tone on the default output device
type Speaker struct {
	ctx    *oto.Context
	player oto.Player
	wave   *square
}

func New() (*Speaker, error) {
	ctx, ready, err := oto.NewContext(sampleRate, channelCount, format)
	if err != nil {
		return nil, err
	}
	<-ready

	w := &square{}
	p := ctx.NewPlayer(w)
	p.Play()

	return &Speaker{ctx: ctx, player: p, wave: w}, nil
}

// SetTone only swaps the frequency, the player keeps streaming
func (s *Speaker) SetTone(p melody.Pitch) {
	atomic.StoreUint32(&s.wave.freq, uint32(p))
}

func (s *Speaker) Close() error {
	s.SetTone(melody.Rest)
	return s.player.Close()
}

// square is an endless 16 bit mono square wave, silent at 0 Hz
type square struct {
	freq  uint32
	phase float64
}

func (w *square) Read(buf []byte) (int, error) {
	f := float64(atomic.LoadUint32(&w.freq))
	n := len(buf) &^ 1

	for i := 0; i < n; i += 2 {
		var v int16
		if f > 0 {
			w.phase += f / sampleRate
			if w.phase >= 1 {
				w.phase -= 1
			}
			v = amplitude
			if w.phase >= 0.5 {
				v = -amplitude
			}
		}
		binary.LittleEndian.PutUint16(buf[i:], uint16(v))
	}

	return n, nil
}
