package display

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"sync"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/devices/ssd1306"
	"periph.io/x/periph/devices/ssd1306/image1bit"
	"periph.io/x/periph/host"
)

var textFont = inconsolata.Bold8x16

// The ScreenTimeout after which the display is blanked to prevent burn-in.
var ScreenTimeout = 10 * time.Minute

// LineCount defines how many lines of text fit on the screen
const LineCount = 4

type Screen struct {
	mu         sync.Mutex
	bus        i2c.BusCloser
	dev        *ssd1306.Dev
	img        *image1bit.VerticalLSB
	lastActive time.Time
	blanked    bool
}

func NewScreen() (*Screen, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("no display detected: %v", err)
	}

	b, err := i2creg.Open("")
	if err != nil {
		return nil, fmt.Errorf("could not open i2c bus: %v", err)
	}

	opts := ssd1306.DefaultOpts
	opts.Rotated = false
	dev, err := ssd1306.NewI2C(b, &opts)
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("could not find ssd1306 screen: %v", err)
	}

	return &Screen{
		bus:        b,
		dev:        dev,
		img:        image1bit.NewVerticalLSB(dev.Bounds()),
		lastActive: time.Now(),
	}, nil
}

// Show replaces the screen contents with lines, the first one is the title
func (s *Screen) Show(lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
	s.blanked = false
	render(s.img, lines)
	return s.dev.Draw(s.dev.Bounds(), s.img, image.Point{})
}

// Blank blanks the screen without clearing the image
func (s *Screen) Blank() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blank()
}

func (s *Screen) blank() error {
	s.blanked = true
	img := image1bit.NewVerticalLSB(s.dev.Bounds())
	return s.dev.Draw(s.dev.Bounds(), img, image.Point{})
}

func (s *Screen) Close() error {
	_ = s.Blank()
	return s.bus.Close()
}

// HandleScreenSaver blanks the screen once it was idle for ScreenTimeout
func (s *Screen) HandleScreenSaver(ctx context.Context) {
	t := time.NewTicker(1 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.mu.Lock()
			if !s.blanked && shouldBlank(s.lastActive, now) {
				_ = s.blank()
			}
			s.mu.Unlock()
		}
	}
}

func shouldBlank(lastActive, now time.Time) bool {
	return now.Sub(lastActive) >= ScreenTimeout
}

// render clears dst and draws each line, white on black.
// The title line is inverted, black on white.
func render(dst draw.Image, lines []string) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{image1bit.Off}, image.Point{}, draw.Src)

	for i, text := range lines {
		if i >= LineCount {
			break
		}

		fg, bg := image1bit.On, image1bit.Off
		if i == 0 {
			fg, bg = bg, fg
		}

		top := dst.Bounds().Min.Y + i*textFont.Height
		band := image.Rect(dst.Bounds().Min.X, top, dst.Bounds().Max.X, top+textFont.Height)
		draw.Draw(dst, band, &image.Uniform{bg}, image.Point{}, draw.Src)

		drawer := font.Drawer{
			Dst:  dst,
			Src:  &image.Uniform{fg},
			Face: textFont,
			Dot:  fixed.P(dst.Bounds().Min.X, top+textFont.Height-textFont.Descent),
		}
		drawer.DrawString(text)
	}
}
