// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-bounce/pkg/config"
)

// fontURL is the name the embedded Go Regular face is registered under in
// engo.Files.
const fontURL = "goregular.ttf"

// minShade keeps a nearly dead body visible against the background.
const minShade = 0.25

// Palette holds the colors used for the arena. Body colors darken as life
// runs out.
type Palette struct {
	Background color.Color
	Text       color.Color
	Ball       color.NRGBA
	Player     color.NRGBA

	ballLife   int
	playerLife int
}

// NewPalette creates the default palette scaled to the configured lives
func NewPalette(cfg *config.GameConfig) *Palette {
	return &Palette{
		Background: color.RGBA{16, 16, 24, 255},
		Text:       color.White,
		Ball:       color.NRGBA{230, 70, 60, 255},
		Player:     color.NRGBA{80, 170, 255, 255},
		ballLife:   cfg.Game.BallLife,
		playerLife: cfg.Game.PlayerLife,
	}
}

// BallColor returns the fill for a ball with the given life
func (p *Palette) BallColor(life int) color.NRGBA {
	return shade(p.Ball, life, p.ballLife)
}

// PlayerColor returns the fill for the player with the given life
func (p *Palette) PlayerColor(life int) color.NRGBA {
	return shade(p.Player, life, p.playerLife)
}

func shade(c color.NRGBA, life, full int) color.NRGBA {
	if full <= 0 || life >= full {
		return c
	}
	f := float64(life) / float64(full)
	if f < minShade {
		f = minShade
	}
	return color.NRGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// withAlpha replaces the alpha channel of c
func withAlpha(c color.NRGBA, alpha float32) color.NRGBA {
	switch {
	case alpha < 0:
		alpha = 0
	case alpha > 255:
		alpha = 255
	}
	c.A = uint8(alpha)
	return c
}

// PreloadFont registers the embedded Go Regular face with engo.Files. It must
// run during Scene.Preload.
func PreloadFont() error {
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("failed to load HUD font: %w", err)
	}
	return nil
}

// NewFont builds a HUD font from the preloaded face
func NewFont(size float64, fg color.Color) (*common.Font, error) {
	font := &common.Font{
		URL:  fontURL,
		FG:   fg,
		Size: size,
	}
	if err := font.CreatePreloaded(); err != nil {
		return nil, fmt.Errorf("failed to create HUD font: %w", err)
	}
	return font, nil
}
