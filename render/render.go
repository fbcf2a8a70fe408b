// Package render draws an animated GIF replay of a Connect Four game, one
// frame per ply, by rasterizing board.Board's own textual rendering.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"

	"github.com/gorgonia/connectfour/board"
	"github.com/gorgonia/connectfour/session"
)

const (
	dpi        = 144.0
	fontsize   = 14.0
	lineheight = 1.3
)

var regular *truetype.Font

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

var palette = color.Palette{
	color.White,
	color.Black,
	color.RGBA{R: 0xf4, G: 0xd0, B: 0x35, A: 0xff}, // Yellow discs
	color.RGBA{R: 0xd6, G: 0x30, B: 0x31, A: 0xff}, // Red discs
}

// Encoder rasterizes a sequence of board positions into an animated GIF.
// Its zero value is not usable; construct with NewEncoder.
type Encoder struct {
	padW, padH int
	face       font.Face
	out        *gif.GIF
}

// NewEncoder returns an Encoder ready to accept frames via AddFrame.
func NewEncoder() *Encoder {
	return &Encoder{
		padW: 12,
		padH: 12,
		face: truetype.NewFace(regular, &truetype.Options{
			Size:    fontsize,
			DPI:     dpi,
			Hinting: font.HintingFull,
		}),
		out: &gif.GIF{LoopCount: -1},
	}
}

// AddFrame appends one frame rendering b's current position, captioned with
// a header line such as "Ply 5: column 3" or "Ply 7: column 4 - YellowWins".
// delay is the frame delay
// in hundredths of a second.
func (e *Encoder) AddFrame(b *board.Board, header string, delay int) {
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	dy := int(math.Ceil(fontsize * lineheight * dpi / 72))

	maxLineWidth := 0
	drawer := &font.Drawer{Face: e.face}
	for _, l := range append([]string{header}, lines...) {
		if w := drawer.MeasureString(l).Ceil(); w > maxLineWidth {
			maxLineWidth = w
		}
	}

	w := maxLineWidth + 2*e.padW
	h := (len(lines)+1)*dy + 2*e.padH

	im := image.NewPaletted(image.Rect(0, 0, w, h), palette)
	draw.Draw(im, im.Bounds(), image.White, image.Point{}, draw.Src)

	drawer.Dst = im
	drawer.Src = image.Black

	y := e.padH + dy
	drawer.Dot = fixed.P(e.padW, y)
	drawer.DrawString(header)

	for _, l := range lines {
		y += dy
		drawer.Dot = fixed.P(e.padW, y)
		drawer.DrawString(l)
	}

	e.out.Image = append(e.out.Image, im)
	e.out.Delay = append(e.out.Delay, delay)
}

// Flush writes the accumulated frames to w as a single animated GIF.
func (e *Encoder) Flush(w io.Writer) error {
	return errors.Wrap(gif.EncodeAll(w, e.out), "render: encoding GIF")
}

// WriteGIF replays history from the empty board and writes an animated GIF
// of the game to w: one frame for the empty board plus one frame per move.
// A move that ends the game gets a longer frame delay. history must be a
// legal move sequence; it need not end in a terminal position.
func WriteGIF(w io.Writer, history []int) error {
	sess := session.New()
	enc := NewEncoder()
	enc.AddFrame(sess.Board(), "Ply 0", 100)

	for i, c := range history {
		snap, err := sess.Move(c)
		if err != nil {
			return errors.Wrapf(err, "render: replaying move %d (column %d)", i, c)
		}
		header := fmt.Sprintf("Ply %d: column %d", i+1, c)
		delay := 100
		if snap.Result != board.InProgress {
			header = fmt.Sprintf("%s - %s", header, snap.Result)
			delay = 400
		}
		enc.AddFrame(sess.Board(), header, delay)
	}

	return enc.Flush(w)
}
