// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package axisbar draws accelerometer samples on a terminal as three
// horizontal bars using ANSI color codes.
//
// Each axis gets a segment of Opts.Width cells centered on zero; positive
// counts grow to the right, negative ones to the left. X is red, Y is green
// and Z is blue.
package axisbar

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/accel/adxl345"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"golang.org/x/image/colornames"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	// Width is the number of cells per axis. Defaults to 32.
	Width int
	// FullScale is the count that fills half a segment. Defaults to 512,
	// which is 2g in full resolution mode.
	FullScale int
	Palette   *ansi256.Palette
	// W is where the bars are written. Defaults to a colorable stdout.
	W io.Writer

	_ struct{}
}

var (
	axisColors = [3]color.RGBA{colornames.Red, colornames.Lime, colornames.Blue}
	background = colornames.Black
)

// Dev renders samples to a terminal.
type Dev struct {
	w         io.Writer
	width     int
	fullScale int
	palette   ansi256.Palette

	pixels []byte
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	width := opts.Width
	if width <= 0 {
		width = 32
	}
	fs := opts.FullScale
	if fs <= 0 {
		fs = 512
	}
	return &Dev{
		w:         w,
		width:     width,
		fullScale: fs,
		palette:   *p,
		pixels:    make([]byte, 3*3*width),
	}
}

func (d *Dev) String() string {
	return "AxisBar"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors and moves to the next line.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Show renders a.
func (d *Dev) Show(a adxl345.Acceleration) error {
	half := d.width / 2
	for i, v := range [3]int16{a.X, a.Y, a.Z} {
		n := cells(v, d.fullScale, half)
		lo, hi := half, half+n
		if v < 0 {
			lo, hi = half-n, half
		}
		for c := 0; c < d.width; c++ {
			col := background
			if c >= lo && c < hi {
				col = axisColors[i]
			}
			d.set(i*d.width+c, col)
		}
	}
	_, err := d.refresh()
	return err
}

// cells returns how many cells of a half segment v covers, rounded to the
// nearest cell and clamped to half.
func cells(v int16, fullScale, half int) int {
	m := int(v)
	if m < 0 {
		m = -m
	}
	n := (m*half + fullScale/2) / fullScale
	if n > half {
		n = half
	}
	return n
}

func (d *Dev) set(i int, c color.RGBA) {
	d.pixels[3*i] = c.R
	d.pixels[3*i+1] = c.G
	d.pixels[3*i+2] = c.B
}

// Write accepts a stream of raw RGB pixels and writes it to the console.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels)%3 != 0 {
		return 0, errors.New("axisbar: invalid RGB stream length")
	}
	copy(d.pixels, pixels)
	return d.refresh()
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rectangle{Max: image.Point{X: 3 * d.width, Y: 1}}
}

// Draw implements display.Drawer. The display is one row of 3*Width cells,
// X then Y then Z segments, so only the first row of src is used.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	srcR := src.Bounds()
	srcR.Min = srcR.Min.Add(sp)
	if dX := r.Dx(); dX < srcR.Dx() {
		srcR.Max.X = srcR.Min.X + dX
	}
	if dY := r.Dy(); dY < srcR.Dy() {
		srcR.Max.Y = srcR.Min.Y + dY
	}
	deltaX3 := 3 * (r.Min.X - srcR.Min.X)
	for sX := srcR.Min.X; sX < srcR.Max.X; sX++ {
		r16, g16, b16, _ := src.At(sX, srcR.Min.Y).RGBA()
		dX3 := 3*sX + deltaX3
		d.pixels[dX3] = byte(r16 >> 8)
		d.pixels[dX3+1] = byte(g16 >> 8)
		d.pixels[dX3+2] = byte(b16 >> 8)
	}
	_, err := d.refresh()
	return err
}

func (d *Dev) refresh() (int, error) {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i := 0; i < len(d.pixels)/3; i++ {
		if i != 0 && i%d.width == 0 {
			_, _ = d.buf.WriteString("\033[0m ")
		}
		c := color.NRGBA{d.pixels[3*i], d.pixels[3*i+1], d.pixels[3*i+2], 255}
		_, _ = io.WriteString(&d.buf, d.palette.Block(c))
	}
	_, _ = d.buf.WriteString("\033[0m ")
	_, err := d.buf.WriteTo(d.w)
	return len(d.pixels), err
}

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
