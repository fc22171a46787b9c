// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345

import (
	"encoding/binary"
	"fmt"
	"io"
)

// SampleSize is the number of bytes of one encoded sample.
const SampleSize = 6

// Read implements io.Reader. p must be exactly SampleSize bytes long, any
// other length returns ErrBufferSize without touching the bus. On success
// X, Y and Z are written as little-endian int16 values.
func (d *Dev) Read(p []byte) (int, error) {
	if len(p) != SampleSize {
		return 0, ErrBufferSize
	}
	var a Acceleration
	if err := d.Sense(&a); err != nil {
		return 0, err
	}
	a.encode(p)
	return SampleSize, nil
}

func (a *Acceleration) encode(p []byte) {
	binary.LittleEndian.PutUint16(p[0:], uint16(a.X))
	binary.LittleEndian.PutUint16(p[2:], uint16(a.Y))
	binary.LittleEndian.PutUint16(p[4:], uint16(a.Z))
}

// DecodeSample parses a sample produced by Read.
func DecodeSample(p []byte) (Acceleration, error) {
	if len(p) != SampleSize {
		return Acceleration{}, fmt.Errorf("adxl345: got %d bytes, expected %d: %w", len(p), SampleSize, io.ErrUnexpectedEOF)
	}
	return Acceleration{
		X: int16(binary.LittleEndian.Uint16(p[0:])),
		Y: int16(binary.LittleEndian.Uint16(p[2:])),
		Z: int16(binary.LittleEndian.Uint16(p[4:])),
	}, nil
}

var _ io.Reader = &Dev{}
