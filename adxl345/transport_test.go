// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/spi/spitest"
)

func TestTransport_i2c(t *testing.T) {
	bus := i2ctest.Playback{Ops: []i2ctest.IO{
		{Addr: DefaultAddress, W: []byte{BwRate, 0x0A}},
		pbRead(BwRate, 0x0A),
	}}
	d, err := NewI2C(&bus, DefaultAddress, &noCheck)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.t.writeRegister(BwRate, 0x0A); err != nil {
		t.Fatal(err)
	}
	v, err := d.t.readRegister(BwRate)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x0A {
		t.Fatalf("got %#x", v)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestTransport_error(t *testing.T) {
	bus := &regBus{}
	d, err := NewI2C(bus, AltAddress, &noCheck)
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.t.readRegister(DataZ1)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.Op != "read" || te.Reg != DataZ1 || te.Err == nil {
		t.Fatalf("unexpected %#v", te)
	}
	if !strings.Contains(err.Error(), "0x37") {
		t.Fatalf("error does not name the register: %v", err)
	}
	err = d.t.writeRegister(PowerCtl, 0x08)
	if !errors.As(err, &te) || te.Op != "write" || te.Reg != PowerCtl {
		t.Fatalf("unexpected %v", err)
	}
	// No retry: one transaction per call.
	if n := bus.count(); n != 2 {
		t.Fatalf("expected 2 transactions, got %d", n)
	}
}

func TestTransport_debug(t *testing.T) {
	var lines []string
	opts := noCheck
	opts.Debug = func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}
	bus := &regBus{}
	d, err := NewI2C(bus, DefaultAddress, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	want := []string{"write register 0x2d value 0x8", "write register 0x31 value 0xb"}
	if len(lines) != len(want) {
		t.Fatalf("got %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestNewSPI(t *testing.T) {
	port := spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{
				// DeviceID read, address with the read bit set.
				{W: []byte{0x80, 0x00}, R: []byte{0x00, 0xE5}},
				{W: []byte{PowerCtl, 0x08}, R: []byte{0x00, 0x00}},
				{W: []byte{DataFormat, 0x0B}, R: []byte{0x00, 0x00}},
				{W: []byte{0xB2, 0x00}, R: []byte{0x00, 0x10}},
				{W: []byte{0xB3, 0x00}, R: []byte{0x00, 0x00}},
				{W: []byte{0xB4, 0x00}, R: []byte{0x00, 0x20}},
				{W: []byte{0xB5, 0x00}, R: []byte{0x00, 0xFF}},
				{W: []byte{0xB6, 0x00}, R: []byte{0x00, 0x00}},
				{W: []byte{0xB7, 0x00}, R: []byte{0x00, 0x80}},
			},
		},
	}
	d, err := NewSPI(&port, nil)
	if err != nil {
		t.Fatal(err)
	}
	var a Acceleration
	if err := d.Sense(&a); err != nil {
		t.Fatal(err)
	}
	if want := (Acceleration{X: 16, Y: -224, Z: -32768}); a != want {
		t.Fatalf("got %s, want %s", a, want)
	}
	if err := port.Close(); err != nil {
		t.Fatal(err)
	}
}
