// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345

import (
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// DebugF is the signature of the register trace hook set in Opts.Debug.
type DebugF func(format string, args ...interface{})

var (
	SPIFrequency = physic.KiloHertz * 50
	SPIMode      = spi.Mode3 // Defines the base clock signal, along with the polarity and phase of the data signal.
	SPIBits      = 8
)

// spiRead is set in the address byte of an SPI read.
const spiRead byte = 0x80

// transport moves single bytes to and from numbered registers. Exactly one
// of i2c and spi is set. It does not retry; every bus error is returned as a
// *TransportError.
type transport struct {
	i2c   *i2c.Dev
	spi   spi.Conn
	debug DebugF
}

func (t *transport) String() string {
	if t.i2c != nil {
		return t.i2c.String()
	}
	return t.spi.String()
}

// readRegister returns the content of register reg.
//
// On I²C this is one combined transaction: the register address is written
// then one byte is read back with a repeated start.
func (t *transport) readRegister(reg byte) (byte, error) {
	var (
		v   byte
		err error
	)
	if t.i2c != nil {
		var r [1]byte
		err = t.i2c.Tx([]byte{reg}, r[:])
		v = r[0]
	} else {
		// The second byte is a "don't care" value clocking the answer out.
		w := [...]byte{reg | spiRead, 0x00}
		var r [2]byte
		err = t.spi.Tx(w[:], r[:])
		v = r[1]
	}
	if err != nil {
		t.debug("read register %#x failed: %v", reg, err)
		return 0, &TransportError{Op: "read", Reg: reg, Err: err}
	}
	t.debug("read register %#x = %#x", reg, v)
	return v, nil
}

// writeRegister sends the two byte payload {reg, value} in one transaction.
func (t *transport) writeRegister(reg, value byte) error {
	w := [...]byte{reg, value}
	var err error
	if t.i2c != nil {
		err = t.i2c.Tx(w[:], nil)
	} else {
		var r [2]byte
		err = t.spi.Tx(w[:], r[:])
	}
	if err != nil {
		t.debug("write register %#x value %#x failed: %v", reg, value, err)
		return &TransportError{Op: "write", Reg: reg, Err: err}
	}
	t.debug("write register %#x value %#x", reg, value)
	return nil
}

func noop(string, ...interface{}) {}
