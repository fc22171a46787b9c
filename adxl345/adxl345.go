// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
)

const (
	// DefaultAddress is the I²C address with the ALT ADDRESS pin low.
	DefaultAddress uint16 = 0x53
	// AltAddress is the I²C address with the ALT ADDRESS pin high.
	AltAddress uint16 = 0x1D

	expectedDeviceID byte = 0xE5

	minSampleInterval = time.Millisecond
)

// DefaultOpts selects measurement mode with full resolution at ±16g, which
// writes 0x08 to PowerCtl and 0x0B to DataFormat.
var DefaultOpts = Opts{
	InitOnStart:      true,
	ExpectedDeviceID: expectedDeviceID,
	Range:            Range16G,
	FullResolution:   true,
}

// Opts holds the configuration options for the device.
type Opts struct {
	// InitOnStart runs Init from the constructor.
	InitOnStart bool
	// ExpectedDeviceID is compared against the DeviceID register before
	// initialization. 0 skips the check.
	ExpectedDeviceID byte
	// Range is the measurement range written to DataFormat.
	Range Range
	// FullResolution keeps a 4mg/LSB scale factor across all ranges.
	FullResolution bool
	// Debug, when set, is called for every register transaction.
	Debug DebugF
}

func (o *Opts) dataFormat() (byte, error) {
	if o.Range&^Range(rangeMask) != 0 {
		return 0, fmt.Errorf("adxl345: invalid range %d", o.Range)
	}
	f := byte(o.Range)
	if o.FullResolution {
		f |= bitFullRes
	}
	return f, nil
}

type state int

const (
	uninitialized state = iota
	initialized
	halted
)

// Dev is a session with one ADXL345.
type Dev struct {
	t      transport
	format byte

	mu    sync.Mutex
	state state
	stop  chan struct{}
	wg    sync.WaitGroup
}

// NewI2C returns a Dev that communicates over I²C at addr, usually
// DefaultAddress. The opts can be nil.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	return newDev(transport{i2c: &i2c.Dev{Bus: b, Addr: addr}}, opts)
}

// NewSPI returns a Dev that communicates over SPI. The opts can be nil.
func NewSPI(p spi.Port, opts *Opts) (*Dev, error) {
	// Convert the spi.Port into a spi.Conn so it can be used for communication.
	c, err := p.Connect(SPIFrequency, SPIMode, SPIBits)
	if err != nil {
		return nil, fmt.Errorf("adxl345: %w", err)
	}
	return newDev(transport{spi: c}, opts)
}

func newDev(t transport, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	f, err := opts.dataFormat()
	if err != nil {
		return nil, err
	}
	t.debug = opts.Debug
	if t.debug == nil {
		t.debug = noop
	}
	d := &Dev{t: t, format: f}
	if opts.ExpectedDeviceID != 0 {
		id, err := d.t.readRegister(DeviceID)
		if err != nil {
			return nil, err
		}
		if id != opts.ExpectedDeviceID {
			return nil, &DeviceIDError{Want: opts.ExpectedDeviceID, Got: id}
		}
	}
	if opts.InitOnStart {
		if err := d.Init(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("ADXL345{%s}", &d.t)
}

// Init puts the sensor in measurement mode and writes the data format.
//
// It must succeed before Sense or Read can be used. Calling it again rewrites
// the same two registers. On failure the device is considered
// uninitialized.
func (d *Dev) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == halted {
		return ErrClosed
	}
	writes := [...]struct{ reg, value byte }{
		{PowerCtl, powerMeasure},
		{DataFormat, d.format},
	}
	for _, w := range writes {
		if err := d.t.writeRegister(w.reg, w.value); err != nil {
			d.state = uninitialized
			return &InitError{Reg: w.reg, Err: err}
		}
	}
	d.state = initialized
	return nil
}

// Initialized reports whether Init succeeded and the device was not halted
// since.
func (d *Dev) Initialized() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == initialized
}

// Sense reads one sample. The six data registers are read in address order
// and a failure on any of them fails the whole sample, leaving a unchanged.
func (d *Dev) Sense(a *Acceleration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.state {
	case halted:
		return ErrClosed
	case uninitialized:
		return &NotInitializedError{}
	}
	var raw [dataRegsCount]byte
	for i := range raw {
		reg := byte(firstDataReg + i)
		v, err := d.t.readRegister(reg)
		if err != nil {
			return &SampleReadError{Reg: reg, Err: err}
		}
		raw[i] = v
	}
	a.X = ComposeAxis(raw[0], raw[1])
	a.Y = ComposeAxis(raw[2], raw[3])
	a.Z = ComposeAxis(raw[4], raw[5])
	return nil
}

// SenseContinuous reads a sample every interval and sends it on the returned
// channel. Failed samples are skipped; the next tick issues a fresh set of
// reads. Call Halt to stop.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan Acceleration, error) {
	if interval < minSampleInterval {
		return nil, errors.New("adxl345: sample interval is too short")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case d.state == halted:
		return nil, ErrClosed
	case d.state == uninitialized:
		return nil, &NotInitializedError{}
	case d.stop != nil:
		return nil, errors.New("adxl345: SenseContinuous already running")
	}
	stop := make(chan struct{})
	d.stop = stop
	ch := make(chan Acceleration, 16)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				var a Acceleration
				if err := d.Sense(&a); err != nil {
					d.t.debug("continuous sample skipped: %v", err)
					continue
				}
				select {
				case ch <- a:
				case <-stop:
					return
				}
			}
		}
	}()
	return ch, nil
}

// DeviceID reads the DeviceID register.
func (d *Dev) DeviceID() (byte, error) {
	return d.readConfig(DeviceID)
}

// DataFormat reads back the DataFormat register.
func (d *Dev) DataFormat() (byte, error) {
	return d.readConfig(DataFormat)
}

func (d *Dev) readConfig(reg byte) (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == halted {
		return 0, ErrClosed
	}
	return d.t.readRegister(reg)
}

// Halt stops SenseContinuous, returns the sensor to standby and ends the
// session. Every later call fails with ErrClosed. Implements conn.Resource.
func (d *Dev) Halt() error {
	// The session is marked halted under the same lock that takes the stop
	// channel so no SenseContinuous can start while the goroutine drains.
	d.mu.Lock()
	prev := d.state
	d.state = halted
	stop := d.stop
	d.stop = nil
	d.mu.Unlock()
	if stop != nil {
		close(stop)
		d.wg.Wait()
	}
	if prev != initialized {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.t.writeRegister(PowerCtl, powerStandby)
}

// ComposeAxis combines the low and high data register bytes of one axis into
// its two's complement value.
func ComposeAxis(low, high byte) int16 {
	return int16(uint16(high)<<8 | uint16(low))
}

// Acceleration represents the raw acceleration counts on the three axes.
type Acceleration struct {
	X int16
	Y int16
	Z int16
}

// String returns a string representation of the Acceleration
func (a Acceleration) String() string {
	return fmt.Sprintf("X:%d Y:%d Z:%d", a.X, a.Y, a.Z)
}

var _ conn.Resource = &Dev{}
