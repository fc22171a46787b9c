// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345

// Register map.
const (
	DeviceID = 0x00 // Device ID, expected to be 0xE5 when using ADXL345

	ThreshTap     = 0x1D // Tap threshold
	OfsX          = 0x1E // X-axis offset
	OfsY          = 0x1F // Y-axis offset
	OfsZ          = 0x20 // Z-axis offset
	Dur           = 0x21 // Tap duration
	Latent        = 0x22 // Tap latency
	Window        = 0x23 // Tap window
	ThreshAct     = 0x24 // Activity threshold
	ThreshInact   = 0x25 // Inactivity threshold
	TimeInact     = 0x26 // Inactivity time
	ActInactCtl   = 0x27 // Axis control for activity/inactivity detection
	ThreshFf      = 0x28 // Free-fall threshold
	TimeFf        = 0x29 // Free-fall time
	TapAxes       = 0x2A // Axis control for single tap/double tap
	ActTapStatus  = 0x2B // Source of single tap/double tap and activity
	BwRate        = 0x2C // Data rate and power mode control
	PowerCtl      = 0x2D // Power saving features control
	IntEnable     = 0x2E // Interrupt enable control
	IntMap        = 0x2F // Interrupt mapping control
	IntSource     = 0x30 // Source of interrupts
	DataFormat    = 0x31 // Data format control
	DataX0        = 0x32 // X-Axis Data 0
	DataX1        = 0x33 // X-Axis Data 1
	DataY0        = 0x34 // Y-Axis Data 0
	DataY1        = 0x35 // Y-Axis Data 1
	DataZ0        = 0x36 // Z-Axis Data 0
	DataZ1        = 0x37 // Z-Axis Data 1
	FifoCtl       = 0x38 // FIFO control
	FifoStatus    = 0x39 // FIFO status
	firstDataReg  = DataX0
	dataRegsCount = DataZ1 - DataX0 + 1
)

// PowerCtl values.
const (
	powerStandby byte = 0x00
	powerMeasure byte = 0x08 // Measure bit set, standby cleared.
)

// DataFormat bits.
const (
	bitFullRes byte = 1 << 3
	rangeMask  byte = 0x03
)

// Range is the measurement range selected in the DataFormat register.
type Range byte

const (
	Range2G  Range = 0x00 // ±2g
	Range4G  Range = 0x01 // ±4g
	Range8G  Range = 0x02 // ±8g
	Range16G Range = 0x03 // ±16g
)

func (r Range) String() string {
	switch r {
	case Range2G:
		return "±2g"
	case Range4G:
		return "±4g"
	case Range8G:
		return "±8g"
	case Range16G:
		return "±16g"
	default:
		return "invalid"
	}
}
