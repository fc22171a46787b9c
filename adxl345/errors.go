// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345

import (
	"errors"
	"fmt"
)

var (
	// ErrBufferSize is returned by Read when the buffer is not exactly
	// SampleSize bytes long.
	ErrBufferSize = errors.New("adxl345: read buffer must be exactly 6 bytes")
	// ErrClosed is returned by every operation after Halt.
	ErrClosed = errors.New("adxl345: device halted")
)

// TransportError is a failed bus transaction against one register.
type TransportError struct {
	Op  string // "read" or "write"
	Reg byte
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("adxl345: %s register 0x%02x: %v", e.Op, e.Reg, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// InitError is returned when one of the mode setting writes fails. The
// sensor is in an unknown mode and must not be sampled.
type InitError struct {
	Reg byte
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("adxl345: initialization failed at register 0x%02x: %v", e.Reg, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// SampleReadError is returned when any of the six data register reads of a
// sample fails. No axis data is returned alongside it.
type SampleReadError struct {
	Reg byte
	Err error
}

func (e *SampleReadError) Error() string {
	return fmt.Sprintf("adxl345: sample read failed at register 0x%02x: %v", e.Reg, e.Err)
}

func (e *SampleReadError) Unwrap() error {
	return e.Err
}

// NotInitializedError is returned when a sample is requested before Init
// succeeded.
type NotInitializedError struct{}

func (e *NotInitializedError) Error() string {
	return "adxl345: device is not initialized"
}

// DeviceIDError reports an unexpected value in the DeviceID register.
type DeviceIDError struct {
	Want byte
	Got  byte
}

func (e *DeviceIDError) Error() string {
	return fmt.Sprintf("adxl345: wrong device connected, expected id 0x%02x, got 0x%02x", e.Want, e.Got)
}
