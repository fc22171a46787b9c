// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package adxl345 controls an ADXL345 3-axis accelerometer over I²C or SPI.
//
// The driver places the sensor in measurement mode with a full resolution
// ±16g data format and returns raw signed 16-bit counts per axis. No
// calibration, filtering or unit conversion is applied.
//
// A Dev is safe for concurrent use: the six register reads making up one
// sample are issued under a single lock so samples are never torn between
// callers.
//
// Dev also implements io.Reader. Every Read fills exactly six bytes holding
// X, Y and Z as little-endian int16 values.
//
// # Datasheet
//
// http://www.analog.com/media/en/technical-documentation/data-sheets/ADXL345.pdf
package adxl345
