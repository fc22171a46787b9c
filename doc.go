// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package accel is a container for the ADXL345 accelerometer driver and the
// tools built on it.
//
// See package adxl345 for the driver, axisbar and mqttpub for sample sinks
// and cmd/adxl345 for the polling client.
package accel
