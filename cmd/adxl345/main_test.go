// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GermanBionicSystems/accel/adxl345"
)

// frames replays a list of Read results.
type frames struct {
	data   [][]byte
	errs   []error
	calls  int
	onRead func(call int)
}

func (f *frames) Read(p []byte) (int, error) {
	i := f.calls
	f.calls++
	if f.onRead != nil {
		f.onRead(f.calls)
	}
	if i >= len(f.data) {
		return 0, errors.New("frames: exhausted")
	}
	if f.errs[i] != nil {
		return 0, f.errs[i]
	}
	return copy(p, f.data[i]), nil
}

var sample = []byte{0x10, 0x00, 0x20, 0xFF, 0x00, 0x80}

func TestReadSample(t *testing.T) {
	f := &frames{data: [][]byte{sample}, errs: []error{nil}}
	a, err := readSample(context.Background(), f, make([]byte, adxl345.SampleSize), 0)
	if err != nil {
		t.Fatal(err)
	}
	if a != (adxl345.Acceleration{X: 16, Y: -224, Z: -32768}) {
		t.Fatalf("got %s", a)
	}
}

func TestReadSample_short(t *testing.T) {
	f := &frames{data: [][]byte{sample[:4]}, errs: []error{nil}}
	if _, err := readSample(context.Background(), f, make([]byte, adxl345.SampleSize), 3); err == nil {
		t.Fatal("expected error on short read")
	}
	if f.calls != 1 {
		t.Fatalf("short read must not be retried, got %d calls", f.calls)
	}
}

func TestReadSample_retry(t *testing.T) {
	fail := &adxl345.SampleReadError{Reg: adxl345.DataY0, Err: errors.New("nack")}
	f := &frames{data: [][]byte{nil, sample}, errs: []error{fail, nil}}
	if _, err := readSample(context.Background(), f, make([]byte, adxl345.SampleSize), 1); err != nil {
		t.Fatal(err)
	}
	if f.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", f.calls)
	}

	f = &frames{data: [][]byte{nil, sample}, errs: []error{fail, nil}}
	if _, err := readSample(context.Background(), f, make([]byte, adxl345.SampleSize), 0); !errors.Is(err, fail) {
		t.Fatalf("expected sample error, got %v", err)
	}
}

func TestReadSample_notRetried(t *testing.T) {
	f := &frames{data: [][]byte{nil, sample}, errs: []error{&adxl345.NotInitializedError{}, nil}}
	if _, err := readSample(context.Background(), f, make([]byte, adxl345.SampleSize), 5); !errors.As(err, new(*adxl345.NotInitializedError)) {
		t.Fatalf("got %v", err)
	}
	if f.calls != 1 {
		t.Fatalf("expected 1 call, got %d", f.calls)
	}
}

func TestRun(t *testing.T) {
	f := &frames{data: [][]byte{sample, sample, sample}, errs: make([]error, 3)}
	var got []adxl345.Acceleration
	collect := func(a adxl345.Acceleration, _ time.Time) error {
		got = append(got, a)
		return nil
	}
	if err := run(context.Background(), f, time.Millisecond, 3, 0, collect); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d samples", len(got))
	}
}

func TestRun_canceled(t *testing.T) {
	f := &frames{data: [][]byte{sample}, errs: []error{nil}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := 0
	count := func(adxl345.Acceleration, time.Time) error {
		n++
		return nil
	}
	if err := run(ctx, f, time.Hour, 0, 0, count); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 sample before cancellation, got %d", n)
	}
}

func TestRun_error(t *testing.T) {
	f := &frames{}
	if err := run(context.Background(), f, time.Millisecond, 0, 0, printSample); err == nil {
		t.Fatal("expected error")
	}
}

// failing returns frames whose first n reads fail with a sample error.
func failing(n int) *frames {
	f := &frames{data: make([][]byte, n), errs: make([]error, n)}
	for i := range f.errs {
		f.errs[i] = &adxl345.SampleReadError{Reg: adxl345.DataX0, Err: errors.New("nack")}
	}
	return f
}

func TestReadSample_canceledDuringRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := failing(100)
	f.onRead = func(call int) {
		if call == 2 {
			cancel()
		}
	}
	if _, err := readSample(ctx, f, make([]byte, adxl345.SampleSize), 100); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if f.calls != 2 {
		t.Fatalf("retries continued after cancellation: %d calls", f.calls)
	}
}

func TestRun_canceledDuringRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := failing(100)
	f.onRead = func(call int) {
		if call == 3 {
			cancel()
		}
	}
	// An interrupt is a clean shutdown, not a read failure.
	if err := run(ctx, f, time.Millisecond, 0, 100, printSample); err != nil {
		t.Fatalf("run() = %v", err)
	}
	if f.calls != 3 {
		t.Fatalf("expected 3 reads, got %d", f.calls)
	}
}
