// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// adxl345 reads samples from an ADXL345 accelerometer and prints them.
//
// It exits with 0 when the requested number of samples was read or on
// interrupt, and 1 when the device cannot be opened or a sample cannot be
// read.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GermanBionicSystems/accel/adxl345"
	"github.com/GermanBionicSystems/accel/axisbar"
	"github.com/GermanBionicSystems/accel/mqttpub"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// sink consumes one sample.
type sink func(a adxl345.Acceleration, t time.Time) error

func printSample(a adxl345.Acceleration, _ time.Time) error {
	_, err := fmt.Printf("ADXL345: X=%d, Y=%d, Z=%d\n", a.X, a.Y, a.Z)
	return err
}

// readSample reads one frame from r. A failed sample is retried up to
// retries times, each retry being a complete new read. Retrying stops with
// ctx.Err() once ctx is canceled.
func readSample(ctx context.Context, r io.Reader, frame []byte, retries int) (adxl345.Acceleration, error) {
	for attempt := 0; ; attempt++ {
		if attempt != 0 {
			if err := ctx.Err(); err != nil {
				return adxl345.Acceleration{}, err
			}
		}
		n, err := r.Read(frame)
		if err == nil {
			if n != len(frame) {
				return adxl345.Acceleration{}, fmt.Errorf("read %d bytes, expected %d", n, len(frame))
			}
			return adxl345.DecodeSample(frame)
		}
		var sre *adxl345.SampleReadError
		if !errors.As(err, &sre) || attempt >= retries {
			return adxl345.Acceleration{}, err
		}
		log.Printf("retrying: %v", err)
	}
}

// run reads count samples, or until ctx is canceled when count is 0, and
// hands each to every sink.
func run(ctx context.Context, r io.Reader, interval time.Duration, count, retries int, sinks ...sink) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	frame := make([]byte, adxl345.SampleSize)
	for i := 0; count == 0 || i < count; i++ {
		if i != 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
			}
		}
		a, err := readSample(ctx, r, frame, retries)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		now := time.Now()
		for _, s := range sinks {
			if err := s(a, now); err != nil {
				return err
			}
		}
	}
	return nil
}

func open(useSPI bool, name string, addr uint16, opts *adxl345.Opts) (*adxl345.Dev, io.Closer, error) {
	if useSPI {
		p, err := spireg.Open(name)
		if err != nil {
			return nil, nil, err
		}
		d, err := adxl345.NewSPI(p, opts)
		if err != nil {
			p.Close()
			return nil, nil, err
		}
		return d, p, nil
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, nil, err
	}
	d, err := adxl345.NewI2C(b, addr, opts)
	if err != nil {
		b.Close()
		return nil, nil, err
	}
	return d, b, nil
}

func mainImpl() error {
	name := flag.String("b", "", "I²C bus or SPI port to use")
	useSPI := flag.Bool("spi", false, "use SPI instead of I²C")
	addr := flag.Uint("a", uint(adxl345.DefaultAddress), "I²C address")
	interval := flag.Duration("i", 100*time.Millisecond, "sampling interval")
	count := flag.Int("n", 0, "number of samples to read, 0 to read until interrupted")
	retries := flag.Int("r", 0, "retries of a failed sample before giving up")
	bar := flag.Bool("bar", false, "draw samples as bars instead of printing them")
	broker := flag.String("mqtt", "", "MQTT broker to publish samples to, e.g. tcp://localhost:1883")
	topic := flag.String("topic", mqttpub.DefaultTopic, "MQTT topic")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	if *addr > 0x7F {
		return fmt.Errorf("invalid I²C address %#x", *addr)
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	opts := adxl345.DefaultOpts
	if *verbose {
		opts.Debug = log.Printf
	}
	d, c, err := open(*useSPI, *name, uint16(*addr), &opts)
	if err != nil {
		return err
	}
	defer c.Close()
	log.Printf("opened %s", d)

	var sinks []sink
	if *bar {
		b := axisbar.New(&axisbar.Opts{})
		defer b.Halt()
		sinks = append(sinks, func(a adxl345.Acceleration, _ time.Time) error { return b.Show(a) })
	} else {
		sinks = append(sinks, printSample)
	}
	if *broker != "" {
		client, err := mqttpub.Dial(*broker, fmt.Sprintf("adxl345-%d", os.Getpid()))
		if err != nil {
			return err
		}
		defer client.Disconnect(250)
		sinks = append(sinks, mqttpub.New(client, *topic, d.String()).Publish)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = run(ctx, d, *interval, *count, *retries, sinks...)
	if err2 := d.Halt(); err == nil {
		err = err2
	}
	return err
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "adxl345: %s.\n", err)
		os.Exit(1)
	}
}
