// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mqttpub publishes accelerometer samples as JSON to an MQTT broker.
package mqttpub

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/GermanBionicSystems/accel/adxl345"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// DefaultTopic is used when Publisher is created with an empty topic.
const DefaultTopic = "accel/adxl345"

// Client is the subset of mqtt.Client used by Publisher.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Sample is the JSON payload of one message.
type Sample struct {
	Source string `json:"source"`
	Ax     int16  `json:"ax"`
	Ay     int16  `json:"ay"`
	Az     int16  `json:"az"`
	Time   string `json:"time"`
}

// Publisher sends samples to one topic at QoS 0, retained, so late
// subscribers get the last sample.
type Publisher struct {
	c      Client
	topic  string
	source string
}

// New returns a Publisher. source identifies the sensor in each payload.
func New(c Client, topic, source string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{c: c, topic: topic, source: source}
}

// Dial connects to broker, for example "tcp://localhost:1883".
func Dial(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)
	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqttpub: connect %s: %w", broker, token.Error())
	}
	return c, nil
}

// Publish sends a taken at t and waits for the broker to accept it.
func (p *Publisher) Publish(a adxl345.Acceleration, t time.Time) error {
	payload, err := json.Marshal(Sample{
		Source: p.source,
		Ax:     a.X,
		Ay:     a.Y,
		Az:     a.Z,
		Time:   t.Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("mqttpub: %w", err)
	}
	if token := p.c.Publish(p.topic, 0, true, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqttpub: publish %s: %w", p.topic, token.Error())
	}
	return nil
}

func (p *Publisher) String() string {
	return fmt.Sprintf("mqttpub{%s}", p.topic)
}
