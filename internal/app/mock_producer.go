// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/reset_computer/internal/config"
	"github.com/relabs-tech/reset_computer/internal/telemetry"
)

// RunMockProducer publishes synthetic orientation samples to the
// orientation topic at the configured stream rate, for exercising the
// estimator/console/web chain without the rig attached.
func RunMockProducer() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDMockProducer)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Printf("mock producer: connected to MQTT broker at %s", cfg.MQTTBroker)

	src := telemetry.NewMockSource()
	ticker := time.NewTicker(time.Duration(cfg.StreamDT * float64(time.Second)))
	defer ticker.Stop()

	for range ticker.C {
		sample, err := src.Next()
		if err != nil {
			log.Printf("mock producer: source error: %v", err)
			continue
		}

		payload, err := json.Marshal(sample)
		if err != nil {
			log.Printf("mock producer: json marshal error: %v", err)
			continue
		}

		token := client.Publish(cfg.TopicOrientation, 0, true, payload)
		token.Wait()
		if token.Error() != nil {
			log.Printf("mock producer: publish error: %v", token.Error())
		}
	}
	return nil
}
