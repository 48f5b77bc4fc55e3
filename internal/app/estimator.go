// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"log"
	"math"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/reset_computer/internal/analyze"
	"github.com/relabs-tech/reset_computer/internal/config"
	"github.com/relabs-tech/reset_computer/internal/events"
	"github.com/relabs-tech/reset_computer/internal/quat"
	"github.com/relabs-tech/reset_computer/internal/reset"
	"github.com/relabs-tech/reset_computer/internal/telemetry"
)

// RunEstimator is the online estimator process: it subscribes to the
// orientation topic, converts consecutive samples into relative rotation
// increments feeding a bounded stream buffer, and periodically publishes
// a resetability metric row. Rows that pass the candidate filter are
// additionally published on the events topic and appended to the event
// log.
func RunEstimator() error {
	cfg := config.Get()

	var (
		mu         sync.Mutex
		stream     = reset.NewStream(cfg.StreamWindowSec, cfg.StreamDT)
		lastSample telemetry.Sample
		lastQuat   quat.Quat
		haveLast   bool
	)

	eventLog, err := events.NewLogger(cfg.EventLogFile)
	if err != nil {
		return err
	}
	log.Printf("estimator: candidate events will be logged to %s", eventLog.Path())

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDEstimator)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Printf("estimator: connected to MQTT broker at %s", cfg.MQTTBroker)

	token := client.Subscribe(cfg.TopicOrientation, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s telemetry.Sample
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("estimator: orientation unmarshal error: %v", err)
			return
		}
		q := quat.Normalize(quat.Quat{W: s.QW, X: s.QX, Y: s.QY, Z: s.QZ})

		mu.Lock()
		defer mu.Unlock()
		if haveLast {
			axis, angle := quat.ToAxisAngle(quat.Relative(q, lastQuat))
			stream.Push(axis, angle)
		}
		lastSample = s
		lastQuat = q
		haveLast = true
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("estimator: subscribed to %s", cfg.TopicOrientation)

	ticker := time.NewTicker(time.Duration(cfg.EstimateInterval) * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		mu.Lock()
		seq := stream.Sequence()
		sample := lastSample
		q := lastQuat
		ready := haveLast
		mu.Unlock()

		if !ready || len(seq) == 0 {
			continue
		}

		_, r, thetaNet := reset.Estimate(seq)
		pred := reset.Predict(seq, q)

		row := analyze.MetricRow{
			Timestamp:           sample.Timestamp,
			R:                   r,
			ThetaNetDeg:         thetaNet * 180 / math.Pi,
			PredictedBenefitDeg: pred.BenefitDeg,
		}

		payload, err := json.Marshal(row)
		if err != nil {
			log.Printf("estimator: metric marshal error: %v", err)
			continue
		}
		if token := client.Publish(cfg.TopicMetrics, 0, true, payload); token.Wait() && token.Error() != nil {
			log.Printf("estimator: metric publish error: %v", token.Error())
			continue
		}

		if !analyze.IsCandidate(row) {
			continue
		}
		if token := client.Publish(cfg.TopicEvents, 0, false, payload); token.Wait() && token.Error() != nil {
			log.Printf("estimator: event publish error: %v", token.Error())
		}
		if err := eventLog.Log(cfg.Domain, row); err != nil {
			log.Printf("estimator: event log error: %v", err)
		}
		log.Printf("estimator: reset candidate at t=%.2fs R=%.4f theta=%.2fdeg benefit=%.2fdeg lambda=%.3f",
			row.Timestamp, row.R, row.ThetaNetDeg, row.PredictedBenefitDeg, pred.Lambda)
	}
	return nil
}
