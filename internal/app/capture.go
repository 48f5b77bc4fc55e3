// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	serial "github.com/jacobsa/go-serial/serial"

	"github.com/relabs-tech/reset_computer/internal/config"
	"github.com/relabs-tech/reset_computer/internal/telemetry"
)

// RunCapture opens the rig's serial port, reads quaternion lines in the
// "qw,qx,qy,qz" framing the microcontroller emits, publishes each sample
// as JSON to the orientation topic, and appends it to the telemetry CSV
// for later batch analysis.
func RunCapture() error {
	cfg := config.Get()

	// ---- 1) Connect to MQTT broker ----
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDCapture)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Printf("capture: connected to MQTT broker at %s", cfg.MQTTBroker)

	// ---- 2) Open rig serial port ----
	serialOpts := serial.OpenOptions{
		PortName:              cfg.SerialPort,
		BaudRate:              uint(cfg.SerialBaudRate),
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", cfg.SerialPort, err)
	}
	defer port.Close()
	log.Printf("capture: serial port opened on %s at %d baud", cfg.SerialPort, cfg.SerialBaudRate)

	// ---- 3) Open telemetry CSV log ----
	logFile, err := os.Create(cfg.TelemetryFile)
	if err != nil {
		return fmt.Errorf("failed to create telemetry log %s: %w", cfg.TelemetryFile, err)
	}
	defer logFile.Close()
	if _, err := logFile.WriteString("timestamp,qw,qx,qy,qz\n"); err != nil {
		return fmt.Errorf("failed to write telemetry header: %w", err)
	}
	log.Printf("capture: logging telemetry to %s", cfg.TelemetryFile)

	reader := bufio.NewReader(port)
	start := time.Now()

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Printf("capture: serial read error: %v", err)
			return err
		}

		sample, ok := parseQuatLine(strings.TrimSpace(line))
		if !ok {
			// Noisy serial link or partial line; skip silently.
			continue
		}
		sample.Timestamp = time.Since(start).Seconds()

		payload, err := json.Marshal(sample)
		if err != nil {
			log.Printf("capture: json marshal error: %v", err)
			continue
		}

		token := client.Publish(cfg.TopicOrientation, 0, true, payload)
		token.Wait()
		if token.Error() != nil {
			log.Printf("capture: publish error: %v", token.Error())
			continue
		}

		if _, err := fmt.Fprintf(logFile, "%.4f,%.6f,%.6f,%.6f,%.6f\n",
			sample.Timestamp, sample.QW, sample.QX, sample.QY, sample.QZ); err != nil {
			log.Printf("capture: telemetry log write error: %v", err)
		}
	}
}

// parseQuatLine parses one "qw,qx,qy,qz" line. Malformed lines report
// !ok; the caller decides whether to skip or count them.
func parseQuatLine(line string) (telemetry.Sample, bool) {
	if line == "" {
		return telemetry.Sample{}, false
	}
	parts := strings.Split(line, ",")
	if len(parts) != 4 {
		return telemetry.Sample{}, false
	}
	values := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return telemetry.Sample{}, false
		}
		values[i] = v
	}
	return telemetry.Sample{QW: values[0], QX: values[1], QY: values[2], QZ: values[3]}, true
}
