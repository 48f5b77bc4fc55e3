// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker               string
	MQTTClientIDCapture      string
	MQTTClientIDEstimator    string
	MQTTClientIDConsole      string
	MQTTClientIDWeb          string
	MQTTClientIDDisplay      string
	MQTTClientIDMockProducer string

	// Topics
	TopicOrientation string
	TopicMetrics     string
	TopicEvents      string

	// Serial rig (microcontroller streaming "qw,qx,qy,qz" lines)
	SerialPort     string
	SerialBaudRate int

	// Batch analysis
	AnalysisWindow int     // window length in samples
	AnalysisFPS    float64 // frame rate used when telemetry has no timestamps
	Domain         string  // robot, spacecraft, booster, gravity_rig

	// Online estimator
	StreamWindowSec  float64 // seconds of increments kept in the ring buffer
	StreamDT         float64 // expected increment spacing, seconds
	EstimateInterval int     // milliseconds between published metric rows

	// Files
	TelemetryFile string
	EventLogFile  string

	// Web Server
	WebServerPort int

	// Display (the ssd1306 driver fixes the I2C address at 0x3C)
	DisplayUpdateInterval int // milliseconds
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: unexported so other packages cannot access it directly.
//   - configOnce: ensures InitGlobal() only runs once, even if called multiple times.
//   - configMu: RWMutex protects concurrent access. Write lock for initialization,
//     read lock for Get() allows multiple concurrent readers.
//
// External code must use InitGlobal() to set and Get() to read.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{}
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_CAPTURE":
		c.MQTTClientIDCapture = value
	case "MQTT_CLIENT_ID_ESTIMATOR":
		c.MQTTClientIDEstimator = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value
	case "MQTT_CLIENT_ID_MOCK_PRODUCER":
		c.MQTTClientIDMockProducer = value

	// Topics
	case "TOPIC_ORIENTATION":
		c.TopicOrientation = value
	case "TOPIC_METRICS":
		c.TopicMetrics = value
	case "TOPIC_EVENTS":
		c.TopicEvents = value

	// Serial rig
	case "SERIAL_PORT":
		c.SerialPort = value
	case "SERIAL_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SERIAL_BAUD_RATE %q: %w", value, err)
		}
		c.SerialBaudRate = rate

	// Batch analysis
	case "ANALYSIS_WINDOW":
		window, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid ANALYSIS_WINDOW %q: %w", value, err)
		}
		if window < 1 {
			return fmt.Errorf("ANALYSIS_WINDOW must be >= 1, got %d", window)
		}
		c.AnalysisWindow = window
	case "ANALYSIS_FPS":
		fps, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid ANALYSIS_FPS %q: %w", value, err)
		}
		if fps <= 0 {
			return fmt.Errorf("ANALYSIS_FPS must be > 0, got %g", fps)
		}
		c.AnalysisFPS = fps
	case "DOMAIN":
		c.Domain = value

	// Online estimator
	case "STREAM_WINDOW_SEC":
		sec, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid STREAM_WINDOW_SEC %q: %w", value, err)
		}
		if sec <= 0 {
			return fmt.Errorf("STREAM_WINDOW_SEC must be > 0, got %g", sec)
		}
		c.StreamWindowSec = sec
	case "STREAM_DT":
		dt, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid STREAM_DT %q: %w", value, err)
		}
		if dt <= 0 {
			return fmt.Errorf("STREAM_DT must be > 0, got %g", dt)
		}
		c.StreamDT = dt
	case "ESTIMATE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid ESTIMATE_INTERVAL %q: %w", value, err)
		}
		c.EstimateInterval = interval

	// Files
	case "TELEMETRY_FILE":
		c.TelemetryFile = value
	case "EVENT_LOG_FILE":
		c.EventLogFile = value

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	// Display
	case "DISPLAY_UPDATE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_UPDATE_INTERVAL %q: %w", value, err)
		}
		c.DisplayUpdateInterval = interval

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.SerialPort == "" {
		return fmt.Errorf("SERIAL_PORT is required")
	}
	if c.SerialBaudRate == 0 {
		return fmt.Errorf("SERIAL_BAUD_RATE is required")
	}
	if c.AnalysisWindow == 0 {
		return fmt.Errorf("ANALYSIS_WINDOW is required")
	}
	if c.AnalysisFPS == 0 {
		return fmt.Errorf("ANALYSIS_FPS is required")
	}
	if c.StreamWindowSec == 0 {
		return fmt.Errorf("STREAM_WINDOW_SEC is required")
	}
	if c.StreamDT == 0 {
		return fmt.Errorf("STREAM_DT is required")
	}
	if c.EstimateInterval == 0 {
		return fmt.Errorf("ESTIMATE_INTERVAL is required")
	}
	return nil
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
