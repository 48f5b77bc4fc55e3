// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/reset_computer/internal/analyze"
	"github.com/relabs-tech/reset_computer/internal/config"
)

// displayData holds the latest data shown on the bench OLED.
type displayData struct {
	mu sync.RWMutex

	row     analyze.MetricRow
	haveRow bool

	events int // candidate events seen since startup
}

// RunDisplay drives the bench SSD1306 OLED with the latest resetability
// metrics, so the rig shows R / theta / benefit without a laptop attached.
func RunDisplay() error {
	cfg := config.Get()

	// Initialize periph
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	// Open I2C bus
	bus, err := i2creg.Open("")
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer bus.Close()

	// The ssd1306 driver fixes the I2C address at 0x3C.
	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Println("display: ssd1306 initialized")

	if err := showSplash(dev); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}

	data := &displayData{}

	// Connect to MQTT
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDDisplay)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("display: connected to MQTT broker at %s", cfg.MQTTBroker)

	metricToken := client.Subscribe(cfg.TopicMetrics, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var row analyze.MetricRow
		if err := json.Unmarshal(msg.Payload(), &row); err != nil {
			log.Printf("display: metric unmarshal error: %v", err)
			return
		}
		data.mu.Lock()
		data.row = row
		data.haveRow = true
		data.mu.Unlock()
	})
	metricToken.Wait()
	if metricToken.Error() != nil {
		return metricToken.Error()
	}
	log.Printf("display: subscribed to %s", cfg.TopicMetrics)

	eventToken := client.Subscribe(cfg.TopicEvents, 0, func(_ mqtt.Client, msg mqtt.Message) {
		data.mu.Lock()
		data.events++
		data.mu.Unlock()
	})
	eventToken.Wait()
	if eventToken.Error() != nil {
		return eventToken.Error()
	}
	log.Printf("display: subscribed to %s", cfg.TopicEvents)

	// Display update loop
	ticker := time.NewTicker(time.Duration(cfg.DisplayUpdateInterval) * time.Millisecond)
	defer ticker.Stop()

	log.Println("display: starting update loop")

	for range ticker.C {
		data.mu.RLock()
		row := data.row
		haveRow := data.haveRow
		eventCount := data.events
		data.mu.RUnlock()

		if err := updateMetricsDisplay(dev, row, haveRow, eventCount); err != nil {
			log.Printf("display: error updating display: %v", err)
		}
	}

	return nil
}

func newDrawer(img *image1bit.VerticalLSB) *font.Drawer {
	return &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
}

func blankImage() *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
	for i := 0; i < 1024; i++ {
		img.Pix[i] = 0
	}
	return img
}

func updateMetricsDisplay(dev *ssd1306.Dev, row analyze.MetricRow, haveRow bool, eventCount int) error {
	img := blankImage()
	drawer := newDrawer(img)

	if !haveRow {
		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte("Resetability"))
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte("Waiting..."))
	} else {
		drawer.Dot = fixed.P(0, 13)
		drawer.DrawBytes([]byte(fmt.Sprintf("R: %7.4f", row.R)))

		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte(fmt.Sprintf("th: %6.2f", row.ThetaNetDeg)))

		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte(fmt.Sprintf("bn: %6.2f", row.PredictedBenefitDeg)))

		drawer.Dot = fixed.P(0, 52)
		drawer.DrawBytes([]byte(fmt.Sprintf("ev: %6d", eventCount)))
	}

	return dev.Draw(dev.Bounds(), img, image.Point{})
}

func showSplash(dev *ssd1306.Dev) error {
	img := blankImage()
	drawer := newDrawer(img)

	drawer.Dot = fixed.P(10, 26)
	drawer.DrawBytes([]byte("Reset Pi"))

	drawer.Dot = fixed.P(5, 43)
	drawer.DrawBytes([]byte("SO(3) bench"))

	return dev.Draw(dev.Bounds(), img, image.Point{})
}
