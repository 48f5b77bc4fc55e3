package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/reset_computer/internal/analyze"
	"github.com/relabs-tech/reset_computer/internal/config"
	"github.com/relabs-tech/reset_computer/internal/telemetry"
)

// RunConsole subscribes to the orientation, metrics and events topics and
// prints every message as one formatted line, for watching a bench run
// without the web dashboard.
func RunConsole() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	// Subscribe to orientation samples
	poseToken := client.Subscribe(cfg.TopicOrientation, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s telemetry.Sample
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("console: orientation unmarshal error: %v", err)
			return
		}

		fmt.Printf(
			"[QUAT]  t=%8.2f  w=%7.4f  x=%7.4f  y=%7.4f  z=%7.4f\n",
			s.Timestamp, s.QW, s.QX, s.QY, s.QZ,
		)
	})
	poseToken.Wait()
	if poseToken.Error() != nil {
		return poseToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicOrientation)

	// Subscribe to metric rows
	metricToken := client.Subscribe(cfg.TopicMetrics, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var row analyze.MetricRow
		if err := json.Unmarshal(msg.Payload(), &row); err != nil {
			log.Printf("console: metric unmarshal error: %v", err)
			return
		}

		fmt.Printf(
			"[METR]  t=%8.2f  R=%7.4f  theta=%7.2fdeg  benefit=%7.2fdeg\n",
			row.Timestamp, row.R, row.ThetaNetDeg, row.PredictedBenefitDeg,
		)
	})
	metricToken.Wait()
	if metricToken.Error() != nil {
		return metricToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicMetrics)

	// Subscribe to candidate reset events
	eventToken := client.Subscribe(cfg.TopicEvents, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var row analyze.MetricRow
		if err := json.Unmarshal(msg.Payload(), &row); err != nil {
			log.Printf("console: event unmarshal error: %v", err)
			return
		}

		fmt.Printf(
			"[EVNT]  t=%8.2f  RESET CANDIDATE  R=%7.4f  theta=%7.2fdeg  benefit=%7.2fdeg\n",
			row.Timestamp, row.R, row.ThetaNetDeg, row.PredictedBenefitDeg,
		)
	})
	eventToken.Wait()
	if eventToken.Error() != nil {
		return eventToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicEvents)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
