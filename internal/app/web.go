package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/reset_computer/internal/analyze"
	"github.com/relabs-tech/reset_computer/internal/config"
)

var upgrader = websocket.Upgrader{
	// Dashboard is served on the bench LAN; a same-origin check would only
	// fight the Pi's hostname aliases.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RunWeb serves the metrics dashboard: a JSON snapshot endpoint with the
// latest metric row, a websocket endpoint streaming every row as it
// arrives from MQTT, and static files from ./web.
func RunWeb() error {
	cfg := config.Get()

	var (
		mu      sync.RWMutex
		lastRow analyze.MetricRow
		haveRow bool
		clients = map[*websocket.Conn]bool{}
	)

	// 1) Connect to MQTT broker
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	// 2) Subscribe to metrics and fan out to websocket clients
	token := client.Subscribe(cfg.TopicMetrics, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var row analyze.MetricRow
		if err := json.Unmarshal(msg.Payload(), &row); err != nil {
			log.Printf("web: metric unmarshal error: %v", err)
			return
		}

		mu.Lock()
		lastRow = row
		haveRow = true
		for conn := range clients {
			if err := conn.WriteMessage(websocket.TextMessage, msg.Payload()); err != nil {
				conn.Close()
				delete(clients, conn)
			}
		}
		mu.Unlock()
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicMetrics)

	// 3) JSON API endpoint: latest metric row
	http.HandleFunc("/api/metrics", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !haveRow {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastRow); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	// 4) Websocket endpoint: live metric stream
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}

		mu.Lock()
		clients[conn] = true
		mu.Unlock()
		log.Printf("web: websocket client connected from %s", r.RemoteAddr)
	})

	// 5) Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web: server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
