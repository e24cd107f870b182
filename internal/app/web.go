// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/cursor_stabilizer/internal/config"
	"github.com/relabs-tech/cursor_stabilizer/internal/motion"
)

var upgrader = websocket.Upgrader{
	// Status is read-only and local; any origin may watch it.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RunWeb serves the status page: /api/status returns the latest snapshot,
// /ws streams every snapshot as it arrives over MQTT.
func RunWeb(cfg *config.Config) error {
	var (
		mu         sync.RWMutex
		lastStatus motion.Status
		haveStatus bool
	)

	var (
		connMu sync.Mutex
		conns  = make(map[*websocket.Conn]struct{})
	)

	// 1) Connect to MQTT broker
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTT.Broker).
		SetClientID(cfg.MQTT.ClientID + "-web")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTT.Broker)

	// 2) Subscribe to status and fan snapshots out to websocket watchers
	token := client.Subscribe(cfg.MQTT.TopicStatus, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s motion.Status
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("web: status unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastStatus = s
		haveStatus = true
		mu.Unlock()

		connMu.Lock()
		for c := range conns {
			if err := c.WriteMessage(websocket.TextMessage, msg.Payload()); err != nil {
				c.Close()
				delete(conns, c)
			}
		}
		connMu.Unlock()
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to %s", cfg.MQTT.TopicStatus)

	// 3) JSON API endpoint: latest status
	http.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !haveStatus {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastStatus); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	// 4) Websocket push
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}

		connMu.Lock()
		conns[c] = struct{}{}
		connMu.Unlock()

		// Reader loop only to notice the close.
		go func() {
			for {
				if _, _, err := c.ReadMessage(); err != nil {
					connMu.Lock()
					delete(conns, c)
					connMu.Unlock()
					c.Close()
					return
				}
			}
		}()
	})

	// 5) Static files as the root
	fs := http.FileServer(http.Dir(cfg.Web.StaticDir))
	http.Handle("/", fs)

	addr := fmt.Sprintf(":%d", cfg.Web.Port)
	log.Printf("web: server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
