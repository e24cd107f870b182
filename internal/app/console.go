package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/cursor_stabilizer/internal/config"
	"github.com/relabs-tech/cursor_stabilizer/internal/motion"
)

// RunConsole subscribes to the stabilizer status topic and prints one line
// per snapshot.
func RunConsole(cfg *config.Config) error {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTT.Broker).
		SetClientID(cfg.MQTT.ClientID + "-console")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTT.Broker)

	token := client.Subscribe(cfg.MQTT.TopicStatus, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s motion.Status
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("console: status unmarshal error: %v", err)
			return
		}

		state := "NORMAL"
		if s.Detected {
			state = "TREMOR"
		}
		active := "off"
		if s.Enabled {
			active = "on"
		}
		causes := "-"
		if len(s.Causes) > 0 {
			parts := make([]string, len(s.Causes))
			for i, c := range s.Causes {
				parts[i] = string(c)
			}
			causes = strings.Join(parts, ",")
		}

		fmt.Printf(
			"[%s]  intensity=%3.0f%%  freq=%5.1fHz  stab=%-3s  causes=%s\n",
			state, s.Intensity*100, s.FrequencyHz, active, causes,
		)
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: subscribed to %s", cfg.MQTT.TopicStatus)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
