// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/cursor_stabilizer/internal/config"
	"github.com/relabs-tech/cursor_stabilizer/internal/motion"
	"github.com/relabs-tech/cursor_stabilizer/internal/sink"
	"github.com/relabs-tech/cursor_stabilizer/internal/source"
)

// StabilizerOptions selects the acquisition and injection backends for one run.
type StabilizerOptions struct {
	ConfigPath string
	Source     string // "serial", "evdev" or "mock"
	EvdevPath  string
	Grab       bool
	DryRun     bool // log corrections instead of injecting them
}

func RunStabilizer(opts StabilizerOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	printBanner(cfg)

	// --- acquisition backend ---
	var src source.Source
	switch opts.Source {
	case "serial":
		src, err = source.OpenSerial(source.SerialOptions{
			Port: cfg.Serial.Port,
			Baud: cfg.Serial.Baud,
		})
		if err != nil {
			return fmt.Errorf("open serial source %s: %w", cfg.Serial.Port, err)
		}
		log.Printf("stabilizer: reading interceptor on %s @ %d baud", cfg.Serial.Port, cfg.Serial.Baud)
	case "evdev":
		src, err = source.OpenEvdev(opts.EvdevPath, opts.Grab)
		if err != nil {
			return fmt.Errorf("open evdev source %s: %w", opts.EvdevPath, err)
		}
		log.Printf("stabilizer: reading evdev node %s (grab=%v)", opts.EvdevPath, opts.Grab)
	case "mock":
		src = source.NewMock(10 * time.Millisecond)
		log.Println("stabilizer: using mock tremor source")
	default:
		return fmt.Errorf("unknown source kind %q", opts.Source)
	}

	// --- injection backend ---
	var cursor sink.Cursor
	if opts.DryRun {
		cursor = logCursor{}
		log.Println("stabilizer: dry run, corrections are logged only")
	} else {
		cursor, err = sink.CreateVirtualMouse("cursor-stabilizer")
		if err != nil {
			src.Close()
			return fmt.Errorf("create virtual mouse: %w", err)
		}
		log.Println("stabilizer: virtual mouse created")
	}

	ctrl := motion.NewController(cfg.Params())
	ctrl.SetEnabled(true)

	// Hot reload of detection and smoothing settings.
	stopWatch, err := config.Watch(opts.ConfigPath, func(c *config.Config) {
		ctrl.Apply(c.Params())
		log.Println("stabilizer: configuration reloaded")
	})
	if err != nil {
		log.Printf("stabilizer: config watch unavailable: %v", err)
		stopWatch = func() error { return nil }
	}

	quitCh := make(chan struct{})
	var quitOnce sync.Once
	quit := func() { quitOnce.Do(func() { close(quitCh) }) }

	// --- MQTT status and remote commands ---
	var client mqtt.Client
	if cfg.MQTT.Enabled {
		mopts := mqtt.NewClientOptions().
			AddBroker(cfg.MQTT.Broker).
			SetClientID(cfg.MQTT.ClientID)

		client = mqtt.NewClient(mopts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			log.Printf("stabilizer: MQTT connect error: %v", token.Error())
			client = nil
		} else {
			log.Printf("stabilizer: connected to MQTT broker at %s", cfg.MQTT.Broker)

			token := client.Subscribe(cfg.MQTT.TopicCommand, 0, func(_ mqtt.Client, msg mqtt.Message) {
				switch cmd := strings.TrimSpace(string(msg.Payload())); cmd {
				case "toggle":
					enabled := ctrl.Toggle()
					log.Printf("stabilizer: remote toggle, enabled=%v", enabled)
				case "quit":
					log.Println("stabilizer: remote quit")
					quit()
				default:
					log.Printf("stabilizer: unknown command %q", cmd)
				}
			})
			token.Wait()
			if token.Error() != nil {
				log.Printf("stabilizer: MQTT subscribe error: %v", token.Error())
			} else {
				log.Printf("stabilizer: listening for commands on %s", cfg.MQTT.TopicCommand)
			}

			go publishStatus(client, cfg, ctrl, quitCh)
		}
	}

	// --- stdin commands ---
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			switch strings.TrimSpace(sc.Text()) {
			case "q":
				quit()
				return
			case "s":
				enabled := ctrl.Toggle()
				if enabled {
					log.Println("stabilizer: stabilization ON")
				} else {
					log.Println("stabilizer: stabilization OFF")
				}
			}
		}
	}()

	// --- event loop ---
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		runEventLoop(src, cursor, ctrl)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Println("stabilizer: signal received, shutting down")
	case <-quitCh:
		log.Println("stabilizer: shutting down")
	case <-loopDone:
		log.Println("stabilizer: source ended, shutting down")
	}

	// Stop acquisition first so the event loop drains, then drop the sink.
	if err := src.Close(); err != nil {
		log.Printf("stabilizer: source close error: %v", err)
	}
	<-loopDone
	if err := cursor.Close(); err != nil {
		log.Printf("stabilizer: sink close error: %v", err)
	}
	if err := stopWatch(); err != nil {
		log.Printf("stabilizer: config watch close error: %v", err)
	}
	if client != nil {
		client.Disconnect(250)
	}
	return nil
}

// runEventLoop pumps source events through the controller into the cursor
// sink. Positions arrive absolute; the sink wants relative moves, so the
// loop tracks the last emitted position and sends rounded deltas, keeping
// the sub-pixel remainder for the next move.
func runEventLoop(src source.Source, cursor sink.Cursor, ctrl *motion.Controller) {
	var (
		lastOutX, lastOutY float64
		outSeeded          bool
	)

	for {
		ev, err := src.Next()
		if err != nil {
			if err != source.ErrClosed {
				log.Printf("stabilizer: source error: %v", err)
			}
			return
		}

		switch ev.Kind {
		case source.EventMotion:
			targetX, targetY := ev.X, ev.Y
			if corr, ok := ctrl.OnSample(ev.X, ev.Y, ev.T); ok {
				targetX, targetY = float64(corr.X), float64(corr.Y)
			}

			if !outSeeded {
				lastOutX, lastOutY = targetX, targetY
				outSeeded = true
				continue
			}

			dx := int(math.Round(targetX - lastOutX))
			dy := int(math.Round(targetY - lastOutY))
			if dx == 0 && dy == 0 {
				continue
			}
			if err := cursor.Move(dx, dy); err != nil {
				log.Printf("stabilizer: cursor move error: %v", err)
				continue
			}
			lastOutX += float64(dx)
			lastOutY += float64(dy)

		case source.EventButton:
			// Buttons pass through even while stabilization is off.
			if err := cursor.SetButton(sinkButton(ev.Button), ev.Pressed); err != nil {
				log.Printf("stabilizer: button error: %v", err)
			}

		case source.EventInfo:
			log.Printf("stabilizer: device: %s", ev.Text)

		case source.EventDeviceError:
			log.Printf("stabilizer: device error: %s", ev.Text)
		}
	}
}

func publishStatus(client mqtt.Client, cfg *config.Config, ctrl *motion.Controller, quitCh <-chan struct{}) {
	ticker := time.NewTicker(time.Duration(cfg.MQTT.StatusIntervalMS) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-quitCh:
			return
		case <-ticker.C:
			payload, err := json.Marshal(ctrl.Status())
			if err != nil {
				log.Printf("stabilizer: status marshal error: %v", err)
				continue
			}
			if token := client.Publish(cfg.MQTT.TopicStatus, 0, true, payload); token.Wait() && token.Error() != nil {
				log.Printf("stabilizer: MQTT publish error: %v", token.Error())
			}
		}
	}
}

// logCursor prints moves instead of injecting them, for dry runs.
type logCursor struct{}

func (logCursor) Move(dx, dy int) error {
	log.Printf("stabilizer: move %+d,%+d", dx, dy)
	return nil
}

func (logCursor) SetButton(b sink.Button, pressed bool) error {
	log.Printf("stabilizer: button %d pressed=%v", b, pressed)
	return nil
}

func (logCursor) Close() error { return nil }

func sinkButton(b source.Button) sink.Button {
	switch b {
	case source.ButtonRight:
		return sink.ButtonRight
	case source.ButtonMiddle:
		return sink.ButtonMiddle
	default:
		return sink.ButtonLeft
	}
}

func printBanner(cfg *config.Config) {
	log.Println("cursor stabilizer starting")
	log.Printf("  profile:          %s", cfg.Detection.Profile)
	log.Printf("  sample window:    %d", cfg.Detection.SampleWindow)
	log.Printf("  shake threshold:  %.2f x mean", cfg.Detection.ShakeThreshold)
	log.Printf("  tremor band:      %.1f-%.1f Hz", cfg.Detection.MinTremorFrequency, cfg.Detection.MaxTremorFrequency)
	log.Printf("  direction ratio:  %.2f", cfg.Detection.DirectionChangeThreshold)
	log.Printf("  jitter threshold: %.2f", cfg.Detection.JitterThreshold)
	log.Printf("  smoothing:        %.2f (adaptive=%v)", cfg.Smoothing.Factor, cfg.Smoothing.Adaptive)
}
