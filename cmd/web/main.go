// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/pkg/browser"

	"github.com/relabs-tech/cursor_stabilizer/internal/app"
	"github.com/relabs-tech/cursor_stabilizer/internal/config"
)

func main() {
	configPath := flag.String("config", "./stabilizer.toml", "path to configuration file")
	open := flag.Bool("open", false, "open the status page in the default browser")
	flag.Parse()

	log.Println("starting cursor-stabilizer web server (MQTT subscriber)")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if *open {
		url := fmt.Sprintf("http://localhost:%d/", cfg.Web.Port)
		if err := browser.OpenURL(url); err != nil {
			log.Printf("could not open browser: %v", err)
		}
	}

	if err := app.RunWeb(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
