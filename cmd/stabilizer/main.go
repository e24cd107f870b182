// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/relabs-tech/cursor_stabilizer/internal/app"
	"github.com/relabs-tech/cursor_stabilizer/internal/source"
)

func main() {
	configPath := flag.String("config", "./stabilizer.toml", "path to configuration file")
	srcKind := flag.String("source", "serial", "sample source: serial, evdev or mock")
	evdevPath := flag.String("device", "/dev/input/event0", "evdev node (source=evdev)")
	grab := flag.Bool("grab", true, "take exclusive hold of the evdev node (source=evdev)")
	dryRun := flag.Bool("dry-run", false, "log corrections instead of moving the cursor")
	listPorts := flag.Bool("list", false, "list candidate serial ports and exit")
	flag.Parse()

	if *listPorts {
		ports := source.ListPorts()
		if len(ports) == 0 {
			fmt.Println("no serial ports found")
			return
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return
	}

	log.Println("starting cursor-stabilizer (interceptor -> virtual mouse)")

	err := app.RunStabilizer(app.StabilizerOptions{
		ConfigPath: *configPath,
		Source:     *srcKind,
		EvdevPath:  *evdevPath,
		Grab:       *grab,
		DryRun:     *dryRun,
	})
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
