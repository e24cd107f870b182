package source

import (
	"path/filepath"
	"sort"
)

// Device node patterns where serial interceptors typically show up.
var portPatterns = []string{
	"/dev/ttyUSB*",
	"/dev/ttyACM*",
	"/dev/serial/by-id/*",
	"/dev/cu.usbserial*",
	"/dev/cu.usbmodem*",
}

// ListPorts enumerates candidate serial ports for the --list flag. The
// go-serial library offers no enumeration API, so this globs the usual
// device nodes.
func ListPorts() []string {
	var ports []string
	for _, pattern := range portPatterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		ports = append(ports, matches...)
	}
	sort.Strings(ports)
	return ports
}
