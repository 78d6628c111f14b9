//go:build linux || darwin

package cmd

import (
	"os"

	"golang.org/x/sys/unix"
)

// shutdownSignals stop a running host or console.
var shutdownSignals = []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGHUP}
