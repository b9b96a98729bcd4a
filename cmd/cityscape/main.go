// Command cityscape is the native entry point of the Cityscape desktop app.
// It hands control to the application driver and reports nothing itself.
//
// Release builds for Windows are linked with -H=windowsgui so no console
// window is allocated; see the Makefile.
package main

import (
	"os"

	"cityscape/internal/app"
)

var (
	run  = app.Run
	exit = os.Exit
)

func main() {
	if err := run(); err != nil {
		exit(1)
	}
}
