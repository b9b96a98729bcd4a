// Package buildmode exposes build-time switches selected with go build tags.
//
//	go build -tags debug ./cmd/cityscape   # console logging, debug level
//	make release                           # no console window on Windows
package buildmode

// Name returns "debug" or "release".
func Name() string {
	if Debug {
		return "debug"
	}
	return "release"
}
