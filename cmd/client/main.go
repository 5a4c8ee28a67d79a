//go:build js && wasm

// Command client is the browser side of the site, compiled to WebAssembly.
// It starts product analytics and then parks so exported callbacks stay alive.
package main

import (
	"log/slog"

	"github.com/dmitrymomot/sitekit/pkg/analytics"
	"github.com/dmitrymomot/sitekit/pkg/logger"
)

func main() {
	// the default handle logs through slog.Default
	slog.SetDefault(logger.NewWithConfig(logger.Config{Format: logger.FormatText, Level: "info"}))

	analytics.InitPosthog()
	<-analytics.Default().Done()
	slog.Info("analytics started", "state", analytics.Default().State().String())

	select {}
}
