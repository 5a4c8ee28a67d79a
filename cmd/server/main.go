// Command server runs the localized site: HTML pages, the analytics relay,
// browser error reporting and the image export presets API.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/sitekit"
	"github.com/dmitrymomot/sitekit/middlewares"
	"github.com/dmitrymomot/sitekit/pkg/analytics"
	"github.com/dmitrymomot/sitekit/pkg/errreport"
	"github.com/dmitrymomot/sitekit/pkg/imaging"
	"github.com/dmitrymomot/sitekit/pkg/locale"
	"github.com/dmitrymomot/sitekit/pkg/logger"
	"github.com/dmitrymomot/sitekit/pkg/messages"
	"github.com/dmitrymomot/sitekit/pkg/publicenv"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.NewWithSentry(cfg.Sentry, cfg.Log,
		middlewares.RequestIDExtractor(),
		middlewares.LocaleExtractor(),
	)

	app, err := newApp(cfg, log, publicenv.FromEnviron())
	if err != nil {
		log.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	log.Info("starting server", "addr", cfg.Addr, "locales", cfg.Locales)

	if err := app.Run(
		cfg.Addr,
		sitekit.Logger(log),
		sitekit.ShutdownTimeout(cfg.ShutdownTimeout),
		sitekit.ShutdownHook(logger.FlushSentry),
	); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newApp wires every component into the application.
func newApp(cfg Config, log *slog.Logger, vars publicenv.Vars) (*sitekit.App, error) {
	resolver, err := locale.New(
		locale.WithBaseLocale(cfg.BaseLocale),
		locale.WithLocales(cfg.Locales...),
	)
	if err != nil {
		return nil, fmt.Errorf("locale: %w", err)
	}

	catalog, err := messages.New(resolver.BaseLocale(), messages.WithLogger(log))
	if err != nil {
		return nil, err
	}

	presets := imaging.Presets()
	if cfg.ImagePresetsFile != "" {
		if presets, err = imaging.LoadPresetsFile(cfg.ImagePresetsFile); err != nil {
			return nil, err
		}
	}

	relay, err := analytics.Relay(
		analytics.WithUpstream(cfg.upstream()),
		analytics.WithAssetsUpstream(cfg.assetsUpstream()),
		analytics.WithRelayLogger(log),
	)
	if err != nil {
		return nil, err
	}

	reporter := errreport.NewLogReporter(log)

	var localeOpts []middlewares.LocaleOption
	if cfg.LocaleRedirect {
		localeOpts = append(localeOpts, middlewares.WithLocaleRedirect())
	}

	opts := []sitekit.Option{
		sitekit.WithLogger(log, middlewares.RequestIDExtractor(), middlewares.LocaleExtractor()),
		sitekit.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Locale(resolver, localeOpts...),
		),
		sitekit.WithHead(
			publicenv.Script(vars),
			clientScripts(cfg.WasmPath),
		),
		sitekit.WithErrorReporter(reporter),
		sitekit.WithErrorPage(errorPage(catalog, resolver)),
		sitekit.WithMount(analytics.RelayPath, relay),
		sitekit.WithMount(errreport.ClientPath, errreport.ClientHandler(errreport.Client(), reporter)),
		sitekit.WithHandlers(
			newPagesHandler(catalog, resolver),
			newPresetsHandler(presets),
		),
		sitekit.WithHealthChecks(
			sitekit.WithReadinessCheck("analytics", analytics.UpstreamCheck(nil, cfg.upstream())),
		),
	}
	if cfg.StaticDir != "" {
		opts = append(opts, sitekit.WithStaticFiles("/static/", os.DirFS(cfg.StaticDir), "."))
	}

	return sitekit.New(opts...), nil
}
