package analytics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/dmitrymomot/sitekit/pkg/health"
)

type relayConfig struct {
	logger    *slog.Logger
	transport http.RoundTripper
	upstream  string
	assets    string
	prefix    string
}

// RelayOption configures the relay.
type RelayOption func(*relayConfig)

// WithUpstream sets the API upstream. Defaults to DefaultUpstream.
func WithUpstream(u string) RelayOption {
	return func(c *relayConfig) {
		if u != "" {
			c.upstream = u
		}
	}
}

// WithAssetsUpstream sets the static assets upstream. Defaults to DefaultAssetsUpstream.
func WithAssetsUpstream(u string) RelayOption {
	return func(c *relayConfig) {
		if u != "" {
			c.assets = u
		}
	}
}

// WithPrefix sets the path prefix stripped before forwarding. Defaults to RelayPath.
func WithPrefix(p string) RelayOption {
	return func(c *relayConfig) {
		c.prefix = strings.TrimSuffix(p, "/")
	}
}

// WithRelayLogger sets the logger for upstream failures.
func WithRelayLogger(l *slog.Logger) RelayOption {
	return func(c *relayConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTransport sets the round tripper used to reach the upstreams.
func WithTransport(rt http.RoundTripper) RelayOption {
	return func(c *relayConfig) {
		if rt != nil {
			c.transport = rt
		}
	}
}

// Relay returns a reverse proxy that forwards SDK traffic to PostHog.
// Requests under <prefix>/static/ go to the assets upstream, everything else
// to the API upstream. Upstream failures answer 502.
//
// Example:
//
//	relay, err := analytics.Relay(analytics.WithRelayLogger(log))
//	if err != nil {
//	    return err
//	}
//	sitekit.WithMount(analytics.RelayPath, relay)
func Relay(opts ...RelayOption) (http.Handler, error) {
	cfg := &relayConfig{
		logger:   slog.New(slog.DiscardHandler),
		upstream: DefaultUpstream,
		assets:   DefaultAssetsUpstream,
		prefix:   RelayPath,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	api, err := parseUpstream(cfg.upstream)
	if err != nil {
		return nil, err
	}
	assets, err := parseUpstream(cfg.assets)
	if err != nil {
		return nil, err
	}

	proxy := &httputil.ReverseProxy{
		Transport: cfg.transport,
		Rewrite: func(pr *httputil.ProxyRequest) {
			path := strings.TrimPrefix(pr.In.URL.Path, cfg.prefix)
			if path == "" {
				path = "/"
			}
			target := api
			if strings.HasPrefix(path, "/static/") {
				target = assets
			}
			pr.Out.URL.Path = path
			pr.Out.URL.RawPath = ""
			pr.SetURL(target)
			pr.SetXForwarded()
			// first-party cookies stay first-party
			pr.Out.Header.Del("Cookie")
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			cfg.logger.WarnContext(r.Context(), "analytics relay: upstream failed",
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)
			w.WriteHeader(http.StatusBadGateway)
		},
	}
	return proxy, nil
}

func parseUpstream(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidUpstream, raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidUpstream, raw)
	}
	return u, nil
}

// UpstreamCheck returns a readiness check that succeeds when target answers
// with a non-5xx status. A nil client uses http.DefaultClient.
func UpstreamCheck(client *http.Client, target string) health.CheckFunc {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
		if err != nil {
			return fmt.Errorf("analytics: build upstream check: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("analytics: upstream unreachable: %w", err)
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("analytics: upstream status %d", resp.StatusCode)
		}
		return nil
	}
}
