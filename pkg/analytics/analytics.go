package analytics

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/dmitrymomot/sitekit/pkg/publicenv"
)

const (
	// RelayPath is the same-origin mount point that proxies SDK traffic.
	RelayPath = "/relay-ujOT"

	// UIHost is the PostHog dashboard host used for links generated by the SDK.
	UIHost = "https://us.posthog.com"

	// KeyName is the public environment variable holding the project key.
	KeyName = "PUBLIC_POSTHOG_KEY"

	// DefaultUpstream receives API traffic from the relay.
	DefaultUpstream = "https://us.i.posthog.com"

	// DefaultAssetsUpstream serves the SDK's static assets.
	DefaultAssetsUpstream = "https://us-assets.i.posthog.com"
)

// PersonProfiles controls when the SDK creates person profiles.
type PersonProfiles string

const (
	PersonProfilesAlways         PersonProfiles = "always"
	PersonProfilesIdentifiedOnly PersonProfiles = "identified_only"
)

// Persistence selects where the SDK keeps the anonymous identity.
type Persistence string

const (
	PersistenceLocalStorage           Persistence = "localStorage"
	PersistenceLocalStoragePlusCookie Persistence = "localStorage+cookie"
	PersistenceCookie                 Persistence = "cookie"
	PersistenceMemory                 Persistence = "memory"
)

// Durable reports whether the identity survives a page reload.
func (p Persistence) Durable() bool {
	return p != PersistenceMemory && p != ""
}

// Options is the SDK configuration. Field tags match the SDK's init options.
type Options struct {
	APIHost        string         `json:"api_host"`
	UIHost         string         `json:"ui_host"`
	PersonProfiles PersonProfiles `json:"person_profiles"`
	Persistence    Persistence    `json:"persistence"`
}

// DefaultOptions routes API traffic through the relay, keeps identity in
// localStorage and always creates person profiles.
func DefaultOptions() Options {
	return Options{
		APIHost:        RelayPath,
		UIHost:         UIHost,
		PersonProfiles: PersonProfilesAlways,
		Persistence:    PersistenceLocalStorage,
	}
}

// SDK is the telemetry client being bootstrapped.
type SDK interface {
	Init(key string, opts Options) error
}

// LookupFunc returns a public configuration value.
type LookupFunc func(key string) (string, bool)

// State is the lifecycle state of a Handle.
type State int

const (
	StateUninitialized State = iota
	StateDisabled
	StateEnabled
)

func (s State) String() string {
	switch s {
	case StateDisabled:
		return "disabled"
	case StateEnabled:
		return "enabled"
	default:
		return "uninitialized"
	}
}

// Handle owns the analytics lifecycle for one process.
// It starts uninitialized, moves to enabled or disabled after the first Init
// in a browser runtime, and never changes afterwards.
type Handle struct {
	sdk     SDK
	lookup  LookupFunc
	browser func() bool
	logger  *slog.Logger
	opts    Options

	once  sync.Once
	done  chan struct{}
	mu    sync.RWMutex
	state State
}

// HandleOption configures a Handle.
type HandleOption func(*Handle)

// WithLookup sets the public configuration lookup. Without one the key is
// always absent and analytics ends up disabled.
func WithLookup(fn LookupFunc) HandleOption {
	return func(h *Handle) {
		h.lookup = fn
	}
}

// WithRuntime overrides browser runtime detection.
func WithRuntime(isBrowser func() bool) HandleOption {
	return func(h *Handle) {
		if isBrowser != nil {
			h.browser = isBrowser
		}
	}
}

// WithLogger sets the logger receiving the "disabled" warning.
func WithLogger(l *slog.Logger) HandleOption {
	return func(h *Handle) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithOptions overrides the SDK configuration.
func WithOptions(opts Options) HandleOption {
	return func(h *Handle) {
		h.opts = opts
	}
}

// NewHandle creates an uninitialized handle around sdk.
func NewHandle(sdk SDK, opts ...HandleOption) *Handle {
	h := &Handle{
		sdk:     sdk,
		browser: IsBrowser,
		logger:  slog.Default(),
		opts:    DefaultOptions(),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Init starts the SDK in the background. It returns immediately and never fails.
// Outside a browser runtime it does nothing. Only the first call in a browser
// runtime has an effect.
func (h *Handle) Init() {
	if !h.browser() {
		return
	}
	h.once.Do(func() {
		go h.start()
	})
}

// Done is closed once the initialization attempt has finished.
// It is never closed outside a browser runtime.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Options returns the SDK configuration used by Init.
func (h *Handle) Options() Options {
	return h.opts
}

func (h *Handle) start() {
	defer close(h.done)

	key, ok := h.key()
	if !ok {
		h.disable("analytics: " + KeyName + " is not set, analytics disabled")
		return
	}

	if err := h.initSDK(key); err != nil {
		h.disable("analytics: sdk init failed, analytics disabled", slog.Any("error", err))
		return
	}
	h.setState(StateEnabled)
}

// key treats every lookup failure, panics included, as an absent key.
func (h *Handle) key() (key string, ok bool) {
	if h.lookup == nil {
		return "", false
	}
	defer func() {
		if r := recover(); r != nil {
			key, ok = "", false
		}
	}()
	key, ok = h.lookup(KeyName)
	return key, ok && key != ""
}

func (h *Handle) initSDK(key string) (err error) {
	if h.sdk == nil {
		return ErrSDKUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analytics: sdk panic: %v", r)
		}
	}()
	return h.sdk.Init(key, h.opts)
}

func (h *Handle) disable(msg string, attrs ...any) {
	h.setState(StateDisabled)
	h.logger.Warn(msg, attrs...)
}

func (h *Handle) setState(s State) {
	h.mu.Lock()
	h.state = s
	h.mu.Unlock()
}

var defaultHandle = sync.OnceValue(func() *Handle {
	return NewHandle(newSDK(), WithLookup(browserLookup))
})

// Default returns the process-wide handle backed by the real SDK and the
// public environment rendered into the page.
func Default() *Handle {
	return defaultHandle()
}

// InitPosthog initializes the process-wide handle. Call it once at client startup.
func InitPosthog() {
	Default().Init()
}

// IsBrowser reports whether the binary runs in a browser (GOOS=js).
func IsBrowser() bool {
	return runtime.GOOS == "js"
}

func browserLookup(key string) (string, bool) {
	vars, err := publicenv.Browser()
	if err != nil {
		return "", false
	}
	return vars.Lookup(key)
}
