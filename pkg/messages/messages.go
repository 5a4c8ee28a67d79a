package messages

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/active.*.toml
var localeFS embed.FS

// Message ids shipped with the built-in catalog.
const (
	HomeTitle      = "home_title"
	HomeGreeting   = "home_greeting"
	PresetsTitle   = "presets_title"
	ErrorTitle     = "error_title"
	ErrorBack      = "error_back"
	LanguageSwitch = "language_switch"
)

// Catalog localizes UI strings. It is safe for concurrent use.
type Catalog struct {
	bundle *i18n.Bundle
	base   language.Tag
	logger *slog.Logger
}

type config struct {
	logger *slog.Logger
	files  []fileSet
}

type fileSet struct {
	fsys    fs.FS
	pattern string
}

// Option configures a Catalog.
type Option func(*config)

// WithLogger sets the logger for missing translations.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFiles loads additional TOML message files matching pattern from fsys.
// Later files override earlier ones for the same id and language.
func WithFiles(fsys fs.FS, pattern string) Option {
	return func(c *config) {
		c.files = append(c.files, fileSet{fsys: fsys, pattern: pattern})
	}
}

// New builds a catalog with baseLocale as the fallback language.
func New(baseLocale string, opts ...Option) (*Catalog, error) {
	base, err := language.Parse(baseLocale)
	if err != nil {
		return nil, fmt.Errorf("messages: base locale %q: %w", baseLocale, err)
	}

	cfg := &config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(cfg)
	}

	bundle := i18n.NewBundle(base)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	sets := append([]fileSet{{fsys: localeFS, pattern: "locales/active.*.toml"}}, cfg.files...)
	for _, set := range sets {
		matches, err := fs.Glob(set.fsys, set.pattern)
		if err != nil {
			return nil, fmt.Errorf("messages: glob %q: %w", set.pattern, err)
		}
		for _, file := range matches {
			if _, err := bundle.LoadMessageFileFS(set.fsys, file); err != nil {
				return nil, fmt.Errorf("messages: load %s: %w", path.Base(file), err)
			}
		}
	}

	return &Catalog{bundle: bundle, base: base, logger: cfg.logger}, nil
}

// Languages lists the languages with at least one message.
func (c *Catalog) Languages() []string {
	tags := c.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.String())
	}
	return out
}

// T renders message id for locale with optional template data.
// It falls back to the base locale, then to the id itself.
func (c *Catalog) T(locale, id string, data map[string]any) string {
	if id == "" {
		return ""
	}

	langs := make([]string, 0, 2)
	if locale != "" {
		langs = append(langs, locale)
	}
	langs = append(langs, c.base.String())

	msg, err := i18n.NewLocalizer(c.bundle, langs...).Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		c.logger.Warn("messages: localize failed",
			slog.String("id", id),
			slog.String("locale", locale),
			slog.Any("error", err),
		)
		return id
	}
	return msg
}
