package main

import (
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/dmitrymomot/sitekit"
	"github.com/dmitrymomot/sitekit/pkg/imaging"
	"github.com/dmitrymomot/sitekit/pkg/locale"
	"github.com/dmitrymomot/sitekit/pkg/messages"
)

// pagesHandler serves the localized HTML pages.
type pagesHandler struct {
	catalog  *messages.Catalog
	resolver *locale.Resolver
}

func newPagesHandler(catalog *messages.Catalog, res *locale.Resolver) *pagesHandler {
	return &pagesHandler{catalog: catalog, resolver: res}
}

func (h *pagesHandler) Routes(r sitekit.Router) {
	r.Page("/", h.home)
	r.GET("/locale/{locale}", h.switchLocale)
}

func (h *pagesHandler) home(c sitekit.Context) (sitekit.Component, error) {
	return homePage(h.catalog, h.resolver, c.Request().URL.Path), nil
}

// switchLocale pins the chosen locale in a cookie and sends the browser back
// to next, localized.
func (h *pagesHandler) switchLocale(c sitekit.Context) error {
	ck, ok := h.resolver.Cookie(c.Param("locale"))
	if !ok {
		return sitekit.ErrNotFound("Unknown locale")
	}
	c.SetCookie(ck)

	next, err := url.Parse(c.Query("next"))
	if err != nil || next.IsAbs() || next.Host != "" || !strings.HasPrefix(next.Path, "/") {
		next = &url.URL{Path: "/"}
	}
	target := url.URL{Path: h.resolver.Localize(next.Path, ck.Value), RawQuery: next.RawQuery}
	return c.Redirect(http.StatusSeeOther, target.String())
}

// presetsHandler exposes the image export presets to the browser renderer.
type presetsHandler struct {
	presets map[string]imaging.Config
}

func newPresetsHandler(presets map[string]imaging.Config) *presetsHandler {
	return &presetsHandler{presets: presets}
}

func (h *presetsHandler) Routes(r sitekit.Router) {
	r.Route("/api/image-presets", func(r sitekit.Router) {
		r.GET("/", h.list)
		r.GET("/{name}", h.get)
	})
}

type presetResponse struct {
	Name string `json:"name"`
	imaging.Config
	MIMEType string `json:"mime_type"`
}

func (h *presetsHandler) list(c sitekit.Context) error {
	names := slices.Sorted(maps.Keys(h.presets))
	out := make([]presetResponse, 0, len(names))
	for _, name := range names {
		out = append(out, newPresetResponse(name, h.presets[name]))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *presetsHandler) get(c sitekit.Context) error {
	name := c.Param("name")
	cfg, ok := h.presets[name]
	if !ok {
		return sitekit.ErrNotFound("Unknown preset")
	}
	return c.JSON(http.StatusOK, newPresetResponse(name, cfg))
}

func newPresetResponse(name string, cfg imaging.Config) presetResponse {
	return presetResponse{
		Name:     name,
		Config:   cfg,
		MIMEType: cfg.Format.MIMEType(),
	}
}
