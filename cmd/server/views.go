package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/sitekit"
	"github.com/dmitrymomot/sitekit/pkg/analytics"
	"github.com/dmitrymomot/sitekit/pkg/errreport"
	"github.com/dmitrymomot/sitekit/pkg/locale"
	"github.com/dmitrymomot/sitekit/pkg/messages"
)

// clientScripts loads the analytics SDK through the relay, forwards uncaught
// browser errors to the reporting endpoint and boots the wasm client.
func clientScripts(wasmPath string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<script src="%s/static/array.js" async></script>`, analytics.RelayPath); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<script>window.addEventListener("error",function(e){`+
			`navigator.sendBeacon(%s,JSON.stringify({message:String(e.message),url:location.href}))});</script>`,
			strconv.Quote(errreport.ClientPath)); err != nil {
			return err
		}
		if wasmPath == "" {
			return nil
		}
		_, err := fmt.Fprintf(w, `<script src="/static/wasm_exec.js"></script>`+
			`<script>const go=new Go();WebAssembly.instantiateStreaming(fetch(%s),go.importObject).then(r=>go.run(r.instance));</script>`,
			strconv.Quote(wasmPath))
		return err
	})
}

func homePage(catalog *messages.Catalog, res *locale.Resolver, path string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		l, _ := locale.FromContext(ctx)
		data := map[string]any{"Locale": l}

		if _, err := fmt.Fprintf(w, "<main><h1>%s</h1><p>%s</p>",
			templ.EscapeString(catalog.T(l, messages.HomeTitle, nil)),
			templ.EscapeString(catalog.T(l, messages.HomeGreeting, data)),
		); err != nil {
			return err
		}
		if err := languageSwitch(catalog, res, path).Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<a href="%s">%s</a></main>`,
			templ.EscapeString(res.Localize("/api/image-presets", l)),
			templ.EscapeString(catalog.T(l, messages.PresetsTitle, nil)),
		)
		return err
	})
}

func languageSwitch(catalog *messages.Catalog, res *locale.Resolver, path string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		current, _ := locale.FromContext(ctx)
		if _, err := fmt.Fprintf(w, `<nav aria-label="%s"><ul>`,
			templ.EscapeString(catalog.T(current, messages.LanguageSwitch, nil))); err != nil {
			return err
		}
		for _, l := range res.Locales() {
			attr := ""
			if l == current {
				attr = ` aria-current="true"`
			}
			if _, err := fmt.Fprintf(w, `<li><a href="%s" hreflang="%s"%s>%s</a></li>`,
				templ.EscapeString(res.Localize(path, l)), templ.EscapeString(l), attr, templ.EscapeString(l)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul></nav>")
		return err
	})
}

// errorPage renders the normalized error record in the request locale.
func errorPage(catalog *messages.Catalog, res *locale.Resolver) sitekit.ErrorPage {
	return func(status int, rec sitekit.ErrorRecord) sitekit.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			l, _ := locale.FromContext(ctx)
			_, err := fmt.Fprintf(w, `<main><h1>%d %s</h1><p>%s</p><a href="%s">%s</a></main>`,
				status,
				templ.EscapeString(catalog.T(l, messages.ErrorTitle, nil)),
				templ.EscapeString(rec.Message),
				templ.EscapeString(res.Localize("/", l)),
				templ.EscapeString(catalog.T(l, messages.ErrorBack, nil)),
			)
			return err
		})
	}
}
