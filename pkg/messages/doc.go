// Package messages holds the localized UI strings of the built-in pages.
//
// Messages live in embedded TOML files (locales/active.<lang>.toml) and are
// served through go-i18n. Lookups fall back to the base locale and finally to
// the message id, so a missing translation never breaks a page.
package messages
