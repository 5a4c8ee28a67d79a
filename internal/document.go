package internal

import (
	"errors"
	"fmt"
	"strings"
)

// Document shell placeholders.
const (
	HeadPlaceholder = "%sitekit.head%"
	BodyPlaceholder = "%sitekit.body%"
)

// DefaultDocument is the shell used when no custom document is configured.
// The lang attribute carries the locale placeholder filled by the locale middleware.
const DefaultDocument = `<!doctype html>
<html lang="%lang%">
	<head>
		<meta charset="utf-8">
		<meta name="viewport" content="width=device-width, initial-scale=1">
		%sitekit.head%
	</head>
	<body>
		<div style="display: contents">%sitekit.body%</div>
	</body>
</html>
`

// ErrInvalidDocument is returned when a document shell lacks its placeholders.
var ErrInvalidDocument = errors.New("sitekit: invalid document")

// Document is a parsed HTML shell split around its head and body placeholders.
type Document struct {
	beforeHead string
	beforeBody string
	afterBody  string
}

// ParseDocument splits src around the head and body placeholders.
// Each must appear exactly once, head before body.
func ParseDocument(src string) (*Document, error) {
	if n := strings.Count(src, HeadPlaceholder); n != 1 {
		return nil, fmt.Errorf("%w: %s must appear once, found %d", ErrInvalidDocument, HeadPlaceholder, n)
	}
	if n := strings.Count(src, BodyPlaceholder); n != 1 {
		return nil, fmt.Errorf("%w: %s must appear once, found %d", ErrInvalidDocument, BodyPlaceholder, n)
	}

	before, rest, _ := strings.Cut(src, HeadPlaceholder)
	middle, after, found := strings.Cut(rest, BodyPlaceholder)
	if !found {
		return nil, fmt.Errorf("%w: %s must follow %s", ErrInvalidDocument, BodyPlaceholder, HeadPlaceholder)
	}

	return &Document{beforeHead: before, beforeBody: middle, afterBody: after}, nil
}

// MustParseDocument is like ParseDocument but panics on error.
func MustParseDocument(src string) *Document {
	doc, err := ParseDocument(src)
	if err != nil {
		panic(err)
	}
	return doc
}

// Assemble fills the shell with head and body markup.
func (d *Document) Assemble(head, body string) string {
	var b strings.Builder
	b.Grow(len(d.beforeHead) + len(head) + len(d.beforeBody) + len(body) + len(d.afterBody))
	b.WriteString(d.beforeHead)
	b.WriteString(head)
	b.WriteString(d.beforeBody)
	b.WriteString(body)
	b.WriteString(d.afterBody)
	return b.String()
}
