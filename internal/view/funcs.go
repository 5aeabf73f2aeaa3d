package view

import (
	"bytes"
	"html/template"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ExcerptLength is the number of characters of post content shown on category screens.
const ExcerptLength = 100

var (
	md = goldmark.New(goldmark.WithExtensions(extension.GFM))
	// User content is untrusted; only safe HTML survives rendering.
	policy = bluemonday.UGCPolicy()
)

// Funcs returns the template helpers available to every page.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"markdown":  Markdown,
		"excerpt":   Excerpt,
		"timestamp": Timestamp,
	}
}

// Markdown renders content as sanitized HTML. On a rendering failure the
// escaped source text is returned.
func Markdown(content string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}

// Excerpt returns the first ExcerptLength characters of content followed by "...".
func Excerpt(content string) string {
	if utf8.RuneCountInString(content) <= ExcerptLength {
		return content + "..."
	}
	return string([]rune(content)[:ExcerptLength]) + "..."
}

// Timestamp formats nanoseconds since the Unix epoch for display.
func Timestamp(nanos int64) string {
	return time.Unix(0, nanos).UTC().Format("2006-01-02 15:04 MST")
}
