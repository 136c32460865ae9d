package provider

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// MarkdownToHTML renders markdown source to HTML for providers that only
// accept HTML input. Rendering happens before dispatch so the provider sees
// well-formed markup instead of raw markdown syntax.
func MarkdownToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
