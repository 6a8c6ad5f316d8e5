package retrieval

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/microcosm-cc/bluemonday"
)

// ContentConverter normalizes uploaded content to plain markdown before
// chunking. HTML goes through a two-stage process: sanitize (strip scripts,
// event handlers, javascript: URLs) then convert to markdown. Text and
// markdown pass through unchanged.
type ContentConverter struct {
	policy    *bluemonday.Policy
	converter *md.Converter
}

// NewContentConverter creates a converter with a UGC sanitization policy:
// common formatting survives, XSS vectors do not.
func NewContentConverter() *ContentConverter {
	return &ContentConverter{
		policy:    bluemonday.UGCPolicy(),
		converter: md.NewConverter("", true, nil),
	}
}

// Convert returns (normalized content, normalized doc type, error).
func (c *ContentConverter) Convert(content, docType string) (string, string, error) {
	switch strings.ToLower(docType) {
	case "html", "htm":
		sanitized := c.policy.Sanitize(content)
		markdown, err := c.converter.ConvertString(sanitized)
		if err != nil {
			return "", "", fmt.Errorf("converting HTML to markdown: %w", err)
		}
		return markdown, "markdown", nil
	case "", "text", "txt":
		return content, "text", nil
	case "markdown", "md":
		return content, "markdown", nil
	default:
		return "", "", fmt.Errorf("unsupported document type: %s", docType)
	}
}
