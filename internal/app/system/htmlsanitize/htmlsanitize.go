// Package htmlsanitize strips dangerous markup from rich text before it
// is stored. The admin dashboard's content editors produce raw HTML via
// contentEditable, so everything arriving in an HTML content slot or a
// speaker bio goes through here on write.
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, creating it on first use.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()

		// The editors emit execCommand formatting: underline/strike,
		// alignment divs, font sizing spans, simple tables.
		policy.AllowElements("u", "s", "sub", "sup", "mark")
		policy.AllowElements("table", "thead", "tbody", "tr", "th", "td")
		policy.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
		policy.AllowAttrs("style").OnElements("p", "div", "span", "table", "th", "td")
	})
	return policy
}

// Sanitize cleans HTML input, removing dangerous elements and attributes
// while preserving the formatting the editors produce.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}

// SanitizePayload sanitizes every top-level string field of a content
// payload in place and returns it. Non-string fields pass through
// untouched: HTML slots keep their text in string fields, and anything
// else is not renderable markup.
func SanitizePayload(payload map[string]any) map[string]any {
	for k, v := range payload {
		if s, ok := v.(string); ok {
			payload[k] = Sanitize(s)
		}
	}
	return payload
}
