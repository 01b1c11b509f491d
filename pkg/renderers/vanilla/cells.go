package vanilla

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-dashwidgets/pkg/table"
)

var (
	urlPolicyOnce sync.Once
	urlPolicy     *bluemonday.Policy
)

// linkPolicy admits http(s), mailto and relative URLs on anchors and images.
// Anything else (javascript:, data:, ...) is stripped.
func linkPolicy() *bluemonday.Policy {
	urlPolicyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowStandardURLs()
		p.AllowAttrs("href").OnElements("a")
		p.AllowAttrs("src").OnElements("img")
		urlPolicy = p
	})
	return urlPolicy
}

// safeURL returns raw when the policy keeps it as attr on element, or "".
func safeURL(element, attr, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	probe := "<" + element + " " + attr + `="` + html.EscapeString(raw) + `">`
	if !strings.Contains(linkPolicy().Sanitize(probe), attr+"=") {
		return ""
	}
	return raw
}

// cellHTML renders one table cell. Text is always escaped; URLs pass the
// link policy first.
func cellHTML(cell table.Cell) string {
	switch c := cell.(type) {
	case table.TextCell:
		return html.EscapeString(c.Text)
	case table.NumberCell:
		return html.EscapeString(c.Text)
	case table.BooleanCell:
		return `<span class="` + string(ClassBoolean) + `">` + html.EscapeString(c.Glyph()) + `</span>`
	case table.StateCell:
		if !c.Matched {
			return `<span class="` + string(ClassState) + " " + string(ClassStateUnmapped) + `" title="` + html.EscapeString(c.State) + `"></span>`
		}
		return `<span class="` + string(ClassState) + `" style="background-color: ` + html.EscapeString(cssValue(c.Color)) + `" title="` + html.EscapeString(c.State) + `"></span>`
	case table.LinkCell:
		return `<a class="` + string(ClassLink) + `"` + hrefAttr(c.Href) + ` target="_blank" rel="noopener noreferrer">` + html.EscapeString(c.Text) + `</a>`
	case table.ImageCell:
		return `<a class="` + string(ClassImage) + `"` + hrefAttr(c.Href) + ` target="_blank" rel="noopener noreferrer"><img src="` + html.EscapeString(safeURL("img", "src", c.Src)) + `" alt=""></a>`
	default:
		return ""
	}
}

func hrefAttr(raw string) string {
	href := safeURL("a", "href", raw)
	if href == "" {
		return ""
	}
	return ` href="` + html.EscapeString(href) + `"`
}

// cssValue mirrors the template cssvalue filter for values written from Go.
func cssValue(value string) string {
	if idx := strings.IndexAny(value, ";{}<>\\\""); idx >= 0 {
		value = value[:idx]
	}
	return strings.TrimSpace(value)
}
