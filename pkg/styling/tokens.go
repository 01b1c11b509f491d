package styling

import (
	"strings"

	"github.com/goliatone/go-dashwidgets/pkg/model"
)

// Ambient style token names consulted before the theme object.
const (
	TokenTextColor       = "--re-text-color"
	TokenBackgroundColor = "--re-tile-background-color"
)

// StyleResolver exposes the ambient styling environment, the equivalent of
// computed style lookups on the host element.
type StyleResolver interface {
	ResolveStyle(name string) (string, bool)
}

// Tokens are the resolved colors a widget renders with. Empty strings mean
// "use the renderer's default".
type Tokens struct {
	BackgroundColor string   `json:"backgroundColor,omitempty"`
	TitleColor      string   `json:"titleColor,omitempty"`
	SubtitleColor   string   `json:"subtitleColor,omitempty"`
	AccentColors    []string `json:"accentColors,omitempty"`
}

// Accent returns the first accent color, or fallback when none is set.
func (t Tokens) Accent(fallback string) string {
	if len(t.AccentColors) > 0 && t.AccentColors[0] != "" {
		return t.AccentColors[0]
	}
	return fallback
}

// Resolve derives the widget tokens. Precedence for every token is ambient
// style, then theme object, then empty. The subtitle additionally falls back
// to the title color. Malformed theme objects are tolerated.
func Resolve(resolver StyleResolver, theme *model.Theme) Tokens {
	ambientText := lookup(resolver, TokenTextColor)
	ambientBackground := lookup(resolver, TokenBackgroundColor)

	var object map[string]any
	if theme != nil {
		object = theme.Object
	}

	tokens := Tokens{
		BackgroundColor: firstNonEmpty(ambientBackground, stringAt(object, "backgroundColor")),
		TitleColor:      firstNonEmpty(ambientText, stringAt(object, "title", "textStyle", "color")),
		AccentColors:    stringsAt(object, "color"),
	}
	tokens.SubtitleColor = firstNonEmpty(ambientText, stringAt(object, "title", "subtextStyle", "color"), tokens.TitleColor)
	return tokens
}

func lookup(resolver StyleResolver, name string) string {
	if resolver == nil {
		return ""
	}
	value, ok := resolver.ResolveStyle(name)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func valueAt(object map[string]any, path ...string) (any, bool) {
	var current any = object
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok || m == nil {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func stringAt(object map[string]any, path ...string) string {
	value, ok := valueAt(object, path...)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

func stringsAt(object map[string]any, path ...string) []string {
	value, ok := valueAt(object, path...)
	if !ok {
		return nil
	}
	var out []string
	switch list := value.(type) {
	case []string:
		out = append(out, list...)
	case []any:
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				s = ""
			}
			out = append(out, s)
		}
	default:
		return nil
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
