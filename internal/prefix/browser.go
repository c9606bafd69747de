package prefix

import (
	"fmt"
	"strings"

	"stylekit/internal/diag"
)

// Browser identifies a browser family tracked by the reference data.
type Browser uint8

const (
	Chrome Browser = iota
	Firefox
	Safari
	IE
	Edge
	Opera
	IOSSafari
	Android
	browserCount
)

var browserInfo = [browserCount]struct {
	key    string
	name   string
	prefix Prefix
}{
	Chrome:    {"chrome", "Chrome", Webkit},
	Firefox:   {"firefox", "Firefox", Moz},
	Safari:    {"safari", "Safari", Webkit},
	IE:        {"ie", "Internet Explorer", MS},
	Edge:      {"edge", "Edge", MS},
	Opera:     {"opera", "Opera", O},
	IOSSafari: {"ios_saf", "iOS Safari", Webkit},
	Android:   {"android", "Android Browser", Webkit},
}

// Browsers returns every known browser in declaration order.
func Browsers() []Browser {
	out := make([]Browser, 0, browserCount)
	for b := range browserCount {
		out = append(out, b)
	}
	return out
}

// Key is the lowercase identifier used in data and configuration files.
func (b Browser) Key() string {
	if b >= browserCount {
		return fmt.Sprintf("browser(%d)", b)
	}
	return browserInfo[b].key
}

func (b Browser) String() string {
	if b >= browserCount {
		return b.Key()
	}
	return browserInfo[b].name
}

// Prefix is the vendor prefix the browser used.
func (b Browser) Prefix() Prefix {
	if b >= browserCount {
		return PrefixNone
	}
	return browserInfo[b].prefix
}

var browserAliases = map[string]Browser{
	"ios":               IOSSafari,
	"ios_safari":        IOSSafari,
	"iossafari":         IOSSafari,
	"internet_explorer": IE,
	"explorer":          IE,
	"msie":              IE,
}

// ParseBrowser accepts a browser key, its display name, or a common alias.
func ParseBrowser(s string) (Browser, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	k = strings.ReplaceAll(k, " ", "_")
	for b := range browserCount {
		if browserInfo[b].key == k || strings.ReplaceAll(strings.ToLower(browserInfo[b].name), " ", "_") == k {
			return b, nil
		}
	}
	if b, ok := browserAliases[k]; ok {
		return b, nil
	}
	return 0, diag.NewConfigError(diag.CfgUnknownBrowser, s, "unknown browser %q", s)
}
