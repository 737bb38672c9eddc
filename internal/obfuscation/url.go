package obfuscation

import "regexp"

// urlPattern captures scheme, host and optional path of http(s) URLs.
// The path runs to the next whitespace character. RE2's \s is ASCII only,
// so vertical tab, the 0x1C-0x1F separators, NEL and Unicode spaces are
// listed explicitly.
var urlPattern = regexp.MustCompile(`(https?://)([a-zA-Z0-9.-]+)(/[^\s\x0b\x1c-\x1f\x{85}\p{Z}]*)?`)

// URLMatcher replaces the host of every http/https URL with a generic
// domain while keeping scheme and path.
type URLMatcher struct {
	table *ReplacementTable
}

func NewURLMatcher(table *ReplacementTable) *URLMatcher {
	return &URLMatcher{table: table}
}

func (m *URLMatcher) Kind() Kind { return KindURL }

func (m *URLMatcher) Apply(line string) string {
	return replaceAllSubmatchFunc(urlPattern, line, func(groups []string) string {
		scheme, host, path := groups[1], groups[2], groups[3]
		return scheme + m.table.Resolve(CategoryHost, host) + path
	})
}
