package obfuscation

import (
	"regexp"
	"strings"
)

// ipv4Pattern matches dotted quads without checking octet ranges, so
// 999.999.999.999 is treated as an address too.
var ipv4Pattern = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)

// ipv4ExcludeMarkers skip whole lines that usually carry version numbers.
var ipv4ExcludeMarkers = []string{"version", ".dll"}

// IPv4Matcher replaces dotted-quad tokens with addresses from 192.0.2.0/24.
type IPv4Matcher struct {
	table *ReplacementTable
}

func NewIPv4Matcher(table *ReplacementTable) *IPv4Matcher {
	return &IPv4Matcher{table: table}
}

func (m *IPv4Matcher) Kind() Kind { return KindIPv4 }

func (m *IPv4Matcher) Apply(line string) string {
	if excludedFromIPv4(line) {
		return line
	}
	return ipv4Pattern.ReplaceAllStringFunc(line, func(ip string) string {
		return m.table.Resolve(CategoryIPv4, ip)
	})
}

func excludedFromIPv4(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range ipv4ExcludeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
