package obfuscation

import "regexp"

// Kind names the matcher that changed a line. The values appear verbatim in
// detailed log records.
type Kind string

const (
	KindNone    Kind = ""
	KindURL     Kind = "HTTP/HTTPS URL Obfuscation"
	KindIPv4    Kind = "IPv4 Address Obfuscation"
	KindKeyword Kind = "Keyword Obfuscation"
)

// Matcher rewrites the sensitive substrings it recognizes in one line.
type Matcher interface {
	Kind() Kind
	Apply(line string) string
}

// replaceAllSubmatchFunc is ReplaceAllStringFunc with access to the
// submatches of every match. Unmatched optional groups are "".
func replaceAllSubmatchFunc(re *regexp.Regexp, s string, repl func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	out := make([]byte, 0, len(s))
	last := 0
	for _, loc := range matches {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = s[loc[2*i]:loc[2*i+1]]
			}
		}
		out = append(out, s[last:loc[0]]...)
		out = append(out, repl(groups)...)
		last = loc[1]
	}
	out = append(out, s[last:]...)
	return string(out)
}
