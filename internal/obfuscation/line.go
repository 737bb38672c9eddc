package obfuscation

// LineObfuscator runs its matchers over a line in order, each one seeing the
// output of the previous.
type LineObfuscator struct {
	matchers []Matcher
}

// NewLineObfuscator returns the standard pipeline: URL hosts, then IPv4
// addresses when enabled, then keywords.
func NewLineObfuscator(table *ReplacementTable, keywords *KeywordMatcher, ipv4 bool) *LineObfuscator {
	matchers := []Matcher{NewURLMatcher(table)}
	if ipv4 {
		matchers = append(matchers, NewIPv4Matcher(table))
	}
	if keywords != nil {
		matchers = append(matchers, keywords)
	}
	return &LineObfuscator{matchers: matchers}
}

// Obfuscate returns the rewritten line and the kind of the last matcher that
// changed it, or KindNone when the line is untouched.
func (l *LineObfuscator) Obfuscate(line string) (string, Kind) {
	kind := KindNone
	for _, m := range l.matchers {
		next := m.Apply(line)
		if next != line {
			kind = m.Kind()
			line = next
		}
	}
	return line, kind
}
