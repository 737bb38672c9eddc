package obfuscation

import (
	"regexp"
	"sort"
	"strings"
)

// KeywordMatcher substitutes user-defined keywords case-insensitively.
//
// All keywords are compiled into one alternation. Go's regexp picks the
// leftmost alternative that matches, so keys are ordered longest first: when
// one keyword contains another, the longer one wins.
type KeywordMatcher struct {
	pattern      *regexp.Regexp
	replacements map[string]string
}

// NewKeywordMatcher builds a matcher from a keyword -> replacement map.
// Keys are lowercased; empty keys are ignored. If two keys collide after
// lowercasing, the lexically smaller original key wins.
func NewKeywordMatcher(keywords map[string]string) *KeywordMatcher {
	originals := make([]string, 0, len(keywords))
	for k := range keywords {
		originals = append(originals, k)
	}
	sort.Strings(originals)

	m := &KeywordMatcher{replacements: make(map[string]string, len(keywords))}
	for _, k := range originals {
		lower := strings.ToLower(k)
		if lower == "" {
			continue
		}
		if _, dup := m.replacements[lower]; dup {
			continue
		}
		m.replacements[lower] = keywords[k]
	}
	if len(m.replacements) == 0 {
		return m
	}

	m.pattern = regexp.MustCompile("(?i)(?:" + strings.Join(alternationOrder(m.replacements), "|") + ")")
	return m
}

// alternationOrder returns the escaped keys sorted by descending length,
// ties broken lexically.
func alternationOrder(replacements map[string]string) []string {
	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for i, k := range keys {
		keys[i] = regexp.QuoteMeta(k)
	}
	return keys
}

func (m *KeywordMatcher) Kind() Kind { return KindKeyword }

// Len returns the number of distinct keywords.
func (m *KeywordMatcher) Len() int { return len(m.replacements) }

func (m *KeywordMatcher) Apply(line string) string {
	if m.pattern == nil {
		return line
	}
	return m.pattern.ReplaceAllStringFunc(line, func(match string) string {
		if replacement, ok := m.replacements[strings.ToLower(match)]; ok {
			return replacement
		}
		// Unicode case folding can match text whose lowercase form differs
		// from the key; leave such text alone.
		return match
	})
}
