package obfuscation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLMatcher(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "host with path and query",
			input:    "https://internal-host.corp/api/v1?x=1",
			expected: "https://generic-domain-1.com/api/v1?x=1",
		},
		{
			name:     "host without path",
			input:    "see http://build01.lab for details",
			expected: "see http://generic-domain-1.com for details",
		},
		{
			name:     "path stops at whitespace",
			input:    "GET https://a.corp/x/y z",
			expected: "GET https://generic-domain-1.com/x/y z",
		},
		{
			name:     "path stops at vertical tab",
			input:    "GET http://a.corp/x\vhttp://secret.corp/y",
			expected: "GET http://generic-domain-1.com/x\vhttp://generic-domain-2.com/y",
		},
		{
			name:     "path stops at unit separator",
			input:    "http://a.corp/x\x1fhttp://secret.corp/y",
			expected: "http://generic-domain-1.com/x\x1fhttp://generic-domain-2.com/y",
		},
		{
			name:     "path stops at next line",
			input:    "http://a.corp/x\u0085http://secret.corp/y",
			expected: "http://generic-domain-1.com/x\u0085http://generic-domain-2.com/y",
		},
		{
			name:     "path stops at no-break space",
			input:    "http://a.corp/x\u00a0http://secret.corp/y",
			expected: "http://generic-domain-1.com/x\u00a0http://generic-domain-2.com/y",
		},
		{
			name:     "path stops at ideographic space",
			input:    "http://a.corp/x\u3000http://secret.corp/y",
			expected: "http://generic-domain-1.com/x\u3000http://generic-domain-2.com/y",
		},
		{
			name:     "port is left in place",
			input:    "http://a.corp:8080/health",
			expected: "http://generic-domain-1.com:8080/health",
		},
		{
			name:     "other schemes untouched",
			input:    "ftp://files.corp/x",
			expected: "ftp://files.corp/x",
		},
		{
			name:     "no url",
			input:    "nothing to see here",
			expected: "nothing to see here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewURLMatcher(NewReplacementTable())
			assert.Equal(t, tt.expected, m.Apply(tt.input))
		})
	}
}

func TestURLMatcher_SameHostSamePlaceholder(t *testing.T) {
	m := NewURLMatcher(NewReplacementTable())

	line := m.Apply("https://a.corp/one and http://b.corp and https://a.corp/two")

	assert.Equal(t, "https://generic-domain-1.com/one and http://generic-domain-2.com and https://generic-domain-1.com/two", line)
	assert.Equal(t, "https://generic-domain-2.com/again", m.Apply("https://b.corp/again"))
}

func TestIPv4Matcher(t *testing.T) {
	m := NewIPv4Matcher(NewReplacementTable())

	assert.Equal(t, "from 192.0.2.1 to 192.0.2.2 back to 192.0.2.1",
		m.Apply("from 10.0.0.5 to 172.16.4.1 back to 10.0.0.5"))
}

func TestIPv4Matcher_NoOctetValidation(t *testing.T) {
	m := NewIPv4Matcher(NewReplacementTable())

	assert.Equal(t, "bogus 192.0.2.1", m.Apply("bogus 999.999.999.999"))
}

func TestIPv4Matcher_WordBoundaries(t *testing.T) {
	m := NewIPv4Matcher(NewReplacementTable())

	assert.Equal(t, "abc1.2.3.4", m.Apply("abc1.2.3.4"))
	assert.Equal(t, "192.0.2.1.5", m.Apply("1.2.3.4.5"))
}

func TestIPv4Matcher_ExcludedLines(t *testing.T) {
	tests := []string{
		"version 10.0.0.5",
		"Product VERSION: 1.2.3.4",
		"driver.dll with ip 10.0.0.5",
		"loaded KERNEL32.DLL 6.1.7601.2",
	}

	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			m := NewIPv4Matcher(NewReplacementTable())
			assert.Equal(t, line, m.Apply(line))
		})
	}
}

func TestKeywordMatcher_CaseInsensitive(t *testing.T) {
	m := NewKeywordMatcher(map[string]string{"server1": "generic1"})

	assert.Equal(t, "connect to generic1, generic1 and generic1",
		m.Apply("connect to SERVER1, Server1 and server1"))
}

func TestKeywordMatcher_LongestKeywordWins(t *testing.T) {
	m := NewKeywordMatcher(map[string]string{
		"server":  "host",
		"server1": "generic1",
	})

	assert.Equal(t, "generic1 and host", m.Apply("server1 and server"))
}

func TestKeywordMatcher_SpecialCharactersEscaped(t *testing.T) {
	m := NewKeywordMatcher(map[string]string{"a.b(c)": "x", "$home": "y"})

	assert.Equal(t, "x y aXb(c)", m.Apply("a.b(c) $HOME aXb(c)"))
}

func TestKeywordMatcher_ReplacementIsLiteral(t *testing.T) {
	m := NewKeywordMatcher(map[string]string{"secret": "$1-${x}"})

	assert.Equal(t, "my $1-${x}", m.Apply("my secret"))
}

func TestKeywordMatcher_Empty(t *testing.T) {
	m := NewKeywordMatcher(nil)

	assert.Nil(t, m.pattern)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, "server1 stays", m.Apply("server1 stays"))
}

func TestKeywordMatcher_NormalizesKeys(t *testing.T) {
	m := NewKeywordMatcher(map[string]string{
		"Admin": "first",
		"admin": "second",
		"":      "ignored",
	})

	assert.Equal(t, 1, m.Len())
	assert.Equal(t, "user first", m.Apply("user ADMIN"))
}

func TestAlternationOrder(t *testing.T) {
	order := alternationOrder(map[string]string{
		"ab":  "",
		"b":   "",
		"abc": "",
		"aa":  "",
		"a.c": "",
	})

	assert.Equal(t, []string{"a\\.c", "abc", "aa", "ab", "b"}, order)
}
