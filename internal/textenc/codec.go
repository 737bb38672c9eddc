package textenc

import (
	"strings"

	"golang.org/x/text/encoding"
)

// Decode converts b to text. UTF-8 input is kept byte for byte, including
// invalid sequences.
func Decode(enc encoding.Encoding, b []byte) (string, error) {
	if isUTF8(enc) {
		return string(b), nil
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Encode converts s to enc, dropping any rune enc cannot represent.
func Encode(enc encoding.Encoding, s string) []byte {
	if isUTF8(enc) {
		return []byte(s)
	}
	e := enc.NewEncoder()
	if out, err := e.String(s); err == nil {
		return []byte(out)
	}

	var sb strings.Builder
	for _, r := range s {
		out, err := e.String(string(r))
		if err != nil {
			continue
		}
		sb.WriteString(out)
	}
	return []byte(sb.String())
}
