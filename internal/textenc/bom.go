package textenc

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// BOM is a byte-order mark and the codec for the text that follows it.
type BOM struct {
	Name     string
	Marker   []byte
	Encoding encoding.Encoding
}

// Longer markers first: the UTF-32LE mark starts with the UTF-16LE one.
var boms = []BOM{
	{Name: "utf-32le", Marker: []byte{0xFF, 0xFE, 0x00, 0x00}, Encoding: utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)},
	{Name: "utf-32be", Marker: []byte{0x00, 0x00, 0xFE, 0xFF}, Encoding: utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)},
	{Name: "utf-8-sig", Marker: []byte{0xEF, 0xBB, 0xBF}, Encoding: unicode.UTF8},
	{Name: "utf-16le", Marker: []byte{0xFF, 0xFE}, Encoding: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)},
	{Name: "utf-16be", Marker: []byte{0xFE, 0xFF}, Encoding: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)},
}

// DetectBOM reports the byte-order mark data starts with, if any.
func DetectBOM(data []byte) (BOM, bool) {
	for _, b := range boms {
		if bytes.HasPrefix(data, b.Marker) {
			return b, true
		}
	}
	return BOM{}, false
}

// IsUTF8 reports whether the BOM marks UTF-8 text.
func (b BOM) IsUTF8() bool {
	return b.Name == "utf-8-sig"
}
