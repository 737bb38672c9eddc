package textenc

import (
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

const (
	// SampleSize bounds how many leading bytes are sniffed.
	SampleSize = 4096

	// MinConfidence is the lowest chardet confidence (0-100) accepted.
	MinConfidence = 10

	FallbackLabel = "windows-1252"
)

// Detection is a guessed charset label with a 0-100 confidence.
type Detection struct {
	Label      string
	Confidence int
}

// Detector guesses the encoding of a byte sample.
type Detector interface {
	Detect(sample []byte) (Detection, error)
}

// ChardetDetector sniffs encodings with the ICU-derived chardet port.
type ChardetDetector struct {
	detector *chardet.Detector
}

func NewChardetDetector() *ChardetDetector {
	return &ChardetDetector{detector: chardet.NewTextDetector()}
}

func (d *ChardetDetector) Detect(sample []byte) (Detection, error) {
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}
	res, err := d.detector.DetectBest(sample)
	if err != nil {
		return Detection{}, err
	}
	return Detection{Label: res.Charset, Confidence: res.Confidence}, nil
}

// Codec is the encoding chosen for a file header.
type Codec struct {
	Label    string
	Encoding encoding.Encoding
	// Fallback is set when detection failed, was unsure, or named a charset
	// x/text cannot handle.
	Fallback bool
}

// Chooser picks the codec for a file header from a detection result.
type Chooser func(det Detection, err error) Codec

// Choose turns a detection result into a codec. Anything unusable falls
// back to windows-1252, which leaves ASCII bytes as they are.
func Choose(det Detection, err error) Codec {
	if err != nil || det.Label == "" || det.Confidence < MinConfidence {
		return fallbackCodec()
	}
	enc, ok := Lookup(det.Label)
	if !ok {
		return fallbackCodec()
	}
	return Codec{Label: strings.ToLower(det.Label), Encoding: enc}
}

func fallbackCodec() Codec {
	return Codec{Label: FallbackLabel, Encoding: charmap.Windows1252, Fallback: true}
}

// Lookup resolves a charset name through the IANA registry, then the WHATWG
// label table.
func Lookup(label string) (encoding.Encoding, bool) {
	if enc, err := ianaindex.IANA.Encoding(label); err == nil && enc != nil {
		return enc, true
	}
	if enc, err := htmlindex.Get(label); err == nil && enc != nil {
		return enc, true
	}
	return nil, false
}

func isUTF8(enc encoding.Encoding) bool {
	return enc == unicode.UTF8 || enc == unicode.UTF8BOM
}
