package obfuscation

import (
	"obfuscate-logs/internal/textenc"
)

// Mode says how a file's bytes were treated.
type Mode string

const (
	// ModeBOMText decodes the whole file as text behind its byte-order mark.
	ModeBOMText Mode = "bom-text"
	// ModeHeaderBinary obfuscates a leading text header and copies the rest.
	ModeHeaderBinary Mode = "header-binary"
)

// Result describes one transformed file.
type Result struct {
	ContentResult
	Mode     Mode
	Encoding string
	// BodyBytes counts the bytes copied through without inspection.
	BodyBytes int
}

// Transform obfuscates raw file bytes. The whole file is held in memory.
//
// Files that start with a byte-order mark are handled as text end to end
// and keep their mark. All other files are split at the text/binary
// boundary: only the header is decoded and obfuscated, and the body is
// appended byte for byte.
func (o *Obfuscator) Transform(data []byte, filePath string) ([]byte, Result) {
	if bom, ok := textenc.DetectBOM(data); ok {
		return o.transformBOMText(data, bom, filePath)
	}
	return o.transformHeaderBinary(data, filePath)
}

func (o *Obfuscator) transformBOMText(data []byte, bom textenc.BOM, filePath string) ([]byte, Result) {
	res := Result{Mode: ModeBOMText, Encoding: bom.Name}

	text, err := textenc.Decode(bom.Encoding, data[len(bom.Marker):])
	if err != nil {
		o.logger.Error("Error decoding text in file", "file", filePath, "encoding", bom.Name, "error", err)
		text = ""
	}

	res.ContentResult = o.Content(text, filePath)

	out := make([]byte, 0, len(data))
	out = append(out, bom.Marker...)
	out = append(out, textenc.Encode(bom.Encoding, res.Text)...)
	return out, res
}

func (o *Obfuscator) transformHeaderBinary(data []byte, filePath string) ([]byte, Result) {
	sample := data
	if len(sample) > textenc.SampleSize {
		sample = sample[:textenc.SampleSize]
	}
	det, detErr := o.opts.Detector.Detect(sample)
	codec := o.opts.Chooser(det, detErr)
	if codec.Fallback && len(data) > 0 {
		o.logger.Warn("Encoding detection inconclusive, assuming fallback",
			"file", filePath,
			"detected", det.Label,
			"confidence", det.Confidence,
			"fallback", codec.Label,
			"error", detErr)
	}

	header, body := textenc.Split(o.opts.Boundary, data)
	res := Result{Mode: ModeHeaderBinary, Encoding: codec.Label, BodyBytes: len(body)}

	text, err := textenc.Decode(codec.Encoding, header)
	if err != nil {
		o.logger.Error("Error decoding text header in file", "file", filePath, "encoding", codec.Label, "error", err)
		text = ""
	}

	res.ContentResult = o.Content(text, filePath)

	encoded := textenc.Encode(codec.Encoding, res.Text)
	out := make([]byte, 0, len(encoded)+len(body))
	out = append(out, encoded...)
	out = append(out, body...)
	return out, res
}
