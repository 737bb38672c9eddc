// Package textenc separates the textual header of a file from its binary
// body and converts that header between bytes and text.
package textenc

// BoundaryDetector returns the offset where the textual header of data
// ends. Bytes from the offset on are passed through untouched.
type BoundaryDetector interface {
	DetectBoundary(data []byte) int
}

// FirstNonASCII ends the header at the first byte above 127.
type FirstNonASCII struct{}

func (FirstNonASCII) DetectBoundary(data []byte) int {
	for i, b := range data {
		if b > 127 {
			return i
		}
	}
	return len(data)
}

// Split cuts data at the boundary found by d. An offset outside data is
// clamped.
func Split(d BoundaryDetector, data []byte) (header, body []byte) {
	n := d.DetectBoundary(data)
	if n < 0 {
		n = 0
	}
	if n > len(data) {
		n = len(data)
	}
	return data[:n], data[n:]
}
