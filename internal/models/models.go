package models

// FileJob drives the transformation of one file.
type FileJob struct {
	SourcePath      string `json:"source_path"`
	DestinationPath string `json:"destination_path"`
	Index           int    `json:"index"`
	Total           int    `json:"total"`
}

// FileResult is what a run reports about one file. It never carries
// original or replacement values.
type FileResult struct {
	Source       string         `json:"source"`
	Destination  string         `json:"destination"`
	Mode         string         `json:"mode,omitempty"`
	Encoding     string         `json:"encoding,omitempty"`
	Lines        int            `json:"lines"`
	ChangedLines int            `json:"changed_lines"`
	ByKind       map[string]int `json:"by_kind,omitempty"`
	BinaryBytes  int            `json:"binary_bytes"`
	Error        string         `json:"error,omitempty"`
}
