package obfuscation

import (
	"log/slog"
	"strings"

	"obfuscate-logs/internal/textenc"
)

// LineRecord describes one modified line. Kind is the last matcher that
// changed the line; earlier changes are still present in After.
type LineRecord struct {
	FilePath   string `json:"file_path"`
	LineNumber int    `json:"line_number"`
	Before     string `json:"before"`
	After      string `json:"after"`
	Kind       Kind   `json:"obfuscation_kind"`
}

// Options configures an Obfuscator.
type Options struct {
	IPv4     bool
	Detailed bool
	Logger   *slog.Logger

	// Detector, Chooser and Boundary default to chardet sniffing,
	// textenc.Choose and the first-non-ASCII-byte heuristic.
	Detector textenc.Detector
	Chooser  textenc.Chooser
	Boundary textenc.BoundaryDetector
}

// ContentResult is the outcome of obfuscating one block of text.
type ContentResult struct {
	Text         string
	Lines        int
	ChangedLines int
	ByKind       map[Kind]int
	// Records is only populated in detailed mode.
	Records []LineRecord
}

// Obfuscator rewrites file contents for one run. Every file processed by the
// same Obfuscator shares its ReplacementTable.
type Obfuscator struct {
	table    *ReplacementTable
	keywords *KeywordMatcher
	lines    *LineObfuscator
	opts     Options
	logger   *slog.Logger
}

// New creates an Obfuscator. keywords maps lowercased keywords to their
// replacements and may be empty.
func New(table *ReplacementTable, keywords map[string]string, opts Options) *Obfuscator {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Detector == nil {
		opts.Detector = textenc.NewChardetDetector()
	}
	if opts.Chooser == nil {
		opts.Chooser = textenc.Choose
	}
	if opts.Boundary == nil {
		opts.Boundary = textenc.FirstNonASCII{}
	}

	km := NewKeywordMatcher(keywords)
	return &Obfuscator{
		table:    table,
		keywords: km,
		lines:    NewLineObfuscator(table, km, opts.IPv4),
		opts:     opts,
		logger:   opts.Logger,
	}
}

// Table returns the run's replacement table.
func (o *Obfuscator) Table() *ReplacementTable { return o.table }

// Line obfuscates a single line.
func (o *Obfuscator) Line(line string) (string, Kind) {
	return o.lines.Obfuscate(line)
}

// Content obfuscates text line by line. Lines are split on LF only; a CR
// before the LF stays part of the line, so CRLF input comes back as CRLF.
func (o *Obfuscator) Content(content, filePath string) ContentResult {
	lines := strings.Split(content, "\n")
	res := ContentResult{
		Lines:  len(lines),
		ByKind: make(map[Kind]int),
	}

	for i, before := range lines {
		after, kind := o.lines.Obfuscate(before)
		if after == before {
			continue
		}
		lines[i] = after
		res.ChangedLines++
		res.ByKind[kind]++

		if o.opts.Detailed {
			rec := LineRecord{
				FilePath:   filePath,
				LineNumber: i + 1,
				Before:     before,
				After:      after,
				Kind:       kind,
			}
			res.Records = append(res.Records, rec)
			o.logger.Info("Line obfuscated",
				"file", rec.FilePath,
				"line", rec.LineNumber,
				"before", rec.Before,
				"after", rec.After,
				"type", string(rec.Kind))
		}
	}

	res.Text = strings.Join(lines, "\n")
	return res
}
