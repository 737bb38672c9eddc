package batch

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"obfuscate-logs/internal/models"
	"obfuscate-logs/internal/obfuscation"
	"obfuscate-logs/internal/report"
)

// Runner processes plan jobs sequentially. A failing file is logged and
// reported, and the run moves on to the next one.
type Runner struct {
	Obfuscator *obfuscation.Obfuscator
	Logger     *slog.Logger
	// Out receives operator-facing progress lines.
	Out io.Writer
	// Report is optional.
	Report *report.Report
}

// Summary counts the outcome of a run.
type Summary struct {
	Processed int
	Failed    int
}

func (r *Runner) Run(plan *Plan) Summary {
	if plan.IsDir {
		r.Logger.Info("Total files to process", "count", len(plan.Jobs))
		r.Logger.Info("Total folders to process", "count", plan.Folders)
		fmt.Fprintf(r.Out, "Total files to process: %d\n", len(plan.Jobs))
		fmt.Fprintf(r.Out, "Total folders to process: %d\n", plan.Folders)
	}

	var sum Summary
	for _, job := range plan.Jobs {
		res, err := r.ProcessFile(job)
		if err != nil {
			sum.Failed++
			res.Error = err.Error()
			r.Logger.Error("Error processing file", "file", job.SourcePath, "error", err)
			fmt.Fprintf(r.Out, "Error processing file %s: %v\n", job.SourcePath, err)
		} else {
			sum.Processed++
			r.Logger.Info(fmt.Sprintf("Processing file %d of %d", job.Index, job.Total),
				"source", job.SourcePath,
				"destination", job.DestinationPath,
				"mode", res.Mode,
				"encoding", res.Encoding,
				"changed_lines", res.ChangedLines)
			fmt.Fprintf(r.Out, "Processing file %d of %d: %s -> %s\n",
				job.Index, job.Total, job.SourcePath, job.DestinationPath)
		}
		if r.Report != nil {
			r.Report.Add(res)
		}
	}

	if plan.IsDir {
		r.Logger.Info(fmt.Sprintf("Processed %d files across %d folders.", len(plan.Jobs), plan.Folders),
			"failed", sum.Failed)
		fmt.Fprintf(r.Out, "Processed %d files across %d folders.\n", len(plan.Jobs), plan.Folders)
	}
	return sum
}

// ProcessFile reads one source file, obfuscates it and writes the
// destination, creating its directory if needed.
func (r *Runner) ProcessFile(job models.FileJob) (models.FileResult, error) {
	res := models.FileResult{Source: job.SourcePath, Destination: job.DestinationPath}

	data, err := os.ReadFile(job.SourcePath)
	if err != nil {
		return res, fmt.Errorf("read: %w", err)
	}

	out, tr := r.Obfuscator.Transform(data, job.SourcePath)
	res.Mode = string(tr.Mode)
	res.Encoding = tr.Encoding
	res.Lines = tr.Lines
	res.ChangedLines = tr.ChangedLines
	res.BinaryBytes = tr.BodyBytes
	if len(tr.ByKind) > 0 {
		res.ByKind = make(map[string]int, len(tr.ByKind))
		for k, n := range tr.ByKind {
			res.ByKind[string(k)] = n
		}
	}

	if err := os.MkdirAll(filepath.Dir(job.DestinationPath), 0755); err != nil {
		return res, fmt.Errorf("create output folder: %w", err)
	}
	if err := os.WriteFile(job.DestinationPath, out, 0644); err != nil {
		return res, fmt.Errorf("write: %w", err)
	}
	return res, nil
}
