// Package report collects per-file counts for a run and writes them as a
// JSON summary next to the run log.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"obfuscate-logs/internal/models"
	"obfuscate-logs/internal/session"
)

// FilePrefix starts the name of every summary file.
const FilePrefix = "__obfuscation_summary_"

type Report struct {
	Path string `json:"-"`

	RunID        string              `json:"run_id"`
	Started      time.Time           `json:"started"`
	Finished     time.Time           `json:"finished"`
	Processed    int                 `json:"processed"`
	Failed       int                 `json:"failed"`
	ChangedLines int                 `json:"changed_lines"`
	Files        []models.FileResult `json:"files"`
}

// New returns an empty report that will be saved in outputDir.
func New(outputDir, runID string, started time.Time) *Report {
	return &Report{
		Path:    filepath.Join(outputDir, FilePrefix+started.Format(session.TimestampLayout)+".json"),
		RunID:   runID,
		Started: started,
		Files:   []models.FileResult{},
	}
}

func (r *Report) Add(res models.FileResult) {
	r.Files = append(r.Files, res)
	if res.Error != "" {
		r.Failed++
		return
	}
	r.Processed++
	r.ChangedLines += res.ChangedLines
}

func (r *Report) Save() error {
	if r.Finished.IsZero() {
		r.Finished = time.Now()
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.Path, data, 0644)
}
