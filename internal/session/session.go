package session

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// LogFilePrefix starts the name of every run log.
const LogFilePrefix = "__obfuscation_log_"

// TimestampLayout is used in run log and summary file names.
const TimestampLayout = "20060102_150405"

// Session is one invocation of the tool. Its ID tags every log record and
// nothing about it outlives the process except the log file.
type Session struct {
	RunID   string
	Started time.Time
	LogPath string
	Logger  *slog.Logger

	file *os.File
}

// Start opens a fresh log file in outputDir, which must exist.
func Start(outputDir string) (*Session, error) {
	started := time.Now()
	logPath := filepath.Join(outputDir, LogFilePrefix+started.Format(TimestampLayout)+".log")

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	id := uuid.New().String()
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo})).
		With("run_id", id)
	logger.Info("Log file initialized.")

	return &Session{
		RunID:   id,
		Started: started,
		LogPath: logPath,
		Logger:  logger,
		file:    f,
	}, nil
}

func (s *Session) Close() error {
	return s.file.Close()
}
