package logging

import (
	"fmt"
	"path/filepath"
	"time"
)

// LogFilePath builds the path of a run's log file.
func LogFilePath(logsDir, command string, runStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.%s.log", ServiceName, command, runStart.UTC().Format("20060102_150405")),
	)
}
