package logging

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogFilePath(t *testing.T) {
	runStart := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	tests := []struct {
		name    string
		logsDir string
		command string
		want    string
	}{
		{
			name:    "basic path",
			logsDir: "logs",
			command: "upcoming",
			want:    filepath.Join("logs", "arbitrations.upcoming.20260212_213836.log"),
		},
		{
			name:    "relative path with dot",
			logsDir: "./logs",
			command: "next",
			want:    filepath.Join(".", "logs", "arbitrations.next.20260212_213836.log"),
		},
		{
			name:    "absolute path",
			logsDir: filepath.Join("/var", "log", "arby"),
			command: "next-tier",
			want:    filepath.Join("/var", "log", "arby", "arbitrations.next-tier.20260212_213836.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LogFilePath(tt.logsDir, tt.command, runStart))
		})
	}
}

func TestLogFilePath_UsesUTC(t *testing.T) {
	runStart := time.Date(2026, 2, 12, 23, 0, 0, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, filepath.Join("logs", "arbitrations.next.20260212_220000.log"), LogFilePath("logs", "next", runStart))
}
