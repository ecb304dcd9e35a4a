package media

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"citypulse/types"
)

// RemoveFile deletes a temp file, logging instead of failing: cleanup must
// never break a request that already produced a result.
func RemoveFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to delete temp file", "path", path, "error", err)
	}
}

// CleanupFrames removes extracted still frames and their directory. Image
// and video frames point at the uploaded file itself and are left alone.
func CleanupFrames(frames []types.Frame) {
	var dir string
	for _, frame := range frames {
		if frame.Kind != types.FrameStill {
			continue
		}
		RemoveFile(frame.Path)
		dir = filepath.Dir(frame.Path)
	}
	if dir != "" {
		if err := os.Remove(dir); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove frame directory", "dir", dir, "error", err)
		}
	}
}

// SweepFrameDirs removes leftover frame directories older than maxAge.
// Run on a schedule to catch directories orphaned by crashed requests.
func SweepFrameDirs(maxAge time.Duration) int {
	entries, err := os.ReadDir(os.TempDir())
	if err != nil {
		return 0
	}
	removed := 0
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), frameDirPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		dir := filepath.Join(os.TempDir(), entry.Name())
		if err := os.RemoveAll(dir); err != nil {
			slog.Warn("failed to sweep frame directory", "dir", dir, "error", err)
			continue
		}
		removed++
	}
	return removed
}
