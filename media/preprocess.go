// Package media turns an uploaded file into the frames the analysis stages
// consume.
package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"citypulse/types"
)

// ErrUnsupportedMedia is the one fatal error class of preprocessing:
// the caller sent something that is neither an image nor a video.
var ErrUnsupportedMedia = errors.New("unsupported media type")

const frameDirPrefix = "frames-"

// Preprocess returns the frames for a media file. Images pass through as a
// single frame. Videos get keyframes extracted with ffmpeg; if extraction
// fails for any reason the original video is returned as a single frame so
// the pipeline can still degrade gracefully.
func Preprocess(ctx context.Context, path, mimeType string) ([]types.Frame, error) {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return []types.Frame{{Kind: types.FrameImage, Path: path, Name: filepath.Base(path)}}, nil
	case strings.HasPrefix(mimeType, "video/"):
		return extractVideoFrames(ctx, path), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mimeType)
	}
}

// extractVideoFrames pulls three keyframes. Never returns an error: a failed
// or empty extraction degrades to the video itself as one frame.
func extractVideoFrames(ctx context.Context, videoPath string) []types.Frame {
	outputDir := filepath.Join(os.TempDir(), fmt.Sprintf("%s%d", frameDirPrefix, time.Now().UnixNano()))
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		slog.Warn("could not create frame directory, treating video as single frame", "error", err)
		return videoFallback(videoPath)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-i", videoPath,
		"-vf", `select=eq(n\,0)+eq(n\,30)+eq(n\,60)`,
		"-vsync", "vfr",
		filepath.Join(outputDir, "frame_%02d.jpg"),
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		slog.Warn("ffmpeg failed, treating video as single frame", "error", err, "output", truncate(string(output), 500))
		return videoFallback(videoPath)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil || len(entries) == 0 {
		slog.Warn("no frames extracted, treating video as single frame", "error", err)
		return videoFallback(videoPath)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	frames := make([]types.Frame, 0, len(names))
	for _, name := range names {
		frames = append(frames, types.Frame{
			Kind: types.FrameStill,
			Path: filepath.Join(outputDir, name),
			Name: name,
		})
	}
	return frames
}

func videoFallback(videoPath string) []types.Frame {
	return []types.Frame{{Kind: types.FrameVideo, Path: videoPath, Name: filepath.Base(videoPath)}}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
