package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"citypulse/types"
)

func TestPreprocess_ImagePassesThrough(t *testing.T) {
	frames, err := Preprocess(context.Background(), "/tmp/upload-abc.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if frames[0].Kind != types.FrameImage {
		t.Errorf("Kind = %s, want image", frames[0].Kind)
	}
	if frames[0].Name != "upload-abc.jpg" {
		t.Errorf("Name = %s, want upload-abc.jpg", frames[0].Name)
	}
}

func TestPreprocess_UnsupportedMime(t *testing.T) {
	_, err := Preprocess(context.Background(), "/tmp/doc.pdf", "application/pdf")
	if !errors.Is(err, ErrUnsupportedMedia) {
		t.Errorf("err = %v, want ErrUnsupportedMedia", err)
	}
}

func TestPreprocess_BrokenVideoDegradesToSingleFrame(t *testing.T) {
	// Not a real video; ffmpeg (if even installed) will fail, and the
	// contract is to degrade, never to error.
	path := filepath.Join(t.TempDir(), "broken.mp4")
	if err := os.WriteFile(path, []byte("not a video"), 0o644); err != nil {
		t.Fatal(err)
	}
	frames, err := Preprocess(context.Background(), path, "video/mp4")
	if err != nil {
		t.Fatalf("Preprocess returned error for video: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if frames[0].Kind != types.FrameVideo {
		t.Errorf("Kind = %s, want video fallback", frames[0].Kind)
	}
}

func TestSweepFrameDirs(t *testing.T) {
	old := filepath.Join(os.TempDir(), frameDirPrefix+"test-old")
	if err := os.MkdirAll(old, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(old) })
	past := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	if removed := SweepFrameDirs(time.Hour); removed < 1 {
		t.Errorf("removed = %d, want at least 1", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old frame directory still present after sweep")
	}
}
