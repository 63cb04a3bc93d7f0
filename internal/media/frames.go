package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// Frame is one still image sampled from a video, ready for a multimodal
// message.
type Frame struct {
	B64  string
	MIME string
}

// FrameExtractor turns a local video file into a bounded set of stills. The
// pipeline depends only on this interface so the ffmpeg subprocess can be
// swapped for an in-process decoder.
type FrameExtractor interface {
	ExtractFrames(ctx context.Context, inputPath string, fps, maxFrames int) ([]Frame, error)
}

// FFmpegExtractor shells out to ffmpeg. The frame cap is passed to ffmpeg
// itself (-frames:v), so long videos are never fully decoded.
type FFmpegExtractor struct {
	Bin string
}

func NewFFmpegExtractor(bin string) *FFmpegExtractor {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &FFmpegExtractor{Bin: bin}
}

func (x *FFmpegExtractor) ExtractFrames(ctx context.Context, inputPath string, fps, maxFrames int) ([]Frame, error) {
	dir, err := os.MkdirTemp("", "diagnose_frames_*")
	if err != nil {
		return nil, fmt.Errorf("frames dir: %w", err)
	}
	defer os.RemoveAll(dir)

	pattern := filepath.Join(dir, "frame_%d.jpg")
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", inputPath,
		"-vf", "fps=" + strconv.Itoa(fps),
		"-frames:v", strconv.Itoa(maxFrames),
		pattern,
	}

	cmd := exec.CommandContext(ctx, x.Bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}

	return readFrameDir(dir)
}

// readFrameDir collects frame_1.jpg, frame_2.jpg, ... in order and stops at
// the first missing index. Gaps are not skipped; a video shorter than the
// cap simply yields fewer frames.
func readFrameDir(dir string) ([]Frame, error) {
	var frames []Frame
	for i := 1; ; i++ {
		b, err := os.ReadFile(filepath.Join(dir, "frame_"+strconv.Itoa(i)+".jpg"))
		if err != nil {
			break
		}
		frames = append(frames, Frame{
			B64:  base64.StdEncoding.EncodeToString(b),
			MIME: "image/jpeg",
		})
	}
	return frames, nil
}
