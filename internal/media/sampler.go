package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

const (
	DefaultFPS       = 1
	DefaultMaxFrames = 12
)

type SamplerConfig struct {
	FPS       int
	MaxFrames int
}

// Sampler fetches a validated public video URL and extracts a bounded frame
// set. It never fails the request: every error degrades to an empty result
// with a logged warning, so a broken video cannot block a text/image
// diagnosis.
type Sampler struct {
	cfg       SamplerConfig
	extractor FrameExtractor
	httpc     *http.Client
}

func NewSampler(cfg SamplerConfig, extractor FrameExtractor) *Sampler {
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.MaxFrames <= 0 {
		cfg.MaxFrames = DefaultMaxFrames
	}
	return &Sampler{
		cfg:       cfg,
		extractor: extractor,
		httpc:     &http.Client{Timeout: 60 * time.Second},
	}
}

// WithHTTPClient overrides the fetch client (e.g., for a test server).
func (s *Sampler) WithHTTPClient(c *http.Client) *Sampler {
	if c != nil {
		s.httpc = c
	}
	return s
}

func (s *Sampler) Sample(ctx context.Context, videoURL string) []Frame {
	path, err := s.fetchVideo(ctx, videoURL)
	if err != nil {
		log.Printf("frame sampler: video fetch failed, continuing without frames: %v", err)
		return nil
	}
	defer os.Remove(path)

	frames, err := s.extractor.ExtractFrames(ctx, path, s.cfg.FPS, s.cfg.MaxFrames)
	if err != nil {
		log.Printf("frame sampler: extraction failed, continuing without frames: %v", err)
		return nil
	}
	return frames
}

// fetchVideo downloads the video into a uniquely named temp file. The caller
// removes it.
func (s *Sampler) fetchVideo(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("video fetch %d: %s", resp.StatusCode, url)
	}

	f, err := os.CreateTemp("", "diagnose_video_*.mp4")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
