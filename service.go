package appack

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/catforgor/appack/internal/fileutil"
)

// Service orchestrates the auto-doc pipeline: template expansion, theme
// resolution, the sandboxed run, screenshot rendering, and document
// composition. Each stage is pure given its inputs except the sandbox.
type Service struct {
	sandbox   *Sandbox
	renderer  *Renderer
	composer  *Composer
	themesDir string
}

// Option configures a Service.
type Option func(*Service)

// WithThemesDir sets the directory searched for user theme files.
func WithThemesDir(dir string) Option {
	return func(s *Service) { s.themesDir = dir }
}

// WithTimeout overrides the run timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("appack: WithTimeout duration must be positive")
	}
	return func(s *Service) { s.sandbox.timeout = d }
}

// New creates a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sandbox:  NewSandbox(),
		renderer: NewRenderer(),
		composer: NewComposer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DocumentResult carries the composed document plus the intermediate
// artifacts for caller-side reporting.
type DocumentResult struct {
	Doc   []byte
	Run   *RunResult
	Image *RenderedImage
}

// Document runs the full auto-doc pipeline for cfg. The theme resolves
// before anything executes, so a bad theme fails fast without running
// student code or painting a partial image. A timed-out run still
// produces a document; its transcript carries the timeout banner.
func (s *Service) Document(ctx context.Context, cfg *Config) (*DocumentResult, error) {
	display, err := ExpandDisplay(cfg.RunDisplayTemplate, cfg)
	if err != nil {
		return nil, err
	}

	theme, err := ResolveTheme(cfg.Theme, s.themesDir)
	if err != nil {
		return nil, err
	}

	run, err := s.sandbox.Capture(ctx, cfg.CFile, cfg.RunCommand)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	transcript := run.Transcript()
	img, err := s.renderer.Render(display, transcript, theme)
	if err != nil {
		return nil, fmt.Errorf("rendering screenshot: %w", err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	code, err := fileutil.ReadText(cfg.CFile)
	if err != nil {
		return nil, err
	}

	doc, err := s.composer.Compose(&DocumentInput{
		Assignment: cfg.Assignment,
		Name:       cfg.Name,
		StudentID:  cfg.StudentID,
		CFileName:  filepath.Base(cfg.CFile),
		Code:       code,
		Display:    display,
		Transcript: transcript,
		Image:      img,
		Watermark:  cfg.Watermark,
	})
	if err != nil {
		return nil, fmt.Errorf("composing document: %w", err)
	}

	return &DocumentResult{Doc: doc, Run: run, Image: img}, nil
}
