// Package analysis orchestrates a usability analysis end to end: capture the
// rendered page, extract HTML and visual features, score, persist, and write
// the markdown snapshot.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pagelens/pagelens/capture"
	"github.com/pagelens/pagelens/extract"
	"github.com/pagelens/pagelens/idgen"
	"github.com/pagelens/pagelens/score"
	"github.com/pagelens/pagelens/store"
	"github.com/pagelens/pagelens/vision"
)

// Capturer abstracts capture.Manager for testability.
type Capturer interface {
	Capture(ctx context.Context, pageURL string, device capture.Device) (*capture.Result, error)
}

// Config configures the analysis service.
type Config struct {
	// ScreenshotDir is where captured PNGs are kept. Empty disables saving.
	ScreenshotDir string

	// SnapshotDir is where markdown snapshots are kept. Empty disables them.
	SnapshotDir string

	// RecentLimit caps list queries. Default: 20.
	RecentLimit int
}

func (c *Config) defaults() {
	if c.RecentLimit <= 0 {
		c.RecentLimit = 20
	}
}

// Service runs analyses.
type Service struct {
	capturer  Capturer
	store     *store.Store
	snapshots *SnapshotWriter
	logger    *slog.Logger
	cfg       *Config
	newID     func() string
	now       func() time.Time
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithIDGenerator replaces the default UUIDv7 generator.
func WithIDGenerator(gen idgen.Generator) ServiceOption {
	return func(s *Service) { s.newID = func() string { return gen() } }
}

// WithClock replaces time.Now, pinning CreatedAt in tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// New creates an analysis Service.
func New(capturer Capturer, st *store.Store, cfg *Config, logger *slog.Logger, opts ...ServiceOption) *Service {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}

	svc := &Service{
		capturer: capturer,
		store:    st,
		logger:   logger,
		cfg:      cfg,
		newID:    idgen.New,
		now:      time.Now,
	}
	if cfg.SnapshotDir != "" {
		svc.snapshots = NewSnapshotWriter(cfg.SnapshotDir)
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Analysis is one completed analysis with its full report.
type Analysis struct {
	ID             string        `json:"id"`
	URL            string        `json:"url"`
	DeviceType     string        `json:"device_type"`
	Title          string        `json:"title,omitempty"`
	Report         *score.Report `json:"report"`
	ScreenshotPath string        `json:"screenshot_path,omitempty"`
	SnapshotPath   string        `json:"snapshot_path,omitempty"`
	DurationMs     int64         `json:"duration_ms"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Analyze captures pageURL on the given device, scores it and persists the
// result. Validation failures wrap ErrInvalidInput; capture failures wrap
// ErrCaptureFailed.
func (s *Service) Analyze(ctx context.Context, pageURL, device string) (*Analysis, error) {
	dev, err := validateInput(pageURL, device)
	if err != nil {
		return nil, err
	}

	start := s.now()
	log := s.logger.With("url", pageURL, "device", string(dev))

	captured, err := s.capturer.Capture(ctx, pageURL, dev)
	if err != nil {
		log.Error("capture failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}

	htmlFeatures := extract.Analyze(captured.HTML, pageURL)
	imageFeatures := vision.Analyze(captured.Screenshot)
	report := score.EvaluateAll(score.NewFeatureMap(htmlFeatures, imageFeatures))

	id := s.newID()
	a := &Analysis{
		ID:         id,
		URL:        pageURL,
		DeviceType: string(dev),
		Title:      captured.Title,
		Report:     report,
		DurationMs: s.now().Sub(start).Milliseconds(),
		CreatedAt:  start.UTC(),
	}

	if s.cfg.ScreenshotDir != "" {
		path, err := s.saveScreenshot(id, string(dev), captured.Screenshot)
		if err != nil {
			log.Warn("screenshot not saved", "error", err)
		} else {
			a.ScreenshotPath = path
		}
	}

	if s.snapshots != nil {
		path, err := s.snapshots.Write(ctx, SnapshotMeta{
			ID:         id,
			URL:        pageURL,
			DeviceType: string(dev),
			Title:      captured.Title,
			TotalScore: report.TotalScore,
			CreatedAt:  a.CreatedAt,
		}, captured.HTML)
		if err != nil {
			log.Warn("snapshot not written", "error", err)
		} else {
			a.SnapshotPath = path
		}
	}

	if err := s.persist(ctx, a); err != nil {
		return nil, err
	}

	log.Info("analysis complete", "id", id,
		"total_score", report.TotalScore, "duration_ms", a.DurationMs)
	return a, nil
}

// Get loads a persisted analysis by ID. Unknown IDs wrap store.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Analysis, error) {
	row, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var report score.Report
	if err := json.Unmarshal([]byte(row.ReportJSON), &report); err != nil {
		return nil, fmt.Errorf("analysis: decode report %s: %w", id, err)
	}

	return &Analysis{
		ID:             row.ID,
		URL:            row.URL,
		DeviceType:     row.DeviceType,
		Title:          row.Title,
		Report:         &report,
		ScreenshotPath: row.ScreenshotPath,
		SnapshotPath:   row.SnapshotPath,
		DurationMs:     row.DurationMs,
		CreatedAt:      time.UnixMilli(row.CreatedAt).UTC(),
	}, nil
}

// SummaryResponse pairs the digest with the analysis it came from.
type SummaryResponse struct {
	ID         string         `json:"id"`
	URL        string         `json:"url"`
	DeviceType string         `json:"device_type"`
	Summary    *score.Summary `json:"summary"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Summary loads a persisted analysis and digests its report.
func (s *Service) Summary(ctx context.Context, id string) (*SummaryResponse, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &SummaryResponse{
		ID:         a.ID,
		URL:        a.URL,
		DeviceType: a.DeviceType,
		Summary:    score.Summarize(a.Report),
		CreatedAt:  a.CreatedAt,
	}, nil
}

// Recent lists the latest analyses, newest first, without the full reports.
func (s *Service) Recent(ctx context.Context, limit int) ([]*store.Analysis, error) {
	if limit <= 0 || limit > s.cfg.RecentLimit {
		limit = s.cfg.RecentLimit
	}
	return s.store.Recent(ctx, limit)
}

func (s *Service) persist(ctx context.Context, a *Analysis) error {
	reportJSON, err := json.Marshal(a.Report)
	if err != nil {
		return fmt.Errorf("analysis: encode report: %w", err)
	}
	return s.store.Insert(ctx, &store.Analysis{
		ID:             a.ID,
		URL:            a.URL,
		DeviceType:     a.DeviceType,
		Title:          a.Title,
		TotalScore:     a.Report.TotalScore,
		ReportJSON:     string(reportJSON),
		ScreenshotPath: a.ScreenshotPath,
		SnapshotPath:   a.SnapshotPath,
		DurationMs:     a.DurationMs,
		CreatedAt:      a.CreatedAt.UnixMilli(),
	})
}

func (s *Service) saveScreenshot(id, device string, data []byte) (string, error) {
	if err := os.MkdirAll(s.cfg.ScreenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("analysis: mkdir %s: %w", s.cfg.ScreenshotDir, err)
	}
	path := filepath.Join(s.cfg.ScreenshotDir, id+"_"+device+".png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("analysis: write screenshot: %w", err)
	}
	return path, nil
}
