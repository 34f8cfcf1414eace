package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/Adhikram/ChartIQ-sub000/config"
)

// chartReadyExpr polls for chart markup being present and the loading
// indicator being gone. The selectors match the widget classes on the
// pre-rendered chart page.
const chartReadyExpr = `document.querySelector('.chart-markup-table, .chart-container, canvas[data-name="chart"]') !== null &&
	document.querySelector('.loading-indicator, .tv-spinner, .chart-loading') === null`

var symbolSanitizer = regexp.MustCompile(`[^A-Za-z0-9:_-]`)

// ChartResult is the outcome of capturing one timeframe.
type ChartResult struct {
	Interval string
	Path     string // public URL path, empty on failure
	Err      error
}

// CaptureService produces chart screenshots by driving a headless
// browser to the pre-rendered chart page.
type CaptureService interface {
	// Capture screenshots one timeframe and returns the public URL path
	// of the written file.
	Capture(ctx context.Context, symbol, interval string) (string, error)
	// CaptureAll captures every interval sequentially. Individual
	// failures are recorded per result; the error is non-nil only when
	// every interval failed.
	CaptureAll(ctx context.Context, symbol string, intervals []string) ([]ChartResult, error)
}

type captureService struct {
	cfg config.CaptureConfig
	sem chan struct{} // caps concurrent browser processes
}

// NewCaptureService creates a capture service. Each Capture call runs in
// an isolated browser context; the semaphore keeps load from forking an
// unbounded number of Chrome processes.
func NewCaptureService(cfg config.CaptureConfig) CaptureService {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}
	return &captureService{
		cfg: cfg,
		sem: make(chan struct{}, maxConcurrent),
	}
}

func (s *captureService) Capture(ctx context.Context, symbol, interval string) (string, error) {
	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(1920, 1080),
		chromedp.Flag("hide-scrollbars", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	chartURL := s.chartURL(symbol, interval)
	log.Printf("INFO: [Capture] Capturing %s %s from %s", symbol, interval, chartURL)

	var buf []byte
	err := chromedp.Run(browserCtx, chromedp.Tasks{
		s.navigate(chartURL),
		chromedp.ActionFunc(s.waitForChart),
		chromedp.FullScreenshot(&buf, 90),
	})
	if err != nil {
		return "", fmt.Errorf("chart capture for %s %s failed: %w", symbol, interval, err)
	}
	if len(buf) == 0 {
		return "", fmt.Errorf("chart capture for %s %s produced an empty screenshot", symbol, interval)
	}

	filename := screenshotFilename(symbol, interval)
	if err := os.MkdirAll(s.cfg.ScreenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	filePath := filepath.Join(s.cfg.ScreenshotDir, filename)
	if err := os.WriteFile(filePath, buf, 0o644); err != nil {
		return "", fmt.Errorf("failed to write screenshot %s: %w", filePath, err)
	}

	publicPath := path.Join(s.cfg.PublicPrefix, filename)
	log.Printf("INFO: [Capture] Wrote %s (%d bytes)", filePath, len(buf))
	return publicPath, nil
}

func (s *captureService) CaptureAll(ctx context.Context, symbol string, intervals []string) ([]ChartResult, error) {
	if len(intervals) == 0 {
		intervals = s.cfg.Intervals
	}
	results := make([]ChartResult, 0, len(intervals))
	failed := 0
	for _, interval := range intervals {
		p, err := s.Capture(ctx, symbol, interval)
		if err != nil {
			log.Printf("ERROR: [Capture] %s %s: %v", symbol, interval, err)
			failed++
		}
		results = append(results, ChartResult{Interval: interval, Path: p, Err: err})
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
	}
	if failed == len(intervals) {
		return results, errors.New("all chart captures failed")
	}
	return results, nil
}

// navigate bounds the page load with the configured timeout. A timeout
// is logged and swallowed: the chart widget often keeps a socket open
// past load, and the screenshot is still worth attempting.
func (s *captureService) navigate(chartURL string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		navCtx, cancel := context.WithTimeout(ctx, s.cfg.NavigationTimeout)
		defer cancel()
		if err := chromedp.Navigate(chartURL).Do(navCtx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("WARN: [Capture] Navigation to %s did not settle: %v", chartURL, err)
		}
		return nil
	})
}

// waitForChart polls the DOM until the chart widget looks rendered. If
// the ceiling is reached it substitutes a fixed extra delay instead of
// failing the capture.
func (s *captureService) waitForChart(ctx context.Context) error {
	deadline := time.Now().Add(s.cfg.PollCeiling)
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		var ready bool
		if err := chromedp.Evaluate(chartReadyExpr, &ready).Do(ctx); err != nil {
			log.Printf("WARN: [Capture] Chart readiness probe failed: %v", err)
		} else if ready {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	log.Printf("WARN: [Capture] Chart readiness poll exceeded %s, waiting a further %s before screenshot",
		s.cfg.PollCeiling, s.cfg.FallbackDelay)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.cfg.FallbackDelay):
	}
	return nil
}

// screenshotFilename is unique per capture and safe to serve as a static
// asset regardless of what the symbol contains.
func screenshotFilename(symbol, interval string) string {
	return fmt.Sprintf("screenshot_%s_%s_%d.png",
		symbolSanitizer.ReplaceAllString(strings.ToUpper(symbol), "_"),
		interval,
		time.Now().UnixMilli(),
	)
}

// intervalFromChartPath recovers the interval that screenshotFilename
// encoded into a chart path. The sanitized symbol may itself contain
// underscores, so the name is parsed from the end: the interval sits
// between the symbol and the timestamp. Returns "" for paths that were
// not produced by screenshotFilename.
func intervalFromChartPath(chartPath string) string {
	name := path.Base(chartPath)
	if !strings.HasPrefix(name, "screenshot_") || !strings.HasSuffix(name, ".png") {
		return ""
	}
	parts := strings.Split(strings.TrimSuffix(name, ".png"), "_")
	if len(parts) < 4 {
		return ""
	}
	for _, r := range parts[len(parts)-1] {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return parts[len(parts)-2]
}

func (s *captureService) chartURL(symbol, interval string) string {
	q := url.Values{}
	q.Set("symbol", strings.ToUpper(symbol))
	q.Set("interval", interval)
	return s.cfg.ChartBaseURL + "?" + q.Encode()
}
