package services

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adhikram/ChartIQ-sub000/config"
)

var screenshotNameRe = regexp.MustCompile(`^screenshot_[A-Z0-9:_-]+_[A-Za-z0-9]+_\d+\.png$`)

func TestScreenshotFilename(t *testing.T) {
	tests := []struct {
		symbol string
		want   string // expected sanitized symbol portion
	}{
		{"AAPL", "AAPL"},
		{"aapl", "AAPL"},
		{"NASDAQ:AAPL", "NASDAQ:AAPL"},
		{"BRK.B", "BRK_B"},
		{"../etc/passwd", "___ETC_PASSWD"},
	}
	for _, tt := range tests {
		name := screenshotFilename(tt.symbol, "1hr")
		assert.Truef(t, screenshotNameRe.MatchString(name), "unsafe filename %q for symbol %q", name, tt.symbol)
		assert.Truef(t, strings.HasPrefix(name, "screenshot_"+tt.want+"_1hr_"),
			"filename %q does not carry sanitized symbol %q", name, tt.want)
		assert.NotContains(t, name, "/")
	}
}

func TestIntervalFromChartPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/screenshots/screenshot_AAPL_1hr_1756700000000.png", "1hr"},
		{"/screenshots/screenshot_NASDAQ:AAPL_4hr_1756700000000.png", "4hr"},
		{"screenshot_BRK_B_1d_1756700000000.png", "1d"},
		{"/screenshots/a.png", ""},
		{"/screenshots/screenshot_AAPL.png", ""},
		{"/screenshots/screenshot_AAPL_1hr_notatimestamp.png", ""},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, intervalFromChartPath(tt.path), "path %q", tt.path)
	}
}

func TestChartURL(t *testing.T) {
	svc := &captureService{cfg: config.CaptureConfig{ChartBaseURL: "http://localhost:3000/chart"}}

	u := svc.chartURL("tsla", "4hr")
	require.Contains(t, u, "http://localhost:3000/chart?")
	assert.Contains(t, u, "symbol=TSLA")
	assert.Contains(t, u, "interval=4hr")
}
