package models

import (
	"time"
)

// AnalysisStatus is the forward-only state machine of an analysis run:
// GENERATING_CHARTS -> ANALYZING -> COMPLETED, with FAILED reachable from
// either working state. There are no retries and no rollback.
type AnalysisStatus string

const (
	StatusGeneratingCharts AnalysisStatus = "GENERATING_CHARTS"
	StatusAnalyzing        AnalysisStatus = "ANALYZING"
	StatusCompleted        AnalysisStatus = "COMPLETED"
	StatusFailed           AnalysisStatus = "FAILED"
)

// CanTransition reports whether moving from one status to the next is a
// legal forward transition.
func CanTransition(from, to AnalysisStatus) bool {
	switch from {
	case StatusGeneratingCharts:
		return to == StatusAnalyzing || to == StatusFailed
	case StatusAnalyzing:
		return to == StatusCompleted || to == StatusFailed
	}
	return false
}

// Analysis is one chart-analysis run for a user. The status is advisory:
// multi-step writes around it are not transactional, and a crash can
// leave a run parked in a working state.
type Analysis struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Symbol      string         `json:"symbol" gorm:"not null;index"`
	UserID      string         `json:"userId" gorm:"not null;index"`
	Status      AnalysisStatus `json:"status" gorm:"not null"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	ChartImages []ChartImage   `json:"chartImages" gorm:"foreignKey:AnalysisID"`
}

// ChartImage records one captured screenshot (or the failure to capture
// it) for a timeframe. The file itself lives under the screenshots
// directory; there is no foreign-key-enforced cleanup, so orphaned files
// are possible after failures.
type ChartImage struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	AnalysisID uint   `json:"analysisId" gorm:"index;not null"`
	Interval   string `json:"interval" gorm:"not null"`
	ImagePath  string `json:"imagePath"`
	Error      string `json:"error,omitempty"`
}
