package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adhikram/ChartIQ-sub000/models"
)

func TestAnalysisRepository_StatusMachine(t *testing.T) {
	repo := NewAnalysisRepository(newTestDB(t))

	analysis, err := repo.Create("AAPL", "u1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusGeneratingCharts, analysis.Status)

	require.NoError(t, repo.SetStatus(analysis.ID, models.StatusAnalyzing, ""))
	require.NoError(t, repo.SetStatus(analysis.ID, models.StatusCompleted, ""))

	// Terminal states reject further transitions.
	assert.Error(t, repo.SetStatus(analysis.ID, models.StatusAnalyzing, ""))
	assert.Error(t, repo.SetStatus(analysis.ID, models.StatusFailed, "late failure"))
}

func TestAnalysisRepository_FailureRecordsError(t *testing.T) {
	repo := NewAnalysisRepository(newTestDB(t))

	analysis, err := repo.Create("TSLA", "u1")
	require.NoError(t, err)
	require.NoError(t, repo.SetStatus(analysis.ID, models.StatusFailed, "browser launch failed"))

	recent, err := repo.RecentByUser("u1", 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, models.StatusFailed, recent[0].Status)
	assert.Equal(t, "browser launch failed", recent[0].Error)
}

func TestAnalysisRepository_RecentByUserPreloadsCharts(t *testing.T) {
	repo := NewAnalysisRepository(newTestDB(t))

	for _, symbol := range []string{"AAPL", "TSLA", "NVDA"} {
		analysis, err := repo.Create(symbol, "u1")
		require.NoError(t, err)
		require.NoError(t, repo.AddChartImage(analysis.ID, "1d", "/screenshots/screenshot_"+symbol+"_1d_1.png", ""))
		require.NoError(t, repo.AddChartImage(analysis.ID, "4hr", "", "navigation timeout"))
	}

	recent, err := repo.RecentByUser("u1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "NVDA", recent[0].Symbol, "newest first")
	require.Len(t, recent[0].ChartImages, 2)
	assert.Equal(t, "navigation timeout", recent[0].ChartImages[1].Error)
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.AnalysisStatus
		ok       bool
	}{
		{models.StatusGeneratingCharts, models.StatusAnalyzing, true},
		{models.StatusGeneratingCharts, models.StatusFailed, true},
		{models.StatusGeneratingCharts, models.StatusCompleted, false},
		{models.StatusAnalyzing, models.StatusCompleted, true},
		{models.StatusAnalyzing, models.StatusFailed, true},
		{models.StatusAnalyzing, models.StatusGeneratingCharts, false},
		{models.StatusCompleted, models.StatusFailed, false},
		{models.StatusFailed, models.StatusAnalyzing, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, models.CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
