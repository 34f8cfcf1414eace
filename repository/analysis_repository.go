package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Adhikram/ChartIQ-sub000/models"
)

// AnalysisRepository persists analysis runs and their chart images.
type AnalysisRepository interface {
	Create(symbol, userID string) (*models.Analysis, error)
	// SetStatus advances the run's status. Backward transitions are
	// rejected; errMsg is recorded when the target status is FAILED.
	SetStatus(id uint, status models.AnalysisStatus, errMsg string) error
	AddChartImage(analysisID uint, interval, imagePath, errMsg string) error
	// RecentByUser returns the newest runs with chart images preloaded.
	RecentByUser(userID string, limit int) ([]models.Analysis, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(symbol, userID string) (*models.Analysis, error) {
	if symbol == "" || userID == "" {
		return nil, fmt.Errorf("analysis requires a symbol and a userId")
	}
	analysis := &models.Analysis{
		Symbol: symbol,
		UserID: userID,
		Status: models.StatusGeneratingCharts,
	}
	if err := r.db.Create(analysis).Error; err != nil {
		return nil, err
	}
	return analysis, nil
}

func (r *analysisRepository) SetStatus(id uint, status models.AnalysisStatus, errMsg string) error {
	var analysis models.Analysis
	if err := r.db.First(&analysis, id).Error; err != nil {
		return err
	}
	if !models.CanTransition(analysis.Status, status) {
		return fmt.Errorf("illegal analysis status transition %s -> %s", analysis.Status, status)
	}
	updates := map[string]any{"status": status}
	if status == models.StatusFailed && errMsg != "" {
		updates["error"] = errMsg
	}
	return r.db.Model(&analysis).Updates(updates).Error
}

func (r *analysisRepository) AddChartImage(analysisID uint, interval, imagePath, errMsg string) error {
	img := models.ChartImage{
		AnalysisID: analysisID,
		Interval:   interval,
		ImagePath:  imagePath,
		Error:      errMsg,
	}
	return r.db.Create(&img).Error
}

func (r *analysisRepository) RecentByUser(userID string, limit int) ([]models.Analysis, error) {
	if limit <= 0 {
		limit = 10
	}
	var analyses []models.Analysis
	err := r.db.
		Preload("ChartImages").
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, err
	}
	return analyses, nil
}
