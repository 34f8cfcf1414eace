package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Adhikram/ChartIQ-sub000/models"
	"github.com/Adhikram/ChartIQ-sub000/repository"
)

// TurnService drives one full analysis turn: tentative user write,
// chart capture, streamed analysis, then either confirmation (persist
// the assistant message) or compensation (delete the user message). The
// per-turn state machine is
// idle -> userMessageSaved -> streaming -> {completed&saved | failed&compensated}.
type TurnService interface {
	// RunAnalysisTurn streams the analysis of the given charts to sink.
	// When chartURLs is empty, charts are captured first for the
	// configured intervals.
	RunAnalysisTurn(ctx context.Context, symbol, userID string, chartURLs []string, sink EventSink) error
}

type turnService struct {
	messages repository.MessageRepository
	analyses repository.AnalysisRepository
	capture  CaptureService
	analyzer ChartAnalyzer
}

func NewTurnService(
	messages repository.MessageRepository,
	analyses repository.AnalysisRepository,
	capture CaptureService,
	analyzer ChartAnalyzer,
) TurnService {
	return &turnService{
		messages: messages,
		analyses: analyses,
		capture:  capture,
		analyzer: analyzer,
	}
}

func (s *turnService) RunAnalysisTurn(ctx context.Context, symbol, userID string, chartURLs []string, sink EventSink) error {
	// Tentative write. Losing it is non-fatal: the turn continues with a
	// degraded history and no compensation target.
	userMsg := &models.Message{
		UserID:  userID,
		Content: fmt.Sprintf("Analyze %s", strings.ToUpper(symbol)),
		Role:    models.RoleUser,
	}
	if err := s.messages.Create(userMsg); err != nil {
		log.Printf("WARN: [Turn] Failed to save user message for %s: %v", userID, err)
		userMsg = nil
	}

	analysis, err := s.analyses.Create(symbol, userID)
	if err != nil {
		log.Printf("WARN: [Turn] Failed to create analysis row for %s: %v", symbol, err)
	}

	if len(chartURLs) == 0 {
		results, captureErr := s.capture.CaptureAll(ctx, symbol, nil)
		for _, res := range results {
			if analysis != nil {
				errMsg := ""
				if res.Err != nil {
					errMsg = res.Err.Error()
				}
				if addErr := s.analyses.AddChartImage(analysis.ID, res.Interval, res.Path, errMsg); addErr != nil {
					log.Printf("WARN: [Turn] Failed to record chart image row: %v", addErr)
				}
			}
			if res.Err == nil {
				chartURLs = append(chartURLs, res.Path)
			}
		}
		if captureErr != nil {
			s.fail(analysis, userMsg, captureErr)
			if sendErr := sink.Send(ErrorEvent(captureErr.Error())); sendErr != nil {
				log.Printf("WARN: [Turn] Failed to relay capture error: %v", sendErr)
			}
			return captureErr
		}
	} else if analysis != nil {
		for _, chartURL := range chartURLs {
			if addErr := s.analyses.AddChartImage(analysis.ID, intervalFromChartPath(chartURL), chartURL, ""); addErr != nil {
				log.Printf("WARN: [Turn] Failed to record chart image row: %v", addErr)
			}
		}
	}

	s.setStatus(analysis, models.StatusAnalyzing, "")

	text, err := s.analyzer.AnalyzeCharts(ctx, chartURLs, symbol, userID, sink)
	if err != nil {
		s.fail(analysis, userMsg, err)
		return err
	}
	if strings.TrimSpace(text) == "" {
		err := fmt.Errorf("analysis stream produced no content")
		s.fail(analysis, userMsg, err)
		return err
	}

	// Confirm: the stored text is the raw accumulated stream, without
	// any display post-processing.
	assistantMsg := &models.Message{
		UserID:  userID,
		Content: text,
		Role:    models.RoleAssistant,
	}
	if saveErr := s.messages.Create(assistantMsg); saveErr != nil {
		log.Printf("WARN: [Turn] Failed to persist assistant message for %s: %v", userID, saveErr)
	}
	s.setStatus(analysis, models.StatusCompleted, "")
	return nil
}

// fail marks the analysis FAILED and compensates the tentative user
// write so the stored history never shows a user turn with no reply.
func (s *turnService) fail(analysis *models.Analysis, userMsg *models.Message, cause error) {
	s.setStatus(analysis, models.StatusFailed, cause.Error())
	if userMsg == nil || userMsg.ID == 0 {
		return
	}
	if err := s.messages.Delete(userMsg.ID); err != nil {
		log.Printf("WARN: [Turn] Compensating delete of message %d failed: %v", userMsg.ID, err)
	} else {
		log.Printf("INFO: [Turn] Compensated user message %d after failure: %v", userMsg.ID, cause)
	}
}

func (s *turnService) setStatus(analysis *models.Analysis, status models.AnalysisStatus, errMsg string) {
	if analysis == nil {
		return
	}
	if err := s.analyses.SetStatus(analysis.ID, status, errMsg); err != nil {
		log.Printf("WARN: [Turn] Failed to set analysis %d status to %s: %v", analysis.ID, status, err)
	}
}
