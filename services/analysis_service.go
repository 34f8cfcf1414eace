package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Adhikram/ChartIQ-sub000/config"
)

// ChartAnalyzer submits chart screenshots to the vision model and relays
// the streamed analysis to an EventSink.
type ChartAnalyzer interface {
	// AnalyzeCharts emits an images event, then content events in token
	// arrival order, then a terminal done or error event. It returns the
	// full accumulated analysis text. The context should be tied to the
	// client connection so a disconnect aborts the upstream call.
	AnalyzeCharts(ctx context.Context, chartURLs []string, symbol, userID string, sink EventSink) (string, error)
}

type analysisService struct {
	streamer      TokenStreamer
	model         string
	screenshotDir string
	publicPrefix  string
}

func NewAnalysisService(streamer TokenStreamer, llmCfg config.LLMConfig, captureCfg config.CaptureConfig) ChartAnalyzer {
	return &analysisService{
		streamer:      streamer,
		model:         llmCfg.VisionModel,
		screenshotDir: captureCfg.ScreenshotDir,
		publicPrefix:  captureCfg.PublicPrefix,
	}
}

func (s *analysisService) AnalyzeCharts(ctx context.Context, chartURLs []string, symbol, userID string, sink EventSink) (string, error) {
	// The stream must terminate with done or error even when there is
	// nothing to analyze.
	if len(chartURLs) == 0 {
		err := fmt.Errorf("no chart images to analyze")
		s.sendEvent(sink, ErrorEvent(err.Error()))
		return "", err
	}

	s.sendEvent(sink, ImagesEvent(chartURLs))

	parts := make([]openai.ChatMessagePart, 0, len(chartURLs)+1)
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: AnalysisPrompt(symbol),
	})
	for _, chartURL := range chartURLs {
		data, err := os.ReadFile(s.localPath(chartURL))
		if err != nil {
			wrapped := fmt.Errorf("failed to read chart image %s: %w", chartURL, err)
			s.sendEvent(sink, ErrorEvent(wrapped.Error()))
			return "", wrapped
		}
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    imageDataURI(data),
				Detail: openai.ImageURLDetailAuto,
			},
		})
	}

	req := openai.ChatCompletionRequest{
		Model: s.model,
		User:  userID,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:         openai.ChatMessageRoleUser,
				MultiContent: parts,
			},
		},
	}

	var full strings.Builder
	err := s.streamer.StreamCompletion(ctx, req, func(token string) error {
		full.WriteString(token)
		return sink.Send(ContentEvent(token))
	})
	if err != nil {
		s.sendEvent(sink, ErrorEvent(err.Error()))
		return full.String(), err
	}

	s.sendEvent(sink, DoneEvent())
	return full.String(), nil
}

// localPath maps a public screenshot URL back to its file on disk.
func (s *analysisService) localPath(chartURL string) string {
	name := strings.TrimPrefix(chartURL, s.publicPrefix)
	name = strings.TrimPrefix(name, "/")
	return filepath.Join(s.screenshotDir, filepath.Base(name))
}

func (s *analysisService) sendEvent(sink EventSink, event Event) {
	if err := sink.Send(event); err != nil {
		log.Printf("WARN: [Analysis] Failed to relay %s event to client: %v", event.Type, err)
	}
}
