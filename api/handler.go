package api

import (
	"github.com/Adhikram/ChartIQ-sub000/repository"
	"github.com/Adhikram/ChartIQ-sub000/services"
)

// APIHandler holds every dependency the HTTP handlers need. All
// collaborators are injected so tests can substitute fakes.
type APIHandler struct {
	messages  repository.MessageRepository
	analyses  repository.AnalysisRepository
	capture   services.CaptureService
	turns     services.TurnService
	assistant services.AssistantService
	symbols   services.SymbolSearchService
	intervals []string
}

func NewAPIHandler(
	messages repository.MessageRepository,
	analyses repository.AnalysisRepository,
	capture services.CaptureService,
	turns services.TurnService,
	assistant services.AssistantService,
	symbols services.SymbolSearchService,
	intervals []string,
) *APIHandler {
	return &APIHandler{
		messages:  messages,
		analyses:  analyses,
		capture:   capture,
		turns:     turns,
		assistant: assistant,
		symbols:   symbols,
		intervals: intervals,
	}
}
