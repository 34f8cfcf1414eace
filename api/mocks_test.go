package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Adhikram/ChartIQ-sub000/models"
	"github.com/Adhikram/ChartIQ-sub000/repository"
	"github.com/Adhikram/ChartIQ-sub000/services"
)

// Shared testify mocks for the handler dependencies.

type MockMessageRepository struct{ mock.Mock }

func (m *MockMessageRepository) Create(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByUser(userID string, req repository.PageRequest) ([]models.Message, models.PaginationInfo, int64, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, models.PaginationInfo{}, 0, args.Error(3)
	}
	return args.Get(0).([]models.Message), args.Get(1).(models.PaginationInfo), args.Get(2).(int64), args.Error(3)
}

func (m *MockMessageRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockMessageRepository) LatestByRoles(userID string, roles ...models.MessageRole) (*models.Message, error) {
	args := m.Called(userID, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

type MockAnalysisRepository struct{ mock.Mock }

func (m *MockAnalysisRepository) Create(symbol, userID string) (*models.Analysis, error) {
	args := m.Called(symbol, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Analysis), args.Error(1)
}

func (m *MockAnalysisRepository) SetStatus(id uint, status models.AnalysisStatus, errMsg string) error {
	args := m.Called(id, status, errMsg)
	return args.Error(0)
}

func (m *MockAnalysisRepository) AddChartImage(analysisID uint, interval, imagePath, errMsg string) error {
	args := m.Called(analysisID, interval, imagePath, errMsg)
	return args.Error(0)
}

func (m *MockAnalysisRepository) RecentByUser(userID string, limit int) ([]models.Analysis, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Analysis), args.Error(1)
}

type MockCaptureService struct{ mock.Mock }

func (m *MockCaptureService) Capture(ctx context.Context, symbol, interval string) (string, error) {
	args := m.Called(symbol, interval)
	return args.String(0), args.Error(1)
}

func (m *MockCaptureService) CaptureAll(ctx context.Context, symbol string, intervals []string) ([]services.ChartResult, error) {
	args := m.Called(symbol, intervals)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.ChartResult), args.Error(1)
}

type MockTurnService struct{ mock.Mock }

func (m *MockTurnService) RunAnalysisTurn(ctx context.Context, symbol, userID string, chartURLs []string, sink services.EventSink) error {
	args := m.Called(symbol, userID, chartURLs, sink)
	return args.Error(0)
}

type MockAssistantService struct{ mock.Mock }

func (m *MockAssistantService) Answer(ctx context.Context, req services.AssistantRequest) (*services.AssistantResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AssistantResponse), args.Error(1)
}

type MockSymbolSearchService struct{ mock.Mock }

func (m *MockSymbolSearchService) Search(ctx context.Context, text, filter string) ([]models.SymbolResult, error) {
	args := m.Called(text, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SymbolResult), args.Error(1)
}

type handlerMocks struct {
	messages  *MockMessageRepository
	analyses  *MockAnalysisRepository
	capture   *MockCaptureService
	turns     *MockTurnService
	assistant *MockAssistantService
	symbols   *MockSymbolSearchService
}

func newTestHandler() (*APIHandler, *handlerMocks) {
	m := &handlerMocks{
		messages:  new(MockMessageRepository),
		analyses:  new(MockAnalysisRepository),
		capture:   new(MockCaptureService),
		turns:     new(MockTurnService),
		assistant: new(MockAssistantService),
		symbols:   new(MockSymbolSearchService),
	}
	h := NewAPIHandler(m.messages, m.analyses, m.capture, m.turns, m.assistant, m.symbols, []string{"1hr", "4hr", "1d"})
	return h, m
}
