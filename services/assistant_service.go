package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Adhikram/ChartIQ-sub000/config"
	"github.com/Adhikram/ChartIQ-sub000/models"
	"github.com/Adhikram/ChartIQ-sub000/repository"
)

// AssistantRequest is one follow-up question about a prior analysis.
type AssistantRequest struct {
	Question        string
	UserID          string
	Symbol          string // optional, enables quote enrichment
	AnalysisContext string // optional, falls back to the stored history
	History         []models.ConversationMessage
}

// AssistantResponse mirrors the stock-assistant endpoint contract.
type AssistantResponse struct {
	Response string                       `json:"response"`
	History  []models.ConversationMessage `json:"conversationHistory"`
	Status   string                       `json:"status"`
}

// AssistantService answers follow-up questions using the latest analysis
// as context.
type AssistantService interface {
	Answer(ctx context.Context, req AssistantRequest) (*AssistantResponse, error)
}

type assistantService struct {
	completer    Completer
	messages     repository.MessageRepository
	quotes       QuoteProvider // nil disables quote enrichment
	model        string
	historyLimit int
}

func NewAssistantService(
	completer Completer,
	messages repository.MessageRepository,
	quotes QuoteProvider,
	llmCfg config.LLMConfig,
	cfg config.AssistantConfig,
) AssistantService {
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = 10
	}
	if !cfg.QuoteEnrichment {
		quotes = nil
	}
	return &assistantService{
		completer:    completer,
		messages:     messages,
		quotes:       quotes,
		model:        llmCfg.TextModel,
		historyLimit: limit,
	}
}

func (s *assistantService) Answer(ctx context.Context, req AssistantRequest) (*AssistantResponse, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, errors.New("question must not be empty")
	}
	if req.UserID == "" {
		return nil, errors.New("userId must not be empty")
	}

	analysisContext := req.AnalysisContext
	if analysisContext == "" {
		// Fall back to the most recent stored analysis for this user.
		latest, err := s.messages.LatestByRoles(req.UserID, models.RoleSystem, models.RoleAssistant)
		switch {
		case err == nil:
			analysisContext = latest.Content
		case errors.Is(err, repository.ErrMessageNotFound):
			// No prior analysis; the assistant answers from general knowledge.
		default:
			log.Printf("WARN: [Assistant] Failed to load stored analysis for %s: %v", req.UserID, err)
		}
	}

	systemPrompt := "You are a helpful stock trading assistant. Answer the user's question concisely, grounded in the technical analysis context when one is provided. Do not give financial advice guarantees."
	if analysisContext != "" {
		systemPrompt += "\n\nLatest technical analysis:\n" + analysisContext
	}
	if s.quotes != nil && req.Symbol != "" {
		if line, err := s.quotes.QuoteLine(req.Symbol); err == nil {
			systemPrompt += "\n\n" + line
		} else {
			log.Printf("WARN: [Assistant] Quote enrichment for %s failed: %v", req.Symbol, err)
		}
	}

	history := req.History
	if len(history) > s.historyLimit {
		history = history[len(history)-s.historyLimit:]
	}

	llmMessages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	llmMessages = append(llmMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if strings.EqualFold(msg.Role, "assistant") {
			role = openai.ChatMessageRoleAssistant
		}
		llmMessages = append(llmMessages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	llmMessages = append(llmMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Question,
	})

	answer, err := s.completer.Complete(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		User:     req.UserID,
		Messages: llmMessages,
	})
	if err != nil {
		return nil, fmt.Errorf("assistant completion failed: %w", err)
	}

	updatedHistory := append(append([]models.ConversationMessage{}, history...),
		models.ConversationMessage{Role: "user", Content: req.Question},
		models.ConversationMessage{Role: "assistant", Content: answer},
	)

	return &AssistantResponse{
		Response: answer,
		History:  updatedHistory,
		Status:   "success",
	}, nil
}
