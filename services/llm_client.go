package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Adhikram/ChartIQ-sub000/config"
)

// TokenStreamer delivers one streamed chat completion, invoking onToken
// for every non-empty delta in arrival order. A non-nil error from
// onToken aborts the stream.
type TokenStreamer interface {
	StreamCompletion(ctx context.Context, req openai.ChatCompletionRequest, onToken func(token string) error) error
}

// Completer delivers one non-streamed chat completion.
type Completer interface {
	Complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error)
}

// NewOpenAIClient builds the shared client from the LLM config.
func NewOpenAIClient(cfg config.LLMConfig) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}

// openAIStreamer adapts *openai.Client to TokenStreamer and Completer.
type openAIStreamer struct {
	client *openai.Client
}

func NewOpenAIStreamer(client *openai.Client) *openAIStreamer {
	return &openAIStreamer{client: client}
}

func (s *openAIStreamer) StreamCompletion(ctx context.Context, req openai.ChatCompletionRequest, onToken func(string) error) error {
	req.Stream = true
	stream, err := s.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to open completion stream: %w", err)
	}
	defer stream.Close()

	for {
		response, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			return nil
		}
		if recvErr != nil {
			return fmt.Errorf("failed to receive from completion stream: %w", recvErr)
		}
		if len(response.Choices) == 0 {
			continue
		}
		token := response.Choices[0].Delta.Content
		if token == "" {
			continue
		}
		if err := onToken(token); err != nil {
			return err
		}
	}
}

func (s *openAIStreamer) Complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
