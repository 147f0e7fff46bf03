// Package answer turns a question plus document text into a grounded answer
// by calling an OpenAI-compatible chat-completion service.
package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"pdfqa/internal/config"
)

// ErrEmptyAnswer marks a completion that came back with no usable text.
// The orchestrator surfaces this to the caller instead of inventing a
// fallback answer.
var ErrEmptyAnswer = errors.New("model returned an empty answer")

// Engine produces an answer to a question using only the supplied document text.
type Engine interface {
	Answer(ctx context.Context, question, documentText string) (string, error)
}

// completionAPI is the slice of the OpenAI client the engine needs.
// Narrowing it here lets tests stub the model call.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIEngine calls a chat-completion endpoint with the document text as
// context. The context strategy is explicit: documents that fit within
// maxContextChars are sent whole; longer documents are chunked and only the
// top-ranked chunks for the question are sent, stitched in document order.
type OpenAIEngine struct {
	client          completionAPI
	model           string
	timeout         time.Duration
	maxContextChars int
	topChunks       int
	chunkSize       int
	chunkOverlap    int
}

// NewOpenAIEngine builds an engine from configuration. A non-empty BaseURL
// points the client at a local or proxy model server.
func NewOpenAIEngine(cfg config.AnswerConfig) *OpenAIEngine {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIEngine{
		client:          openai.NewClientWithConfig(clientCfg),
		model:           cfg.Model,
		timeout:         time.Duration(cfg.TimeoutSec) * time.Second,
		maxContextChars: cfg.MaxContextChars,
		topChunks:       cfg.TopChunks,
		chunkSize:       cfg.ChunkSize,
		chunkOverlap:    cfg.ChunkOverlap,
	}
}

var _ Engine = (*OpenAIEngine)(nil)

func (e *OpenAIEngine) Answer(ctx context.Context, question, documentText string) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	contextText := e.selectContext(question, documentText)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: groundingInstruction},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(contextText, question)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyAnswer
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", ErrEmptyAnswer
	}
	return answer, nil
}

// selectContext applies the context strategy: full text when it fits,
// otherwise the top-ranked chunks for the question.
func (e *OpenAIEngine) selectContext(question, documentText string) string {
	if e.maxContextChars <= 0 || len(documentText) <= e.maxContextChars {
		return documentText
	}
	chunks := SplitChunks(documentText, e.chunkSize, e.chunkOverlap)
	top := RankChunks(question, chunks, e.topChunks)
	return strings.Join(top, "\n\n")
}
