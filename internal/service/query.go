package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pdfqa/internal/active"
	"pdfqa/internal/answer"
	"pdfqa/internal/model"
	"pdfqa/internal/repository"
)

var (
	ErrQuestionRequired = errors.New("question is required")

	// ErrNoActiveDocument means ask was called with nothing uploaded, or
	// after the active document was deleted.
	ErrNoActiveDocument = errors.New("no active document")
)

// QueryService answers questions against the active document.
type QueryService interface {
	// Ask resolves the active document, fetches its text, and produces a
	// grounded answer. The exchange is not persisted.
	Ask(ctx context.Context, question string) (*model.AnswerResult, error)
}

type queryService struct {
	repo     repository.DocumentRepository
	register *active.Register
	engine   answer.Engine
}

// NewQueryService constructs a new QueryService.
func NewQueryService(repo repository.DocumentRepository, reg *active.Register, eng answer.Engine) QueryService {
	return &queryService{repo: repo, register: reg, engine: eng}
}

func (s *queryService) Ask(ctx context.Context, question string) (*model.AnswerResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrQuestionRequired
	}

	id, ok := s.register.Get()
	if !ok {
		return nil, ErrNoActiveDocument
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// The register lost a race against a delete; fail cleanly.
			return nil, ErrNoActiveDocument
		}
		return nil, err
	}

	answerText, err := s.engine.Answer(ctx, question, doc.Text)
	if err != nil {
		return nil, fmt.Errorf("answer engine: %w", err)
	}

	return &model.AnswerResult{
		Question:       question,
		Answer:         answerText,
		SourceDocument: doc.Filename,
	}, nil
}
