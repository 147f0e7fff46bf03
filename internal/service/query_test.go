package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfqa/internal/active"
	answerMocks "pdfqa/internal/answer/mocks"
	"pdfqa/internal/model"
	repoMocks "pdfqa/internal/repository/mocks"
)

func TestQueryService_Ask(t *testing.T) {
	ctx := context.Background()

	t.Run("no document uploaded yet", func(t *testing.T) {
		svc := NewQueryService(new(repoMocks.MockDocumentRepository), active.NewRegister(), new(answerMocks.MockEngine))

		_, err := svc.Ask(ctx, "How many days notice?")

		assert.ErrorIs(t, err, ErrNoActiveDocument)
	})

	t.Run("empty question", func(t *testing.T) {
		reg := active.NewRegister()
		reg.Set(1)
		svc := NewQueryService(new(repoMocks.MockDocumentRepository), reg, new(answerMocks.MockEngine))

		_, err := svc.Ask(ctx, "   ")

		assert.ErrorIs(t, err, ErrQuestionRequired)
	})

	t.Run("grounded answer from the active document", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mEngine := new(answerMocks.MockEngine)
		reg := active.NewRegister()
		reg.Set(7)
		svc := NewQueryService(mRepo, reg, mEngine)

		text := "Termination clause: 30 days notice.\n"
		mRepo.On("FindByID", ctx, int64(7)).
			Return(&model.Document{ID: 7, Filename: "contract.pdf", Text: text}, nil)
		mEngine.On("Answer", ctx, "How many days notice?", text).
			Return("30 days", nil)

		res, err := svc.Ask(ctx, "How many days notice?")

		require.NoError(t, err)
		assert.Equal(t, "How many days notice?", res.Question)
		assert.Equal(t, "30 days", res.Answer)
		assert.Equal(t, "contract.pdf", res.SourceDocument)
		mEngine.AssertExpectations(t)
	})

	t.Run("stale register pointer after losing a delete race", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		reg := active.NewRegister()
		reg.Set(5)
		svc := NewQueryService(mRepo, reg, new(answerMocks.MockEngine))

		mRepo.On("FindByID", ctx, int64(5)).Return(nil, sql.ErrNoRows)

		_, err := svc.Ask(ctx, "anything?")

		assert.ErrorIs(t, err, ErrNoActiveDocument)
	})

	t.Run("engine failure is surfaced, not papered over", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mEngine := new(answerMocks.MockEngine)
		reg := active.NewRegister()
		reg.Set(7)
		svc := NewQueryService(mRepo, reg, mEngine)

		mRepo.On("FindByID", ctx, int64(7)).
			Return(&model.Document{ID: 7, Filename: "contract.pdf", Text: "text"}, nil)
		mEngine.On("Answer", ctx, "q?", "text").
			Return("", errors.New("model timeout"))

		_, err := svc.Ask(ctx, "q?")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "answer engine")
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		reg := active.NewRegister()
		reg.Set(7)
		svc := NewQueryService(mRepo, reg, new(answerMocks.MockEngine))

		mRepo.On("FindByID", ctx, int64(7)).Return(nil, errors.New("db down"))

		_, err := svc.Ask(ctx, "q?")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoActiveDocument)
	})
}

func TestQueryService_AnswerAfterReupload(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockDocumentRepository)
	mEngine := new(answerMocks.MockEngine)
	reg := active.NewRegister()
	svc := NewQueryService(mRepo, reg, mEngine)

	// Document A uploaded, then B: asks must target B.
	reg.Set(1)
	reg.Set(2)

	mRepo.On("FindByID", ctx, int64(2)).
		Return(&model.Document{ID: 2, Filename: "b.pdf", Text: "text of B"}, nil)
	mEngine.On("Answer", ctx, "q?", "text of B").Return("answer from B", nil)

	res, err := svc.Ask(ctx, "q?")

	require.NoError(t, err)
	assert.Equal(t, "b.pdf", res.SourceDocument)
	mRepo.AssertNotCalled(t, "FindByID", ctx, int64(1))
}
