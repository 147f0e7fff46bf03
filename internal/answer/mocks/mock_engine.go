package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Answer(ctx context.Context, question, documentText string) (string, error) {
	args := m.Called(ctx, question, documentText)
	return args.String(0), args.Error(1)
}
