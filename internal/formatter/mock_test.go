package formatter

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// mockRunner implements Runner for testing.
type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	ret := m.Called(ctx, name, args)
	return ret.String(0), ret.Error(1)
}

// mockNotifier implements Notifier for testing.
type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) ShowError(msg string) {
	m.Called(msg)
}
