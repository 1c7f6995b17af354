package doctor

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockCheck struct {
	mock.Mock
}

func (m *mockCheck) Name() string {
	return m.Called().String(0)
}

func (m *mockCheck) Category() string {
	return m.Called().String(0)
}

func (m *mockCheck) Run(ctx context.Context) *CheckResult {
	res, _ := m.Called(ctx).Get(0).(*CheckResult)
	return res
}

func newMockCheck(result *CheckResult) *mockCheck {
	m := &mockCheck{}
	m.On("Run", mock.Anything).Return(result)
	m.On("Name").Return("mock").Maybe()
	m.On("Category").Return("test").Maybe()
	return m
}
