package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tzsync/internal/domain/session"
)

type mockProvider struct {
	mock.Mock
	name string
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) BuildAuthorizationURL(state, redirectOverride string) (string, string, error) {
	args := m.Called(state, redirectOverride)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockProvider) ExchangeCode(ctx context.Context, code, codeVerifier string) (string, error) {
	args := m.Called(ctx, code, codeVerifier)
	return args.String(0), args.Error(1)
}

func (m *mockProvider) FetchProfile(ctx context.Context, accessToken string) (*session.Identity, error) {
	args := m.Called(ctx, accessToken)
	identity, _ := args.Get(0).(*session.Identity)
	return identity, args.Error(1)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) RecordLogin(provider, outcome string) {
	m.Called(provider, outcome)
}
