package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tzsync/internal/domain/preference"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Get(ctx context.Context, userID string) (*preference.Record, error) {
	args := m.Called(ctx, userID)
	record, _ := args.Get(0).(*preference.Record)
	return record, args.Error(1)
}

func (m *mockRepository) Upsert(ctx context.Context, userID, username, timezone string) (*preference.Record, error) {
	args := m.Called(ctx, userID, username, timezone)
	record, _ := args.Get(0).(*preference.Record)
	return record, args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockRepository) ListAll(ctx context.Context) ([]*preference.Record, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]*preference.Record)
	return records, args.Error(1)
}

func (m *mockRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) RecordPreferenceWrite(operation, outcome string) {
	m.Called(operation, outcome)
}
