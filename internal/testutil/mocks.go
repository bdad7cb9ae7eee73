package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	domain "github.com/turtacn/PlasmidCatalog/internal/domain/plasmid"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// MockRulesSource mocks domain.RulesSource.
type MockRulesSource struct {
	mock.Mock
}

func (m *MockRulesSource) LoadRules(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockFetcher mocks domain.ContentFetcher.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, key string, maxBytes int64) ([]byte, error) {
	args := m.Called(ctx, key, maxBytes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockPublisher mocks domain.EventPublisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishCorrection(ctx context.Context, ev *domain.CorrectionRecordedEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *MockPublisher) PublishResult(ctx context.Context, res *ptypes.RecognitionJobResult) error {
	return m.Called(ctx, res).Error(0)
}

// MockRecordRepository mocks domain.RecordRepository.
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) List(ctx context.Context) ([]ptypes.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ptypes.Record), args.Error(1)
}

func (m *MockRecordRepository) Get(ctx context.Context, id string) (*ptypes.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ptypes.Record), args.Error(1)
}

func (m *MockRecordRepository) Upsert(ctx context.Context, r *ptypes.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRecordRepository) UpdateFields(ctx context.Context, id string, fields map[string]ptypes.FieldValues) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *MockRecordRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockCorrectionStore mocks domain.CorrectionStore.
type MockCorrectionStore struct {
	mock.Mock
}

func (m *MockCorrectionStore) Save(ctx context.Context, c ptypes.Correction) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCorrectionStore) List(ctx context.Context) ([]ptypes.Correction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ptypes.Correction), args.Error(1)
}

func (m *MockCorrectionStore) Delete(ctx context.Context, filename, category string) error {
	return m.Called(ctx, filename, category).Error(0)
}

var (
	_ domain.RulesSource      = (*MockRulesSource)(nil)
	_ domain.ContentFetcher   = (*MockFetcher)(nil)
	_ domain.EventPublisher   = (*MockPublisher)(nil)
	_ domain.RecordRepository = (*MockRecordRepository)(nil)
	_ domain.CorrectionStore  = (*MockCorrectionStore)(nil)
)

//Personal.AI order the ending
