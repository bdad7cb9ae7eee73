package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/PlasmidCatalog/internal/application/recognition"
	domain "github.com/turtacn/PlasmidCatalog/internal/domain/plasmid"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

type mockService struct {
	mock.Mock
}

var _ recognition.Service = (*mockService)(nil)

func (m *mockService) Start(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockService) Reload(ctx context.Context) (*ptypes.VocabularyStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ptypes.VocabularyStats), args.Error(1)
}

func (m *mockService) Recognize(ctx context.Context, req *ptypes.RecognizeRequest) (*ptypes.RecognitionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ptypes.RecognitionResponse), args.Error(1)
}

func (m *mockService) RecognizeContent(ctx context.Context, req *ptypes.RecognizeContentRequest) (*ptypes.RecognitionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ptypes.RecognitionResponse), args.Error(1)
}

func (m *mockService) RecognizeObject(ctx context.Context, key string) (*ptypes.RecognitionResponse, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ptypes.RecognitionResponse), args.Error(1)
}

func (m *mockService) RecognizeBatch(ctx context.Context, req *ptypes.BatchRecognizeRequest) (*ptypes.BatchRecognitionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ptypes.BatchRecognitionResponse), args.Error(1)
}

func (m *mockService) RecordCorrection(ctx context.Context, req *ptypes.CorrectionRequest) (*recognition.CorrectionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recognition.CorrectionResult), args.Error(1)
}

func (m *mockService) ApplyCorrectionEvent(ctx context.Context, ev *domain.CorrectionRecordedEvent) bool {
	return m.Called(ctx, ev).Bool(0)
}

func (m *mockService) Corrections(ctx context.Context) ([]ptypes.Correction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ptypes.Correction), args.Error(1)
}

func (m *mockService) VocabularyStats(ctx context.Context) ptypes.VocabularyStats {
	return m.Called(ctx).Get(0).(ptypes.VocabularyStats)
}

//Personal.AI order the ending
