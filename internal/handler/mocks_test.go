package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/game"
	"github.com/osse101/PixelPet_Go/internal/investment"
	"github.com/osse101/PixelPet_Go/internal/qte"
)

// MockGameService mocks game.Service
type MockGameService struct {
	mock.Mock
}

var _ game.Service = (*MockGameService)(nil)

func (m *MockGameService) Hydrate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockGameService) Connect(ctx context.Context, identity string) error {
	return m.Called(ctx, identity).Error(0)
}

func (m *MockGameService) Disconnect(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockGameService) Sync(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockGameService) PerformAction(ctx context.Context, kind domain.ActionKind) (domain.GameState, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(domain.GameState), args.Error(1)
}

func (m *MockGameService) CreatePet(ctx context.Context, name string) (domain.GameState, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.GameState), args.Error(1)
}

func (m *MockGameService) MintGlasses(ctx context.Context) (domain.GameState, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.GameState), args.Error(1)
}

func (m *MockGameService) StartInvestment(ctx context.Context, amount int64, durationHours int) (domain.Investment, error) {
	args := m.Called(ctx, amount, durationHours)
	return args.Get(0).(domain.Investment), args.Error(1)
}

func (m *MockGameService) ClaimInvestment(ctx context.Context) (*game.ClaimResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*game.ClaimResult), args.Error(1)
}

func (m *MockGameService) InvestmentStatus() *investment.Status {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*investment.Status)
}

func (m *MockGameService) StartPlayChallenge(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockGameService) HitPlayChallenge(ctx context.Context) (qte.Resolution, error) {
	args := m.Called(ctx)
	return args.Get(0).(qte.Resolution), args.Error(1)
}

func (m *MockGameService) CancelPlayChallenge(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *MockGameService) Mood() domain.MoodState {
	return m.Called().Get(0).(domain.MoodState)
}

func (m *MockGameService) Snapshot() game.Snapshot {
	return m.Called().Get(0).(game.Snapshot)
}

func (m *MockGameService) Subscribe(buffer int) (<-chan game.Snapshot, func()) {
	args := m.Called(buffer)
	return args.Get(0).(<-chan game.Snapshot), args.Get(1).(func())
}

func (m *MockGameService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
