package game

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/PixelPet_Go/internal/domain"
)

// MockClient is a testify mock of petservice.Client
type MockClient struct {
	mock.Mock
}

func (m *MockClient) petResult(args mock.Arguments) (*domain.Pet, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pet), args.Error(1)
}

func (m *MockClient) CreatePet(ctx context.Context, owner, name string) (*domain.Pet, error) {
	return m.petResult(m.Called(ctx, owner, name))
}

func (m *MockClient) GetPet(ctx context.Context, owner string) (*domain.Pet, error) {
	return m.petResult(m.Called(ctx, owner))
}

func (m *MockClient) GetCoins(ctx context.Context, owner string) (int64, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClient) Feed(ctx context.Context, owner string) (*domain.Pet, error) {
	return m.petResult(m.Called(ctx, owner))
}

func (m *MockClient) Play(ctx context.Context, owner string) (*domain.Pet, error) {
	return m.petResult(m.Called(ctx, owner))
}

func (m *MockClient) Work(ctx context.Context, owner string) (*domain.Pet, error) {
	return m.petResult(m.Called(ctx, owner))
}

func (m *MockClient) Sleep(ctx context.Context, owner string) (*domain.Pet, error) {
	return m.petResult(m.Called(ctx, owner))
}

func (m *MockClient) Exercise(ctx context.Context, owner string) (*domain.Pet, error) {
	return m.petResult(m.Called(ctx, owner))
}

func (m *MockClient) MintGlasses(ctx context.Context, owner string) (*domain.Pet, error) {
	return m.petResult(m.Called(ctx, owner))
}

func (m *MockClient) UpdateCoins(ctx context.Context, owner string, delta int64) (int64, error) {
	args := m.Called(ctx, owner, delta)
	return args.Get(0).(int64), args.Error(1)
}
