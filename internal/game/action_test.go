package game

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/event"
	"github.com/osse101/PixelPet_Go/internal/store"
)

func TestPerformAction_PreconditionsRejectWithoutRemoteCalls(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(f *fixture)
		wantErr error
		wantMsg string
	}{
		{
			name:    "not connected",
			setup:   func(f *fixture) {},
			wantErr: domain.ErrNotConnected,
			wantMsg: NotifyConnectFirst,
		},
		{
			name: "no pet",
			setup: func(f *fixture) {
				f.svc.identity = testOwner
			},
			wantErr: domain.ErrNoPet,
			wantMsg: NotifyCreatePetFirst,
		},
		{
			name: "starving pet",
			setup: func(f *fixture) {
				p := livePet()
				p.Hunger = 0
				f.withPet(p, 0)
			},
			wantErr: domain.ErrPetUnwell,
			wantMsg: NotifyBusyOrUnwell,
		},
		{
			name: "miserable pet",
			setup: func(f *fixture) {
				p := livePet()
				p.Happiness = 0
				f.withPet(p, 0)
			},
			wantErr: domain.ErrPetUnwell,
			wantMsg: NotifyBusyOrUnwell,
		},
		{
			name: "action in flight",
			setup: func(f *fixture) {
				f.withPet(livePet(), 0)
				f.svc.gate.TryAcquire()
			},
			wantErr: domain.ErrActionInProgress,
			wantMsg: NotifyBusyOrUnwell,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)
			before := f.svc.Snapshot().Game

			_, err := f.svc.PerformAction(context.Background(), domain.ActionFeed)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, domain.IsPrecondition(err))
			assert.Empty(t, f.client.Calls)
			assert.True(t, before.SameContent(f.svc.Snapshot().Game))
			assert.True(t, before.LastUpdate.Equal(f.svc.Snapshot().Game.LastUpdate))
			assert.Contains(t, f.notificationMessages(), tt.wantMsg)
			assert.Len(t, f.rec.OfType(event.ActionRejected), 1)
		})
	}
}

func TestPerformAction_FeedMergesResult(t *testing.T) {
	f := newFixture(t).withPet(livePet(), 10)
	fed := livePet()
	fed.Hunger = 100
	fed.XP = 30
	f.client.On("Feed", mock.Anything, testOwner).Return(fed, nil)
	f.client.On("GetCoins", mock.Anything, testOwner).Return(int64(10), nil)

	game, err := f.svc.PerformAction(context.Background(), domain.ActionFeed)

	require.NoError(t, err)
	assert.Equal(t, 100, game.Stats.Hunger)
	assert.Equal(t, int64(30), game.Stats.XP)
	assert.False(t, game.IsSleeping)
	assert.False(t, f.svc.Snapshot().IsLoading)
	assert.Contains(t, f.notificationMessages(), ActionSuccessMessages[domain.ActionFeed])
	f.client.AssertExpectations(t)

	var saved domain.GameState
	require.NoError(t, store.GetJSON(context.Background(), f.store, domain.StoreKeyGameState, &saved))
	assert.Equal(t, 100, saved.Stats.Hunger)
}

func TestPerformAction_SleepMarksSleeping(t *testing.T) {
	f := newFixture(t).withPet(livePet(), 0)
	f.client.On("Sleep", mock.Anything, testOwner).Return(livePet(), nil)
	f.client.On("GetCoins", mock.Anything, testOwner).Return(int64(0), nil)

	game, err := f.svc.PerformAction(context.Background(), domain.ActionSleep)

	require.NoError(t, err)
	assert.True(t, game.IsSleeping)
	assert.Equal(t, domain.PetMoodSleeping, game.PetMood)
}

func TestPerformAction_LevelUpPublished(t *testing.T) {
	f := newFixture(t).withPet(livePet(), 0)
	worked := livePet()
	worked.Level = 2
	worked.XP = 5
	worked.NextLevelXP = 200
	f.client.On("Work", mock.Anything, testOwner).Return(worked, nil)
	f.client.On("GetCoins", mock.Anything, testOwner).Return(int64(25), nil)

	game, err := f.svc.PerformAction(context.Background(), domain.ActionWork)

	require.NoError(t, err)
	assert.Equal(t, 2, game.Stats.Level)
	assert.Equal(t, int64(25), game.Coins)
	levelUps := f.rec.OfType(event.PetLevelUp)
	require.Len(t, levelUps, 1)
	payload := levelUps[0].Payload.(domain.PetLevelUpPayload)
	assert.Equal(t, 1, payload.OldLevel)
	assert.Equal(t, 2, payload.NewLevel)
	assert.Contains(t, f.notificationMessages(), "LEVEL UP! Pet reached Level 2!")
}

func TestPerformAction_RemoteFailureLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t).withPet(livePet(), 10)
	before := f.svc.Snapshot().Game
	f.client.On("Exercise", mock.Anything, testOwner).Return(nil, domain.ErrNotEnoughEnergy)

	_, err := f.svc.PerformAction(context.Background(), domain.ActionExercise)

	assert.ErrorIs(t, err, domain.ErrNotEnoughEnergy)
	assert.False(t, domain.IsPrecondition(err))
	assert.True(t, before.SameContent(f.svc.Snapshot().Game))
	assert.False(t, f.svc.Snapshot().IsLoading)
	assert.Contains(t, f.notificationMessages(), "Exercise failed! Check the logs for details.")
	f.client.AssertNotCalled(t, "GetCoins", mock.Anything, mock.Anything)
	f.client.AssertNumberOfCalls(t, "Exercise", 1)
}

func TestPerformAction_CoinReadFailureLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t).withPet(livePet(), 10)
	before := f.svc.Snapshot().Game
	fed := livePet()
	fed.Hunger = 100
	f.client.On("Feed", mock.Anything, testOwner).Return(fed, nil)
	f.client.On("GetCoins", mock.Anything, testOwner).Return(int64(0), domain.ErrRemoteUnavailable)

	_, err := f.svc.PerformAction(context.Background(), domain.ActionFeed)

	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	assert.True(t, before.SameContent(f.svc.Snapshot().Game))
}

func TestPerformAction_InvalidKinds(t *testing.T) {
	f := newFixture(t).withPet(livePet(), 10)

	_, err := f.svc.PerformAction(context.Background(), domain.ActionKind("dance"))
	assert.ErrorIs(t, err, domain.ErrInvalidAction)

	_, err = f.svc.PerformAction(context.Background(), domain.ActionPlay)
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
	assert.Empty(t, f.client.Calls)
}

func TestPerformAction_ConcurrentCallsAdmitOne(t *testing.T) {
	f := newFixture(t).withPet(livePet(), 10)
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	f.client.On("Feed", mock.Anything, testOwner).Run(func(mock.Arguments) {
		entered <- struct{}{}
		<-release
	}).Return(livePet(), nil).Once()
	f.client.On("GetCoins", mock.Anything, testOwner).Return(int64(10), nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := f.svc.PerformAction(context.Background(), domain.ActionFeed)
		assert.NoError(t, err)
	}()
	<-entered

	_, err := f.svc.PerformAction(context.Background(), domain.ActionFeed)
	assert.ErrorIs(t, err, domain.ErrActionInProgress)

	close(release)
	wg.Wait()
	f.client.AssertNumberOfCalls(t, "Feed", 1)
}

func TestMintGlasses(t *testing.T) {
	f := newFixture(t).withPet(livePet(), 60)
	styled := livePet()
	styled.Accessories = domain.AccessoryGlasses
	f.client.On("MintGlasses", mock.Anything, testOwner).Return(styled, nil)
	f.client.On("GetCoins", mock.Anything, testOwner).Return(int64(10), nil)

	game, err := f.svc.MintGlasses(context.Background())

	require.NoError(t, err)
	assert.True(t, game.HasItem(domain.ItemCoolGlasses))
	assert.Equal(t, int64(10), game.Coins)
	assert.Contains(t, f.notificationMessages(), NotifyGlassesMinted)
}

func TestMintGlasses_AlreadyOwned(t *testing.T) {
	f := newFixture(t).withPet(livePet(), 60)
	f.client.On("MintGlasses", mock.Anything, testOwner).Return(nil, domain.ErrAccessoryOwned)

	_, err := f.svc.MintGlasses(context.Background())
	assert.ErrorIs(t, err, domain.ErrAccessoryOwned)
	assert.Contains(t, f.notificationMessages(), "Mint Glasses failed! Check the logs for details.")
}

func TestCreatePet(t *testing.T) {
	f := newFixture(t)
	f.svc.identity = testOwner
	hatched := livePet()
	hatched.Hunger, hatched.Happiness, hatched.Energy = 100, 100, 100
	f.client.On("CreatePet", mock.Anything, testOwner, "Pixel").Return(hatched, nil)
	f.client.On("GetCoins", mock.Anything, testOwner).Return(int64(0), nil)

	game, err := f.svc.CreatePet(context.Background(), "  Pixel ")

	require.NoError(t, err)
	assert.True(t, game.HasRealPet)
	assert.Equal(t, "Pixel", game.PetName)
	assert.Equal(t, domain.PetMoodHappy, game.PetMood)
	assert.Len(t, f.rec.OfType(event.PetCreated), 1)
	assert.Len(t, f.rec.OfType(event.MoodRolled), 1, "creation rolls a fresh mood")
	assert.Contains(t, f.notificationMessages(), "Your pet Pixel is alive!")
}

func TestCreatePet_Rejections(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreatePet(context.Background(), "Pixel")
	assert.ErrorIs(t, err, domain.ErrNotConnected)

	f.svc.identity = testOwner
	_, err = f.svc.CreatePet(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.client.Calls)
	assert.False(t, f.svc.gate.Busy())
}

func TestCreatePet_RemoteFailure(t *testing.T) {
	f := newFixture(t)
	f.svc.identity = testOwner
	f.client.On("CreatePet", mock.Anything, testOwner, "Pixel").Return(nil, domain.ErrPetAlreadyExists)

	_, err := f.svc.CreatePet(context.Background(), "Pixel")
	assert.ErrorIs(t, err, domain.ErrPetAlreadyExists)
	assert.False(t, f.svc.Snapshot().Game.HasRealPet)
	assert.Contains(t, f.notificationMessages(), NotifyPetCreateFailed)
	assert.Empty(t, f.rec.OfType(event.MoodRolled))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Feed", displayName("feed"))
	assert.Equal(t, "Mint Glasses", displayName("mint_glasses"))
}
