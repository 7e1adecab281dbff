package mood

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PixelPet_Go/internal/clock"
	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/event"
	"github.com/osse101/PixelPet_Go/internal/store"
	"github.com/osse101/PixelPet_Go/internal/testing/eventtest"
	"github.com/osse101/PixelPet_Go/internal/utils"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk gone") }
func (brokenStore) Set(context.Context, string, []byte) error   { return errors.New("disk gone") }
func (brokenStore) Remove(context.Context, string) error        { return errors.New("disk gone") }

func setup(t *testing.T, values ...float64) (*Scheduler, *store.MemoryStore, *clock.Fake, *utils.SequenceSource, *eventtest.Recorder) {
	t.Helper()
	st := store.NewMemoryStore()
	clk := clock.NewFake(testNow)
	rng := utils.NewSequenceSource(values...)
	rec := eventtest.NewRecorder()
	return NewScheduler(st, clk, rng, rec), st, clk, rng, rec
}

func persistMood(t *testing.T, st store.Store, m domain.MoodState) {
	t.Helper()
	require.NoError(t, store.SetJSON(context.Background(), st, domain.StoreKeyMoodState, m))
}

func TestPick(t *testing.T) {
	tests := []struct {
		r    float64
		want domain.MoodType
	}{
		{0.0, domain.MoodTypeBoost},
		{0.33, domain.MoodTypeBoost},
		{0.34, domain.MoodTypePenalty},
		{0.66, domain.MoodTypePenalty},
		{0.67, domain.MoodTypeNeutral},
		{0.999, domain.MoodTypeNeutral},
		{1.0, domain.MoodTypeNeutral},
		{-0.5, domain.MoodTypeBoost},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Pick(tt.r).MoodType, "r=%v", tt.r)
	}
}

func TestLoad_StaleMoodRerollsExactlyOnce(t *testing.T) {
	s, st, _, rng, rec := setup(t, 0.5)
	persistMood(t, st, domain.MoodState{
		MoodType:      domain.MoodTypeBoost,
		Message:       domain.MoodMessageBoost,
		LastMoodCheck: testNow.Add(-25 * time.Hour),
	})

	got := s.Load(context.Background())

	assert.Equal(t, 1, rng.Calls())
	assert.Equal(t, domain.MoodTypePenalty, got.MoodType)
	assert.True(t, got.LastMoodCheck.Equal(testNow))
	assert.Len(t, rec.OfType(event.MoodRolled), 1)

	var saved domain.MoodState
	require.NoError(t, store.GetJSON(context.Background(), st, domain.StoreKeyMoodState, &saved))
	assert.Equal(t, domain.MoodTypePenalty, saved.MoodType)

	// A second check in the same window does nothing
	_, rolled := s.Check(context.Background())
	assert.False(t, rolled)
	assert.Equal(t, 1, rng.Calls())
}

func TestLoad_FreshMoodKeptVerbatim(t *testing.T) {
	s, st, _, rng, rec := setup(t, 0.9)
	fresh := domain.MoodState{
		MoodType:      domain.MoodTypeBoost,
		Message:       domain.MoodMessageBoost,
		LastMoodCheck: testNow.Add(-1 * time.Hour),
	}
	persistMood(t, st, fresh)

	got := s.Load(context.Background())

	assert.Equal(t, 0, rng.Calls())
	assert.Equal(t, fresh.MoodType, got.MoodType)
	assert.Equal(t, fresh.Message, got.Message)
	assert.True(t, fresh.LastMoodCheck.Equal(got.LastMoodCheck))
	assert.Empty(t, rec.Events())
}

func TestLoad_MissingUsesDefault(t *testing.T) {
	s, st, _, rng, _ := setup(t, 0.1)

	got := s.Load(context.Background())

	assert.Equal(t, 0, rng.Calls())
	assert.Equal(t, domain.MoodTypeNeutral, got.MoodType)
	assert.Equal(t, domain.MoodMessageDefault, got.Message)
	assert.True(t, got.LastMoodCheck.Equal(testNow))

	_, err := st.Get(context.Background(), domain.StoreKeyMoodState)
	assert.NoError(t, err)
}

func TestLoad_StoreFailureFallsBackToDefault(t *testing.T) {
	s := NewScheduler(brokenStore{}, clock.NewFake(testNow), utils.NewSequenceSource(0.1), nil)

	got := s.Load(context.Background())

	assert.Equal(t, domain.MoodTypeNeutral, got.MoodType)
}

func TestCheck_RollsAfterWindow(t *testing.T) {
	s, _, clk, rng, rec := setup(t, 0.0, 0.8)
	s.Load(context.Background())

	clk.Advance(23 * time.Hour)
	_, rolled := s.Check(context.Background())
	assert.False(t, rolled)

	clk.Advance(time.Hour)
	got, rolled := s.Check(context.Background())
	assert.True(t, rolled)
	assert.Equal(t, domain.MoodTypeBoost, got.MoodType)
	assert.Equal(t, 1, rng.Calls())

	notes := rec.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotificationInfo, notes[0].Level)
	assert.Contains(t, notes[0].Message, domain.MoodMessageBoost)
	assert.True(t, s.NextCheck().Equal(testNow.Add(48*time.Hour)))
}

func TestRoll_PersistFailureStillUpdatesState(t *testing.T) {
	rec := eventtest.NewRecorder()
	s := NewScheduler(brokenStore{}, clock.NewFake(testNow), utils.NewSequenceSource(0.7), rec)

	got := s.Roll(context.Background())

	assert.Equal(t, domain.MoodTypeNeutral, got.MoodType)
	assert.Equal(t, got, s.Current())
	assert.Len(t, rec.OfType(event.MoodRolled), 1)
}

func BenchmarkPick(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Pick(float64(i%100) / 100)
	}
}
