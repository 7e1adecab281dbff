package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/event"
)

func TestEventMetricsCollector(t *testing.T) {
	ctx := context.Background()
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	t.Run("pet actions by result", func(t *testing.T) {
		ok := testutil.ToFloat64(PetActions.WithLabelValues("feed", ResultSuccess))
		failed := testutil.ToFloat64(PetActions.WithLabelValues("feed", ResultFailure))

		stats := domain.PetStats{Hunger: 90, Level: 1}
		require.NoError(t, bus.Publish(ctx, event.NewPetActionEvent("alice", domain.ActionFeed, stats, 310, nil)))
		require.NoError(t, bus.Publish(ctx, event.NewPetActionEvent("alice", domain.ActionFeed, domain.PetStats{}, 0, errors.New("boom"))))

		assert.Equal(t, ok+1, testutil.ToFloat64(PetActions.WithLabelValues("feed", ResultSuccess)))
		assert.Equal(t, failed+1, testutil.ToFloat64(PetActions.WithLabelValues("feed", ResultFailure)))
		assert.Equal(t, float64(310), testutil.ToFloat64(Coins), "failed actions leave the gauge alone")
	})

	t.Run("investment claims", func(t *testing.T) {
		before := testutil.ToFloat64(InvestmentNetCoins)
		claims := testutil.ToFloat64(InvestmentClaims.WithLabelValues("profit", "true"))

		require.NoError(t, bus.Publish(ctx, event.NewInvestmentClaimedEvent("alice", "profit", 100, 125, 25, true)))
		require.NoError(t, bus.Publish(ctx, event.NewInvestmentClaimedEvent("alice", "loss", 100, 80, -20, false)))

		assert.Equal(t, claims+1, testutil.ToFloat64(InvestmentClaims.WithLabelValues("profit", "true")))
		assert.Equal(t, before+25, testutil.ToFloat64(InvestmentNetCoins), "unsettled claims pay nothing")

		require.NoError(t, bus.Publish(ctx, event.NewInvestmentClaimedEvent("alice", "loss", 100, 60, -40, true)))
		assert.Equal(t, before-15, testutil.ToFloat64(InvestmentNetCoins))
	})

	t.Run("challenge results", func(t *testing.T) {
		before := testutil.ToFloat64(Challenges.WithLabelValues("miss"))
		require.NoError(t, bus.Publish(ctx, event.NewChallengeResolvedEvent("miss", 600*time.Millisecond, 750*time.Millisecond)))
		assert.Equal(t, before+1, testutil.ToFloat64(Challenges.WithLabelValues("miss")))
	})

	t.Run("rejections and mood rolls", func(t *testing.T) {
		rejected := testutil.ToFloat64(Rejections.WithLabelValues("sleep"))
		rolls := testutil.ToFloat64(MoodRolls.WithLabelValues(string(domain.MoodTypeBoost)))

		require.NoError(t, bus.Publish(ctx, event.NewActionRejectedEvent("sleep", domain.ErrPetUnwell)))
		require.NoError(t, bus.Publish(ctx, event.NewMoodRolledEvent(domain.MoodState{MoodType: domain.MoodTypeBoost})))

		assert.Equal(t, rejected+1, testutil.ToFloat64(Rejections.WithLabelValues("sleep")))
		assert.Equal(t, rolls+1, testutil.ToFloat64(MoodRolls.WithLabelValues(string(domain.MoodTypeBoost))))
	})

	t.Run("every event is counted", func(t *testing.T) {
		before := testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.Notification)))
		require.NoError(t, bus.Publish(ctx, event.NewNotificationEvent(domain.NotificationInfo, "hello")))
		assert.Equal(t, before+1, testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.Notification))))
	})
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Post("/pet/actions/{kind}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/pet/actions/{kind}", "202"))

	for _, kind := range []string{"feed", "work"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pet/actions/"+kind, nil))
		assert.Equal(t, http.StatusAccepted, rec.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/pet/actions/{kind}", "202")))
	assert.Zero(t, testutil.ToFloat64(HTTPRequestsInFlight))
}

func TestMiddleware_SilentHandlerCountsAsOK(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/quiet", func(http.ResponseWriter, *http.Request) {})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/quiet", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/quiet", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/quiet", "200")))
}
