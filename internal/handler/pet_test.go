package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/game"
	"github.com/osse101/PixelPet_Go/internal/qte"
)

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewReader([]byte(s))
	}
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func petState() domain.GameState {
	state := domain.DefaultGameState(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	state.HasRealPet = true
	state.PetName = "Pixel"
	state.Coins = 300
	return state
}

func TestHandleConnect(t *testing.T) {
	tests := []struct {
		name           string
		reqBody        any
		setupMock      func(*MockGameService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid JSON",
			reqBody:        "invalid json",
			setupMock:      func(*MockGameService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Missing identity",
			reqBody:        ConnectRequest{},
			setupMock:      func(*MockGameService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"identity":"is required"`,
		},
		{
			name:           "Identity with path characters",
			reqBody:        ConnectRequest{Identity: "a/b"},
			setupMock:      func(*MockGameService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "contains invalid characters",
		},
		{
			name:    "Sync failure",
			reqBody: ConnectRequest{Identity: "GALICE"},
			setupMock: func(m *MockGameService) {
				m.On("Connect", mock.Anything, "GALICE").Return(fmt.Errorf("fetch pet: %w", domain.ErrRemoteUnavailable))
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   ErrMsgPetServiceDown,
		},
		{
			name:    "Success",
			reqBody: ConnectRequest{Identity: "GALICE"},
			setupMock: func(m *MockGameService) {
				m.On("Connect", mock.Anything, "GALICE").Return(nil)
				m.On("Snapshot").Return(game.Snapshot{Identity: "GALICE", Connected: true, Game: petState()})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"identity":"GALICE"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockGameService{}
			tt.setupMock(svc)
			h := NewPetHandler(svc)

			req := httptest.NewRequest(http.MethodPost, "/session/connect", jsonBody(t, tt.reqBody))
			w := httptest.NewRecorder()
			h.HandleConnect(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHandlePerformAction(t *testing.T) {
	tests := []struct {
		name           string
		kind           string
		setupMock      func(*MockGameService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Play is rejected",
			kind:           "play",
			setupMock:      func(*MockGameService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgPlayNeedsChallenge,
		},
		{
			name:           "Unknown action",
			kind:           "dance",
			setupMock:      func(*MockGameService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidActionKind,
		},
		{
			name: "Busy",
			kind: "feed",
			setupMock: func(m *MockGameService) {
				m.On("PerformAction", mock.Anything, domain.ActionFeed).Return(petState(), domain.ErrActionInProgress)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgBusyOrUnwell,
		},
		{
			name: "Not connected",
			kind: "work",
			setupMock: func(m *MockGameService) {
				m.On("PerformAction", mock.Anything, domain.ActionWork).Return(domain.DefaultGameState(time.Time{}), domain.ErrNotConnected)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgConnectFirst,
		},
		{
			name: "Remote failure",
			kind: "sleep",
			setupMock: func(m *MockGameService) {
				m.On("PerformAction", mock.Anything, domain.ActionSleep).Return(petState(), fmt.Errorf("pet action failed: sleep: %w", domain.ErrNotEnoughEnergy))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgNotEnoughEnergy,
		},
		{
			name: "Success",
			kind: "exercise",
			setupMock: func(m *MockGameService) {
				m.On("PerformAction", mock.Anything, domain.ActionExercise).Return(petState(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"petName":"Pixel"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockGameService{}
			tt.setupMock(svc)
			h := NewPetHandler(svc)

			req := withURLParam(httptest.NewRequest(http.MethodPost, "/pet/actions/"+tt.kind, nil), "kind", tt.kind)
			w := httptest.NewRecorder()
			h.HandlePerformAction(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleCreatePet(t *testing.T) {
	t.Run("Name too long", func(t *testing.T) {
		h := NewPetHandler(&MockGameService{})
		req := httptest.NewRequest(http.MethodPost, "/pet", jsonBody(t, CreatePetRequest{Name: string(bytes.Repeat([]byte("a"), 33))}))
		w := httptest.NewRecorder()
		h.HandleCreatePet(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "must be at most 32 characters")
	})

	t.Run("Success", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("CreatePet", mock.Anything, "Pixel").Return(petState(), nil)
		h := NewPetHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/pet", jsonBody(t, CreatePetRequest{Name: "Pixel"}))
		w := httptest.NewRecorder()
		h.HandleCreatePet(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Already exists", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("CreatePet", mock.Anything, "Pixel").Return(domain.GameState{}, fmt.Errorf("create pet: %w", domain.ErrPetAlreadyExists))
		h := NewPetHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/pet", jsonBody(t, CreatePetRequest{Name: "Pixel"}))
		w := httptest.NewRecorder()
		h.HandleCreatePet(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgPetExists)
	})
}

func TestHandleHitChallenge(t *testing.T) {
	hit := qte.Resolution{Result: qte.ResultSuccess, Elapsed: 760 * time.Millisecond, Target: 750 * time.Millisecond}

	tests := []struct {
		name           string
		res            qte.Resolution
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Not running",
			err:            domain.ErrChallengeNotRunning,
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgChallengeNotActive,
		},
		{
			name:           "Success",
			res:            hit,
			expectedStatus: http.StatusOK,
			expectedBody:   `"result":"success","message":"Perfect timing! Pet is thrilled.","elapsedMs":760,"targetMs":750`,
		},
		{
			name:           "Miss",
			res:            qte.Resolution{Result: qte.ResultMiss, Elapsed: 500 * time.Millisecond, Target: 750 * time.Millisecond},
			expectedStatus: http.StatusOK,
			expectedBody:   `"result":"miss"`,
		},
		{
			name:           "Play action failed",
			res:            hit,
			err:            errors.New("pet action failed: play: boom"),
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `"error":"` + ErrMsgGenericServerError + `"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockGameService{}
			svc.On("HitPlayChallenge", mock.Anything).Return(tt.res, tt.err)
			h := NewPetHandler(svc)

			w := httptest.NewRecorder()
			h.HandleHitChallenge(w, httptest.NewRequest(http.MethodPost, "/pet/challenge/hit", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleChallengeLifecycle(t *testing.T) {
	svc := &MockGameService{}
	svc.On("StartPlayChallenge", mock.Anything).Return(nil).Once()
	svc.On("Snapshot").Return(game.Snapshot{Challenge: qte.State{Phase: qte.PhaseIdle, Armed: true}})
	svc.On("CancelPlayChallenge", mock.Anything).Return(true).Once()
	svc.On("CancelPlayChallenge", mock.Anything).Return(false).Once()
	h := NewPetHandler(svc)

	w := httptest.NewRecorder()
	h.HandleStartChallenge(w, httptest.NewRequest(http.MethodPost, "/pet/challenge", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"armed":true`)

	w = httptest.NewRecorder()
	h.HandleCancelChallenge(w, httptest.NewRequest(http.MethodDelete, "/pet/challenge", nil))
	assert.Contains(t, w.Body.String(), MsgChallengeCancelled)

	w = httptest.NewRecorder()
	h.HandleCancelChallenge(w, httptest.NewRequest(http.MethodDelete, "/pet/challenge", nil))
	assert.Contains(t, w.Body.String(), MsgNoChallenge)
	svc.AssertExpectations(t)
}

func TestHandleStartChallenge_Rejected(t *testing.T) {
	svc := &MockGameService{}
	svc.On("StartPlayChallenge", mock.Anything).Return(domain.ErrChallengeActive)
	h := NewPetHandler(svc)

	w := httptest.NewRecorder()
	h.HandleStartChallenge(w, httptest.NewRequest(http.MethodPost, "/pet/challenge", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgChallengeActive)
}

func TestHandleSyncAndMood(t *testing.T) {
	svc := &MockGameService{}
	svc.On("Sync", mock.Anything).Return(nil)
	svc.On("Snapshot").Return(game.Snapshot{Game: petState()})
	svc.On("Mood").Return(domain.MoodState{MoodType: domain.MoodTypeBoost, Message: domain.MoodMessageBoost})
	svc.On("Disconnect", mock.Anything).Return(nil)
	h := NewPetHandler(svc)

	w := httptest.NewRecorder()
	h.HandleSync(w, httptest.NewRequest(http.MethodPost, "/sync", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), MsgSynced)

	w = httptest.NewRecorder()
	h.HandleGetMood(w, httptest.NewRequest(http.MethodGet, "/mood", nil))
	assert.Contains(t, w.Body.String(), string(domain.MoodTypeBoost))

	w = httptest.NewRecorder()
	h.HandleDisconnect(w, httptest.NewRequest(http.MethodPost, "/session/disconnect", nil))
	assert.Contains(t, w.Body.String(), MsgDisconnected)
	svc.AssertExpectations(t)
}
