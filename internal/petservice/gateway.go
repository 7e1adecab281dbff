package petservice

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/logger"
)

// Gateway exposes any Client over the HTTP contract HTTPClient speaks
type Gateway struct {
	backend Client
	apiKey  string
}

// NewGateway creates a gateway. An empty apiKey disables authentication.
func NewGateway(backend Client, apiKey string) *Gateway {
	return &Gateway{backend: backend, apiKey: apiKey}
}

// Routes returns the gateway router
func (g *Gateway) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)

	r.Get(RouteHealth, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		if g.apiKey != "" {
			r.Use(g.authMiddleware)
		}
		r.Post(RoutePet, g.handleCreatePet)
		r.Get(RoutePet, g.handleGetPet)
		r.Get(RouteCoins, g.handleGetCoins)
		r.Post(RouteCoins, g.handleUpdateCoins)
		r.Post(RouteAction, g.handleAction)
		r.Post(RouteGlasses, g.handleMintGlasses)
	})

	return r
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = logger.GenerateRequestID()
		}
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}

func (g *Gateway) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(HeaderAPIKey)
		if subtle.ConstantTimeCompare([]byte(key), []byte(g.apiKey)) != 1 {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid API key", Code: CodeUnauthorized})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, status := codeForError(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error(LogMsgGatewayError, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

func (g *Gateway) handleCreatePet(w http.ResponseWriter, r *http.Request) {
	var req createPetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrInvalidInput)
		return
	}
	pet, err := g.backend.CreatePet(r.Context(), chi.URLParam(r, "owner"), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, pet)
}

func (g *Gateway) handleGetPet(w http.ResponseWriter, r *http.Request) {
	pet, err := g.backend.GetPet(r.Context(), chi.URLParam(r, "owner"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if pet == nil {
		writeError(w, r, domain.ErrPetNotFound)
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

func (g *Gateway) handleGetCoins(w http.ResponseWriter, r *http.Request) {
	coins, err := g.backend.GetCoins(r.Context(), chi.URLParam(r, "owner"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coinsResponse{Coins: coins})
}

func (g *Gateway) handleUpdateCoins(w http.ResponseWriter, r *http.Request) {
	var req updateCoinsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrInvalidInput)
		return
	}
	coins, err := g.backend.UpdateCoins(r.Context(), chi.URLParam(r, "owner"), req.Delta)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coinsResponse{Coins: coins})
}

func (g *Gateway) handleAction(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseActionKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	pet, err := Perform(r.Context(), g.backend, chi.URLParam(r, "owner"), kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

func (g *Gateway) handleMintGlasses(w http.ResponseWriter, r *http.Request) {
	pet, err := g.backend.MintGlasses(r.Context(), chi.URLParam(r, "owner"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pet)
}
