package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/game"
	"github.com/osse101/PixelPet_Go/internal/qte"
)

// PetHandler serves the session, pet and play challenge commands
type PetHandler struct {
	service game.Service
}

// NewPetHandler creates a PetHandler
func NewPetHandler(service game.Service) *PetHandler {
	return &PetHandler{service: service}
}

// ConnectRequest binds a wallet identity to the session
type ConnectRequest struct {
	Identity string `json:"identity" validate:"required,max=128,excludesall=/?#"`
}

// CreatePetRequest names a new pet
type CreatePetRequest struct {
	Name string `json:"name" validate:"required,max=32,petname"`
}

type actionParams struct {
	Kind string `validate:"required,action"`
}

// ChallengeResponse reports how a hit was judged
type ChallengeResponse struct {
	Result    qte.Result `json:"result"`
	Message   string     `json:"message"`
	ElapsedMS int64      `json:"elapsedMs"`
	TargetMS  int64      `json:"targetMs"`
	Error     string     `json:"error,omitempty"`
}

// HandleConnect binds the identity and syncs it
func (h *PetHandler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	var req ConnectRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Connect"); err != nil {
		return
	}

	if err := h.service.Connect(r.Context(), req.Identity); err != nil {
		respondServiceError(w, r, "Connect", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgConnected, Data: h.service.Snapshot()})
}

// HandleDisconnect resets the session to defaults
func (h *PetHandler) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Disconnect(r.Context()); err != nil {
		respondServiceError(w, r, "Disconnect", err)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: MsgDisconnected})
}

// HandleGetState returns the current snapshot
func (h *PetHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Snapshot())
}

// HandleSync pulls the remote pet and balance
func (h *PetHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Sync(r.Context()); err != nil {
		respondServiceError(w, r, "Sync", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgSynced, Data: h.service.Snapshot().Game})
}

// HandleCreatePet hatches a pet for the connected identity
func (h *PetHandler) HandleCreatePet(w http.ResponseWriter, r *http.Request) {
	var req CreatePetRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create pet"); err != nil {
		return
	}

	state, err := h.service.CreatePet(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, r, "Create pet", err)
		return
	}
	respondJSON(w, http.StatusCreated, state)
}

// HandlePerformAction runs the care action named in the path
func (h *PetHandler) HandlePerformAction(w http.ResponseWriter, r *http.Request) {
	params := actionParams{Kind: chi.URLParam(r, "kind")}
	if params.Kind == string(domain.ActionPlay) {
		respondError(w, http.StatusBadRequest, ErrMsgPlayNeedsChallenge)
		return
	}
	if err := ValidateStruct(params); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidActionKind)
		return
	}

	state, err := h.service.PerformAction(r.Context(), domain.ActionKind(params.Kind))
	if err != nil {
		respondServiceError(w, r, "Perform action", err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// HandleMintGlasses buys the cool glasses
func (h *PetHandler) HandleMintGlasses(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.MintGlasses(r.Context())
	if err != nil {
		respondServiceError(w, r, "Mint glasses", err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// HandleStartChallenge arms the play challenge
func (h *PetHandler) HandleStartChallenge(w http.ResponseWriter, r *http.Request) {
	if err := h.service.StartPlayChallenge(r.Context()); err != nil {
		respondServiceError(w, r, "Start challenge", err)
		return
	}
	respondJSON(w, http.StatusAccepted, DataResponse{Message: MsgChallengeStarted, Data: h.service.Snapshot().Challenge})
}

// HandleHitChallenge submits the player's hit. A resolved challenge whose play action failed answers 502
// with the resolution in the body.
func (h *PetHandler) HandleHitChallenge(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.HitPlayChallenge(r.Context())
	if res.Result == "" {
		respondServiceError(w, r, "Hit challenge", err)
		return
	}

	body := ChallengeResponse{
		Result:    res.Result,
		Message:   res.Result.Message(),
		ElapsedMS: res.Elapsed.Milliseconds(),
		TargetMS:  res.Target.Milliseconds(),
	}
	status := http.StatusOK
	if err != nil {
		status, body.Error = userError(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
	}
	respondJSON(w, status, body)
}

// HandleCancelChallenge dismisses the challenge
func (h *PetHandler) HandleCancelChallenge(w http.ResponseWriter, r *http.Request) {
	if h.service.CancelPlayChallenge(r.Context()) {
		respondJSON(w, http.StatusOK, MessageResponse{Message: MsgChallengeCancelled})
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: MsgNoChallenge})
}

// HandleGetMood returns the daily mood
func (h *PetHandler) HandleGetMood(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Mood())
}
