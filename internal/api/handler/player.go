package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mfreeman/gridledger/internal/api/middleware"
	"github.com/mfreeman/gridledger/internal/api/request"
	"github.com/mfreeman/gridledger/internal/api/response"
	"github.com/mfreeman/gridledger/internal/model"
	"github.com/mfreeman/gridledger/internal/services/player"
)

// PlayerHandler handles player endpoints
type PlayerHandler struct {
	playerService *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerService *player.Service) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// authorityVar parses the {authority} path variable
func authorityVar(r *http.Request) (model.Identity, error) {
	authority, err := model.ParseIdentity(mux.Vars(r)["authority"])
	if err != nil {
		return model.Identity{}, NewInvalidRequestError("malformed authority")
	}
	return authority, nil
}

// Join handles POST /api/v1/players
func (h *PlayerHandler) Join(w http.ResponseWriter, r *http.Request) {
	signer := middleware.MustGetSigner(r.Context())

	p, err := h.playerService.Join(r.Context(), signer)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(p))
}

// Get handles GET /api/v1/players/{authority}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	authority, err := authorityVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.playerService.Get(r.Context(), authority)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Move handles POST /api/v1/players/{authority}/move
func (h *PlayerHandler) Move(w http.ResponseWriter, r *http.Request) {
	signer := middleware.MustGetSigner(r.Context())

	authority, err := authorityVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	p, err := h.playerService.Move(r.Context(), signer, authority, req.DX, req.DY)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// RegisterSessionKey handles PUT /api/v1/players/{authority}/session-key
func (h *PlayerHandler) RegisterSessionKey(w http.ResponseWriter, r *http.Request) {
	signer := middleware.MustGetSigner(r.Context())

	authority, err := authorityVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.RegisterSessionKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	sessionKey, err := model.ParseIdentity(req.SessionKey)
	if err != nil {
		WriteError(w, NewInvalidRequestError("malformed session_key"))
		return
	}

	p, err := h.playerService.RegisterSessionKey(r.Context(), signer, authority, sessionKey)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// RevokeSessionKey handles DELETE /api/v1/players/{authority}/session-key
func (h *PlayerHandler) RevokeSessionKey(w http.ResponseWriter, r *http.Request) {
	signer := middleware.MustGetSigner(r.Context())

	authority, err := authorityVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.playerService.RevokeSessionKey(r.Context(), signer, authority)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}
