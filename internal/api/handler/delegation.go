package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mfreeman/gridledger/internal/api/middleware"
	"github.com/mfreeman/gridledger/internal/api/request"
	"github.com/mfreeman/gridledger/internal/api/response"
	"github.com/mfreeman/gridledger/internal/model"
	"github.com/mfreeman/gridledger/internal/services/delegation"
)

// DelegationHandler handles delegation lifecycle endpoints. All of them are
// owner-scoped: only the player's authority may move its write-authority
// around, the session key's capability ends at movement.
type DelegationHandler struct {
	coordinator *delegation.Coordinator
}

// NewDelegationHandler creates a new delegation handler
func NewDelegationHandler(coordinator *delegation.Coordinator) *DelegationHandler {
	return &DelegationHandler{
		coordinator: coordinator,
	}
}

// ownerAuthority parses the {authority} path variable and verifies the
// signer is that authority
func ownerAuthority(r *http.Request) (model.Identity, error) {
	authority, err := authorityVar(r)
	if err != nil {
		return model.Identity{}, err
	}
	if middleware.MustGetSigner(r.Context()) != authority {
		return model.Identity{}, model.ErrUnauthorized
	}
	return authority, nil
}

// Delegate handles POST /api/v1/players/{authority}/delegation
func (h *DelegationHandler) Delegate(w http.ResponseWriter, r *http.Request) {
	authority, err := ownerAuthority(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.DelegateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	p, err := h.coordinator.Delegate(r.Context(), authority, req.Venue)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Commit handles POST /api/v1/players/{authority}/delegation/commit
func (h *DelegationHandler) Commit(w http.ResponseWriter, r *http.Request) {
	authority, err := ownerAuthority(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.coordinator.Commit(r.Context(), authority)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Undelegate handles DELETE /api/v1/players/{authority}/delegation
func (h *DelegationHandler) Undelegate(w http.ResponseWriter, r *http.Request) {
	authority, err := ownerAuthority(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.coordinator.Undelegate(r.Context(), authority)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}
