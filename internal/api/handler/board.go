package handler

import (
	"net/http"

	"github.com/mfreeman/gridledger/internal/api/middleware"
	"github.com/mfreeman/gridledger/internal/api/response"
	"github.com/mfreeman/gridledger/internal/services/board"
)

// BoardHandler handles board endpoints
type BoardHandler struct {
	boardService *board.Service
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(boardService *board.Service) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// Initialize handles POST /api/v1/board
func (h *BoardHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	signer := middleware.MustGetSigner(r.Context())

	b, err := h.boardService.Initialize(r.Context(), signer)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.BoardFromModel(b))
}

// Get handles GET /api/v1/board
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.boardService.Get(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BoardFromModel(b))
}
