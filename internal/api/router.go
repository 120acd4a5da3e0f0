package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mfreeman/gridledger/internal/api/handler"
	"github.com/mfreeman/gridledger/internal/api/middleware"
	"github.com/mfreeman/gridledger/internal/api/response"
	"github.com/mfreeman/gridledger/internal/dependencies/verifier"
	"github.com/mfreeman/gridledger/internal/services/board"
	"github.com/mfreeman/gridledger/internal/services/delegation"
	"github.com/mfreeman/gridledger/internal/services/player"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	Verifier      verifier.Verifier
	BoardService  *board.Service
	PlayerService *player.Service
	Coordinator   *delegation.Coordinator
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	boardHandler := handler.NewBoardHandler(cfg.BoardService)
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	delegationHandler := handler.NewDelegationHandler(cfg.Coordinator)

	// Create middleware
	signatureMiddleware := middleware.Signature(cfg.Verifier)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Health check (unsigned)
	api.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
	}).Methods(http.MethodGet)

	// Reads are unsigned; anyone may observe the grid state
	api.HandleFunc("/board", boardHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{authority}", playerHandler.Get).Methods(http.MethodGet)

	// Every mutating route requires a verified signer
	signed := api.NewRoute().Subrouter()
	signed.Use(signatureMiddleware)

	signed.HandleFunc("/board", boardHandler.Initialize).Methods(http.MethodPost)
	signed.HandleFunc("/players", playerHandler.Join).Methods(http.MethodPost)
	signed.HandleFunc("/players/{authority}/move", playerHandler.Move).Methods(http.MethodPost)
	signed.HandleFunc("/players/{authority}/session-key", playerHandler.RegisterSessionKey).Methods(http.MethodPut)
	signed.HandleFunc("/players/{authority}/session-key", playerHandler.RevokeSessionKey).Methods(http.MethodDelete)
	signed.HandleFunc("/players/{authority}/delegation", delegationHandler.Delegate).Methods(http.MethodPost)
	signed.HandleFunc("/players/{authority}/delegation/commit", delegationHandler.Commit).Methods(http.MethodPost)
	signed.HandleFunc("/players/{authority}/delegation", delegationHandler.Undelegate).Methods(http.MethodDelete)

	return r
}
