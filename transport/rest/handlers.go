package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/service"
)

const defaultLeaderboardLimit = 10

type createGameRequest struct {
	Name string `json:"name"`
}

type joinGameRequest struct {
	PlayerID string `json:"player_id"`
}

type makeMoveRequest struct {
	PlayerID string `json:"player_id"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleRegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterPlayerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		that.respondError(w, apperror.ErrValidation)
		return
	}

	player, err := that.players.Register(r.Context(), input)
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.respondJSON(w, http.StatusCreated, player)
}

func (that *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := that.players.GetByID(r.Context(), chi.URLParam(r, "playerID"))
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.respondJSON(w, http.StatusOK, player)
}

func (that *Server) handleGetPlayerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := that.stats.GetByPlayerID(r.Context(), chi.URLParam(r, "playerID"))
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.respondJSON(w, http.StatusOK, stats)
}

func (that *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			that.respondError(w, apperror.ErrValidation)
			return
		}
	}

	game, err := that.registry.CreateGame(r.Context(), req.Name)
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.respondJSON(w, http.StatusCreated, game)
}

func (that *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := that.registry.ListGames(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.respondJSON(w, http.StatusOK, games)
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.registry.GetGameByID(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.respondJSON(w, http.StatusOK, game)
}

func (that *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.registry.DeleteGame(r.Context(), chi.URLParam(r, "gameID")); err != nil {
		that.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	var req joinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.respondError(w, apperror.ErrValidation)
		return
	}

	game, err := that.registry.JoinGame(r.Context(), chi.URLParam(r, "gameID"), req.PlayerID)
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.respondJSON(w, http.StatusOK, game)
}

func (that *Server) handleMakeMove(w http.ResponseWriter, r *http.Request) {
	var req makeMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.respondError(w, apperror.ErrValidation)
		return
	}

	game, move, err := that.registry.MakeMove(r.Context(), chi.URLParam(r, "gameID"), req.PlayerID, req.Row, req.Col)
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.respondJSON(w, http.StatusOK, map[string]any{
		"game": game,
		"move": move,
	})
}

func (that *Server) handleGetValidMoves(w http.ResponseWriter, r *http.Request) {
	cells, err := that.registry.GetValidMoves(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.respondJSON(w, http.StatusOK, cells)
}

func (that *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			that.respondError(w, apperror.ErrValidation)
			return
		}
		limit = parsed
	}

	leaderboard, err := that.stats.Leaderboard(r.Context(), limit)
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.respondJSON(w, http.StatusOK, leaderboard)
}

func (that *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *Server) respondError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
	}

	that.respondJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFromError maps the error vocabulary to HTTP status codes. State and
// occupancy conflicts report 409, turn violations 403, bad coordinates and
// malformed input 400; anything unrecognized is a 500.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound),
		errors.Is(err, apperror.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameNotStarted),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrGameInProgress),
		errors.Is(err, apperror.ErrGameFull),
		errors.Is(err, apperror.ErrAlreadyJoined),
		errors.Is(err, apperror.ErrCellOccupied):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrOutOfBounds),
		errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
