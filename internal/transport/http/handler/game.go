package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/ErlanBelekov/league-manager/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type gameUsecaser interface {
	List(ctx context.Context) ([]*domain.Game, error)
	Get(ctx context.Context, id int64) (*domain.Game, error)
	ListByTeam(ctx context.Context, teamID int64) ([]*domain.Game, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Game, error)
	Create(ctx context.Context, who domain.Identity, c domain.GameCandidate) (*domain.Game, error)
	Update(ctx context.Context, who domain.Identity, id int64, c domain.GameCandidate) (*domain.Game, error)
	Delete(ctx context.Context, who domain.Identity, id int64) error
}

type GameHandler struct {
	games  gameUsecaser
	logger *slog.Logger
}

func NewGameHandler(games gameUsecaser, logger *slog.Logger) *GameHandler {
	return &GameHandler{games: games, logger: logger.With("component", "game_handler")}
}

type gameRequest struct {
	Date    *time.Time `json:"date"`
	Result  *string    `json:"result"`
	TeamIDs []int64    `json:"team_ids"`
}

func (r gameRequest) candidate() domain.GameCandidate {
	return domain.GameCandidate{Date: r.Date, Result: r.Result, TeamIDs: r.TeamIDs}
}

func (h *GameHandler) List(c *gin.Context) {
	games, err := h.games.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "list games", err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(games, toGameResponse))
}

func (h *GameHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	game, err := h.games.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, "get game", err)
		return
	}
	c.JSON(http.StatusOK, toGameResponse(game))
}

// GET /games/team/:id
func (h *GameHandler) ListByTeam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	games, err := h.games.ListByTeam(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, "list games by team", err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(games, toGameResponse))
}

// GET /games/user/:id
func (h *GameHandler) ListByUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	games, err := h.games.ListByUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, "list games by user", err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(games, toGameResponse))
}

func (h *GameHandler) Create(c *gin.Context) {
	var req gameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	game, err := h.games.Create(c.Request.Context(), middleware.IdentityFrom(c), req.candidate())
	if err != nil {
		writeError(c, h.logger, "create game", err)
		return
	}
	c.JSON(http.StatusCreated, toGameResponse(game))
}

func (h *GameHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req gameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	game, err := h.games.Update(c.Request.Context(), middleware.IdentityFrom(c), id, req.candidate())
	if err != nil {
		writeError(c, h.logger, "update game", err)
		return
	}
	c.JSON(http.StatusOK, toGameResponse(game))
}

func (h *GameHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.games.Delete(c.Request.Context(), middleware.IdentityFrom(c), id); err != nil {
		writeError(c, h.logger, "delete game", err)
		return
	}
	c.Status(http.StatusNoContent)
}
