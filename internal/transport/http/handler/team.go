package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/ErlanBelekov/league-manager/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type teamUsecaser interface {
	List(ctx context.Context) ([]*domain.Team, error)
	Get(ctx context.Context, id int64) (*domain.Team, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Team, error)
	Create(ctx context.Context, who domain.Identity, c domain.TeamCandidate) (*domain.Team, error)
	Update(ctx context.Context, who domain.Identity, id int64, c domain.TeamCandidate) (*domain.Team, error)
	Delete(ctx context.Context, who domain.Identity, id int64) error
}

type TeamHandler struct {
	teams  teamUsecaser
	logger *slog.Logger
}

func NewTeamHandler(teams teamUsecaser, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{teams: teams, logger: logger.With("component", "team_handler")}
}

type teamRequest struct {
	Name      string  `json:"name"`
	CoachID   int64   `json:"coach_id"`
	PlayerIDs []int64 `json:"player_ids"`
}

func (r teamRequest) candidate() domain.TeamCandidate {
	return domain.TeamCandidate{Name: r.Name, CoachID: r.CoachID, PlayerIDs: r.PlayerIDs}
}

func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.teams.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "list teams", err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(teams, toTeamResponse))
}

func (h *TeamHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	team, err := h.teams.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, "get team", err)
		return
	}
	c.JSON(http.StatusOK, toTeamResponse(team))
}

// GET /teams/user/:id
func (h *TeamHandler) ListByUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	teams, err := h.teams.ListByUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, "list teams by user", err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(teams, toTeamResponse))
}

func (h *TeamHandler) Create(c *gin.Context) {
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	team, err := h.teams.Create(c.Request.Context(), middleware.IdentityFrom(c), req.candidate())
	if err != nil {
		writeError(c, h.logger, "create team", err)
		return
	}
	c.JSON(http.StatusCreated, toTeamResponse(team))
}

func (h *TeamHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	team, err := h.teams.Update(c.Request.Context(), middleware.IdentityFrom(c), id, req.candidate())
	if err != nil {
		writeError(c, h.logger, "update team", err)
		return
	}
	c.JSON(http.StatusOK, toTeamResponse(team))
}

func (h *TeamHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.teams.Delete(c.Request.Context(), middleware.IdentityFrom(c), id); err != nil {
		writeError(c, h.logger, "delete team", err)
		return
	}
	c.Status(http.StatusNoContent)
}
