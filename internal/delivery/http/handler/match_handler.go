package handler

import (
	"net/http"
	"strconv"

	"github.com/gdugdh24/studymatch-backend/internal/domain"
	"github.com/gdugdh24/studymatch-backend/internal/usecase/match"
	"github.com/gin-gonic/gin"
)

const (
	defaultPreviewLimit = 20
	maxPreviewLimit     = 100
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
	}
}

// ListMatches handles GET /matches
// @Summary List my stored suggestions, best first
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param status query string false "suggestion, pending, accepted or declined"
// @Success 200 {array} match.SuggestionView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches [get]
func (h *MatchHandler) ListMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var status *domain.MatchStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.MatchStatus(raw)
		if !s.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "invalid status",
			})
			return
		}
		status = &s
	}

	views, err := h.matchUseCase.ListSuggestions(c.Request.Context(), userID, status)
	if err != nil {
		writeError(c, err, "failed to list matches")
		return
	}

	c.JSON(http.StatusOK, views)
}

// Preview handles GET /matches/preview
// @Summary Rank every qualifying partner without storing anything
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param limit query int false "max results"
// @Success 200 {array} matching.Candidate
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/preview [get]
func (h *MatchHandler) Preview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit := defaultPreviewLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPreviewLimit {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "invalid limit",
			})
			return
		}
		limit = n
	}

	candidates, err := h.matchUseCase.Preview(c.Request.Context(), userID, limit)
	if err != nil {
		writeError(c, err, "failed to preview matches")
		return
	}

	c.JSON(http.StatusOK, candidates)
}

// Regenerate handles POST /matches/regenerate
// @Summary Regenerate my suggestions now
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Success 200 {object} match.Result
// @Failure 503 {object} ErrorResponse
// @Router /matches/regenerate [post]
func (h *MatchHandler) Regenerate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	res, err := h.matchUseCase.RegenerateForUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, "failed to regenerate matches")
		return
	}

	c.JSON(http.StatusOK, res)
}
