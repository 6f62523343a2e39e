// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budget-planner/backend/internal/application/ledger"
	"github.com/budget-planner/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles the derived overview endpoint.
type DashboardController struct {
	sessions *ledger.Manager
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(sessions *ledger.Manager) *DashboardController {
	return &DashboardController{
		sessions: sessions,
	}
}

// Get handles GET /dashboard requests. The whole view model is recomputed
// from the current collections on every call; nothing is cached between
// mutations.
func (c *DashboardController) Get(ctx *gin.Context) {
	store, ok := sessionFromContext(ctx, c.sessions)
	if !ok {
		return
	}

	overview := store.Overview(time.Now().UTC())

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(overview))
}
