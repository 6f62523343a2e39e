// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/application/ledger"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
	"github.com/budget-planner/backend/internal/integration/entrypoint/dto"
)

// sessionFromContext resolves the caller's ledger session. A false return
// means the response has already been written.
func sessionFromContext(ctx *gin.Context, sessions *ledger.Manager) (*ledger.Store, bool) {
	userID, ok := getAuthenticatedUserID(ctx)
	if !ok {
		return nil, false
	}

	store, err := sessions.Session(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to load ledger data",
		})
		return nil, false
	}

	return store, true
}

func getAuthenticatedUserID(ctx *gin.Context) (uuid.UUID, bool) {
	value, exists := ctx.Get("user_id")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Not authenticated",
			Code:  string(domainerror.ErrCodeInvalidToken),
		})
		return uuid.Nil, false
	}

	return userID, true
}

// parseIDParam parses the :id path parameter as a UUID.
func parseIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid id parameter",
		})
		return uuid.Nil, false
	}
	return id, true
}

// parseDateField parses a "YYYY-MM-DD" request field.
func parseDateField(ctx *gin.Context, value string) (time.Time, bool) {
	parsed, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
		})
		return time.Time{}, false
	}
	return parsed, true
}
