// Admin moderation: release reservations and remove contributions on
// behalf of guests who cannot do it themselves.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type moderationCancelRequest struct {
	ReservationID string `json:"reservation_id"`
}

// AdminCancelReservation handles POST /api/admin/moderation/cancel-reservation.
// Unlike the guest path there is no name check.
func AdminCancelReservation(c *gin.Context) {
	var req moderationCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ReservationID == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	cancelled, err := Store(c).CancelReservation(c.Request.Context(), req.ReservationID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "reservation": cancelled})
}

type moderationDeleteRequest struct {
	ContributionID string `json:"contribution_id"`
}

// AdminDeleteContribution handles POST /api/admin/moderation/delete-contribution.
func AdminDeleteContribution(c *gin.Context) {
	var req moderationDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ContributionID == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := Store(c).DeleteContribution(c.Request.Context(), req.ContributionID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
