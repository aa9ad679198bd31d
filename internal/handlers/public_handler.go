package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/legalconnect/schedule-service/internal/httperr"
	"github.com/legalconnect/schedule-service/internal/httpresp"
	ucAppointment "github.com/legalconnect/schedule-service/internal/usecase/appointment"
	ucAvailability "github.com/legalconnect/schedule-service/internal/usecase/availability"
)

// PublicHandler serves the unauthenticated browse surface citizens use
// before booking: a lawyer's published schedule and the free slots on a
// given date.
type PublicHandler struct {
	slotsUC *ucAppointment.GetSlots
	listUC  *ucAvailability.ListWindows
}

func NewPublicHandler(
	slotsUC *ucAppointment.GetSlots,
	listUC *ucAvailability.ListWindows,
) *PublicHandler {
	return &PublicHandler{
		slotsUC: slotsUC,
		listUC:  listUC,
	}
}

func (h *PublicHandler) ListLawyerAvailability(c *gin.Context) {
	lawyerID, ok := lawyerIDParam(c)
	if !ok {
		return
	}

	ws, err := h.listUC.Execute(c.Request.Context(), lawyerID, true)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, ws)
}

func (h *PublicHandler) GetAvailableSlots(c *gin.Context) {
	lawyerID, ok := lawyerIDParam(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "the date query parameter is required")
		return
	}

	duration := intQuery(c, "duration", 0)

	out, err := h.slotsUC.Execute(c.Request.Context(), lawyerID, dateStr, duration)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, out)
}

func lawyerIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("lawyerId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_lawyer_id", "invalid lawyer id")
		return 0, false
	}
	return uint(id), true
}
