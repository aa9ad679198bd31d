package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/legalconnect/schedule-service/internal/httperr"
	"github.com/legalconnect/schedule-service/internal/httpresp"
	"github.com/legalconnect/schedule-service/internal/middleware"
	ucAppointment "github.com/legalconnect/schedule-service/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC   *ucAppointment.CreateAppointment
	confirmUC  *ucAppointment.ConfirmAppointment
	rejectUC   *ucAppointment.RejectAppointment
	cancelUC   *ucAppointment.CancelAppointment
	completeUC *ucAppointment.CompleteAppointment
	rateUC     *ucAppointment.RateAppointment
	listUC     *ucAppointment.ListAppointments
	getUC      *ucAppointment.GetAppointment
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	rejectUC *ucAppointment.RejectAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	rateUC *ucAppointment.RateAppointment,
	listUC *ucAppointment.ListAppointments,
	getUC *ucAppointment.GetAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:   createUC,
		confirmUC:  confirmUC,
		rejectUC:   rejectUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
		rateUC:     rateUC,
		listUC:     listUC,
		getUC:      getUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	LawyerID         uint   `json:"lawyer_id" binding:"required"`
	Date             string `json:"date" binding:"required"` // YYYY-MM-DD
	Time             string `json:"time" binding:"required"` // HH:mm
	DurationMin      int    `json:"duration_minutes"`
	ConsultationType string `json:"consultation_type"`
	MeetingLocation  string `json:"meeting_location"`
	Description      string `json:"description"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type RateRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ======================================================
// ENDPOINTS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	citizenID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateInput{
		CitizenID:        citizenID,
		LawyerID:         req.LawyerID,
		Date:             req.Date,
		Time:             req.Time,
		DurationMin:      req.DurationMin,
		ConsultationType: req.ConsultationType,
		MeetingLocation:  req.MeetingLocation,
		Description:      req.Description,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(201, ap)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	in := ucAppointment.ListInput{
		Status: c.Query("status"),
		Limit:  intQuery(c, "limit", 20),
		Offset: intQuery(c, "offset", 0),
	}

	var (
		out *ucAppointment.ListOutput
		err error
	)
	if role == middleware.RoleLawyer {
		out, err = h.listUC.ForLawyer(c.Request.Context(), actorID, in)
	} else {
		out, err = h.listUC.ForCitizen(c.Request.Context(), actorID, in)
	}
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	isLawyer := c.GetString(middleware.ContextUserRole) == middleware.RoleLawyer

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	detail, err := h.getUC.Execute(c.Request.Context(), id, actorID, isLawyer)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, detail)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	lawyerID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), id, lawyerID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reject(c *gin.Context) {
	lawyerID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "reason_required", "a rejection reason is required")
		return
	}

	ap, err := h.rejectUC.Execute(c.Request.Context(), id, lawyerID, req.Reason)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	isLawyer := c.GetString(middleware.ContextUserRole) == middleware.RoleLawyer

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancelUC.Execute(c.Request.Context(), id, actorID, isLawyer, req.Reason)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	lawyerID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), id, lawyerID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Rate(c *gin.Context) {
	citizenID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "rating must be between 1 and 5")
		return
	}

	ap, err := h.rateUC.Execute(c.Request.Context(), id, citizenID, req.Rating, req.Comment)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// HELPERS
// ======================================================

func appointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "invalid appointment id")
		return 0, false
	}
	return uint(id), true
}

func intQuery(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
