package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/legalconnect/schedule-service/internal/httperr"
	"github.com/legalconnect/schedule-service/internal/httpresp"
	"github.com/legalconnect/schedule-service/internal/middleware"
	ucAvailability "github.com/legalconnect/schedule-service/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	createUC     *ucAvailability.CreateWindow
	createBulkUC *ucAvailability.CreateBulkWindows
	updateUC     *ucAvailability.UpdateWindow
	deleteUC     *ucAvailability.DeleteWindow
	listUC       *ucAvailability.ListWindows
}

func NewAvailabilityHandler(
	createUC *ucAvailability.CreateWindow,
	createBulkUC *ucAvailability.CreateBulkWindows,
	updateUC *ucAvailability.UpdateWindow,
	deleteUC *ucAvailability.DeleteWindow,
	listUC *ucAvailability.ListWindows,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		createUC:     createUC,
		createBulkUC: createBulkUC,
		updateUC:     updateUC,
		deleteUC:     deleteUC,
		listUC:       listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAvailabilityRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"required,min=1,max=7"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Active    *bool  `json:"active"`
	Timezone  string `json:"timezone"`
}

type CreateBulkAvailabilityRequest struct {
	DayOfWeeks []int  `json:"day_of_weeks" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	Active     *bool  `json:"active"`
	Timezone   string `json:"timezone"`
}

// ======================================================
// ENDPOINTS
// ======================================================

func (h *AvailabilityHandler) Create(c *gin.Context) {
	lawyerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	w, err := h.createUC.Execute(c.Request.Context(), ucAvailability.CreateWindowInput{
		LawyerID:  lawyerID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Active:    req.Active,
		Timezone:  req.Timezone,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(201, w)
}

func (h *AvailabilityHandler) CreateBulk(c *gin.Context) {
	lawyerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBulkAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	ws, err := h.createBulkUC.Execute(c.Request.Context(), ucAvailability.CreateBulkWindowsInput{
		LawyerID:   lawyerID,
		DayOfWeeks: req.DayOfWeeks,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Active:     req.Active,
		Timezone:   req.Timezone,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(201, gin.H{"data": ws, "total": len(ws)})
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	lawyerID := c.MustGet(middleware.ContextUserID).(uint)

	windowID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_window_id", "invalid window id")
		return
	}

	var req CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	w, err := h.updateUC.Execute(c.Request.Context(), ucAvailability.UpdateWindowInput{
		WindowID:  uint(windowID),
		LawyerID:  lawyerID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Active:    req.Active,
		Timezone:  req.Timezone,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, w)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	lawyerID := c.MustGet(middleware.ContextUserID).(uint)

	windowID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_window_id", "invalid window id")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), uint(windowID), lawyerID); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"status": "deleted"})
}

func (h *AvailabilityHandler) List(c *gin.Context) {
	lawyerID := c.MustGet(middleware.ContextUserID).(uint)
	activeOnly := c.Query("active_only") == "true"

	ws, err := h.listUC.Execute(c.Request.Context(), lawyerID, activeOnly)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, ws)
}
