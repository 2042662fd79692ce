package handler

import (
	"net/http"

	"gkms/internal/apierror"
	"gkms/internal/dto"
	"gkms/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EODHandler struct {
	svc       service.EODService
	emergency service.EmergencyService
}

func NewEODHandler(svc service.EODService, emergency service.EmergencyService) *EODHandler {
	return &EODHandler{svc: svc, emergency: emergency}
}

// Submit godoc
// @Summary Submit or resubmit the end-of-day reconciliation
// @Tags eod
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SubmitEODRequest true "Reconciliation data"
// @Success 200 {object} dto.EODReportResponse
// @Failure 403 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/eod [post]
func (h *EODHandler) Submit(c *gin.Context) {
	var req dto.SubmitEODRequest
	if !bindAndValidate(c, &req) {
		return
	}
	agentID, ok := claimsUserID(c)
	if !ok {
		return
	}
	locationID, ok := claimsLocationID(c)
	if !ok {
		return
	}

	// Submissions outside the cutoff window require an active emergency grant
	window, err := h.emergency.SubmissionWindow(c.Request.Context(), agentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	if !window.Open && !window.EmergencyAccess {
		c.JSON(http.StatusForbidden, apierror.New(window.Reason))
		return
	}

	resp, err := h.svc.Submit(c.Request.Context(), agentID, locationID, req)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EODHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMine returns the reconciliation history for the agent's branch.
func (h *EODHandler) ListMine(c *gin.Context) {
	locationID, ok := claimsLocationID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListByLocation(c.Request.Context(), locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListByDate returns all branches' reports for a date (admin review).
func (h *EODHandler) ListByDate(c *gin.Context) {
	date, ok := parseDateQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListByDate(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportPDF godoc
// @Summary Download an EOD report as PDF
// @Tags eod
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {file} file
// @Failure 404 {object} apierror.APIError
// @Router /v1/admin/eod/{id}/pdf [get]
func (h *EODHandler) ExportPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	path, err := h.svc.ExportPDF(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, "eod_report.pdf")
}
