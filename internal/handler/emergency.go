package handler

import (
	"net/http"

	"gkms/internal/apierror"
	"gkms/internal/dto"
	"gkms/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EmergencyHandler struct{ svc service.EmergencyService }

func NewEmergencyHandler(svc service.EmergencyService) *EmergencyHandler {
	return &EmergencyHandler{svc: svc}
}

// Request godoc
// @Summary Request emergency access for a late EOD submission
// @Tags emergency
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateEmergencyAccessRequest true "Justification"
// @Success 201 {object} dto.EmergencyAccessResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/emergency [post]
func (h *EmergencyHandler) Request(c *gin.Context) {
	var req dto.CreateEmergencyAccessRequest
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
	resp, err := h.svc.Request(c.Request.Context(), agentID, locationID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Review godoc
// @Summary Approve or deny an emergency access request
// @Tags emergency
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param body body dto.ReviewEmergencyAccessRequest true "Decision"
// @Success 200 {object} dto.EmergencyAccessResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/admin/emergency/{id}/review [post]
func (h *EmergencyHandler) Review(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.ReviewEmergencyAccessRequest
	if !bindAndValidate(c, &req) {
		return
	}
	adminID, ok := claimsUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Review(c.Request.Context(), adminID, id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmergencyHandler) ListPending(c *gin.Context) {
	resp, err := h.svc.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMine returns the agent's own emergency access history.
func (h *EmergencyHandler) ListMine(c *gin.Context) {
	agentID, ok := claimsUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListByAgent(c.Request.Context(), agentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Window godoc
// @Summary Report whether the agent may submit right now
// @Tags emergency
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SubmissionWindowResponse
// @Router /v1/eod/window [get]
func (h *EmergencyHandler) Window(c *gin.Context) {
	agentID, ok := claimsUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.SubmissionWindow(c.Request.Context(), agentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
