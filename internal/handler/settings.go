package handler

import (
	"net/http"

	"gkms/internal/apierror"
	"gkms/internal/dto"
	"gkms/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct{ svc service.SettingsService }

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Update system-wide cutoff and emergency settings
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdateSettingsRequest true "Fields to change"
// @Success 200 {object} dto.SettingsResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/admin/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	adminID, ok := claimsUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), adminID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
