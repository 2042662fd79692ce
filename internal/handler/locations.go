package handler

import (
	"net/http"

	"gkms/internal/apierror"
	"gkms/internal/dto"
	"gkms/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LocationsHandler struct{ svc service.LocationService }

func NewLocationsHandler(svc service.LocationService) *LocationsHandler {
	return &LocationsHandler{svc: svc}
}

// Create godoc
// @Summary Create a branch
// @Tags locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateLocationRequest true "Branch details"
// @Success 201 {object} dto.LocationResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/admin/locations [post]
func (h *LocationsHandler) Create(c *gin.Context) {
	var req dto.CreateLocationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *LocationsHandler) Get(c *gin.Context) {
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

func (h *LocationsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LocationsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateLocationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetLimits godoc
// @Summary Set the cash limits for a branch
// @Tags locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Branch ID"
// @Param body body dto.SetLimitsRequest true "Limit values"
// @Success 200 {object} dto.LimitsResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/admin/locations/{id}/limits [put]
func (h *LocationsHandler) SetLimits(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.SetLimitsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetLimits(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LocationsHandler) GetLimits(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetLimits(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
