package handler

import (
	"net/http"
	"time"

	"gkms/internal/apierror"
	"gkms/internal/dto"
	"gkms/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PositionsHandler struct{ svc service.PositionService }

func NewPositionsHandler(svc service.PositionService) *PositionsHandler {
	return &PositionsHandler{svc: svc}
}

// parseDateQuery reads an optional ?date=YYYY-MM-DD query, defaulting to today.
func parseDateQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid date, expected YYYY-MM-DD"))
		return time.Time{}, false
	}
	return d, true
}

// Compute godoc
// @Summary Compute and store the daily position for a branch
// @Tags positions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ComputePositionRequest true "Branch and date"
// @Success 200 {object} dto.PositionResponse
// @Failure 400 {object} apierror.APIError
// @Failure 502 {object} apierror.APIError
// @Router /v1/admin/positions/compute [post]
func (h *PositionsHandler) Compute(c *gin.Context) {
	var req dto.ComputePositionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid location_id"))
		return
	}
	date := time.Now()
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid date, expected YYYY-MM-DD"))
			return
		}
		date = d
	}

	resp, err := h.svc.Compute(c.Request.Context(), locationID, date)
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns the stored position for a branch and date.
func (h *PositionsHandler) Get(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	date, ok := parseDateQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), locationID, date)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History returns stored positions for a branch over a date range.
func (h *PositionsHandler) History(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}

	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if raw := c.Query("from"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid from date"))
			return
		}
		from = d
	}
	if raw := c.Query("to"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid to date"))
			return
		}
		to = d
	}

	resp, err := h.svc.History(c.Request.Context(), locationID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard godoc
// @Summary Treasury dashboard for all branches on a date
// @Tags positions
// @Produce json
// @Security BearerAuth
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/admin/dashboard [get]
func (h *PositionsHandler) Dashboard(c *gin.Context) {
	date, ok := parseDateQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.Dashboard(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
