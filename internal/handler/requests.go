package handler

import (
	"net/http"

	"gkms/internal/apierror"
	"gkms/internal/dto"
	"gkms/internal/middleware"
	"gkms/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RequestsHandler struct{ svc service.RequestService }

func NewRequestsHandler(svc service.RequestService) *RequestsHandler {
	return &RequestsHandler{svc: svc}
}

// claimsUserID extracts the authenticated user's id from the JWT claims.
func claimsUserID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("invalid user id in token"))
		return uuid.Nil, false
	}
	return id, true
}

// claimsLocationID extracts the agent's branch from the JWT claims.
// Agents are always bound to a branch; admins are not.
func claimsLocationID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.LocationID == nil {
		c.JSON(http.StatusForbidden, apierror.New("no branch assigned to this account"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(*claims.LocationID)
	if err != nil {
		c.JSON(http.StatusForbidden, apierror.New("invalid branch in token"))
		return uuid.Nil, false
	}
	return id, true
}

// Create godoc
// @Summary Submit a cash request for the agent's branch
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateCashRequestRequest true "Requested denominations"
// @Success 201 {object} dto.CashRequestResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/requests [post]
func (h *RequestsHandler) Create(c *gin.Context) {
	var req dto.CreateCashRequestRequest
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

	resp, err := h.svc.Create(c.Request.Context(), agentID, locationID, req)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RequestsHandler) Get(c *gin.Context) {
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

// ListMine returns the requests for the agent's own branch.
func (h *RequestsHandler) ListMine(c *gin.Context) {
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

// ListPending returns all pending requests across branches.
func (h *RequestsHandler) ListPending(c *gin.Context) {
	resp, err := h.svc.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Approve godoc
// @Summary Approve a pending cash request and schedule its delivery
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param body body dto.ApproveCashRequestRequest true "Approval details"
// @Success 200 {object} dto.CashRequestResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/admin/requests/{id}/approve [post]
func (h *RequestsHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.ApproveCashRequestRequest
	if !bindAndValidate(c, &req) {
		return
	}
	adminID, ok := claimsUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Approve(c.Request.Context(), adminID, id, req)
	if err != nil {
		respondServiceError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RequestsHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	adminID, ok := claimsUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Reject(c.Request.Context(), adminID, id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyDelivery godoc
// @Summary Confirm receipt of a scheduled cash delivery
// @Tags deliveries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Delivery ID"
// @Success 200 {object} dto.CashDeliveryResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/deliveries/{id}/verify [post]
func (h *RequestsHandler) VerifyDelivery(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	agentID, ok := claimsUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.VerifyDelivery(c.Request.Context(), agentID, id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListDeliveries returns all deliveries scheduled for the agent's branch.
func (h *RequestsHandler) ListDeliveries(c *gin.Context) {
	locationID, ok := claimsLocationID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListDeliveries(c.Request.Context(), locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
