package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gkms/internal/apierror"
	"gkms/internal/dto"
	"gkms/internal/model"
	"gkms/internal/repository"
	"gkms/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RequestService interface {
	Create(ctx context.Context, agentID, locationID uuid.UUID, req dto.CreateCashRequestRequest) (*dto.CashRequestResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CashRequestResponse, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID) ([]dto.CashRequestResponse, error)
	ListPending(ctx context.Context) ([]dto.CashRequestResponse, error)
	Approve(ctx context.Context, adminID, requestID uuid.UUID, req dto.ApproveCashRequestRequest) (*dto.CashRequestResponse, error)
	Reject(ctx context.Context, adminID, requestID uuid.UUID) (*dto.CashRequestResponse, error)
	VerifyDelivery(ctx context.Context, agentID, deliveryID uuid.UUID) (*dto.CashDeliveryResponse, error)
	ListDeliveries(ctx context.Context, locationID uuid.UUID) ([]dto.CashDeliveryResponse, error)
}

type requestService struct {
	requests   repository.CashRequestRepository
	deliveries repository.CashDeliveryRepository
	users      repository.UserRepository
	dispatcher *worker.Dispatcher
}

func NewRequestService(
	requests repository.CashRequestRepository,
	deliveries repository.CashDeliveryRepository,
	users repository.UserRepository,
	dispatcher *worker.Dispatcher,
) RequestService {
	return &requestService{
		requests:   requests,
		deliveries: deliveries,
		users:      users,
		dispatcher: dispatcher,
	}
}

// denominationFaces maps request field names to face values, used to turn
// submitted amounts into note counts.
var denominationFaces = []struct {
	field string
	face  int64
	value func(*dto.DenominationValues) int64
	count func(*model.CashRequest) *int
}{
	{"jmd_5000", 5000, func(d *dto.DenominationValues) int64 { return d.JMD5000 }, func(r *model.CashRequest) *int { return &r.JMD5000 }},
	{"jmd_2000", 2000, func(d *dto.DenominationValues) int64 { return d.JMD2000 }, func(r *model.CashRequest) *int { return &r.JMD2000 }},
	{"jmd_1000", 1000, func(d *dto.DenominationValues) int64 { return d.JMD1000 }, func(r *model.CashRequest) *int { return &r.JMD1000 }},
	{"jmd_500", 500, func(d *dto.DenominationValues) int64 { return d.JMD500 }, func(r *model.CashRequest) *int { return &r.JMD500 }},
	{"jmd_100", 100, func(d *dto.DenominationValues) int64 { return d.JMD100 }, func(r *model.CashRequest) *int { return &r.JMD100 }},
	{"jmd_50", 50, func(d *dto.DenominationValues) int64 { return d.JMD50 }, func(r *model.CashRequest) *int { return &r.JMD50 }},
	{"usd_100", 100, func(d *dto.DenominationValues) int64 { return d.USD100 }, func(r *model.CashRequest) *int { return &r.USD100 }},
	{"usd_50", 50, func(d *dto.DenominationValues) int64 { return d.USD50 }, func(r *model.CashRequest) *int { return &r.USD50 }},
	{"usd_20", 20, func(d *dto.DenominationValues) int64 { return d.USD20 }, func(r *model.CashRequest) *int { return &r.USD20 }},
	{"usd_10", 10, func(d *dto.DenominationValues) int64 { return d.USD10 }, func(r *model.CashRequest) *int { return &r.USD10 }},
	{"usd_1", 1, func(d *dto.DenominationValues) int64 { return d.USD1 }, func(r *model.CashRequest) *int { return &r.USD1 }},
}

// applyDenominations converts submitted amounts into note counts on the
// request. A value that is not an exact multiple of its face produces a
// field-level validation error and nothing is persisted.
func applyDenominations(values *dto.DenominationValues, req *model.CashRequest) error {
	fields := make(map[string]string)
	for _, d := range denominationFaces {
		v := d.value(values)
		if v < 0 {
			fields[d.field] = "must not be negative"
			continue
		}
		if v%d.face != 0 {
			fields[d.field] = fmt.Sprintf("value must be a multiple of $%d", d.face)
			continue
		}
		*d.count(req) = int(v / d.face)
	}
	if len(fields) > 0 {
		return apierror.NewValidation(fields)
	}
	if !req.HasDenominations() {
		return apierror.NewValidation(map[string]string{
			"denominations": "please specify at least one denomination",
		})
	}
	return nil
}

func (s *requestService) Create(ctx context.Context, agentID, locationID uuid.UUID, req dto.CreateCashRequestRequest) (*dto.CashRequestResponse, error) {
	deliveryDate := truncateToDate(time.Now().AddDate(0, 0, 1))
	if req.DeliveryDate != "" {
		d, err := time.Parse("2006-01-02", req.DeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("invalid delivery_date: %w", err)
		}
		deliveryDate = d
	}

	requestType := req.RequestType
	if requestType == "" {
		requestType = model.RequestTypeRegular
	}

	cashReq := &model.CashRequest{
		LocationID:   locationID,
		RequestedBy:  agentID,
		RequestDate:  time.Now(),
		DeliveryDate: deliveryDate,
		Status:       model.RequestStatusPending,
		RequestType:  requestType,
	}
	if err := applyDenominations(&req.Denominations, cashReq); err != nil {
		return nil, err
	}
	cashReq.ComputeTotals()

	if err := s.requests.Create(ctx, cashReq); err != nil {
		return nil, err
	}
	return requestToResponse(cashReq), nil
}

func (s *requestService) Get(ctx context.Context, id uuid.UUID) (*dto.CashRequestResponse, error) {
	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cash request not found")
	}
	return requestToResponse(req), nil
}

func (s *requestService) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]dto.CashRequestResponse, error) {
	reqs, err := s.requests.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return requestsToResponses(reqs), nil
}

func (s *requestService) ListPending(ctx context.Context) ([]dto.CashRequestResponse, error) {
	reqs, err := s.requests.ListByStatus(ctx, model.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	return requestsToResponses(reqs), nil
}

// Approve flips a pending request to approved and creates its delivery in
// one transaction. A failure anywhere leaves the request pending with no
// delivery row.
func (s *requestService) Approve(ctx context.Context, adminID, requestID uuid.UUID, req dto.ApproveCashRequestRequest) (*dto.CashRequestResponse, error) {
	cashReq, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, errors.New("cash request not found")
	}
	if cashReq.Status != model.RequestStatusPending {
		return nil, fmt.Errorf("cannot approve a %s request", cashReq.Status)
	}

	deliveryDate := cashReq.DeliveryDate
	if req.DeliveryDate != "" {
		d, err := time.Parse("2006-01-02", req.DeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("invalid delivery_date: %w", err)
		}
		deliveryDate = d
	}

	// Totals are always recomputed before persisting
	cashReq.ComputeTotals()

	// Admin may approve less than what was requested; the delivery
	// carries the approved amounts, the request keeps its totals.
	jmdAmount := cashReq.TotalJMD
	usdAmount := cashReq.TotalUSD
	fields := make(map[string]string)
	if req.ApprovedJMDAmount != nil {
		if req.ApprovedJMDAmount.IsNegative() {
			fields["approved_jmd_amount"] = "must not be negative"
		}
		jmdAmount = *req.ApprovedJMDAmount
	}
	if req.ApprovedUSDAmount != nil {
		if req.ApprovedUSDAmount.IsNegative() {
			fields["approved_usd_amount"] = "must not be negative"
		}
		usdAmount = *req.ApprovedUSDAmount
	}
	if len(fields) > 0 {
		return nil, apierror.NewValidation(fields)
	}

	now := time.Now()
	cashReq.Status = model.RequestStatusApproved
	cashReq.ApprovedBy = &adminID
	cashReq.ApprovedDate = &now

	var delivery model.CashDelivery
	txErr := runTx(ctx, s.requests.DB(), func(tx *gorm.DB) error {
		if err := s.requests.UpdateTx(tx, cashReq); err != nil {
			return err
		}
		requestRef := cashReq.ID
		delivery = model.CashDelivery{
			LocationID:    cashReq.LocationID,
			CashRequestID: &requestRef,
			Date:          deliveryDate,
			JMDAmount:     jmdAmount,
			USDAmount:     usdAmount,
			Verified:      false,
		}
		return s.deliveries.CreateTx(tx, &delivery)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Courier notification is best-effort, retried by the worker pool
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueCourierDispatch(ctx, map[string]interface{}{
			"request_id": cashReq.ID.String(),
		})
	}

	cashReq.Delivery = &delivery
	return requestToResponse(cashReq), nil
}

func (s *requestService) Reject(ctx context.Context, adminID, requestID uuid.UUID) (*dto.CashRequestResponse, error) {
	cashReq, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, errors.New("cash request not found")
	}
	if cashReq.Status != model.RequestStatusPending {
		return nil, fmt.Errorf("cannot reject a %s request", cashReq.Status)
	}

	now := time.Now()
	cashReq.Status = model.RequestStatusRejected
	cashReq.ApprovedBy = &adminID
	cashReq.ApprovedDate = &now
	cashReq.ComputeTotals()

	if err := s.requests.Update(ctx, cashReq); err != nil {
		return nil, err
	}
	return requestToResponse(cashReq), nil
}

// VerifyDelivery confirms physical receipt. Only an agent assigned to the
// delivery's own location may verify it.
func (s *requestService) VerifyDelivery(ctx context.Context, agentID, deliveryID uuid.UUID) (*dto.CashDeliveryResponse, error) {
	delivery, err := s.deliveries.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, errors.New("delivery not found")
	}
	if delivery.Verified {
		return nil, errors.New("delivery is already verified")
	}

	agent, err := s.users.FindByID(ctx, agentID)
	if err != nil {
		return nil, errors.New("agent not found")
	}
	if agent.LocationID == nil || *agent.LocationID != delivery.LocationID {
		return nil, errors.New("only an agent at the receiving location may verify this delivery")
	}

	now := time.Now()
	delivery.Verified = true
	delivery.VerifiedBy = &agentID
	delivery.VerifiedAt = &now
	if err := s.deliveries.Update(ctx, delivery); err != nil {
		return nil, err
	}

	// Move the originating request to delivered
	if delivery.CashRequestID != nil {
		if cashReq, err := s.requests.FindByID(ctx, *delivery.CashRequestID); err == nil &&
			cashReq.Status == model.RequestStatusApproved {
			cashReq.Status = model.RequestStatusDelivered
			cashReq.ComputeTotals()
			if err := s.requests.Update(ctx, cashReq); err != nil {
				log.Error().
					Err(err).
					Str("request_id", cashReq.ID.String()).
					Str("delivery_id", delivery.ID.String()).
					Msg("delivery verified but request could not be marked delivered")
			}
		}
	}

	return deliveryToResponse(delivery), nil
}

func (s *requestService) ListDeliveries(ctx context.Context, locationID uuid.UUID) ([]dto.CashDeliveryResponse, error) {
	deliveries, err := s.deliveries.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashDeliveryResponse, 0, len(deliveries))
	for i := range deliveries {
		out = append(out, *deliveryToResponse(&deliveries[i]))
	}
	return out, nil
}

func requestsToResponses(reqs []model.CashRequest) []dto.CashRequestResponse {
	out := make([]dto.CashRequestResponse, 0, len(reqs))
	for i := range reqs {
		out = append(out, *requestToResponse(&reqs[i]))
	}
	return out
}

func requestToResponse(r *model.CashRequest) *dto.CashRequestResponse {
	resp := &dto.CashRequestResponse{
		ID:           r.ID.String(),
		LocationID:   r.LocationID.String(),
		RequestDate:  r.RequestDate.Format(time.RFC3339),
		DeliveryDate: r.DeliveryDate.Format("2006-01-02"),
		Status:       r.Status,
		RequestType:  r.RequestType,
		JMD5000:      r.JMD5000,
		JMD2000:      r.JMD2000,
		JMD1000:      r.JMD1000,
		JMD500:       r.JMD500,
		JMD100:       r.JMD100,
		JMD50:        r.JMD50,
		USD100:       r.USD100,
		USD50:        r.USD50,
		USD20:        r.USD20,
		USD10:        r.USD10,
		USD1:         r.USD1,
		TotalJMD:     r.TotalJMD,
		TotalUSD:     r.TotalUSD,
	}
	if r.ApprovedBy != nil {
		v := r.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if r.ApprovedDate != nil {
		v := r.ApprovedDate.Format(time.RFC3339)
		resp.ApprovedDate = &v
	}
	if r.Delivery != nil {
		resp.Delivery = deliveryToResponse(r.Delivery)
	}
	return resp
}

func deliveryToResponse(d *model.CashDelivery) *dto.CashDeliveryResponse {
	resp := &dto.CashDeliveryResponse{
		ID:         d.ID.String(),
		LocationID: d.LocationID.String(),
		Date:       d.Date.Format("2006-01-02"),
		JMDAmount:  d.JMDAmount,
		USDAmount:  d.USDAmount,
		Verified:   d.Verified,
	}
	if d.VerifiedBy != nil {
		v := d.VerifiedBy.String()
		resp.VerifiedBy = &v
	}
	if d.VerifiedAt != nil {
		v := d.VerifiedAt.Format(time.RFC3339)
		resp.VerifiedAt = &v
	}
	return resp
}
