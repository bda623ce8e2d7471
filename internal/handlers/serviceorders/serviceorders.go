package serviceorders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/dto"
	serviceorderservice "github.com/settleflow/settleflow/internal/service/serviceorderservice"
	"github.com/settleflow/settleflow/pkg/auth"
	"github.com/settleflow/settleflow/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, buyerID int, in serviceorderservice.CreateServiceOrderInput) (*domain.ServiceOrder, error)
	ListByBuyer(ctx context.Context, buyerID int) ([]domain.ServiceOrder, error)
	Apply(ctx context.Context, userID, id int, action serviceorderservice.Action) (*domain.ServiceOrder, error)
	RequestRevision(ctx context.Context, buyerID, id int) (*domain.ServiceOrder, error)
}

type ServiceOrderHandler struct {
	serviceOrderService Service
}

func New(serviceOrderService Service) *ServiceOrderHandler {
	return &ServiceOrderHandler{
		serviceOrderService: serviceOrderService,
	}
}

// AddServiceOrder godoc
//
//	@Summary		Create a service order
//	@Description	Book a provider for a service engagement. Providers at capacity reject new orders.
//	@Tags			Service orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateServiceOrderRequestDTO	true	"Service order payload"
//	@Success		201		{object}	dto.ServiceOrderResponseDTO			"Created service order"
//	@Failure		400		{object}	utils.Response						"Invalid request body"
//	@Failure		401		{object}	utils.Response						"User not authorized"
//	@Failure		422		{object}	utils.Response						"Validation failed"
//	@Failure		429		{object}	utils.Response						"Provider at capacity"
//	@Failure		500		{object}	utils.Response						"Internal server error"
//	@Router			/api/service-orders [post]
func (h *ServiceOrderHandler) AddServiceOrder(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateServiceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	so, err := h.serviceOrderService.Create(r.Context(), userID, serviceorderservice.CreateServiceOrderInput{
		ProviderID: req.ProviderID,
		ServiceID:  req.ServiceID,
		Amount:     req.Amount,
		Currency:   req.Currency,
	})
	if err != nil {
		if errors.Is(err, serviceorderservice.ErrProviderBusy) {
			utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDTO(so))
}

// GetServiceOrders godoc
//
//	@Summary		List own service orders
//	@Description	List service orders placed by the authenticated buyer.
//	@Tags			Service orders
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.ServiceOrderResponseDTO	"Service orders"
//	@Success		204	{object}	utils.Response				"No service orders"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/service-orders [get]
func (h *ServiceOrderHandler) GetServiceOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	sos, err := h.serviceOrderService.ListByBuyer(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch service orders")
		return
	}
	if len(sos) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Service orders not found")
		return
	}

	response := make([]dto.ServiceOrderResponseDTO, len(sos))
	for i := range sos {
		response[i] = toDTO(&sos[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ApplyAction godoc
//
//	@Summary		Advance a service order
//	@Description	Apply a lifecycle action. Providers accept, start, and deliver; buyers complete and cancel.
//	@Tags			Service orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int									true	"Service order ID"
//	@Param			request	body		dto.ServiceOrderActionRequestDTO	true	"Action to apply"
//	@Success		200		{object}	dto.ServiceOrderResponseDTO			"Updated service order"
//	@Failure		400		{object}	utils.Response						"Invalid request"
//	@Failure		401		{object}	utils.Response						"User not authorized"
//	@Failure		403		{object}	utils.Response						"Wrong party for this action"
//	@Failure		404		{object}	utils.Response						"Service order not found"
//	@Failure		409		{object}	utils.Response						"Action not allowed in current state"
//	@Failure		500		{object}	utils.Response						"Internal server error"
//	@Router			/api/service-orders/{id}/actions [post]
func (h *ServiceOrderHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid service order id")
		return
	}

	var req dto.ServiceOrderActionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	so, err := h.serviceOrderService.Apply(r.Context(), userID, id, serviceorderservice.Action(req.Action))
	if err != nil {
		respondServiceOrderError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(so))
}

// RequestRevision godoc
//
//	@Summary		Request a revision
//	@Description	Buyer sends a delivered engagement back to the provider, consuming one revision.
//	@Tags			Service orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int							true	"Service order ID"
//	@Success		200	{object}	dto.ServiceOrderResponseDTO	"Service order back in progress"
//	@Failure		400	{object}	utils.Response				"Invalid service order id"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		403	{object}	utils.Response				"Not the buyer of this order"
//	@Failure		404	{object}	utils.Response				"Service order not found"
//	@Failure		409	{object}	utils.Response				"Order not delivered or no revisions remaining"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/service-orders/{id}/revisions [post]
func (h *ServiceOrderHandler) RequestRevision(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid service order id")
		return
	}

	so, err := h.serviceOrderService.RequestRevision(r.Context(), userID, id)
	if err != nil {
		respondServiceOrderError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(so))
}

func respondServiceOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, serviceorderservice.ErrServiceOrderNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, serviceorderservice.ErrNotOrderParty):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, serviceorderservice.ErrInvalidTransition),
		errors.Is(err, serviceorderservice.ErrNotPaid),
		errors.Is(err, serviceorderservice.ErrAlreadyPaid),
		errors.Is(err, serviceorderservice.ErrNoRevisionsRemaining):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, serviceorderservice.ErrUnknownAction):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toDTO(so *domain.ServiceOrder) dto.ServiceOrderResponseDTO {
	return dto.ServiceOrderResponseDTO{
		ID:            so.ID,
		ProviderID:    so.ProviderID,
		ServiceID:     so.ServiceID,
		Amount:        so.Amount,
		Currency:      so.Currency,
		Status:        string(so.Status),
		RevisionsLeft: so.RevisionsLeft,
		DeliveryDue:   so.DeliveryDue,
		PaymentID:     so.PaymentID,
		CreatedAt:     so.CreatedAt,
	}
}
