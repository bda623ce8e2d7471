package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/dto"
	orderservice "github.com/settleflow/settleflow/internal/service/orderservice"
	"github.com/settleflow/settleflow/pkg/auth"
	"github.com/settleflow/settleflow/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, buyerID int, in orderservice.CreateOrderInput) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID int) ([]domain.Order, error)
	MarkReceived(ctx context.Context, buyerID, orderID int) (*domain.Order, error)
	Cancel(ctx context.Context, buyerID, orderID int) (*domain.Order, error)
}

type OrderHandler struct {
	orderService Service
}

func New(orderService Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// AddOrder godoc
//
//	@Summary		Create a product order
//	@Description	Place a product order with the seller's stock reserved. The order waits in pending until a payment settles.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateOrderRequestDTO	true	"Order payload"
//	@Success		201		{object}	dto.OrderResponseDTO		"Created order"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		422		{object}	utils.Response				"Validation failed"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/orders [post]
func (h *OrderHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	order, err := h.orderService.Create(r.Context(), userID, orderservice.CreateOrderInput{
		SellerID:  req.SellerID,
		ProductID: req.ProductID,
		Amount:    req.Amount,
		Currency:  req.Currency,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDTO(order))
}

// GetOrders godoc
//
//	@Summary		List own product orders
//	@Description	List product orders placed by the authenticated buyer, newest first.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.OrderResponseDTO	"Orders"
//	@Success		204	{object}	utils.Response			"No orders"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/orders [get]
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	orders, err := h.orderService.ListByBuyer(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	if len(orders) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Orders not found")
		return
	}

	response := make([]dto.OrderResponseDTO, len(orders))
	for i := range orders {
		response[i] = toDTO(&orders[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ReceiveOrder godoc
//
//	@Summary		Confirm receipt of an order
//	@Description	Buyer confirms the goods arrived; the order completes and the seller's share is released.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int						true	"Order ID"
//	@Success		200	{object}	dto.OrderResponseDTO	"Completed order"
//	@Failure		400	{object}	utils.Response			"Invalid order id"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		403	{object}	utils.Response			"Not the buyer of this order"
//	@Failure		404	{object}	utils.Response			"Order not found"
//	@Failure		409	{object}	utils.Response			"Order is not in a receivable state"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/orders/{id}/receive [post]
func (h *OrderHandler) ReceiveOrder(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orderService.MarkReceived(r.Context(), userID, orderID)
	if err != nil {
		respondOrderError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(order))
}

// CancelOrder godoc
//
//	@Summary		Cancel an order
//	@Description	Buyer cancels an order that has not shipped yet; reserved stock is released.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int						true	"Order ID"
//	@Success		200	{object}	dto.OrderResponseDTO	"Cancelled order"
//	@Failure		400	{object}	utils.Response			"Invalid order id"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		403	{object}	utils.Response			"Not the buyer of this order"
//	@Failure		404	{object}	utils.Response			"Order not found"
//	@Failure		409	{object}	utils.Response			"Order already shipped or settled"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orderService.Cancel(r.Context(), userID, orderID)
	if err != nil {
		respondOrderError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(order))
}

func respondOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orderservice.ErrOrderNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, orderservice.ErrNotOrderParty):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, orderservice.ErrInvalidTransition):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toDTO(o *domain.Order) dto.OrderResponseDTO {
	return dto.OrderResponseDTO{
		ID:            o.ID,
		SellerID:      o.SellerID,
		ProductID:     o.ProductID,
		Amount:        o.Amount,
		Currency:      o.Currency,
		Status:        string(o.Status),
		StockReserved: o.StockReserved,
		PaymentID:     o.PaymentID,
		CreatedAt:     o.CreatedAt,
	}
}
