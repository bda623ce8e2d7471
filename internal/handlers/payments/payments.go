package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/dto"
	"github.com/settleflow/settleflow/internal/gateway"
	paymentrepo "github.com/settleflow/settleflow/internal/repo/payment-repo"
	paymentservice "github.com/settleflow/settleflow/internal/service/paymentservice"
	reconcileservice "github.com/settleflow/settleflow/internal/service/reconcileservice"
	"github.com/settleflow/settleflow/pkg/auth"
	"github.com/settleflow/settleflow/pkg/utils"
)

// SignatureHeader carries the HMAC-SHA256 hex digest of the webhook body.
const SignatureHeader = "X-Gateway-Signature"

type Service interface {
	Create(ctx context.Context, payerID int, ref domain.SubjectRef, method domain.PaymentMethod) (*domain.Payment, error)
	GetByID(ctx context.Context, id int) (*domain.Payment, error)
	SubmitProof(ctx context.Context, id int, proofRef string) (*domain.Payment, error)
	Settle(ctx context.Context, id int, outcome paymentservice.Outcome, gatewayTxnID string, reason string) (*domain.Payment, bool, error)
	Refund(ctx context.Context, id int) (*domain.Payment, error)
}

type Charger interface {
	Charge(ctx context.Context, payment *domain.Payment, instrument gateway.Instrument) (*gateway.ChargeResult, error)
	Status(ctx context.Context, method domain.PaymentMethod, gatewayTxnID string) (*gateway.ChargeResult, error)
}

type Reconciler interface {
	VerifySignature(body []byte, signature string) error
	Reconcile(ctx context.Context, event reconcileservice.Event) (*domain.Payment, error)
	ProcessChargeResult(ctx context.Context, paymentID int, res *gateway.ChargeResult) (*domain.Payment, error)
}

type PaymentHandler struct {
	paymentService Service
	charger        Charger
	reconciler     Reconciler
}

func New(paymentService Service, charger Charger, reconciler Reconciler) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		charger:        charger,
		reconciler:     reconciler,
	}
}

// CreatePayment godoc
//
//	@Summary		Pay for a transaction
//	@Description	Create a payment for an order, service order, or content purchase and charge it through the gateway. The response reflects the state after the synchronous charge attempt; asynchronous gateways settle later via webhook.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreatePaymentRequestDTO	true	"Payment payload"
//	@Success		201		{object}	dto.PaymentResponseDTO		"Payment after the charge attempt"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		409		{object}	utils.Response				"Subject not payable or already paid"
//	@Failure		422		{object}	utils.Response				"Validation failed or invalid instrument"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/payments [post]
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreatePaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ref := domain.SubjectRef{Type: domain.SubjectType(req.SubjectType), ID: req.SubjectID}
	payment, err := h.paymentService.Create(r.Context(), userID, ref, domain.PaymentMethod(req.Method))
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrUnknownSubject):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, paymentservice.ErrInvalidSubject),
			errors.Is(err, paymentrepo.ErrSubjectAlreadyPaid):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	res, err := h.charger.Charge(r.Context(), payment, gateway.Instrument{
		CardNumber: req.CardNumber,
		WalletID:   req.WalletID,
		ProofRef:   req.ProofRef,
	})
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrInvalidCard),
			errors.Is(err, gateway.ErrMissingWallet),
			errors.Is(err, gateway.ErrUnsupportedMethod):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	settled, err := h.reconciler.ProcessChargeResult(r.Context(), payment.ID, res)
	if err != nil {
		zap.L().Error("charge result processing failed",
			zap.Int("paymentID", payment.ID),
			zap.Error(err),
		)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDTO(settled))
}

// GetPayment godoc
//
//	@Summary		Get a payment
//	@Description	Fetch one of the authenticated user's payments by id.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int						true	"Payment ID"
//	@Success		200	{object}	dto.PaymentResponseDTO	"Payment"
//	@Failure		400	{object}	utils.Response			"Invalid payment id"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		403	{object}	utils.Response			"Not the payer"
//	@Failure		404	{object}	utils.Response			"Payment not found"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/payments/{id} [get]
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	payment, err := h.paymentService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, paymentservice.ErrPaymentNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if payment.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(payment))
}

// SubmitProof godoc
//
//	@Summary		Submit manual payment proof
//	@Description	Attach an out-of-band proof reference to a manual-proof payment; the payment waits for admin verification.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Payment ID"
//	@Param			request	body		dto.SubmitProofRequestDTO	true	"Proof reference"
//	@Success		200		{object}	dto.PaymentResponseDTO		"Payment pending verification"
//	@Failure		400		{object}	utils.Response				"Invalid request"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		403		{object}	utils.Response				"Not the payer"
//	@Failure		404		{object}	utils.Response				"Payment not found"
//	@Failure		409		{object}	utils.Response				"Payment does not take proof in its current state"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/payments/{id}/proof [post]
func (h *PaymentHandler) SubmitProof(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	var req dto.SubmitProofRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	payment, err := h.paymentService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, paymentservice.ErrPaymentNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if payment.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	updated, err := h.paymentService.SubmitProof(r.Context(), id, req.ProofRef)
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrNotManualMethod),
			errors.Is(err, paymentservice.ErrInvalidTransition):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(updated))
}

// ConfirmPayment godoc
//
//	@Summary		Confirm an asynchronous payment
//	@Description	Ask the gateway for the current status of a processing payment and settle accordingly. The client's claim is never trusted; the gateway is re-queried and its answer goes through the same settlement path the webhook uses.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int						true	"Payment ID"
//	@Success		200	{object}	dto.PaymentResponseDTO	"Payment after reconciliation"
//	@Failure		400	{object}	utils.Response			"Invalid payment id"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		403	{object}	utils.Response			"Not the payer"
//	@Failure		404	{object}	utils.Response			"Payment not found"
//	@Failure		409	{object}	utils.Response			"Payment has no gateway transaction to confirm"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/payments/{id}/confirm [post]
func (h *PaymentHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	payment, err := h.paymentService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, paymentservice.ErrPaymentNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if payment.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}
	if payment.Status.IsTerminal() {
		// Confirming an already settled payment is a no-op.
		utils.RespondWithJSON(w, http.StatusOK, toDTO(payment))
		return
	}
	if payment.GatewayTxnID == nil {
		utils.RespondWithError(w, http.StatusConflict, "payment has no gateway transaction to confirm")
		return
	}

	res, err := h.charger.Status(r.Context(), payment.Method, *payment.GatewayTxnID)
	if err != nil {
		if errors.Is(err, gateway.ErrUnsupportedMethod) {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	settled, err := h.reconciler.ProcessChargeResult(r.Context(), payment.ID, res)
	if err != nil {
		zap.L().Error("charge result processing failed",
			zap.Int("paymentID", payment.ID),
			zap.Error(err),
		)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(settled))
}

// VerifyPayment godoc
//
//	@Summary		Verify a manual-proof payment
//	@Description	Admin approves or rejects a payment waiting on manual verification. Approval settles it and credits the seller.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Payment ID"
//	@Param			request	body		dto.VerifyPaymentRequestDTO	true	"Verification decision"
//	@Success		200		{object}	dto.PaymentResponseDTO		"Settled payment"
//	@Failure		400		{object}	utils.Response				"Invalid request"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		403		{object}	utils.Response				"Admin role required"
//	@Failure		404		{object}	utils.Response				"Payment not found"
//	@Failure		409		{object}	utils.Response				"Payment already settled"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/payments/{id}/verify [post]
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	var req dto.VerifyPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome := paymentservice.OutcomeFailure
	if req.Approve {
		outcome = paymentservice.OutcomeSuccess
	}

	payment, applied, err := h.paymentService.Settle(r.Context(), id, outcome, "", req.Reason)
	if err != nil {
		if errors.Is(err, paymentservice.ErrPaymentNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !applied {
		utils.RespondWithError(w, http.StatusConflict, "payment already settled")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(payment))
}

// RefundPayment godoc
//
//	@Summary		Refund a completed payment
//	@Description	Admin reverses a completed payment. The seller's share is clawed back from the ledger and the transaction is cancelled.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int						true	"Payment ID"
//	@Success		200	{object}	dto.PaymentResponseDTO	"Refunded payment"
//	@Failure		400	{object}	utils.Response			"Invalid payment id"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		403	{object}	utils.Response			"Admin role required"
//	@Failure		404	{object}	utils.Response			"Payment not found"
//	@Failure		409	{object}	utils.Response			"Payment is not refundable"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/payments/{id}/refund [post]
func (h *PaymentHandler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	payment, err := h.paymentService.Refund(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrPaymentNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, paymentservice.ErrInvalidTransition):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(payment))
}

// Webhook godoc
//
//	@Summary		Gateway webhook
//	@Description	Receive an asynchronous confirmation from the payment gateway. The body signature is verified before anything else; duplicate deliveries are acknowledged without side effects.
//	@Tags			Webhooks
//	@Accept			json
//	@Produce		json
//	@Param			X-Gateway-Signature	header		string				true	"HMAC-SHA256 hex signature of the body"
//	@Param			request				body		dto.WebhookEventDTO	true	"Gateway event"
//	@Success		200					{object}	utils.Response		"Event processed or acknowledged"
//	@Failure		400					{object}	utils.Response		"Malformed event"
//	@Failure		401					{object}	utils.Response		"Signature verification failed"
//	@Failure		500					{object}	utils.Response		"Internal server error"
//	@Router			/webhooks/gateway [post]
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "can't read request body")
		return
	}

	if err := h.reconciler.VerifySignature(body, r.Header.Get(SignatureHeader)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.WebhookEventDTO
	if err := json.Unmarshal(body, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err = h.reconciler.Reconcile(r.Context(), reconcileservice.Event{
		GatewayTxnID: req.GatewayTxnID,
		EventType:    req.EventType,
		Reason:       req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, reconcileservice.ErrUnknownTransaction):
			// Acked so the gateway stops retrying; the orphan is already
			// logged for operator follow-up.
			utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "acknowledged"})
		case errors.Is(err, reconcileservice.ErrUnknownEventType):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "processed"})
}

func toDTO(p *domain.Payment) dto.PaymentResponseDTO {
	return dto.PaymentResponseDTO{
		ID:            p.ID,
		SubjectType:   string(p.SubjectType),
		SubjectID:     p.SubjectID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Method:        string(p.Method),
		Status:        string(p.Status),
		GatewayTxnID:  p.GatewayTxnID,
		FailureReason: p.FailureReason,
		CreatedAt:     p.CreatedAt,
	}
}
