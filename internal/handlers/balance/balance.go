package balance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/dto"
	ledgerservice "github.com/settleflow/settleflow/internal/service/ledgerservice"
	withdrawalservice "github.com/settleflow/settleflow/internal/service/withdrawalservice"
	"github.com/settleflow/settleflow/pkg/auth"
	"github.com/settleflow/settleflow/pkg/utils"
)

type LedgerService interface {
	Get(ctx context.Context, userID int) (*domain.LedgerEntry, error)
}

type WithdrawalService interface {
	Request(ctx context.Context, userID int, amount int64, method domain.PayoutMethod, currency string) (*domain.Withdrawal, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Withdrawal, error)
	Cancel(ctx context.Context, userID, id int) error
	Process(ctx context.Context, id int, approve bool, notes string) (*domain.Withdrawal, error)
}

type BalanceHandler struct {
	ledgerService     LedgerService
	withdrawalService WithdrawalService
}

func New(ledgerService LedgerService, withdrawalService WithdrawalService) *BalanceHandler {
	return &BalanceHandler{
		ledgerService:     ledgerService,
		withdrawalService: withdrawalService,
	}
}

// GetLedger godoc
//
//	@Summary		Get own ledger balances
//	@Description	Retrieve the available, pending, and reserved balances plus the lifetime withdrawn total for the authenticated user.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.LedgerResponseDTO	"Ledger balances"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/ledger [get]
func (h *BalanceHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	entry, err := h.ledgerService.Get(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.LedgerResponseDTO{
		Available:      entry.Available,
		Pending:        entry.Pending,
		Reserved:       entry.Reserved,
		WithdrawnTotal: entry.WithdrawnTotal,
	})
}

// Withdraw godoc
//
//	@Summary		Request a withdrawal
//	@Description	Move available funds into reserve pending admin payout. The fee depends on the payout method and amount tier.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO		true	"Withdrawal payload"
//	@Success		201		{object}	dto.WithdrawalResponseDTO	"Created withdrawal"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		402		{object}	utils.Response				"Insufficient available funds"
//	@Failure		422		{object}	utils.Response				"Validation failed"
//	@Failure		429		{object}	utils.Response				"Too many pending withdrawals"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/withdrawals [post]
func (h *BalanceHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	wd, err := h.withdrawalService.Request(r.Context(), userID, req.Amount, domain.PayoutMethod(req.Method), req.Currency)
	if err != nil {
		switch {
		case errors.Is(err, ledgerservice.ErrInsufficientFunds):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, withdrawalservice.ErrTooManyPending):
			utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, withdrawalservice.ErrInvalidAmount),
			errors.Is(err, withdrawalservice.ErrUnsupportedMethod):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDTO(wd))
}

// GetWithdrawals godoc
//
//	@Summary		Get withdrawals history
//	@Description	List withdrawals requested by the authenticated user, newest first.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO	"Withdrawals"
//	@Success		204	{object}	utils.Response				"No withdrawals"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/withdrawals [get]
func (h *BalanceHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	withdrawals, err := h.withdrawalService.ListByUser(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}
	if len(withdrawals) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Withdrawals not found")
		return
	}

	response := make([]dto.WithdrawalResponseDTO, len(withdrawals))
	for i := range withdrawals {
		response[i] = toDTO(&withdrawals[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// CancelWithdrawal godoc
//
//	@Summary		Cancel a pending withdrawal
//	@Description	Cancel an own withdrawal that has not been processed yet; reserved funds return to available.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int				true	"Withdrawal ID"
//	@Success		200	{object}	utils.Response	"Withdrawal cancelled"
//	@Failure		400	{object}	utils.Response	"Invalid withdrawal id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Not the owner"
//	@Failure		404	{object}	utils.Response	"Withdrawal not found"
//	@Failure		409	{object}	utils.Response	"Withdrawal already processed"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/withdrawals/{id}/cancel [post]
func (h *BalanceHandler) CancelWithdrawal(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid withdrawal id")
		return
	}

	if err := h.withdrawalService.Cancel(r.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrWithdrawalNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, withdrawalservice.ErrNotWithdrawalOwner):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, withdrawalservice.ErrAlreadyProcessed):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "withdrawal cancelled"})
}

// ProcessWithdrawal godoc
//
//	@Summary		Process a withdrawal
//	@Description	Admin approves or rejects a pending withdrawal. Approval finalizes the reserved funds; rejection returns them to available.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Withdrawal ID"
//	@Param			request	body		dto.ProcessWithdrawalRequestDTO	true	"Processing decision"
//	@Success		200		{object}	dto.WithdrawalResponseDTO		"Processed withdrawal"
//	@Failure		400		{object}	utils.Response					"Invalid request"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		403		{object}	utils.Response					"Admin role required"
//	@Failure		404		{object}	utils.Response					"Withdrawal not found"
//	@Failure		409		{object}	utils.Response					"Withdrawal already processed"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/admin/withdrawals/{id}/process [post]
func (h *BalanceHandler) ProcessWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid withdrawal id")
		return
	}

	var req dto.ProcessWithdrawalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	wd, err := h.withdrawalService.Process(r.Context(), id, req.Approve, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrWithdrawalNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, withdrawalservice.ErrAlreadyProcessed),
			errors.Is(err, withdrawalservice.ErrInvalidTransition):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(wd))
}

func toDTO(wd *domain.Withdrawal) dto.WithdrawalResponseDTO {
	return dto.WithdrawalResponseDTO{
		ID:        wd.ID,
		Amount:    wd.Amount,
		Fee:       wd.Fee,
		Net:       wd.Net,
		Currency:  wd.Currency,
		Method:    string(wd.Method),
		Status:    string(wd.Status),
		Notes:     wd.Notes,
		CreatedAt: wd.CreatedAt,
	}
}
