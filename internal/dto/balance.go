package dto

import "time"

type LedgerResponseDTO struct {
	Available      int64 `json:"available" example:"42000"`
	Pending        int64 `json:"pending" example:"8000"`
	Reserved       int64 `json:"reserved" example:"10000"`
	WithdrawnTotal int64 `json:"withdrawn_total" example:"150000"`
}

type WithdrawRequestDTO struct {
	Amount   int64  `json:"amount" validate:"required,gt=0" example:"10000"`
	Method   string `json:"method" validate:"required,oneof=bank_transfer ewallet card" example:"bank_transfer"`
	Currency string `json:"currency" validate:"required,len=3" example:"USD"`
}

type ProcessWithdrawalRequestDTO struct {
	Approve bool   `json:"approve" example:"true"`
	Notes   string `json:"notes,omitempty" example:"paid out via SEPA"`
}

type WithdrawalResponseDTO struct {
	ID        int       `json:"id" example:"40"`
	Amount    int64     `json:"amount" example:"10000"`
	Fee       int64     `json:"fee" example:"250"`
	Net       int64     `json:"net" example:"9750"`
	Currency  string    `json:"currency" example:"USD"`
	Method    string    `json:"method" example:"bank_transfer"`
	Status    string    `json:"status" example:"pending"`
	Notes     string    `json:"notes,omitempty" example:"paid out via SEPA"`
	CreatedAt time.Time `json:"created_at" example:"2025-12-09T16:09:57+03:00"`
}
