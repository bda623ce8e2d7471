package dto

import "time"

type CreatePaymentRequestDTO struct {
	SubjectType string `json:"subject_type" validate:"required,oneof=order service_order content_purchase" example:"order"`
	SubjectID   int    `json:"subject_id" validate:"required,gt=0" example:"10"`
	Method      string `json:"method" validate:"required,oneof=card ewallet bank_transfer manual_proof" example:"card"`
	CardNumber  string `json:"card_number,omitempty" example:"4561261212345467"`
	WalletID    string `json:"wallet_id,omitempty" example:"w-81f3"`
	ProofRef    string `json:"proof_ref,omitempty" example:"receipt-77"`
}

type SubmitProofRequestDTO struct {
	ProofRef string `json:"proof_ref" validate:"required" example:"receipt-77"`
}

type VerifyPaymentRequestDTO struct {
	Approve bool   `json:"approve" example:"true"`
	Reason  string `json:"reason,omitempty" example:"receipt does not match amount"`
}

type PaymentResponseDTO struct {
	ID            int       `json:"id" example:"5"`
	SubjectType   string    `json:"subject_type" example:"order"`
	SubjectID     int       `json:"subject_id" example:"10"`
	Amount        int64     `json:"amount" example:"10000"`
	Currency      string    `json:"currency" example:"USD"`
	Method        string    `json:"method" example:"card"`
	Status        string    `json:"status" example:"completed"`
	GatewayTxnID  *string   `json:"gateway_txn_id,omitempty" example:"gw-123"`
	FailureReason string    `json:"failure_reason,omitempty" example:"card declined"`
	CreatedAt     time.Time `json:"created_at" example:"2025-12-09T16:09:57+03:00"`
}

type WebhookEventDTO struct {
	GatewayTxnID string `json:"gateway_txn_id" validate:"required" example:"gw-123"`
	EventType    string `json:"event_type" validate:"required" example:"payment.succeeded"`
	Reason       string `json:"reason,omitempty" example:"card declined"`
}
