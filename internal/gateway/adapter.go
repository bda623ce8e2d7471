package gateway

import (
	"errors"

	"context"

	"github.com/settleflow/settleflow/internal/domain"
)

type ChargeStatus string

const (
	ChargeSucceeded           ChargeStatus = "succeeded"
	ChargeFailed              ChargeStatus = "failed"
	ChargePending             ChargeStatus = "pending"
	ChargePendingVerification ChargeStatus = "pending_verification"
)

// ChargeResult is the normalized outcome every gateway variant produces.
type ChargeResult struct {
	GatewayTxnID string       `json:"transaction_id"`
	Status       ChargeStatus `json:"status"`
	Reason       string       `json:"reason,omitempty"`
}

// Instrument carries the method-specific payment details supplied by the
// buyer; exactly one field is meaningful per method.
type Instrument struct {
	CardNumber string `json:"card_number,omitempty"`
	WalletID   string `json:"wallet_id,omitempty"`
	ProofRef   string `json:"proof_ref,omitempty"`
}

var (
	ErrInvalidCard       = errors.New("invalid card number")
	ErrMissingWallet     = errors.New("wallet id is required")
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	ErrGatewayStatus     = errors.New("unexpected gateway status code")
)

// Adapter abstracts one payment method behind the common charge/status
// contract.
type Adapter interface {
	Method() domain.PaymentMethod
	Charge(ctx context.Context, payment *domain.Payment, instrument Instrument) (*ChargeResult, error)
	Status(ctx context.Context, gatewayTxnID string) (*ChargeResult, error)
}

// Dispatcher routes charges to the adapter registered for the method.
type Dispatcher struct {
	adapters map[domain.PaymentMethod]Adapter
}

func NewDispatcher(adapters ...Adapter) *Dispatcher {
	m := make(map[domain.PaymentMethod]Adapter, len(adapters))
	for _, a := range adapters {
		m[a.Method()] = a
	}
	return &Dispatcher{adapters: m}
}

func (d *Dispatcher) Charge(ctx context.Context, payment *domain.Payment, instrument Instrument) (*ChargeResult, error) {
	adapter, ok := d.adapters[payment.Method]
	if !ok {
		return nil, ErrUnsupportedMethod
	}
	return adapter.Charge(ctx, payment, instrument)
}

func (d *Dispatcher) Status(ctx context.Context, method domain.PaymentMethod, gatewayTxnID string) (*ChargeResult, error) {
	adapter, ok := d.adapters[method]
	if !ok {
		return nil, ErrUnsupportedMethod
	}
	return adapter.Status(ctx, gatewayTxnID)
}
