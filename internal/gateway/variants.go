package gateway

import (
	"context"

	"github.com/google/uuid"

	"github.com/settleflow/settleflow/internal/config"
	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/pkg/clients"
	"github.com/settleflow/settleflow/pkg/validate"
)

// CardAdapter charges cards synchronously.
type CardAdapter struct {
	charger httpCharger
}

func NewCardAdapter(cfg *config.Config, client clients.HTTPClientI) *CardAdapter {
	return &CardAdapter{
		charger: httpCharger{baseURL: cfg.GatewayAddress, client: client, maxRetries: cfg.GatewayMaxRetries},
	}
}

func (a *CardAdapter) Method() domain.PaymentMethod { return domain.MethodCard }

func (a *CardAdapter) Charge(ctx context.Context, payment *domain.Payment, instrument Instrument) (*ChargeResult, error) {
	if !validate.IsCardNumber(instrument.CardNumber) {
		return nil, ErrInvalidCard
	}
	return a.charger.charge(ctx, "/api/charges/card", payment, instrument)
}

func (a *CardAdapter) Status(ctx context.Context, gatewayTxnID string) (*ChargeResult, error) {
	return a.charger.status(ctx, gatewayTxnID)
}

// WalletAdapter charges e-wallets synchronously.
type WalletAdapter struct {
	charger httpCharger
}

func NewWalletAdapter(cfg *config.Config, client clients.HTTPClientI) *WalletAdapter {
	return &WalletAdapter{
		charger: httpCharger{baseURL: cfg.GatewayAddress, client: client, maxRetries: cfg.GatewayMaxRetries},
	}
}

func (a *WalletAdapter) Method() domain.PaymentMethod { return domain.MethodEWallet }

func (a *WalletAdapter) Charge(ctx context.Context, payment *domain.Payment, instrument Instrument) (*ChargeResult, error) {
	if instrument.WalletID == "" {
		return nil, ErrMissingWallet
	}
	return a.charger.charge(ctx, "/api/charges/wallet", payment, instrument)
}

func (a *WalletAdapter) Status(ctx context.Context, gatewayTxnID string) (*ChargeResult, error) {
	return a.charger.status(ctx, gatewayTxnID)
}

// BankTransferAdapter initiates an asynchronous transfer; the gateway
// confirms later via webhook or the settlement poller.
type BankTransferAdapter struct {
	charger httpCharger
}

func NewBankTransferAdapter(cfg *config.Config, client clients.HTTPClientI) *BankTransferAdapter {
	return &BankTransferAdapter{
		charger: httpCharger{baseURL: cfg.GatewayAddress, client: client, maxRetries: cfg.GatewayMaxRetries},
	}
}

func (a *BankTransferAdapter) Method() domain.PaymentMethod { return domain.MethodBankTransfer }

func (a *BankTransferAdapter) Charge(ctx context.Context, payment *domain.Payment, instrument Instrument) (*ChargeResult, error) {
	return a.charger.charge(ctx, "/api/charges/bank-transfer", payment, instrument)
}

func (a *BankTransferAdapter) Status(ctx context.Context, gatewayTxnID string) (*ChargeResult, error) {
	return a.charger.status(ctx, gatewayTxnID)
}

// ManualAdapter never talks to a gateway: the buyer uploads proof and an
// admin verifies it through the reconcile path.
type ManualAdapter struct{}

func NewManualAdapter() *ManualAdapter {
	return &ManualAdapter{}
}

func (a *ManualAdapter) Method() domain.PaymentMethod { return domain.MethodManualProof }

func (a *ManualAdapter) Charge(_ context.Context, _ *domain.Payment, instrument Instrument) (*ChargeResult, error) {
	ref := instrument.ProofRef
	if ref == "" {
		ref = uuid.NewString()
	}
	return &ChargeResult{
		GatewayTxnID: "manual-" + ref,
		Status:       ChargePendingVerification,
	}, nil
}

func (a *ManualAdapter) Status(_ context.Context, gatewayTxnID string) (*ChargeResult, error) {
	// Manual proofs resolve only through admin verification.
	return &ChargeResult{GatewayTxnID: gatewayTxnID, Status: ChargePendingVerification}, nil
}
