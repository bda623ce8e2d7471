package reconcileservice

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"go.uber.org/zap"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/gateway"
	"github.com/settleflow/settleflow/internal/service/paymentservice"
)

// Event is the single normalized shape both webhook deliveries and
// synchronous client confirmations are reduced to before settlement.
type Event struct {
	GatewayTxnID string `json:"gateway_txn_id"`
	EventType    string `json:"event_type"`
	Reason       string `json:"reason,omitempty"`
}

const (
	EventPaymentSucceeded = "payment.succeeded"
	EventPaymentFailed    = "payment.failed"
)

type PaymentManager interface {
	GetByGatewayTxnID(ctx context.Context, gatewayTxnID string) (*domain.Payment, error)
	BeginProcessing(ctx context.Context, id int, gatewayTxnID string) error
	SubmitProof(ctx context.Context, id int, proofRef string) (*domain.Payment, error)
	Settle(ctx context.Context, id int, outcome paymentservice.Outcome, gatewayTxnID string, reason string) (*domain.Payment, bool, error)
}

var (
	ErrAuthenticity       = errors.New("webhook signature verification failed")
	ErrUnknownTransaction = errors.New("no payment for gateway transaction")
	ErrUnknownEventType   = errors.New("unknown gateway event type")
)

// Service enforces at-most-once settlement per payment: every confirmation
// path funnels through Reconcile.
type Service struct {
	payments PaymentManager
	secret   []byte
}

func New(payments PaymentManager, webhookSecret string) *Service {
	return &Service{
		payments: payments,
		secret:   []byte(webhookSecret),
	}
}

// VerifySignature checks the HMAC-SHA256 hex signature over the raw body.
// It runs before any state is read.
func (s *Service) VerifySignature(body []byte, signature string) error {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrAuthenticity
	}
	return nil
}

// Reconcile matches a gateway event to its payment exactly once. Duplicate
// deliveries return the settled payment without side effects; a failure
// event arriving after a completed settlement is discarded (success wins).
func (s *Service) Reconcile(ctx context.Context, event Event) (*domain.Payment, error) {
	outcome, err := outcomeForEvent(event.EventType)
	if err != nil {
		return nil, err
	}

	payment, err := s.payments.GetByGatewayTxnID(ctx, event.GatewayTxnID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		zap.L().Warn("orphan gateway event, operator attention required",
			zap.String("gatewayTxnID", event.GatewayTxnID),
			zap.String("eventType", event.EventType),
		)
		return nil, ErrUnknownTransaction
	}

	if payment.Status.IsTerminal() {
		if outcome == paymentservice.OutcomeFailure && payment.Status == domain.PaymentCompleted {
			// Out-of-order failure after a completed settlement: a
			// deliberate business choice, the success stands.
			zap.L().Warn("discarding late failure event for completed payment",
				zap.Int("paymentID", payment.ID),
				zap.String("gatewayTxnID", event.GatewayTxnID),
			)
		} else {
			zap.L().Info("duplicate gateway event deduplicated",
				zap.Int("paymentID", payment.ID),
				zap.String("gatewayTxnID", event.GatewayTxnID),
			)
		}
		return payment, nil
	}

	settled, applied, err := s.payments.Settle(ctx, payment.ID, outcome, event.GatewayTxnID, event.Reason)
	if err != nil {
		return nil, err
	}
	if !applied {
		zap.L().Info("settlement already applied by concurrent delivery",
			zap.Int("paymentID", payment.ID),
		)
	}
	return settled, nil
}

// ProcessChargeResult feeds a gateway charge response into the same
// settlement path the webhook uses. It is called by the synchronous payment
// flow and by the settlement poller.
func (s *Service) ProcessChargeResult(ctx context.Context, paymentID int, res *gateway.ChargeResult) (*domain.Payment, error) {
	switch res.Status {
	case gateway.ChargePendingVerification:
		return s.payments.SubmitProof(ctx, paymentID, res.GatewayTxnID)
	case gateway.ChargePending:
		if err := s.payments.BeginProcessing(ctx, paymentID, res.GatewayTxnID); err != nil {
			return nil, err
		}
		p, err := s.payments.GetByGatewayTxnID(ctx, res.GatewayTxnID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, ErrUnknownTransaction
		}
		return p, nil
	case gateway.ChargeSucceeded, gateway.ChargeFailed:
		// Pin the gateway reference first so replayed webhooks for this
		// charge find the payment; a failed CAS just means it is pinned.
		if err := s.payments.BeginProcessing(ctx, paymentID, res.GatewayTxnID); err != nil &&
			!errors.Is(err, paymentservice.ErrInvalidTransition) {
			return nil, err
		}
		event := Event{GatewayTxnID: res.GatewayTxnID, EventType: EventPaymentSucceeded}
		if res.Status == gateway.ChargeFailed {
			event.EventType = EventPaymentFailed
			event.Reason = res.Reason
		}
		return s.Reconcile(ctx, event)
	default:
		return nil, ErrUnknownEventType
	}
}

func outcomeForEvent(eventType string) (paymentservice.Outcome, error) {
	switch eventType {
	case EventPaymentSucceeded:
		return paymentservice.OutcomeSuccess, nil
	case EventPaymentFailed:
		return paymentservice.OutcomeFailure, nil
	default:
		return "", ErrUnknownEventType
	}
}
