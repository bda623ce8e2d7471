package paymentservice

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/notify"
	"github.com/settleflow/settleflow/internal/pg"
)

type Repo interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id int) (*domain.Payment, error)
	GetByGatewayTxnID(ctx context.Context, gatewayTxnID string) (*domain.Payment, error)
	SetProcessing(ctx context.Context, id int, gatewayTxnID string) (bool, error)
	SetPendingVerification(ctx context.Context, id int, proofRef string) (bool, error)
	SettleTerminal(ctx context.Context, id int, status domain.PaymentStatus, gatewayTxnID *string, reason string) (bool, error)
	SetRefunded(ctx context.Context, id int) (bool, error)
	FindStaleProcessing(ctx context.Context, limit uint32) ([]domain.Payment, error)
}

type Ledger interface {
	CreditPending(ctx context.Context, userID int, amount int64) error
}

// SubjectInfo is what a transaction machine reports about its subject.
type SubjectInfo struct {
	SellerID int
	Amount   int64
	Currency string
	Payable  bool
}

// Machine is the settlement-facing face of a transaction state machine.
type Machine interface {
	Subject(ctx context.Context, subjectID int) (*SubjectInfo, error)
	AttachPayment(ctx context.Context, subjectID, paymentID int) error
	OnPaymentConfirmed(ctx context.Context, subjectID, paymentID int) error
	OnPaymentFailed(ctx context.Context, subjectID int) error
	OnRefunded(ctx context.Context, subjectID int) error
}

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

var (
	ErrInvalidSubject    = errors.New("subject is not in a payable state")
	ErrUnknownSubject    = errors.New("unknown subject type")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrInvalidTransition = errors.New("invalid payment transition")
	ErrNotManualMethod   = errors.New("payment method does not take manual proof")
)

// Service owns the Payment entity. Settle is the only code path that moves a
// payment to a terminal state and applies its one-time side effects.
type Service struct {
	repo      Repo
	ledger    Ledger
	machines  map[domain.SubjectType]Machine
	shares    map[domain.SubjectType]int64
	txManager pg.TXManager
	notifier  notify.Notifier
}

func New(repo Repo, ledger Ledger, machines map[domain.SubjectType]Machine, shares map[domain.SubjectType]int64, txManager pg.TXManager, notifier notify.Notifier) *Service {
	return &Service{
		repo:      repo,
		ledger:    ledger,
		machines:  machines,
		shares:    shares,
		txManager: txManager,
		notifier:  notifier,
	}
}

func (s *Service) machine(subject domain.SubjectType) (Machine, error) {
	m, ok := s.machines[subject]
	if !ok {
		return nil, ErrUnknownSubject
	}
	return m, nil
}

func (s *Service) Create(ctx context.Context, payerID int, ref domain.SubjectRef, method domain.PaymentMethod) (*domain.Payment, error) {
	machine, err := s.machine(ref.Type)
	if err != nil {
		return nil, err
	}

	info, err := machine.Subject(ctx, ref.ID)
	if err != nil {
		return nil, err
	}
	if info == nil || !info.Payable {
		return nil, ErrInvalidSubject
	}

	var created *domain.Payment
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		created, err = s.repo.Create(ctx, &domain.Payment{
			UserID:      payerID,
			SubjectType: ref.Type,
			SubjectID:   ref.ID,
			Amount:      info.Amount,
			Currency:    info.Currency,
			Method:      method,
			Status:      domain.PaymentPending,
		})
		if err != nil {
			return err
		}
		return machine.AttachPayment(ctx, ref.ID, created.ID)
	})
	if err != nil {
		zap.L().Error("failed to create payment", zap.Error(err))
		return nil, err
	}

	zap.L().Info("payment created",
		zap.Int("paymentID", created.ID),
		zap.String("subject", string(ref.Type)),
		zap.Int("subjectID", ref.ID),
		zap.String("amount", domain.FormatMinor(created.Amount, created.Currency)),
	)
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (*domain.Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

func (s *Service) GetByGatewayTxnID(ctx context.Context, gatewayTxnID string) (*domain.Payment, error) {
	return s.repo.GetByGatewayTxnID(ctx, gatewayTxnID)
}

func (s *Service) FindStaleProcessing(ctx context.Context, limit uint32) ([]domain.Payment, error) {
	return s.repo.FindStaleProcessing(ctx, limit)
}

// BeginProcessing pins the gateway transaction id and moves pending to
// processing.
func (s *Service) BeginProcessing(ctx context.Context, id int, gatewayTxnID string) error {
	ok, err := s.repo.SetProcessing(ctx, id, gatewayTxnID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}

// SubmitProof moves a manual-proof payment into pending_verification.
func (s *Service) SubmitProof(ctx context.Context, id int, proofRef string) (*domain.Payment, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Method != domain.MethodManualProof {
		return nil, ErrNotManualMethod
	}
	ok, err := s.repo.SetPendingVerification(ctx, id, proofRef)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	return s.GetByID(ctx, id)
}

// Settle moves a payment to a terminal state exactly once. A payment that is
// already terminal is returned as-is with applied=false and no side effects;
// that is what makes webhook replays harmless.
func (s *Service) Settle(ctx context.Context, id int, outcome Outcome, gatewayTxnID string, reason string) (*domain.Payment, bool, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if p.Status.IsTerminal() {
		return p, false, nil
	}

	machine, err := s.machine(p.SubjectType)
	if err != nil {
		return nil, false, err
	}

	var txnID *string
	if gatewayTxnID != "" {
		txnID = &gatewayTxnID
	}

	applied := false
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		status := domain.PaymentFailed
		if outcome == OutcomeSuccess {
			status = domain.PaymentCompleted
		}

		ok, err := s.repo.SettleTerminal(ctx, id, status, txnID, reason)
		if err != nil {
			return err
		}
		if !ok {
			// Lost the race against a concurrent settlement; the other
			// writer's side effects stand.
			return nil
		}
		applied = true

		if outcome != OutcomeSuccess {
			return machine.OnPaymentFailed(ctx, p.SubjectID)
		}

		info, err := machine.Subject(ctx, p.SubjectID)
		if err != nil {
			return err
		}
		share := domain.Share(p.Amount, s.shares[p.SubjectType])
		if err := s.ledger.CreditPending(ctx, info.SellerID, share); err != nil {
			return err
		}
		return machine.OnPaymentConfirmed(ctx, p.SubjectID, p.ID)
	})
	if err != nil {
		zap.L().Error("settlement failed", zap.Int("paymentID", id), zap.Error(err))
		return nil, false, err
	}

	settled, getErr := s.GetByID(ctx, id)
	if getErr != nil {
		return nil, applied, getErr
	}

	if applied {
		zap.L().Info("payment settled",
			zap.Int("paymentID", id),
			zap.String("status", string(settled.Status)),
			zap.String("gatewayTxnID", gatewayTxnID),
		)
		s.notifier.Notify(ctx, settled.UserID, "payment."+string(settled.Status), map[string]any{
			"payment_id": settled.ID,
			"amount":     settled.Amount,
			"currency":   settled.Currency,
		})
	}
	return settled, applied, nil
}

// Refund is the explicit post-completion reversal flow; it is not a cancel.
func (s *Service) Refund(ctx context.Context, id int) (*domain.Payment, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	machine, err := s.machine(p.SubjectType)
	if err != nil {
		return nil, err
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		ok, err := s.repo.SetRefunded(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidTransition
		}
		return machine.OnRefunded(ctx, p.SubjectID)
	})
	if err != nil {
		return nil, err
	}

	refunded, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, refunded.UserID, "payment.refunded", map[string]any{
		"payment_id": refunded.ID,
	})
	return refunded, nil
}
