package withdrawalservice

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/settleflow/settleflow/internal/config"
	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/notify"
	"github.com/settleflow/settleflow/internal/pg"
)

type Repo interface {
	Create(ctx context.Context, w *domain.Withdrawal) (*domain.Withdrawal, error)
	GetByID(ctx context.Context, id int) (*domain.Withdrawal, error)
	CountActiveByUser(ctx context.Context, userID int) (int, error)
	UpdateStatus(ctx context.Context, id int, from, to domain.WithdrawalStatus, notes string) (bool, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error)
}

type Ledger interface {
	DebitAndReserve(ctx context.Context, userID int, amount int64) error
	FinalizeReserved(ctx context.Context, userID int, amount int64) error
	ReverseReserved(ctx context.Context, userID int, amount int64) error
}

var (
	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	ErrNotWithdrawalOwner = errors.New("user does not own this withdrawal")
	ErrTooManyPending     = errors.New("too many unresolved withdrawal requests")
	ErrInvalidAmount      = errors.New("withdrawal amount must be positive")
	ErrUnsupportedMethod  = errors.New("unsupported payout method")
	ErrAlreadyProcessed   = errors.New("withdrawal was already processed")
	ErrInvalidTransition  = errors.New("invalid withdrawal transition")
)

// Service handles the withdrawal lifecycle: request with atomic funds
// reservation, user cancellation and the admin approve/reject decision.
type Service struct {
	repo      Repo
	ledger    Ledger
	txManager pg.TXManager
	notifier  notify.Notifier
	cfg       *config.Config
}

func New(repo Repo, ledger Ledger, txManager pg.TXManager, notifier notify.Notifier, cfg *config.Config) *Service {
	return &Service{
		repo:      repo,
		ledger:    ledger,
		txManager: txManager,
		notifier:  notifier,
		cfg:       cfg,
	}
}

// Fee computes the payout fee in minor units: a per-method base rate minus
// volume-tier reductions, never below the floor rate.
func (s *Service) Fee(amount int64, method domain.PayoutMethod) (int64, error) {
	var rateBP int64
	switch method {
	case domain.PayoutBankTransfer:
		rateBP = s.cfg.FeeBankTransferBP
	case domain.PayoutEWallet:
		rateBP = s.cfg.FeeEWalletBP
	case domain.PayoutCard:
		rateBP = s.cfg.FeeCardBP
	default:
		return 0, ErrUnsupportedMethod
	}

	// Tiers are exclusive: the highest threshold reached sets the
	// reduction, they do not stack.
	switch {
	case amount >= s.cfg.FeeTier2Threshold:
		rateBP -= s.cfg.FeeTier2ReductionBP
	case amount >= s.cfg.FeeTier1Threshold:
		rateBP -= s.cfg.FeeTier1ReductionBP
	}
	if rateBP < s.cfg.FeeFloorBP {
		rateBP = s.cfg.FeeFloorBP
	}
	return domain.Share(amount, rateBP), nil
}

// Request reserves the funds and creates the withdrawal in one transaction.
// The pending cap and the balance check both happen inside it, so two
// concurrent requests cannot overdraw or both slip under the cap.
func (s *Service) Request(ctx context.Context, userID int, amount int64, method domain.PayoutMethod, currency string) (*domain.Withdrawal, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	fee, err := s.Fee(amount, method)
	if err != nil {
		return nil, err
	}

	var created *domain.Withdrawal
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		active, err := s.repo.CountActiveByUser(ctx, userID)
		if err != nil {
			return err
		}
		if active >= s.cfg.MaxPendingWithdrawals {
			return ErrTooManyPending
		}
		if err := s.ledger.DebitAndReserve(ctx, userID, amount); err != nil {
			return err
		}
		created, err = s.repo.Create(ctx, &domain.Withdrawal{
			UserID:   userID,
			Amount:   amount,
			Fee:      fee,
			Net:      amount - fee,
			Currency: currency,
			Method:   method,
			Status:   domain.WithdrawalPending,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, userID, "withdrawal.requested", map[string]any{
		"withdrawal_id": created.ID,
		"amount":        created.Amount,
		"net":           created.Net,
	})
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (*domain.Withdrawal, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrWithdrawalNotFound
	}
	return w, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// Cancel lets the owner withdraw a request that no admin picked up yet.
func (s *Service) Cancel(ctx context.Context, userID, id int) error {
	w, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if w.UserID != userID {
		return ErrNotWithdrawalOwner
	}

	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		ok, err := s.repo.UpdateStatus(ctx, id, domain.WithdrawalPending, domain.WithdrawalCancelled, "")
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyProcessed
		}
		return s.ledger.ReverseReserved(ctx, w.UserID, w.Amount)
	})
}

// Process is the admin decision. Approval finalizes the reservation and the
// funds leave the platform for good; rejection returns them to available.
func (s *Service) Process(ctx context.Context, id int, approve bool, notes string) (*domain.Withdrawal, error) {
	w, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.Status.IsTerminal() {
		return nil, ErrAlreadyProcessed
	}

	to := domain.WithdrawalRejected
	if approve {
		to = domain.WithdrawalCompleted
	}
	if !w.Status.CanTransition(to) {
		return nil, ErrInvalidTransition
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		ok, err := s.repo.UpdateStatus(ctx, id, w.Status, to, notes)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyProcessed
		}
		if approve {
			return s.ledger.FinalizeReserved(ctx, w.UserID, w.Amount)
		}
		return s.ledger.ReverseReserved(ctx, w.UserID, w.Amount)
	})
	if err != nil {
		return nil, err
	}

	event := "withdrawal.rejected"
	if approve {
		event = "withdrawal.completed"
	}
	s.notifier.Notify(ctx, w.UserID, event, map[string]any{
		"withdrawal_id": id,
		"net":           w.Net,
	})

	zap.L().Info("withdrawal processed",
		zap.Int("withdrawalID", id),
		zap.Bool("approved", approve),
	)
	return s.GetByID(ctx, id)
}
