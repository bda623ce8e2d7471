package ledgerservice

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/settleflow/settleflow/internal/domain"
)

type Repo interface {
	Get(ctx context.Context, userID int) (*domain.LedgerEntry, error)
	CreditPending(ctx context.Context, userID int, amount int64) error
	ReleasePendingToAvailable(ctx context.Context, userID int, amount int64) (bool, error)
	DebitAvailableToReserved(ctx context.Context, userID int, amount int64) (bool, error)
	FinalizeReserved(ctx context.Context, userID int, amount int64) (bool, error)
	ReverseReservedToAvailable(ctx context.Context, userID int, amount int64) (bool, error)
	DebitPending(ctx context.Context, userID int, amount int64) (bool, error)
	DebitAvailable(ctx context.Context, userID int, amount int64) (bool, error)
}

var (
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInsufficientPending = errors.New("insufficient pending funds")
	ErrNothingReserved     = errors.New("no reserved funds to move")
	ErrInvalidAmount       = errors.New("amount must be positive")
)

// Service is the only writer of ledger balances. Controllers never touch
// balances directly.
type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID int) (*domain.LedgerEntry, error) {
	entry, err := s.repo.Get(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get ledger entry", zap.Error(err))
		return nil, err
	}
	if entry == nil {
		// Entries are created lazily on first credit; absent means zero.
		return &domain.LedgerEntry{UserID: userID}, nil
	}
	return entry, nil
}

func (s *Service) CreditPending(ctx context.Context, userID int, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := s.repo.CreditPending(ctx, userID, amount); err != nil {
		zap.L().Error("failed to credit pending", zap.Int("userID", userID), zap.Error(err))
		return err
	}
	zap.L().Info("credited pending funds", zap.Int("userID", userID), zap.Int64("amount", amount))
	return nil
}

func (s *Service) ReleaseToAvailable(ctx context.Context, userID int, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	ok, err := s.repo.ReleasePendingToAvailable(ctx, userID, amount)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientPending
	}
	zap.L().Info("released funds to available", zap.Int("userID", userID), zap.Int64("amount", amount))
	return nil
}

// DebitAndReserve atomically checks and moves available funds into the
// withdrawal reservation bucket; two concurrent requests cannot both pass.
func (s *Service) DebitAndReserve(ctx context.Context, userID int, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	ok, err := s.repo.DebitAvailableToReserved(ctx, userID, amount)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientFunds
	}
	return nil
}

func (s *Service) FinalizeReserved(ctx context.Context, userID int, amount int64) error {
	ok, err := s.repo.FinalizeReserved(ctx, userID, amount)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNothingReserved
	}
	return nil
}

func (s *Service) ReverseReserved(ctx context.Context, userID int, amount int64) error {
	ok, err := s.repo.ReverseReservedToAvailable(ctx, userID, amount)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNothingReserved
	}
	return nil
}

// DebitForRefund takes refunded earnings back, preferring the bucket the
// funds still sit in: pending while the transaction holds them, available
// after release.
func (s *Service) DebitForRefund(ctx context.Context, userID int, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	ok, err := s.repo.DebitPending(ctx, userID, amount)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	ok, err = s.repo.DebitAvailable(ctx, userID, amount)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientFunds
	}
	return nil
}
