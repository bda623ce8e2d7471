package orderservice

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/notify"
	"github.com/settleflow/settleflow/internal/pg"
	"github.com/settleflow/settleflow/internal/service/paymentservice"
)

type Repo interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int) (*domain.Order, error)
	FindByBuyerID(ctx context.Context, buyerID int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int, from, to domain.OrderStatus) (bool, error)
	SetPaymentID(ctx context.Context, id, paymentID int) error
	ReleaseStock(ctx context.Context, id int) error
}

type Ledger interface {
	ReleaseToAvailable(ctx context.Context, userID int, amount int64) error
	DebitForRefund(ctx context.Context, userID int, amount int64) error
}

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order transition")
	ErrNotOrderParty     = errors.New("user is not a party to this order")
	ErrAlreadyPaid       = errors.New("order already has a payment, use the refund flow")
)

// Service is the product-order state machine.
type Service struct {
	repo      Repo
	ledger    Ledger
	txManager pg.TXManager
	notifier  notify.Notifier
	shareBP   int64
}

func New(repo Repo, ledger Ledger, txManager pg.TXManager, notifier notify.Notifier, shareBP int64) *Service {
	return &Service{
		repo:      repo,
		ledger:    ledger,
		txManager: txManager,
		notifier:  notifier,
		shareBP:   shareBP,
	}
}

type CreateOrderInput struct {
	SellerID  int
	ProductID int
	Amount    int64
	Currency  string
}

func (s *Service) Create(ctx context.Context, buyerID int, in CreateOrderInput) (*domain.Order, error) {
	order, err := s.repo.Create(ctx, &domain.Order{
		BuyerID:       buyerID,
		SellerID:      in.SellerID,
		ProductID:     in.ProductID,
		Amount:        in.Amount,
		Currency:      in.Currency,
		Status:        domain.OrderPending,
		StockReserved: true,
	})
	if err != nil {
		zap.L().Error("can't create order", zap.Error(err))
		return nil, err
	}
	zap.L().Info("order created", zap.Int("orderID", order.ID), zap.Int("buyerID", buyerID))
	return order, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *Service) ListByBuyer(ctx context.Context, buyerID int) ([]domain.Order, error) {
	return s.repo.FindByBuyerID(ctx, buyerID)
}

// MarkReceived is the buyer's completion step; entering completed releases
// the seller's held earnings to available.
func (s *Service) MarkReceived(ctx context.Context, buyerID, orderID int) (*domain.Order, error) {
	order, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, ErrNotOrderParty
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		ok, err := s.repo.UpdateStatus(ctx, orderID, domain.OrderProcessing, domain.OrderCompleted)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidTransition
		}
		share := domain.Share(order.Amount, s.shareBP)
		return s.ledger.ReleaseToAvailable(ctx, order.SellerID, share)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, order.SellerID, "order.completed", map[string]any{
		"order_id": orderID,
	})
	return s.GetByID(ctx, orderID)
}

// Cancel is buyer cancellation before payment; it restores reserved stock.
// Cancellation after payment is the refund flow, never this path.
func (s *Service) Cancel(ctx context.Context, buyerID, orderID int) (*domain.Order, error) {
	order, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, ErrNotOrderParty
	}
	if order.PaymentID != nil {
		return nil, ErrAlreadyPaid
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		ok, err := s.repo.UpdateStatus(ctx, orderID, domain.OrderPending, domain.OrderCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidTransition
		}
		return s.repo.ReleaseStock(ctx, orderID)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, orderID)
}

// Subject implements the settlement-facing machine contract.
func (s *Service) Subject(ctx context.Context, subjectID int) (*paymentservice.SubjectInfo, error) {
	order, err := s.repo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return &paymentservice.SubjectInfo{
		SellerID: order.SellerID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Payable:  order.Status == domain.OrderPending,
	}, nil
}

func (s *Service) AttachPayment(ctx context.Context, subjectID, paymentID int) error {
	return s.repo.SetPaymentID(ctx, subjectID, paymentID)
}

func (s *Service) OnPaymentConfirmed(ctx context.Context, subjectID, paymentID int) error {
	if err := s.repo.SetPaymentID(ctx, subjectID, paymentID); err != nil {
		return err
	}
	ok, err := s.repo.UpdateStatus(ctx, subjectID, domain.OrderPending, domain.OrderProcessing)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}

func (s *Service) OnPaymentFailed(ctx context.Context, subjectID int) error {
	// The order stays pending; the buyer may retry with another method.
	zap.L().Info("payment failed, order remains pending", zap.Int("orderID", subjectID))
	return nil
}

func (s *Service) OnRefunded(ctx context.Context, subjectID int) error {
	order, err := s.GetByID(ctx, subjectID)
	if err != nil {
		return err
	}
	ok, err := s.repo.UpdateStatus(ctx, subjectID, domain.OrderCompleted, domain.OrderRefunded)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	share := domain.Share(order.Amount, s.shareBP)
	return s.ledger.DebitForRefund(ctx, order.SellerID, share)
}
