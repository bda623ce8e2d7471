package serviceorderservice

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
	Create(ctx context.Context, so *domain.ServiceOrder) (*domain.ServiceOrder, error)
	GetByID(ctx context.Context, id int) (*domain.ServiceOrder, error)
	FindByBuyerID(ctx context.Context, buyerID int) ([]domain.ServiceOrder, error)
	CountActiveByProvider(ctx context.Context, providerID int) (int, error)
	UpdateStatus(ctx context.Context, id int, from, to domain.ServiceOrderStatus) (bool, error)
	RequestRevision(ctx context.Context, id int) (bool, error)
	SetPaymentID(ctx context.Context, id, paymentID int) error
	MarkPaid(ctx context.Context, id, paymentID int) (bool, error)
}

type Ledger interface {
	ReleaseToAvailable(ctx context.Context, userID int, amount int64) error
	DebitForRefund(ctx context.Context, userID int, amount int64) error
}

var (
	ErrServiceOrderNotFound  = errors.New("service order not found")
	ErrInvalidTransition     = errors.New("invalid service order transition")
	ErrNotOrderParty         = errors.New("user is not a party to this service order")
	ErrProviderBusy          = errors.New("provider has reached the in-flight order ceiling")
	ErrNoRevisionsRemaining  = errors.New("no revisions remaining")
	ErrNotPaid               = errors.New("service order has no confirmed payment")
	ErrAlreadyPaid           = errors.New("service order already has a payment, use the refund flow")
	ErrUnknownAction         = errors.New("unknown status action")
)

// Action is a buyer/provider event applied to the machine.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionStart    Action = "start"
	ActionDeliver  Action = "deliver"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// Service is the service-order state machine with its negotiation
// sub-states.
type Service struct {
	repo        Repo
	ledger      Ledger
	txManager   pg.TXManager
	notifier    notify.Notifier
	shareBP     int64
	maxInFlight int
	revisions   int
}

func New(repo Repo, ledger Ledger, txManager pg.TXManager, notifier notify.Notifier, shareBP int64, maxInFlight, revisions int) *Service {
	return &Service{
		repo:        repo,
		ledger:      ledger,
		txManager:   txManager,
		notifier:    notifier,
		shareBP:     shareBP,
		maxInFlight: maxInFlight,
		revisions:   revisions,
	}
}

type CreateServiceOrderInput struct {
	ProviderID int
	ServiceID  int
	Amount     int64
	Currency   string
}

// Create enforces the provider-capacity guard: it is backpressure, not a
// courtesy limit.
func (s *Service) Create(ctx context.Context, buyerID int, in CreateServiceOrderInput) (*domain.ServiceOrder, error) {
	inFlight, err := s.repo.CountActiveByProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}
	if inFlight >= s.maxInFlight {
		zap.L().Warn("provider at capacity, rejecting service order",
			zap.Int("providerID", in.ProviderID),
			zap.Int("inFlight", inFlight),
		)
		return nil, ErrProviderBusy
	}

	so, err := s.repo.Create(ctx, &domain.ServiceOrder{
		BuyerID:       buyerID,
		ProviderID:    in.ProviderID,
		ServiceID:     in.ServiceID,
		Amount:        in.Amount,
		Currency:      in.Currency,
		Status:        domain.ServiceOrderPending,
		RevisionsLeft: s.revisions,
	})
	if err != nil {
		zap.L().Error("can't create service order", zap.Error(err))
		return nil, err
	}
	return so, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (*domain.ServiceOrder, error) {
	so, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if so == nil {
		return nil, ErrServiceOrderNotFound
	}
	return so, nil
}

func (s *Service) ListByBuyer(ctx context.Context, buyerID int) ([]domain.ServiceOrder, error) {
	return s.repo.FindByBuyerID(ctx, buyerID)
}

// Apply runs one machine action on behalf of a principal.
func (s *Service) Apply(ctx context.Context, userID, id int, action Action) (*domain.ServiceOrder, error) {
	so, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch action {
	case ActionAccept, ActionStart, ActionDeliver:
		if so.ProviderID != userID {
			return nil, ErrNotOrderParty
		}
	case ActionComplete, ActionCancel:
		if so.BuyerID != userID {
			return nil, ErrNotOrderParty
		}
	default:
		return nil, ErrUnknownAction
	}

	switch action {
	case ActionAccept:
		// A linked payment row is not enough: it may still be pending or
		// have failed. Work starts only once the settlement confirmed.
		if so.PaidAt == nil {
			return nil, ErrNotPaid
		}
		err = s.transition(ctx, id, so.Status, domain.ServiceOrderAccepted)
	case ActionStart:
		err = s.transition(ctx, id, so.Status, domain.ServiceOrderInProgress)
	case ActionDeliver:
		// Delivery is legal both from in_progress and when reworking a
		// requested revision.
		err = s.transition(ctx, id, so.Status, domain.ServiceOrderDelivered)
	case ActionComplete:
		err = s.complete(ctx, so)
	case ActionCancel:
		if so.PaidAt != nil {
			return nil, ErrAlreadyPaid
		}
		err = s.transition(ctx, id, so.Status, domain.ServiceOrderCancelled)
	}
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *Service) transition(ctx context.Context, id int, from, to domain.ServiceOrderStatus) error {
	if !from.CanTransition(to) {
		return ErrInvalidTransition
	}
	ok, err := s.repo.UpdateStatus(ctx, id, from, to)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}

func (s *Service) complete(ctx context.Context, so *domain.ServiceOrder) error {
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		ok, err := s.repo.UpdateStatus(ctx, so.ID, domain.ServiceOrderDelivered, domain.ServiceOrderCompleted)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidTransition
		}
		share := domain.Share(so.Amount, s.shareBP)
		return s.ledger.ReleaseToAvailable(ctx, so.ProviderID, share)
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, so.ProviderID, "service_order.completed", map[string]any{
		"service_order_id": so.ID,
	})
	return nil
}

// RequestRevision decrements the bounded revision counter; the third request
// on a two-revision order fails.
func (s *Service) RequestRevision(ctx context.Context, buyerID, id int) (*domain.ServiceOrder, error) {
	so, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if so.BuyerID != buyerID {
		return nil, ErrNotOrderParty
	}
	if so.Status != domain.ServiceOrderDelivered {
		return nil, ErrInvalidTransition
	}
	if so.RevisionsLeft <= 0 {
		return nil, ErrNoRevisionsRemaining
	}

	ok, err := s.repo.RequestRevision(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		// The guarded update re-checks status and counter; a concurrent
		// writer got there first.
		return nil, ErrNoRevisionsRemaining
	}

	s.notifier.Notify(ctx, so.ProviderID, "service_order.revision_requested", map[string]any{
		"service_order_id": id,
	})
	return s.GetByID(ctx, id)
}

// Subject implements the settlement-facing machine contract.
func (s *Service) Subject(ctx context.Context, subjectID int) (*paymentservice.SubjectInfo, error) {
	so, err := s.repo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if so == nil {
		return nil, ErrServiceOrderNotFound
	}
	return &paymentservice.SubjectInfo{
		SellerID: so.ProviderID,
		Amount:   so.Amount,
		Currency: so.Currency,
		// A stale payment_id from a failed attempt does not block retry;
		// the payments table enforces one active payment per subject.
		Payable: so.Status == domain.ServiceOrderPending && so.PaidAt == nil,
	}, nil
}

func (s *Service) AttachPayment(ctx context.Context, subjectID, paymentID int) error {
	return s.repo.SetPaymentID(ctx, subjectID, paymentID)
}

// OnPaymentConfirmed stamps the order paid; it stays pending until the
// provider accepts, which is gated on that stamp.
func (s *Service) OnPaymentConfirmed(ctx context.Context, subjectID, paymentID int) error {
	ok, err := s.repo.MarkPaid(ctx, subjectID, paymentID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}

func (s *Service) OnPaymentFailed(ctx context.Context, subjectID int) error {
	// The order stays pending and unpaid; the buyer may retry with a new
	// payment.
	zap.L().Info("payment failed, service order remains pending", zap.Int("serviceOrderID", subjectID))
	return nil
}

func (s *Service) OnRefunded(ctx context.Context, subjectID int) error {
	so, err := s.GetByID(ctx, subjectID)
	if err != nil {
		return err
	}
	// Refund cancels the work order, but only along a legal edge. Once
	// delivered or completed the money dispute is out of scope for an
	// automatic reversal.
	if err := s.transition(ctx, subjectID, so.Status, domain.ServiceOrderCancelled); err != nil {
		return err
	}
	share := domain.Share(so.Amount, s.shareBP)
	return s.ledger.DebitForRefund(ctx, so.ProviderID, share)
}
