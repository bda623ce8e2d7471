package contentservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/notify"
	"github.com/settleflow/settleflow/internal/pg"
	"github.com/settleflow/settleflow/internal/service/paymentservice"
)

type Repo interface {
	Create(ctx context.Context, cl *domain.ContentLicense) (*domain.ContentLicense, error)
	GetByID(ctx context.Context, id int) (*domain.ContentLicense, error)
	FindByBuyerID(ctx context.Context, buyerID int) ([]domain.ContentLicense, error)
	UpdateStatus(ctx context.Context, id int, from, to domain.LicenseStatus) (bool, error)
	Activate(ctx context.Context, id int, expiresAt *time.Time) (bool, error)
	ConsumeDownload(ctx context.Context, id int) (bool, error)
	SetPaymentID(ctx context.Context, id, paymentID int) error
}

type Ledger interface {
	ReleaseToAvailable(ctx context.Context, userID int, amount int64) error
	DebitForRefund(ctx context.Context, userID int, amount int64) error
}

var (
	ErrLicenseNotFound   = errors.New("content license not found")
	ErrLicenseNotActive  = errors.New("content license is not active")
	ErrLicenseExpired    = errors.New("content license access window has expired")
	ErrQuotaExhausted    = errors.New("content license download quota exhausted")
	ErrNotLicenseHolder  = errors.New("user does not hold this license")
	ErrInvalidTransition = errors.New("invalid license transition")
)

// Service manages content licenses: purchase, access windows, download
// quotas and revocation.
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

type PurchaseInput struct {
	AuthorID      int
	ContentID     int
	Amount        int64
	Currency      string
	Access        domain.AccessKind
	Window        time.Duration
	DownloadQuota *int
}

// Purchase creates a license. Free content activates immediately and never
// enters the payment pipeline.
func (s *Service) Purchase(ctx context.Context, buyerID int, in PurchaseInput) (*domain.ContentLicense, error) {
	cl := &domain.ContentLicense{
		BuyerID:       buyerID,
		AuthorID:      in.AuthorID,
		ContentID:     in.ContentID,
		Amount:        in.Amount,
		Currency:      in.Currency,
		Status:        domain.LicensePending,
		Access:        in.Access,
		DownloadsLeft: in.DownloadQuota,
	}
	if in.Access == domain.AccessWindow {
		cl.WindowSecs = int64(in.Window / time.Second)
	}

	created, err := s.repo.Create(ctx, cl)
	if err != nil {
		zap.L().Error("can't create content license", zap.Error(err))
		return nil, err
	}

	if created.Amount == 0 {
		ok, err := s.repo.Activate(ctx, created.ID, s.windowEnd(created))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrInvalidTransition
		}
		return s.repo.GetByID(ctx, created.ID)
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (*domain.ContentLicense, error) {
	cl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cl == nil {
		return nil, ErrLicenseNotFound
	}
	return cl, nil
}

func (s *Service) ListByBuyer(ctx context.Context, buyerID int) ([]domain.ContentLicense, error) {
	return s.repo.FindByBuyerID(ctx, buyerID)
}

// Download validates the access window and quota, lazily expiring the
// license when the window has elapsed.
func (s *Service) Download(ctx context.Context, buyerID, id int) (*domain.ContentLicense, error) {
	cl, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cl.BuyerID != buyerID {
		return nil, ErrNotLicenseHolder
	}
	if cl.Status != domain.LicenseActive {
		return nil, ErrLicenseNotActive
	}

	if cl.ExpiresAt != nil && time.Now().After(*cl.ExpiresAt) {
		if _, err := s.repo.UpdateStatus(ctx, id, domain.LicenseActive, domain.LicenseExpired); err != nil {
			zap.L().Error("can't expire license", zap.Int("licenseID", id), zap.Error(err))
		}
		return nil, ErrLicenseExpired
	}

	ok, err := s.repo.ConsumeDownload(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrQuotaExhausted
	}
	return s.repo.GetByID(ctx, id)
}

// Revoke is an administrative action; it does not touch the ledger.
func (s *Service) Revoke(ctx context.Context, id int) error {
	cl, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !cl.Status.CanTransition(domain.LicenseRevoked) {
		return ErrInvalidTransition
	}
	ok, err := s.repo.UpdateStatus(ctx, id, cl.Status, domain.LicenseRevoked)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}

func (s *Service) windowEnd(cl *domain.ContentLicense) *time.Time {
	if cl.Access != domain.AccessWindow || cl.WindowSecs <= 0 {
		return nil
	}
	end := time.Now().Add(time.Duration(cl.WindowSecs) * time.Second)
	return &end
}

// Subject implements the settlement-facing machine contract.
func (s *Service) Subject(ctx context.Context, subjectID int) (*paymentservice.SubjectInfo, error) {
	cl, err := s.repo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if cl == nil {
		return nil, ErrLicenseNotFound
	}
	return &paymentservice.SubjectInfo{
		SellerID: cl.AuthorID,
		Amount:   cl.Amount,
		Currency: cl.Currency,
		Payable:  cl.Status == domain.LicensePending && cl.Amount > 0,
	}, nil
}

func (s *Service) AttachPayment(ctx context.Context, subjectID, paymentID int) error {
	return s.repo.SetPaymentID(ctx, subjectID, paymentID)
}

// OnPaymentConfirmed activates the license and immediately releases the
// author share: content delivery is instant, there is no escrow phase.
func (s *Service) OnPaymentConfirmed(ctx context.Context, subjectID, paymentID int) error {
	cl, err := s.GetByID(ctx, subjectID)
	if err != nil {
		return err
	}
	if err := s.repo.SetPaymentID(ctx, subjectID, paymentID); err != nil {
		return err
	}
	ok, err := s.repo.Activate(ctx, subjectID, s.windowEnd(cl))
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}

	share := domain.Share(cl.Amount, s.shareBP)
	if err := s.ledger.ReleaseToAvailable(ctx, cl.AuthorID, share); err != nil {
		return err
	}

	s.notifier.Notify(ctx, cl.BuyerID, "license.activated", map[string]any{
		"license_id": subjectID,
	})
	return nil
}

func (s *Service) OnPaymentFailed(ctx context.Context, subjectID int) error {
	zap.L().Info("payment failed, license remains pending", zap.Int("licenseID", subjectID))
	return nil
}

func (s *Service) OnRefunded(ctx context.Context, subjectID int) error {
	cl, err := s.GetByID(ctx, subjectID)
	if err != nil {
		return err
	}
	// An expired or already revoked license has no revoke edge; the refund
	// is rejected rather than writing an off-table transition.
	if !cl.Status.CanTransition(domain.LicenseRevoked) {
		return ErrInvalidTransition
	}
	ok, err := s.repo.UpdateStatus(ctx, subjectID, cl.Status, domain.LicenseRevoked)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	share := domain.Share(cl.Amount, s.shareBP)
	return s.ledger.DebitForRefund(ctx, cl.AuthorID, share)
}
