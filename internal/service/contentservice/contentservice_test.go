package contentservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/notify"
	"github.com/settleflow/settleflow/internal/pg"
)

const (
	buyerID  = 1
	authorID = 3
)

func NewMock(t *testing.T) (*Service, *MockRepo, *MockLedger) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	ledger := NewMockLedger(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()
	service := New(repo, ledger, txManager, notify.NewLogNotifier(), 9000)
	defer ctrl.Finish()
	return service, repo, ledger
}

func testLicense(status domain.LicenseStatus) *domain.ContentLicense {
	return &domain.ContentLicense{
		ID:        30,
		BuyerID:   buyerID,
		AuthorID:  authorID,
		ContentID: 300,
		Amount:    5000,
		Currency:  "USD",
		Status:    status,
		Access:    domain.AccessLifetime,
	}
}

func TestPurchase(t *testing.T) {
	service, repo, _ := NewMock(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cl *domain.ContentLicense) (*domain.ContentLicense, error) {
			assert.Equal(t, domain.LicensePending, cl.Status)
			created := *cl
			created.ID = 30
			return &created, nil
		},
	)

	cl, err := service.Purchase(context.Background(), buyerID, PurchaseInput{
		AuthorID: authorID, ContentID: 300, Amount: 5000, Currency: "USD",
		Access: domain.AccessLifetime,
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.LicensePending, cl.Status)
}

func TestPurchaseFreeContentActivatesImmediately(t *testing.T) {
	service, repo, _ := NewMock(t)

	free := testLicense(domain.LicensePending)
	free.Amount = 0
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(free, nil)
	repo.EXPECT().Activate(gomock.Any(), 30, nil).Return(true, nil)
	active := testLicense(domain.LicenseActive)
	active.Amount = 0
	repo.EXPECT().GetByID(gomock.Any(), 30).Return(active, nil)

	cl, err := service.Purchase(context.Background(), buyerID, PurchaseInput{
		AuthorID: authorID, ContentID: 300, Amount: 0, Currency: "USD",
		Access: domain.AccessLifetime,
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.LicenseActive, cl.Status)
}

func TestDownload(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	quota := 0

	tests := []struct {
		name          string
		userID        int
		prepareMock   func(repo *MockRepo)
		expectedError error
	}{
		{
			name:   "Unlimited lifetime license passes",
			userID: buyerID,
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().GetByID(gomock.Any(), 30).Return(testLicense(domain.LicenseActive), nil)
				repo.EXPECT().ConsumeDownload(gomock.Any(), 30).Return(true, nil)
				repo.EXPECT().GetByID(gomock.Any(), 30).Return(testLicense(domain.LicenseActive), nil)
			},
		},
		{
			name:   "Stranger is rejected",
			userID: 99,
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().GetByID(gomock.Any(), 30).Return(testLicense(domain.LicenseActive), nil)
			},
			expectedError: ErrNotLicenseHolder,
		},
		{
			name:   "Pending license is not downloadable",
			userID: buyerID,
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().GetByID(gomock.Any(), 30).Return(testLicense(domain.LicensePending), nil)
			},
			expectedError: ErrLicenseNotActive,
		},
		{
			name:   "Elapsed window expires the license",
			userID: buyerID,
			prepareMock: func(repo *MockRepo) {
				lic := testLicense(domain.LicenseActive)
				lic.Access = domain.AccessWindow
				lic.ExpiresAt = &expired
				repo.EXPECT().GetByID(gomock.Any(), 30).Return(lic, nil)
				repo.EXPECT().UpdateStatus(gomock.Any(), 30, domain.LicenseActive, domain.LicenseExpired).Return(true, nil)
			},
			expectedError: ErrLicenseExpired,
		},
		{
			name:   "Exhausted quota is rejected",
			userID: buyerID,
			prepareMock: func(repo *MockRepo) {
				lic := testLicense(domain.LicenseActive)
				lic.DownloadsLeft = &quota
				repo.EXPECT().GetByID(gomock.Any(), 30).Return(lic, nil)
				repo.EXPECT().ConsumeDownload(gomock.Any(), 30).Return(false, nil)
			},
			expectedError: ErrQuotaExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := NewMock(t)
			tt.prepareMock(repo)

			_, err := service.Download(context.Background(), tt.userID, 30)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOnPaymentConfirmed(t *testing.T) {
	service, repo, ledger := NewMock(t)

	repo.EXPECT().GetByID(gomock.Any(), 30).Return(testLicense(domain.LicensePending), nil)
	repo.EXPECT().SetPaymentID(gomock.Any(), 30, 5).Return(nil)
	repo.EXPECT().Activate(gomock.Any(), 30, nil).Return(true, nil)
	ledger.EXPECT().ReleaseToAvailable(gomock.Any(), authorID, int64(4500)).Return(nil)

	err := service.OnPaymentConfirmed(context.Background(), 30, 5)
	assert.NoError(t, err)
}

func TestOnPaymentConfirmedSetsWindow(t *testing.T) {
	service, repo, ledger := NewMock(t)

	lic := testLicense(domain.LicensePending)
	lic.Access = domain.AccessWindow
	lic.WindowSecs = 3600
	repo.EXPECT().GetByID(gomock.Any(), 30).Return(lic, nil)
	repo.EXPECT().SetPaymentID(gomock.Any(), 30, 5).Return(nil)
	repo.EXPECT().Activate(gomock.Any(), 30, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int, expiresAt *time.Time) (bool, error) {
			assert.NotNil(t, expiresAt)
			assert.WithinDuration(t, time.Now().Add(time.Hour), *expiresAt, 5*time.Second)
			return true, nil
		},
	)
	ledger.EXPECT().ReleaseToAvailable(gomock.Any(), authorID, int64(4500)).Return(nil)

	err := service.OnPaymentConfirmed(context.Background(), 30, 5)
	assert.NoError(t, err)
}

func TestRevoke(t *testing.T) {
	service, repo, _ := NewMock(t)

	repo.EXPECT().GetByID(gomock.Any(), 30).Return(testLicense(domain.LicenseActive), nil)
	repo.EXPECT().UpdateStatus(gomock.Any(), 30, domain.LicenseActive, domain.LicenseRevoked).Return(true, nil)

	err := service.Revoke(context.Background(), 30)
	assert.NoError(t, err)
}

func TestRevokeTerminal(t *testing.T) {
	service, repo, _ := NewMock(t)

	repo.EXPECT().GetByID(gomock.Any(), 30).Return(testLicense(domain.LicenseRevoked), nil)

	err := service.Revoke(context.Background(), 30)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOnRefunded(t *testing.T) {
	service, repo, ledger := NewMock(t)

	repo.EXPECT().GetByID(gomock.Any(), 30).Return(testLicense(domain.LicenseActive), nil)
	repo.EXPECT().UpdateStatus(gomock.Any(), 30, domain.LicenseActive, domain.LicenseRevoked).Return(true, nil)
	ledger.EXPECT().DebitForRefund(gomock.Any(), authorID, int64(4500)).Return(nil)

	err := service.OnRefunded(context.Background(), 30)
	assert.NoError(t, err)
}

func TestOnRefundedRejectsOffTableEdges(t *testing.T) {
	for _, status := range []domain.LicenseStatus{
		domain.LicenseExpired,
		domain.LicenseRevoked,
	} {
		t.Run(string(status), func(t *testing.T) {
			service, repo, _ := NewMock(t)

			repo.EXPECT().GetByID(gomock.Any(), 30).Return(testLicense(status), nil)

			err := service.OnRefunded(context.Background(), 30)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}
