package orderservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/notify"
	"github.com/settleflow/settleflow/internal/pg"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *MockLedger, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	ledger := NewMockLedger(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	service := New(repo, ledger, txManager, notify.NewLogNotifier(), 8000)
	defer ctrl.Finish()
	return service, repo, ledger, txManager
}

func passThroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()
}

func testOrder(status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:            10,
		BuyerID:       1,
		SellerID:      2,
		ProductID:     100,
		Amount:        10000,
		Currency:      "USD",
		Status:        status,
		StockReserved: true,
	}
}

func TestCreate(t *testing.T) {
	service, repo, _, _ := NewMock(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o *domain.Order) (*domain.Order, error) {
			assert.Equal(t, domain.OrderPending, o.Status)
			assert.True(t, o.StockReserved)
			created := *o
			created.ID = 10
			return &created, nil
		},
	)

	order, err := service.Create(context.Background(), 1, CreateOrderInput{
		SellerID: 2, ProductID: 100, Amount: 10000, Currency: "USD",
	})
	assert.NoError(t, err)
	assert.Equal(t, 10, order.ID)
}

func TestMarkReceived(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		prepareMock   func(repo *MockRepo, ledger *MockLedger)
		expectedError error
	}{
		{
			name:   "Completes order and releases seller share",
			userID: 1,
			prepareMock: func(repo *MockRepo, ledger *MockLedger) {
				repo.EXPECT().GetByID(gomock.Any(), 10).Return(testOrder(domain.OrderProcessing), nil)
				repo.EXPECT().UpdateStatus(gomock.Any(), 10, domain.OrderProcessing, domain.OrderCompleted).Return(true, nil)
				ledger.EXPECT().ReleaseToAvailable(gomock.Any(), 2, int64(8000)).Return(nil)
				repo.EXPECT().GetByID(gomock.Any(), 10).Return(testOrder(domain.OrderCompleted), nil)
			},
		},
		{
			name:   "Rejects stranger",
			userID: 99,
			prepareMock: func(repo *MockRepo, ledger *MockLedger) {
				repo.EXPECT().GetByID(gomock.Any(), 10).Return(testOrder(domain.OrderProcessing), nil)
			},
			expectedError: ErrNotOrderParty,
		},
		{
			name:   "Rejects unpaid order",
			userID: 1,
			prepareMock: func(repo *MockRepo, ledger *MockLedger) {
				repo.EXPECT().GetByID(gomock.Any(), 10).Return(testOrder(domain.OrderPending), nil)
				repo.EXPECT().UpdateStatus(gomock.Any(), 10, domain.OrderProcessing, domain.OrderCompleted).Return(false, nil)
			},
			expectedError: ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, ledger, txManager := NewMock(t)
			passThroughTx(txManager)
			tt.prepareMock(repo, ledger)

			_, err := service.MarkReceived(context.Background(), tt.userID, 10)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCancel(t *testing.T) {
	paymentID := 5

	tests := []struct {
		name          string
		prepareMock   func(repo *MockRepo)
		expectedError error
	}{
		{
			name: "Cancels unpaid order and restores stock",
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().GetByID(gomock.Any(), 10).Return(testOrder(domain.OrderPending), nil)
				repo.EXPECT().UpdateStatus(gomock.Any(), 10, domain.OrderPending, domain.OrderCancelled).Return(true, nil)
				repo.EXPECT().ReleaseStock(gomock.Any(), 10).Return(nil)
				repo.EXPECT().GetByID(gomock.Any(), 10).Return(testOrder(domain.OrderCancelled), nil)
			},
		},
		{
			name: "Refuses to cancel a paid order",
			prepareMock: func(repo *MockRepo) {
				paid := testOrder(domain.OrderProcessing)
				paid.PaymentID = &paymentID
				repo.EXPECT().GetByID(gomock.Any(), 10).Return(paid, nil)
			},
			expectedError: ErrAlreadyPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _, txManager := NewMock(t)
			passThroughTx(txManager)
			tt.prepareMock(repo)

			order, err := service.Cancel(context.Background(), 1, 10)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.OrderCancelled, order.Status)
			}
		})
	}
}

func TestSubject(t *testing.T) {
	service, repo, _, _ := NewMock(t)

	repo.EXPECT().GetByID(gomock.Any(), 10).Return(testOrder(domain.OrderPending), nil)

	info, err := service.Subject(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, 2, info.SellerID)
	assert.Equal(t, int64(10000), info.Amount)
	assert.True(t, info.Payable)
}

func TestOnPaymentConfirmed(t *testing.T) {
	service, repo, _, _ := NewMock(t)

	repo.EXPECT().SetPaymentID(gomock.Any(), 10, 5).Return(nil)
	repo.EXPECT().UpdateStatus(gomock.Any(), 10, domain.OrderPending, domain.OrderProcessing).Return(true, nil)

	err := service.OnPaymentConfirmed(context.Background(), 10, 5)
	assert.NoError(t, err)
}

func TestOnRefunded(t *testing.T) {
	service, repo, ledger, _ := NewMock(t)

	repo.EXPECT().GetByID(gomock.Any(), 10).Return(testOrder(domain.OrderCompleted), nil)
	repo.EXPECT().UpdateStatus(gomock.Any(), 10, domain.OrderCompleted, domain.OrderRefunded).Return(true, nil)
	ledger.EXPECT().DebitForRefund(gomock.Any(), 2, int64(8000)).Return(nil)

	err := service.OnRefunded(context.Background(), 10)
	assert.NoError(t, err)
}

func TestOnRefundedLedgerError(t *testing.T) {
	service, repo, ledger, _ := NewMock(t)

	repo.EXPECT().GetByID(gomock.Any(), 10).Return(testOrder(domain.OrderCompleted), nil)
	repo.EXPECT().UpdateStatus(gomock.Any(), 10, domain.OrderCompleted, domain.OrderRefunded).Return(true, nil)
	ledger.EXPECT().DebitForRefund(gomock.Any(), 2, int64(8000)).Return(errors.New("db down"))

	err := service.OnRefunded(context.Background(), 10)
	assert.Error(t, err)
}
