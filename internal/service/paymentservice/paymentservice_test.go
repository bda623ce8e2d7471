package paymentservice

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

var testShares = map[domain.SubjectType]int64{
	domain.SubjectOrder:           8000,
	domain.SubjectServiceOrder:    8500,
	domain.SubjectContentPurchase: 9000,
}

func NewMock(t *testing.T) (*Service, *MockRepo, *MockLedger, *MockMachine, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	ledger := NewMockLedger(ctrl)
	machine := NewMockMachine(ctrl)
	txManager := pg.NewMockTXManager(ctrl)

	machines := map[domain.SubjectType]Machine{
		domain.SubjectOrder: machine,
	}
	service := New(repo, ledger, machines, testShares, txManager, notify.NewLogNotifier())
	defer ctrl.Finish()
	return service, repo, ledger, machine, txManager
}

func passThroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()
}

func TestCreate(t *testing.T) {
	service, repo, _, machine, txManager := NewMock(t)
	passThroughTx(txManager)

	tests := []struct {
		name          string
		ref           domain.SubjectRef
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Creates payment for payable order",
			ref:  domain.SubjectRef{Type: domain.SubjectOrder, ID: 10},
			prepareMock: func() {
				machine.EXPECT().Subject(gomock.Any(), 10).Return(&SubjectInfo{
					SellerID: 2, Amount: 10000, Currency: "USD", Payable: true,
				}, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
						assert.Equal(t, int64(10000), p.Amount)
						assert.Equal(t, domain.PaymentPending, p.Status)
						created := *p
						created.ID = 1
						return &created, nil
					},
				)
				machine.EXPECT().AttachPayment(gomock.Any(), 10, 1).Return(nil)
			},
		},
		{
			name: "Rejects subject that is not payable",
			ref:  domain.SubjectRef{Type: domain.SubjectOrder, ID: 11},
			prepareMock: func() {
				machine.EXPECT().Subject(gomock.Any(), 11).Return(&SubjectInfo{Payable: false}, nil)
			},
			expectedError: ErrInvalidSubject,
		},
		{
			name:          "Rejects unknown subject type",
			ref:           domain.SubjectRef{Type: domain.SubjectServiceOrder, ID: 12},
			prepareMock:   func() {},
			expectedError: ErrUnknownSubject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			payment, err := service.Create(context.Background(), 1, tt.ref, domain.MethodCard)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.PaymentPending, payment.Status)
			}
		})
	}
}

func pendingPayment(id int) *domain.Payment {
	return &domain.Payment{
		ID:          id,
		UserID:      1,
		SubjectType: domain.SubjectOrder,
		SubjectID:   10,
		Amount:      10000,
		Currency:    "USD",
		Method:      domain.MethodCard,
		Status:      domain.PaymentProcessing,
	}
}

func TestSettleSuccess(t *testing.T) {
	service, repo, ledger, machine, txManager := NewMock(t)
	passThroughTx(txManager)

	txn := "gw-123"
	repo.EXPECT().GetByID(gomock.Any(), 1).Return(pendingPayment(1), nil)
	repo.EXPECT().SettleTerminal(gomock.Any(), 1, domain.PaymentCompleted, &txn, "").Return(true, nil)
	machine.EXPECT().Subject(gomock.Any(), 10).Return(&SubjectInfo{SellerID: 2, Amount: 10000, Currency: "USD"}, nil)
	// 80% seller split of a $100.00 order.
	ledger.EXPECT().CreditPending(gomock.Any(), 2, int64(8000)).Return(nil)
	machine.EXPECT().OnPaymentConfirmed(gomock.Any(), 10, 1).Return(nil)

	settled := pendingPayment(1)
	settled.Status = domain.PaymentCompleted
	repo.EXPECT().GetByID(gomock.Any(), 1).Return(settled, nil)

	p, applied, err := service.Settle(context.Background(), 1, OutcomeSuccess, txn, "")
	assert.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, domain.PaymentCompleted, p.Status)
}

func TestSettleIdempotentOnTerminal(t *testing.T) {
	service, repo, _, _, _ := NewMock(t)

	done := pendingPayment(1)
	done.Status = domain.PaymentCompleted
	repo.EXPECT().GetByID(gomock.Any(), 1).Return(done, nil)

	p, applied, err := service.Settle(context.Background(), 1, OutcomeSuccess, "gw-123", "")
	assert.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, domain.PaymentCompleted, p.Status)
}

func TestSettleFailure(t *testing.T) {
	service, repo, _, machine, txManager := NewMock(t)
	passThroughTx(txManager)

	txn := "gw-124"
	repo.EXPECT().GetByID(gomock.Any(), 1).Return(pendingPayment(1), nil)
	repo.EXPECT().SettleTerminal(gomock.Any(), 1, domain.PaymentFailed, &txn, "card declined").Return(true, nil)
	machine.EXPECT().OnPaymentFailed(gomock.Any(), 10).Return(nil)

	failed := pendingPayment(1)
	failed.Status = domain.PaymentFailed
	repo.EXPECT().GetByID(gomock.Any(), 1).Return(failed, nil)

	p, applied, err := service.Settle(context.Background(), 1, OutcomeFailure, txn, "card declined")
	assert.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, domain.PaymentFailed, p.Status)
}

func TestSettleLostRace(t *testing.T) {
	service, repo, _, _, txManager := NewMock(t)
	passThroughTx(txManager)

	txn := "gw-125"
	repo.EXPECT().GetByID(gomock.Any(), 1).Return(pendingPayment(1), nil)
	repo.EXPECT().SettleTerminal(gomock.Any(), 1, domain.PaymentCompleted, &txn, "").Return(false, nil)

	done := pendingPayment(1)
	done.Status = domain.PaymentCompleted
	repo.EXPECT().GetByID(gomock.Any(), 1).Return(done, nil)

	_, applied, err := service.Settle(context.Background(), 1, OutcomeSuccess, txn, "")
	assert.NoError(t, err)
	assert.False(t, applied)
}

func TestSettlePaymentNotFound(t *testing.T) {
	service, repo, _, _, _ := NewMock(t)

	repo.EXPECT().GetByID(gomock.Any(), 99).Return(nil, nil)

	_, _, err := service.Settle(context.Background(), 99, OutcomeSuccess, "gw-1", "")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestBeginProcessing(t *testing.T) {
	service, repo, _, _, _ := NewMock(t)

	repo.EXPECT().SetProcessing(gomock.Any(), 1, "gw-123").Return(true, nil)
	assert.NoError(t, service.BeginProcessing(context.Background(), 1, "gw-123"))

	repo.EXPECT().SetProcessing(gomock.Any(), 1, "gw-123").Return(false, nil)
	assert.ErrorIs(t, service.BeginProcessing(context.Background(), 1, "gw-123"), ErrInvalidTransition)
}

func TestSubmitProof(t *testing.T) {
	service, repo, _, _, _ := NewMock(t)

	cardPayment := pendingPayment(1)
	repo.EXPECT().GetByID(gomock.Any(), 1).Return(cardPayment, nil)

	_, err := service.SubmitProof(context.Background(), 1, "proof-1")
	assert.ErrorIs(t, err, ErrNotManualMethod)

	manual := pendingPayment(2)
	manual.Method = domain.MethodManualProof
	manual.Status = domain.PaymentPending
	repo.EXPECT().GetByID(gomock.Any(), 2).Return(manual, nil)
	repo.EXPECT().SetPendingVerification(gomock.Any(), 2, "proof-1").Return(true, nil)

	verifying := *manual
	verifying.Status = domain.PaymentPendingVerification
	repo.EXPECT().GetByID(gomock.Any(), 2).Return(&verifying, nil)

	p, err := service.SubmitProof(context.Background(), 2, "proof-1")
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentPendingVerification, p.Status)
}

func TestRefund(t *testing.T) {
	service, repo, _, machine, txManager := NewMock(t)
	passThroughTx(txManager)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Refunds a completed payment",
			prepareMock: func() {
				done := pendingPayment(1)
				done.Status = domain.PaymentCompleted
				repo.EXPECT().GetByID(gomock.Any(), 1).Return(done, nil)
				repo.EXPECT().SetRefunded(gomock.Any(), 1).Return(true, nil)
				machine.EXPECT().OnRefunded(gomock.Any(), 10).Return(nil)

				refunded := pendingPayment(1)
				refunded.Status = domain.PaymentRefunded
				repo.EXPECT().GetByID(gomock.Any(), 1).Return(refunded, nil)
			},
		},
		{
			name: "Rejects refund of a non-completed payment",
			prepareMock: func() {
				repo.EXPECT().GetByID(gomock.Any(), 1).Return(pendingPayment(1), nil)
				repo.EXPECT().SetRefunded(gomock.Any(), 1).Return(false, nil)
			},
			expectedError: ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			p, err := service.Refund(context.Background(), 1)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.PaymentRefunded, p.Status)
			}
		})
	}
}

func TestSettleRollsBackOnLedgerError(t *testing.T) {
	service, repo, ledger, machine, txManager := NewMock(t)
	passThroughTx(txManager)

	txn := "gw-126"
	repo.EXPECT().GetByID(gomock.Any(), 1).Return(pendingPayment(1), nil)
	repo.EXPECT().SettleTerminal(gomock.Any(), 1, domain.PaymentCompleted, &txn, "").Return(true, nil)
	machine.EXPECT().Subject(gomock.Any(), 10).Return(&SubjectInfo{SellerID: 2, Amount: 10000, Currency: "USD"}, nil)
	ledger.EXPECT().CreditPending(gomock.Any(), 2, int64(8000)).Return(errors.New("db error"))

	_, _, err := service.Settle(context.Background(), 1, OutcomeSuccess, txn, "")
	assert.Error(t, err)
}
