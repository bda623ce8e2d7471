package paymentrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/settleflow/settleflow/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()
	return repo, mockDB
}

func paymentRows(status domain.PaymentStatus, gatewayTxnID any) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "user_id", "subject_type", "subject_id", "amount", "currency",
		"method", "status", "gateway_txn_id", "failure_reason", "created_at", "updated_at",
	}).AddRow(1, 1, domain.SubjectOrder, 10, int64(10000), "USD",
		domain.MethodCard, status, gatewayTxnID, "", now, now)
}

func strPtr(s string) *string { return &s }

func uniqueViolation() *pgconn.PgError {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
}

func TestRepository_Create(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr error
	}{
		{
			name: "Creates pending payment",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO payments`)).
					WithArgs(1, domain.SubjectOrder, 10, int64(10000), "USD", domain.MethodCard, domain.PaymentPending).
					WillReturnRows(paymentRows(domain.PaymentPending, nil))
			},
		},
		{
			name: "Second active payment for the subject is rejected",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO payments`)).
					WithArgs(1, domain.SubjectOrder, 10, int64(10000), "USD", domain.MethodCard, domain.PaymentPending).
					WillReturnError(uniqueViolation())
			},
			expectErr: ErrSubjectAlreadyPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			p, err := repo.Create(context.Background(), &domain.Payment{
				UserID: 1, SubjectType: domain.SubjectOrder, SubjectID: 10,
				Amount: 10000, Currency: "USD", Method: domain.MethodCard,
				Status: domain.PaymentPending,
			})
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, p.ID)
			}
		})
	}
}

func TestRepository_GetByGatewayTxnID(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM payments WHERE gateway_txn_id = $1`)).
		WithArgs("gw-123").
		WillReturnRows(paymentRows(domain.PaymentProcessing, strPtr("gw-123")))

	p, err := repo.GetByGatewayTxnID(context.Background(), "gw-123")
	assert.NoError(t, err)
	assert.Equal(t, "gw-123", *p.GatewayTxnID)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM payments WHERE gateway_txn_id = $1`)).
		WithArgs("gw-void").
		WillReturnError(pgx.ErrNoRows)

	p, err = repo.GetByGatewayTxnID(context.Background(), "gw-void")
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestRepository_SetProcessing(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		applied   bool
		expectErr error
	}{
		{
			name: "Pins gateway txn and flips to processing",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(`SET status = $2, gateway_txn_id = $3`)).
					WithArgs(1, domain.PaymentProcessing, "gw-123", domain.PaymentPending).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			applied: true,
		},
		{
			name: "No-op when already pinned",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(`SET status = $2, gateway_txn_id = $3`)).
					WithArgs(1, domain.PaymentProcessing, "gw-123", domain.PaymentPending).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
		},
		{
			name: "Gateway txn already used by another payment",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(`SET status = $2, gateway_txn_id = $3`)).
					WithArgs(1, domain.PaymentProcessing, "gw-123", domain.PaymentPending).
					WillReturnError(uniqueViolation())
			},
			expectErr: ErrDuplicateGatewayTxn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			applied, err := repo.SetProcessing(context.Background(), 1, "gw-123")
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.applied, applied)
			}
		})
	}
}

func TestRepository_SettleTerminal(t *testing.T) {
	txn := "gw-123"

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		applied   bool
	}{
		{
			name: "Settles a processing payment",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(`gateway_txn_id = COALESCE(gateway_txn_id, $3)`)).
					WithArgs(1, domain.PaymentCompleted, &txn, "",
						domain.PaymentPending, domain.PaymentProcessing, domain.PaymentPendingVerification).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			applied: true,
		},
		{
			name: "Terminal payment is untouched",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(`gateway_txn_id = COALESCE(gateway_txn_id, $3)`)).
					WithArgs(1, domain.PaymentCompleted, &txn, "",
						domain.PaymentPending, domain.PaymentProcessing, domain.PaymentPendingVerification).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			applied, err := repo.SettleTerminal(context.Background(), 1, domain.PaymentCompleted, &txn, "")
			assert.NoError(t, err)
			assert.Equal(t, tt.applied, applied)
		})
	}
}

func TestRepository_SetRefunded(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`SET status = $2, updated_at = now()`)).
		WithArgs(1, domain.PaymentRefunded, domain.PaymentCompleted).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	applied, err := repo.SetRefunded(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, applied)
}

func TestRepository_FindStaleProcessing(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = $1 AND gateway_txn_id IS NOT NULL`)).
		WithArgs(domain.PaymentProcessing, uint32(50)).
		WillReturnRows(paymentRows(domain.PaymentProcessing, strPtr("gw-123")))

	payments, err := repo.FindStaleProcessing(context.Background(), 50)
	assert.NoError(t, err)
	assert.Len(t, payments, 1)
	assert.Equal(t, domain.PaymentProcessing, payments[0].Status)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = $1 AND gateway_txn_id IS NOT NULL`)).
		WithArgs(domain.PaymentProcessing, uint32(50)).
		WillReturnError(errors.New("database error"))

	_, err = repo.FindStaleProcessing(context.Background(), 50)
	assert.Error(t, err)
}
