package withdrawalrepo

import (
	"context"
	"regexp"
	"testing"
	"time"

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

func withdrawalRows(status domain.WithdrawalStatus) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "user_id", "amount", "fee", "net", "currency", "method", "status", "notes", "created_at", "updated_at",
	}).AddRow(40, 1, int64(10000), int64(250), int64(9750), "USD", domain.PayoutBankTransfer, status, "", now, now)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO withdrawals`)).
		WithArgs(1, int64(10000), int64(250), int64(9750), "USD", domain.PayoutBankTransfer, domain.WithdrawalPending).
		WillReturnRows(withdrawalRows(domain.WithdrawalPending))

	w, err := repo.Create(context.Background(), &domain.Withdrawal{
		UserID: 1, Amount: 10000, Fee: 250, Net: 9750, Currency: "USD",
		Method: domain.PayoutBankTransfer, Status: domain.WithdrawalPending,
	})
	assert.NoError(t, err)
	assert.Equal(t, 40, w.ID)
	assert.Equal(t, int64(9750), w.Net)
}

func TestRepository_CountActiveByUser(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*)`)).
		WithArgs(1, domain.WithdrawalPending, domain.WithdrawalProcessing).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountActiveByUser(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		applied bool
	}{
		{name: "Decision lands on a pending request", rows: 1, applied: true},
		{name: "Terminal status cannot be overwritten", rows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			mock.ExpectExec(regexp.QuoteMeta(`SET status = $3, notes = $4`)).
				WithArgs(40, domain.WithdrawalPending, domain.WithdrawalCompleted, "paid out").
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.rows))

			applied, err := repo.UpdateStatus(context.Background(), 40, domain.WithdrawalPending, domain.WithdrawalCompleted, "paid out")
			assert.NoError(t, err)
			assert.Equal(t, tt.applied, applied)
		})
	}
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM withdrawals WHERE user_id = $1`)).
		WithArgs(1).
		WillReturnRows(withdrawalRows(domain.WithdrawalCompleted))

	withdrawals, err := repo.FindByUserID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, withdrawals, 1)
}
