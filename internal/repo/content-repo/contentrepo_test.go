package contentrepo

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

func licenseRows(status domain.LicenseStatus) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "buyer_id", "author_id", "content_id", "amount", "currency", "status",
		"access", "window_secs", "expires_at", "downloads_left", "payment_id", "created_at", "updated_at",
	}).AddRow(30, 1, 3, 300, int64(5000), "USD", status,
		domain.AccessLifetime, int64(0), (*time.Time)(nil), (*int)(nil), (*int)(nil), now, now)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO content_licenses`)).
		WithArgs(1, 3, 300, int64(5000), "USD", domain.LicensePending, domain.AccessLifetime, int64(0), (*time.Time)(nil), (*int)(nil)).
		WillReturnRows(licenseRows(domain.LicensePending))

	lic, err := repo.Create(context.Background(), &domain.ContentLicense{
		BuyerID: 1, AuthorID: 3, ContentID: 300, Amount: 5000, Currency: "USD",
		Status: domain.LicensePending, Access: domain.AccessLifetime,
	})
	assert.NoError(t, err)
	assert.Equal(t, 30, lic.ID)
}

func TestRepository_Activate(t *testing.T) {
	expires := time.Now().Add(time.Hour)

	tests := []struct {
		name      string
		expiresAt *time.Time
		rows      int64
		applied   bool
	}{
		{name: "Activates a pending license with window", expiresAt: &expires, rows: 1, applied: true},
		{name: "Activates lifetime license without window", expiresAt: nil, rows: 1, applied: true},
		{name: "Already active license is untouched", expiresAt: nil, rows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			mock.ExpectExec(regexp.QuoteMeta(`SET status = $2, expires_at = $3`)).
				WithArgs(30, domain.LicenseActive, tt.expiresAt, domain.LicensePending).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.rows))

			applied, err := repo.Activate(context.Background(), 30, tt.expiresAt)
			assert.NoError(t, err)
			assert.Equal(t, tt.applied, applied)
		})
	}
}

func TestRepository_ConsumeDownload(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		applied bool
	}{
		{name: "Quota decrements while positive", rows: 1, applied: true},
		{name: "Exhausted quota refuses", rows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			mock.ExpectExec(regexp.QuoteMeta(`downloads_left = downloads_left - 1`)).
				WithArgs(30, domain.LicenseActive).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.rows))

			applied, err := repo.ConsumeDownload(context.Background(), 30)
			assert.NoError(t, err)
			assert.Equal(t, tt.applied, applied)
		})
	}
}

func TestRepository_FindByBuyerID(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM content_licenses WHERE buyer_id = $1`)).
		WithArgs(1).
		WillReturnRows(licenseRows(domain.LicenseActive))

	lics, err := repo.FindByBuyerID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, lics, 1)
	assert.Equal(t, domain.LicenseActive, lics[0].Status)
}
