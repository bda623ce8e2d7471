package contentrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

const licenseColumns = `id, buyer_id, author_id, content_id, amount, currency, status, access, window_secs, expires_at, downloads_left, payment_id, created_at, updated_at`

func (r *Repository) Create(ctx context.Context, lic *domain.ContentLicense) (*domain.ContentLicense, error) {
	query := `
        INSERT INTO content_licenses (buyer_id, author_id, content_id, amount, currency, status, access, window_secs, expires_at, downloads_left)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING ` + licenseColumns
	row := r.db.QueryRow(ctx, query, lic.BuyerID, lic.AuthorID, lic.ContentID, lic.Amount, lic.Currency, lic.Status, lic.Access, lic.WindowSecs, lic.ExpiresAt, lic.DownloadsLeft)
	created, err := scanLicense(row)
	if err != nil {
		zap.L().Error("failed to create content license", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.ContentLicense, error) {
	query := `SELECT ` + licenseColumns + ` FROM content_licenses WHERE id = $1`
	lic, err := scanLicense(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("failed to get content license", zap.Int("licenseID", id), zap.Error(err))
		return nil, err
	}
	return lic, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, from, to domain.LicenseStatus) (bool, error) {
	query := `
        UPDATE content_licenses
        SET status = $3, updated_at = now()
        WHERE id = $1 AND status = $2
    `
	tag, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		zap.L().Error("failed to update license status", zap.Int("licenseID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Activate sets the access window when the license becomes active.
func (r *Repository) Activate(ctx context.Context, id int, expiresAt *time.Time) (bool, error) {
	query := `
        UPDATE content_licenses
        SET status = $2, expires_at = $3, updated_at = now()
        WHERE id = $1 AND status = $4
    `
	tag, err := r.db.Exec(ctx, query, id, domain.LicenseActive, expiresAt, domain.LicensePending)
	if err != nil {
		zap.L().Error("failed to activate license", zap.Int("licenseID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ConsumeDownload decrements the quota only while it is positive; licenses
// with a NULL quota are unlimited and always pass.
func (r *Repository) ConsumeDownload(ctx context.Context, id int) (bool, error) {
	query := `
        UPDATE content_licenses
        SET downloads_left = downloads_left - 1, updated_at = now()
        WHERE id = $1 AND status = $2 AND (downloads_left IS NULL OR downloads_left > 0)
    `
	tag, err := r.db.Exec(ctx, query, id, domain.LicenseActive)
	if err != nil {
		zap.L().Error("failed to consume download", zap.Int("licenseID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) SetPaymentID(ctx context.Context, id, paymentID int) error {
	query := `UPDATE content_licenses SET payment_id = $2, updated_at = now() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id, paymentID); err != nil {
		zap.L().Error("failed to link payment to license", zap.Int("licenseID", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByBuyerID(ctx context.Context, buyerID int) ([]domain.ContentLicense, error) {
	query := `SELECT ` + licenseColumns + ` FROM content_licenses WHERE buyer_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, buyerID)
	if err != nil {
		zap.L().Error("failed to fetch content licenses", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var lics []domain.ContentLicense
	for rows.Next() {
		var lic domain.ContentLicense
		err := rows.Scan(&lic.ID, &lic.BuyerID, &lic.AuthorID, &lic.ContentID, &lic.Amount, &lic.Currency, &lic.Status, &lic.Access, &lic.WindowSecs, &lic.ExpiresAt, &lic.DownloadsLeft, &lic.PaymentID, &lic.CreatedAt, &lic.UpdatedAt)
		if err != nil {
			zap.L().Error("failed to scan license row", zap.Error(err))
			return nil, err
		}
		lics = append(lics, lic)
	}
	return lics, rows.Err()
}

func scanLicense(row pgx.Row) (*domain.ContentLicense, error) {
	var lic domain.ContentLicense
	err := row.Scan(&lic.ID, &lic.BuyerID, &lic.AuthorID, &lic.ContentID, &lic.Amount, &lic.Currency, &lic.Status, &lic.Access, &lic.WindowSecs, &lic.ExpiresAt, &lic.DownloadsLeft, &lic.PaymentID, &lic.CreatedAt, &lic.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &lic, nil
}
